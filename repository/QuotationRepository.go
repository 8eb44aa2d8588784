package repository

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"travomine/models"

	"gorm.io/gorm"
)

const quotationRefAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateQuotationNumber produces a reference like Q-7K2M9XQ4. The
// alphabet skips easily confused characters. Uses the shared math/rand
// source, which is randomly seeded and safe for concurrent callers.
func GenerateQuotationNumber() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = quotationRefAlphabet[rand.Intn(len(quotationRefAlphabet))]
	}
	return "Q-" + string(b)
}

// QuotationRepository persists and loads quotation aggregates.
type QuotationRepository struct {
	gdb *gorm.DB
}

func NewQuotationRepository(gdb *gorm.DB) *QuotationRepository {
	return &QuotationRepository{gdb: gdb}
}

// CreateWithItems inserts the quotation and all its line-item collections
// as one transaction. The quotation is stored exactly as priced; it is
// never re-priced after this point. A generated reference that collides
// with an existing one is regenerated and the insert retried once.
func (r *QuotationRepository) CreateWithItems(q *models.Quotation) error {
	generated := q.QuotationNo == ""

	insert := func() error {
		return r.gdb.Transaction(func(tx *gorm.DB) error {
			if q.QuotationNo == "" {
				q.QuotationNo = GenerateQuotationNumber()
			}
			if q.Status == "" {
				q.Status = models.QuotationStatusDraft
			}
			return tx.Create(q).Error
		})
	}

	err := insert()
	if generated && errors.Is(err, gorm.ErrDuplicatedKey) {
		q.ID = 0
		q.QuotationNo = ""
		err = insert()
	}
	return err
}

// FetchByNumber loads a quotation aggregate with every nested collection.
func (r *QuotationRepository) FetchByNumber(quotationNo string) (*models.Quotation, error) {
	var q models.Quotation
	err := r.gdb.
		Preload("Accommodations").
		Preload("Transfers").
		Preload("Flights").
		Preload("ItineraryDays").
		Preload("Activities").
		Where("quotation_no = ?", quotationNo).
		First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// FetchByID loads a quotation aggregate by primary key.
func (r *QuotationRepository) FetchByID(id uint) (*models.Quotation, error) {
	var q models.Quotation
	err := r.gdb.
		Preload("Accommodations").
		Preload("Transfers").
		Preload("Flights").
		Preload("ItineraryDays").
		Preload("Activities").
		First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// List returns a page of quotations without their nested collections,
// newest first, optionally filtered by status.
// NormalizePage clamps pagination parameters to their legal ranges. Callers
// computing page counts must use the clamped values, not the raw query input.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func (r *QuotationRepository) List(status string, page, pageSize int) ([]models.Quotation, int64, error) {
	page, pageSize = NormalizePage(page, pageSize)

	query := r.gdb.Model(&models.Quotation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quotations []models.Quotation
	err := query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&quotations).Error
	return quotations, total, err
}

// InvalidTransitionError reports an attempt to move a quotation between
// states its lifecycle does not allow.
type InvalidTransitionError struct {
	QuotationNo string
	From        string
	To          string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition quotation %s from %s to %s", e.QuotationNo, e.From, e.To)
}

// UpdateStatus moves a quotation through its status machine. Illegal
// transitions are rejected; nothing else on the row changes.
func (r *QuotationRepository) UpdateStatus(id uint, newStatus string) (*models.Quotation, error) {
	var q models.Quotation

	err := r.gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&q, id).Error; err != nil {
			return err
		}

		if !models.CanTransitionQuotationStatus(q.Status, newStatus) {
			return &InvalidTransitionError{QuotationNo: q.QuotationNo, From: q.Status, To: newStatus}
		}

		q.Status = newStatus
		return tx.Model(&q).Update("status", newStatus).Error
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// CancelStaleDrafts cancels DRAFT quotations untouched for longer than
// maxAge. Run from the daily maintenance job.
func (r *QuotationRepository) CancelStaleDrafts(maxAge time.Duration) (int64, error) {
	threshold := time.Now().Add(-maxAge)
	res := r.gdb.Model(&models.Quotation{}).
		Where("status = ? AND updated_at < ?", models.QuotationStatusDraft, threshold).
		Update("status", models.QuotationStatusCancelled)
	return res.RowsAffected, res.Error
}

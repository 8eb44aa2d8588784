package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"travomine/repository"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GenerateQuotationPDF godoc
// @Summary      Generate quotation PDF
// @Tags         quotation
// @Param        id   path  int  true  "Quotation ID"
// @Success      200  "PDF file"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/quotation/{id}/pdf [get]
func GenerateQuotationPDF(repo *repository.QuotationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quotation ID"})
			return
		}

		q, err := repo.FetchByID(uint(id))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quotation not found"})
			return
		}

		titleCaser := cases.Title(language.Und)

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetMargins(10, 10, 10)
		pdf.SetFont("Arial", "", 10)

		// --- Header ---
		pdf.SetFont("Arial", "B", 18)
		pdf.Cell(190, 10, "TRAVEL QUOTATION")
		pdf.Ln(12)

		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(95, 6, fmt.Sprintf("Quotation No: %s", q.QuotationNo))
		pdf.Cell(95, 6, fmt.Sprintf("Status: %s", titleCaser.String(q.Status)))
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(95, 6, fmt.Sprintf("Date: %s", q.CreatedAt.Format("02-Jan-2006")))
		pdf.Ln(10)

		// --- Client & Trip ---
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(95, 8, "Client")
		pdf.Cell(95, 8, "Trip")
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(90, 6, fmt.Sprintf("%s\n%s\n%s", q.ClientName, q.ClientEmail, q.ClientPhone), "", "", false)
		pdf.SetXY(110, 56)
		pdf.MultiCell(90, 6, fmt.Sprintf(
			"%s\n%s to %s\n%d travelers, %d nights",
			q.Place,
			q.TravelStart.Format("02-Jan-2006"), q.TravelEnd.Format("02-Jan-2006"),
			q.Travelers, q.Nights,
		), "", "", false)
		pdf.Ln(8)

		// --- Accommodation Table ---
		if len(q.Accommodations) > 0 {
			pdf.SetFont("Arial", "B", 11)
			pdf.SetFillColor(240, 240, 240)
			pdf.CellFormat(60, 8, "Hotel", "1", 0, "L", true, 0, "")
			pdf.CellFormat(35, 8, "Room", "1", 0, "C", true, 0, "")
			pdf.CellFormat(25, 8, "Season", "1", 0, "C", true, 0, "")
			pdf.CellFormat(20, 8, "Nights", "1", 0, "C", true, 0, "")
			pdf.CellFormat(25, 8, "Rate", "1", 0, "C", true, 0, "")
			pdf.CellFormat(25, 8, "Cost", "1", 1, "C", true, 0, "")

			pdf.SetFont("Arial", "", 10)
			for _, acc := range q.Accommodations {
				pdf.CellFormat(60, 8, acc.HotelName, "1", 0, "L", false, 0, "")
				pdf.CellFormat(35, 8, acc.RoomType, "1", 0, "C", false, 0, "")
				pdf.CellFormat(25, 8, acc.Season, "1", 0, "C", false, 0, "")
				pdf.CellFormat(20, 8, strconv.Itoa(acc.Nights), "1", 0, "C", false, 0, "")
				pdf.CellFormat(25, 8, fmt.Sprintf("%.2f", acc.Rate), "1", 0, "R", false, 0, "")
				pdf.CellFormat(25, 8, fmt.Sprintf("%.2f", acc.BaseCost), "1", 1, "R", false, 0, "")
			}
			pdf.Ln(4)
		}

		// --- Transfers & Flights ---
		if len(q.Transfers) > 0 || len(q.Flights) > 0 {
			pdf.SetFont("Arial", "B", 11)
			pdf.Cell(190, 8, "Transport")
			pdf.Ln(8)
			pdf.SetFont("Arial", "", 10)
			for _, tr := range q.Transfers {
				pdf.Cell(190, 6, fmt.Sprintf("Transfer %s: %d days @ %.2f = %.2f", tr.TransferCode, tr.Days, tr.RatePerDay, tr.BaseCost))
				pdf.Ln(6)
			}
			for _, fl := range q.Flights {
				pdf.Cell(190, 6, fmt.Sprintf("Flight %s-%s: %d x %.2f = %.2f", fl.Origin, fl.Dest, fl.Travelers, fl.BaseFare, fl.BaseCost))
				pdf.Ln(6)
			}
			pdf.Ln(4)
		}

		// --- Itinerary ---
		if len(q.ItineraryDays) > 0 {
			pdf.SetFont("Arial", "B", 11)
			pdf.Cell(190, 8, "Itinerary")
			pdf.Ln(8)
			pdf.SetFont("Arial", "", 10)
			for _, day := range q.ItineraryDays {
				pdf.SetFont("Arial", "B", 10)
				pdf.Cell(190, 6, fmt.Sprintf("Day %d: %s", day.DayNumber, day.Title))
				pdf.Ln(6)
				if day.Description != "" {
					pdf.SetFont("Arial", "", 10)
					pdf.MultiCell(190, 5, day.Description, "", "", false)
				}
			}
			pdf.Ln(4)
		}

		// --- Price Summary ---
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(140, 8, "Subtotal")
		pdf.CellFormat(50, 8, fmt.Sprintf("%.2f %s", q.Subtotal, q.Currency), "1", 1, "R", false, 0, "")
		pdf.Cell(140, 8, "Tax Total")
		pdf.CellFormat(50, 8, fmt.Sprintf("%.2f %s", q.TaxTotal, q.Currency), "1", 1, "R", false, 0, "")
		if q.DiscountAmount > 0 {
			label := "Discount"
			if q.DiscountCode != "" {
				label = fmt.Sprintf("Discount (%s)", q.DiscountCode)
			}
			pdf.Cell(140, 8, label)
			pdf.CellFormat(50, 8, fmt.Sprintf("-%.2f %s", q.DiscountAmount, q.Currency), "1", 1, "R", false, 0, "")
		}
		pdf.Cell(140, 8, "Total")
		pdf.CellFormat(50, 8, fmt.Sprintf("%.2f %s", q.Total, q.Currency), "1", 1, "R", false, 0, "")

		// --- Inclusions / Exclusions ---
		if len(q.Inclusions) > 0 {
			pdf.Ln(4)
			pdf.SetFont("Arial", "B", 11)
			pdf.Cell(190, 6, "Inclusions")
			pdf.Ln(6)
			pdf.SetFont("Arial", "", 10)
			for _, inc := range q.Inclusions {
				pdf.Cell(190, 5, "- "+inc)
				pdf.Ln(5)
			}
		}
		if len(q.Exclusions) > 0 {
			pdf.Ln(2)
			pdf.SetFont("Arial", "B", 11)
			pdf.Cell(190, 6, "Exclusions")
			pdf.Ln(6)
			pdf.SetFont("Arial", "", 10)
			for _, exc := range q.Exclusions {
				pdf.Cell(190, 5, "- "+exc)
				pdf.Ln(5)
			}
		}

		// --- Footer ---
		pdf.SetY(-20)
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(190, 6, "This is a computer-generated quotation. Prices are valid for 14 days from the quotation date.")
		pdf.Ln(5)
		pdf.Cell(190, 6, "Generated on: "+time.Now().Format("2006-01-02 15:04:05"))

		// --- Output PDF ---
		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=quotation_%s.pdf", q.QuotationNo))
		if err := pdf.Output(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}
	}
}

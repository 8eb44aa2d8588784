package handlers

import (
	"fmt"
	"net/http"
	"time"

	"travomine/repository"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportQuotationsExcel godoc
// @Summary      Export quotations as Excel
// @Description  Dump quotations (optionally filtered by status) into an .xlsx workbook
// @Tags         quotation
// @Param        status  query  string  false  "Status filter"
// @Success      200  "Excel file"
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/quotation/export [get]
func ExportQuotationsExcel(repo *repository.QuotationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Query("status")

		// Single page large enough for a back-office export.
		quotations, total, err := repo.List(status, 1, 10000)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		f := excelize.NewFile()
		sheet := "Quotations"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{
			"Quotation No", "Client", "Email", "Destination",
			"Travel Start", "Travel End", "Travelers", "Nights",
			"Subtotal", "Tax", "Discount Code", "Discount", "Total", "Currency",
			"Status", "Created At",
		}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, q := range quotations {
			values := []interface{}{
				q.QuotationNo, q.ClientName, q.ClientEmail, q.Place,
				q.TravelStart.Format("2006-01-02"), q.TravelEnd.Format("2006-01-02"),
				q.Travelers, q.Nights,
				q.Subtotal, q.TaxTotal, q.DiscountCode, q.DiscountAmount, q.Total, q.Currency,
				q.Status, q.CreatedAt.Format("2006-01-02 15:04"),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		summary := "Summary"
		if _, err := f.NewSheet(summary); err == nil {
			f.SetCellValue(summary, "A1", "Quotation Export Summary")
			f.SetCellValue(summary, "A2", "Exported At")
			f.SetCellValue(summary, "B2", time.Now().Format("2006-01-02 15:04:05"))
			f.SetCellValue(summary, "A3", "Status Filter")
			if status == "" {
				f.SetCellValue(summary, "B3", "All")
			} else {
				f.SetCellValue(summary, "B3", status)
			}
			f.SetCellValue(summary, "A4", "Total Quotations")
			f.SetCellValue(summary, "B4", total)
		}

		filename := fmt.Sprintf("quotations_%s.xlsx", time.Now().Format("20060102"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment;filename="+filename)
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}

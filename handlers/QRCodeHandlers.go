package handlers

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strconv"

	"travomine/repository"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// addLabel draws text onto the image at the given position.
func addLabel(img *image.RGBA, x, y int, label string, bold bool) {
	col := color.RGBA{30, 30, 30, 255}
	face := inconsolata.Regular8x16
	if bold {
		face = inconsolata.Bold8x16
	}

	point := fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  point,
	}
	d.DrawString(label)
}

// GenerateQuotationQRCode godoc
// @Summary      Generate quotation QR code as JPEG
// @Description  QR code pointing at the client-facing quotation page, with a printed label
// @Tags         quotation
// @Param        id   path      int  true  "Quotation ID"
// @Success      200  {file}    file  "JPEG image"
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/quotation/{id}/qr [get]
func GenerateQuotationQRCode(repo *repository.QuotationRepository) gin.HandlerFunc {
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

		baseURL := os.Getenv("PORTAL_BASE_URL")
		if baseURL == "" {
			baseURL = "https://portal.travomine.example"
		}
		target := fmt.Sprintf("%s/quotation/%s", baseURL, q.QuotationNo)

		qrPNG, err := qrcode.Encode(target, qrcode.Medium, 256)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
			return
		}

		qrImg, _, err := image.Decode(bytes.NewReader(qrPNG))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode QR code"})
			return
		}

		// QR on top, two label lines underneath.
		const labelHeight = 48
		bounds := qrImg.Bounds()
		out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()+labelHeight))
		draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
		draw.Draw(out, bounds, qrImg, bounds.Min, draw.Over)

		addLabel(out, 16, bounds.Dy()+18, q.QuotationNo, true)
		addLabel(out, 16, bounds.Dy()+36, fmt.Sprintf("%s | %d travelers | %.2f %s", q.Place, q.Travelers, q.Total, q.Currency), false)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, out, &jpeg.Options{Quality: 90}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode image"})
			return
		}

		c.Header("Content-Type", "image/jpeg")
		c.Header("Content-Disposition", fmt.Sprintf("inline; filename=quotation_%s.jpg", q.QuotationNo))
		c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
	}
}

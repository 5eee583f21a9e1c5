package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

type QRCodeController struct {
	frontendURL string
}

func NewQRCodeController(frontendURL string) *QRCodeController {
	return &QRCodeController{
		frontendURL: frontendURL,
	}
}

// GenerateQRCode handles GET /api/v1/lists/:id/qrcode - renders a QR code
// pointing at the list's page, for sharing a list across devices
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	listID := c.Param("id")
	if listID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "List ID is required"})
		return
	}

	listURL := qc.frontendURL + "/lists/" + listID

	png, err := qrcode.Encode(listURL, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

package controller

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lifeboard/lifeboard-backend/internal/app/service"
	"github.com/lifeboard/lifeboard-backend/internal/errors"
	"github.com/lifeboard/lifeboard-backend/internal/middleware"
	"github.com/lifeboard/lifeboard-backend/internal/storage"
)

var allowedReceiptTypes = []string{"image/jpeg", "image/png", "image/webp", "image/heic"}

type UploadController struct {
	storage        *storage.S3Storage
	receiptService service.ReceiptService
}

func NewUploadController(storage *storage.S3Storage, receiptService service.ReceiptService) *UploadController {
	return &UploadController{storage: storage, receiptService: receiptService}
}

type PresignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

type AttachPhotoRequest struct {
	Key string `json:"key" binding:"required"`
}

// PresignUpload issues a pre-signed PUT URL for a receipt photo
// POST /api/v1/uploads/receipts
func (ctrl *UploadController) PresignUpload(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}

	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "filename and content_type are required")
		return
	}

	if err := ctrl.storage.ValidateContentType(req.ContentType, allowedReceiptTypes); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Unsupported image type")
		return
	}

	presigned, err := ctrl.storage.PresignReceiptUpload(householdID, req.Filename, req.ContentType)
	if err != nil {
		log := middleware.GetLoggerFromContext(c)
		log.Error("Failed to presign receipt upload", err, map[string]interface{}{
			"household_id": householdID,
		})
		errors.InternalError(c, "Failed to generate upload URL")
		return
	}
	c.JSON(http.StatusOK, presigned)
}

// AttachPhoto links an uploaded photo key to a purchase
// POST /api/v1/receipts/purchases/:id/photo
func (ctrl *UploadController) AttachPhoto(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	purchaseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AttachPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "key is required")
		return
	}

	purchase, err := ctrl.receiptService.AttachPhoto(householdID, purchaseID, req.Key)
	if err != nil {
		if stderrors.Is(err, service.ErrPurchaseNotFound) {
			errors.NotFound(c, errors.PurchaseNotFound, "Purchase not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchase": purchase})
}

// PhotoURL returns a short-lived GET URL for a purchase's photo
// GET /api/v1/receipts/purchases/:id/photo
func (ctrl *UploadController) PhotoURL(c *gin.Context) {
	_, householdID, ok := identity(c)
	if !ok {
		return
	}
	purchaseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	purchase, err := ctrl.receiptService.GetPurchase(householdID, purchaseID)
	if err != nil {
		if stderrors.Is(err, service.ErrPurchaseNotFound) {
			errors.NotFound(c, errors.PurchaseNotFound, "Purchase not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	if purchase.PhotoKey == "" {
		errors.NotFound(c, errors.ResourceNotFound, "Purchase has no photo")
		return
	}

	url, err := ctrl.storage.PresignReceiptDownload(purchase.PhotoKey)
	if err != nil {
		errors.InternalError(c, "Failed to generate download URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

package controllers

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/Kariqs/kartdaily-api/apperrors"
	"github.com/Kariqs/kartdaily-api/uploads"
	"github.com/gin-gonic/gin"
)

type ImageUploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

type UploadController struct {
	uploader ImageUploader
}

// NewUploadController accepts a nil uploader when no bucket is configured;
// uploads are then refused.
func NewUploadController(uploader ImageUploader) *UploadController {
	return &UploadController{uploader: uploader}
}

// UploadImage handles POST /api/upload with a multipart "image" field and
// responds with the stored image URL.
func (c *UploadController) UploadImage(ctx *gin.Context) {
	if c.uploader == nil {
		sendError(ctx, apperrors.Internal("Image uploads are not configured", nil))
		return
	}

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		sendError(ctx, apperrors.Validation("No image uploaded"))
		return
	}
	if !uploads.ValidImage(fileHeader.Filename) {
		sendError(ctx, apperrors.Validation("Images only!"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		sendError(ctx, apperrors.Internal("Failed to open file", err))
		return
	}
	defer file.Close()

	location, err := c.uploader.Upload(ctx.Request.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		log.Println("Image upload failed:", err)
		sendError(ctx, apperrors.Internal("Failed to upload image", err))
		return
	}

	ctx.String(http.StatusOK, location)
}

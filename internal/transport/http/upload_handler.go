package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/service"
)

type UploadHandler struct {
	uploads *service.UploadService
}

func RegisterUploads(e *echo.Echo, uploads *service.UploadService, guard echo.MiddlewareFunc) {
	h := &UploadHandler{uploads: uploads}
	e.POST("/api/upload-image", h.uploadImage, guard)
}

func (h *UploadHandler) uploadImage(c echo.Context) error {
	req := c.Request()
	// Allow multipart overhead on top of the file itself.
	req.Body = http.MaxBytesReader(c.Response(), req.Body, h.uploads.MaxBytes()+1<<20)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return writeError(c, service.ErrImageTooLarge, "")
		}
		return writeError(c, service.ErrImageRequired, "")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return writeError(c, service.ErrImageRequired, "")
	}
	defer file.Close()

	url, err := h.uploads.UploadProductImage(req.Context(), service.ImageUpload{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		return writeError(c, err, "Failed to upload image")
	}
	return c.JSON(http.StatusOK, UploadImageResponse{Success: true, ImageURL: url})
}

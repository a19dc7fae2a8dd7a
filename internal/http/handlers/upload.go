package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberlane/emberlane-backend/internal/http/response"
	"github.com/emberlane/emberlane-backend/internal/platform/logger"
	"github.com/emberlane/emberlane-backend/internal/services"
)

// maxUploadBytes caps a single image upload at 10MB.
const maxUploadBytes = 10 << 20

type UploadHandler struct {
	uploads services.UploadService
	log     *logger.Logger
}

func NewUploadHandler(uploads services.UploadService, log *logger.Logger) *UploadHandler {
	return &UploadHandler{
		uploads: uploads,
		log:     log.With("handler", "UploadHandler"),
	}
}

// Create accepts multipart/form-data with a single "image" field and returns
// the public URL of the stored file.
func (h *UploadHandler) Create(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request",
			fmt.Errorf("multipart field %q is required", "image"))
		return
	}
	if file.Size > maxUploadBytes {
		response.RespondError(c, http.StatusBadRequest, "file_too_large",
			fmt.Errorf("image exceeds the %dMB limit", maxUploadBytes>>20))
		return
	}

	src, err := file.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "upload_failed", err)
		return
	}
	if len(data) > maxUploadBytes {
		response.RespondError(c, http.StatusBadRequest, "file_too_large",
			fmt.Errorf("image exceeds the %dMB limit", maxUploadBytes>>20))
		return
	}

	// Sniff the real content type; the client-declared header is not
	// trusted.
	kind := http.DetectContentType(data)
	switch kind {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
	default:
		response.RespondError(c, http.StatusBadRequest, "unsupported_type",
			fmt.Errorf("only jpeg, png, webp and gif uploads are accepted, got %s", kind))
		return
	}

	url, err := h.uploads.SaveImage(c.Request.Context(), file.Filename, data)
	if err != nil {
		h.log.Error("Image upload failed", "filename", file.Filename, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "upload_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"url": url})
}

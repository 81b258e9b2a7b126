package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fjod/go_foodcart/internal/upload"
	"github.com/sirupsen/logrus"
)

type ImageUploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

type UploadHandler struct {
	uploader  ImageUploader
	timeout   time.Duration
	maxMemory int64
	responder
}

func NewUploadHandler(uploader ImageUploader, timeout time.Duration, maxMemory int64, log logrus.FieldLogger) *UploadHandler {
	return &UploadHandler{uploader: uploader, timeout: timeout, maxMemory: maxMemory, responder: responder{log: log.WithField("handler", "upload")}}
}

type UploadResponse struct {
	URL string `json:"url"`
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		h.error(w, http.StatusBadRequest, "invalid_request", "expected multipart form data")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.error(w, http.StatusBadRequest, "missing_file", "file is required")
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(ctx, header.Filename, file)
	switch {
	case errors.Is(err, upload.ErrEmptyFile):
		h.error(w, http.StatusBadRequest, "missing_file", "file is empty")
		return
	case errors.Is(err, upload.ErrNotConfigured):
		h.error(w, http.StatusServiceUnavailable, "service_unavailable", "image upload is not configured")
		return
	case err != nil:
		requestLogger(h.log, r).WithError(err).Warn("image upload failed")
		h.error(w, http.StatusBadGateway, "upstream_error", "Image upload failed")
		return
	}

	h.json(w, http.StatusCreated, UploadResponse{URL: url})
}

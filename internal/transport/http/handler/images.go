package handler

import (
	"net/http"

	"github.com/findr-api/internal/application/media"
)

// maxImageBytes caps the multipart body for a single photo.
const maxImageBytes = 10 << 20

// ImageHandler accepts item photo uploads.
type ImageHandler struct {
	svc media.Service
}

func NewImageHandler(svc media.Service) *ImageHandler { return &ImageHandler{svc: svc} }

// Upload serves POST /items/images with a multipart "file" field and returns
// the URL to put in the item's image_url.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes)
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer f.Close()

	url, err := h.svc.UploadItemImage(r.Context(), userID, f)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ImageEnvelope{URL: url})
}

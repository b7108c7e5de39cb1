package http

import (
	"net/http"
	"path/filepath"

	"funnelpress/internal/app"
	"funnelpress/internal/domain"
)

const maxUploadBytes = 10 << 20

// UploadHandler accepts multipart image uploads and stores them in the
// configured object store.
type UploadHandler struct {
	images app.ImageStore
}

func NewUploadHandler(images app.ImageStore) *UploadHandler {
	return &UploadHandler{images: images}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "missing file"})
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	name := "uploads/" + domain.NewID() + ext
	url, err := h.images.Store(r.Context(), name, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

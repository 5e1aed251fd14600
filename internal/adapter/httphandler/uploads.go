package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/maribelsv/showcase/internal/core/port"
)

// maxUploadBytes caps the whole upload request body, not just the
// in-memory part of the multipart form.
const maxUploadBytes = 10 << 20

type UploadsHandler struct {
	images port.ImageSaver
}

func RegisterUploads(mux *http.ServeMux, images port.ImageSaver) {
	h := UploadsHandler{images}
	mux.HandleFunc("POST /v1/images", h.PostImage)
}

func (h UploadsHandler) PostImage(w http.ResponseWriter, r *http.Request) {
	const op = "UploadsHandler.PostImage"
	log := slog.With("op", op)

	sn := sessionFrom(r.Context())
	if !sn.Authenticated() {
		redirectHome(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart data")
		log.Warn("failed to parse multipart form", "err", err)
		return
	}

	file, header, err := r.FormFile("imagen")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing imagen file")
		log.Warn("missing file field", "err", err)
		return
	}
	defer file.Close()

	url, err := h.images.SaveImage(
		r.Context(), header.Filename, header.Header.Get("Content-Type"), file,
	)
	if err != nil {
		writeServiceErr(w, r, err)
		log.Error("failed to save image", "err", err)
		return
	}

	log.Info("image saved", "url", url)
	writeJSON(w, http.StatusCreated, UploadResponse{URL: url})
}

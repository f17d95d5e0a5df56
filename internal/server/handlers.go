package server

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"path"

	"github.com/gorilla/mux"

	"github.com/idelchi/photolock/internal/gallery"
)

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, pageData{Title: s.Title})
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	if err := r.ParseForm(); err != nil {
		s.metrics.unlockAttempts.WithLabelValues(outcomeFailed).Inc()
		http.Error(w, "Invalid form submission", http.StatusBadRequest)

		return
	}

	display := newPageDisplay(s.loader.Manifest().Slots)

	photos, err := s.loader.Load(r.Context(), r.PostFormValue("password"), display)

	switch {
	case err == nil:
	case errors.Is(err, gallery.ErrConfiguration):
		s.metrics.unlockAttempts.WithLabelValues(outcomeConfiguration).Inc()
		s.log.Errorf("Gallery misconfigured: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	case errors.Is(err, gallery.ErrWrongPassphrase):
		s.metrics.unlockAttempts.WithLabelValues(outcomeWrongPassword).Inc()
		s.log.Debugf("Rejected unlock from %s: %v", clientIP(r), err)
		s.render(w, http.StatusUnauthorized, pageData{Title: s.Title, Error: "Invalid password or corrupted test image"})

		return
	case errors.Is(err, gallery.ErrFetch):
		s.metrics.unlockAttempts.WithLabelValues(outcomeFetchError).Inc()
		s.log.Errorf("Fetching test image: %v", err)
		s.render(w, http.StatusServiceUnavailable, pageData{Title: s.Title, Error: "Failed to fetch test image"})

		return
	default:
		s.metrics.unlockAttempts.WithLabelValues(outcomeInternalError).Inc()
		s.log.Errorf("Unlocking gallery: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	s.metrics.unlockAttempts.WithLabelValues(outcomeSuccess).Inc()

	for _, photo := range photos {
		outcome := outcomeSuccess
		if photo.Err != nil {
			outcome = outcomeFailed
		}

		s.metrics.photosDecoded.WithLabelValues(outcome).Inc()
	}

	// The page embeds decrypted photos.
	w.Header().Set("Cache-Control", "no-store")

	s.render(w, http.StatusOK, pageData{Title: s.Title, Unlocked: true, Slots: display.slots})
}

func (s *Server) handleEncrypted(w http.ResponseWriter, r *http.Request) {
	name := path.Clean(mux.Vars(r)["file"])

	if !fs.ValidPath(name) {
		http.NotFound(w, r)

		return
	}

	info, err := fs.Stat(s.files, name)
	if err != nil || !info.Mode().IsRegular() {
		http.NotFound(w, r)

		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFileFS(w, r, s.files, name)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// render writes the page with status, or a 500 when the template fails.
func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer

	if err := galleryTemplate.Execute(&buf, data); err != nil {
		s.log.Errorf("Rendering page: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

// indexFile is the single page served at "/".
const indexFile = "index.html"

// StaticConfig holds configuration for the StaticHandler.
type StaticConfig struct {
	// Dir is the directory holding index.html. Corresponds to STATIC_DIR.
	Dir string
}

// StaticHandler handles GET /.
type StaticHandler struct {
	cfg StaticConfig
}

// NewStaticHandler creates a StaticHandler with the given configuration.
func NewStaticHandler(cfg StaticConfig) *StaticHandler {
	return &StaticHandler{cfg: cfg}
}

// Index serves index.html from the static directory.
// Responds 404 when the file does not exist.
func (h *StaticHandler) Index(w http.ResponseWriter, r *http.Request) {
	absDir, err := filepath.Abs(h.cfg.Dir)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	content, err := os.ReadFile(filepath.Join(absDir, indexFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

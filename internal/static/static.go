package static

import (
	"crypto/sha256"
	_ "embed"
	"fmt"
	"log/slog"
	"net/http"
)

//go:embed style.css
var styleCSS []byte

// StyleAssetPath is content addressed so it can be cached forever.
var StyleAssetPath string

func Init() {
	hash := fmt.Sprintf("%x", sha256.Sum256(styleCSS))
	StyleAssetPath = fmt.Sprintf("/static/style.%s.css", hash[:12])
}

// Register serves static assets. Init must have been called.
func Register(mux *http.ServeMux) {
	mux.HandleFunc("GET "+StyleAssetPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		if _, err := w.Write(styleCSS); err != nil {
			slog.ErrorContext(r.Context(), "failed to write stylesheet", "error", err)
		}
	})
}

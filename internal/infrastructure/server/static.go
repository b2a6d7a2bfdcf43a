package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// AssetHandler serves the mockup's static files. It refuses anything
// that would resolve outside the assets directory, answers 404 for
// missing files, and serves index.html for the root and for directory
// paths.
type AssetHandler struct {
	dir string
}

// NewAssetHandler creates a handler rooted at the given directory.
func NewAssetHandler(dir string) *AssetHandler {
	return &AssetHandler{dir: filepath.Clean(dir)}
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(r.URL.Path, "/")
	if rel == "" {
		rel = "index.html"
	}

	if strings.Contains(rel, "..") {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	path := filepath.Join(h.dir, filepath.FromSlash(rel))
	if path != h.dir && !strings.HasPrefix(path, h.dir+string(filepath.Separator)) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		path = filepath.Join(path, "index.html")
		if _, err := os.Stat(path); err != nil {
			http.NotFound(w, r)
			return
		}
	}

	http.ServeFile(w, r, path)
}

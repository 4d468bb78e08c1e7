package images

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

const (
	productPicDir = "static/productpic"
	thumbDir      = "static/productpic/thumbs"
	thumbWidth    = 200
)

// GetProductThumb serves a resized product picture, generating and caching
// the thumbnail on first request.
func GetProductThumb(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	name := filepath.Base(ps.ByName("name"))
	if name == "." || name == "/" || strings.HasPrefix(name, ".") {
		http.Error(w, "Invalid image name", http.StatusBadRequest)
		return
	}

	thumbPath := filepath.Join(thumbDir, name)
	if _, err := os.Stat(thumbPath); err == nil {
		http.ServeFile(w, r, thumbPath)
		return
	}

	srcPath := filepath.Join(productPicDir, name)
	img, err := imaging.Open(srcPath)
	if err != nil {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos) // maintain aspect ratio

	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		log.Println("thumb dir error:", err)
		http.Error(w, "Failed to generate thumbnail", http.StatusInternalServerError)
		return
	}
	if err := imaging.Save(thumb, thumbPath); err != nil {
		log.Println("thumb save error:", err)
		http.Error(w, "Failed to generate thumbnail", http.StatusInternalServerError)
		return
	}

	http.ServeFile(w, r, thumbPath)
}

package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 5 << 20

var allowedUploadTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type UploadHandler struct {
	Dir string
}

func NewUploadHandler() *UploadHandler {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	return &UploadHandler{Dir: dir}
}

// UploadSlip stores a payment-slip or receipt image and returns its public
// URL. Only common image types up to 5MB are accepted.
func (h *UploadHandler) UploadSlip(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Max 5MB."})
		return
	}

	contentType := file.Header.Get("Content-Type")
	ext, ok := allowedUploadTypes[strings.ToLower(contentType)]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only images allowed."})
		return
	}

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		log.Printf("Upload dir error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	filename := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.Dir, filename)); err != nil {
		log.Printf("Upload save error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": "/uploads/" + filename})
}

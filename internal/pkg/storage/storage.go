package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

// Uploader stores an image and returns where it can be fetched publicly.
// Implementations make a single attempt: no resumable or chunked uploads.
type Uploader interface {
	UploadImage(ctx context.Context, data []byte, filename string) (*UploadResult, error)
}

// UploadResult contains the result of a successful upload
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	FileSize int64  `json:"fileSize"`
	Format   string `json:"format,omitempty"`
}

// File validation constants
var (
	AllowedImageTypes = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic"}

	MaxImageSize = int64(10 * 1024 * 1024) // 10MB
)

var ErrEmptyImage = errors.New("image is empty")

// ValidateImage checks size, extension and sniffed content type of an image
func ValidateImage(filename string, data []byte) error {
	if len(data) == 0 {
		return ErrEmptyImage
	}

	if int64(len(data)) > MaxImageSize {
		return fmt.Errorf("image file size exceeds maximum allowed size of %d MB", MaxImageSize/(1024*1024))
	}

	ext := FileExtension(filename)
	if ext != "" && !isAllowedExtension(ext, AllowedImageTypes) {
		return fmt.Errorf("invalid image file type: %s. Allowed types: %s", ext, strings.Join(AllowedImageTypes, ", "))
	}

	if ct := http.DetectContentType(data); !strings.HasPrefix(ct, "image/") && ct != "application/octet-stream" {
		return fmt.Errorf("file content is %s, not an image", ct)
	}

	return nil
}

// ContentType sniffs the MIME type of image bytes
func ContentType(data []byte) string {
	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return "image/jpeg"
	}
	return ct
}

// FileExtension returns the lowercase file extension including the dot
func FileExtension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func isAllowedExtension(ext string, allowedTypes []string) bool {
	for _, allowed := range allowedTypes {
		if ext == allowed {
			return true
		}
	}
	return false
}

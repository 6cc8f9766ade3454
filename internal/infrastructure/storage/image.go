// Package storage provides product image storage implementations.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/momohub/backend/internal/domain/shared"
)

// ImageStorage stores uploaded product images and returns the public
// path under which they can be served.
type ImageStorage interface {
	Save(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// allowed upload extensions, lowercase
var allowedExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// NewImageKey validates the original filename's extension and returns a
// randomized storage key plus the content type to store it with.
func NewImageKey(originalName string) (key, contentType string, err error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	ct, ok := allowedExtensions[ext]
	if !ok {
		return "", "", shared.NewDomainError("UNSUPPORTED_IMAGE_TYPE", "Only png, jpg and jpeg images are accepted")
	}
	return fmt.Sprintf("%s%s", uuid.New().String(), ext), ct, nil
}

package helpers

import (
	"context"
	"mime"
	"mime/multipart"
	"path/filepath"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

// GetFileContentType tipo declarado por el cliente o, si falta, deducido de la extension
func GetFileContentType(file *multipart.FileHeader) string {
	if contentType := file.Header.Get("Content-Type"); contentType != "" {
		return contentType
	}
	if byExt := mime.TypeByExtension(filepath.Ext(file.Filename)); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}

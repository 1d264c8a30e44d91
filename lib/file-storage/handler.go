package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
)

type Provider interface {
	UploadFile(ctx context.Context, key string, fileReader io.Reader, fileSize int64, contentType string) error
	GetFile(ctx context.Context, key string) ([]byte, error)
	RemoveFile(ctx context.Context, key string) error
	MakeBucket(ctx context.Context) error
}

// LicenseDocumentKey clave del documento respaldatorio de una licencia
func LicenseDocumentKey(licenseID, fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "documento"
	}
	return fmt.Sprintf("licenses/%s/%s", licenseID, name)
}

// FileName nombre del archivo a partir de la clave
func FileName(key string) string {
	return path.Base(key)
}

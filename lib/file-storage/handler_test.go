package filestorage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	t.Run("license document key", func(t *testing.T) {
		require.Equal(t, "licenses/lic-1/certificado.pdf", LicenseDocumentKey("lic-1", "certificado.pdf"))
		require.Equal(t, "licenses/lic-1/certificado.pdf", LicenseDocumentKey("lic-1", "../../etc/certificado.pdf"))
		require.Equal(t, "licenses/lic-1/scan.png", LicenseDocumentKey("lic-1", `C:\docs\scan.png`))
		require.Equal(t, "licenses/lic-1/documento", LicenseDocumentKey("lic-1", ""))
		require.Equal(t, "certificado.pdf", FileName("licenses/lic-1/certificado.pdf"))
	})
	t.Run("connect sin endpoint", func(t *testing.T) {
		storage, err := Connect(context.Background(), "", "", "", "bucket", false)
		require.NoError(t, err)
		require.Nil(t, storage)
	})
}

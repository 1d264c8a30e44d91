package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSmtp(t *testing.T) {
	t.Run("sin configuracion no envia ni falla", func(t *testing.T) {
		provider := NewProvider("", "", "", "", true)
		require.NoError(t, provider.SendEMail("ana@workshift.test", "asunto", "cuerpo"))
	})
	t.Run("mensaje con encabezados", func(t *testing.T) {
		msg := BuildMessage("no-reply@workshift.test", "ana@workshift.test", "Autorizacion aprobada", "texto")
		require.True(t, strings.HasPrefix(msg, "From: no-reply@workshift.test\r\n"))
		require.Contains(t, msg, "Subject: WorkShift - Autorizacion aprobada\r\n")
		require.True(t, strings.HasSuffix(msg, "\r\n\r\ntexto\r\n"))
	})
}

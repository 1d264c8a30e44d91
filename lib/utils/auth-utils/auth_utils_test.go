package authutils

import (
	"testing"
	"workshift-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestAuthUtils(t *testing.T) {
	t.Run("password hash", func(t *testing.T) {
		hash, err := HashPassword("secreto123")
		require.NoError(t, err)
		require.NotEqual(t, "secreto123", hash)
		require.True(t, CheckPassword(hash, "secreto123"))
		require.False(t, CheckPassword(hash, "otra-clave"))
	})
	t.Run("token claims", func(t *testing.T) {
		tokenString, err := GetToken("clave", 60, "emp-1", "Ana Perez", models.ChiefRole)
		require.NoError(t, err)

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("clave"), nil
		})
		require.NoError(t, err)
		require.Equal(t, "emp-1", claims["sub"])
		require.Equal(t, "JEFE", claims["role"])
		require.Equal(t, false, claims["admin"])
	})
}

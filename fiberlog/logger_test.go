package fiberlog

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:   []string{TagMethod, TagPath, TagStatus, TagBody, TagActor, "desconocido"},
	}))
	app.Post("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "success"})
	})
	app.Get("/fail", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusConflict)
	})
	app.Get("/broken", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusInternalServerError)
	})

	t.Run("request exitoso", func(t *testing.T) {
		hook.Reset()
		resp, err := app.Test(httptest.NewRequest("POST", "/ok", strings.NewReader(`{"a":1}`)))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.InfoLevel, entry.Level)
		require.Equal(t, "POST", entry.Data[TagMethod])
		require.Equal(t, "/ok", entry.Data[TagPath])
		require.Equal(t, `{"a":1}`, entry.Data[TagBody])
		require.NotContains(t, entry.Data, "desconocido")
		// sin token no hay actor
		require.NotContains(t, entry.Data, TagActor)
	})
	t.Run("request con error", func(t *testing.T) {
		hook.Reset()
		_, err := app.Test(httptest.NewRequest("GET", "/fail", nil))
		require.NoError(t, err)
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.WarnLevel, entry.Level)
		require.Equal(t, fiber.StatusConflict, entry.Data[TagStatus])
	})
	t.Run("error del servidor", func(t *testing.T) {
		hook.Reset()
		_, err := app.Test(httptest.NewRequest("GET", "/broken", nil))
		require.NoError(t, err)
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.ErrorLevel, entry.Level)
	})
}

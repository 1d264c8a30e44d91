package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"workshift-backend/lib/rbac"
	authutils "workshift-backend/lib/utils/auth-utils"
	"workshift-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

type mailerMock struct {
	mu   sync.Mutex
	sent chan string
}

func (m *mailerMock) SendEMail(to, subject, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent <- subject
	return nil
}

func bearer(t *testing.T, userID string, role models.UserRole) string {
	token, err := authutils.GetToken(secret, 60, userID, "Test", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(10))
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Post("/api/v1/offers", ok)
	app.Put("/api/v1/licenses/:id/document", ok)

	t.Run("cuerpo grande rechazado", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/offers", strings.NewReader(strings.Repeat("x", 50)))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
	})
	t.Run("cuerpo chico", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/offers", strings.NewReader("{}"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
	t.Run("documentos exentos", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/licenses/1/document", strings.NewReader(strings.Repeat("x", 50)))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRbacMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(AuthorizationRequired(secret), RbacMiddleware(rbac.NewHandler()))
	app.Get("/api/v1/sanctions/employee/:id", func(c *fiber.Ctx) error {
		return c.SendString(GetUserID(c) + ":" + string(GetUserRole(c)))
	})
	app.Get("/api/v1/unregistered", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	do := func(t *testing.T, path, auth string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if auth != "" {
			req.Header.Set(fiber.HeaderAuthorization, auth)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	t.Run("sin token", func(t *testing.T) {
		require.Equal(t, fiber.StatusUnauthorized, do(t, "/api/v1/sanctions/employee/emp-1", ""))
	})
	t.Run("propias sanciones", func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, do(t, "/api/v1/sanctions/employee/emp-1", bearer(t, "emp-1", models.InspectorRole)))
	})
	t.Run("sanciones ajenas", func(t *testing.T) {
		require.Equal(t, fiber.StatusForbidden, do(t, "/api/v1/sanctions/employee/emp-2", bearer(t, "emp-1", models.InspectorRole)))
		require.Equal(t, fiber.StatusOK, do(t, "/api/v1/sanctions/employee/emp-2", bearer(t, "emp-1", models.SupervisorRole)))
	})
	t.Run("rol desconocido", func(t *testing.T) {
		require.Equal(t, fiber.StatusForbidden, do(t, "/api/v1/unregistered", bearer(t, "emp-1", "OTRO")))
	})
	t.Run("ruta sin regla", func(t *testing.T) {
		require.Equal(t, fiber.StatusOK, do(t, "/api/v1/unregistered", bearer(t, "emp-1", models.InspectorRole)))
	})
}

func TestErrNotify(t *testing.T) {
	mailer := &mailerMock{sent: make(chan string, 1)}
	app := fiber.New()
	app.Use(ErrNotify(mailer, "ops@example.com"))
	app.Get("/boom", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "falla"})
	})
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusConflict) })

	t.Run("sin aviso para 4xx", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusConflict, resp.StatusCode)
		select {
		case <-mailer.sent:
			t.Fatal("no se esperaba aviso")
		case <-time.After(50 * time.Millisecond):
		}
	})
	t.Run("aviso para 5xx", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		select {
		case subject := <-mailer.sent:
			require.Equal(t, "Error 500 en /boom", subject)
		case <-time.After(time.Second):
			t.Fatal("no llego el aviso")
		}
	})
}

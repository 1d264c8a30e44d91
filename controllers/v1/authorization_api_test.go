package apiv1

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"workshift-backend/lib/rbac"
	authutils "workshift-backend/lib/utils/auth-utils"
	"workshift-backend/middleware"
	"workshift-backend/models"
	apimodels "workshift-backend/models/api"
	authorizationapimodels "workshift-backend/models/api/authorization"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type authorizationStub struct {
	resolution *authorizationapimodels.ResolutionView
	err        error
	receipt    []byte
}

func (s authorizationStub) Create(string, models.UserRole, authorizationapimodels.AuthorizationCreate) (string, error) {
	return "new-id", s.err
}

func (s authorizationStub) Open(string, authorizationapimodels.AuthorizationCreate) (string, error) {
	return "new-id", s.err
}

func (s authorizationStub) Get(_ string, _ models.UserRole, id string) (*authorizationapimodels.AuthorizationView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &authorizationapimodels.AuthorizationView{ID: id}, nil
}

func (s authorizationStub) List(authorizationapimodels.AuthorizationFilter) ([]authorizationapimodels.AuthorizationView, error) {
	return []authorizationapimodels.AuthorizationView{}, s.err
}

func (s authorizationStub) History(string, models.UserRole, string) ([]authorizationapimodels.HistoryView, error) {
	return []authorizationapimodels.HistoryView{}, s.err
}

func (s authorizationStub) Approve(string, models.UserRole, string, authorizationapimodels.AuthorizationApprove) (*authorizationapimodels.ResolutionView, error) {
	return s.resolution, s.err
}

func (s authorizationStub) Reject(string, models.UserRole, string, authorizationapimodels.AuthorizationReject) (*authorizationapimodels.ResolutionView, error) {
	return s.resolution, s.err
}

func (s authorizationStub) Receipt(string, models.UserRole, string) ([]byte, error) {
	return s.receipt, s.err
}

func newTestApp(stub authorizationStub) *fiber.App {
	app := fiber.New()
	secured := app.Group("/api/v1", middleware.AuthorizationRequired(testSecret), middleware.RbacMiddleware(rbac.NewHandler()))
	InitAuthorizationApiRouters(secured, stub)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, role models.UserRole, body string) (int, apimodels.Response) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if role != "" {
		token, err := authutils.GetToken(testSecret, 60, "employee-1", "Test", role)
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out apimodels.Response
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) != 0 && strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestAuthorizationApi(t *testing.T) {
	resolution := &authorizationapimodels.ResolutionView{
		AuthorizationID: "auth-1",
		Status:          models.AuthorizationApproved,
		OriginatorKind:  models.OriginatorLicense,
		OriginatorID:    "license-1",
		FanOutError:     "la licencia ya no esta PENDIENTE",
	}

	t.Run("sin token", func(t *testing.T) {
		status, _ := doRequest(t, newTestApp(authorizationStub{}), http.MethodGet, "/api/v1/authorizations", "", "")
		require.Equal(t, http.StatusUnauthorized, status)
	})
	t.Run("inspector no puede aprobar", func(t *testing.T) {
		status, resp := doRequest(t, newTestApp(authorizationStub{}), http.MethodPut, "/api/v1/authorizations/auth-1/approve", models.InspectorRole, "")
		require.Equal(t, http.StatusForbidden, status)
		require.Equal(t, "fail", resp.Status)
	})
	t.Run("aprobacion", func(t *testing.T) {
		ok := *resolution
		ok.FanOutError = ""
		status, resp := doRequest(t, newTestApp(authorizationStub{resolution: &ok}), http.MethodPut, "/api/v1/authorizations/auth-1/approve", models.ChiefRole, "")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "success", resp.Status)
	})
	t.Run("falla parcial del origen", func(t *testing.T) {
		stub := authorizationStub{
			resolution: resolution,
			err:        models.NewPartialFailureError("autorizacion resuelta, origen sin actualizar"),
		}
		status, resp := doRequest(t, newTestApp(stub), http.MethodPut, "/api/v1/authorizations/auth-1/approve", models.AdminRole, "")
		require.Equal(t, http.StatusMultiStatus, status)
		require.Equal(t, "partial", resp.Status)
		require.NotNil(t, resp.Data)
	})
	t.Run("resolucion revertida no es exito", func(t *testing.T) {
		stub := authorizationStub{err: models.NewConflictError("no se pudo actualizar el origen, la autorizacion sigue pendiente")}
		status, resp := doRequest(t, newTestApp(stub), http.MethodPut, "/api/v1/authorizations/auth-1/approve", models.AdminRole, "")
		require.Equal(t, http.StatusConflict, status)
		require.Equal(t, "fail", resp.Status)
	})
	t.Run("falla parcial sin resultado no responde 2xx", func(t *testing.T) {
		stub := authorizationStub{err: models.NewPartialFailureError("origen sin actualizar")}
		status, resp := doRequest(t, newTestApp(stub), http.MethodPut, "/api/v1/authorizations/auth-1/approve", models.AdminRole, "")
		require.Equal(t, http.StatusInternalServerError, status)
		require.Equal(t, "fail", resp.Status)
	})
	t.Run("lectura prohibida", func(t *testing.T) {
		stub := authorizationStub{err: models.NewForbiddenError("no tiene permisos para ver la autorizacion auth-1")}
		status, _ := doRequest(t, newTestApp(stub), http.MethodGet, "/api/v1/authorizations/auth-1/history", models.InspectorRole, "")
		require.Equal(t, http.StatusForbidden, status)
	})
	t.Run("conflicto", func(t *testing.T) {
		stub := authorizationStub{err: models.NewConflictError("la autorizacion ya fue resuelta")}
		status, resp := doRequest(t, newTestApp(stub), http.MethodPut, "/api/v1/authorizations/auth-1/reject", models.ChiefRole, `{"observations":"turno cubierto por otro"}`)
		require.Equal(t, http.StatusConflict, status)
		require.Equal(t, "la autorizacion ya fue resuelta", resp.Message)
	})
	t.Run("rechazo con cuerpo invalido", func(t *testing.T) {
		status, _ := doRequest(t, newTestApp(authorizationStub{}), http.MethodPut, "/api/v1/authorizations/auth-1/reject", models.ChiefRole, "{")
		require.Equal(t, http.StatusBadRequest, status)
	})
	t.Run("error interno oculta el detalle", func(t *testing.T) {
		stub := authorizationStub{err: errors.New("connection refused")}
		status, resp := doRequest(t, newTestApp(stub), http.MethodGet, "/api/v1/authorizations/auth-1", models.InspectorRole, "")
		require.Equal(t, http.StatusInternalServerError, status)
		require.Equal(t, "Error al obtener la autorizacion", resp.Message)
	})
	t.Run("filtro de estado invalido", func(t *testing.T) {
		status, _ := doRequest(t, newTestApp(authorizationStub{}), http.MethodGet, "/api/v1/authorizations?status=OTRO", models.SupervisorRole, "")
		require.Equal(t, http.StatusBadRequest, status)
	})
	t.Run("comprobante", func(t *testing.T) {
		app := newTestApp(authorizationStub{receipt: []byte("%PDF-1.3")})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/authorizations/auth-1/pdf", nil)
		token, err := authutils.GetToken(testSecret, 60, "employee-1", "Test", models.InspectorRole)
		require.NoError(t, err)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	})
}

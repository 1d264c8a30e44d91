package employeehandler

import (
	"testing"
	testdb "workshift-backend/lib/utils/test-db"
	"workshift-backend/models"
	authapimodels "workshift-backend/models/api/auth"
	employeeapimodels "workshift-backend/models/api/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type mailerMock struct {
	sent []string
}

func (m *mailerMock) SendEMail(to, subject, message string) error {
	m.sent = append(m.sent, to)
	return nil
}

func employeeData(email string, role models.UserRole) employeeapimodels.EmployeeCreate {
	return employeeapimodels.EmployeeCreate{
		EmployeeData: employeeapimodels.EmployeeData{
			FirstName:  "Lucia",
			LastName:   "Gomez",
			Email:      email,
			FileNumber: "1234",
			Role:       role,
		},
		Password: "secreto123",
	}
}

func TestEmployeeHandler(t *testing.T) {
	gormDB := testdb.New(t)
	mailer := &mailerMock{}
	handler := NewHandler(gormDB, mailer, AuthConfig{JWTSecret: "secret", JWTExpireInSec: 60})

	var employeeID string
	t.Run("alta solo por administradores", func(t *testing.T) {
		_, err := handler.Create(models.ChiefRole, employeeData("lucia@workshift.test", models.InspectorRole))
		require.True(t, models.IsErrorKind(err, models.ForbiddenErrorKind))

		data := employeeData("lucia@workshift.test", models.InspectorRole)
		data.Password = "corta"
		_, err = handler.Create(models.AdminRole, data)
		require.True(t, models.IsErrorKind(err, models.ValidationErrorKind))

		employeeID, err = handler.Create(models.AdminRole, employeeData("Lucia@Workshift.test", models.InspectorRole))
		require.NoError(t, err)
		_, err = handler.Create(models.AdminRole, employeeData("lucia@workshift.test", models.ChiefRole))
		require.True(t, models.IsErrorKind(err, models.ConflictErrorKind))

		view, err := handler.Get(employeeID)
		require.NoError(t, err)
		require.Equal(t, "lucia@workshift.test", view.Email)
		require.Equal(t, "Lucia Gomez", view.FullName)
		require.True(t, view.IsActive)
	})
	t.Run("login", func(t *testing.T) {
		response, err := handler.Login(authapimodels.LoginRequest{Email: "LUCIA@workshift.test", Password: "secreto123"})
		require.NoError(t, err)

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(response.Token, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("secret"), nil
		})
		require.NoError(t, err)
		require.Equal(t, employeeID, claims["sub"])
		require.Equal(t, string(models.InspectorRole), claims["role"])

		_, err = handler.Login(authapimodels.LoginRequest{Email: "lucia@workshift.test", Password: "otra-clave"})
		require.True(t, errors.Is(err, ErrInvalidCredentials))
		_, err = handler.Login(authapimodels.LoginRequest{Email: "nadie@workshift.test", Password: "secreto123"})
		require.True(t, errors.Is(err, ErrInvalidCredentials))
	})
	t.Run("cambio de contraseña", func(t *testing.T) {
		other := testdb.AddEmployee(t, gormDB, "otro", models.InspectorRole)
		err := handler.ChangePassword(other.ID, models.InspectorRole, employeeID, employeeapimodels.PasswordChange{NewPassword: "nueva-clave"})
		require.True(t, models.IsErrorKind(err, models.ForbiddenErrorKind))

		require.NoError(t, handler.ChangePassword(employeeID, models.InspectorRole, employeeID, employeeapimodels.PasswordChange{NewPassword: "nueva-clave"}))
		require.Equal(t, []string{"lucia@workshift.test"}, mailer.sent)

		_, err = handler.Login(authapimodels.LoginRequest{Email: "lucia@workshift.test", Password: "nueva-clave"})
		require.NoError(t, err)
	})
	t.Run("baja logica", func(t *testing.T) {
		admin := testdb.AddEmployee(t, gormDB, "admin", models.AdminRole)
		err := handler.SetActive(admin.ID, models.AdminRole, admin.ID, false)
		require.True(t, models.IsErrorKind(err, models.ValidationErrorKind))

		require.NoError(t, handler.SetActive(admin.ID, models.AdminRole, employeeID, false))
		_, err = handler.Login(authapimodels.LoginRequest{Email: "lucia@workshift.test", Password: "nueva-clave"})
		require.True(t, errors.Is(err, ErrInvalidCredentials))

		list, err := handler.List(true)
		require.NoError(t, err)
		for _, item := range list {
			require.NotEqual(t, employeeID, item.ID)
		}
	})
	t.Run("modificacion", func(t *testing.T) {
		data := employeeData("lucia.gomez@workshift.test", models.SupervisorRole).EmployeeData
		require.True(t, models.IsErrorKind(handler.Update(models.InspectorRole, employeeID, data), models.ForbiddenErrorKind))
		require.NoError(t, handler.Update(models.AdminRole, employeeID, data))
		view, err := handler.Get(employeeID)
		require.NoError(t, err)
		require.Equal(t, models.SupervisorRole, view.Role)
		require.Equal(t, "lucia.gomez@workshift.test", view.Email)

		_, err = handler.Get("no-existe")
		require.True(t, models.IsErrorKind(err, models.NotFoundErrorKind))
	})
}

package employeehandler

import (
	"fmt"
	"strings"
	employeestore "workshift-backend/lib/employee/store"
	"workshift-backend/lib/smtp"
	authutils "workshift-backend/lib/utils/auth-utils"
	"workshift-backend/models"
	authapimodels "workshift-backend/models/api/auth"
	employeeapimodels "workshift-backend/models/api/employee"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrInvalidCredentials email o contraseña incorrectos, o empleado dado de baja
var ErrInvalidCredentials = errors.New("email o contraseña incorrectos")

type AuthConfig struct {
	JWTSecret      string
	JWTExpireInSec int
}

type Provider interface {
	Login(data authapimodels.LoginRequest) (authapimodels.JWTResponse, error)
	Create(role models.UserRole, data employeeapimodels.EmployeeCreate) (id string, err error)
	Get(id string) (*employeeapimodels.EmployeeView, error)
	List(onlyActive bool) ([]employeeapimodels.EmployeeView, error)
	Update(role models.UserRole, id string, data employeeapimodels.EmployeeData) error
	SetActive(actorID string, role models.UserRole, id string, active bool) error
	ChangePassword(actorID string, role models.UserRole, id string, data employeeapimodels.PasswordChange) error
}

func NewHandler(db *gorm.DB, mailer smtp.Provider, auth AuthConfig) Provider {
	return impl{
		store:  employeestore.NewInstance(db),
		mailer: mailer,
		auth:   auth,
	}
}

type impl struct {
	store  employeestore.Provider
	mailer smtp.Provider
	auth   AuthConfig
}

func (i impl) getLogger(employeeID string) *log.Entry {
	return log.WithField("employee_id", employeeID)
}

func (i impl) Login(data authapimodels.LoginRequest) (authapimodels.JWTResponse, error) {
	if err := data.Validate(); err != nil {
		return authapimodels.JWTResponse{}, models.NewValidationError(err.Error())
	}
	logger := log.WithField("email", data.Email)
	rec, err := i.store.FindByEmail(data.Email)
	if err != nil {
		logger.WithError(err).Error("error al buscar el empleado por email")
		return authapimodels.JWTResponse{}, err
	}
	if rec == nil || !rec.IsActive {
		logger.Debug("empleado inexistente o inactivo")
		return authapimodels.JWTResponse{}, ErrInvalidCredentials
	}
	if !authutils.CheckPassword(rec.Password, data.Password) {
		logger.Debug("el empleado no paso la verificacion de la contraseña")
		return authapimodels.JWTResponse{}, ErrInvalidCredentials
	}
	token, err := authutils.GetToken(i.auth.JWTSecret, i.auth.JWTExpireInSec, rec.ID, rec.GetFullName(), rec.Role)
	if err != nil {
		logger.WithError(err).Error("error al generar el JWT")
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{Token: token}, nil
}

func (i impl) Create(role models.UserRole, data employeeapimodels.EmployeeCreate) (string, error) {
	if !role.IsAdmin() {
		return "", models.NewForbiddenError("solo un administrador puede dar de alta empleados")
	}
	if err := data.Validate(); err != nil {
		return "", models.NewValidationError(err.Error())
	}
	existing, err := i.store.FindByEmail(data.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", models.NewConflictError("ya existe un empleado con el email %s", data.Email)
	}
	hash, err := authutils.HashPassword(data.Password)
	if err != nil {
		return "", err
	}
	rec := dbmodels.Employee{
		Password:    hash,
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		Email:       strings.ToLower(data.Email),
		PhoneNumber: data.PhoneNumber,
		FileNumber:  data.FileNumber,
		Role:        data.Role,
		IsActive:    true,
	}
	if err = rec.Validate(); err != nil {
		return "", models.NewValidationError(err.Error())
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "error al guardar el empleado")
	}
	i.getLogger(id).WithField("role", rec.Role).Info("empleado creado")
	return id, nil
}

func (i impl) Get(id string) (*employeeapimodels.EmployeeView, error) {
	rec, err := i.getEmployee(id)
	if err != nil {
		return nil, err
	}
	result := employeeapimodels.EmployeeConvert(*rec)
	return &result, nil
}

func (i impl) List(onlyActive bool) ([]employeeapimodels.EmployeeView, error) {
	list, err := i.store.List(onlyActive)
	if err != nil {
		return nil, err
	}
	result := make([]employeeapimodels.EmployeeView, 0, len(list))
	for _, rec := range list {
		result = append(result, employeeapimodels.EmployeeConvert(rec))
	}
	return result, nil
}

func (i impl) Update(role models.UserRole, id string, data employeeapimodels.EmployeeData) error {
	if !role.IsAdmin() {
		return models.NewForbiddenError("solo un administrador puede modificar empleados")
	}
	if err := data.Validate(); err != nil {
		return models.NewValidationError(err.Error())
	}
	rec, err := i.getEmployee(id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(rec.Email, data.Email) {
		existing, err := i.store.FindByEmail(data.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return models.NewConflictError("ya existe un empleado con el email %s", data.Email)
		}
	}
	updMap := map[string]interface{}{
		"first_name":   data.FirstName,
		"last_name":    data.LastName,
		"email":        strings.ToLower(data.Email),
		"phone_number": data.PhoneNumber,
		"file_number":  data.FileNumber,
		"role":         data.Role,
	}
	if err = i.store.Update(id, updMap); err != nil {
		return errors.Wrap(err, "error al actualizar el empleado")
	}
	i.getLogger(id).Info("empleado actualizado")
	return nil
}

// SetActive baja logica: los empleados no se eliminan mientras tengan registros asociados
func (i impl) SetActive(actorID string, role models.UserRole, id string, active bool) error {
	if !role.IsAdmin() {
		return models.NewForbiddenError("solo un administrador puede dar de baja empleados")
	}
	if actorID == id && !active {
		return models.NewValidationError("no puede darse de baja a si mismo")
	}
	if _, err := i.getEmployee(id); err != nil {
		return err
	}
	if err := i.store.Update(id, map[string]interface{}{"is_active": active}); err != nil {
		return errors.Wrap(err, "error al actualizar el empleado")
	}
	i.getLogger(id).WithField("active", active).Info("estado del empleado actualizado")
	return nil
}

func (i impl) ChangePassword(actorID string, role models.UserRole, id string, data employeeapimodels.PasswordChange) error {
	if actorID != id && !role.IsAdmin() {
		return models.NewForbiddenError("solo puede cambiar su propia contraseña")
	}
	if err := data.Validate(); err != nil {
		return models.NewValidationError(err.Error())
	}
	rec, err := i.getEmployee(id)
	if err != nil {
		return err
	}
	hash, err := authutils.HashPassword(data.NewPassword)
	if err != nil {
		return err
	}
	if err = i.store.Update(id, map[string]interface{}{"password": hash}); err != nil {
		return errors.Wrap(err, "error al actualizar la contraseña")
	}
	logger := i.getLogger(id)
	logger.Info("contraseña actualizada")
	if i.mailer != nil {
		message := fmt.Sprintf("Hola %s,\r\n\r\nLa contraseña de tu cuenta fue modificada.", rec.GetFullName())
		if err = i.mailer.SendEMail(rec.Email, "Cambio de contraseña", message); err != nil {
			logger.WithError(err).Warn("no se pudo notificar el cambio de contraseña")
		}
	}
	return nil
}

func (i impl) getEmployee(id string) (*dbmodels.Employee, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("empleado %s no encontrado", id)
	}
	return rec, nil
}

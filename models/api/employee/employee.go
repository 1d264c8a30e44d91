package employeeapimodels

import (
	"net/mail"
	"workshift-backend/models"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
)

type EmployeeData struct {
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phone_number"`
	FileNumber  string          `json:"file_number"` // legajo
	Role        models.UserRole `json:"role"`
}

func (r EmployeeData) Validate() error {
	if r.FirstName == "" {
		return errors.New("falta el nombre")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("el email tiene un formato invalido")
	}
	if !r.Role.IsValid() {
		return errors.Errorf("rol desconocido: %v", r.Role)
	}
	return nil
}

type EmployeeCreate struct {
	EmployeeData
	Password string `json:"password"`
}

func (r EmployeeCreate) Validate() error {
	if err := r.EmployeeData.Validate(); err != nil {
		return err
	}
	if len(r.Password) < 8 {
		return errors.New("la contraseña debe tener al menos 8 caracteres")
	}
	return nil
}

type PasswordChange struct {
	NewPassword string `json:"new_password"`
}

func (r PasswordChange) Validate() error {
	if len(r.NewPassword) < 8 {
		return errors.New("la contraseña debe tener al menos 8 caracteres")
	}
	return nil
}

type EmployeeView struct {
	EmployeeData
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	RoleName string `json:"role_name"`
	IsActive bool   `json:"is_active"`
}

func EmployeeConvert(rec dbmodels.Employee) EmployeeView {
	return EmployeeView{
		EmployeeData: EmployeeData{
			FirstName:   rec.FirstName,
			LastName:    rec.LastName,
			Email:       rec.Email,
			PhoneNumber: rec.PhoneNumber,
			FileNumber:  rec.FileNumber,
			Role:        rec.Role,
		},
		ID:       rec.ID,
		FullName: rec.GetFullName(),
		RoleName: rec.Role.ToHuman(),
		IsActive: rec.IsActive,
	}
}

// EmployeeShort datos minimos del empleado para vistas desnormalizadas
type EmployeeShort struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

func EmployeeShortConvert(rec *dbmodels.Employee) *EmployeeShort {
	if rec == nil {
		return nil
	}
	return &EmployeeShort{
		ID:       rec.ID,
		FullName: rec.GetFullName(),
	}
}

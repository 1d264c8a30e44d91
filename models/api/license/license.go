package licenseapimodels

import (
	"time"
	"workshift-backend/models"
	employeeapimodels "workshift-backend/models/api/employee"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
)

type LicenseData struct {
	Type         models.LicenseType `json:"type"`
	DateFrom     string             `json:"date_from"` // AAAA-MM-DD
	DateTo       string             `json:"date_to"`   // AAAA-MM-DD
	Observations string             `json:"observations"`
}

func (r LicenseData) Validate() error {
	if err := r.Type.Validate(); err != nil {
		return err
	}
	_, _, err := r.GetDates()
	return err
}

// GetDates rango ya validado: fin no anterior al inicio
func (r LicenseData) GetDates() (from, to time.Time, err error) {
	from, err = models.ParseDate(r.DateFrom)
	if err != nil {
		return from, to, err
	}
	to, err = models.ParseDate(r.DateTo)
	if err != nil {
		return from, to, err
	}
	if to.Before(from) {
		return from, to, errors.New("la fecha de fin no puede ser anterior a la de inicio")
	}
	return from, to, nil
}

type LicenseCreate struct {
	LicenseData
	EmployeeID string `json:"employee_id"` // solo jefe/admin pueden cargar licencias de otro empleado
}

type LicenseEdit struct {
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
	Observations string `json:"observations"`
}

func (r LicenseEdit) Validate() error {
	_, _, err := r.GetDates()
	return err
}

func (r LicenseEdit) GetDates() (from, to time.Time, err error) {
	return LicenseData{DateFrom: r.DateFrom, DateTo: r.DateTo}.GetDates()
}

type LicenseView struct {
	ID           string                           `json:"id"`
	EmployeeID   string                           `json:"employee_id"`
	Employee     *employeeapimodels.EmployeeShort `json:"employee,omitempty"`
	Type         models.LicenseType               `json:"type"`
	DateFrom     string                           `json:"date_from"`
	DateTo       string                           `json:"date_to"`
	Days         int                              `json:"days"`
	Status       models.LicenseStatus             `json:"status"`
	Observations string                           `json:"observations"`
	HasDocument  bool                             `json:"has_document"`
	CreatedAt    time.Time                        `json:"created_at"`
}

func LicenseConvert(rec dbmodels.License) LicenseView {
	return LicenseView{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		Employee:     employeeapimodels.EmployeeShortConvert(rec.Employee),
		Type:         rec.Type,
		DateFrom:     rec.DateFrom.Format(models.DateLayout),
		DateTo:       rec.DateTo.Format(models.DateLayout),
		Days:         rec.Days,
		Status:       rec.Status,
		Observations: rec.Observations,
		HasDocument:  rec.DocumentKey != "",
		CreatedAt:    rec.CreatedAt,
	}
}

// CreateResult resultado del alta: la autorizacion solo existe para licencias ordinarias
type CreateResult struct {
	LicenseID       string               `json:"license_id"`
	Status          models.LicenseStatus `json:"status"`
	AuthorizationID string               `json:"authorization_id,omitempty"`
}

package sanctionapimodels

import (
	"time"
	"workshift-backend/models"
	employeeapimodels "workshift-backend/models/api/employee"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
)

type SanctionCreate struct {
	EmployeeID string `json:"employee_id"`
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
	Reason     string `json:"reason"`
}

func (r SanctionCreate) Validate() error {
	if r.EmployeeID == "" {
		return errors.New("falta el empleado")
	}
	if r.Reason == "" {
		return errors.New("falta el motivo de la sancion")
	}
	_, _, err := r.GetDates()
	return err
}

func (r SanctionCreate) GetDates() (from, to time.Time, err error) {
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

type SanctionView struct {
	ID         string                           `json:"id"`
	EmployeeID string                           `json:"employee_id"`
	Employee   *employeeapimodels.EmployeeShort `json:"employee,omitempty"`
	DateFrom   string                           `json:"date_from"`
	DateTo     string                           `json:"date_to"`
	Reason     string                           `json:"reason"`
	Status     models.SanctionStatus            `json:"status"`
	CreatedAt  time.Time                        `json:"created_at"`
}

func SanctionConvert(rec dbmodels.Sanction) SanctionView {
	return SanctionView{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Employee:   employeeapimodels.EmployeeShortConvert(rec.Employee),
		DateFrom:   rec.DateFrom.Format(models.DateLayout),
		DateTo:     rec.DateTo.Format(models.DateLayout),
		Reason:     rec.Reason,
		Status:     rec.Status,
		CreatedAt:  rec.CreatedAt,
	}
}

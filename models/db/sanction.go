package dbmodels

import (
	"time"
	"workshift-backend/models"

	"github.com/pkg/errors"
)

type Sanction struct {
	BaseModel
	EmployeeID string    `gorm:"type:varchar(36);index"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID"`
	DateFrom   time.Time `gorm:"type:date"`
	DateTo     time.Time `gorm:"type:date"`
	Reason     string
	Status     models.SanctionStatus `gorm:"type:varchar(20);index"`
	CreatedBy  string                `gorm:"type:varchar(36)"`
}

func (s Sanction) Validate() error {
	if s.EmployeeID == "" {
		return errors.New("falta el empleado")
	}
	if s.DateTo.Before(s.DateFrom) {
		return errors.New("la fecha de fin no puede ser anterior a la de inicio")
	}
	if s.Reason == "" {
		return errors.New("falta el motivo de la sancion")
	}
	return nil
}

// Covers la sancion abarca la fecha dada
func (s Sanction) Covers(date time.Time) bool {
	date = models.DateOf(date)
	return !date.Before(models.DateOf(s.DateFrom)) && !date.After(models.DateOf(s.DateTo))
}

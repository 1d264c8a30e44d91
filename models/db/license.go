package dbmodels

import (
	"time"
	"workshift-backend/models"

	"github.com/pkg/errors"
)

type License struct {
	BaseModel
	EmployeeID   string             `gorm:"type:varchar(36);index"`
	Employee     *Employee          `gorm:"foreignKey:EmployeeID"`
	Type         models.LicenseType `gorm:"type:varchar(20)"`
	DateFrom     time.Time          `gorm:"type:date;index"`
	DateTo       time.Time          `gorm:"type:date;index"`
	Days         int
	Status       models.LicenseStatus `gorm:"type:varchar(20);index"`
	Observations string
	DocumentKey  string `gorm:"type:varchar(255)"` // clave del documento en S3
}

func (l License) Validate() error {
	if l.EmployeeID == "" {
		return errors.New("falta el empleado")
	}
	if err := l.Type.Validate(); err != nil {
		return err
	}
	if l.DateTo.Before(l.DateFrom) {
		return errors.New("la fecha de fin no puede ser anterior a la de inicio")
	}
	if l.Days != models.DaysInclusive(l.DateFrom, l.DateTo) {
		return errors.New("la cantidad de dias no coincide con el rango de fechas")
	}
	return nil
}

// SetDates fija el rango y recalcula los dias
func (l *License) SetDates(from, to time.Time) {
	l.DateFrom = models.DateOf(from)
	l.DateTo = models.DateOf(to)
	l.Days = models.DaysInclusive(l.DateFrom, l.DateTo)
}

package eligibility

import (
	"fmt"
	"time"
	licensestore "workshift-backend/lib/license/store"
	sanctionstore "workshift-backend/lib/sanction/store"
	"workshift-backend/models"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CheckMode string

const (
	// CheckToday solo importa el dia actual, sin mirar las fechas pedidas
	CheckToday CheckMode = "today"
	// CheckRange se evalua la superposicion con el rango pedido
	CheckRange CheckMode = "range"
)

func ParseCheckMode(value string) (CheckMode, error) {
	switch CheckMode(value) {
	case "", CheckToday:
		return CheckToday, nil
	case CheckRange:
		return CheckRange, nil
	}
	return "", errors.Errorf("modo de verificacion desconocido: %v", value)
}

type Result struct {
	Eligible bool
	Reason   string
}

type Provider interface {
	Check(employeeID string, dateFrom, dateTo time.Time) (Result, error)
	// Window rango efectivo que se evalua segun el modo
	Window(dateFrom, dateTo time.Time) (from, to time.Time)
}

func NewHandler(db *gorm.DB, mode CheckMode, now func() time.Time) Provider {
	return impl{
		sanctionStore: sanctionstore.NewInstance(db),
		licenseStore:  licensestore.NewInstance(db),
		mode:          mode,
		now:           now,
	}
}

type impl struct {
	sanctionStore sanctionstore.Provider
	licenseStore  licensestore.Provider
	mode          CheckMode
	now           func() time.Time
}

func (i impl) Check(employeeID string, dateFrom, dateTo time.Time) (Result, error) {
	from, to := i.Window(dateFrom, dateTo)
	logger := log.
		WithField("employee_id", employeeID).
		WithField("check_mode", i.mode)

	sanctioned, err := i.sanctionStore.ExistsActive(employeeID, from, to)
	if err != nil {
		return Result{}, errors.Wrap(err, "error al verificar sanciones activas")
	}
	if sanctioned {
		logger.Info("empleado con sancion activa")
		return Result{Reason: fmt.Sprintf("El empleado tiene una sancion activa %s", i.describe(from, to))}, nil
	}

	onLeave, err := i.licenseStore.ExistsOverlapping(employeeID, from, to, models.LicenseInEffectStatuses, "")
	if err != nil {
		return Result{}, errors.Wrap(err, "error al verificar licencias vigentes")
	}
	if onLeave {
		logger.Info("empleado con licencia vigente")
		return Result{Reason: fmt.Sprintf("El empleado tiene una licencia vigente %s", i.describe(from, to))}, nil
	}
	return Result{Eligible: true}, nil
}

func (i impl) Window(dateFrom, dateTo time.Time) (time.Time, time.Time) {
	if i.mode == CheckRange && !dateFrom.IsZero() {
		if dateTo.IsZero() || dateTo.Before(dateFrom) {
			dateTo = dateFrom
		}
		return models.DateOf(dateFrom), models.DateOf(dateTo)
	}
	today := models.DateOf(i.now())
	return today, today
}

func (i impl) describe(from, to time.Time) string {
	if from.Equal(to) {
		return fmt.Sprintf("el %s", from.Format(models.DateLayout))
	}
	return fmt.Sprintf("entre el %s y el %s", from.Format(models.DateLayout), to.Format(models.DateLayout))
}

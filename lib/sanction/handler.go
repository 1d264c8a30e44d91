package sanctionhandler

import (
	"time"
	"workshift-backend/lib/eligibility"
	employeestore "workshift-backend/lib/employee/store"
	sanctionstore "workshift-backend/lib/sanction/store"
	"workshift-backend/models"
	sanctionapimodels "workshift-backend/models/api/sanction"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	SweepExpired() (count int64, err error)
	Create(actorID string, role models.UserRole, data sanctionapimodels.SanctionCreate) (id string, err error)
	Annul(actorID string, role models.UserRole, id string) error
	Get(id string) (*sanctionapimodels.SanctionView, error)
	List(employeeID string) ([]sanctionapimodels.SanctionView, error)
}

func NewHandler(db *gorm.DB, mode eligibility.CheckMode, now func() time.Time) Provider {
	return impl{
		store:         sanctionstore.NewInstance(db),
		employeeStore: employeestore.NewInstance(db),
		mode:          mode,
		now:           now,
	}
}

type impl struct {
	store         sanctionstore.Provider
	employeeStore employeestore.Provider
	mode          eligibility.CheckMode
	now           func() time.Time
}

func (i impl) getLogger(employeeID string) *log.Entry {
	return log.WithField("employee_id", employeeID)
}

// SweepExpired idempotente: una segunda pasada el mismo dia no cambia nada
func (i impl) SweepExpired() (int64, error) {
	count, err := i.store.FinishExpired(i.today())
	if err != nil {
		return 0, errors.Wrap(err, "error al finalizar sanciones vencidas")
	}
	if count > 0 {
		log.WithField("count", count).Info("sanciones vencidas finalizadas")
	}
	return count, nil
}

func (i impl) Create(actorID string, role models.UserRole, data sanctionapimodels.SanctionCreate) (string, error) {
	if !role.CanResolveAuthorizations() {
		return "", models.NewForbiddenError("solo jefes y administradores pueden aplicar sanciones")
	}
	dateFrom, dateTo, err := data.GetDates()
	if err != nil {
		return "", models.NewValidationError(err.Error())
	}
	employee, err := i.employeeStore.GetByID(data.EmployeeID)
	if err != nil {
		return "", err
	}
	if employee == nil {
		return "", models.NewNotFoundError("empleado %s no encontrado", data.EmployeeID)
	}

	from, to := i.today(), i.today()
	if i.mode == eligibility.CheckRange {
		from, to = dateFrom, dateTo
	}
	exists, err := i.store.ExistsActive(data.EmployeeID, from, to)
	if err != nil {
		return "", errors.Wrap(err, "error al verificar sanciones activas")
	}
	if exists {
		return "", models.NewConflictError("el empleado %s ya tiene una sancion activa", employee.GetFullName())
	}

	rec := dbmodels.Sanction{
		EmployeeID: data.EmployeeID,
		DateFrom:   models.DateOf(dateFrom),
		DateTo:     models.DateOf(dateTo),
		Reason:     data.Reason,
		Status:     models.SanctionActive,
		CreatedBy:  actorID,
	}
	if err = rec.Validate(); err != nil {
		return "", models.NewValidationError(err.Error())
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "error al guardar la sancion")
	}
	i.getLogger(data.EmployeeID).
		WithField("sanction_id", id).
		WithField("created_by", actorID).
		Info("sancion aplicada")
	return id, nil
}

func (i impl) Annul(actorID string, role models.UserRole, id string) error {
	if !role.IsAdmin() {
		return models.NewForbiddenError("solo un administrador puede anular sanciones")
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.NewNotFoundError("sancion %s no encontrada", id)
	}
	if !rec.Status.IsAllowChange(models.SanctionCancelled) {
		return models.NewConflictError("la sancion esta %s y no se puede anular", rec.Status)
	}
	changed, err := i.store.ChangeStatus(id, models.SanctionCancelled)
	if err != nil {
		return errors.Wrap(err, "error al anular la sancion")
	}
	if !changed {
		return models.NewConflictError("la sancion cambio de estado, no se puede anular")
	}
	i.getLogger(rec.EmployeeID).
		WithField("sanction_id", id).
		WithField("annulled_by", actorID).
		Info("sancion anulada")
	return nil
}

func (i impl) Get(id string) (*sanctionapimodels.SanctionView, error) {
	if _, err := i.SweepExpired(); err != nil {
		return nil, err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("sancion %s no encontrada", id)
	}
	result := sanctionapimodels.SanctionConvert(*rec)
	return &result, nil
}

func (i impl) List(employeeID string) ([]sanctionapimodels.SanctionView, error) {
	if _, err := i.SweepExpired(); err != nil {
		return nil, err
	}
	list, err := i.store.List(employeeID)
	if err != nil {
		return nil, err
	}
	result := make([]sanctionapimodels.SanctionView, 0, len(list))
	for _, rec := range list {
		result = append(result, sanctionapimodels.SanctionConvert(rec))
	}
	return result, nil
}

func (i impl) today() time.Time {
	return models.DateOf(i.now())
}

package authorizationhandler

import (
	"context"
	"fmt"
	"time"
	authorizationhistorystore "workshift-backend/lib/authorization/history-store"
	authorizationstore "workshift-backend/lib/authorization/store"
	"workshift-backend/lib/eligibility"
	employeestore "workshift-backend/lib/employee/store"
	pdfexport "workshift-backend/lib/export/pdf"
	licensestore "workshift-backend/lib/license/store"
	offerstore "workshift-backend/lib/offer/store"
	"workshift-backend/lib/smtp"
	swaprequeststore "workshift-backend/lib/swap-request/store"
	"workshift-backend/lib/utils/lock"
	"workshift-backend/models"
	authorizationapimodels "workshift-backend/models/api/authorization"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(actorID string, role models.UserRole, data authorizationapimodels.AuthorizationCreate) (id string, err error)
	// Open alta sin control de rol, la usan los flujos de solicitud, oferta y licencia
	Open(actorID string, data authorizationapimodels.AuthorizationCreate) (id string, err error)
	// Get, History y Receipt: empleado de la autorizacion, partes del origen o supervisores en adelante
	Get(actorID string, role models.UserRole, id string) (*authorizationapimodels.AuthorizationView, error)
	List(filter authorizationapimodels.AuthorizationFilter) ([]authorizationapimodels.AuthorizationView, error)
	History(actorID string, role models.UserRole, id string) ([]authorizationapimodels.HistoryView, error)
	Approve(actorID string, role models.UserRole, id string, data authorizationapimodels.AuthorizationApprove) (*authorizationapimodels.ResolutionView, error)
	Reject(actorID string, role models.UserRole, id string, data authorizationapimodels.AuthorizationReject) (*authorizationapimodels.ResolutionView, error)
	Receipt(actorID string, role models.UserRole, id string) ([]byte, error)
}

const openLockWait = 5 * time.Second

type Config struct {
	// AtomicFanOut resolucion y actualizacion del origen en la misma transaccion
	AtomicFanOut bool
}

func NewHandler(db *gorm.DB, checker eligibility.Provider, mailer smtp.Provider, cfg Config, now func() time.Time) Provider {
	return impl{
		db:            db,
		stores:        newStores(db),
		employeeStore: employeestore.NewInstance(db),
		checker:       checker,
		mailer:        mailer,
		cfg:           cfg,
		now:           now,
	}
}

type stores struct {
	authorization authorizationstore.Provider
	history       authorizationhistorystore.Provider
	request       swaprequeststore.Provider
	offer         offerstore.Provider
	license       licensestore.Provider
}

func newStores(tx *gorm.DB) stores {
	return stores{
		authorization: authorizationstore.NewInstance(tx),
		history:       authorizationhistorystore.NewInstance(tx),
		request:       swaprequeststore.NewInstance(tx),
		offer:         offerstore.NewInstance(tx),
		license:       licensestore.NewInstance(tx),
	}
}

type impl struct {
	db            *gorm.DB
	stores        stores
	employeeStore employeestore.Provider
	checker       eligibility.Provider
	mailer        smtp.Provider
	cfg           Config
	now           func() time.Time
}

func (i impl) getLogger(id string) *log.Entry {
	return log.WithField("authorization_id", id)
}

func (i impl) Create(actorID string, role models.UserRole, data authorizationapimodels.AuthorizationCreate) (string, error) {
	if !role.CanResolveAuthorizations() && data.EmployeeID != actorID {
		return "", models.NewForbiddenError("solo se pueden pedir autorizaciones para uno mismo")
	}
	return i.Open(actorID, data)
}

func (i impl) Open(actorID string, data authorizationapimodels.AuthorizationCreate) (string, error) {
	if err := data.Validate(); err != nil {
		if models.ErrorKindOf(err) == "" {
			return "", models.NewValidationError(err.Error())
		}
		return "", err
	}
	ref, err := data.GetOriginator()
	if err != nil {
		return "", err
	}
	employee, err := i.employeeStore.GetByID(data.EmployeeID)
	if err != nil {
		return "", err
	}
	if employee == nil {
		return "", models.NewNotFoundError("empleado %s no encontrado", data.EmployeeID)
	}
	origin, err := loadOriginator(i.stores, ref)
	if err != nil {
		return "", err
	}
	if !origin.resolvable {
		return "", models.NewConflictError("%s %s esta en estado %s y no admite autorizacion", ref.Kind, ref.ID, origin.status)
	}

	result, err := i.checker.Check(data.EmployeeID, origin.dateFrom, origin.dateTo)
	if err != nil {
		return "", err
	}
	if !result.Eligible {
		return "", models.NewConflictError(result.Reason)
	}

	rec := dbmodels.Authorization{
		Type:         data.Type,
		EmployeeID:   data.EmployeeID,
		Status:       models.AuthorizationPending,
		Observations: data.Observations,
	}
	rec.SetOriginator(ref)
	// una sola alta a la vez por origen, la verificacion de pendientes y el insert no son atomicos
	locked, err := lock.WithDelay(context.Background(), "authorization:"+ref.ID, openLockWait, func() error {
		pending, err := i.stores.authorization.FindPending(ref)
		if err != nil {
			return err
		}
		if pending != nil {
			return models.NewConflictError("ya existe una autorizacion pendiente para %s %s", ref.Kind, ref.ID)
		}
		id, err := i.stores.authorization.Create(rec)
		if err != nil {
			return errors.Wrap(err, "error al guardar la autorizacion")
		}
		rec.ID = id
		return nil
	})
	if err != nil {
		return "", err
	}
	if !locked {
		return "", models.NewConflictError("%s %s tiene otra autorizacion en curso", ref.Kind, ref.ID)
	}
	id := rec.ID
	audit(i.stores, rec, actorID, "", "autorizacion creada")
	i.getLogger(id).
		WithField("type", rec.Type).
		WithField("originator", ref.ID).
		Info("autorizacion creada")
	return id, nil
}

func (i impl) Get(actorID string, role models.UserRole, id string) (*authorizationapimodels.AuthorizationView, error) {
	rec, err := i.getVisible(actorID, role, id)
	if err != nil {
		return nil, err
	}
	result := authorizationapimodels.AuthorizationConvert(*rec)
	return &result, nil
}

func (i impl) getVisible(actorID string, role models.UserRole, id string) (*dbmodels.Authorization, error) {
	rec, err := i.stores.authorization.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("autorizacion %s no encontrada", id)
	}
	if !canView(actorID, role, *rec) {
		return nil, models.NewForbiddenError("no tiene permisos para ver la autorizacion %s", id)
	}
	return rec, nil
}

func canView(actorID string, role models.UserRole, rec dbmodels.Authorization) bool {
	if role.CanViewOthers() || rec.EmployeeID == actorID {
		return true
	}
	switch {
	case rec.Request != nil:
		return rec.Request.RequesterID == actorID || rec.Request.RecipientID == actorID
	case rec.Offer != nil:
		return rec.Offer.OffererID == actorID || (rec.Offer.TakerID != nil && *rec.Offer.TakerID == actorID)
	case rec.License != nil:
		return rec.License.EmployeeID == actorID
	}
	return false
}

func (i impl) List(filter authorizationapimodels.AuthorizationFilter) ([]authorizationapimodels.AuthorizationView, error) {
	list, err := i.stores.authorization.List(filter.Status)
	if err != nil {
		return nil, err
	}
	result := make([]authorizationapimodels.AuthorizationView, 0, len(list))
	for _, rec := range list {
		result = append(result, authorizationapimodels.AuthorizationConvert(rec))
	}
	return result, nil
}

func (i impl) History(actorID string, role models.UserRole, id string) ([]authorizationapimodels.HistoryView, error) {
	if _, err := i.getVisible(actorID, role, id); err != nil {
		return nil, err
	}
	list, err := i.stores.history.List(id)
	if err != nil {
		return nil, err
	}
	result := make([]authorizationapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, authorizationapimodels.HistoryConvert(rec))
	}
	return result, nil
}

func (i impl) Approve(actorID string, role models.UserRole, id string, data authorizationapimodels.AuthorizationApprove) (*authorizationapimodels.ResolutionView, error) {
	return i.resolve(actorID, role, id, models.AuthorizationApproved, data.Observations)
}

func (i impl) Reject(actorID string, role models.UserRole, id string, data authorizationapimodels.AuthorizationReject) (*authorizationapimodels.ResolutionView, error) {
	if !role.CanResolveAuthorizations() {
		return nil, models.NewForbiddenError("solo jefes y administradores pueden resolver autorizaciones")
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return i.resolve(actorID, role, id, models.AuthorizationRejected, &data.Observations)
}

func (i impl) Receipt(actorID string, role models.UserRole, id string) ([]byte, error) {
	view, err := i.Get(actorID, role, id)
	if err != nil {
		return nil, err
	}
	file, err := pdfexport.AuthorizationReceipt(*view)
	if err != nil {
		return nil, errors.Wrap(err, "error al generar el comprobante")
	}
	return file, nil
}

func (i impl) resolve(actorID string, role models.UserRole, id string, target models.AuthorizationStatus, observations *string) (*authorizationapimodels.ResolutionView, error) {
	if !role.CanResolveAuthorizations() {
		return nil, models.NewForbiddenError("solo jefes y administradores pueden resolver autorizaciones")
	}
	logger := i.getLogger(id).
		WithField("actor_id", actorID).
		WithField("target", target)

	var (
		rec    *dbmodels.Authorization
		result *authorizationapimodels.ResolutionView
	)
	if i.cfg.AtomicFanOut {
		err := i.db.Transaction(func(tx *gorm.DB) error {
			txStores := newStores(tx)
			var err error
			rec, err = i.close(txStores, actorID, id, target, observations)
			if err != nil {
				return err
			}
			result = newResolution(*rec, target)
			result.OriginatorStatus, err = fanOut(txStores, *rec, target)
			if err != nil {
				// se revierte todo: no hay resultado parcial que informar
				logger.WithError(err).Error("error al actualizar el origen, se revierte la resolucion")
				if models.IsErrorKind(err, models.ConflictErrorKind) {
					return models.NewConflictError("no se pudo actualizar el origen, la autorizacion sigue pendiente: %s", err.Error())
				}
				return errors.Wrap(err, "no se pudo actualizar el origen, la autorizacion sigue pendiente")
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		rec, err = i.close(i.stores, actorID, id, target, observations)
		if err != nil {
			return nil, err
		}
		result = newResolution(*rec, target)
		result.OriginatorStatus, err = fanOut(i.stores, *rec, target)
		if err != nil {
			logger.WithError(err).Error("autorizacion resuelta pero no se pudo actualizar el origen")
			result.FanOutError = err.Error()
			return result, models.NewPartialFailureError("la autorizacion quedo %s pero no se pudo actualizar el origen: %s", target, err.Error())
		}
	}
	logger.Info("autorizacion resuelta")
	i.notifyResolution(*rec, target)
	return result, nil
}

// close cambia PENDIENTE -> target con compare-and-set
func (i impl) close(s stores, actorID, id string, target models.AuthorizationStatus, observations *string) (*dbmodels.Authorization, error) {
	rec, err := s.authorization.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("autorizacion %s no encontrada", id)
	}
	if !rec.Status.IsAllowChange(target) {
		return nil, models.NewConflictError("la autorizacion ya fue procesada (%s)", rec.Status)
	}
	approvalDate := i.now()
	resolved, err := s.authorization.Resolve(id, authorizationstore.ResolveData{
		Status:       target,
		ApprovedBy:   actorID,
		ApprovalDate: approvalDate,
		Observations: observations,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error al resolver la autorizacion")
	}
	if !resolved {
		return nil, models.NewConflictError("la autorizacion ya fue procesada")
	}
	previous := rec.Status
	rec.Status = target
	rec.ApprovedBy = &actorID
	rec.ApprovalDate = &approvalDate
	if observations != nil {
		rec.Observations = *observations
	}
	audit(s, *rec, actorID, previous, "autorizacion resuelta")
	return rec, nil
}

func (i impl) notifyResolution(rec dbmodels.Authorization, target models.AuthorizationStatus) {
	if i.mailer == nil || rec.Employee == nil {
		return
	}
	verb := "aprobada"
	if target == models.AuthorizationRejected {
		verb = "rechazada"
	}
	message := fmt.Sprintf("Hola %s,\r\n\r\nTu autorizacion de %s fue %s.", rec.Employee.GetFullName(), rec.Type, verb)
	if rec.Observations != "" {
		message += fmt.Sprintf("\r\nObservaciones: %s", rec.Observations)
	}
	if err := i.mailer.SendEMail(rec.Employee.Email, fmt.Sprintf("Autorizacion %s", verb), message); err != nil {
		i.getLogger(rec.ID).WithError(err).Warn("no se pudo notificar la resolucion")
	}
}

func newResolution(rec dbmodels.Authorization, target models.AuthorizationStatus) *authorizationapimodels.ResolutionView {
	result := &authorizationapimodels.ResolutionView{
		AuthorizationID: rec.ID,
		Status:          target,
	}
	if ref, err := rec.Originator(); err == nil {
		result.OriginatorKind = ref.Kind
		result.OriginatorID = ref.ID
	}
	return result
}

func audit(s stores, rec dbmodels.Authorization, actorID string, previous models.AuthorizationStatus, description string) {
	changes := dbmodels.EntityChanges{
		Description: description,
		Data: []dbmodels.FieldChanges{
			{Field: "status", OldValue: previous, NewValue: rec.Status},
		},
	}
	if previous == "" {
		changes.Data[0].OldValue = nil
	}
	_, err := s.history.Create(dbmodels.AuthorizationHistory{
		AuthorizationID: rec.ID,
		ActorID:         actorID,
		Status:          rec.Status,
		Observations:    rec.Observations,
		Changes:         changes,
	})
	if err != nil {
		log.WithField("authorization_id", rec.ID).WithError(err).Error("Error al agregar el historial de la autorizacion")
	}
}

package swaprequesthandler

import (
	"fmt"
	authorizationstore "workshift-backend/lib/authorization/store"
	employeestore "workshift-backend/lib/employee/store"
	"workshift-backend/lib/smtp"
	swaprequeststore "workshift-backend/lib/swap-request/store"
	"workshift-backend/models"
	authorizationapimodels "workshift-backend/models/api/authorization"
	swaprequestapimodels "workshift-backend/models/api/swap-request"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuthorizationOpener interface {
	Open(actorID string, data authorizationapimodels.AuthorizationCreate) (id string, err error)
}

type Provider interface {
	Create(actorID string, data swaprequestapimodels.SwapRequestCreate) (id string, err error)
	Get(actorID string, role models.UserRole, id string) (*swaprequestapimodels.SwapRequestView, error)
	List(actorID string, role models.UserRole, filter swaprequestapimodels.SwapRequestFilter) ([]swaprequestapimodels.SwapRequestView, error)
	Update(actorID string, id string, data swaprequestapimodels.SwapRequestData) error
	ChangeStatus(actorID string, id string, data swaprequestapimodels.StatusChange) (*swaprequestapimodels.StatusChangeResult, error)
	Delete(actorID string, role models.UserRole, id string) error
}

func NewHandler(db *gorm.DB, opener AuthorizationOpener, mailer smtp.Provider) Provider {
	return impl{
		store:              swaprequeststore.NewInstance(db),
		employeeStore:      employeestore.NewInstance(db),
		authorizationStore: authorizationstore.NewInstance(db),
		opener:             opener,
		mailer:             mailer,
	}
}

type impl struct {
	store              swaprequeststore.Provider
	employeeStore      employeestore.Provider
	authorizationStore authorizationstore.Provider
	opener             AuthorizationOpener
	mailer             smtp.Provider
}

func (i impl) getLogger(requestID string) *log.Entry {
	return log.WithField("swap_request_id", requestID)
}

func (i impl) Create(actorID string, data swaprequestapimodels.SwapRequestCreate) (string, error) {
	if err := data.Validate(); err != nil {
		return "", models.NewValidationError(err.Error())
	}
	if data.RecipientID == actorID {
		return "", models.NewValidationError("no se puede solicitar un cambio a uno mismo")
	}
	requester, err := i.employeeStore.GetByID(actorID)
	if err != nil {
		return "", err
	}
	if requester == nil {
		return "", models.NewNotFoundError("empleado %s no encontrado", actorID)
	}
	recipient, err := i.employeeStore.GetByID(data.RecipientID)
	if err != nil {
		return "", err
	}
	if recipient == nil || !recipient.IsActive {
		return "", models.NewNotFoundError("destinatario %s no encontrado", data.RecipientID)
	}
	rec := dbmodels.SwapRequest{
		RequesterID:    actorID,
		RecipientID:    data.RecipientID,
		RequesterShift: data.RequesterShift,
		RecipientShift: data.RecipientShift,
		Reason:         data.Reason,
		Priority:       data.Priority,
		Status:         models.SwapRequested,
	}
	if err = rec.Validate(); err != nil {
		return "", models.NewValidationError(err.Error())
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "error al guardar la solicitud")
	}
	i.getLogger(id).
		WithField("requester_id", actorID).
		WithField("recipient_id", data.RecipientID).
		Info("solicitud de cambio creada")
	i.notify(recipient, "Nueva solicitud de cambio de turno",
		fmt.Sprintf("Hola %s,\r\n\r\n%s te pidio cambiar el turno del %s por el tuyo del %s.\r\nMotivo: %s",
			recipient.GetFullName(), requester.GetFullName(), data.RequesterShift.Date, data.RecipientShift.Date, data.Reason))
	return id, nil
}

func (i impl) Get(actorID string, role models.UserRole, id string) (*swaprequestapimodels.SwapRequestView, error) {
	rec, err := i.getRequest(id)
	if err != nil {
		return nil, err
	}
	if !rec.IsParty(actorID) && !canViewAll(role) {
		return nil, models.NewForbiddenError("no tiene permisos para ver esta solicitud")
	}
	result := swaprequestapimodels.SwapRequestConvert(*rec)
	return &result, nil
}

// List jefes y supervisores ven todas las solicitudes, el resto solo aquellas en las que participa
func (i impl) List(actorID string, role models.UserRole, filter swaprequestapimodels.SwapRequestFilter) ([]swaprequestapimodels.SwapRequestView, error) {
	if filter.Status != "" {
		if err := filter.Status.Validate(); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}
	employeeID := actorID
	if canViewAll(role) {
		employeeID = ""
	}
	list, err := i.store.List(employeeID, filter.Status)
	if err != nil {
		return nil, err
	}
	result := make([]swaprequestapimodels.SwapRequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, swaprequestapimodels.SwapRequestConvert(rec))
	}
	return result, nil
}

func (i impl) Update(actorID string, id string, data swaprequestapimodels.SwapRequestData) error {
	rec, err := i.getRequest(id)
	if err != nil {
		return err
	}
	if rec.RequesterID != actorID {
		return models.NewForbiddenError("solo el solicitante puede modificar la solicitud")
	}
	if rec.Status != models.SwapRequested {
		return models.NewConflictError("solo se pueden modificar solicitudes en estado %s", models.SwapRequested)
	}
	if err = data.Validate(); err != nil {
		return models.NewValidationError(err.Error())
	}
	if err = i.checkNoPending(id); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"requester_shift": data.RequesterShift,
		"recipient_shift": data.RecipientShift,
		"reason":          data.Reason,
		"priority":        data.Priority,
	}
	if err = i.store.Update(id, updMap); err != nil {
		return errors.Wrap(err, "error al actualizar la solicitud")
	}
	i.getLogger(id).Info("solicitud de cambio actualizada")
	return nil
}

func (i impl) ChangeStatus(actorID string, id string, data swaprequestapimodels.StatusChange) (*swaprequestapimodels.StatusChangeResult, error) {
	if err := data.Validate(); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	rec, err := i.getRequest(id)
	if err != nil {
		return nil, err
	}
	logger := i.getLogger(id).
		WithField("actor_id", actorID).
		WithField("status", data.Status)

	switch data.Status {
	case models.SwapCancelled:
		if !rec.IsParty(actorID) {
			return nil, models.NewForbiddenError("solo el solicitante o el destinatario pueden cancelar la solicitud")
		}
	case models.SwapCompleted:
		return nil, models.NewValidationError("el estado %s lo fija la autorizacion", models.SwapCompleted)
	default:
		if rec.RecipientID != actorID {
			return nil, models.NewForbiddenError("solo el destinatario puede responder la solicitud")
		}
	}
	if !rec.Status.IsAllowChange(data.Status) {
		return nil, models.NewConflictError("la solicitud esta %s y no puede pasar a %s", rec.Status, data.Status)
	}

	if data.Status == models.SwapApproved {
		// la solicitud sigue SOLICITADO hasta que se resuelva la autorizacion
		authorizationID, err := i.opener.Open(actorID, authorizationapimodels.AuthorizationCreate{
			Type:         models.AuthorizationShiftSwap,
			EmployeeID:   rec.RequesterID,
			RequestID:    &rec.ID,
			Observations: rec.Reason,
		})
		if err != nil {
			logger.WithError(err).Warn("aprobacion de la solicitud abortada")
			return nil, err
		}
		logger.WithField("authorization_id", authorizationID).Info("solicitud aprobada por el destinatario")
		return &swaprequestapimodels.StatusChangeResult{
			Status:          rec.Status,
			AuthorizationID: authorizationID,
		}, nil
	}

	if err = i.checkNoPending(id); err != nil {
		return nil, err
	}
	changed, err := i.store.ChangeStatus(id, data.Status)
	if err != nil {
		return nil, errors.Wrap(err, "error al cambiar el estado de la solicitud")
	}
	if !changed {
		return nil, models.NewConflictError("la solicitud cambio de estado, vuelva a intentarlo")
	}
	logger.Info("estado de la solicitud actualizado")
	return &swaprequestapimodels.StatusChangeResult{Status: data.Status}, nil
}

func (i impl) Delete(actorID string, role models.UserRole, id string) error {
	rec, err := i.getRequest(id)
	if err != nil {
		return err
	}
	if rec.RequesterID != actorID && !role.IsAdmin() {
		return models.NewForbiddenError("solo el solicitante puede eliminar la solicitud")
	}
	if rec.Status == models.SwapCompleted {
		return models.NewConflictError("no se puede eliminar una solicitud completada")
	}
	deleted, err := i.store.Delete(id)
	if err != nil {
		return errors.Wrap(err, "error al eliminar la solicitud")
	}
	if !deleted {
		// la autorizacion y su historial siguen apuntando a la solicitud
		return models.NewConflictError("la solicitud tiene una autorizacion y no se puede eliminar")
	}
	i.getLogger(id).WithField("actor_id", actorID).Info("solicitud de cambio eliminada")
	return nil
}

func (i impl) getRequest(id string) (*dbmodels.SwapRequest, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("solicitud %s no encontrada", id)
	}
	return rec, nil
}

func (i impl) checkNoPending(id string) error {
	pending, err := i.authorizationStore.FindPending(models.RequestRef(id))
	if err != nil {
		return err
	}
	if pending != nil {
		return models.NewConflictError("la solicitud tiene una autorizacion pendiente %s", pending.ID)
	}
	return nil
}

func (i impl) notify(to *dbmodels.Employee, subject, message string) {
	if i.mailer == nil || to.Email == "" {
		return
	}
	if err := i.mailer.SendEMail(to.Email, subject, message); err != nil {
		log.WithField("employee_id", to.ID).WithError(err).Warn("no se pudo enviar la notificacion")
	}
}

func canViewAll(role models.UserRole) bool {
	return role == models.SupervisorRole || role.CanResolveAuthorizations()
}

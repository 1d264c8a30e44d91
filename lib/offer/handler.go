package offerhandler

import (
	"time"
	employeestore "workshift-backend/lib/employee/store"
	offerstore "workshift-backend/lib/offer/store"
	"workshift-backend/models"
	authorizationapimodels "workshift-backend/models/api/authorization"
	offerapimodels "workshift-backend/models/api/offer"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuthorizationOpener interface {
	Open(actorID string, data authorizationapimodels.AuthorizationCreate) (id string, err error)
}

type Provider interface {
	Create(actorID string, data offerapimodels.OfferData) (id string, err error)
	Get(id string) (*offerapimodels.OfferView, error)
	ListAvailable(filter offerapimodels.OfferFilter) ([]offerapimodels.OfferView, error)
	ListMine(actorID string) ([]offerapimodels.OfferView, error)
	Update(actorID string, id string, data offerapimodels.OfferData) error
	Publish(actorID string, id string, published bool) error
	Delete(actorID string, role models.UserRole, id string) error
	Take(actorID string, id string) (*offerapimodels.TakeResult, error)
}

func NewHandler(db *gorm.DB, opener AuthorizationOpener, now func() time.Time) Provider {
	return impl{
		store:         offerstore.NewInstance(db),
		employeeStore: employeestore.NewInstance(db),
		opener:        opener,
		now:           now,
	}
}

var (
	// unclaimedStatuses el oferente solo edita o publica mientras nadie la tomo
	unclaimedStatuses = []models.OfferStatus{models.OfferAvailable}
	deletableStatuses = []models.OfferStatus{models.OfferAvailable, models.OfferCancelled}

	errOfferClaimed = models.NewConflictError("la oferta ya fue tomada y no se puede modificar")
)

type impl struct {
	store         offerstore.Provider
	employeeStore employeestore.Provider
	opener        AuthorizationOpener
	now           func() time.Time
}

func (i impl) getLogger(offerID string) *log.Entry {
	return log.WithField("offer_id", offerID)
}

func (i impl) Create(actorID string, data offerapimodels.OfferData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", models.NewValidationError(err.Error())
	}
	shape, err := data.BuildShape()
	if err != nil {
		return "", models.NewValidationError(err.Error())
	}
	offerer, err := i.employeeStore.GetByID(actorID)
	if err != nil {
		return "", err
	}
	if offerer == nil {
		return "", models.NewNotFoundError("empleado %s no encontrado", actorID)
	}
	rec := dbmodels.Offer{
		OffererID:      actorID,
		Type:           data.Type,
		SearchMode:     data.GetSearchMode(),
		OfferedShift:   shape.OfferedShift,
		SoughtShifts:   shape.SoughtShifts,
		AvailableDates: shape.AvailableDates,
		Description:    data.Description,
		Priority:       data.Priority,
		Published:      data.Published,
		Status:         models.OfferAvailable,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "error al guardar la oferta")
	}
	i.getLogger(id).
		WithField("offerer_id", actorID).
		WithField("search_mode", rec.SearchMode).
		Info("oferta creada")
	return id, nil
}

func (i impl) Get(id string) (*offerapimodels.OfferView, error) {
	rec, err := i.getOffer(id)
	if err != nil {
		return nil, err
	}
	result := offerapimodels.OfferConvert(*rec)
	return &result, nil
}

func (i impl) ListAvailable(filter offerapimodels.OfferFilter) ([]offerapimodels.OfferView, error) {
	if filter.Type != "" {
		if err := filter.Type.Validate(); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}
	list, err := i.store.ListAvailable(filter.Type)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) ListMine(actorID string) ([]offerapimodels.OfferView, error) {
	list, err := i.store.ListByOfferer(actorID)
	if err != nil {
		return nil, err
	}
	return convertList(list), nil
}

func (i impl) Update(actorID string, id string, data offerapimodels.OfferData) error {
	rec, err := i.getUnclaimed(actorID, id)
	if err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return models.NewValidationError(err.Error())
	}
	shape, err := data.BuildShape()
	if err != nil {
		return models.NewValidationError(err.Error())
	}
	updMap := map[string]interface{}{
		"type":            data.Type,
		"search_mode":     data.GetSearchMode(),
		"offered_shift":   shape.OfferedShift,
		"sought_shifts":   shape.SoughtShifts,
		"available_dates": shape.AvailableDates,
		"description":     data.Description,
		"priority":        data.Priority,
		"published":       data.Published,
	}
	if shape.OfferedShift == nil {
		updMap["offered_shift"] = gorm.Expr("NULL")
	}
	updated, err := i.store.Update(rec.ID, unclaimedStatuses, updMap)
	if err != nil {
		return errors.Wrap(err, "error al actualizar la oferta")
	}
	if !updated {
		return errOfferClaimed
	}
	i.getLogger(id).Info("oferta actualizada")
	return nil
}

func (i impl) Publish(actorID string, id string, published bool) error {
	rec, err := i.getUnclaimed(actorID, id)
	if err != nil {
		return err
	}
	if rec.Published == published {
		return nil
	}
	updated, err := i.store.Update(id, unclaimedStatuses, map[string]interface{}{"published": published})
	if err != nil {
		return errors.Wrap(err, "error al publicar la oferta")
	}
	if !updated {
		return errOfferClaimed
	}
	i.getLogger(id).WithField("published", published).Info("publicacion de la oferta actualizada")
	return nil
}

func (i impl) Delete(actorID string, role models.UserRole, id string) error {
	rec, err := i.getOffer(id)
	if err != nil {
		return err
	}
	if !rec.IsOfferer(actorID) && !role.IsAdmin() {
		return models.NewForbiddenError("solo el oferente puede eliminar la oferta")
	}
	deleted, err := i.store.Delete(id, deletableStatuses)
	if err != nil {
		return errors.Wrap(err, "error al eliminar la oferta")
	}
	if !deleted {
		return models.NewConflictError("solo se eliminan ofertas disponibles o canceladas")
	}
	i.getLogger(id).WithField("actor_id", actorID).Info("oferta eliminada")
	return nil
}

// Take el tomador reclama la oferta y queda pendiente la autorizacion del intercambio
func (i impl) Take(actorID string, id string) (*offerapimodels.TakeResult, error) {
	rec, err := i.getOffer(id)
	if err != nil {
		return nil, err
	}
	if rec.IsOfferer(actorID) {
		return nil, models.NewValidationError("no se puede tomar una oferta propia")
	}
	if !rec.Published {
		return nil, models.NewConflictError("la oferta no esta publicada")
	}
	if rec.Status != models.OfferAvailable {
		return nil, models.NewConflictError("la oferta ya no esta disponible (%s)", rec.Status)
	}
	logger := i.getLogger(id).WithField("taker_id", actorID)

	taken, err := i.store.Take(id, actorID, i.now())
	if err != nil {
		return nil, errors.Wrap(err, "error al tomar la oferta")
	}
	if !taken {
		return nil, models.NewConflictError("la oferta ya fue tomada")
	}
	authorizationID, err := i.opener.Open(actorID, authorizationapimodels.AuthorizationCreate{
		Type:         models.AuthorizationOfferSwap,
		EmployeeID:   actorID,
		OfferID:      &id,
		Observations: rec.Description,
	})
	if err != nil {
		if relErr := i.store.Release(id); relErr != nil {
			logger.WithError(relErr).Error("error al liberar la oferta")
		}
		logger.WithError(err).Warn("la oferta se libera, no se pudo crear la autorizacion")
		return nil, err
	}
	logger.WithField("authorization_id", authorizationID).Info("oferta tomada")
	return &offerapimodels.TakeResult{
		Status:          models.OfferAccepted,
		AuthorizationID: authorizationID,
	}, nil
}

func (i impl) getOffer(id string) (*dbmodels.Offer, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NewNotFoundError("oferta %s no encontrada", id)
	}
	return rec, nil
}

func (i impl) getUnclaimed(actorID, id string) (*dbmodels.Offer, error) {
	rec, err := i.getOffer(id)
	if err != nil {
		return nil, err
	}
	if !rec.IsOfferer(actorID) {
		return nil, models.NewForbiddenError("solo el oferente puede modificar la oferta")
	}
	if rec.Status != models.OfferAvailable {
		return nil, errOfferClaimed
	}
	return rec, nil
}

func convertList(list []dbmodels.Offer) []offerapimodels.OfferView {
	result := make([]offerapimodels.OfferView, 0, len(list))
	for _, rec := range list {
		result = append(result, offerapimodels.OfferConvert(rec))
	}
	return result
}

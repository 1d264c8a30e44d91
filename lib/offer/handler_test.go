package offerhandler

import (
	"testing"
	"time"
	authorizationhandler "workshift-backend/lib/authorization"
	"workshift-backend/lib/eligibility"
	offerstore "workshift-backend/lib/offer/store"
	testdb "workshift-backend/lib/utils/test-db"
	"workshift-backend/models"
	authorizationapimodels "workshift-backend/models/api/authorization"
	offerapimodels "workshift-backend/models/api/offer"
	dbmodels "workshift-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newHandlers(gormDB *gorm.DB) (Provider, authorizationhandler.Provider) {
	now := testdb.Clock("2025-03-10")
	checker := eligibility.NewHandler(gormDB, eligibility.CheckToday, now)
	authHandler := authorizationhandler.NewHandler(gormDB, checker, nil, authorizationhandler.Config{AtomicFanOut: true}, now)
	return NewHandler(gormDB, authHandler, now), authHandler
}

// takenAfterRead otro empleado toma la oferta justo despues de que el handler la leyo
type takenAfterRead struct {
	offerstore.Provider
	takerID string
}

func (s takenAfterRead) GetByID(id string) (*dbmodels.Offer, error) {
	rec, err := s.Provider.GetByID(id)
	if err != nil || rec == nil {
		return rec, err
	}
	if _, err = s.Provider.Take(id, s.takerID, time.Now()); err != nil {
		return nil, err
	}
	return rec, nil
}

func swapOffer() offerapimodels.OfferData {
	return offerapimodels.OfferData{
		Type:         models.OfferTypeSwap,
		OfferedShift: &models.Shift{Date: "2025-03-20", Schedule: "06:00-14:00", Group: "A"},
		SoughtShifts: []models.Shift{{Date: "2025-03-22", Schedule: "14:00-22:00", Group: "B"}},
		Description:  "cambio turno de la manana",
		Priority:     models.PriorityHigh,
		Published:    true,
	}
}

func openOffer() offerapimodels.OfferData {
	return offerapimodels.OfferData{
		Type:           models.OfferTypeOpen,
		AvailableDates: []string{"2025-03-25", "2025-03-26"},
		Description:    "cubro cualquier turno esos dias",
		Priority:       models.PriorityLow,
		Published:      true,
	}
}

func TestOfferCreate(t *testing.T) {
	gormDB := testdb.New(t)
	ana := testdb.AddEmployee(t, gormDB, "ana", models.InspectorRole)
	handler, _ := newHandlers(gormDB)

	t.Run("descripcion corta", func(t *testing.T) {
		data := swapOffer()
		data.Description = "corta"
		_, err := handler.Create(ana.ID, data)
		require.True(t, models.IsErrorKind(err, models.ValidationErrorKind))
	})
	t.Run("forma segun el modo de busqueda", func(t *testing.T) {
		data := swapOffer()
		data.SoughtShifts = nil
		_, err := handler.Create(ana.ID, data)
		require.True(t, models.IsErrorKind(err, models.ValidationErrorKind))

		data = swapOffer()
		data.SearchMode = models.OfferTypeOpen
		data.AvailableDates = []string{"2025-03-21"}
		id, err := handler.Create(ana.ID, data)
		require.NoError(t, err)
		view, err := handler.Get(id)
		require.NoError(t, err)
		require.Equal(t, models.OfferTypeOpen, view.SearchMode)
		require.Nil(t, view.OfferedShift)
		require.Empty(t, view.SoughtShifts)
		require.Equal(t, []string{"2025-03-21"}, []string(view.AvailableDates))
	})
	t.Run("el modo de busqueda por defecto es el tipo", func(t *testing.T) {
		id, err := handler.Create(ana.ID, swapOffer())
		require.NoError(t, err)
		view, err := handler.Get(id)
		require.NoError(t, err)
		require.Equal(t, models.OfferAvailable, view.Status)
		require.Equal(t, models.OfferTypeSwap, view.SearchMode)
		require.NotNil(t, view.OfferedShift)
		require.Len(t, view.SoughtShifts, 1)
	})
}

func TestOfferTake(t *testing.T) {
	t.Run("tomar crea la autorizacion y aprobarla completa la oferta", func(t *testing.T) {
		gormDB := testdb.New(t)
		ana := testdb.AddEmployee(t, gormDB, "ana", models.InspectorRole)
		beto := testdb.AddEmployee(t, gormDB, "beto", models.InspectorRole)
		carla := testdb.AddEmployee(t, gormDB, "carla", models.InspectorRole)
		chief := testdb.AddEmployee(t, gormDB, "jefe", models.ChiefRole)
		handler, authHandler := newHandlers(gormDB)

		id, err := handler.Create(ana.ID, swapOffer())
		require.NoError(t, err)

		_, err = handler.Take(ana.ID, id)
		require.True(t, models.IsErrorKind(err, models.ValidationErrorKind))

		result, err := handler.Take(beto.ID, id)
		require.NoError(t, err)
		require.Equal(t, models.OfferAccepted, result.Status)
		require.NotEmpty(t, result.AuthorizationID)

		view, err := handler.Get(id)
		require.NoError(t, err)
		require.Equal(t, beto.ID, view.TakerID)
		require.NotNil(t, view.AcceptedAt)

		_, err = handler.Take(carla.ID, id)
		require.True(t, models.IsErrorKind(err, models.ConflictErrorKind))
		require.True(t, models.IsErrorKind(handler.Update(ana.ID, id, swapOffer()), models.ConflictErrorKind))

		available, err := handler.ListAvailable(offerapimodels.OfferFilter{})
		require.NoError(t, err)
		require.Empty(t, available)

		auth, err := authHandler.Get(beto.ID, models.InspectorRole, result.AuthorizationID)
		require.NoError(t, err)
		require.Equal(t, models.AuthorizationOfferSwap, auth.Type)
		require.Equal(t, beto.ID, auth.EmployeeID)

		_, err = authHandler.Approve(chief.ID, models.ChiefRole, result.AuthorizationID, authorizationapimodels.AuthorizationApprove{})
		require.NoError(t, err)
		view, err = handler.Get(id)
		require.NoError(t, err)
		require.Equal(t, models.OfferCompleted, view.Status)
	})

	t.Run("tomador sancionado libera la oferta", func(t *testing.T) {
		gormDB := testdb.New(t)
		ana := testdb.AddEmployee(t, gormDB, "ana", models.InspectorRole)
		beto := testdb.AddEmployee(t, gormDB, "beto", models.InspectorRole)
		handler, _ := newHandlers(gormDB)
		require.NoError(t, gormDB.Create(&dbmodels.Sanction{
			EmployeeID: beto.ID,
			DateFrom:   testdb.Date(t, "2025-03-01"),
			DateTo:     testdb.Date(t, "2025-03-31"),
			Reason:     "abandono de servicio",
			Status:     models.SanctionActive,
		}).Error)

		id, err := handler.Create(ana.ID, openOffer())
		require.NoError(t, err)
		_, err = handler.Take(beto.ID, id)
		require.True(t, models.IsErrorKind(err, models.ConflictErrorKind))

		view, err := handler.Get(id)
		require.NoError(t, err)
		require.Equal(t, models.OfferAvailable, view.Status)
		require.Empty(t, view.TakerID)
		require.Nil(t, view.AcceptedAt)
	})

	t.Run("oferta sin publicar o inexistente", func(t *testing.T) {
		gormDB := testdb.New(t)
		ana := testdb.AddEmployee(t, gormDB, "ana", models.InspectorRole)
		beto := testdb.AddEmployee(t, gormDB, "beto", models.InspectorRole)
		handler, _ := newHandlers(gormDB)

		data := openOffer()
		data.Published = false
		id, err := handler.Create(ana.ID, data)
		require.NoError(t, err)
		_, err = handler.Take(beto.ID, id)
		require.True(t, models.IsErrorKind(err, models.ConflictErrorKind))

		require.NoError(t, handler.Publish(ana.ID, id, true))
		_, err = handler.Take(beto.ID, id)
		require.NoError(t, err)

		_, err = handler.Take(beto.ID, "no-existe")
		require.True(t, models.IsErrorKind(err, models.NotFoundErrorKind))
	})
}

func TestOfferEdit(t *testing.T) {
	gormDB := testdb.New(t)
	ana := testdb.AddEmployee(t, gormDB, "ana", models.InspectorRole)
	beto := testdb.AddEmployee(t, gormDB, "beto", models.InspectorRole)
	handler, _ := newHandlers(gormDB)

	id, err := handler.Create(ana.ID, swapOffer())
	require.NoError(t, err)

	t.Run("solo el oferente", func(t *testing.T) {
		require.True(t, models.IsErrorKind(handler.Update(beto.ID, id, openOffer()), models.ForbiddenErrorKind))
		require.True(t, models.IsErrorKind(handler.Publish(beto.ID, id, false), models.ForbiddenErrorKind))
		require.True(t, models.IsErrorKind(handler.Delete(beto.ID, models.InspectorRole, id), models.ForbiddenErrorKind))
	})
	t.Run("edicion completa reconstruye la forma", func(t *testing.T) {
		require.NoError(t, handler.Update(ana.ID, id, openOffer()))
		view, err := handler.Get(id)
		require.NoError(t, err)
		require.Equal(t, models.OfferTypeOpen, view.Type)
		require.Nil(t, view.OfferedShift)
		require.Len(t, view.AvailableDates, 2)

		mine, err := handler.ListMine(ana.ID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		available, err := handler.ListAvailable(offerapimodels.OfferFilter{Type: models.OfferTypeSwap})
		require.NoError(t, err)
		require.Empty(t, available)
	})
	t.Run("eliminar", func(t *testing.T) {
		require.NoError(t, handler.Delete(ana.ID, models.InspectorRole, id))
		_, err := handler.Get(id)
		require.True(t, models.IsErrorKind(err, models.NotFoundErrorKind))
	})
}

func TestOfferStaleRead(t *testing.T) {
	gormDB := testdb.New(t)
	ana := testdb.AddEmployee(t, gormDB, "ana", models.InspectorRole)
	beto := testdb.AddEmployee(t, gormDB, "beto", models.InspectorRole)
	base, _ := newHandlers(gormDB)
	racing := base.(impl)
	racing.store = takenAfterRead{Provider: racing.store, takerID: beto.ID}

	requireUntouched := func(t *testing.T, id string, description string) {
		view, err := base.Get(id)
		require.NoError(t, err)
		require.Equal(t, models.OfferAccepted, view.Status)
		require.Equal(t, description, view.Description)
		require.True(t, view.Published)
	}

	t.Run("eliminar una oferta tomada entre la lectura y el borrado", func(t *testing.T) {
		id, err := base.Create(ana.ID, swapOffer())
		require.NoError(t, err)
		err = racing.Delete(ana.ID, models.InspectorRole, id)
		require.True(t, models.IsErrorKind(err, models.ConflictErrorKind))
		requireUntouched(t, id, swapOffer().Description)
	})
	t.Run("editar una oferta tomada entre la lectura y la escritura", func(t *testing.T) {
		id, err := base.Create(ana.ID, swapOffer())
		require.NoError(t, err)
		err = racing.Update(ana.ID, id, openOffer())
		require.True(t, models.IsErrorKind(err, models.ConflictErrorKind))
		requireUntouched(t, id, swapOffer().Description)
	})
	t.Run("despublicar una oferta tomada", func(t *testing.T) {
		id, err := base.Create(ana.ID, swapOffer())
		require.NoError(t, err)
		err = racing.Publish(ana.ID, id, false)
		require.True(t, models.IsErrorKind(err, models.ConflictErrorKind))
		requireUntouched(t, id, swapOffer().Description)
	})
}

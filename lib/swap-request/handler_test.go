package swaprequesthandler

import (
	"testing"
	authorizationhandler "workshift-backend/lib/authorization"
	"workshift-backend/lib/eligibility"
	testdb "workshift-backend/lib/utils/test-db"
	"workshift-backend/models"
	authorizationapimodels "workshift-backend/models/api/authorization"
	swaprequestapimodels "workshift-backend/models/api/swap-request"
	dbmodels "workshift-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newHandlers(gormDB *gorm.DB) (Provider, authorizationhandler.Provider) {
	now := testdb.Clock("2025-02-20")
	checker := eligibility.NewHandler(gormDB, eligibility.CheckRange, now)
	authHandler := authorizationhandler.NewHandler(gormDB, checker, nil, authorizationhandler.Config{AtomicFanOut: true}, now)
	return NewHandler(gormDB, authHandler, nil), authHandler
}

func swapData(recipientID string) swaprequestapimodels.SwapRequestCreate {
	return swaprequestapimodels.SwapRequestCreate{
		SwapRequestData: swaprequestapimodels.SwapRequestData{
			RequesterShift: models.Shift{Date: "2025-03-01", Schedule: "06:00-14:00", Group: "A"},
			RecipientShift: models.Shift{Date: "2025-03-05", Schedule: "14:00-22:00", Group: "B"},
			Reason:         "turno medico",
			Priority:       models.PriorityNormal,
		},
		RecipientID: recipientID,
	}
}

func status(to models.SwapRequestStatus) swaprequestapimodels.StatusChange {
	return swaprequestapimodels.StatusChange{Status: to}
}

func TestSwapRequestCreate(t *testing.T) {
	gormDB := testdb.New(t)
	ana := testdb.AddEmployee(t, gormDB, "ana", models.InspectorRole)
	beto := testdb.AddEmployee(t, gormDB, "beto", models.InspectorRole)
	handler, _ := newHandlers(gormDB)

	t.Run("a uno mismo", func(t *testing.T) {
		_, err := handler.Create(ana.ID, swapData(ana.ID))
		require.True(t, models.IsErrorKind(err, models.ValidationErrorKind))
	})
	t.Run("destinatario inexistente", func(t *testing.T) {
		_, err := handler.Create(ana.ID, swapData("no-existe"))
		require.True(t, models.IsErrorKind(err, models.NotFoundErrorKind))
	})
	t.Run("campos incompletos", func(t *testing.T) {
		data := swapData(beto.ID)
		data.RecipientShift.Group = ""
		_, err := handler.Create(ana.ID, data)
		require.True(t, models.IsErrorKind(err, models.ValidationErrorKind))
	})
	t.Run("alta en estado solicitado", func(t *testing.T) {
		id, err := handler.Create(ana.ID, swapData(beto.ID))
		require.NoError(t, err)
		view, err := handler.Get(beto.ID, models.InspectorRole, id)
		require.NoError(t, err)
		require.Equal(t, models.SwapRequested, view.Status)
		require.Equal(t, ana.ID, view.RequesterID)
		require.NotNil(t, view.Requester)

		other := testdb.AddEmployee(t, gormDB, "carla", models.InspectorRole)
		_, err = handler.Get(other.ID, models.InspectorRole, id)
		require.True(t, models.IsErrorKind(err, models.ForbiddenErrorKind))
		_, err = handler.Get(other.ID, models.SupervisorRole, id)
		require.NoError(t, err)

		list, err := handler.List(beto.ID, models.InspectorRole, swaprequestapimodels.SwapRequestFilter{})
		require.NoError(t, err)
		require.Len(t, list, 1)
		list, err = handler.List(other.ID, models.InspectorRole, swaprequestapimodels.SwapRequestFilter{})
		require.NoError(t, err)
		require.Empty(t, list)
	})
}

func TestSwapRequestApproval(t *testing.T) {
	t.Run("aprobacion del destinatario y luego de la autorizacion", func(t *testing.T) {
		gormDB := testdb.New(t)
		ana := testdb.AddEmployee(t, gormDB, "ana", models.InspectorRole)
		beto := testdb.AddEmployee(t, gormDB, "beto", models.InspectorRole)
		chief := testdb.AddEmployee(t, gormDB, "jefe", models.ChiefRole)
		handler, authHandler := newHandlers(gormDB)

		id, err := handler.Create(ana.ID, swapData(beto.ID))
		require.NoError(t, err)

		_, err = handler.ChangeStatus(ana.ID, id, status(models.SwapApproved))
		require.True(t, models.IsErrorKind(err, models.ForbiddenErrorKind))

		result, err := handler.ChangeStatus(beto.ID, id, status(models.SwapApproved))
		require.NoError(t, err)
		require.Equal(t, models.SwapRequested, result.Status)
		require.NotEmpty(t, result.AuthorizationID)

		var list []dbmodels.Authorization
		require.NoError(t, gormDB.Where("request_id = ?", id).Find(&list).Error)
		require.Len(t, list, 1)
		require.Equal(t, models.AuthorizationShiftSwap, list[0].Type)
		require.Equal(t, models.AuthorizationPending, list[0].Status)
		require.Equal(t, ana.ID, list[0].EmployeeID)

		_, err = handler.ChangeStatus(beto.ID, id, status(models.SwapApproved))
		require.True(t, models.IsErrorKind(err, models.ConflictErrorKind))
		_, err = handler.ChangeStatus(ana.ID, id, status(models.SwapCancelled))
		require.True(t, models.IsErrorKind(err, models.ConflictErrorKind))
		err = handler.Update(ana.ID, id, swapData(beto.ID).SwapRequestData)
		require.True(t, models.IsErrorKind(err, models.ConflictErrorKind))

		view, err := handler.Get(ana.ID, models.InspectorRole, id)
		require.NoError(t, err)
		require.Equal(t, models.SwapRequested, view.Status)

		_, err = authHandler.Approve(chief.ID, models.ChiefRole, result.AuthorizationID, authorizationapimodels.AuthorizationApprove{})
		require.NoError(t, err)
		view, err = handler.Get(ana.ID, models.InspectorRole, id)
		require.NoError(t, err)
		require.Equal(t, models.SwapCompleted, view.Status)
	})

	t.Run("solicitante con licencia en las fechas", func(t *testing.T) {
		gormDB := testdb.New(t)
		ana := testdb.AddEmployee(t, gormDB, "ana", models.InspectorRole)
		beto := testdb.AddEmployee(t, gormDB, "beto", models.InspectorRole)
		handler, _ := newHandlers(gormDB)

		license := dbmodels.License{EmployeeID: ana.ID, Type: models.LicenseMedical, Status: models.LicenseApproved}
		license.SetDates(testdb.Date(t, "2025-03-04"), testdb.Date(t, "2025-03-06"))
		require.NoError(t, gormDB.Create(&license).Error)

		id, err := handler.Create(ana.ID, swapData(beto.ID))
		require.NoError(t, err)
		_, err = handler.ChangeStatus(beto.ID, id, status(models.SwapApproved))
		require.True(t, models.IsErrorKind(err, models.ConflictErrorKind))

		var count int64
		require.NoError(t, gormDB.Model(&dbmodels.Authorization{}).Count(&count).Error)
		require.Equal(t, int64(0), count)
		view, err := handler.Get(ana.ID, models.InspectorRole, id)
		require.NoError(t, err)
		require.Equal(t, models.SwapRequested, view.Status)
	})
}

func TestSwapRequestStatus(t *testing.T) {
	gormDB := testdb.New(t)
	ana := testdb.AddEmployee(t, gormDB, "ana", models.InspectorRole)
	beto := testdb.AddEmployee(t, gormDB, "beto", models.InspectorRole)
	carla := testdb.AddEmployee(t, gormDB, "carla", models.InspectorRole)
	handler, _ := newHandlers(gormDB)

	t.Run("cancelar solo las partes", func(t *testing.T) {
		id, err := handler.Create(ana.ID, swapData(beto.ID))
		require.NoError(t, err)
		_, err = handler.ChangeStatus(carla.ID, id, status(models.SwapCancelled))
		require.True(t, models.IsErrorKind(err, models.ForbiddenErrorKind))
		result, err := handler.ChangeStatus(beto.ID, id, status(models.SwapCancelled))
		require.NoError(t, err)
		require.Equal(t, models.SwapCancelled, result.Status)
		_, err = handler.ChangeStatus(ana.ID, id, status(models.SwapCancelled))
		require.True(t, models.IsErrorKind(err, models.ConflictErrorKind))
	})
	t.Run("rechazar solo el destinatario", func(t *testing.T) {
		id, err := handler.Create(ana.ID, swapData(beto.ID))
		require.NoError(t, err)
		_, err = handler.ChangeStatus(ana.ID, id, status(models.SwapRejected))
		require.True(t, models.IsErrorKind(err, models.ForbiddenErrorKind))
		result, err := handler.ChangeStatus(beto.ID, id, status(models.SwapRejected))
		require.NoError(t, err)
		require.Equal(t, models.SwapRejected, result.Status)
	})
	t.Run("completado no se fija a mano", func(t *testing.T) {
		id, err := handler.Create(ana.ID, swapData(beto.ID))
		require.NoError(t, err)
		_, err = handler.ChangeStatus(beto.ID, id, status(models.SwapCompleted))
		require.True(t, models.IsErrorKind(err, models.ValidationErrorKind))
	})
	t.Run("editar solo el solicitante", func(t *testing.T) {
		id, err := handler.Create(ana.ID, swapData(beto.ID))
		require.NoError(t, err)
		data := swapData(beto.ID).SwapRequestData
		data.Reason = "cambio de horario"
		require.True(t, models.IsErrorKind(handler.Update(beto.ID, id, data), models.ForbiddenErrorKind))
		require.NoError(t, handler.Update(ana.ID, id, data))

		view, err := handler.Get(ana.ID, models.InspectorRole, id)
		require.NoError(t, err)
		require.Equal(t, "cambio de horario", view.Reason)

		require.True(t, models.IsErrorKind(handler.Delete(beto.ID, models.InspectorRole, id), models.ForbiddenErrorKind))
		require.NoError(t, handler.Delete(ana.ID, models.InspectorRole, id))
		_, err = handler.Get(ana.ID, models.InspectorRole, id)
		require.True(t, models.IsErrorKind(err, models.NotFoundErrorKind))
	})
}

func TestSwapRequestDeleteWithAuthorization(t *testing.T) {
	gormDB := testdb.New(t)
	ana := testdb.AddEmployee(t, gormDB, "ana", models.InspectorRole)
	beto := testdb.AddEmployee(t, gormDB, "beto", models.InspectorRole)
	chief := testdb.AddEmployee(t, gormDB, "jefe", models.ChiefRole)
	admin := testdb.AddEmployee(t, gormDB, "admin", models.AdminRole)
	handler, authHandler := newHandlers(gormDB)

	id, err := handler.Create(ana.ID, swapData(beto.ID))
	require.NoError(t, err)
	result, err := handler.ChangeStatus(beto.ID, id, status(models.SwapApproved))
	require.NoError(t, err)

	t.Run("con autorizacion pendiente", func(t *testing.T) {
		err := handler.Delete(ana.ID, models.InspectorRole, id)
		require.True(t, models.IsErrorKind(err, models.ConflictErrorKind))
	})
	t.Run("con autorizacion rechazada", func(t *testing.T) {
		_, err := authHandler.Reject(chief.ID, models.ChiefRole, result.AuthorizationID, authorizationapimodels.AuthorizationReject{
			Observations: "sin cobertura para esa fecha",
		})
		require.NoError(t, err)

		require.True(t, models.IsErrorKind(handler.Delete(ana.ID, models.InspectorRole, id), models.ConflictErrorKind))
		require.True(t, models.IsErrorKind(handler.Delete(admin.ID, models.AdminRole, id), models.ConflictErrorKind))

		view, err := authHandler.Get(ana.ID, models.InspectorRole, result.AuthorizationID)
		require.NoError(t, err)
		require.Equal(t, models.AuthorizationRejected, view.Status)
		require.NotNil(t, view.Request)
		require.Equal(t, id, view.Request.ID)
		history, err := authHandler.History(ana.ID, models.InspectorRole, result.AuthorizationID)
		require.NoError(t, err)
		require.NotEmpty(t, history)
	})
}

package authorizationstore

import (
	"testing"
	"time"
	testdb "workshift-backend/lib/utils/test-db"
	"workshift-backend/models"
	dbmodels "workshift-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func addPending(t *testing.T, gormDB *gorm.DB, employeeID string) (Provider, string, string) {
	license := dbmodels.License{
		EmployeeID: employeeID,
		Type:       models.LicenseOrdinary,
		Status:     models.LicensePending,
	}
	license.SetDates(testdb.Date(t, "2025-04-01"), testdb.Date(t, "2025-04-05"))
	require.NoError(t, gormDB.Create(&license).Error)

	store := NewInstance(gormDB)
	id, err := store.Create(dbmodels.Authorization{
		Type:       models.AuthorizationOrdinaryLeave,
		EmployeeID: employeeID,
		LicenseID:  &license.ID,
		Status:     models.AuthorizationPending,
	})
	require.NoError(t, err)
	return store, id, license.ID
}

func TestAuthorizationStoreResolve(t *testing.T) {
	gormDB := testdb.New(t)
	emp := testdb.AddEmployee(t, gormDB, "ana", models.InspectorRole)
	jefe := testdb.AddEmployee(t, gormDB, "jefe", models.ChiefRole)
	admin := testdb.AddEmployee(t, gormDB, "admin", models.AdminRole)

	t.Run("dos resoluciones sobre la misma lectura", func(t *testing.T) {
		store, id, _ := addPending(t, gormDB, emp.ID)

		// ambos aprobadores leyeron la autorizacion todavia pendiente
		first, err := store.GetByID(id)
		require.NoError(t, err)
		second, err := store.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, models.AuthorizationPending, first.Status)
		require.Equal(t, models.AuthorizationPending, second.Status)

		approveAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
		resolved, err := store.Resolve(first.ID, ResolveData{
			Status:       models.AuthorizationApproved,
			ApprovedBy:   jefe.ID,
			ApprovalDate: approveAt,
		})
		require.NoError(t, err)
		require.True(t, resolved)

		observations := "llego tarde"
		resolved, err = store.Resolve(second.ID, ResolveData{
			Status:       models.AuthorizationRejected,
			ApprovedBy:   admin.ID,
			ApprovalDate: approveAt.Add(time.Minute),
			Observations: &observations,
		})
		require.NoError(t, err)
		require.False(t, resolved)

		rec, err := store.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, models.AuthorizationApproved, rec.Status)
		require.NotNil(t, rec.ApprovedBy)
		require.Equal(t, jefe.ID, *rec.ApprovedBy)
		require.Empty(t, rec.Observations)
	})
	t.Run("borrar pendiente", func(t *testing.T) {
		store, id, licenseID := addPending(t, gormDB, emp.ID)
		exists, err := store.ExistsFor(models.LicenseRef(licenseID))
		require.NoError(t, err)
		require.True(t, exists)

		resolved, err := store.Resolve(id, ResolveData{
			Status:       models.AuthorizationApproved,
			ApprovedBy:   jefe.ID,
			ApprovalDate: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		require.True(t, resolved)

		deleted, err := store.DeletePending(id)
		require.NoError(t, err)
		require.False(t, deleted)
		rec, err := store.GetByID(id)
		require.NoError(t, err)
		require.NotNil(t, rec)

		store, id, licenseID = addPending(t, gormDB, emp.ID)
		deleted, err = store.DeletePending(id)
		require.NoError(t, err)
		require.True(t, deleted)
		exists, err = store.ExistsFor(models.LicenseRef(licenseID))
		require.NoError(t, err)
		require.False(t, exists)
	})
}

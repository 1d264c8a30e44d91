package eligibility

import (
	"testing"
	testdb "workshift-backend/lib/utils/test-db"
	"workshift-backend/models"
	dbmodels "workshift-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestEligibility(t *testing.T) {
	t.Run("sin sanciones ni licencias es elegible", func(t *testing.T) {
		gormDB := testdb.New(t)
		emp := testdb.AddEmployee(t, gormDB, "ana", models.InspectorRole)
		checker := NewHandler(gormDB, CheckToday, testdb.Clock("2025-03-10"))

		result, err := checker.Check(emp.ID, testdb.Date(t, "2025-04-01"), testdb.Date(t, "2025-04-01"))
		require.NoError(t, err)
		require.True(t, result.Eligible)
		require.Empty(t, result.Reason)
	})

	t.Run("sancion activa hoy bloquea", func(t *testing.T) {
		gormDB := testdb.New(t)
		emp := testdb.AddEmployee(t, gormDB, "beto", models.InspectorRole)
		require.NoError(t, gormDB.Create(&dbmodels.Sanction{
			EmployeeID: emp.ID,
			DateFrom:   testdb.Date(t, "2025-03-01"),
			DateTo:     testdb.Date(t, "2025-03-15"),
			Reason:     "falta grave",
			Status:     models.SanctionActive,
		}).Error)
		checker := NewHandler(gormDB, CheckToday, testdb.Clock("2025-03-10"))

		result, err := checker.Check(emp.ID, testdb.Date(t, "2025-06-01"), testdb.Date(t, "2025-06-02"))
		require.NoError(t, err)
		require.False(t, result.Eligible)
		require.Contains(t, result.Reason, "sancion")
	})

	t.Run("sancion finalizada o anulada no bloquea", func(t *testing.T) {
		gormDB := testdb.New(t)
		emp := testdb.AddEmployee(t, gormDB, "carla", models.InspectorRole)
		for _, status := range []models.SanctionStatus{models.SanctionFinished, models.SanctionCancelled} {
			require.NoError(t, gormDB.Create(&dbmodels.Sanction{
				EmployeeID: emp.ID,
				DateFrom:   testdb.Date(t, "2025-03-01"),
				DateTo:     testdb.Date(t, "2025-03-15"),
				Reason:     "motivo",
				Status:     status,
			}).Error)
		}
		checker := NewHandler(gormDB, CheckToday, testdb.Clock("2025-03-10"))

		result, err := checker.Check(emp.ID, testdb.Date(t, "2025-03-10"), testdb.Date(t, "2025-03-10"))
		require.NoError(t, err)
		require.True(t, result.Eligible)
	})

	t.Run("licencia aprobada hoy bloquea y la pendiente no", func(t *testing.T) {
		gormDB := testdb.New(t)
		emp := testdb.AddEmployee(t, gormDB, "dario", models.InspectorRole)
		pending := dbmodels.License{EmployeeID: emp.ID, Type: models.LicenseOrdinary, Status: models.LicensePending}
		pending.SetDates(testdb.Date(t, "2025-03-09"), testdb.Date(t, "2025-03-11"))
		require.NoError(t, gormDB.Create(&pending).Error)
		checker := NewHandler(gormDB, CheckToday, testdb.Clock("2025-03-10"))

		result, err := checker.Check(emp.ID, testdb.Date(t, "2025-03-10"), testdb.Date(t, "2025-03-10"))
		require.NoError(t, err)
		require.True(t, result.Eligible)

		require.NoError(t, gormDB.Model(&pending).Update("status", models.LicenseApproved).Error)
		result, err = checker.Check(emp.ID, testdb.Date(t, "2025-03-10"), testdb.Date(t, "2025-03-10"))
		require.NoError(t, err)
		require.False(t, result.Eligible)
		require.Contains(t, result.Reason, "licencia")
	})

	t.Run("modo rango evalua las fechas pedidas", func(t *testing.T) {
		gormDB := testdb.New(t)
		emp := testdb.AddEmployee(t, gormDB, "elena", models.InspectorRole)
		medical := dbmodels.License{EmployeeID: emp.ID, Type: models.LicenseMedical, Status: models.LicenseApproved}
		medical.SetDates(testdb.Date(t, "2025-05-01"), testdb.Date(t, "2025-05-05"))
		require.NoError(t, gormDB.Create(&medical).Error)

		today := NewHandler(gormDB, CheckToday, testdb.Clock("2025-03-10"))
		result, err := today.Check(emp.ID, testdb.Date(t, "2025-05-03"), testdb.Date(t, "2025-05-04"))
		require.NoError(t, err)
		require.True(t, result.Eligible)

		ranged := NewHandler(gormDB, CheckRange, testdb.Clock("2025-03-10"))
		result, err = ranged.Check(emp.ID, testdb.Date(t, "2025-05-03"), testdb.Date(t, "2025-05-04"))
		require.NoError(t, err)
		require.False(t, result.Eligible)

		result, err = ranged.Check(emp.ID, testdb.Date(t, "2025-05-06"), testdb.Date(t, "2025-05-08"))
		require.NoError(t, err)
		require.True(t, result.Eligible)
	})

	t.Run("parse check mode", func(t *testing.T) {
		mode, err := ParseCheckMode("")
		require.NoError(t, err)
		require.Equal(t, CheckToday, mode)
		mode, err = ParseCheckMode("range")
		require.NoError(t, err)
		require.Equal(t, CheckRange, mode)
		_, err = ParseCheckMode("semana")
		require.Error(t, err)
	})
}

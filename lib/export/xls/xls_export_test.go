package xlsexport

import (
	"testing"
	"time"
	"workshift-backend/models"
	dbmodels "workshift-backend/models/db"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportLicenseRoster(t *testing.T) {
	t.Run("planilla con datos", func(t *testing.T) {
		date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
		rec := dbmodels.License{
			EmployeeID: "emp-1",
			Employee:   &dbmodels.Employee{FirstName: "Ana", LastName: "Perez", FileNumber: "1234"},
			Type:       models.LicenseMedical,
			Status:     models.LicenseApproved,
		}
		rec.SetDates(date, date.AddDate(0, 0, 2))

		buf, err := ExportLicenseRoster(date, []dbmodels.License{rec})
		require.NoError(t, err)

		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()
		sheet := "Licencias 10-03-2025"
		header, err := f.GetCellValue(sheet, "A1")
		require.NoError(t, err)
		require.Equal(t, "Empleado", header)
		name, err := f.GetCellValue(sheet, "A2")
		require.NoError(t, err)
		require.Equal(t, "Ana Perez", name)
		days, err := f.GetCellValue(sheet, "F2")
		require.NoError(t, err)
		require.Equal(t, "3", days)
	})
	t.Run("planilla vacia", func(t *testing.T) {
		buf, err := ExportLicenseRoster(time.Now(), nil)
		require.NoError(t, err)
		require.NotZero(t, buf.Len())
	})
}

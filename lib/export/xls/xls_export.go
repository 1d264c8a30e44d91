package xlsexport

import (
	"bytes"
	"time"
	"workshift-backend/models"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

var rosterHeaders = []string{"Empleado", "Legajo", "Tipo de licencia", "Desde", "Hasta", "Dias", "Estado", "Observaciones"}

// ExportLicenseRoster planilla de empleados con licencia vigente en la fecha
func ExportLicenseRoster(date time.Time, list []dbmodels.License) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("error al cerrar el archivo")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, rosterHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "error al generar el encabezado del xlsx")
	}
	if len(list) != 0 {
		_, err = writeRosterData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "error al generar la tabla de datos del xlsx")
		}
	}
	if err = f.SetSheetName(sheet, "Licencias "+date.Format("02-01-2006")); err != nil {
		return nil, errors.Wrap(err, "error al nombrar la hoja del xlsx")
	}
	return f.WriteToBuffer()
}

func writeRosterData(f *excelize.File, sheet string, list []dbmodels.License, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(rosterHeaders), row+len(list)); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		values := []interface{}{
			employeeName(item.Employee),
			fileNumber(item.Employee),
			item.Type,
			item.DateFrom.Format(models.DateLayout),
			item.DateTo.Format(models.DateLayout),
			item.Days,
			item.Status,
			item.Observations,
		}
		if err := writeRow(f, sheet, row, values); err != nil {
			return row, err
		}
	}
	return row, nil
}

func employeeName(emp *dbmodels.Employee) string {
	if emp == nil {
		return ""
	}
	return emp.GetFullName()
}

func fileNumber(emp *dbmodels.Employee) string {
	if emp == nil {
		return ""
	}
	return emp.FileNumber
}

package pdfexport

import (
	"bytes"
	"fmt"
	"workshift-backend/models"
	authorizationapimodels "workshift-backend/models/api/authorization"
	employeeapimodels "workshift-backend/models/api/employee"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

type line struct {
	label string
	value string
}

// AuthorizationReceipt comprobante de una autorizacion con su origen
func AuthorizationReceipt(view authorizationapimodels.AuthorizationView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("AuthorizationReceipt panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Comprobante de autorizacion"), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Comprobante de autorizacion"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("N° %s", view.ID)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeSection(pdf, tr, "Autorizacion", []line{
		{"Tipo", string(view.Type)},
		{"Empleado", employeeName(view.Employee, view.EmployeeID)},
		{"Estado", string(view.Status)},
		{"Resuelta por", employeeName(view.Approver, view.ApprovedBy)},
		{"Fecha de resolucion", formatTime(view)},
		{"Observaciones", view.Observations},
	})

	switch {
	case view.Request != nil:
		writeSection(pdf, tr, "Solicitud de cambio de turno", []line{
			{"Solicitante", employeeName(view.Request.Requester, "")},
			{"Turno entregado", shiftText(view.Request.RequesterShift)},
			{"Destinatario", employeeName(view.Request.Recipient, "")},
			{"Turno recibido", shiftText(view.Request.RecipientShift)},
			{"Motivo", view.Request.Reason},
			{"Estado", string(view.Request.Status)},
		})
	case view.Offer != nil:
		lines := []line{
			{"Ofertante", employeeName(view.Offer.Offerer, "")},
			{"Tomador", employeeName(view.Offer.Taker, "")},
			{"Tipo", string(view.Offer.Type)},
			{"Descripcion", view.Offer.Description},
			{"Estado", string(view.Offer.Status)},
		}
		if view.Offer.OfferedShift != nil {
			lines = append(lines, line{"Turno ofrecido", shiftText(*view.Offer.OfferedShift)})
		}
		writeSection(pdf, tr, "Oferta de intercambio", lines)
	case view.License != nil:
		writeSection(pdf, tr, "Licencia", []line{
			{"Tipo", string(view.License.Type)},
			{"Desde", view.License.DateFrom},
			{"Hasta", view.License.DateTo},
			{"Dias", fmt.Sprintf("%d", view.License.Days)},
			{"Estado", string(view.License.Status)},
		})
	}

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *fpdf.Fpdf, tr func(string) string, title string, lines []line) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
	pdf.Ln(1)
	for _, item := range lines {
		if item.value == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 6, tr(item.label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 6, tr(item.value), "", "L", false)
	}
	pdf.Ln(4)
}

func employeeName(emp *employeeapimodels.EmployeeShort, fallback string) string {
	if emp == nil {
		return fallback
	}
	return emp.FullName
}

func shiftText(shift models.Shift) string {
	return fmt.Sprintf("%s %s (grupo %s)", shift.Date, shift.Schedule, shift.Group)
}

func formatTime(view authorizationapimodels.AuthorizationView) string {
	if view.ApprovalDate == nil {
		return ""
	}
	return view.ApprovalDate.Format("02/01/2006 15:04")
}

package authorizationapimodels

import (
	"strings"
	"time"
	"unicode/utf8"
	"workshift-backend/models"
	employeeapimodels "workshift-backend/models/api/employee"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
)

const RejectObservationsMinLength = 10

type AuthorizationCreate struct {
	Type         models.AuthorizationType `json:"type"`
	EmployeeID   string                   `json:"employee_id"`
	RequestID    *string                  `json:"request_id,omitempty"`
	OfferID      *string                  `json:"offer_id,omitempty"`
	LicenseID    *string                  `json:"license_id,omitempty"`
	Observations string                   `json:"observations"`
}

func (r AuthorizationCreate) Validate() error {
	if r.EmployeeID == "" {
		return models.NewValidationError("falta el empleado")
	}
	kind, ok := r.Type.OriginatorKind()
	if !ok {
		return models.NewValidationError("tipo de autorizacion desconocido: %v", r.Type)
	}
	ref, err := r.GetOriginator()
	if err != nil {
		return err
	}
	if ref.Kind != kind {
		return models.NewValidationError("el tipo %v no corresponde a una referencia de %v", r.Type, ref.Kind)
	}
	return nil
}

func (r AuthorizationCreate) GetOriginator() (models.OriginatorRef, error) {
	return models.NewOriginatorRef(r.RequestID, r.OfferID, r.LicenseID)
}

type AuthorizationApprove struct {
	Observations *string `json:"observations,omitempty"` // si no se envia se conserva la observacion existente
}

type AuthorizationReject struct {
	Observations string `json:"observations"`
}

func (r AuthorizationReject) Validate() error {
	return ValidateRejectObservations(r.Observations)
}

func ValidateRejectObservations(observations string) error {
	if utf8.RuneCountInString(strings.TrimSpace(observations)) < RejectObservationsMinLength {
		return models.NewValidationError("las observaciones del rechazo deben tener al menos %d caracteres", RejectObservationsMinLength)
	}
	return nil
}

type AuthorizationFilter struct {
	Status models.AuthorizationStatus `query:"status"`
}

func (f AuthorizationFilter) Validate() error {
	if f.Status == "" {
		return nil
	}
	if err := f.Status.Validate(); err != nil {
		return errors.Wrap(err, "filtro")
	}
	return nil
}

type RequestSummary struct {
	ID             string                           `json:"id"`
	Requester      *employeeapimodels.EmployeeShort `json:"requester,omitempty"`
	Recipient      *employeeapimodels.EmployeeShort `json:"recipient,omitempty"`
	RequesterShift models.Shift                     `json:"requester_shift"`
	RecipientShift models.Shift                     `json:"recipient_shift"`
	Reason         string                           `json:"reason"`
	Status         models.SwapRequestStatus         `json:"status"`
}

type OfferSummary struct {
	ID             string                           `json:"id"`
	Offerer        *employeeapimodels.EmployeeShort `json:"offerer,omitempty"`
	Taker          *employeeapimodels.EmployeeShort `json:"taker,omitempty"`
	Type           models.OfferType                 `json:"type"`
	OfferedShift   *models.Shift                    `json:"offered_shift,omitempty"`
	SoughtShifts   []models.Shift                   `json:"sought_shifts,omitempty"`
	AvailableDates []string                         `json:"available_dates,omitempty"`
	Description    string                           `json:"description"`
	Status         models.OfferStatus               `json:"status"`
}

type LicenseSummary struct {
	ID       string               `json:"id"`
	Type     models.LicenseType   `json:"type"`
	DateFrom string               `json:"date_from"`
	DateTo   string               `json:"date_to"`
	Days     int                  `json:"days"`
	Status   models.LicenseStatus `json:"status"`
}

// AuthorizationView a lo sumo uno de Request/Offer/License esta completo
type AuthorizationView struct {
	ID           string                           `json:"id"`
	Type         models.AuthorizationType         `json:"type"`
	EmployeeID   string                           `json:"employee_id"`
	Employee     *employeeapimodels.EmployeeShort `json:"employee,omitempty"`
	Status       models.AuthorizationStatus       `json:"status"`
	ApprovedBy   string                           `json:"approved_by,omitempty"`
	Approver     *employeeapimodels.EmployeeShort `json:"approver,omitempty"`
	ApprovalDate *time.Time                       `json:"approval_date,omitempty"`
	Observations string                           `json:"observations"`
	CreatedAt    time.Time                        `json:"created_at"`
	Request      *RequestSummary                  `json:"request,omitempty"`
	Offer        *OfferSummary                    `json:"offer,omitempty"`
	License      *LicenseSummary                  `json:"license,omitempty"`
}

func AuthorizationConvert(rec dbmodels.Authorization) AuthorizationView {
	result := AuthorizationView{
		ID:           rec.ID,
		Type:         rec.Type,
		EmployeeID:   rec.EmployeeID,
		Employee:     employeeapimodels.EmployeeShortConvert(rec.Employee),
		Status:       rec.Status,
		Approver:     employeeapimodels.EmployeeShortConvert(rec.Approver),
		ApprovalDate: rec.ApprovalDate,
		Observations: rec.Observations,
		CreatedAt:    rec.CreatedAt,
	}
	if rec.ApprovedBy != nil {
		result.ApprovedBy = *rec.ApprovedBy
	}
	ref, err := rec.Originator()
	if err != nil {
		return result
	}
	switch ref.Kind {
	case models.OriginatorRequest:
		if rec.Request != nil {
			result.Request = &RequestSummary{
				ID:             rec.Request.ID,
				Requester:      employeeapimodels.EmployeeShortConvert(rec.Request.Requester),
				Recipient:      employeeapimodels.EmployeeShortConvert(rec.Request.Recipient),
				RequesterShift: rec.Request.RequesterShift,
				RecipientShift: rec.Request.RecipientShift,
				Reason:         rec.Request.Reason,
				Status:         rec.Request.Status,
			}
		}
	case models.OriginatorOffer:
		if rec.Offer != nil {
			result.Offer = &OfferSummary{
				ID:             rec.Offer.ID,
				Offerer:        employeeapimodels.EmployeeShortConvert(rec.Offer.Offerer),
				Taker:          employeeapimodels.EmployeeShortConvert(rec.Offer.Taker),
				Type:           rec.Offer.Type,
				OfferedShift:   rec.Offer.OfferedShift,
				SoughtShifts:   rec.Offer.SoughtShifts,
				AvailableDates: rec.Offer.AvailableDates,
				Description:    rec.Offer.Description,
				Status:         rec.Offer.Status,
			}
		}
	case models.OriginatorLicense:
		if rec.License != nil {
			result.License = &LicenseSummary{
				ID:       rec.License.ID,
				Type:     rec.License.Type,
				DateFrom: rec.License.DateFrom.Format(models.DateLayout),
				DateTo:   rec.License.DateTo.Format(models.DateLayout),
				Days:     rec.License.Days,
				Status:   rec.License.Status,
			}
		}
	}
	return result
}

type ResolutionView struct {
	AuthorizationID  string                     `json:"authorization_id"`
	Status           models.AuthorizationStatus `json:"status"`
	OriginatorKind   models.OriginatorKind      `json:"originator_kind"`
	OriginatorID     string                     `json:"originator_id"`
	OriginatorStatus string                     `json:"originator_status,omitempty"`
	FanOutError      string                     `json:"fan_out_error,omitempty"`
}

type HistoryView struct {
	ActorID      string                           `json:"actor_id"`
	Actor        *employeeapimodels.EmployeeShort `json:"actor,omitempty"`
	Status       models.AuthorizationStatus       `json:"status"`
	Observations string                           `json:"observations"`
	Changes      dbmodels.EntityChanges           `json:"changes"`
	CreatedAt    time.Time                        `json:"created_at"`
}

func HistoryConvert(rec dbmodels.AuthorizationHistory) HistoryView {
	return HistoryView{
		ActorID:      rec.ActorID,
		Actor:        employeeapimodels.EmployeeShortConvert(rec.Actor),
		Status:       rec.Status,
		Observations: rec.Observations,
		Changes:      rec.Changes,
		CreatedAt:    rec.CreatedAt,
	}
}

package swaprequestapimodels

import (
	"time"
	"workshift-backend/models"
	employeeapimodels "workshift-backend/models/api/employee"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
)

type SwapRequestData struct {
	RequesterShift models.Shift    `json:"requester_shift"` // turno que entrega el solicitante
	RecipientShift models.Shift    `json:"recipient_shift"` // turno que recibe a cambio
	Reason         string          `json:"reason"`
	Priority       models.Priority `json:"priority"`
}

func (r SwapRequestData) Validate() error {
	if err := r.RequesterShift.Validate(); err != nil {
		return errors.Wrap(err, "turno del solicitante")
	}
	if err := r.RecipientShift.Validate(); err != nil {
		return errors.Wrap(err, "turno del destinatario")
	}
	if r.Reason == "" {
		return errors.New("falta el motivo")
	}
	return r.Priority.Validate()
}

type SwapRequestCreate struct {
	SwapRequestData
	RecipientID string `json:"recipient_id"`
}

func (r SwapRequestCreate) Validate() error {
	if r.RecipientID == "" {
		return errors.New("falta el destinatario")
	}
	return r.SwapRequestData.Validate()
}

type StatusChange struct {
	Status models.SwapRequestStatus `json:"status"`
}

func (r StatusChange) Validate() error {
	return r.Status.Validate()
}

type SwapRequestFilter struct {
	Status models.SwapRequestStatus `query:"status"`
}

type SwapRequestView struct {
	SwapRequestData
	ID          string                           `json:"id"`
	RequesterID string                           `json:"requester_id"`
	Requester   *employeeapimodels.EmployeeShort `json:"requester,omitempty"`
	RecipientID string                           `json:"recipient_id"`
	Recipient   *employeeapimodels.EmployeeShort `json:"recipient,omitempty"`
	Status      models.SwapRequestStatus         `json:"status"`
	CreatedAt   time.Time                        `json:"created_at"`
}

func SwapRequestConvert(rec dbmodels.SwapRequest) SwapRequestView {
	return SwapRequestView{
		SwapRequestData: SwapRequestData{
			RequesterShift: rec.RequesterShift,
			RecipientShift: rec.RecipientShift,
			Reason:         rec.Reason,
			Priority:       rec.Priority,
		},
		ID:          rec.ID,
		RequesterID: rec.RequesterID,
		Requester:   employeeapimodels.EmployeeShortConvert(rec.Requester),
		RecipientID: rec.RecipientID,
		Recipient:   employeeapimodels.EmployeeShortConvert(rec.Recipient),
		Status:      rec.Status,
		CreatedAt:   rec.CreatedAt,
	}
}

// StatusChangeResult al aprobar el destinatario se crea una autorizacion pendiente
type StatusChangeResult struct {
	Status          models.SwapRequestStatus `json:"status"`
	AuthorizationID string                   `json:"authorization_id,omitempty"`
}

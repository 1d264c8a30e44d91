package offerapimodels

import (
	"time"
	"unicode/utf8"
	"workshift-backend/models"
	employeeapimodels "workshift-backend/models/api/employee"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
)

const DescriptionMinLength = 10

type OfferData struct {
	Type           models.OfferType `json:"type"`
	SearchMode     models.OfferType `json:"search_mode"` // si esta vacio se toma el tipo
	OfferedShift   *models.Shift    `json:"offered_shift,omitempty"`
	SoughtShifts   []models.Shift   `json:"sought_shifts,omitempty"`
	AvailableDates []string         `json:"available_dates,omitempty"`
	Description    string           `json:"description"`
	Priority       models.Priority  `json:"priority"`
	Published      bool             `json:"published"`
}

func (r OfferData) GetSearchMode() models.OfferType {
	if r.SearchMode == "" {
		return r.Type
	}
	return r.SearchMode
}

func (r OfferData) Validate() error {
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if err := r.GetSearchMode().Validate(); err != nil {
		return err
	}
	if utf8.RuneCountInString(r.Description) < DescriptionMinLength {
		return errors.Errorf("la descripcion debe tener al menos %d caracteres", DescriptionMinLength)
	}
	if err := r.Priority.Validate(); err != nil {
		return err
	}
	_, err := r.BuildShape()
	return err
}

// OfferShape forma de los turnos segun el modo de busqueda
type OfferShape struct {
	OfferedShift   *models.Shift
	SoughtShifts   models.ShiftList
	AvailableDates models.DateList
}

// BuildShape INTERCAMBIO: un turno ofrecido y la lista de turnos buscados;
// ABIERTO: solo la lista de fechas disponibles.
func (r OfferData) BuildShape() (OfferShape, error) {
	switch r.GetSearchMode() {
	case models.OfferTypeSwap:
		if r.OfferedShift == nil {
			return OfferShape{}, errors.New("falta el turno ofrecido")
		}
		if err := r.OfferedShift.Validate(); err != nil {
			return OfferShape{}, errors.Wrap(err, "turno ofrecido")
		}
		if len(r.SoughtShifts) == 0 {
			return OfferShape{}, errors.New("debe indicar al menos un turno buscado")
		}
		for _, shift := range r.SoughtShifts {
			if err := shift.Validate(); err != nil {
				return OfferShape{}, errors.Wrap(err, "turno buscado")
			}
		}
		offered := *r.OfferedShift
		return OfferShape{
			OfferedShift: &offered,
			SoughtShifts: append(models.ShiftList{}, r.SoughtShifts...),
		}, nil
	case models.OfferTypeOpen:
		if len(r.AvailableDates) == 0 {
			return OfferShape{}, errors.New("debe indicar al menos una fecha disponible")
		}
		for _, date := range r.AvailableDates {
			if _, err := models.ParseDate(date); err != nil {
				return OfferShape{}, err
			}
		}
		return OfferShape{
			AvailableDates: append(models.DateList{}, r.AvailableDates...),
		}, nil
	}
	return OfferShape{}, errors.Errorf("modo de busqueda desconocido: %v", r.GetSearchMode())
}

type OfferFilter struct {
	Type models.OfferType `query:"type"`
}

type OfferView struct {
	OfferData
	ID         string                           `json:"id"`
	OffererID  string                           `json:"offerer_id"`
	Offerer    *employeeapimodels.EmployeeShort `json:"offerer,omitempty"`
	TakerID    string                           `json:"taker_id,omitempty"`
	Taker      *employeeapimodels.EmployeeShort `json:"taker,omitempty"`
	Status     models.OfferStatus               `json:"status"`
	AcceptedAt *time.Time                       `json:"accepted_at,omitempty"`
	CreatedAt  time.Time                        `json:"created_at"`
}

func OfferConvert(rec dbmodels.Offer) OfferView {
	result := OfferView{
		OfferData: OfferData{
			Type:           rec.Type,
			SearchMode:     rec.SearchMode,
			OfferedShift:   rec.OfferedShift,
			SoughtShifts:   rec.SoughtShifts,
			AvailableDates: rec.AvailableDates,
			Description:    rec.Description,
			Priority:       rec.Priority,
			Published:      rec.Published,
		},
		ID:         rec.ID,
		OffererID:  rec.OffererID,
		Offerer:    employeeapimodels.EmployeeShortConvert(rec.Offerer),
		Taker:      employeeapimodels.EmployeeShortConvert(rec.Taker),
		Status:     rec.Status,
		AcceptedAt: rec.AcceptedAt,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.TakerID != nil {
		result.TakerID = *rec.TakerID
	}
	return result
}

type TakeResult struct {
	Status          models.OfferStatus `json:"status"`
	AuthorizationID string             `json:"authorization_id"`
}

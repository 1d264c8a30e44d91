package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

const DateLayout = "2006-01-02"

// Shift turno de un empleado: fecha, horario y grupo
type Shift struct {
	Date     string `json:"date"`     // AAAA-MM-DD
	Schedule string `json:"schedule"` // horario, ej. 06:00-14:00
	Group    string `json:"group"`    // grupo/cuadrilla
}

func (s Shift) Validate() error {
	if s.Date == "" {
		return errors.New("falta la fecha del turno")
	}
	if _, err := ParseDate(s.Date); err != nil {
		return err
	}
	if s.Schedule == "" {
		return errors.New("falta el horario del turno")
	}
	if s.Group == "" {
		return errors.New("falta el grupo del turno")
	}
	return nil
}

func (s Shift) Value() (driver.Value, error) {
	data, err := json.Marshal(s)
	return string(data), err
}

func (s *Shift) Scan(value any) error {
	return scanJSON(value, s)
}

type ShiftList []Shift

func (l ShiftList) Value() (driver.Value, error) {
	data, err := json.Marshal(l)
	return string(data), err
}

func (l *ShiftList) Scan(value any) error {
	return scanJSON(value, l)
}

type DateList []string

func (l DateList) Value() (driver.Value, error) {
	data, err := json.Marshal(l)
	return string(data), err
}

func (l *DateList) Scan(value any) error {
	return scanJSON(value, l)
}

func scanJSON(value any, out any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, out)
	case string:
		return json.Unmarshal([]byte(v), out)
	}
	return errors.Errorf("tipo no soportado para json: %T", value)
}

type OfferType string

const (
	OfferTypeSwap OfferType = "INTERCAMBIO"
	OfferTypeOpen OfferType = "ABIERTO"
)

func (t OfferType) Validate() error {
	switch t {
	case OfferTypeSwap, OfferTypeOpen:
		return nil
	}
	return errors.Errorf("tipo de oferta desconocido: %v", t)
}

type Priority string

const (
	PriorityLow    Priority = "BAJA"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "ALTA"
	PriorityUrgent Priority = "URGENTE"
)

func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return nil
	}
	return errors.Errorf("prioridad desconocida: %v", p)
}

// ParseDate AAAA-MM-DD a medianoche UTC
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, errors.Errorf("fecha invalida %q, se espera el formato AAAA-MM-DD", value)
	}
	return t, nil
}

// DateOf recorta la hora y deja la fecha calendario en UTC
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInclusive cantidad de dias del rango, contando ambos extremos
func DaysInclusive(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours()/24) + 1
}

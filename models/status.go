package models

import "github.com/pkg/errors"

type AuthorizationStatus string

const (
	AuthorizationPending  AuthorizationStatus = "PENDIENTE"
	AuthorizationApproved AuthorizationStatus = "APROBADA"
	AuthorizationRejected AuthorizationStatus = "RECHAZADA"
)

var authorizationTransitions = map[AuthorizationStatus][]AuthorizationStatus{
	AuthorizationPending: {AuthorizationApproved, AuthorizationRejected},
}

func (s AuthorizationStatus) IsAllowChange(to AuthorizationStatus) bool {
	return contains(authorizationTransitions[s], to)
}

// AllowedFrom estados desde los que se puede llegar a s
func (s AuthorizationStatus) AllowedFrom() []AuthorizationStatus {
	return allowedFrom(authorizationTransitions, s)
}

func (s AuthorizationStatus) IsTerminal() bool {
	return len(authorizationTransitions[s]) == 0
}

func (s AuthorizationStatus) Validate() error {
	switch s {
	case AuthorizationPending, AuthorizationApproved, AuthorizationRejected:
		return nil
	}
	return errors.Errorf("estado de autorizacion desconocido: %v", s)
}

type AuthorizationType string

const (
	AuthorizationShiftSwap     AuthorizationType = "CAMBIO_TURNO"
	AuthorizationOrdinaryLeave AuthorizationType = "LICENCIA_ORDINARIA"
	AuthorizationOfferSwap     AuthorizationType = "OFERTA_INTERCAMBIO"
)

// OriginatorKind tipo de origen que corresponde a cada tipo de autorizacion
func (t AuthorizationType) OriginatorKind() (OriginatorKind, bool) {
	switch t {
	case AuthorizationShiftSwap:
		return OriginatorRequest, true
	case AuthorizationOrdinaryLeave:
		return OriginatorLicense, true
	case AuthorizationOfferSwap:
		return OriginatorOffer, true
	}
	return "", false
}

type SwapRequestStatus string

const (
	SwapRequested SwapRequestStatus = "SOLICITADO"
	SwapApproved  SwapRequestStatus = "APROBADO"
	SwapRejected  SwapRequestStatus = "RECHAZADO"
	SwapCancelled SwapRequestStatus = "CANCELADO"
	SwapCompleted SwapRequestStatus = "COMPLETADO"
)

var swapRequestTransitions = map[SwapRequestStatus][]SwapRequestStatus{
	SwapRequested: {SwapApproved, SwapRejected, SwapCancelled, SwapCompleted},
	SwapApproved:  {SwapRejected, SwapCancelled, SwapCompleted},
}

func (s SwapRequestStatus) IsAllowChange(to SwapRequestStatus) bool {
	return contains(swapRequestTransitions[s], to)
}

func (s SwapRequestStatus) AllowedFrom() []SwapRequestStatus {
	return allowedFrom(swapRequestTransitions, s)
}

func (s SwapRequestStatus) Validate() error {
	switch s {
	case SwapRequested, SwapApproved, SwapRejected, SwapCancelled, SwapCompleted:
		return nil
	}
	return errors.Errorf("estado de solicitud desconocido: %v", s)
}

type OfferStatus string

const (
	OfferAvailable OfferStatus = "DISPONIBLE"
	OfferRequested OfferStatus = "SOLICITADO"
	OfferAccepted  OfferStatus = "ACEPTADA"
	OfferApproved  OfferStatus = "APROBADO"
	OfferCompleted OfferStatus = "COMPLETADO"
	OfferCancelled OfferStatus = "CANCELADO"
)

var offerTransitions = map[OfferStatus][]OfferStatus{
	OfferAvailable: {OfferRequested, OfferAccepted, OfferCancelled},
	OfferRequested: {OfferAccepted, OfferApproved, OfferCompleted, OfferCancelled, OfferAvailable},
	OfferAccepted:  {OfferApproved, OfferCompleted, OfferCancelled, OfferAvailable},
	OfferApproved:  {OfferCompleted, OfferCancelled},
}

func (s OfferStatus) IsAllowChange(to OfferStatus) bool {
	return contains(offerTransitions[s], to)
}

func (s OfferStatus) AllowedFrom() []OfferStatus {
	return allowedFrom(offerTransitions, s)
}

type LicenseStatus string

const (
	LicensePending  LicenseStatus = "PENDIENTE"
	LicenseApproved LicenseStatus = "APROBADA"
	LicenseRejected LicenseStatus = "RECHAZADA"
	LicenseActive   LicenseStatus = "ACTIVA"
)

var licenseTransitions = map[LicenseStatus][]LicenseStatus{
	LicensePending:  {LicenseApproved, LicenseRejected},
	LicenseApproved: {LicenseActive},
}

func (s LicenseStatus) IsAllowChange(to LicenseStatus) bool {
	return contains(licenseTransitions[s], to)
}

func (s LicenseStatus) AllowedFrom() []LicenseStatus {
	return allowedFrom(licenseTransitions, s)
}

// LicenseBlockingStatuses estados que ocupan fechas: no puede haber dos licencias solapadas en ellos
var LicenseBlockingStatuses = []LicenseStatus{LicensePending, LicenseApproved, LicenseActive}

// LicenseInEffectStatuses estados que vuelven inelegible al empleado
var LicenseInEffectStatuses = []LicenseStatus{LicenseApproved, LicenseActive}

type LicenseType string

const (
	LicenseOrdinary LicenseType = "ORDINARIA"
	LicenseMedical  LicenseType = "MEDICA"
	LicenseSpecial  LicenseType = "ESPECIAL"
	LicenseStudy    LicenseType = "ESTUDIO"
	LicenseUnpaid   LicenseType = "SIN_GOCE"
)

func (t LicenseType) Validate() error {
	switch t {
	case LicenseOrdinary, LicenseMedical, LicenseSpecial, LicenseStudy, LicenseUnpaid:
		return nil
	}
	return errors.Errorf("tipo de licencia desconocido: %v", t)
}

// RequiresAuthorization solo la licencia ordinaria pasa por autorizacion
func (t LicenseType) RequiresAuthorization() bool {
	return t == LicenseOrdinary
}

func (t LicenseType) InitialStatus() LicenseStatus {
	if t.RequiresAuthorization() {
		return LicensePending
	}
	return LicenseApproved
}

type SanctionStatus string

const (
	SanctionActive    SanctionStatus = "ACTIVA"
	SanctionFinished  SanctionStatus = "FINALIZADA"
	SanctionCancelled SanctionStatus = "ANULADA"
)

var sanctionTransitions = map[SanctionStatus][]SanctionStatus{
	SanctionActive: {SanctionFinished, SanctionCancelled},
}

func (s SanctionStatus) IsAllowChange(to SanctionStatus) bool {
	return contains(sanctionTransitions[s], to)
}

func (s SanctionStatus) AllowedFrom() []SanctionStatus {
	return allowedFrom(sanctionTransitions, s)
}

func contains[T comparable](list []T, item T) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

func allowedFrom[T comparable](table map[T][]T, to T) []T {
	result := []T{}
	for from, targets := range table {
		if contains(targets, to) {
			result = append(result, from)
		}
	}
	return result
}

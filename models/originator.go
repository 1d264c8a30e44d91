package models

import "github.com/pkg/errors"

type OriginatorKind string

const (
	OriginatorRequest OriginatorKind = "SOLICITUD"
	OriginatorOffer   OriginatorKind = "OFERTA"
	OriginatorLicense OriginatorKind = "LICENCIA"
)

// OriginatorRef registro que origino una autorizacion: solicitud directa, oferta o licencia.
type OriginatorRef struct {
	Kind OriginatorKind
	ID   string
}

func RequestRef(id string) OriginatorRef { return OriginatorRef{Kind: OriginatorRequest, ID: id} }
func OfferRef(id string) OriginatorRef   { return OriginatorRef{Kind: OriginatorOffer, ID: id} }
func LicenseRef(id string) OriginatorRef { return OriginatorRef{Kind: OriginatorLicense, ID: id} }

// NewOriginatorRef exige exactamente una referencia no vacia
func NewOriginatorRef(requestID, offerID, licenseID *string) (OriginatorRef, error) {
	refs := make([]OriginatorRef, 0, 1)
	if requestID != nil && *requestID != "" {
		refs = append(refs, RequestRef(*requestID))
	}
	if offerID != nil && *offerID != "" {
		refs = append(refs, OfferRef(*offerID))
	}
	if licenseID != nil && *licenseID != "" {
		refs = append(refs, LicenseRef(*licenseID))
	}
	if len(refs) != 1 {
		return OriginatorRef{}, NewValidationError("debe indicarse exactamente una referencia (solicitud, oferta o licencia), recibidas: %d", len(refs))
	}
	return refs[0], nil
}

// Columns mapeo a las columnas nulas de la tabla de autorizaciones
func (r OriginatorRef) Columns() (requestID, offerID, licenseID *string) {
	id := r.ID
	switch r.Kind {
	case OriginatorRequest:
		requestID = &id
	case OriginatorOffer:
		offerID = &id
	case OriginatorLicense:
		licenseID = &id
	}
	return requestID, offerID, licenseID
}

func (r OriginatorRef) Validate() error {
	if r.ID == "" {
		return NewValidationError("referencia de origen vacia")
	}
	switch r.Kind {
	case OriginatorRequest, OriginatorOffer, OriginatorLicense:
		return nil
	}
	return errors.Errorf("tipo de origen desconocido: %v", r.Kind)
}

func (r OriginatorRef) IsZero() bool {
	return r.Kind == "" && r.ID == ""
}

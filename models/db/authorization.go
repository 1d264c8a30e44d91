package dbmodels

import (
	"time"
	"workshift-backend/models"
)

// Authorization puerta de aprobacion; referencia exactamente uno de RequestID/OfferID/LicenseID
type Authorization struct {
	BaseModel
	Type         models.AuthorizationType   `gorm:"type:varchar(30)"`
	EmployeeID   string                     `gorm:"type:varchar(36);index"`
	Employee     *Employee                  `gorm:"foreignKey:EmployeeID"`
	RequestID    *string                    `gorm:"type:varchar(36);index"`
	Request      *SwapRequest               `gorm:"foreignKey:RequestID"`
	OfferID      *string                    `gorm:"type:varchar(36);index"`
	Offer        *Offer                     `gorm:"foreignKey:OfferID"`
	LicenseID    *string                    `gorm:"type:varchar(36);index"`
	License      *License                   `gorm:"foreignKey:LicenseID"`
	Status       models.AuthorizationStatus `gorm:"type:varchar(20);index"`
	ApprovedBy   *string                    `gorm:"type:varchar(36)"`
	Approver     *Employee                  `gorm:"foreignKey:ApprovedBy"`
	ApprovalDate *time.Time
	Observations string
}

func (a Authorization) Originator() (models.OriginatorRef, error) {
	return models.NewOriginatorRef(a.RequestID, a.OfferID, a.LicenseID)
}

func (a *Authorization) SetOriginator(ref models.OriginatorRef) {
	a.RequestID, a.OfferID, a.LicenseID = ref.Columns()
}

// AuthorizationHistory historial de cambios de una autorizacion
type AuthorizationHistory struct {
	BaseModel
	AuthorizationID string                     `gorm:"type:varchar(36);index"`
	ActorID         string                     `gorm:"type:varchar(36)"`
	Actor           *Employee                  `gorm:"foreignKey:ActorID"`
	Status          models.AuthorizationStatus `gorm:"type:varchar(20)"`
	Observations    string
	Changes         EntityChanges `gorm:"type:text"`
}

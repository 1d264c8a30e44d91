package dbmodels

import (
	"workshift-backend/models"

	"github.com/pkg/errors"
)

// SwapRequest solicitud directa de cambio de turno entre dos empleados
type SwapRequest struct {
	BaseModel
	RequesterID    string       `gorm:"type:varchar(36);index"`
	Requester      *Employee    `gorm:"foreignKey:RequesterID"`
	RecipientID    string       `gorm:"type:varchar(36);index"`
	Recipient      *Employee    `gorm:"foreignKey:RecipientID"`
	RequesterShift models.Shift `gorm:"type:text"`
	RecipientShift models.Shift `gorm:"type:text"`
	Reason         string
	Priority       models.Priority          `gorm:"type:varchar(20)"`
	Status         models.SwapRequestStatus `gorm:"type:varchar(20);index"`
}

func (r SwapRequest) Validate() error {
	if r.RequesterID == "" || r.RecipientID == "" {
		return errors.New("faltan los empleados de la solicitud")
	}
	if r.RequesterID == r.RecipientID {
		return errors.New("no se puede solicitar un cambio a uno mismo")
	}
	return nil
}

func (r SwapRequest) IsParty(employeeID string) bool {
	return employeeID == r.RequesterID || employeeID == r.RecipientID
}

package dbmodels

import (
	"time"
	"workshift-backend/models"
)

type Offer struct {
	BaseModel
	OffererID      string           `gorm:"type:varchar(36);index"`
	Offerer        *Employee        `gorm:"foreignKey:OffererID"`
	TakerID        *string          `gorm:"type:varchar(36);index"`
	Taker          *Employee        `gorm:"foreignKey:TakerID"`
	Type           models.OfferType `gorm:"type:varchar(20)"`
	SearchMode     models.OfferType `gorm:"type:varchar(20)"`
	OfferedShift   *models.Shift    `gorm:"type:text"`
	SoughtShifts   models.ShiftList `gorm:"type:text"`
	AvailableDates models.DateList  `gorm:"type:text"`
	Description    string
	Priority       models.Priority    `gorm:"type:varchar(20)"`
	Published      bool               `gorm:"index"`
	Status         models.OfferStatus `gorm:"type:varchar(20);index"`
	AcceptedAt     *time.Time
}

func (o Offer) IsOfferer(employeeID string) bool {
	return o.OffererID == employeeID
}

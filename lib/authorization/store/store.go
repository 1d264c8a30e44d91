package authorizationstore

import (
	"time"
	"workshift-backend/models"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Authorization) (id string, err error)
	GetByID(id string) (rec *dbmodels.Authorization, err error)
	List(status models.AuthorizationStatus) (list []dbmodels.Authorization, err error)
	FindPending(ref models.OriginatorRef) (rec *dbmodels.Authorization, err error)
	Resolve(id string, data ResolveData) (resolved bool, err error)
	DeletePending(id string) (deleted bool, err error)
	ExistsFor(ref models.OriginatorRef) (bool, error)
}

// ResolveData cambios al cerrar una autorizacion pendiente
type ResolveData struct {
	Status       models.AuthorizationStatus
	ApprovedBy   string
	ApprovalDate time.Time
	Observations *string
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Authorization) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Authorization, error) {
	rec := dbmodels.Authorization{}
	err := i.withDetails(i.db).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(status models.AuthorizationStatus) (list []dbmodels.Authorization, err error) {
	list = []dbmodels.Authorization{}
	tx := i.withDetails(i.db).
		Order("created_at DESC")
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) FindPending(ref models.OriginatorRef) (*dbmodels.Authorization, error) {
	column, err := originatorColumn(ref)
	if err != nil {
		return nil, err
	}
	rec := dbmodels.Authorization{}
	err = i.db.
		Where(column+" = ?", ref.ID).
		Where("status = ?", models.AuthorizationPending).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Resolve actualiza solo si la autorizacion sigue PENDIENTE
func (i impl) Resolve(id string, data ResolveData) (bool, error) {
	updMap := map[string]interface{}{
		"status":        data.Status,
		"approved_by":   data.ApprovedBy,
		"approval_date": data.ApprovalDate,
	}
	if data.Observations != nil {
		updMap["observations"] = *data.Observations
	}
	res := i.db.
		Model(&dbmodels.Authorization{}).
		Where("id = ?", id).
		Where("status = ?", models.AuthorizationPending).
		Updates(updMap)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeletePending las resueltas no se borran: quedan con su historial
func (i impl) DeletePending(id string) (bool, error) {
	res := i.db.
		Where("id = ?", id).
		Where("status = ?", models.AuthorizationPending).
		Delete(&dbmodels.Authorization{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ExistsFor alguna autorizacion, en cualquier estado, apunta al origen
func (i impl) ExistsFor(ref models.OriginatorRef) (bool, error) {
	column, err := originatorColumn(ref)
	if err != nil {
		return false, err
	}
	var count int64
	err = i.db.
		Model(&dbmodels.Authorization{}).
		Where(column+" = ?", ref.ID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) withDetails(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Employee").
		Preload("Approver").
		Preload("Request.Requester").
		Preload("Request.Recipient").
		Preload("Offer.Offerer").
		Preload("Offer.Taker").
		Preload("License")
}

func originatorColumn(ref models.OriginatorRef) (string, error) {
	switch ref.Kind {
	case models.OriginatorRequest:
		return "request_id", nil
	case models.OriginatorOffer:
		return "offer_id", nil
	case models.OriginatorLicense:
		return "license_id", nil
	}
	return "", errors.Errorf("tipo de origen desconocido: %v", ref.Kind)
}

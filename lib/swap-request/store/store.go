package swaprequeststore

import (
	"workshift-backend/models"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.SwapRequest) (id string, err error)
	GetByID(id string) (rec *dbmodels.SwapRequest, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) (deleted bool, err error)
	List(employeeID string, status models.SwapRequestStatus) (list []dbmodels.SwapRequest, err error)
	ChangeStatus(id string, to models.SwapRequestStatus) (changed bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.SwapRequest) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.SwapRequest, error) {
	rec := dbmodels.SwapRequest{}
	err := i.db.
		Where("id = ?", id).
		Preload("Requester").
		Preload("Recipient").
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.SwapRequest{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

// Delete solo solicitudes sin completar y sin ninguna autorizacion que las referencie
func (i impl) Delete(id string) (bool, error) {
	authorized := i.db.
		Model(&dbmodels.Authorization{}).
		Select("1").
		Where("request_id = ?", id)
	res := i.db.
		Where("id = ?", id).
		Where("status <> ?", models.SwapCompleted).
		Where("NOT EXISTS (?)", authorized).
		Delete(&dbmodels.SwapRequest{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// List solicitudes donde el empleado es solicitante o destinatario
func (i impl) List(employeeID string, status models.SwapRequestStatus) (list []dbmodels.SwapRequest, err error) {
	list = []dbmodels.SwapRequest{}
	tx := i.db.
		Order("created_at DESC").
		Preload("Requester").
		Preload("Recipient")
	if employeeID != "" {
		tx = tx.Where("requester_id = ? OR recipient_id = ?", employeeID, employeeID)
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ChangeStatus(id string, to models.SwapRequestStatus) (bool, error) {
	res := i.db.
		Model(&dbmodels.SwapRequest{}).
		Where("id = ?", id).
		Where("status IN ?", to.AllowedFrom()).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

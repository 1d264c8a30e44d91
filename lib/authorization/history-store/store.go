package authorizationhistorystore

import (
	dbmodels "workshift-backend/models/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.AuthorizationHistory) (id string, err error)
	List(authorizationID string) (list []dbmodels.AuthorizationHistory, err error)
	DeleteByAuthorization(authorizationID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AuthorizationHistory) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(authorizationID string) (list []dbmodels.AuthorizationHistory, err error) {
	list = []dbmodels.AuthorizationHistory{}
	err = i.db.
		Where("authorization_id = ?", authorizationID).
		Order("created_at ASC").
		Preload("Actor").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DeleteByAuthorization(authorizationID string) error {
	return i.db.
		Where("authorization_id = ?", authorizationID).
		Delete(&dbmodels.AuthorizationHistory{}).
		Error
}

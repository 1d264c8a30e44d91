package offerstore

import (
	"time"
	"workshift-backend/models"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Offer) (id string, err error)
	GetByID(id string) (rec *dbmodels.Offer, err error)
	Update(id string, allowed []models.OfferStatus, updMap map[string]interface{}) (updated bool, err error)
	Delete(id string, allowed []models.OfferStatus) (deleted bool, err error)
	ListAvailable(offerType models.OfferType) (list []dbmodels.Offer, err error)
	ListByOfferer(offererID string) (list []dbmodels.Offer, err error)
	ChangeStatus(id string, to models.OfferStatus) (changed bool, err error)
	Take(id, takerID string, acceptedAt time.Time) (taken bool, err error)
	Release(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Offer) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Offer, error) {
	rec := dbmodels.Offer{}
	err := i.db.
		Where("id = ?", id).
		Preload("Offerer").
		Preload("Taker").
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

// Update y Delete no tocan la oferta si otro la llevo fuera de los estados permitidos
func (i impl) Update(id string, allowed []models.OfferStatus, updMap map[string]interface{}) (bool, error) {
	if len(updMap) == 0 {
		return true, nil
	}
	res := i.db.
		Model(&dbmodels.Offer{}).
		Where("id = ?", id).
		Where("status IN ?", allowed).
		Updates(updMap)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (i impl) Delete(id string, allowed []models.OfferStatus) (bool, error) {
	res := i.db.
		Where("id = ?", id).
		Where("status IN ?", allowed).
		Delete(&dbmodels.Offer{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ListAvailable ofertas publicadas que todavia se pueden tomar
func (i impl) ListAvailable(offerType models.OfferType) (list []dbmodels.Offer, err error) {
	list = []dbmodels.Offer{}
	tx := i.db.
		Where("published = ?", true).
		Where("status = ?", models.OfferAvailable).
		Order("created_at DESC").
		Preload("Offerer")
	if offerType != "" {
		tx = tx.Where("type = ?", offerType)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByOfferer(offererID string) (list []dbmodels.Offer, err error) {
	list = []dbmodels.Offer{}
	err = i.db.
		Where("offerer_id = ?", offererID).
		Order("created_at DESC").
		Preload("Offerer").
		Preload("Taker").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ChangeStatus(id string, to models.OfferStatus) (bool, error) {
	res := i.db.
		Model(&dbmodels.Offer{}).
		Where("id = ?", id).
		Where("status IN ?", to.AllowedFrom()).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Take DISPONIBLE -> ACEPTADA solo si nadie la tomo antes
func (i impl) Take(id, takerID string, acceptedAt time.Time) (bool, error) {
	res := i.db.
		Model(&dbmodels.Offer{}).
		Where("id = ?", id).
		Where("status = ?", models.OfferAvailable).
		Updates(map[string]interface{}{
			"status":      models.OfferAccepted,
			"taker_id":    takerID,
			"accepted_at": acceptedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Release vuelve la oferta aceptada a DISPONIBLE y libera al tomador
func (i impl) Release(id string) error {
	return i.db.
		Model(&dbmodels.Offer{}).
		Where("id = ?", id).
		Where("status = ?", models.OfferAccepted).
		Updates(map[string]interface{}{
			"status":      models.OfferAvailable,
			"taker_id":    gorm.Expr("NULL"),
			"accepted_at": gorm.Expr("NULL"),
		}).
		Error
}

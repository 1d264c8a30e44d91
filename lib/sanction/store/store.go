package sanctionstore

import (
	"time"
	"workshift-backend/models"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Sanction) (id string, err error)
	GetByID(id string) (rec *dbmodels.Sanction, err error)
	List(employeeID string) (list []dbmodels.Sanction, err error)
	ExistsActive(employeeID string, dateFrom, dateTo time.Time) (bool, error)
	ChangeStatus(id string, to models.SanctionStatus) (changed bool, err error)
	FinishExpired(today time.Time) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Sanction) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Sanction, error) {
	rec := dbmodels.Sanction{}
	err := i.db.
		Where("id = ?", id).
		Preload("Employee").
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

func (i impl) List(employeeID string) (list []dbmodels.Sanction, err error) {
	list = []dbmodels.Sanction{}
	tx := i.db.
		Order("date_from DESC").
		Preload("Employee")
	if employeeID != "" {
		tx = tx.Where("employee_id = ?", employeeID)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ExistsActive sancion ACTIVA que se superpone con [dateFrom, dateTo]
func (i impl) ExistsActive(employeeID string, dateFrom, dateTo time.Time) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Sanction{}).
		Where("employee_id = ?", employeeID).
		Where("status = ?", models.SanctionActive).
		Where("date_from <= ?", models.DateOf(dateTo)).
		Where("date_to >= ?", models.DateOf(dateFrom)).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) ChangeStatus(id string, to models.SanctionStatus) (bool, error) {
	res := i.db.
		Model(&dbmodels.Sanction{}).
		Where("id = ?", id).
		Where("status IN ?", to.AllowedFrom()).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// FinishExpired ACTIVA con fecha de fin anterior a hoy pasan a FINALIZADA
func (i impl) FinishExpired(today time.Time) (int64, error) {
	res := i.db.
		Model(&dbmodels.Sanction{}).
		Where("status = ?", models.SanctionActive).
		Where("date_to < ?", models.DateOf(today)).
		Update("status", models.SanctionFinished)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

package licensestore

import (
	"time"
	"workshift-backend/models"
	dbmodels "workshift-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.License) (id string, err error)
	GetByID(id string) (rec *dbmodels.License, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string, allowed []models.LicenseStatus) (deleted bool, err error)
	ListByEmployee(employeeID string) (list []dbmodels.License, err error)
	ListByDate(date time.Time) (list []dbmodels.License, err error)
	ExistsOverlapping(employeeID string, dateFrom, dateTo time.Time, statuses []models.LicenseStatus, excludeID string) (bool, error)
	ChangeStatus(id string, to models.LicenseStatus) (changed bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.License) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.License, error) {
	rec := dbmodels.License{}
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.License{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

// Delete solo si la licencia sigue en alguno de los estados permitidos
func (i impl) Delete(id string, allowed []models.LicenseStatus) (bool, error) {
	res := i.db.
		Where("id = ?", id).
		Where("status IN ?", allowed).
		Delete(&dbmodels.License{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (i impl) ListByEmployee(employeeID string) (list []dbmodels.License, err error) {
	list = []dbmodels.License{}
	err = i.db.
		Where("employee_id = ?", employeeID).
		Order("date_from DESC").
		Preload("Employee").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListByDate licencias vigentes (aprobadas o activas) que abarcan la fecha
func (i impl) ListByDate(date time.Time) (list []dbmodels.License, err error) {
	date = models.DateOf(date)
	list = []dbmodels.License{}
	err = i.db.
		Where("status IN ?", models.LicenseInEffectStatuses).
		Where("date_from <= ?", date).
		Where("date_to >= ?", date).
		Order("date_from ASC").
		Preload("Employee").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ExistsOverlapping(employeeID string, dateFrom, dateTo time.Time, statuses []models.LicenseStatus, excludeID string) (bool, error) {
	var count int64
	tx := i.db.
		Model(&dbmodels.License{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", statuses).
		Where("date_from <= ?", models.DateOf(dateTo)).
		Where("date_to >= ?", models.DateOf(dateFrom))
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) ChangeStatus(id string, to models.LicenseStatus) (bool, error) {
	res := i.db.
		Model(&dbmodels.License{}).
		Where("id = ?", id).
		Where("status IN ?", to.AllowedFrom()).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

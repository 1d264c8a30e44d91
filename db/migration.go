package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	dbmodels "workshift-backend/models/db"
)

func AutoMigrateDB(db *gorm.DB) error {
	log.Info("Ejecutando migraciones")
	if err := db.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "error al crear la estructura Employee")
	}
	if err := db.AutoMigrate(&dbmodels.Sanction{}); err != nil {
		return errors.Wrap(err, "error al crear la estructura Sanction")
	}
	if err := db.AutoMigrate(&dbmodels.License{}); err != nil {
		return errors.Wrap(err, "error al crear la estructura License")
	}
	if err := db.AutoMigrate(&dbmodels.SwapRequest{}); err != nil {
		return errors.Wrap(err, "error al crear la estructura SwapRequest")
	}
	if err := db.AutoMigrate(&dbmodels.Offer{}); err != nil {
		return errors.Wrap(err, "error al crear la estructura Offer")
	}
	if err := db.AutoMigrate(&dbmodels.Authorization{}); err != nil {
		return errors.Wrap(err, "error al crear la estructura Authorization")
	}
	if err := db.AutoMigrate(&dbmodels.AuthorizationHistory{}); err != nil {
		return errors.Wrap(err, "error al crear la estructura AuthorizationHistory")
	}
	log.Info("Migracion finalizada")
	return nil
}

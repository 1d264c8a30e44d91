package db

import (
	"workshift-backend/config"
	employeestore "workshift-backend/lib/employee/store"
	authutils "workshift-backend/lib/utils/auth-utils"
	"workshift-backend/models"
	dbmodels "workshift-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func InitPreload(db *gorm.DB, conf *config.Configuration) {
	addAdmin(db, conf)
}

func addAdmin(db *gorm.DB, conf *config.Configuration) {
	if conf.Admin.Email == "" {
		log.Warn("administrador no agregado, falta la configuracion ADMIN_EMAIL")
		return
	}
	store := employeestore.NewInstance(db)
	existedRec, err := store.FindByEmail(conf.Admin.Email)
	if err != nil {
		log.WithError(err).Error("error al agregar el administrador")
		return
	}
	if existedRec != nil {
		return
	}
	password, err := authutils.HashPassword(conf.Admin.Password)
	if err != nil {
		log.WithError(err).Error("error al agregar el administrador")
		return
	}
	rec := dbmodels.Employee{
		IsActive:  true,
		Role:      models.AdminRole,
		Password:  password,
		FirstName: conf.Admin.FirstName,
		LastName:  conf.Admin.LastName,
		Email:     conf.Admin.Email,
	}
	_, err = store.Create(rec)
	if err != nil {
		log.WithError(err).Error("error al agregar el administrador")
	}
}

package initializers

import (
	"workshift-backend/config"
	"workshift-backend/db"

	"gorm.io/gorm"
)

func InitDBConnection(conf *config.Configuration) (*gorm.DB, error) {
	conn, err := db.Connect(conf.Database.Host, conf.Database.Port, conf.Database.Name,
		conf.Database.User, conf.Database.Password, *conf.Database.DebugMode, *conf.Database.MigrateOnStart)
	if err != nil {
		return nil, err
	}
	db.InitPreload(conn, conf)
	return conn, nil
}

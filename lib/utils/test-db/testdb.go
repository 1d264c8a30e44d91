package testdb

import (
	"fmt"
	"testing"
	"time"
	"workshift-backend/db"
	"workshift-backend/models"
	dbmodels "workshift-backend/models/db"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New base sqlite en memoria, aislada por test y con las migraciones aplicadas
func New(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	// una sola conexion: las transacciones se serializan como en un bloqueo de fila
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	require.NoError(t, db.AutoMigrateDB(gormDB))
	return gormDB
}

// Clock reloj fijo para los handlers
func Clock(date string) func() time.Time {
	day, err := models.ParseDate(date)
	if err != nil {
		panic(err)
	}
	now := day.Add(10 * time.Hour)
	return func() time.Time {
		return now
	}
}

func Date(t *testing.T, value string) time.Time {
	t.Helper()
	day, err := models.ParseDate(value)
	require.NoError(t, err)
	return day
}

func AddEmployee(t *testing.T, gormDB *gorm.DB, firstName string, role models.UserRole) dbmodels.Employee {
	t.Helper()
	rec := dbmodels.Employee{
		FirstName: firstName,
		LastName:  "Test",
		Email:     fmt.Sprintf("%s-%s@workshift.test", firstName, uuid.NewString()[:8]),
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, gormDB.Create(&rec).Error)
	return rec
}

package dbmodels

import (
	"fmt"
	"strings"
	"workshift-backend/models"

	"github.com/pkg/errors"
)

type Employee struct {
	BaseModel
	Password    string          `gorm:"type:varchar(128)" json:"-"`
	FirstName   string          `gorm:"type:varchar(150)"`
	LastName    string          `gorm:"type:varchar(150)"`
	Email       string          `gorm:"type:varchar(255);uniqueIndex"`
	PhoneNumber string          `gorm:"type:varchar(20)"`
	FileNumber  string          `gorm:"type:varchar(30)"` // legajo
	Role        models.UserRole `gorm:"type:varchar(30)"`
	IsActive    bool
}

func (r Employee) Validate() error {
	if r.Email == "" {
		return errors.New("falta el email")
	}
	if r.FirstName == "" {
		return errors.New("falta el nombre")
	}
	if !r.Role.IsValid() {
		return errors.Errorf("rol desconocido: %v", r.Role)
	}
	return nil
}

func (r Employee) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", r.FirstName, r.LastName))
}

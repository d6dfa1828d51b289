package db

import (
	"errors"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/billing-admin/internal/models"
)

// Seed creates the three roles and, when no user exists yet, a bootstrap
// Manager account (username "admin", password from ADMIN_PASSWORD or "admin").
// Idempotent: re-running changes nothing.
func Seed(db *gorm.DB) error {
	for _, name := range []string{models.RoleEmployee, models.RoleAdministrator, models.RoleManager} {
		var existing models.Role
		err := db.Where("name = ?", name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&models.Role{Name: name, State: true}).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	var manager models.Role
	if err := db.Where("name = ?", models.RoleManager).First(&manager).Error; err != nil {
		return err
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		FirstName:    "Admin",
		LastName:     "User",
		RoleID:       manager.ID,
		Username:     "admin",
		PasswordHash: string(hash),
		State:        true,
	}
	return db.Create(&admin).Error
}

package database

import (
	"gorm.io/gorm"

	"edims-backend/config"
	"edims-backend/models"
)

// SeedAdmin creates the bootstrap admin account when the users table is empty.
// Registration is admin-gated, so a fresh deployment needs one seeded login.
func SeedAdmin(db *gorm.DB, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := models.User{
		Username: username,
		FullName: "Administrator",
		Role:     models.RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	config.GetLogger().WithField("username", username).Info("seeded bootstrap admin user")
	return nil
}

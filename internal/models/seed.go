package models

import (
	"errors"

	"gorm.io/gorm"
)

// seedDepartments is the bootstrap directory of departments.
var seedDepartments = []Department{
	{Name: "Pulmonology", Description: "Lungs"},
	{Name: "Cardiology", Description: "Heart and cardiovascular system"},
	{Name: "Neurology", Description: "Brain and nervous system"},
	{Name: "Orthopedics", Description: "Bones and muscles"},
	{Name: "Pediatrics", Description: "Children health"},
	{Name: "Dermatology", Description: "Skin conditions"},
	{Name: "General Medicine", Description: "General health issues"},
}

// Seed inserts the department directory and the default admin account.
// Safe to call on every startup: existing rows are left untouched.
func Seed(db *gorm.DB, adminUsername, adminPassword string) error {
	for _, dept := range seedDepartments {
		d := dept
		err := db.Where("name = ?", d.Name).First(&Department{}).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&d).Error; err != nil {
			return err
		}
	}

	var admin User
	err := db.Where("username = ? AND role = ?", adminUsername, RoleAdmin).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin = User{Username: adminUsername, Role: RoleAdmin, IsActive: true}
	if err := admin.SetPassword(adminPassword); err != nil {
		return err
	}
	return db.Create(&admin).Error
}

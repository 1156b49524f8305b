package database

import (
	"context"
	"errors"

	"github.com/yeremiapane/restaurant-tables/config"
	"github.com/yeremiapane/restaurant-tables/models"
	"github.com/yeremiapane/restaurant-tables/services"
	"github.com/yeremiapane/restaurant-tables/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migrate creates the staff and journal tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.ActivityLog{}); err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// SeedAdmin creates the admin account unless the email is already registered.
func SeedAdmin(db *gorm.DB, email, password string) error {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user = models.User{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Seeded admin user %s", email)
	return nil
}

// SeedTables adds the configured tables to a fresh floor. Names that fail
// validation or already exist are skipped with a log line.
func SeedTables(ctx context.Context, floor *services.FloorService, seeds []config.TableSeed) int {
	actor := services.Actor{Name: "seed"}
	added := 0
	for _, seed := range seeds {
		if !utils.ValidTableName(seed.Name) {
			utils.ErrorLogger.Printf("Skipping seed table %q: invalid name", seed.Name)
			continue
		}
		if _, err := floor.AddTable(ctx, actor, seed.Name, seed.Seats); err != nil {
			utils.ErrorLogger.Printf("Skipping seed table %q: %v", seed.Name, err)
			continue
		}
		added++
	}
	return added
}

package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-tables/config"
	"github.com/yeremiapane/restaurant-tables/models"
	"github.com/yeremiapane/restaurant-tables/services"
	"github.com/yeremiapane/restaurant-tables/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger("error")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SeedAdmin(db, "admin@example.com", "secret123"))
	require.NoError(t, SeedAdmin(db, "admin@example.com", "other-password"))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte("secret123")))
}

func TestSeedTablesSkipsInvalidAndDuplicate(t *testing.T) {
	db := setupTestDB(t)
	floor := services.NewFloorService(models.NewRestaurant(), services.NewJournal(db), nil)

	added := SeedTables(context.Background(), floor, []config.TableSeed{
		{Name: "Table 1", Seats: 4},
		{Name: "Table 1", Seats: 6},
		{Name: "Patio", Seats: 2},
		{Name: "Bar 2", Seats: 2},
	})

	assert.Equal(t, 2, added)
	assert.Equal(t, services.Stats{FreeTables: 2, FreeSeats: 6, TotalTables: 2}, floor.Stats())
}

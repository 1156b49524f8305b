package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/restaurant-tables/database"
	"github.com/yeremiapane/restaurant-tables/kds"
	"github.com/yeremiapane/restaurant-tables/models"
	"github.com/yeremiapane/restaurant-tables/router"
	"github.com/yeremiapane/restaurant-tables/services"
	"github.com/yeremiapane/restaurant-tables/utils"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "secret123"
)

type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	floor   *services.FloorService
	journal *services.Journal
	hub     *kds.Hub
	tokens  *utils.TokenManager
	admin   string
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// setupEnv wires the full router on an in-memory SQLite journal.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	utils.InitLogger("error")
	gin.SetMode(gin.TestMode)
	require.NoError(t, utils.RegisterValidators())

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(t.Name()))), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.SeedAdmin(db, adminEmail, adminPassword))

	hub := kds.NewHub()
	journal := services.NewJournal(db)
	floor := services.NewFloorService(models.NewRestaurant(), journal, hub)
	tokens := utils.NewTokenManager("test-secret", time.Hour)

	env := &testEnv{
		router: router.SetupRouter(router.Deps{
			DB:         db,
			Floor:      floor,
			Journal:    journal,
			Hub:        hub,
			Tokens:     tokens,
			CORSOrigin: "http://localhost",
		}),
		db:      db,
		floor:   floor,
		journal: journal,
		hub:     hub,
		tokens:  tokens,
	}

	var admin models.User
	require.NoError(t, db.Where("email = ?", adminEmail).First(&admin).Error)
	env.admin, err = tokens.GenerateToken(admin.ID, admin.Email, admin.Role)
	require.NoError(t, err)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w.Code, resp
}

func (e *testEnv) addTable(t *testing.T, name string, seats int) {
	t.Helper()
	e.addTableAs(t, e.admin, name, seats)
}

func (e *testEnv) addTableAs(t *testing.T, token, name string, seats int) {
	t.Helper()
	code, resp := e.do(t, http.MethodPost, "/admin/tables", gin.H{"name": name, "seats": seats}, token)
	require.Equal(t, http.StatusCreated, code, resp.Message)
}

func tablePath(name string, suffix string) string {
	return "/admin/tables/" + url.PathEscape(name) + suffix
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

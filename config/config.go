package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds runtime settings read from the environment.
type Config struct {
	Port            string
	GinMode         string
	LogLevel        string
	DBDriver        string
	DBDSN           string
	JWTSecret       string
	TokenTTL        time.Duration
	AdminEmail      string
	AdminPassword   string
	SeedTables      []TableSeed
	RateLimit       int
	CORSOrigin      string
	MonitorInterval time.Duration

	// optional integrations, disabled when empty
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	AMQPURL       string
	AMQPQueue     string
}

// TableSeed is a table created at startup.
type TableSeed struct {
	Name  string
	Seats int
}

// Load reads an optional .env file and then the process environment.
// Missing values fall back to development defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	ttl, err := durationEnv("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	interval, err := durationEnv("MONITOR_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := intEnv("RATE_LIMIT", 50)
	if err != nil {
		return Config{}, err
	}
	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	seeds, err := ParseTableSeeds(getEnv("SEED_TABLES", "Table 1:4,Table 2:2"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DBDriver:        getEnv("DB_DRIVER", "sqlite"),
		DBDSN:           getEnv("DB_DSN", "file::memory:?cache=shared"),
		JWTSecret:       getEnv("JWT_SECRET", "TestSecretKeyAUTH1945"),
		TokenTTL:        ttl,
		AdminEmail:      getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "secret123"),
		SeedTables:      seeds,
		RateLimit:       rateLimit,
		CORSOrigin:      getEnv("CORS_ORIGIN", "http://127.0.0.1:5500"),
		MonitorInterval: interval,
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         redisDB,
		AMQPURL:         getEnv("AMQP_URL", ""),
		AMQPQueue:       getEnv("AMQP_QUEUE", "floor.events"),
	}, nil
}

// InitDB opens the journal database for the configured driver.
func InitDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBDSN)
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if cfg.DBDriver == "sqlite" {
		// in-memory sqlite lives only as long as its connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}
	return db, nil
}

// ParseTableSeeds parses "Table 1:4,Table 2:2".
func ParseTableSeeds(raw string) ([]TableSeed, error) {
	var seeds []TableSeed
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		idx := strings.LastIndex(item, ":")
		if idx <= 0 {
			return nil, fmt.Errorf("invalid SEED_TABLES entry %q", item)
		}
		seats, err := strconv.Atoi(strings.TrimSpace(item[idx+1:]))
		if err != nil || seats < 1 {
			return nil, fmt.Errorf("invalid seat count in SEED_TABLES entry %q", item)
		}
		seeds = append(seeds, TableSeed{Name: strings.TrimSpace(item[:idx]), Seats: seats})
	}
	return seeds, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

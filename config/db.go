package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-folio/billing"
	"hotel-folio/models"
	"hotel-folio/utils"
)

func floatPtr(v float64) *float64 { return &v }

// SeedDatabase inserts the default rate table and rooms into an empty database.
func SeedDatabase(db *gorm.DB) error {
	zl := utils.GetLogger()

	var rtCount int64
	if err := db.Model(&models.RoomType{}).Count(&rtCount).Error; err != nil {
		return err
	}
	if rtCount > 0 {
		zl.Debug("room types already seeded")
		return nil
	}

	roomTypes := []models.RoomType{
		{TypeName: "Standard", Description: "Standard Room", MaxGuests: 2, NightlyBasePrice: floatPtr(1500), ReservationFeePercentage: floatPtr(10)},
		{TypeName: "Superior", Description: "Superior Room", MaxGuests: 3, NightlyBasePrice: floatPtr(2200), ReservationFeePercentage: floatPtr(10)},
		{TypeName: "Deluxe", Description: "Deluxe Room", MaxGuests: 4, NightlyBasePrice: floatPtr(3200), ReservationFeePercentage: floatPtr(15)},
		{TypeName: "Connecting", Description: "Connecting Room", MaxGuests: 5, NightlyBasePrice: floatPtr(4500), ReservationFeePercentage: floatPtr(15)},
	}
	if err := db.Create(&roomTypes).Error; err != nil {
		return fmt.Errorf("seed room types: %w", err)
	}

	layout := map[string][]string{
		"Standard":   {"101", "102", "103", "104"},
		"Superior":   {"201", "202", "203"},
		"Deluxe":     {"301", "302"},
		"Connecting": {"401"},
	}
	rooms := make([]models.Room, 0, 10)
	for _, rt := range roomTypes {
		for _, num := range layout[rt.TypeName] {
			rooms = append(rooms, models.Room{
				RoomTypeID: rt.ID,
				RoomNumber: num,
				Floor:      num[:1],
				Status:     billing.RoomVacantReady,
			})
		}
	}
	if err := db.Create(&rooms).Error; err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}

	zl.Info("rate table and rooms seeded", zap.Int("room_types", len(roomTypes)), zap.Int("rooms", len(rooms)))
	return nil
}

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

func resolveMySQLDSN(cfg App) (string, error) {
	raw := strings.TrimSpace(cfg.MySQLURL)
	if raw == "" {
		raw = strings.TrimSpace(cfg.DatabaseURL)
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			dsn, _, err := mysqlDSNFromURL(raw)
			return dsn, err
		}
		return raw, nil
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName,
	), nil
}

func resolvePostgresDSN(cfg App) string {
	if raw := strings.TrimSpace(cfg.DatabaseURL); raw != "" {
		return raw
	}
	port := cfg.DBPort
	if port == "" || port == "3306" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, port, cfg.DBUser, cfg.DBPass, cfg.DBName,
	)
}

// Dialector picks the gorm driver named by DB_DRIVER.
func Dialector(cfg App) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.DBDriver)) {
	case "", "mysql":
		dsn, err := resolveMySQLDSN(cfg)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open(resolvePostgresDSN(cfg)), nil
	case "sqlite":
		path := strings.TrimSpace(cfg.DatabaseURL)
		if path == "" {
			path = cfg.DBName + ".db"
		}
		return sqlite.Open(path), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// Migrate creates or updates the schema, parents before children.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.Booking{},
	)
}

func ConnectDatabase(cfg App) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := logger.Info
	if cfg.IsProduction() {
		level = logger.Warn
	}
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      level,
			Colorful:      !cfg.IsProduction(),
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	if cfg.DBSeed {
		if err := SeedDatabase(db); err != nil {
			utils.GetLogger().Warn("seeding failed", zap.Error(err))
		}
	}
	return db, nil
}

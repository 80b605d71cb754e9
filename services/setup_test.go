package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-folio/billing"
	"hotel-folio/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	// every pooled connection to :memory: is its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.RoomType{}, &models.Room{}, &models.Booking{}))
	return db
}

func ptr(v float64) *float64 { return &v }

func uptr(v uint) *uint { return &v }

func day(m time.Month, d int) time.Time {
	return time.Date(2026, m, d, 0, 0, 0, 0, time.UTC)
}

func seedRoomType(t *testing.T, db *gorm.DB, name string, price, pct float64) models.RoomType {
	t.Helper()
	rt := models.RoomType{TypeName: name, NightlyBasePrice: ptr(price), ReservationFeePercentage: ptr(pct)}
	require.NoError(t, db.Create(&rt).Error)
	return rt
}

func seedRoom(t *testing.T, db *gorm.DB, typeID uint, number string, status billing.RoomStatus) models.Room {
	t.Helper()
	room := models.Room{RoomTypeID: typeID, RoomNumber: number, Status: status}
	require.NoError(t, db.Create(&room).Error)
	return room
}

type published struct {
	key     string
	payload any
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, key string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, published{key: key, payload: payload})
	return f.err
}

func (f *fakePublisher) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sent))
	for i, p := range f.sent {
		out[i] = p.key
	}
	return out
}

type fakeCache struct {
	types       []models.RoomType
	hit         bool
	gets, sets  int
	invalidated int
}

func (c *fakeCache) GetRoomTypes(context.Context) ([]models.RoomType, bool) {
	c.gets++
	return c.types, c.hit
}

func (c *fakeCache) SetRoomTypes(_ context.Context, types []models.RoomType) {
	c.sets++
	c.types = types
	c.hit = true
}

func (c *fakeCache) Invalidate(context.Context) {
	c.invalidated++
	c.types = nil
	c.hit = false
}

package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-folio/config"
	"hotel-folio/controllers"
	"hotel-folio/services"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	require.NoError(t, config.SeedDatabase(db))

	roomTypes := services.NewRoomTypeService(db, nil)
	bookings := services.NewBookingService(db, nil)
	return SetupRouter(Controllers{
		RoomTypes: controllers.NewRoomTypeController(roomTypes),
		Rooms:     controllers.NewRoomController(services.NewRoomService(db), services.NewAvailabilityService(db)),
		Bookings:  controllers.NewBookingController(bookings),
		Quotes:    controllers.NewQuoteController(services.NewQuoteService(roomTypes)),
		Reports:   controllers.NewReportController(bookings),
	}, Options{})
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseCorsOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, parseCorsOrigins(""))
	assert.Equal(t, []string{"*"}, parseCorsOrigins(" , "))
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, parseCorsOrigins("https://a.test, https://b.test"))
}

func TestRoomTypesAndRooms(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodGet, "/api/room-types", nil)
	require.Equal(t, http.StatusOK, code)
	var types []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &types))
	assert.Len(t, types, 4)

	code, env = do(t, r, http.MethodPost, "/api/room-types", map[string]any{"type_name": "Suite", "nightly_base_price": 9000, "reservation_fee_percentage": 20})
	require.Equal(t, http.StatusCreated, code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	id := uint(created["id"].(float64))

	code, env = do(t, r, http.MethodPost, "/api/room-types", map[string]any{"type_name": "Bad", "reservation_fee_percentage": 150})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)

	code, _ = do(t, r, http.MethodPut, fmt.Sprintf("/api/room-types/%d", id), map[string]any{"nightly_base_price": 9500})
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, r, http.MethodPost, "/api/rooms", map[string]any{"room_type_id": id, "room_number": "501"})
	assert.Equal(t, http.StatusCreated, code)

	code, env = do(t, r, http.MethodPost, "/api/rooms", map[string]any{"room_type_id": id, "room_number": "501"})
	assert.Equal(t, http.StatusConflict, code)
	assert.NotEmpty(t, env.Error)

	code, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/api/room-types/%d", id), nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = do(t, r, http.MethodGet, "/api/rooms/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodPatch, "/api/rooms/1/status", map[string]any{"status": "Out-of-Order"})
	assert.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodGet, "/api/availability?check_in=2026-03-01&check_out=2026-03-03&room_type_id=1", nil)
	require.Equal(t, http.StatusOK, code)
	var free []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &free))
	assert.Len(t, free, 3)

	code, _ = do(t, r, http.MethodGet, "/api/availability?check_in=2026-03-03&check_out=2026-03-01", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestQuote(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodPost, "/api/quotes", map[string]any{
		"nightly_base_price":         120,
		"reservation_fee_percentage": 10,
		"check_in":                   "2026-01-01",
		"check_out":                  "2026-01-04",
		"amount_paid":                50,
	})
	require.Equal(t, http.StatusOK, code)
	var q struct {
		Breakdown map[string]float64 `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &q))
	assert.Equal(t, 372.0, q.Breakdown["total_due"])
	assert.Equal(t, 38.0, q.Breakdown["net_paid"])
	assert.Equal(t, 334.0, q.Breakdown["remaining_balance"])

	code, _ = do(t, r, http.MethodPost, "/api/quotes", map[string]any{"check_in": "soon", "check_out": "2026-01-04"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestBookingFlow(t *testing.T) {
	r := newTestRouter(t)

	code, env := do(t, r, http.MethodPost, "/api/bookings", map[string]any{
		"room_type_id": 1,
		"check_in":     "2026-01-01",
		"check_out":    "2026-01-04",
		"guest":        map[string]any{"full_name": "Maria Santos", "adults": 2},
		"amount_paid":  500,
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	var b struct {
		ID            uint               `json:"id"`
		ReferenceCode string             `json:"reference_code"`
		Status        string             `json:"status"`
		Breakdown     map[string]float64 `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &b))
	assert.Equal(t, "Reserved", b.Status)
	// Standard: 1500 x 3 nights + 10% of one night
	assert.Equal(t, 4650.0, b.Breakdown["total_due"])
	assert.Equal(t, 4300.0, b.Breakdown["remaining_balance"])

	code, _ = do(t, r, http.MethodPost, "/api/bookings", map[string]any{
		"room_type_id": 1,
		"check_in":     "2026-01-04",
		"check_out":    "2026-01-04",
		"guest":        map[string]any{"full_name": "Same Day"},
	})
	assert.Equal(t, http.StatusBadRequest, code)

	base := fmt.Sprintf("/api/bookings/%d", b.ID)

	code, _ = do(t, r, http.MethodPost, base+"/checkout", nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = do(t, r, http.MethodPost, base+"/checkin", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodPost, base+"/payments", map[string]any{"amount": 4200})
	require.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodGet, base+"/breakdown", nil)
	require.Equal(t, http.StatusOK, code)
	var bd map[string]float64
	require.NoError(t, json.Unmarshal(env.Data, &bd))
	assert.Equal(t, 4700.0, bd["amount_paid"])
	assert.Equal(t, 50.0, bd["change"])
	assert.Equal(t, 0.0, bd["remaining_balance"])

	req := httptest.NewRequest(http.MethodGet, base+"/receipt", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, w.Body.String(), b.ReferenceCode)
	assert.Contains(t, w.Body.String(), "₱4,650.00")

	code, _ = do(t, r, http.MethodPost, base+"/checkout", nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = do(t, r, http.MethodGet, "/api/reports/monthly-revenue?month=2026-01", nil)
	require.Equal(t, http.StatusOK, code)
	var sum map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &sum))
	assert.Equal(t, "2026-01", sum["month"])
	assert.Equal(t, 4650.0, sum["collected"])

	code, _ = do(t, r, http.MethodGet, "/api/reports/monthly-revenue?month=January", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

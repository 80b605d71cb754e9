package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-folio/controllers"
	"hotel-folio/middleware"
)

// Controllers groups every handler the router mounts.
type Controllers struct {
	RoomTypes *controllers.RoomTypeController
	Rooms     *controllers.RoomController
	Bookings  *controllers.BookingController
	Quotes    *controllers.QuoteController
	Reports   *controllers.ReportController
}

type Options struct {
	CorsOrigins     string
	RateLimitPerMin int
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires middleware and the /api routes onto a new engine.
func SetupRouter(ctl Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logger())

	origins := parseCorsOrigins(opts.CorsOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.RateLimit(opts.RateLimitPerMin))
	{
		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", ctl.RoomTypes.GetRoomTypes)
			roomTypes.POST("", ctl.RoomTypes.CreateRoomType)
			roomTypes.GET("/:id", ctl.RoomTypes.GetRoomType)
			roomTypes.PUT("/:id", ctl.RoomTypes.UpdateRoomType)
			roomTypes.DELETE("/:id", ctl.RoomTypes.DeleteRoomType)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.GetRooms)
			rooms.POST("", ctl.Rooms.CreateRoom)
			rooms.GET("/:id", ctl.Rooms.GetRoom)
			rooms.PATCH("/:id/status", ctl.Rooms.UpdateRoomStatus)
			rooms.DELETE("/:id", ctl.Rooms.DeleteRoom)
		}

		api.GET("/availability", ctl.Rooms.GetAvailability)
		api.POST("/quotes", ctl.Quotes.CreateQuote)

		bookings := api.Group("/bookings")
		{
			bookings.GET("", ctl.Bookings.GetBookings)
			bookings.POST("", ctl.Bookings.CreateBooking)
			bookings.GET("/:id", ctl.Bookings.GetBookingDetails)
			bookings.DELETE("/:id", ctl.Bookings.DeleteBooking)
			bookings.POST("/:id/checkin", ctl.Bookings.CheckInBooking)
			bookings.POST("/:id/checkout", ctl.Bookings.CheckoutBooking)
			bookings.POST("/:id/cancel", ctl.Bookings.CancelBooking)
			bookings.POST("/:id/payments", ctl.Bookings.RecordPayment)
			bookings.GET("/:id/breakdown", ctl.Bookings.GetBreakdown)
			bookings.GET("/:id/receipt", ctl.Bookings.GetReceipt)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/monthly-revenue", ctl.Reports.GetMonthlyRevenue)
		}
	}

	return r
}

// controllers/booking_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-folio/billing"
	"hotel-folio/models"
	"hotel-folio/services"
	"hotel-folio/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	RoomTypeID *uint            `json:"room_type_id"`
	RoomID     *uint            `json:"room_id"`
	CheckIn    string           `json:"check_in" binding:"required"`
	CheckOut   string           `json:"check_out" binding:"required"`
	Guest      models.GuestInfo `json:"guest"`
	AmountPaid float64          `json:"amount_paid"`
}

type PaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// BookingView is a booking together with its derived charges.
type BookingView struct {
	*models.Booking
	Breakdown billing.ChargeBreakdown `json:"breakdown"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

func (ctrl *BookingController) view(c *gin.Context, code int, b *models.Booking) {
	_, bd, err := ctrl.BookingSvc.Breakdown(c.Request.Context(), b.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, code, BookingView{Booking: b, Breakdown: bd})
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	status := billing.LifecycleStatus(c.Query("status"))
	bookings, err := ctrl.BookingSvc.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_in: "+err.Error())
		return
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_out: "+err.Error())
		return
	}

	b, err := ctrl.BookingSvc.Create(c.Request.Context(), services.CreateBookingInput{
		RoomTypeID: req.RoomTypeID,
		RoomID:     req.RoomID,
		Stay:       billing.Stay{CheckIn: checkIn, CheckOut: checkOut},
		Guest:      req.Guest,
		AmountPaid: req.AmountPaid,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	ctrl.view(c, http.StatusCreated, b)
}

func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, bd, err := ctrl.BookingSvc.Breakdown(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, BookingView{Booking: b, Breakdown: bd})
}

// DeleteBooking archives; the booking stays in revenue reports.
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.Archive(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Booking archived"})
}

// ---------------------------
// Lifecycle
// ---------------------------

func (ctrl *BookingController) lifecycle(c *gin.Context, move func(*gin.Context, uint) (*models.Booking, error)) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := move(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	ctrl.view(c, http.StatusOK, b)
}

func (ctrl *BookingController) CheckInBooking(c *gin.Context) {
	ctrl.lifecycle(c, func(c *gin.Context, id uint) (*models.Booking, error) {
		return ctrl.BookingSvc.CheckIn(c.Request.Context(), id)
	})
}

func (ctrl *BookingController) CheckoutBooking(c *gin.Context) {
	ctrl.lifecycle(c, func(c *gin.Context, id uint) (*models.Booking, error) {
		return ctrl.BookingSvc.CheckOut(c.Request.Context(), id)
	})
}

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	ctrl.lifecycle(c, func(c *gin.Context, id uint) (*models.Booking, error) {
		return ctrl.BookingSvc.Cancel(c.Request.Context(), id)
	})
}

func (ctrl *BookingController) RecordPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	b, err := ctrl.BookingSvc.RecordPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	ctrl.view(c, http.StatusOK, b)
}

// ---------------------------
// Folio
// ---------------------------

func (ctrl *BookingController) GetBreakdown(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	_, bd, err := ctrl.BookingSvc.Breakdown(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bd)
}

func (ctrl *BookingController) GetReceipt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	text, err := ctrl.BookingSvc.Receipt(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.String(http.StatusOK, text)
}

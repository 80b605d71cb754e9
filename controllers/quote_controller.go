package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-folio/billing"
	"hotel-folio/services"
	"hotel-folio/utils"
)

type QuoteRequest struct {
	RoomTypeID               *uint    `json:"room_type_id"`
	NightlyBasePrice         *float64 `json:"nightly_base_price"`
	ReservationFeePercentage *float64 `json:"reservation_fee_percentage"`
	CheckIn                  string   `json:"check_in" binding:"required"`
	CheckOut                 string   `json:"check_out" binding:"required"`
	AmountPaid               float64  `json:"amount_paid"`
}

type QuoteController struct {
	Svc *services.QuoteService
}

func NewQuoteController(svc *services.QuoteService) *QuoteController {
	return &QuoteController{Svc: svc}
}

// CreateQuote prices a stay without reserving anything.
func (ctrl *QuoteController) CreateQuote(c *gin.Context) {
	var req QuoteRequest
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

	q, err := ctrl.Svc.Quote(c.Request.Context(), services.QuoteInput{
		RoomTypeID:               req.RoomTypeID,
		NightlyBasePrice:         req.NightlyBasePrice,
		ReservationFeePercentage: req.ReservationFeePercentage,
		Stay:                     billing.Stay{CheckIn: checkIn, CheckOut: checkOut},
		AmountPaid:               req.AmountPaid,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, q)
}

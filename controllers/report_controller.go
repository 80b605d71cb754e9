package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-folio/services"
	"hotel-folio/utils"
)

type ReportController struct {
	BookingSvc *services.BookingService
}

func NewReportController(svc *services.BookingService) *ReportController {
	return &ReportController{BookingSvc: svc}
}

// GetMonthlyRevenue defaults to the current month when ?month is absent.
func (ctrl *ReportController) GetMonthlyRevenue(c *gin.Context) {
	month := time.Now().UTC()
	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		m, err := utils.ParseMonth(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		month = m
	}

	sum, err := ctrl.BookingSvc.MonthlyRevenue(c.Request.Context(), month)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, sum)
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-folio/billing"
	"hotel-folio/services"
	"hotel-folio/utils"
)

// parseID reads the :id path parameter and answers 400 itself when invalid.
func parseID(c *gin.Context) (uint, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// parseOptionalUint returns nil for an empty value.
func parseOptionalUint(raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	u := uint(v)
	return &u, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, billing.ErrInvalidStay):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrRoomTypeNotFound),
		errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, billing.ErrRoomUnavailable),
		errors.Is(err, services.ErrRoomTypeInUse),
		errors.Is(err, services.ErrRoomInUse),
		errors.Is(err, services.ErrDuplicateRoomNumber),
		errors.Is(err, services.ErrInvalidTransition):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError maps service errors to status codes. Unexpected errors are
// logged and hidden from the client.
func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		utils.GetLogger().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		utils.JSONError(c, code, "internal server error")
		return
	}
	utils.JSONError(c, code, err.Error())
}

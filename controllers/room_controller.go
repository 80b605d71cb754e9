package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-folio/billing"
	"hotel-folio/models"
	"hotel-folio/services"
	"hotel-folio/utils"
)

type CreateRoomRequest struct {
	RoomTypeID  uint               `json:"room_type_id" binding:"required"`
	RoomNumber  string             `json:"room_number" binding:"required"`
	Floor       string             `json:"floor"`
	Status      billing.RoomStatus `json:"status"`
	Description string             `json:"description"`
}

type UpdateRoomStatusRequest struct {
	Status billing.RoomStatus `json:"status" binding:"required"`
}

type RoomController struct {
	Svc          *services.RoomService
	Availability *services.AvailabilityService
}

func NewRoomController(svc *services.RoomService, availability *services.AvailabilityService) *RoomController {
	return &RoomController{Svc: svc, Availability: availability}
}

// ----------------------------------------------------
// Rooms (GET /api/rooms?room_type_id=)
// ----------------------------------------------------

func (ctrl *RoomController) GetRooms(c *gin.Context) {
	typeID, err := parseOptionalUint(c.Query("room_type_id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room_type_id")
		return
	}
	rooms, err := ctrl.Svc.List(c.Request.Context(), typeID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	room, err := ctrl.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	room := models.Room{
		RoomTypeID:  req.RoomTypeID,
		RoomNumber:  req.RoomNumber,
		Floor:       req.Floor,
		Status:      req.Status,
		Description: req.Description,
	}
	if err := ctrl.Svc.Create(c.Request.Context(), &room); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// ----------------------------------------------------
// Housekeeping status (PATCH /api/rooms/:id/status)
// ----------------------------------------------------

func (ctrl *RoomController) UpdateRoomStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	room, err := ctrl.Svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctrl.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room deleted"})
}

// ----------------------------------------------------
// Availability (GET /api/availability?check_in&check_out&room_type_id)
// ----------------------------------------------------

func (ctrl *RoomController) GetAvailability(c *gin.Context) {
	checkIn, err := utils.ParseDate(c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_in: "+err.Error())
		return
	}
	checkOut, err := utils.ParseDate(c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_out: "+err.Error())
		return
	}
	typeID, err := parseOptionalUint(c.Query("room_type_id"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room_type_id")
		return
	}

	rooms, err := ctrl.Availability.Search(c.Request.Context(), billing.Stay{CheckIn: checkIn, CheckOut: checkOut}, typeID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

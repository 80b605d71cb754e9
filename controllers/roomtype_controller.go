package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-folio/models"
	"hotel-folio/services"
	"hotel-folio/utils"
)

type RoomTypeController struct {
	Svc *services.RoomTypeService
}

func NewRoomTypeController(svc *services.RoomTypeService) *RoomTypeController {
	return &RoomTypeController{Svc: svc}
}

func (ctrl *RoomTypeController) GetRoomTypes(c *gin.Context) {
	types, err := ctrl.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func (ctrl *RoomTypeController) GetRoomType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	rt, err := ctrl.Svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctrl *RoomTypeController) CreateRoomType(c *gin.Context) {
	var in services.RoomTypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	rt := models.RoomType{
		NightlyBasePrice:         in.NightlyBasePrice,
		ReservationFeePercentage: in.ReservationFeePercentage,
	}
	if in.TypeName != nil {
		rt.TypeName = *in.TypeName
	}
	if in.Description != nil {
		rt.Description = *in.Description
	}
	if in.MaxGuests != nil {
		rt.MaxGuests = *in.MaxGuests
	}

	if err := ctrl.Svc.Create(c.Request.Context(), &rt); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}

func (ctrl *RoomTypeController) UpdateRoomType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in services.RoomTypeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	rt, err := ctrl.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

func (ctrl *RoomTypeController) DeleteRoomType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ctrl.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room type deleted"})
}

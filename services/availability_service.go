// services/availability_service.go
package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"hotel-folio/billing"
	"hotel-folio/models"
)

var blockingStatuses = []billing.LifecycleStatus{billing.StatusReserved, billing.StatusCheckedIn}

type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// Search lists the rooms free for the whole stay, in id order.
func (s *AvailabilityService) Search(ctx context.Context, stay billing.Stay, roomTypeID *uint) ([]models.Room, error) {
	if err := stay.Validate(); err != nil {
		return nil, err
	}
	return freeRooms(s.DB.WithContext(ctx).Preload("RoomType"), stay, roomTypeID)
}

// candidates loads the rooms that could take the stay and the bookings that
// could hold them. It runs on whatever handle it is given, so booking creation
// can call it inside its transaction with the room rows locked.
func candidates(db *gorm.DB, stay billing.Stay, roomTypeID *uint) ([]models.Room, []billing.Booking, error) {
	q := db.Where("status <> ?", billing.RoomOutOfOrder).Order("id ASC")
	if roomTypeID != nil {
		q = q.Where("room_type_id = ?", *roomTypeID)
	}
	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil, nil, nil
	}

	ids := make([]uint, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}

	// Only bookings that can overlap are loaded; the billing filter decides.
	var bookings []models.Booking
	if err := db.Session(&gorm.Session{NewDB: true}).
		Where("room_id IN ? AND status IN ?", ids, blockingStatuses).
		Where("check_in < ? AND check_out > ?", stay.CheckOut, stay.CheckIn).
		Find(&bookings).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	held := make([]billing.Booking, len(bookings))
	for i, b := range bookings {
		held[i] = b.ToBilling()
	}
	return rooms, held, nil
}

func plainRooms(rooms []models.Room) []billing.Room {
	out := make([]billing.Room, len(rooms))
	for i, r := range rooms {
		out[i] = r.ToBilling()
	}
	return out
}

func freeRooms(db *gorm.DB, stay billing.Stay, roomTypeID *uint) ([]models.Room, error) {
	rooms, held, err := candidates(db, stay, roomTypeID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}
	free := billing.AvailableRooms(plainRooms(rooms), held, stay, roomTypeID)
	out := make([]models.Room, 0, len(free))
	for _, r := range free {
		out = append(out, byID[r.ID])
	}
	return out, nil
}

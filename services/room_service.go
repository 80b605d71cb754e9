package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"hotel-folio/billing"
	"hotel-folio/models"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// List returns rooms in id order, optionally restricted to one type.
func (s *RoomService) List(ctx context.Context, roomTypeID *uint) ([]models.Room, error) {
	q := s.DB.WithContext(ctx).Preload("RoomType").Order("id ASC")
	if roomTypeID != nil {
		q = q.Where("room_type_id = ?", *roomTypeID)
	}
	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).Preload("RoomType").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to load room %d: %w", id, err)
	}
	return &room, nil
}

func (s *RoomService) Create(ctx context.Context, room *models.Room) error {
	room.ID = 0
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		return fmt.Errorf("%w: room_number is required", ErrValidation)
	}
	if room.Status == "" {
		room.Status = billing.RoomVacantReady
	}
	if !room.Status.Valid() {
		return fmt.Errorf("%w: unknown room status %q", ErrValidation, room.Status)
	}

	db := s.DB.WithContext(ctx)
	var rt models.RoomType
	if err := db.First(&rt, room.RoomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomTypeNotFound
		}
		return fmt.Errorf("failed to check room type %d: %w", room.RoomTypeID, err)
	}

	if err := db.Omit("RoomType").Create(room).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateRoomNumber, room.RoomNumber)
		}
		return fmt.Errorf("failed to create room: %w", err)
	}
	room.RoomType = rt
	return nil
}

// UpdateStatus sets the operational status (housekeeping, maintenance).
func (s *RoomService) UpdateStatus(ctx context.Context, id uint, status billing.RoomStatus) (*models.Room, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown room status %q", ErrValidation, status)
	}
	result := s.DB.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update room %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrRoomNotFound
	}
	return s.Get(ctx, id)
}

// Delete archives a room that holds no Reserved or CheckedIn booking.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	db := s.DB.WithContext(ctx)

	var active int64
	if err := db.Model(&models.Booking{}).
		Where("room_id = ? AND status IN ?", id, blockingStatuses).
		Count(&active).Error; err != nil {
		return fmt.Errorf("failed to check bookings for room %d: %w", id, err)
	}
	if active > 0 {
		return ErrRoomInUse
	}

	result := db.Delete(&models.Room{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

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

// RateCache is a read-through copy of the rate table. Implementations swallow
// their own errors; a miss always falls back to the database.
type RateCache interface {
	GetRoomTypes(ctx context.Context) ([]models.RoomType, bool)
	SetRoomTypes(ctx context.Context, types []models.RoomType)
	Invalidate(ctx context.Context)
}

// RoomTypeInput carries a partial update; nil fields are left unchanged.
type RoomTypeInput struct {
	TypeName                 *string  `json:"type_name"`
	Description              *string  `json:"description"`
	MaxGuests                *uint    `json:"max_guests"`
	NightlyBasePrice         *float64 `json:"nightly_base_price"`
	ReservationFeePercentage *float64 `json:"reservation_fee_percentage"`
}

type RoomTypeService struct {
	DB    *gorm.DB
	Cache RateCache
}

func NewRoomTypeService(db *gorm.DB, cache RateCache) *RoomTypeService {
	return &RoomTypeService{DB: db, Cache: cache}
}

func validateRoomType(rt *models.RoomType) error {
	rt.TypeName = strings.TrimSpace(rt.TypeName)
	if rt.TypeName == "" {
		return fmt.Errorf("%w: type_name is required", ErrValidation)
	}
	if p := rt.NightlyBasePrice; p != nil && (!billing.Finite(*p) || *p < 0) {
		return fmt.Errorf("%w: nightly_base_price must be a non-negative amount", ErrValidation)
	}
	if p := rt.ReservationFeePercentage; p != nil && (!billing.Finite(*p) || *p < 0 || *p > 100) {
		return fmt.Errorf("%w: reservation_fee_percentage must be between 0 and 100", ErrValidation)
	}
	return nil
}

func (s *RoomTypeService) invalidate(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
}

// List returns the whole rate table ordered by id.
func (s *RoomTypeService) List(ctx context.Context) ([]models.RoomType, error) {
	if s.Cache != nil {
		if types, ok := s.Cache.GetRoomTypes(ctx); ok {
			return types, nil
		}
	}

	var types []models.RoomType
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}
	if s.Cache != nil {
		s.Cache.SetRoomTypes(ctx, types)
	}
	return types, nil
}

// Get looks the type up through List so quotes share the cached rate table.
func (s *RoomTypeService) Get(ctx context.Context, id uint) (*models.RoomType, error) {
	types, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range types {
		if types[i].ID == id {
			return &types[i], nil
		}
	}
	return nil, ErrRoomTypeNotFound
}

func (s *RoomTypeService) Create(ctx context.Context, rt *models.RoomType) error {
	if err := validateRoomType(rt); err != nil {
		return err
	}
	rt.ID = 0
	if err := s.DB.WithContext(ctx).Create(rt).Error; err != nil {
		return fmt.Errorf("failed to create room type: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *RoomTypeService) Update(ctx context.Context, id uint, in RoomTypeInput) (*models.RoomType, error) {
	var rt models.RoomType
	if err := s.DB.WithContext(ctx).First(&rt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("failed to load room type %d: %w", id, err)
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
	if in.NightlyBasePrice != nil {
		rt.NightlyBasePrice = in.NightlyBasePrice
	}
	if in.ReservationFeePercentage != nil {
		rt.ReservationFeePercentage = in.ReservationFeePercentage
	}
	if err := validateRoomType(&rt); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Save(&rt).Error; err != nil {
		return nil, fmt.Errorf("failed to update room type %d: %w", id, err)
	}
	s.invalidate(ctx)
	return &rt, nil
}

// Delete archives a room type that no room refers to any more.
func (s *RoomTypeService) Delete(ctx context.Context, id uint) error {
	db := s.DB.WithContext(ctx)

	var rooms int64
	if err := db.Model(&models.Room{}).Where("room_type_id = ?", id).Count(&rooms).Error; err != nil {
		return fmt.Errorf("failed to count rooms of type %d: %w", id, err)
	}
	if rooms > 0 {
		return ErrRoomTypeInUse
	}

	result := db.Delete(&models.RoomType{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete room type %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRoomTypeNotFound
	}
	s.invalidate(ctx)
	return nil
}

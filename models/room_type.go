package models

import (
	"time"

	"gorm.io/gorm"

	"hotel-folio/billing"
)

// RoomType is one row of the rate table. Price and fee percentage are
// nullable: a type saved without them still lists, but bills at zero.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TypeName    string `gorm:"size:100;not null" json:"type_name"`
	Description string `gorm:"type:text" json:"description"`
	MaxGuests   uint   `json:"max_guests"`

	NightlyBasePrice         *float64 `gorm:"column:nightly_base_price;type:decimal(12,2)" json:"nightly_base_price"`
	ReservationFeePercentage *float64 `gorm:"column:reservation_fee_percentage;type:decimal(5,2)" json:"reservation_fee_percentage"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (rt RoomType) ToBilling() billing.RoomType {
	return billing.RoomType{
		ID:                       rt.ID,
		Name:                     rt.TypeName,
		NightlyBasePrice:         rt.NightlyBasePrice,
		ReservationFeePercentage: rt.ReservationFeePercentage,
	}
}

package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-folio/billing"
)

// GuestInfo is stored as a JSON column on the booking.
type GuestInfo struct {
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
}

// Booking is never hard-deleted; DeletedAt marks it archived.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string                        `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	RoomID        uint                          `gorm:"column:room_id;not null;index" json:"room_id"`
	CheckIn       time.Time                     `gorm:"column:check_in;not null;index" json:"check_in"`
	CheckOut      time.Time                     `gorm:"column:check_out;not null;index" json:"check_out"`
	GuestInfo     datatypes.JSONType[GuestInfo] `gorm:"column:guest_info" json:"guest_info"`
	AmountPaid    float64                       `gorm:"column:amount_paid;type:decimal(12,2);not null;default:0" json:"amount_paid"`
	Status        billing.LifecycleStatus       `gorm:"column:status;type:varchar(32);not null;index" json:"status"`

	CheckedInAt  *time.Time `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at" json:"checked_out_at,omitempty"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

func (b Booking) Stay() billing.Stay {
	return billing.Stay{CheckIn: b.CheckIn, CheckOut: b.CheckOut}
}

func (b Booking) ToBilling() billing.Booking {
	return billing.Booking{
		ID:         b.ID,
		RoomID:     b.RoomID,
		Stay:       b.Stay(),
		AmountPaid: b.AmountPaid,
		Status:     b.Status,
	}
}

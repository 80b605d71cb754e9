package models

import (
	"time"

	"gorm.io/gorm"

	"hotel-folio/billing"
)

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomTypeID  uint               `gorm:"column:room_type_id;not null;index" json:"room_type_id"`
	RoomNumber  string             `gorm:"column:room_number;uniqueIndex;type:varchar(50);not null" json:"room_number"`
	Floor       string             `gorm:"type:varchar(10)" json:"floor"`
	Status      billing.RoomStatus `gorm:"type:varchar(32);not null;default:'Vacant-Ready'" json:"status"`
	Description string             `gorm:"type:text" json:"description"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}

func (r Room) ToBilling() billing.Room {
	return billing.Room{
		ID:         r.ID,
		RoomTypeID: r.RoomTypeID,
		RoomNumber: r.RoomNumber,
		Status:     r.Status,
	}
}

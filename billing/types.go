// Package billing holds the room-night pricing, payment reconciliation and
// availability rules shared by receipts, reports and booking creation.
//
// Everything here is a pure function over value types. Invalid numbers never
// produce an error: derived amounts degrade to 0 so a single bad rate cannot
// blank a whole report.
package billing

import (
	"errors"
	"time"
)

var (
	ErrInvalidStay     = errors.New("check-out must be after check-in")
	ErrRoomUnavailable = errors.New("no room available for the requested stay")
)

// RoomType is the rate table entry for a class of rooms. A nil price or
// percentage means the value is missing.
type RoomType struct {
	ID                       uint     `json:"id"`
	Name                     string   `json:"name"`
	NightlyBasePrice         *float64 `json:"nightly_base_price"`
	ReservationFeePercentage *float64 `json:"reservation_fee_percentage"`
}

type RoomStatus string

const (
	RoomVacantReady RoomStatus = "Vacant-Ready"
	RoomVacantDirty RoomStatus = "Vacant-Dirty"
	RoomOccupied    RoomStatus = "Occupied"
	RoomReserved    RoomStatus = "Reserved"
	RoomOutOfOrder  RoomStatus = "Out-of-Order"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomVacantReady, RoomVacantDirty, RoomOccupied, RoomReserved, RoomOutOfOrder:
		return true
	}
	return false
}

type Room struct {
	ID         uint       `json:"id"`
	RoomTypeID uint       `json:"room_type_id"`
	RoomNumber string     `json:"room_number"`
	Status     RoomStatus `json:"status"`
}

type LifecycleStatus string

const (
	StatusReserved   LifecycleStatus = "Reserved"
	StatusCheckedIn  LifecycleStatus = "CheckedIn"
	StatusCheckedOut LifecycleStatus = "CheckedOut"
	StatusCancelled  LifecycleStatus = "Cancelled"
)

// Blocks reports whether a booking in this state holds its room.
func (s LifecycleStatus) Blocks() bool {
	return s == StatusReserved || s == StatusCheckedIn
}

type Booking struct {
	ID         uint            `json:"id"`
	RoomID     uint            `json:"room_id"`
	Stay       Stay            `json:"stay"`
	AmountPaid float64         `json:"amount_paid"`
	Status     LifecycleStatus `json:"status"`
}

// Stay is the half-open interval [CheckIn, CheckOut).
type Stay struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

func (s Stay) Validate() error {
	if !s.CheckOut.After(s.CheckIn) {
		return ErrInvalidStay
	}
	return nil
}

// Contains reports whether d falls on a charged night of the stay.
func (s Stay) Contains(d time.Time) bool {
	return !d.Before(s.CheckIn) && d.Before(s.CheckOut)
}

// Overlaps reports whether two stays share any instant. A stay ending the
// day another begins does not overlap it.
func (s Stay) Overlaps(o Stay) bool {
	return s.CheckIn.Before(o.CheckOut) && o.CheckIn.Before(s.CheckOut)
}

type Charges struct {
	BasePriceSubtotal float64 `json:"base_price_subtotal"`
	ReservationFee    float64 `json:"reservation_fee"`
	TotalDue          float64 `json:"total_due"`
}

type Payment struct {
	NetPaid          float64 `json:"net_paid"`
	RemainingBalance float64 `json:"remaining_balance"`
	Change           float64 `json:"change"`
}

// ChargeBreakdown is derived on demand and never persisted.
type ChargeBreakdown struct {
	Nights            int     `json:"nights"`
	BasePriceSubtotal float64 `json:"base_price_subtotal"`
	ReservationFee    float64 `json:"reservation_fee"`
	TotalDue          float64 `json:"total_due"`
	AmountPaid        float64 `json:"amount_paid"`
	NetPaid           float64 `json:"net_paid"`
	RemainingBalance  float64 `json:"remaining_balance"`
	Change            float64 `json:"change"`
}

package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hotel-folio/billing"
	"hotel-folio/utils"
)

// QuoteInput prices a stay either at a stored room type or at an inline rate.
// RoomTypeID wins when both are given.
type QuoteInput struct {
	RoomTypeID               *uint
	NightlyBasePrice         *float64
	ReservationFeePercentage *float64
	Stay                     billing.Stay
	AmountPaid               float64
}

type Quote struct {
	RoomType  billing.RoomType        `json:"room_type"`
	Stay      billing.Stay            `json:"stay"`
	Breakdown billing.ChargeBreakdown `json:"breakdown"`
	Warnings  []string                `json:"warnings,omitempty"`
}

type QuoteService struct {
	RoomTypes *RoomTypeService
}

func NewQuoteService(roomTypes *RoomTypeService) *QuoteService {
	return &QuoteService{RoomTypes: roomTypes}
}

// Quote never rejects a bad stay or rate: it prices what it can and reports
// the rest as warnings.
func (s *QuoteService) Quote(ctx context.Context, in QuoteInput) (*Quote, error) {
	rt := billing.RoomType{
		NightlyBasePrice:         in.NightlyBasePrice,
		ReservationFeePercentage: in.ReservationFeePercentage,
	}
	if in.RoomTypeID != nil {
		stored, err := s.RoomTypes.Get(ctx, *in.RoomTypeID)
		if err != nil {
			return nil, err
		}
		rt = stored.ToBilling()
	}

	var warnings []string
	if err := in.Stay.Validate(); err != nil {
		warnings = append(warnings, "check-out is not after check-in; billed as one night")
	}
	if !usable(rt.NightlyBasePrice) || !usable(rt.ReservationFeePercentage) {
		warnings = append(warnings, "rate is missing or invalid; charges are zero")
	}
	if !billing.Finite(in.AmountPaid) || in.AmountPaid < 0 {
		warnings = append(warnings, fmt.Sprintf("amount paid %v ignored", in.AmountPaid))
	}
	if len(warnings) > 0 {
		utils.GetLogger().Warn("quote degraded", zap.Strings("warnings", warnings))
	}

	return &Quote{
		RoomType:  rt,
		Stay:      in.Stay,
		Breakdown: billing.Breakdown(rt, in.Stay, in.AmountPaid),
		Warnings:  warnings,
	}, nil
}

func usable(v *float64) bool {
	return v != nil && billing.Finite(*v)
}

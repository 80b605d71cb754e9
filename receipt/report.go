package receipt

import (
	"time"

	"github.com/shopspring/decimal"

	"hotel-folio/billing"
)

// ReportEntry pairs a booking with the rate it is billed at.
type ReportEntry struct {
	Booking  billing.Booking
	RoomType billing.RoomType
}

type MonthlySummary struct {
	Month              string  `json:"month"`
	Bookings           int     `json:"bookings"`
	RoomNights         int     `json:"room_nights"`
	BasePriceSubtotal  float64 `json:"base_price_subtotal"`
	ReservationFees    float64 `json:"reservation_fees"`
	TotalDue           float64 `json:"total_due"`
	Collected          float64 `json:"collected"`
	OutstandingBalance float64 `json:"outstanding_balance"`
}

// MonthStart truncates t to the first instant of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthlyRevenue sums the breakdowns of every non-cancelled booking whose
// check-in falls in the month containing month.
func MonthlyRevenue(entries []ReportEntry, month time.Time) MonthlySummary {
	start := MonthStart(month)
	period := billing.Stay{CheckIn: start, CheckOut: start.AddDate(0, 1, 0)}

	var base, fees, total, collected, outstanding decimal.Decimal
	sum := MonthlySummary{Month: start.Format("2006-01")}
	for _, e := range entries {
		if e.Booking.Status == billing.StatusCancelled {
			continue
		}
		if !period.Contains(e.Booking.Stay.CheckIn) {
			continue
		}
		bd := billing.Breakdown(e.RoomType, e.Booking.Stay, e.Booking.AmountPaid)

		sum.Bookings++
		sum.RoomNights += bd.Nights
		base = base.Add(decimal.NewFromFloat(bd.BasePriceSubtotal))
		fees = fees.Add(decimal.NewFromFloat(bd.ReservationFee))
		total = total.Add(decimal.NewFromFloat(bd.TotalDue))
		collected = collected.Add(decimal.NewFromFloat(bd.AmountPaid).Sub(decimal.NewFromFloat(bd.Change)))
		outstanding = outstanding.Add(decimal.NewFromFloat(bd.RemainingBalance))
	}

	sum.BasePriceSubtotal = base.Round(2).InexactFloat64()
	sum.ReservationFees = fees.Round(2).InexactFloat64()
	sum.TotalDue = total.Round(2).InexactFloat64()
	sum.Collected = collected.Round(2).InexactFloat64()
	sum.OutstandingBalance = outstanding.Round(2).InexactFloat64()
	return sum
}

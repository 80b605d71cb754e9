package billing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

var hundred = decimal.NewFromInt(100)

// Nights returns the number of billable nights: partial days round up and
// every stay bills at least one night, including same-day and inverted stays.
func Nights(s Stay) int {
	d := s.CheckOut.Sub(s.CheckIn)
	if d <= 0 {
		return 1
	}
	n := int(math.Ceil(float64(d) / float64(day)))
	if n < 1 {
		return 1
	}
	return n
}

// rate extracts usable price and percentage, ok is false when either is
// missing or not a finite number.
func rate(rt RoomType) (price, pct decimal.Decimal, ok bool) {
	if rt.NightlyBasePrice == nil || rt.ReservationFeePercentage == nil {
		return decimal.Zero, decimal.Zero, false
	}
	if !Finite(*rt.NightlyBasePrice) || !Finite(*rt.ReservationFeePercentage) {
		return decimal.Zero, decimal.Zero, false
	}
	return decimal.NewFromFloat(*rt.NightlyBasePrice), decimal.NewFromFloat(*rt.ReservationFeePercentage), true
}

// ComputeCharges prices a stay at the given rate. The reservation fee is a
// percentage of one night's base price, charged once per booking.
func ComputeCharges(rt RoomType, s Stay) Charges {
	price, pct, ok := rate(rt)
	if !ok {
		return Charges{}
	}
	fee := price.Mul(pct).Div(hundred).Round(2)
	base := price.Mul(decimal.NewFromInt(int64(Nights(s)))).Round(2)
	return Charges{
		BasePriceSubtotal: money(base),
		ReservationFee:    money(fee),
		TotalDue:          money(base.Add(fee)),
	}
}

// Reconcile splits a payment against the charges. The two outcomes are
// exclusive: either the bill is covered and only change may be positive, or
// it is not and only the remaining balance may be positive.
//
// While the bill is not covered the reservation fee stays on the balance, so
// RemainingBalance is TotalDue minus NetPaid.
func Reconcile(c Charges, amountPaid float64) Payment {
	paid := dec(amountPaid)
	if paid.IsNegative() {
		paid = decimal.Zero
	}
	base := dec(c.BasePriceSubtotal)
	fee := dec(c.ReservationFee)
	total := dec(c.TotalDue)

	net := decimal.Max(decimal.Zero, paid.Sub(fee))
	if net.GreaterThan(base) {
		net = base
	}

	if paid.GreaterThanOrEqual(total) {
		return Payment{
			NetPaid: money(net),
			Change:  money(paid.Sub(total)),
		}
	}
	return Payment{
		NetPaid:          money(net),
		RemainingBalance: money(total.Sub(net)),
	}
}

// Breakdown derives the full folio for a stay at a rate with a payment.
func Breakdown(rt RoomType, s Stay, amountPaid float64) ChargeBreakdown {
	c := ComputeCharges(rt, s)
	p := Reconcile(c, amountPaid)
	paid := amountPaid
	if !Finite(paid) || paid < 0 {
		paid = 0
	}
	return ChargeBreakdown{
		Nights:            Nights(s),
		BasePriceSubtotal: c.BasePriceSubtotal,
		ReservationFee:    c.ReservationFee,
		TotalDue:          c.TotalDue,
		AmountPaid:        Round2(paid),
		NetPaid:           p.NetPaid,
		RemainingBalance:  p.RemainingBalance,
		Change:            p.Change,
	}
}

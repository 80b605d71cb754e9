// Package receipt turns charge breakdowns into guest receipts and revenue
// summaries. All amounts come from billing.Breakdown; nothing here does its
// own pricing arithmetic beyond summing.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"hotel-folio/billing"
)

const dateLayout = "2006-01-02"

type Receipt struct {
	ReferenceCode string
	GuestName     string
	RoomNumber    string
	RoomType      string
	Status        billing.LifecycleStatus
	Stay          billing.Stay
	Breakdown     billing.ChargeBreakdown
	IssuedAt      time.Time
}

// Render produces the plain-text receipt printed at the front desk.
func Render(r Receipt) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%-20s %s\n", label, value)
	}

	b.WriteString("OFFICIAL RECEIPT\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	line("Reference:", r.ReferenceCode)
	if r.GuestName != "" {
		line("Guest:", r.GuestName)
	}
	line("Room:", strings.TrimSpace(r.RoomNumber+" "+r.RoomType))
	line("Status:", string(r.Status))
	line("Check-in:", r.Stay.CheckIn.Format(dateLayout))
	line("Check-out:", r.Stay.CheckOut.Format(dateLayout))
	line("Nights:", fmt.Sprintf("%d", r.Breakdown.Nights))
	b.WriteString(strings.Repeat("-", 40) + "\n")
	line("Room charges:", FormatPeso(r.Breakdown.BasePriceSubtotal))
	line("Reservation fee:", FormatPeso(r.Breakdown.ReservationFee))
	line("Total due:", FormatPeso(r.Breakdown.TotalDue))
	line("Amount paid:", FormatPeso(r.Breakdown.AmountPaid))
	line("Net paid:", FormatPeso(r.Breakdown.NetPaid))
	line("Balance:", FormatPeso(r.Breakdown.RemainingBalance))
	line("Change:", FormatPeso(r.Breakdown.Change))
	if !r.IssuedAt.IsZero() {
		b.WriteString(strings.Repeat("-", 40) + "\n")
		line("Issued:", r.IssuedAt.Format(time.RFC3339))
	}
	return b.String()
}

package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRooms() []Room {
	return []Room{
		{ID: 1, RoomTypeID: 1, RoomNumber: "101"},
		{ID: 2, RoomTypeID: 1, RoomNumber: "102"},
		{ID: 3, RoomTypeID: 2, RoomNumber: "201"},
		{ID: 4, RoomTypeID: 1, RoomNumber: "103"},
	}
}

func roomIDs(rooms []Room) []uint {
	ids := make([]uint, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestAvailableRooms_CheckoutDayIsFree(t *testing.T) {
	bookings := []Booking{
		{RoomID: 1, Stay: stay(date(2026, 1, 1), date(2026, 1, 5)), Status: StatusReserved},
	}

	free := AvailableRooms(sampleRooms(), bookings, stay(date(2026, 1, 5), date(2026, 1, 8)), nil)
	assert.Equal(t, []uint{1, 2, 3, 4}, roomIDs(free))

	free = AvailableRooms(sampleRooms(), bookings, stay(date(2026, 1, 4), date(2026, 1, 6)), nil)
	assert.Equal(t, []uint{2, 3, 4}, roomIDs(free))
}

func TestAvailableRooms_CheckInDayOfExistingStayBlocks(t *testing.T) {
	bookings := []Booking{
		{RoomID: 2, Stay: stay(date(2026, 1, 5), date(2026, 1, 7)), Status: StatusCheckedIn},
	}
	free := AvailableRooms(sampleRooms(), bookings, stay(date(2026, 1, 3), date(2026, 1, 6)), nil)
	assert.Equal(t, []uint{1, 3, 4}, roomIDs(free))

	free = AvailableRooms(sampleRooms(), bookings, stay(date(2026, 1, 3), date(2026, 1, 5)), nil)
	assert.Equal(t, []uint{1, 2, 3, 4}, roomIDs(free))
}

func TestAvailableRooms_FinishedBookingsNeverBlock(t *testing.T) {
	s := stay(date(2026, 2, 1), date(2026, 2, 3))
	bookings := []Booking{
		{RoomID: 1, Stay: s, Status: StatusCancelled},
		{RoomID: 2, Stay: s, Status: StatusCheckedOut},
	}
	free := AvailableRooms(sampleRooms(), bookings, s, nil)
	assert.Equal(t, []uint{1, 2, 3, 4}, roomIDs(free))
}

func TestAvailableRooms_FiltersByTypeKeepingOrder(t *testing.T) {
	typeID := uint(1)
	bookings := []Booking{
		{RoomID: 2, Stay: stay(date(2026, 2, 1), date(2026, 2, 3)), Status: StatusReserved},
	}
	free := AvailableRooms(sampleRooms(), bookings, stay(date(2026, 2, 2), date(2026, 2, 4)), &typeID)
	assert.Equal(t, []uint{1, 4}, roomIDs(free))
}

func TestAvailableRooms_Deterministic(t *testing.T) {
	s := stay(date(2026, 2, 2), date(2026, 2, 4))
	first := AvailableRooms(sampleRooms(), nil, s, nil)
	second := AvailableRooms(sampleRooms(), nil, s, nil)
	assert.Equal(t, first, second)
}

func TestFirstAvailable(t *testing.T) {
	typeID := uint(1)
	s := stay(date(2026, 3, 1), date(2026, 3, 2))
	bookings := []Booking{
		{RoomID: 1, Stay: s, Status: StatusReserved},
	}

	room, err := FirstAvailable(sampleRooms(), bookings, s, &typeID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), room.ID)

	bookings = append(bookings,
		Booking{RoomID: 2, Stay: s, Status: StatusReserved},
		Booking{RoomID: 4, Stay: s, Status: StatusCheckedIn},
	)
	_, err = FirstAvailable(sampleRooms(), bookings, s, &typeID)
	assert.ErrorIs(t, err, ErrRoomUnavailable)
}

func TestStay_ContainsIsHalfOpen(t *testing.T) {
	s := stay(date(2026, 1, 1), date(2026, 1, 5))
	assert.True(t, s.Contains(date(2026, 1, 1)))
	assert.True(t, s.Contains(date(2026, 1, 4).Add(23*time.Hour)))
	assert.False(t, s.Contains(date(2026, 1, 5)))
	assert.False(t, s.Contains(date(2025, 12, 31)))
}

func TestStay_Validate(t *testing.T) {
	assert.NoError(t, stay(date(2026, 1, 1), date(2026, 1, 2)).Validate())
	assert.ErrorIs(t, stay(date(2026, 1, 1), date(2026, 1, 1)).Validate(), ErrInvalidStay)
	assert.ErrorIs(t, stay(date(2026, 1, 2), date(2026, 1, 1)).Validate(), ErrInvalidStay)
}

package billing

// AvailableRooms returns, in input order, the rooms of the requested type
// (any type when roomTypeID is nil) that no Reserved or CheckedIn booking
// holds during the requested stay.
func AvailableRooms(rooms []Room, bookings []Booking, requested Stay, roomTypeID *uint) []Room {
	held := make(map[uint]bool)
	for _, b := range bookings {
		if !b.Status.Blocks() {
			continue
		}
		if b.Stay.Overlaps(requested) {
			held[b.RoomID] = true
		}
	}

	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		if roomTypeID != nil && r.RoomTypeID != *roomTypeID {
			continue
		}
		if held[r.ID] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FirstAvailable picks the first free room in list order.
func FirstAvailable(rooms []Room, bookings []Booking, requested Stay, roomTypeID *uint) (Room, error) {
	free := AvailableRooms(rooms, bookings, requested, roomTypeID)
	if len(free) == 0 {
		return Room{}, ErrRoomUnavailable
	}
	return free[0], nil
}

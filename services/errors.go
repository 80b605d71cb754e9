package services

import (
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrRoomTypeNotFound    = errors.New("room type not found")
	ErrRoomTypeInUse       = errors.New("room type still has rooms")
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomInUse           = errors.New("room has active bookings")
	ErrDuplicateRoomNumber = errors.New("room number already exists")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrInvalidTransition   = errors.New("booking status does not allow this action")
)

// isDuplicateKey recognises unique-index violations from MySQL, Postgres and SQLite.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

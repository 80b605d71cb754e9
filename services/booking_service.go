// services/booking_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-folio/billing"
	"hotel-folio/events"
	"hotel-folio/models"
	"hotel-folio/receipt"
	"hotel-folio/utils"
)

// EventPublisher is satisfied by *events.Publisher. A nil publisher turns
// event emission off.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

type BookingService struct {
	DB     *gorm.DB
	Events EventPublisher
	Now    func() time.Time
}

func NewBookingService(db *gorm.DB, pub EventPublisher) *BookingService {
	return &BookingService{DB: db, Events: pub, Now: time.Now}
}

type CreateBookingInput struct {
	RoomTypeID *uint
	RoomID     *uint
	Stay       billing.Stay
	Guest      models.GuestInfo
	AmountPaid float64
}

func (s *BookingService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func newReferenceCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BK-" + strings.ToUpper(raw[:8])
}

// withRates preloads room and room type even when either has been archived,
// since an old booking is still billed at its original rate.
func withRates(db *gorm.DB) *gorm.DB {
	unscoped := func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() }
	return db.Preload("Room", unscoped).Preload("Room.RoomType", unscoped)
}

// Create reserves a room for the stay. With RoomID set that exact room is
// booked, otherwise the first free room of RoomTypeID in id order.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if err := in.Stay.Validate(); err != nil {
		return nil, err
	}
	if in.RoomID == nil && in.RoomTypeID == nil {
		return nil, fmt.Errorf("%w: room_id or room_type_id is required", ErrValidation)
	}
	if !billing.Finite(in.AmountPaid) || in.AmountPaid < 0 {
		return nil, fmt.Errorf("%w: amount_paid must be a non-negative amount", ErrValidation)
	}
	in.Guest.FullName = strings.TrimSpace(in.Guest.FullName)
	if in.Guest.FullName == "" {
		return nil, fmt.Errorf("%w: guest full_name is required", ErrValidation)
	}

	booking := models.Booking{
		ReferenceCode: newReferenceCode(),
		CheckIn:       in.Stay.CheckIn.UTC(),
		CheckOut:      in.Stay.CheckOut.UTC(),
		AmountPaid:    billing.Round2(in.AmountPaid),
		Status:        billing.StatusReserved,
		GuestInfo:     datatypes.NewJSONType(in.Guest),
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked := tx.Clauses(clause.Locking{Strength: "UPDATE"})

		if in.RoomID != nil {
			var room models.Room
			if err := tx.First(&room, *in.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomNotFound
				}
				return fmt.Errorf("failed to load room %d: %w", *in.RoomID, err)
			}
			if in.RoomTypeID != nil && room.RoomTypeID != *in.RoomTypeID {
				return fmt.Errorf("%w: room %s is not of room type %d", ErrValidation, room.RoomNumber, *in.RoomTypeID)
			}
			locked = locked.Where("id = ?", room.ID)
		} else {
			var rt models.RoomType
			if err := tx.First(&rt, *in.RoomTypeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomTypeNotFound
				}
				return fmt.Errorf("failed to load room type %d: %w", *in.RoomTypeID, err)
			}
		}

		rooms, held, err := candidates(locked, in.Stay, in.RoomTypeID)
		if err != nil {
			return err
		}
		room, err := billing.FirstAvailable(plainRooms(rooms), held, in.Stay, in.RoomTypeID)
		if err != nil {
			return err
		}

		booking.RoomID = room.ID
		if err := tx.Omit(clause.Associations).Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		if room.Status == billing.RoomVacantReady {
			if err := tx.Model(&models.Room{}).Where("id = ?", room.ID).
				Update("status", billing.RoomReserved).Error; err != nil {
				return fmt.Errorf("failed to reserve room %d: %w", room.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.Get(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("booking reserved",
		zap.Uint("booking_id", created.ID),
		zap.String("reference_code", created.ReferenceCode),
		zap.String("room_number", created.Room.RoomNumber),
	)
	s.publish(ctx, events.BookingReserved, created)
	return created, nil
}

func (s *BookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := withRates(s.DB.WithContext(ctx)).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", id, err)
	}
	return &b, nil
}

// List returns active (not archived) bookings, newest first, optionally
// filtered by lifecycle status.
func (s *BookingService) List(ctx context.Context, status billing.LifecycleStatus) ([]models.Booking, error) {
	q := withRates(s.DB.WithContext(ctx)).Order("id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []models.Booking
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return out, nil
}

func (s *BookingService) CheckIn(ctx context.Context, id uint) (*models.Booking, error) {
	return s.transition(ctx, id, billing.StatusCheckedIn)
}

func (s *BookingService) CheckOut(ctx context.Context, id uint) (*models.Booking, error) {
	return s.transition(ctx, id, billing.StatusCheckedOut)
}

func (s *BookingService) Cancel(ctx context.Context, id uint) (*models.Booking, error) {
	return s.transition(ctx, id, billing.StatusCancelled)
}

func canMove(from, to billing.LifecycleStatus) bool {
	switch to {
	case billing.StatusCheckedIn:
		return from == billing.StatusReserved
	case billing.StatusCheckedOut:
		return from == billing.StatusCheckedIn
	case billing.StatusCancelled:
		return from.Blocks()
	}
	return false
}

func (s *BookingService) transition(ctx context.Context, id uint, to billing.LifecycleStatus) (*models.Booking, error) {
	now := s.now()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to load booking %d: %w", id, err)
		}
		if !canMove(b.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
		}

		updates := map[string]interface{}{"status": to}
		switch to {
		case billing.StatusCheckedIn:
			updates["checked_in_at"] = now
		case billing.StatusCheckedOut:
			updates["checked_out_at"] = now
		case billing.StatusCancelled:
			updates["cancelled_at"] = now
		}
		if err := tx.Model(&models.Booking{}).Where("id = ?", b.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update booking %d: %w", id, err)
		}

		roomStatus, err := s.nextRoomStatus(tx, b, to)
		if err != nil {
			return err
		}
		if roomStatus != "" {
			if err := tx.Unscoped().Model(&models.Room{}).Where("id = ?", b.RoomID).
				Update("status", roomStatus).Error; err != nil {
				return fmt.Errorf("failed to update room %d: %w", b.RoomID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("booking status changed",
		zap.Uint("booking_id", b.ID),
		zap.String("status", string(b.Status)),
	)
	switch to {
	case billing.StatusCheckedIn:
		s.publish(ctx, events.BookingCheckedIn, b)
	case billing.StatusCheckedOut:
		s.publish(ctx, events.BookingCheckedOut, b)
	case billing.StatusCancelled:
		s.publish(ctx, events.BookingCancelled, b)
	}
	return b, nil
}

// nextRoomStatus returns "" when the room keeps its current status.
func (s *BookingService) nextRoomStatus(tx *gorm.DB, b models.Booking, to billing.LifecycleStatus) (billing.RoomStatus, error) {
	var room models.Room
	if err := tx.Unscoped().First(&room, b.RoomID).Error; err != nil {
		return "", fmt.Errorf("failed to load room %d: %w", b.RoomID, err)
	}
	if room.Status == billing.RoomOutOfOrder {
		return "", nil
	}

	switch to {
	case billing.StatusCheckedIn:
		return billing.RoomOccupied, nil
	case billing.StatusCheckedOut:
		return billing.RoomVacantDirty, nil
	case billing.StatusCancelled:
		if b.Status == billing.StatusCheckedIn {
			return billing.RoomVacantDirty, nil
		}
		if room.Status != billing.RoomReserved {
			return "", nil
		}
		var others int64
		if err := tx.Model(&models.Booking{}).
			Where("room_id = ? AND id <> ? AND status IN ?", b.RoomID, b.ID, blockingStatuses).
			Count(&others).Error; err != nil {
			return "", fmt.Errorf("failed to check bookings for room %d: %w", b.RoomID, err)
		}
		if others == 0 {
			return billing.RoomVacantReady, nil
		}
	}
	return "", nil
}

// RecordPayment adds amount to what the guest has paid so far.
func (s *BookingService) RecordPayment(ctx context.Context, id uint, amount float64) (*models.Booking, error) {
	if !billing.Finite(amount) || amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be greater than zero", ErrValidation)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to load booking %d: %w", id, err)
		}
		if b.Status == billing.StatusCancelled {
			return fmt.Errorf("%w: cannot record payment on a cancelled booking", ErrInvalidTransition)
		}
		paid := billing.Round2(b.AmountPaid + amount)
		if err := tx.Model(&models.Booking{}).Where("id = ?", b.ID).Update("amount_paid", paid).Error; err != nil {
			return fmt.Errorf("failed to record payment on booking %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("payment recorded",
		zap.Uint("booking_id", b.ID),
		zap.Float64("amount", amount),
		zap.Float64("amount_paid", b.AmountPaid),
	)
	return b, nil
}

// breakdownOf never fails; a stored inverted stay is billed as one night.
func breakdownOf(b *models.Booking) billing.ChargeBreakdown {
	stay := b.Stay()
	if err := stay.Validate(); err != nil {
		utils.GetLogger().Warn("booking has invalid stay, billing one night",
			zap.Uint("booking_id", b.ID),
			zap.Time("check_in", stay.CheckIn),
			zap.Time("check_out", stay.CheckOut),
		)
	}
	return billing.Breakdown(b.Room.RoomType.ToBilling(), stay, b.AmountPaid)
}

func (s *BookingService) Breakdown(ctx context.Context, id uint) (*models.Booking, billing.ChargeBreakdown, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, billing.ChargeBreakdown{}, err
	}
	return b, breakdownOf(b), nil
}

// Receipt renders the plain-text receipt for a booking.
func (s *BookingService) Receipt(ctx context.Context, id uint) (string, error) {
	b, bd, err := s.Breakdown(ctx, id)
	if err != nil {
		return "", err
	}
	guest := b.GuestInfo.Data()
	return receipt.Render(receipt.Receipt{
		ReferenceCode: b.ReferenceCode,
		GuestName:     guest.FullName,
		RoomNumber:    b.Room.RoomNumber,
		RoomType:      b.Room.RoomType.TypeName,
		Status:        b.Status,
		Stay:          b.Stay(),
		Breakdown:     bd,
		IssuedAt:      s.now(),
	}), nil
}

// MonthlyRevenue summarises bookings checking in during month, archived ones
// included.
func (s *BookingService) MonthlyRevenue(ctx context.Context, month time.Time) (receipt.MonthlySummary, error) {
	start := receipt.MonthStart(month.UTC())
	end := start.AddDate(0, 1, 0)

	var bookings []models.Booking
	if err := withRates(s.DB.WithContext(ctx).Unscoped()).
		Where("check_in >= ? AND check_in < ?", start, end).
		Where("status <> ?", billing.StatusCancelled).
		Order("id ASC").
		Find(&bookings).Error; err != nil {
		return receipt.MonthlySummary{}, fmt.Errorf("failed to load bookings for %s: %w", start.Format("2006-01"), err)
	}

	entries := make([]receipt.ReportEntry, len(bookings))
	for i, b := range bookings {
		entries[i] = receipt.ReportEntry{Booking: b.ToBilling(), RoomType: b.Room.RoomType.ToBilling()}
	}
	return receipt.MonthlyRevenue(entries, start), nil
}

// Archive soft-deletes a finished booking. Reports still count it.
func (s *BookingService) Archive(ctx context.Context, id uint) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if b.Status.Blocks() {
		return fmt.Errorf("%w: only checked-out or cancelled bookings can be archived", ErrInvalidTransition)
	}
	if err := s.DB.WithContext(ctx).Delete(&models.Booking{}, id).Error; err != nil {
		return fmt.Errorf("failed to archive booking %d: %w", id, err)
	}
	return nil
}

// publish is best effort; the booking is already committed.
func (s *BookingService) publish(ctx context.Context, key string, b *models.Booking) {
	if s.Events == nil {
		return
	}
	ev := events.BookingEvent{
		BookingID:     b.ID,
		ReferenceCode: b.ReferenceCode,
		RoomID:        b.RoomID,
		Status:        b.Status,
		Stay:          b.Stay(),
		Breakdown:     breakdownOf(b),
		OccurredAt:    s.now(),
	}
	if err := s.Events.Publish(ctx, key, ev); err != nil {
		utils.GetLogger().Warn("failed to publish booking event",
			zap.String("routing_key", key),
			zap.Uint("booking_id", b.ID),
			zap.Error(err),
		)
	}
}

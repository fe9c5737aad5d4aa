package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "cabgo/database/repository/booking"
	"cabgo/models"
	"cabgo/services/notification"
	"cabgo/services/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxIDAttempts bounds the generate/check/insert loop for booking IDs.
const maxIDAttempts = 10

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo       bookingRepo.BookingRepository
	Gateway    payment.Gateway
	Dispatcher notification.Dispatcher
	Logger     *zap.Logger
	// GenerateID is injectable so tests can force collisions. Defaults to
	// GenerateBookingID.
	GenerateID func() string
}

func (s *DefaultBookingService) generateID() string {
	if s.GenerateID != nil {
		return s.GenerateID()
	}
	return GenerateBookingID()
}

// Get retrieves a booking by its public ID.
func (s *DefaultBookingService) Get(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if booking == nil {
		return nil, newError(CodeNotFound, "booking %s not found", bookingID)
	}
	return booking, nil
}

// List returns a page of bookings with pagination metadata.
func (s *DefaultBookingService) List(ctx context.Context, filter bookingRepo.ListFilter) (*ListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	bookings, total, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	pages := total / int64(filter.Limit)
	if total%int64(filter.Limit) != 0 {
		pages++
	}

	if bookings == nil {
		bookings = []models.Booking{}
	}
	return &ListResult{
		Bookings: bookings,
		Pagination: Pagination{
			Page:  filter.Page,
			Limit: filter.Limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// mutate applies fn to the booking and persists the result under the
// repository's compare-and-swap guard. When a concurrent writer wins the
// race, the booking is re-read and fn reapplied once before giving up, so
// an admin update and a payment callback cannot silently overwrite each
// other.
func (s *DefaultBookingService) mutate(ctx context.Context, bookingID string, fn func(*models.Booking) error) (*models.Booking, error) {
	for attempt := 0; ; attempt++ {
		booking, err := s.Get(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		if err := fn(booking); err != nil {
			return nil, err
		}
		err = s.Repo.Update(ctx, booking)
		if err == nil {
			return booking, nil
		}
		if errors.Is(err, bookingRepo.ErrStaleBooking) && attempt == 0 {
			s.Logger.Warn("Booking changed concurrently, retrying update",
				zap.String("bookingId", bookingID))
			continue
		}
		return nil, fmt.Errorf("failed to persist booking %s: %w", bookingID, err)
	}
}

// dispatchEvent hands a notification event to the queue. Failures are logged
// and swallowed: notification delivery must never affect the mutation that
// triggered it.
func (s *DefaultBookingService) dispatchEvent(ctx context.Context, kind string, b *models.Booking) {
	if s.Dispatcher == nil {
		return
	}
	event := models.NewBookingEvent(uuid.New().String(), kind, b)
	if err := s.Dispatcher.Dispatch(ctx, event); err != nil {
		s.Logger.Error("Failed to dispatch booking notification",
			zap.String("bookingId", b.BookingID),
			zap.String("kind", kind),
			zap.Error(err))
	}
}

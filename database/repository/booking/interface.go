package bookingRepo

import (
	"context"
	"errors"

	"cabgo/models"
)

// ErrDuplicateBookingID is returned by Insert when the unique index on
// bookingId rejects the document. Callers treat it as a retryable collision.
var ErrDuplicateBookingID = errors.New("booking id already exists")

// ErrStaleBooking is returned by Update when the document changed since it
// was read (updatedAt mismatch). Callers should re-read and retry.
var ErrStaleBooking = errors.New("booking modified concurrently")

// ListFilter narrows and pages a booking listing.
type ListFilter struct {
	Status        string
	PaymentStatus string
	// Search matches case-insensitively against bookingId, customer name,
	// customer phone and the route label.
	Search string
	Page   int
	Limit  int
}

// BookingRepository defines the data access contract for bookings.
type BookingRepository interface {
	// Insert persists a new booking. Returns ErrDuplicateBookingID when the
	// bookingId is already taken.
	Insert(ctx context.Context, booking *models.Booking) error
	// GetByBookingID returns (nil, nil) when no booking matches.
	GetByBookingID(ctx context.Context, bookingID string) (*models.Booking, error)
	// Update replaces the document, guarded by the updatedAt value the
	// booking was read with. CreatedAt is preserved, UpdatedAt refreshed.
	Update(ctx context.Context, booking *models.Booking) error
	// List returns a page of bookings sorted by creation time descending,
	// together with the total count matching the filter.
	List(ctx context.Context, filter ListFilter) ([]models.Booking, int64, error)
}

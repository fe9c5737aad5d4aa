package booking

import (
	"context"
	"sort"
	"strings"
	"time"

	"cabgo/models"

	"go.uber.org/zap"
)

// UpdateStatus moves a booking to newStatus. completed is terminal: no
// transition leaves it. Everything else, including a transition to the same
// value, is accepted.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID, newStatus string) (*models.Booking, error) {
	if !models.ValidStatus(newStatus) {
		return nil, newError(CodeValidation, "unknown booking status %q", newStatus)
	}

	booking, err := s.mutate(ctx, bookingID, func(b *models.Booking) error {
		return applyStatus(b, newStatus)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Updated booking status",
		zap.String("bookingId", bookingID),
		zap.String("status", newStatus))
	s.dispatchEvent(ctx, models.EventStatusChanged, booking)
	return booking, nil
}

// Cancel sets the booking to cancelled. Cancellation is a status value, not
// a removal; completed bookings cannot be cancelled.
func (s *DefaultBookingService) Cancel(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.mutate(ctx, bookingID, func(b *models.Booking) error {
		return applyStatus(b, models.StatusCancelled)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Cancelled booking", zap.String("bookingId", bookingID))
	s.dispatchEvent(ctx, models.EventStatusChanged, booking)
	return booking, nil
}

func applyStatus(b *models.Booking, newStatus string) error {
	if b.Status == models.StatusCompleted && newStatus != models.StatusCompleted {
		return newError(CodeInvalidTransition, "booking %s is completed and cannot change status", b.BookingID)
	}
	b.Status = newStatus
	return nil
}

// fieldSetters is the complete set of admin-updatable paths. Anything not
// listed here is rejected, so a typo cannot widen the writable surface.
var fieldSetters = map[string]func(*models.Booking, any) error{
	"status": func(b *models.Booking, v any) error {
		status, err := stringValue(v)
		if err != nil {
			return err
		}
		if !models.ValidStatus(status) {
			return newError(CodeValidation, "unknown booking status %q", status)
		}
		return applyStatus(b, status)
	},
	"notes": setString(func(b *models.Booking) *string { return &b.Notes }),
	"driver.name": func(b *models.Booking, v any) error {
		name, err := stringValue(v)
		if err != nil {
			return err
		}
		b.Driver.Name = name
		if b.Driver.AssignedAt == nil {
			now := time.Now()
			b.Driver.AssignedAt = &now
		}
		return nil
	},
	"driver.phone":         setString(func(b *models.Booking) *string { return &b.Driver.Phone }),
	"driver.vehicleNumber": setString(func(b *models.Booking) *string { return &b.Driver.VehicleNumber }),
	"trip.pickupAddress":   setString(func(b *models.Booking) *string { return &b.Trip.PickupAddress }),
	"trip.dropAddress":     setString(func(b *models.Booking) *string { return &b.Trip.DropAddress }),
	"trip.specialRequests": setString(func(b *models.Booking) *string { return &b.Trip.SpecialRequests }),
	"trip.pickupTime":      setString(func(b *models.Booking) *string { return &b.Trip.PickupTime }),
	"trip.passengers": func(b *models.Booking, v any) error {
		n, err := intValue(v)
		if err != nil {
			return err
		}
		if n < minPassengers || n > maxPassengers {
			return newError(CodeValidation, "passenger count %d outside allowed range %d-%d", n, minPassengers, maxPassengers)
		}
		b.Trip.Passengers = n
		return nil
	},
}

// UpdateFields applies a partial update restricted to the allow-listed
// paths. Unknown keys fail the whole request with a validation error.
func (s *DefaultBookingService) UpdateFields(ctx context.Context, bookingID string, updates map[string]any) (*models.Booking, error) {
	if len(updates) == 0 {
		return nil, newError(CodeValidation, "no fields to update")
	}
	for key := range updates {
		if _, ok := fieldSetters[key]; !ok {
			return nil, newError(CodeValidation, "field %q is not updatable", key)
		}
	}

	// Apply in a stable order so validation failures are deterministic.
	keys := make([]string, 0, len(updates))
	for key := range updates {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	booking, err := s.mutate(ctx, bookingID, func(b *models.Booking) error {
		for _, key := range keys {
			if err := fieldSetters[key](b, updates[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Updated booking fields",
		zap.String("bookingId", bookingID),
		zap.Strings("fields", keys))
	return booking, nil
}

func setString(field func(*models.Booking) *string) func(*models.Booking, any) error {
	return func(b *models.Booking, v any) error {
		value, err := stringValue(v)
		if err != nil {
			return err
		}
		*field(b) = strings.TrimSpace(value)
		return nil
	}
}

func stringValue(v any) (string, error) {
	value, ok := v.(string)
	if !ok {
		return "", newError(CodeValidation, "expected a string value, got %T", v)
	}
	return value, nil
}

func intValue(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		// JSON numbers decode as float64.
		if n != float64(int(n)) {
			return 0, newError(CodeValidation, "expected an integer value, got %v", n)
		}
		return int(n), nil
	default:
		return 0, newError(CodeValidation, "expected an integer value, got %T", v)
	}
}

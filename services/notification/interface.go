package notification

import (
	"context"

	"cabgo/models"
)

// NotificationService sends customer-facing messages about a booking. All
// calls are best-effort from the booking core's point of view: a failed send
// never rolls back or fails the mutation that triggered it.
type NotificationService interface {
	SendBookingCreated(ctx context.Context, event models.BookingEvent) error
	SendStatusUpdate(ctx context.Context, event models.BookingEvent) error
}

// Dispatcher detaches notification delivery from the booking mutation.
// Implementations enqueue the event for a background worker.
type Dispatcher interface {
	Dispatch(ctx context.Context, event models.BookingEvent) error
}

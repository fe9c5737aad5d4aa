package booking

import (
	"context"

	bookingRepo "cabgo/database/repository/booking"
	"cabgo/models"
)

// CreateBookingInput carries the client-supplied data for a new booking.
// The booking ID is always generated server-side, never accepted from the
// client.
type CreateBookingInput struct {
	Customer models.Customer `json:"customer"`
	Trip     TripInput       `json:"trip"`
	Vehicle  models.Vehicle  `json:"vehicle"`
	Pricing  PricingInput    `json:"pricing"`
}

// TripInput mirrors models.Trip minus the derived route label.
type TripInput struct {
	From            string `json:"from"`
	To              string `json:"to"`
	PickupDate      string `json:"pickupDate"`
	PickupTime      string `json:"pickupTime"`
	PickupAddress   string `json:"pickupAddress"`
	DropAddress     string `json:"dropAddress"`
	Passengers      int    `json:"passengers"`
	SpecialRequests string `json:"specialRequests"`
}

// PricingInput carries the quoted fare in whole currency units.
type PricingInput struct {
	TotalAmount int `json:"totalAmount"`
}

// VerifyPaymentInput carries the payment proof submitted after checkout.
type VerifyPaymentInput struct {
	BookingID string `json:"bookingId"`
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// ListResult is the paginated listing returned to the admin panel.
type ListResult struct {
	Bookings   []models.Booking `json:"bookings"`
	Pagination Pagination       `json:"pagination"`
}

// Pagination describes the page window of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// BookingService is the booking lifecycle controller.
type BookingService interface {
	Create(ctx context.Context, input CreateBookingInput) (*models.Booking, *models.PaymentOrder, error)
	VerifyAndConfirmPayment(ctx context.Context, input VerifyPaymentInput) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID, newStatus string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID string) (*models.Booking, error)
	UpdateFields(ctx context.Context, bookingID string, updates map[string]any) (*models.Booking, error)
	Get(ctx context.Context, bookingID string) (*models.Booking, error)
	List(ctx context.Context, filter bookingRepo.ListFilter) (*ListResult, error)
}

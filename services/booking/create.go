package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "cabgo/database/repository/booking"
	"cabgo/models"

	"go.uber.org/zap"
)

const (
	minPassengers = 1
	maxPassengers = 15
)

// Create validates the request, allocates a unique booking ID, opens a
// payment order and persists the booking as pending. If the payment order
// cannot be created nothing is persisted.
func (s *DefaultBookingService) Create(ctx context.Context, input CreateBookingInput) (*models.Booking, *models.PaymentOrder, error) {
	booking, err := buildBooking(input)
	if err != nil {
		return nil, nil, err
	}

	bookingID, attempts, err := s.allocateBookingID(ctx, 0)
	if err != nil {
		return nil, nil, err
	}
	booking.BookingID = bookingID

	// Amount is quoted in whole rupees; the gateway wants paise.
	order, err := s.Gateway.CreateOrder(ctx, int64(booking.Pricing.TotalAmount)*100, booking.Pricing.Currency, bookingID)
	if err != nil {
		s.Logger.Error("Payment order creation failed",
			zap.String("bookingId", bookingID), zap.Error(err))
		return nil, nil, newError(CodePaymentOrder, "failed to create payment order")
	}
	booking.Payment.OrderID = order.ID

	for {
		err = s.Repo.Insert(ctx, booking)
		if err == nil {
			break
		}
		if !errors.Is(err, bookingRepo.ErrDuplicateBookingID) {
			return nil, nil, fmt.Errorf("failed to persist booking: %w", err)
		}
		// Lost the race between existence check and insert. Re-allocate
		// within the same attempt budget; the order's receipt ref is
		// informational, so the existing order stays usable.
		booking.BookingID, attempts, err = s.allocateBookingID(ctx, attempts)
		if err != nil {
			return nil, nil, err
		}
	}

	s.Logger.Info("Created booking",
		zap.String("bookingId", booking.BookingID),
		zap.String("route", booking.Trip.Route),
		zap.Int("totalAmount", booking.Pricing.TotalAmount))

	s.dispatchEvent(ctx, models.EventBookingCreated, booking)

	return booking, &models.PaymentOrder{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
	}, nil
}

// allocateBookingID generates candidate IDs and checks the store until one
// is free, resuming from a prior attempt count. The unique index still
// backstops the window between check and insert.
func (s *DefaultBookingService) allocateBookingID(ctx context.Context, attempts int) (string, int, error) {
	for ; attempts < maxIDAttempts; attempts++ {
		candidate := s.generateID()
		existing, err := s.Repo.GetByBookingID(ctx, candidate)
		if err != nil {
			return "", attempts, fmt.Errorf("failed to check booking id: %w", err)
		}
		if existing == nil {
			return candidate, attempts + 1, nil
		}
	}
	return "", attempts, newError(CodeResourceExhausted, "failed to generate a unique booking id after %d attempts", maxIDAttempts)
}

func buildBooking(input CreateBookingInput) (*models.Booking, error) {
	customer := models.Customer{
		Name:  strings.TrimSpace(input.Customer.Name),
		Phone: strings.TrimSpace(input.Customer.Phone),
		Email: strings.ToLower(strings.TrimSpace(input.Customer.Email)),
	}
	if customer.Name == "" || customer.Phone == "" {
		return nil, newError(CodeValidation, "customer name and phone are required")
	}

	from := strings.TrimSpace(input.Trip.From)
	to := strings.TrimSpace(input.Trip.To)
	if from == "" || to == "" || input.Trip.PickupDate == "" || input.Trip.PickupTime == "" {
		return nil, newError(CodeValidation, "trip details are required")
	}
	pickupDate, err := time.Parse("2006-01-02", input.Trip.PickupDate)
	if err != nil {
		return nil, newError(CodeValidation, "invalid pickup date %q, expected YYYY-MM-DD", input.Trip.PickupDate)
	}

	if input.Vehicle.ID == "" || input.Vehicle.Name == "" {
		return nil, newError(CodeValidation, "vehicle details are required")
	}
	if input.Pricing.TotalAmount <= 0 {
		return nil, newError(CodeValidation, "pricing information is required")
	}

	passengers := input.Trip.Passengers
	if passengers == 0 {
		passengers = minPassengers
	}
	if passengers < minPassengers || passengers > maxPassengers {
		return nil, newError(CodeValidation, "passenger count %d outside allowed range %d-%d", passengers, minPassengers, maxPassengers)
	}

	return &models.Booking{
		Customer: customer,
		Trip: models.Trip{
			From:            from,
			To:              to,
			Route:           fmt.Sprintf("%s → %s", from, to),
			PickupDate:      pickupDate,
			PickupTime:      input.Trip.PickupTime,
			PickupAddress:   strings.TrimSpace(input.Trip.PickupAddress),
			DropAddress:     strings.TrimSpace(input.Trip.DropAddress),
			Passengers:      passengers,
			SpecialRequests: strings.TrimSpace(input.Trip.SpecialRequests),
		},
		Vehicle: input.Vehicle,
		Pricing: models.Pricing{
			BaseFare:    input.Pricing.TotalAmount,
			TotalAmount: input.Pricing.TotalAmount,
			Currency:    "INR",
		},
		Payment: models.Payment{
			Status: models.PaymentPending,
			Method: "razorpay",
		},
		Status: models.StatusPending,
	}, nil
}

package booking

import (
	"context"
	"time"

	"cabgo/models"

	"go.uber.org/zap"
)

// VerifyAndConfirmPayment checks the payment proof against the gateway and,
// on success, marks the booking paid and confirmed. A booking that is
// already paid is accepted again with the same terminal values, so client
// retries after a dropped response never see a spurious failure.
func (s *DefaultBookingService) VerifyAndConfirmPayment(ctx context.Context, input VerifyPaymentInput) (*models.Booking, error) {
	if input.BookingID == "" || input.OrderID == "" || input.PaymentID == "" || input.Signature == "" {
		return nil, newError(CodeValidation, "missing required payment verification data")
	}

	if _, err := s.Get(ctx, input.BookingID); err != nil {
		return nil, err
	}

	if !s.Gateway.VerifySignature(input.OrderID, input.PaymentID, input.Signature) {
		s.Logger.Warn("Rejected payment with invalid signature",
			zap.String("bookingId", input.BookingID),
			zap.String("orderId", input.OrderID))
		return nil, newError(CodeInvalidSignature, "invalid payment signature")
	}

	var alreadyPaid bool
	booking, err := s.mutate(ctx, input.BookingID, func(b *models.Booking) error {
		if b.Payment.Status == models.PaymentPaid {
			// Keep the original terminal values, including the status a
			// later transition may have moved the booking to.
			alreadyPaid = true
			return nil
		}

		now := time.Now()
		b.Payment.Status = models.PaymentPaid
		b.Payment.PaymentID = input.PaymentID
		b.Payment.Signature = input.Signature
		b.Payment.PaidAt = &now
		b.Status = models.StatusConfirmed
		return nil
	})
	if err != nil {
		return nil, err
	}

	if alreadyPaid {
		s.Logger.Info("Re-verified already paid booking", zap.String("bookingId", booking.BookingID))
	} else {
		s.Logger.Info("Payment verified, booking confirmed",
			zap.String("bookingId", booking.BookingID),
			zap.String("paymentId", input.PaymentID))
		s.dispatchEvent(ctx, models.EventStatusChanged, booking)
	}

	return booking, nil
}

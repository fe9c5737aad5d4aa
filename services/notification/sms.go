package notification

import (
	"context"
	"fmt"

	"cabgo/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// SMSNotificationService delivers booking updates to the customer's phone
// via Twilio.
type SMSNotificationService struct {
	client *twilio.RestClient
	from   string
	logger *zap.Logger
}

// NewSMSNotificationService builds a Twilio-backed notifier.
func NewSMSNotificationService(accountSID, authToken, fromNumber string, logger *zap.Logger) (*SMSNotificationService, error) {
	if accountSID == "" || authToken == "" || fromNumber == "" {
		return nil, fmt.Errorf("notification service initialization error: missing twilio credentials")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSNotificationService{client: client, from: fromNumber, logger: logger}, nil
}

// SendBookingCreated confirms receipt of a new booking.
func (s *SMSNotificationService) SendBookingCreated(ctx context.Context, event models.BookingEvent) error {
	body := fmt.Sprintf(
		"Hi %s, your cab booking %s (%s) on %s at %s is received. Vehicle: %s, fare ₹%d. Complete payment to confirm.",
		event.Name,
		event.BookingID,
		event.Route,
		event.PickupDate.Format("02 Jan 2006"),
		event.PickupTime,
		event.VehicleName,
		event.TotalAmount,
	)
	return s.send(ctx, event.Phone, body)
}

// SendStatusUpdate informs the customer of a status change.
func (s *SMSNotificationService) SendStatusUpdate(ctx context.Context, event models.BookingEvent) error {
	body := fmt.Sprintf(
		"Hi %s, your booking %s (%s) is now %s.",
		event.Name,
		event.BookingID,
		event.Route,
		event.Status,
	)
	return s.send(ctx, event.Phone, body)
}

func (s *SMSNotificationService) send(_ context.Context, to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS to %s: %w", to, err)
	}
	s.logger.Info("Sent booking SMS", zap.String("to", to))
	return nil
}

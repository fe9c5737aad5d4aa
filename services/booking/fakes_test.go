package booking

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	bookingRepo "cabgo/database/repository/booking"
	"cabgo/models"
	"cabgo/services/payment"

	"go.uber.org/zap"
)

// fakeRepo is an in-memory BookingRepository mirroring the mongo
// implementation's contract: duplicate detection on insert, updatedAt
// compare-and-swap on update, newest-first listing.
type fakeRepo struct {
	bookings map[string]models.Booking
	inserts  int
	// failInsertWithDuplicate makes the next n inserts report a duplicate
	// key even for fresh IDs, simulating a lost check-then-insert race.
	failInsertWithDuplicate int
	failGet                 error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]models.Booking)}
}

func (r *fakeRepo) Insert(_ context.Context, booking *models.Booking) error {
	r.inserts++
	if r.failInsertWithDuplicate > 0 {
		r.failInsertWithDuplicate--
		return bookingRepo.ErrDuplicateBookingID
	}
	if _, exists := r.bookings[booking.BookingID]; exists {
		return bookingRepo.ErrDuplicateBookingID
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.bookings[booking.BookingID] = *booking
	return nil
}

func (r *fakeRepo) GetByBookingID(_ context.Context, bookingID string) (*models.Booking, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	clone := b
	return &clone, nil
}

func (r *fakeRepo) Update(_ context.Context, booking *models.Booking) error {
	stored, ok := r.bookings[booking.BookingID]
	if !ok {
		return errors.New("booking missing")
	}
	if !stored.UpdatedAt.Equal(booking.UpdatedAt) {
		return bookingRepo.ErrStaleBooking
	}
	booking.UpdatedAt = time.Now().Add(time.Millisecond) // keep versions distinct
	r.bookings[booking.BookingID] = *booking
	return nil
}

func (r *fakeRepo) List(_ context.Context, filter bookingRepo.ListFilter) ([]models.Booking, int64, error) {
	var matched []models.Booking
	for _, b := range r.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.PaymentStatus != "" && b.Payment.Status != filter.PaymentStatus {
			continue
		}
		if filter.Search != "" && !matchesSearch(b, filter.Search) {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func matchesSearch(b models.Booking, search string) bool {
	s := strings.ToLower(search)
	for _, field := range []string{b.BookingID, b.Customer.Name, b.Customer.Phone, b.Trip.Route} {
		if strings.Contains(strings.ToLower(field), s) {
			return true
		}
	}
	return false
}

// fakeGateway is a configurable payment bridge.
type fakeGateway struct {
	orderErr     error
	orders       int
	validSig     string
	lastReceipt  string
	verifyCalled int
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*payment.Order, error) {
	g.orders++
	g.lastReceipt = receipt
	if g.orderErr != nil {
		return nil, g.orderErr
	}
	return &payment.Order{ID: "order_fake_1", Amount: amount, Currency: currency}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	g.verifyCalled++
	return signature == g.validSig
}

// fakeDispatcher records dispatched events and can be forced to fail.
type fakeDispatcher struct {
	events []models.BookingEvent
	err    error
}

func (d *fakeDispatcher) Dispatch(_ context.Context, event models.BookingEvent) error {
	if d.err != nil {
		return d.err
	}
	d.events = append(d.events, event)
	return nil
}

func newTestService(repo *fakeRepo, gw *fakeGateway, disp *fakeDispatcher) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:       repo,
		Gateway:    gw,
		Dispatcher: disp,
		Logger:     zap.NewNop(),
	}
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		Customer: models.Customer{Name: "A", Phone: "9999999999"},
		Trip: TripInput{
			From:       "Delhi",
			To:         "Ludhiana",
			PickupDate: "2026-10-01",
			PickupTime: "10:30 AM",
		},
		Vehicle: models.Vehicle{ID: "sedan", Name: "Sedan", Type: "sedan", Capacity: "4"},
		Pricing: PricingInput{TotalAmount: 4500},
	}
}

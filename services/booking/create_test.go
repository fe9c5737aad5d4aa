package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cabgo/models"
)

func TestCreate_Valid(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{}
	disp := &fakeDispatcher{}
	svc := newTestService(repo, gw, disp)

	b, order, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if b.Trip.Route != "Delhi → Ludhiana" {
		t.Errorf("route = %q, want %q", b.Trip.Route, "Delhi → Ludhiana")
	}
	if b.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", b.Status)
	}
	if b.Payment.Status != models.PaymentPending {
		t.Errorf("payment status = %q, want pending", b.Payment.Status)
	}
	if b.Payment.OrderID != "order_fake_1" {
		t.Errorf("payment orderId = %q, want order_fake_1", b.Payment.OrderID)
	}
	if b.Pricing.Currency != "INR" {
		t.Errorf("currency = %q, want INR", b.Pricing.Currency)
	}
	if order.Amount != 450000 {
		t.Errorf("order amount = %d paise, want 450000", order.Amount)
	}

	stored, _ := repo.GetByBookingID(context.Background(), b.BookingID)
	if stored == nil {
		t.Fatal("booking not persisted")
	}
	if stored.Status != models.StatusPending {
		t.Errorf("persisted status = %q, want pending", stored.Status)
	}

	if len(disp.events) != 1 || disp.events[0].Kind != models.EventBookingCreated {
		t.Errorf("expected one created event, got %+v", disp.events)
	}
}

func TestCreate_GeneratedIDFormat(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeGateway{}, &fakeDispatcher{})

	b, _, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(b.BookingID) != 13 || b.BookingID[:2] != "BK" {
		t.Errorf("bookingId %q does not match BK + 11 digits", b.BookingID)
	}
	for _, r := range b.BookingID[2:] {
		if r < '0' || r > '9' {
			t.Errorf("bookingId %q contains non-digit %q", b.BookingID, r)
		}
	}
}

func TestCreate_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateBookingInput)
	}{
		{"customer name", func(in *CreateBookingInput) { in.Customer.Name = "  " }},
		{"customer phone", func(in *CreateBookingInput) { in.Customer.Phone = "" }},
		{"trip from", func(in *CreateBookingInput) { in.Trip.From = "" }},
		{"trip to", func(in *CreateBookingInput) { in.Trip.To = "" }},
		{"pickup date", func(in *CreateBookingInput) { in.Trip.PickupDate = "" }},
		{"pickup time", func(in *CreateBookingInput) { in.Trip.PickupTime = "" }},
		{"vehicle id", func(in *CreateBookingInput) { in.Vehicle.ID = "" }},
		{"vehicle name", func(in *CreateBookingInput) { in.Vehicle.Name = "" }},
		{"total amount", func(in *CreateBookingInput) { in.Pricing.TotalAmount = 0 }},
		{"bad pickup date", func(in *CreateBookingInput) { in.Trip.PickupDate = "01/10/2026" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			gw := &fakeGateway{}
			svc := newTestService(repo, gw, &fakeDispatcher{})

			input := validInput()
			tc.mutate(&input)

			_, _, err := svc.Create(context.Background(), input)
			if !IsCode(err, CodeValidation) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if gw.orders != 0 {
				t.Error("payment order created despite validation failure")
			}
			if repo.inserts != 0 {
				t.Error("booking persisted despite validation failure")
			}
		})
	}
}

func TestCreate_PassengerRange(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeGateway{}, &fakeDispatcher{})

	input := validInput()
	input.Trip.Passengers = 16
	if _, _, err := svc.Create(context.Background(), input); !IsCode(err, CodeValidation) {
		t.Errorf("16 passengers: err = %v, want validation error", err)
	}

	input.Trip.Passengers = -1
	if _, _, err := svc.Create(context.Background(), input); !IsCode(err, CodeValidation) {
		t.Errorf("-1 passengers: err = %v, want validation error", err)
	}

	// Unset passenger count defaults to 1.
	input.Trip.Passengers = 0
	b, _, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if b.Trip.Passengers != 1 {
		t.Errorf("passengers = %d, want default 1", b.Trip.Passengers)
	}
}

func TestCreate_OrderFailureLeavesNothingBehind(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{orderErr: errors.New("gateway down")}
	svc := newTestService(repo, gw, &fakeDispatcher{})

	_, _, err := svc.Create(context.Background(), validInput())
	if !IsCode(err, CodePaymentOrder) {
		t.Fatalf("err = %v, want payment order error", err)
	}
	if repo.inserts != 0 {
		t.Error("booking persisted despite order creation failure")
	}
}

func TestCreate_RetriesCollidingIDs(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeGateway{}, &fakeDispatcher{})

	// Occupy the colliding ID so the existence check sees it.
	taken := &models.Booking{BookingID: "BK00000000001", Status: models.StatusPending}
	if err := repo.Insert(context.Background(), taken); err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}

	// Generator yields the taken ID 9 times, then a fresh one.
	calls := 0
	svc.GenerateID = func() string {
		calls++
		if calls <= 9 {
			return "BK00000000001"
		}
		return fmt.Sprintf("BK0000000%04d", calls)
	}

	b, _, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create returned error after 9 collisions: %v", err)
	}
	if b.BookingID == "BK00000000001" {
		t.Error("create reused a taken booking id")
	}
}

func TestCreate_ExhaustsIDAttempts(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeGateway{}, &fakeDispatcher{})

	taken := &models.Booking{BookingID: "BK00000000001", Status: models.StatusPending}
	if err := repo.Insert(context.Background(), taken); err != nil {
		t.Fatalf("seed insert failed: %v", err)
	}

	svc.GenerateID = func() string { return "BK00000000001" }

	_, _, err := svc.Create(context.Background(), validInput())
	if !IsCode(err, CodeResourceExhausted) {
		t.Fatalf("err = %v, want resource exhausted", err)
	}
}

func TestCreate_RetriesInsertTimeDuplicate(t *testing.T) {
	repo := newFakeRepo()
	repo.failInsertWithDuplicate = 1 // first insert loses the race
	disp := &fakeDispatcher{}
	svc := newTestService(repo, &fakeGateway{}, disp)

	b, _, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if repo.inserts != 2 {
		t.Errorf("inserts = %d, want 2 (raced attempt + retry)", repo.inserts)
	}
	stored, _ := repo.GetByBookingID(context.Background(), b.BookingID)
	if stored == nil {
		t.Fatal("booking not persisted after duplicate retry")
	}
	if len(disp.events) != 1 {
		t.Errorf("expected exactly one created event, got %d", len(disp.events))
	}
}

func TestCreate_NotificationFailureDoesNotFailCreate(t *testing.T) {
	repo := newFakeRepo()
	disp := &fakeDispatcher{err: errors.New("queue unavailable")}
	svc := newTestService(repo, &fakeGateway{}, disp)

	b, _, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	stored, _ := repo.GetByBookingID(context.Background(), b.BookingID)
	if stored == nil {
		t.Fatal("booking not persisted")
	}
}

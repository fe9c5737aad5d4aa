package models

import "time"

// Booking lifecycle statuses.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Payment statuses.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// ValidStatus reports whether s is a known booking lifecycle status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Customer is the contact information captured with a booking.
type Customer struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// Trip holds the journey details for a one-way booking.
type Trip struct {
	From            string    `bson:"from" json:"from"`
	To              string    `bson:"to" json:"to"`
	Route           string    `bson:"route" json:"route"`
	PickupDate      time.Time `bson:"pickupDate" json:"pickupDate"`
	PickupTime      string    `bson:"pickupTime" json:"pickupTime"`
	PickupAddress   string    `bson:"pickupAddress" json:"pickupAddress"`
	DropAddress     string    `bson:"dropAddress" json:"dropAddress"`
	Passengers      int       `bson:"passengers" json:"passengers"`
	SpecialRequests string    `bson:"specialRequests" json:"specialRequests"`
}

// Vehicle is an opaque reference to the selected cab option. No inventory
// or availability is tracked against it.
type Vehicle struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Type     string `bson:"type" json:"type"`
	Capacity string `bson:"capacity" json:"capacity"`
}

// Pricing captures the quoted fare. Amounts are whole currency units.
type Pricing struct {
	BaseFare    int    `bson:"baseFare" json:"baseFare"`
	TotalAmount int    `bson:"totalAmount" json:"totalAmount"`
	Currency    string `bson:"currency" json:"currency"`
}

// Payment tracks the gateway order attached to a booking and its outcome.
type Payment struct {
	Status    string     `bson:"status" json:"status"`
	Method    string     `bson:"method" json:"method"`
	OrderID   string     `bson:"orderId" json:"orderId"`
	PaymentID string     `bson:"paymentId,omitempty" json:"paymentId,omitempty"`
	Signature string     `bson:"signature,omitempty" json:"-"`
	PaidAt    *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}

// Driver is the optional assignment recorded by an admin. All fields stay
// empty until a driver is assigned.
type Driver struct {
	Name          string     `bson:"name,omitempty" json:"name,omitempty"`
	Phone         string     `bson:"phone,omitempty" json:"phone,omitempty"`
	VehicleNumber string     `bson:"vehicleNumber,omitempty" json:"vehicleNumber,omitempty"`
	AssignedAt    *time.Time `bson:"assignedAt,omitempty" json:"assignedAt,omitempty"`
}

// Booking is one customer trip reservation. Bookings are never physically
// deleted; cancellation is a status value.
type Booking struct {
	BookingID string    `bson:"bookingId" json:"bookingId"`
	Customer  Customer  `bson:"customer" json:"customer"`
	Trip      Trip      `bson:"trip" json:"trip"`
	Vehicle   Vehicle   `bson:"vehicle" json:"vehicle"`
	Pricing   Pricing   `bson:"pricing" json:"pricing"`
	Payment   Payment   `bson:"payment" json:"payment"`
	Status    string    `bson:"status" json:"status"`
	Driver    Driver    `bson:"driver" json:"driver"`
	Notes     string    `bson:"notes" json:"notes"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingSummary is the view safe to return to untrusted callers. It never
// carries gateway signatures or payment identifiers.
type BookingSummary struct {
	BookingID     string    `json:"bookingId"`
	CustomerName  string    `json:"customerName"`
	Route         string    `json:"route"`
	VehicleName   string    `json:"vehicleName"`
	TotalAmount   int       `json:"totalAmount"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	PickupDate    time.Time `json:"pickupDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Summary returns the redacted public view of the booking.
func (b *Booking) Summary() BookingSummary {
	return BookingSummary{
		BookingID:     b.BookingID,
		CustomerName:  b.Customer.Name,
		Route:         b.Trip.Route,
		VehicleName:   b.Vehicle.Name,
		TotalAmount:   b.Pricing.TotalAmount,
		Status:        b.Status,
		PaymentStatus: b.Payment.Status,
		PickupDate:    b.Trip.PickupDate,
		CreatedAt:     b.CreatedAt,
	}
}

// PaymentOrder is the handle returned to the client so it can complete
// checkout against the gateway.
type PaymentOrder struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key"`
}

package models

import "time"

// Notification event kinds.
const (
	EventBookingCreated = "created"
	EventStatusChanged  = "statusChanged"
)

// BookingEvent is the payload handed to the notification queue whenever a
// booking is created or changes status. It is a snapshot, not a reference:
// the worker must never need to read the booking back.
type BookingEvent struct {
	EventID     string    `json:"eventId"`
	Kind        string    `json:"kind"`
	BookingID   string    `json:"bookingId"`
	Status      string    `json:"status"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Route       string    `json:"route"`
	PickupDate  time.Time `json:"pickupDate"`
	PickupTime  string    `json:"pickupTime"`
	VehicleName string    `json:"vehicleName"`
	TotalAmount int       `json:"totalAmount"`
}

// NewBookingEvent builds an event snapshot from a booking.
func NewBookingEvent(eventID, kind string, b *Booking) BookingEvent {
	return BookingEvent{
		EventID:     eventID,
		Kind:        kind,
		BookingID:   b.BookingID,
		Status:      b.Status,
		Name:        b.Customer.Name,
		Phone:       b.Customer.Phone,
		Route:       b.Trip.Route,
		PickupDate:  b.Trip.PickupDate,
		PickupTime:  b.Trip.PickupTime,
		VehicleName: b.Vehicle.Name,
		TotalAmount: b.Pricing.TotalAmount,
	}
}

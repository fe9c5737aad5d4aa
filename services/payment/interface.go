package payment

import "context"

// Order is the gateway-side payment order opened for a booking.
type Order struct {
	ID       string
	Amount   int64
	Currency string
}

// Gateway abstracts the external payment provider: it opens signed orders
// and verifies payment signatures. The booking core never talks to the
// provider directly.
type Gateway interface {
	// CreateOrder opens an order for the given amount in minor currency
	// units (paise). receipt is an informational reference, not a key.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
	// VerifySignature reports whether the signature authenticates the
	// (orderID, paymentID) pair.
	VerifySignature(orderID, paymentID, signature string) bool
}

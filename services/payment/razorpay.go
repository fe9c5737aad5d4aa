package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

// orderTimeout bounds the gateway call so a stalled provider cannot hang a
// booking request.
const orderTimeout = 10 * time.Second

// RazorpayGateway implements Gateway against the Razorpay Orders API.
type RazorpayGateway struct {
	client    *razorpay.Client
	keySecret string
	logger    *zap.Logger
}

// NewRazorpayGateway creates a gateway client with the given API key pair.
func NewRazorpayGateway(keyID, keySecret string, logger *zap.Logger) *RazorpayGateway {
	return &RazorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
		logger:    logger,
	}
}

// CreateOrder opens a Razorpay order. The SDK call carries no context, so it
// runs on a goroutine bounded by orderTimeout.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, orderTimeout)
	defer cancel()

	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	type result struct {
		body map[string]interface{}
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		body, err := g.client.Order.Create(data, nil)
		ch <- result{body, err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("razorpay order creation timed out: %w", ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("razorpay order creation failed: %w", res.err)
		}
		orderID, _ := res.body["id"].(string)
		if orderID == "" {
			return nil, fmt.Errorf("razorpay order creation returned no order id")
		}
		g.logger.Info("Created payment order",
			zap.String("orderId", orderID),
			zap.Int64("amount", amount),
			zap.String("receipt", receipt))
		return &Order{ID: orderID, Amount: amount, Currency: currency}, nil
	}
}

// VerifySignature checks the Razorpay payment signature: HMAC-SHA256 of
// "orderID|paymentID" keyed with the API secret, hex encoded.
func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

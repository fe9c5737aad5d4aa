package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"go.uber.org/zap"
)

func signPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "topsecret", zap.NewNop())
	sig := signPayment("topsecret", "order_123", "pay_456")
	if !g.VerifySignature("order_123", "pay_456", sig) {
		t.Error("expected a correctly signed payment to verify")
	}
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "topsecret", zap.NewNop())
	sig := signPayment("othersecret", "order_123", "pay_456")
	if g.VerifySignature("order_123", "pay_456", sig) {
		t.Error("signature made with the wrong secret must not verify")
	}
}

func TestVerifySignature_TamperedPayment(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "topsecret", zap.NewNop())
	sig := signPayment("topsecret", "order_123", "pay_456")
	if g.VerifySignature("order_123", "pay_999", sig) {
		t.Error("signature must not verify for a different payment id")
	}
	if g.VerifySignature("order_999", "pay_456", sig) {
		t.Error("signature must not verify for a different order id")
	}
}

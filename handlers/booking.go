package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"cabgo/config"
	"cabgo/models"
	"cabgo/services/booking"
	"cabgo/utils"
)

// summaryCacheTTL bounds how stale the public tracking view may be.
const summaryCacheTTL = 60 * time.Second

// BookingHandler exposes the public booking surface.
type BookingHandler struct {
	Svc    booking.BookingService
	Cache  *redis.Client
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, cache *redis.Client, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Cache: cache, Logger: logger}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, order, err := h.Svc.Create(c.Request.Context(), input)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	order.KeyID = config.AppConfig.RazorpayKeyID
	c.JSON(http.StatusCreated, gin.H{
		"booking": created.Summary(),
		"payment": order,
	})
}

// GetBookingSummary handles GET /api/bookings/:id. Untrusted callers only
// ever see the redacted summary, cached briefly to keep the tracking page
// cheap.
func (h *BookingHandler) GetBookingSummary(c *gin.Context) {
	bookingID := c.Param("id")
	cacheKey := "booking:summary:" + bookingID

	ctx := c.Request.Context()
	if cached, err := h.Cache.Get(ctx, cacheKey).Result(); err == nil {
		var summary models.BookingSummary
		if json.Unmarshal([]byte(cached), &summary) == nil {
			c.JSON(http.StatusOK, gin.H{"booking": summary})
			return
		}
	}

	b, err := h.Svc.Get(ctx, bookingID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	summary := b.Summary()
	if data, err := json.Marshal(summary); err == nil {
		if err := h.Cache.Set(ctx, cacheKey, data, summaryCacheTTL).Err(); err != nil {
			h.Logger.Warn("Failed to cache booking summary", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"booking": summary})
}

// VerifyPayment handles POST /api/payments/verify.
func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	var input booking.VerifyPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Svc.VerifyAndConfirmPayment(c.Request.Context(), input)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	// The tracking page caches summaries; drop the stale entry eagerly.
	h.invalidateSummary(c.Request.Context(), b.BookingID)

	c.JSON(http.StatusOK, gin.H{
		"booking": b.Summary(),
		"payment": gin.H{
			"status":    b.Payment.Status,
			"paymentId": b.Payment.PaymentID,
			"paidAt":    b.Payment.PaidAt,
		},
	})
}

func (h *BookingHandler) invalidateSummary(ctx context.Context, bookingID string) {
	if err := h.Cache.Del(ctx, "booking:summary:"+bookingID).Err(); err != nil {
		h.Logger.Warn("Failed to invalidate booking summary cache",
			zap.String("bookingId", bookingID), zap.Error(err))
	}
}

// respondBookingError maps domain error codes to HTTP statuses.
func respondBookingError(c *gin.Context, err error) {
	switch booking.ErrorCode(err) {
	case booking.CodeValidation:
		utils.JSONError(c, http.StatusBadRequest, "validation failed", err.Error())
	case booking.CodeNotFound:
		utils.JSONError(c, http.StatusNotFound, "booking not found", err.Error())
	case booking.CodeInvalidSignature:
		utils.JSONError(c, http.StatusBadRequest, "invalid payment signature", err.Error())
	case booking.CodeInvalidTransition:
		utils.JSONError(c, http.StatusConflict, "invalid status transition", err.Error())
	case booking.CodePaymentOrder:
		utils.JSONError(c, http.StatusBadGateway, "failed to create payment order", err.Error())
	case booking.CodeResourceExhausted:
		utils.JSONError(c, http.StatusInternalServerError, "failed to allocate booking id", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "please try again later")
	}
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"cabgo/config"
	bookingRepo "cabgo/database/repository/booking"
	"cabgo/services/booking"
	"cabgo/utils"
)

// adminTokenTTL is how long an issued admin token stays valid.
const adminTokenTTL = 12 * time.Hour

// AdminHandler exposes the admin panel surface: login plus full booking
// management.
type AdminHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewAdminHandler(svc booking.BookingService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if input.Username != config.AppConfig.AdminUsername ||
		bcrypt.CompareHashAndPassword([]byte(config.AppConfig.AdminPasswordHash), []byte(input.Password)) != nil {
		h.Logger.Warn("Rejected admin login", zap.String("username", input.Username))
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := utils.GenerateAdminToken(input.Username, adminTokenTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "expiresIn": int(adminTokenTTL.Seconds())})
}

// Verify handles GET /api/admin/verify. Reaching it at all means the auth
// middleware accepted the token.
func (h *AdminHandler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"valid": true, "username": c.GetString("adminUser")})
}

// ListBookings handles GET /api/admin/bookings.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := bookingRepo.ListFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("paymentStatus"),
		Search:        c.Query("search"),
		Page:          page,
		Limit:         limit,
	}

	result, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBooking handles GET /api/admin/bookings/:id, returning the full
// document.
func (h *AdminHandler) GetBooking(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// UpdateBooking handles PUT /api/admin/bookings/:id with a partial update
// restricted to the allow-listed paths.
func (h *AdminHandler) UpdateBooking(c *gin.Context) {
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Svc.UpdateFields(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// UpdateStatus handles PATCH /api/admin/bookings/:id/status.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// CancelBooking handles DELETE /api/admin/bookings/:id. The record is kept;
// only its status changes.
func (h *AdminHandler) CancelBooking(c *gin.Context) {
	b, err := h.Svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

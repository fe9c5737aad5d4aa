package routes

import (
	"time"

	"cabgo/handlers"
	"cabgo/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the public booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api")
	{
		api.POST("/bookings", bh.CreateBooking)
		api.GET("/bookings/:id", bh.GetBookingSummary)
		api.POST("/payments/verify", bh.VerifyPayment)
	}
}

// RegisterAdminRoutes registers the admin panel endpoints. Everything past
// login requires a valid admin token on each request.
func RegisterAdminRoutes(r *gin.Engine, ah *handlers.AdminHandler) {
	api := r.Group("/api/admin")
	{
		api.POST("/login", ah.Login)

		protected := api.Group("")
		protected.Use(middleware.AdminAuth())
		protected.GET("/verify", ah.Verify)
		protected.GET("/bookings", ah.ListBookings)
		protected.GET("/bookings/:id", ah.GetBooking)
		protected.PUT("/bookings/:id", ah.UpdateBooking)
		protected.PATCH("/bookings/:id/status", ah.UpdateStatus)
		protected.DELETE("/bookings/:id", ah.CancelBooking)
	}
}

// RegisterHealthRoutes registers the health endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// CORSConfig returns the CORS policy for browser clients.
func CORSConfig() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

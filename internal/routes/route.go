package routes

import (
	"github.com/festivo/api/internal/container"
	"github.com/festivo/api/internal/handlers"
	"github.com/festivo/api/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// API version 1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "festivo-api",
			})
		})

		// public browsing
		v1.GET("/vendors", handlers.ListVendors(container.VendorService))
		v1.GET("/vendors/:id", handlers.GetVendor(container.VendorService))
		v1.GET("/reviews/vendor/:vendor_id", handlers.GetVendorReviews(container.ReviewService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.JWTSecret, container.Logger))

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.POST("/", handlers.CreateBooking(container.BookingService))
		bookingRoutes.GET("/my-bookings", handlers.GetMyBookings(container.BookingService))
		bookingRoutes.GET("/:id", handlers.GetBooking(container.BookingService))
		bookingRoutes.PUT("/:id", handlers.UpdateBooking(container.BookingService))
		bookingRoutes.POST("/:id/cancel", handlers.CancelBooking(container.BookingService))
	}

	vendorRoutes := protected.Group("/vendor")
	{
		vendorRoutes.GET("/bookings", handlers.GetVendorBookings(container.BookingService, container.VendorService))
		vendorRoutes.POST("/bookings/:id/approve", handlers.ApproveBooking(container.BookingService, container.VendorService))
		vendorRoutes.POST("/bookings/:id/reject", handlers.RejectBooking(container.BookingService, container.VendorService))
		vendorRoutes.POST("/bookings/:id/confirm", handlers.ConfirmBooking(container.BookingService, container.VendorService))
		vendorRoutes.POST("/profile", handlers.RegisterVendor(container.VendorService))
		vendorRoutes.PATCH("/profile", handlers.UpdateVendor(container.VendorService))
	}

	reviewRoutes := protected.Group("/reviews")
	{
		reviewRoutes.POST("/", handlers.CreateReview(container.ReviewService))
		reviewRoutes.GET("/me", handlers.GetMyReviews(container.ReviewService))
	}

	adminRoutes := protected.Group("/admin")
	{
		adminRoutes.DELETE("/reviews/:id", handlers.DeleteReview(container.ReviewService))
		adminRoutes.PATCH("/vendors/:id/approval", handlers.SetVendorApproval(container.VendorService))
		adminRoutes.POST("/vendors/:id/recompute-stats", handlers.RecomputeVendorStats(container.VendorStatsService))
	}

	return r
}

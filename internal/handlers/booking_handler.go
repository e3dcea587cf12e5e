package handlers

import (
	"net/http"

	"github.com/festivo/api/internal/apperr"
	"github.com/festivo/api/internal/models"
	"github.com/festivo/api/internal/services"
	"github.com/gin-gonic/gin"
)

func CreateBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		var req models.BookingCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := b.CreateBooking(c.Request.Context(), userId, &req)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(booking, "Booking created successfully"))
	}
}

func GetMyBookings(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		offset, limit, ok := pagination(c)
		if !ok {
			return
		}

		bookings, err := b.GetUserBookings(c.Request.Context(), userId, offset, limit)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

func GetBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		booking, err := b.GetBookingByID(c.Request.Context(), bookingId)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, ""))
	}
}

func UpdateBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		bookingId, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		var update models.BookingUpdate
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := b.UpdateBooking(c.Request.Context(), bookingId, userId, &update)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Booking updated successfully"))
	}
}

func CancelBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := currentUserID(c)
		if !ok {
			return
		}

		bookingId, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		booking, err := b.CancelBooking(c.Request.Context(), bookingId, userId)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Booking cancelled"))
	}
}

// resolveVendorActor maps the authenticated user to their vendor profile.
// Writes the error response itself when resolution fails.
func resolveVendorActor(c *gin.Context, v *services.VendorService) (services.AuthenticatedVendor, bool) {
	userId, ok := currentUserID(c)
	if !ok {
		return services.AuthenticatedVendor{}, false
	}

	actor, err := v.ResolveVendor(c.Request.Context(), userId)
	if err != nil {
		c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
		return services.AuthenticatedVendor{}, false
	}
	return actor, true
}

func GetVendorBookings(b *services.BookingService, v *services.VendorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := resolveVendorActor(c, v)
		if !ok {
			return
		}

		offset, limit, ok := pagination(c)
		if !ok {
			return
		}

		bookings, err := b.GetVendorBookings(c.Request.Context(), actor, offset, limit, c.Query("status"))
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(bookings, ""))
	}
}

func ApproveBooking(b *services.BookingService, v *services.VendorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := resolveVendorActor(c, v)
		if !ok {
			return
		}

		bookingId, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		booking, err := b.ApproveBooking(c.Request.Context(), bookingId, actor)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Booking approved"))
	}
}

func RejectBooking(b *services.BookingService, v *services.VendorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := resolveVendorActor(c, v)
		if !ok {
			return
		}

		bookingId, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		booking, err := b.RejectBooking(c.Request.Context(), bookingId, actor)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Booking rejected"))
	}
}

func ConfirmBooking(b *services.BookingService, v *services.VendorService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := resolveVendorActor(c, v)
		if !ok {
			return
		}

		bookingId, ok := pathObjectID(c, "id")
		if !ok {
			return
		}

		booking, err := b.ConfirmBooking(c.Request.Context(), bookingId, actor)
		if err != nil {
			c.JSON(apperr.Status(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Booking confirmed"))
	}
}

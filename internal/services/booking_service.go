package services

import (
	"context"
	"fmt"
	"time"

	"github.com/festivo/api/internal/apperr"
	"github.com/festivo/api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthenticatedVendor is the caller's vendor identity, resolved once at the
// boundary from the authenticated user id. Operations trust it instead of
// re-deriving the vendor profile internally.
type AuthenticatedVendor struct {
	VendorID primitive.ObjectID
	UserID   primitive.ObjectID
}

// BookingService owns the booking state machine. Every mutation that changes
// what the vendor counters are derived from is followed by a stats update;
// the booking record itself is always written first and stays authoritative
// even when the stats write fails afterwards.
type BookingService struct {
	bookings models.BookingsRepo
	stats    *VendorStatsService
}

func NewBookingService(bookings models.BookingsRepo, stats *VendorStatsService) *BookingService {
	return &BookingService{
		bookings: bookings,
		stats:    stats,
	}
}

func (bs *BookingService) CreateBooking(ctx context.Context, userId primitive.ObjectID, req *models.BookingCreateRequest) (*models.Booking, error) {
	if req.TotalAmount <= 0 {
		return nil, apperr.Validation("total_amount must be greater than 0")
	}

	vendorId, err := primitive.ObjectIDFromHex(req.VendorID)
	if err != nil {
		return nil, apperr.Validation("invalid vendor ID")
	}

	now := time.Now().UTC()
	booking := &models.Booking{
		UserID:              userId,
		VendorID:            vendorId,
		PackageName:         req.PackageName,
		EventDate:           req.EventDate,
		EventLocation:       req.EventLocation,
		GuestCount:          req.GuestCount,
		SpecialRequirements: req.SpecialRequirements,
		TotalAmount:         req.TotalAmount,
		Status:              models.BookingStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if req.ServiceID != "" {
		serviceId, err := primitive.ObjectIDFromHex(req.ServiceID)
		if err != nil {
			return nil, apperr.Validation("invalid service ID")
		}
		booking.ServiceID = &serviceId
	}

	if err := models.Validate.Struct(booking); err != nil {
		return nil, apperr.Validation(fmt.Sprintf("invalid booking data: %v", err))
	}

	created, err := bs.bookings.CreateBooking(ctx, booking)
	if err != nil {
		return nil, err
	}

	// The booking write is durable at this point; a stats failure surfaces
	// to the caller but the recompute is idempotent and safe to retry.
	if bs.stats != nil {
		if err := bs.stats.IncrementPendingRequests(ctx, vendorId); err != nil {
			return nil, fmt.Errorf("booking created but stats update failed: %w", err)
		}
		if err := bs.stats.Recompute(ctx, vendorId); err != nil {
			return nil, fmt.Errorf("booking created but stats update failed: %w", err)
		}
	}

	return created, nil
}

func (bs *BookingService) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, err := bs.bookings.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFound("booking not found")
	}
	return booking, nil
}

func (bs *BookingService) GetUserBookings(ctx context.Context, userId primitive.ObjectID, skip, limit int) ([]*models.Booking, error) {
	if skip < 0 || limit <= 0 {
		return nil, apperr.Validation("invalid skip or limit")
	}
	return bs.bookings.GetBookingsByUser(ctx, userId, skip, limit)
}

// GetVendorBookings lists the actor's own bookings, optionally filtered by
// status.
func (bs *BookingService) GetVendorBookings(ctx context.Context, actor AuthenticatedVendor, skip, limit int, statusFilter string) ([]*models.Booking, error) {
	if skip < 0 || limit <= 0 {
		return nil, apperr.Validation("invalid skip or limit")
	}

	bookings, err := bs.bookings.GetBookingsByVendor(ctx, actor.VendorID, skip, limit)
	if err != nil {
		return nil, err
	}

	if statusFilter == "" {
		return bookings, nil
	}

	filtered := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == models.BookingStatus(statusFilter) {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// ApproveBooking moves a pending booking to approved. Revenue is recognized
// here, once, and is not reversed by a later cancellation.
func (bs *BookingService) ApproveBooking(ctx context.Context, bookingId primitive.ObjectID, actor AuthenticatedVendor) (*models.Booking, error) {
	booking, err := bs.vendorOwnedBooking(ctx, bookingId, actor)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(models.BookingStatusApproved) {
		return nil, apperr.Conflict(fmt.Sprintf("cannot approve a booking in status %q", booking.Status))
	}

	priorStatus := booking.Status
	updated, err := bs.bookings.UpdateBookingStatus(ctx, bookingId, models.BookingStatusApproved)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("booking not found")
	}

	if bs.stats != nil {
		if priorStatus == models.BookingStatusPending {
			if err := bs.stats.DecrementPendingRequests(ctx, booking.VendorID); err != nil {
				return nil, fmt.Errorf("booking approved but stats update failed: %w", err)
			}
		}
		if err := bs.stats.AddRevenue(ctx, booking.VendorID, booking.TotalAmount); err != nil {
			return nil, fmt.Errorf("booking approved but stats update failed: %w", err)
		}
		if err := bs.stats.Recompute(ctx, booking.VendorID); err != nil {
			return nil, fmt.Errorf("booking approved but stats update failed: %w", err)
		}
	}

	return updated, nil
}

// RejectBooking moves a pending booking to rejected. No revenue changes.
func (bs *BookingService) RejectBooking(ctx context.Context, bookingId primitive.ObjectID, actor AuthenticatedVendor) (*models.Booking, error) {
	booking, err := bs.vendorOwnedBooking(ctx, bookingId, actor)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(models.BookingStatusRejected) {
		return nil, apperr.Conflict(fmt.Sprintf("cannot reject a booking in status %q", booking.Status))
	}

	priorStatus := booking.Status
	updated, err := bs.bookings.UpdateBookingStatus(ctx, bookingId, models.BookingStatusRejected)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("booking not found")
	}

	if bs.stats != nil {
		if priorStatus == models.BookingStatusPending {
			if err := bs.stats.DecrementPendingRequests(ctx, booking.VendorID); err != nil {
				return nil, fmt.Errorf("booking rejected but stats update failed: %w", err)
			}
		}
		if err := bs.stats.Recompute(ctx, booking.VendorID); err != nil {
			return nil, fmt.Errorf("booking rejected but stats update failed: %w", err)
		}
	}

	return updated, nil
}

// ConfirmBooking moves an approved booking to confirmed. Revenue was already
// recognized at approval, so no stats change here.
func (bs *BookingService) ConfirmBooking(ctx context.Context, bookingId primitive.ObjectID, actor AuthenticatedVendor) (*models.Booking, error) {
	booking, err := bs.vendorOwnedBooking(ctx, bookingId, actor)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(models.BookingStatusConfirmed) {
		return nil, apperr.Conflict(fmt.Sprintf("cannot confirm a booking in status %q", booking.Status))
	}

	updated, err := bs.bookings.UpdateBookingStatus(ctx, bookingId, models.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("booking not found")
	}
	return updated, nil
}

// CancelBooking moves a non-terminal booking to cancelled. Pending counters
// and accrued revenue are deliberately left alone: revenue recognized at
// approval is final.
func (bs *BookingService) CancelBooking(ctx context.Context, bookingId primitive.ObjectID, userId primitive.ObjectID) (*models.Booking, error) {
	booking, err := bs.bookings.GetBookingByID(ctx, bookingId)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFound("booking not found")
	}
	if booking.UserID != userId {
		return nil, apperr.Forbidden("you can only cancel your own bookings")
	}
	if booking.Status.IsTerminal() {
		return nil, apperr.Conflict(fmt.Sprintf("cannot cancel a booking in status %q", booking.Status))
	}

	updated, err := bs.bookings.UpdateBookingStatus(ctx, bookingId, models.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("booking not found")
	}
	return updated, nil
}

// UpdateBooking applies a partial field update by the owning customer. It has
// no state-machine semantics and no stats side effects.
func (bs *BookingService) UpdateBooking(ctx context.Context, bookingId primitive.ObjectID, userId primitive.ObjectID, update *models.BookingUpdate) (*models.Booking, error) {
	booking, err := bs.bookings.GetBookingByID(ctx, bookingId)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFound("booking not found")
	}
	if booking.UserID != userId {
		return nil, apperr.Forbidden("you can only update your own bookings")
	}

	fields := bson.M{}
	if update.EventDate != nil {
		fields["event_date"] = *update.EventDate
	}
	if update.EventLocation != nil {
		fields["event_location"] = *update.EventLocation
	}
	if update.GuestCount != nil {
		fields["guest_count"] = *update.GuestCount
	}
	if update.SpecialRequirements != nil {
		fields["special_requirements"] = *update.SpecialRequirements
	}
	if update.Status != nil {
		fields["status"] = *update.Status
	}
	if len(fields) == 0 {
		return booking, nil
	}

	updated, err := bs.bookings.UpdateBooking(ctx, bookingId, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("booking not found")
	}
	return updated, nil
}

func (bs *BookingService) vendorOwnedBooking(ctx context.Context, bookingId primitive.ObjectID, actor AuthenticatedVendor) (*models.Booking, error) {
	booking, err := bs.bookings.GetBookingByID(ctx, bookingId)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperr.NotFound("booking not found")
	}
	if booking.VendorID != actor.VendorID {
		return nil, apperr.Forbidden("you can only manage your own bookings")
	}
	return booking, nil
}

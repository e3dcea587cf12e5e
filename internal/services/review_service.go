package services

import (
	"context"
	"time"

	"github.com/festivo/api/internal/apperr"
	"github.com/festivo/api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewService gates review creation on booking history. A review may only
// be attached to a booking the submitting user owns and that has reached a
// reviewable status; without a booking reference the user must have at least
// one qualifying booking with the vendor.
type ReviewService struct {
	reviews  models.ReviewsRepo
	bookings models.BookingsRepo
	stats    *VendorStatsService
}

func NewReviewService(reviews models.ReviewsRepo, bookings models.BookingsRepo, stats *VendorStatsService) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		bookings: bookings,
		stats:    stats,
	}
}

func (rs *ReviewService) CreateReview(ctx context.Context, userId primitive.ObjectID, req *models.ReviewCreateRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	vendorId, err := primitive.ObjectIDFromHex(req.VendorID)
	if err != nil {
		return nil, apperr.Validation("invalid vendor ID")
	}

	now := time.Now().UTC()
	review := &models.Review{
		UserID:    userId,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.BookingID != "" {
		bookingId, err := primitive.ObjectIDFromHex(req.BookingID)
		if err != nil {
			return nil, apperr.Validation("invalid booking ID")
		}

		booking, err := rs.bookings.GetBookingByID(ctx, bookingId)
		if err != nil {
			return nil, err
		}
		if booking == nil {
			return nil, apperr.NotFound("booking not found")
		}
		if booking.UserID != userId {
			return nil, apperr.Forbidden("you can only review vendors you have booked")
		}
		if !booking.Status.IsReviewable() {
			return nil, apperr.Validation("you can only review approved or completed bookings")
		}

		existing, err := rs.reviews.GetReviewByBooking(ctx, bookingId)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperr.Conflict("you have already reviewed this booking")
		}

		if booking.VendorID != vendorId {
			return nil, apperr.Validation("vendor does not match the referenced booking")
		}

		// The booking's vendor id is the source of truth, not the payload.
		review.VendorID = booking.VendorID
		review.BookingID = &bookingId
	} else {
		qualified, err := rs.hasQualifyingBooking(ctx, userId, vendorId)
		if err != nil {
			return nil, err
		}
		if !qualified {
			return nil, apperr.Forbidden("you can only review vendors you have booked")
		}
		review.VendorID = vendorId
	}

	review.Sanitize()

	created, err := rs.reviews.CreateReview(ctx, review)
	if err != nil {
		return nil, err
	}

	// Booking counters are untouched by a review; the recompute only moves
	// the vendor's rating.
	if rs.stats != nil {
		if err := rs.stats.Recompute(ctx, review.VendorID); err != nil {
			return created, err
		}
	}

	return created, nil
}

func (rs *ReviewService) GetReviewsByVendor(ctx context.Context, vendorId primitive.ObjectID, skip, limit int) ([]*models.Review, error) {
	if skip < 0 || limit <= 0 {
		return nil, apperr.Validation("invalid skip or limit")
	}
	return rs.reviews.GetReviewsByVendor(ctx, vendorId, skip, limit)
}

func (rs *ReviewService) GetReviewsByUser(ctx context.Context, userId primitive.ObjectID, skip, limit int) ([]*models.Review, error) {
	if skip < 0 || limit <= 0 {
		return nil, apperr.Validation("invalid skip or limit")
	}
	return rs.reviews.GetReviewsByUser(ctx, userId, skip, limit)
}

// DeleteReview removes a review (admin only) and refreshes the vendor's
// stats, but only once the delete is known to have happened.
func (rs *ReviewService) DeleteReview(ctx context.Context, reviewId primitive.ObjectID) error {
	review, err := rs.reviews.GetReviewByID(ctx, reviewId)
	if err != nil {
		return err
	}
	if review == nil {
		return apperr.NotFound("review not found")
	}

	deleted, err := rs.reviews.DeleteReview(ctx, reviewId)
	if err != nil {
		return err
	}

	if deleted && !review.VendorID.IsZero() && rs.stats != nil {
		return rs.stats.Recompute(ctx, review.VendorID)
	}
	return nil
}

func (rs *ReviewService) hasQualifyingBooking(ctx context.Context, userId, vendorId primitive.ObjectID) (bool, error) {
	bookings, err := rs.bookings.GetBookingsByUser(ctx, userId, 0, statsScanLimit)
	if err != nil {
		return false, err
	}
	for _, b := range bookings {
		if b.VendorID == vendorId && b.Status.IsReviewable() {
			return true, nil
		}
	}
	return false, nil
}

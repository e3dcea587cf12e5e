package services

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/festivo/api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// statsScanLimit bounds the per-vendor scan during a recompute. No vendor is
// expected to come anywhere near it.
const statsScanLimit = 10000

// VendorStatsService keeps the denormalized vendor counters (total_bookings,
// pending_requests, total_revenue, rating) in sync with the bookings and
// reviews collections. All entry points serialize on a per-vendor mutex so an
// incremental adjustment can never interleave with a full recompute for the
// same vendor.
type VendorStatsService struct {
	vendors  models.VendorsRepo
	bookings models.BookingsRepo
	reviews  models.ReviewsRepo

	mu    sync.Mutex
	locks map[primitive.ObjectID]*sync.Mutex
}

func NewVendorStatsService(vendors models.VendorsRepo, bookings models.BookingsRepo, reviews models.ReviewsRepo) *VendorStatsService {
	return &VendorStatsService{
		vendors:  vendors,
		bookings: bookings,
		reviews:  reviews,
		locks:    make(map[primitive.ObjectID]*sync.Mutex),
	}
}

func (ss *VendorStatsService) lockVendor(vendorId primitive.ObjectID) func() {
	ss.mu.Lock()
	lock, ok := ss.locks[vendorId]
	if !ok {
		lock = &sync.Mutex{}
		ss.locks[vendorId] = lock
	}
	ss.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Recompute rewrites all four counters for the vendor from the underlying
// records. It is idempotent: with no intervening mutation, running it twice
// yields identical values, so a failed run is safe to retry.
func (ss *VendorStatsService) Recompute(ctx context.Context, vendorId primitive.ObjectID) error {
	unlock := ss.lockVendor(vendorId)
	defer unlock()

	vendor, err := ss.vendors.GetVendorByID(ctx, vendorId)
	if err != nil {
		return fmt.Errorf("recompute vendor stats: %w", err)
	}
	if vendor == nil {
		return nil
	}

	bookings, err := ss.bookings.GetBookingsByVendor(ctx, vendorId, 0, statsScanLimit)
	if err != nil {
		return fmt.Errorf("recompute vendor stats: %w", err)
	}

	stats := models.VendorStats{
		TotalBookings: len(bookings),
	}
	for _, b := range bookings {
		if b.Status == models.BookingStatusPending {
			stats.PendingRequests++
		}
		if b.Status.CountsTowardRevenue() {
			stats.TotalRevenue += b.TotalAmount
		}
	}

	reviews, err := ss.reviews.GetReviewsByVendor(ctx, vendorId, 0, statsScanLimit)
	if err != nil {
		return fmt.Errorf("recompute vendor stats: %w", err)
	}

	// With zero reviews the stored rating is left as-is rather than reset.
	stats.Rating = vendor.Rating
	if len(reviews) > 0 {
		var sum float64
		for _, r := range reviews {
			sum += r.Rating
		}
		stats.Rating = roundRating(sum / float64(len(reviews)))
	}

	if err := ss.vendors.UpdateVendorStats(ctx, vendorId, stats); err != nil {
		return fmt.Errorf("recompute vendor stats: %w", err)
	}
	return nil
}

// IncrementPendingRequests bumps the pending counter without a full rescan.
func (ss *VendorStatsService) IncrementPendingRequests(ctx context.Context, vendorId primitive.ObjectID) error {
	unlock := ss.lockVendor(vendorId)
	defer unlock()

	vendor, err := ss.vendors.GetVendorByID(ctx, vendorId)
	if err != nil || vendor == nil {
		return err
	}

	_, err = ss.vendors.UpdateVendor(ctx, vendorId, bson.M{
		"pending_requests": vendor.PendingRequests + 1,
	})
	return err
}

// DecrementPendingRequests lowers the pending counter, floored at zero.
func (ss *VendorStatsService) DecrementPendingRequests(ctx context.Context, vendorId primitive.ObjectID) error {
	unlock := ss.lockVendor(vendorId)
	defer unlock()

	vendor, err := ss.vendors.GetVendorByID(ctx, vendorId)
	if err != nil || vendor == nil {
		return err
	}

	pending := vendor.PendingRequests - 1
	if pending < 0 {
		pending = 0
	}

	_, err = ss.vendors.UpdateVendor(ctx, vendorId, bson.M{
		"pending_requests": pending,
	})
	return err
}

// AddRevenue adds a booking amount to the vendor's accrued revenue.
func (ss *VendorStatsService) AddRevenue(ctx context.Context, vendorId primitive.ObjectID, amount float64) error {
	unlock := ss.lockVendor(vendorId)
	defer unlock()

	vendor, err := ss.vendors.GetVendorByID(ctx, vendorId)
	if err != nil || vendor == nil {
		return err
	}

	_, err = ss.vendors.UpdateVendor(ctx, vendorId, bson.M{
		"total_revenue": vendor.TotalRevenue + amount,
	})
	return err
}

func roundRating(rating float64) float64 {
	return math.Round(rating*10) / 10
}

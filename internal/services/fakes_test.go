package services

import (
	"context"
	"sync"
	"time"

	"github.com/festivo/api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory stand-in for the Mongo repositories so service
// behavior can be tested without a database.
type fakeStore struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking
	reviews  map[primitive.ObjectID]*models.Review
	vendors  map[primitive.ObjectID]*models.Vendor
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		bookings: make(map[primitive.ObjectID]*models.Booking),
		reviews:  make(map[primitive.ObjectID]*models.Review),
		vendors:  make(map[primitive.ObjectID]*models.Vendor),
	}
}

func (f *fakeStore) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := booking.BeforeCreate(); err != nil {
		return nil, err
	}
	clone := *booking
	f.bookings[booking.ID] = &clone
	return booking, nil
}

func (f *fakeStore) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *booking
	return &clone, nil
}

func (f *fakeStore) GetBookingsByUser(ctx context.Context, userId primitive.ObjectID, skip, limit int) ([]*models.Booking, error) {
	return f.filterBookings(func(b *models.Booking) bool { return b.UserID == userId }, skip, limit), nil
}

func (f *fakeStore) GetBookingsByVendor(ctx context.Context, vendorId primitive.ObjectID, skip, limit int) ([]*models.Booking, error) {
	return f.filterBookings(func(b *models.Booking) bool { return b.VendorID == vendorId }, skip, limit), nil
}

func (f *fakeStore) filterBookings(match func(*models.Booking) bool, skip, limit int) []*models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.Booking
	for _, b := range f.bookings {
		if match(b) {
			clone := *b
			out = append(out, &clone)
		}
	}
	if skip >= len(out) {
		return nil
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeStore) UpdateBooking(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}

	for key, value := range fields {
		switch key {
		case "status":
			booking.Status = value.(models.BookingStatus)
		case "event_date":
			booking.EventDate = value.(time.Time)
		case "event_location":
			booking.EventLocation = value.(string)
		case "guest_count":
			booking.GuestCount = value.(int)
		case "special_requirements":
			booking.SpecialRequirements = value.(string)
		}
	}
	booking.UpdatedAt = time.Now().UTC()

	clone := *booking
	return &clone, nil
}

func (f *fakeStore) UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error) {
	return f.UpdateBooking(ctx, id, bson.M{"status": status})
}

func (f *fakeStore) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := review.ValidateReview(); err != nil {
		return nil, err
	}
	if err := review.BeforeCreate(); err != nil {
		return nil, err
	}
	clone := *review
	f.reviews[review.ID] = &clone
	return review, nil
}

func (f *fakeStore) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	review, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	clone := *review
	return &clone, nil
}

func (f *fakeStore) GetReviewsByVendor(ctx context.Context, vendorId primitive.ObjectID, skip, limit int) ([]*models.Review, error) {
	return f.filterReviews(func(r *models.Review) bool { return r.VendorID == vendorId }, skip, limit), nil
}

func (f *fakeStore) GetReviewsByUser(ctx context.Context, userId primitive.ObjectID, skip, limit int) ([]*models.Review, error) {
	return f.filterReviews(func(r *models.Review) bool { return r.UserID == userId }, skip, limit), nil
}

func (f *fakeStore) filterReviews(match func(*models.Review) bool, skip, limit int) []*models.Review {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.Review
	for _, r := range f.reviews {
		if match(r) {
			clone := *r
			out = append(out, &clone)
		}
	}
	if skip >= len(out) {
		return nil
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (f *fakeStore) GetReviewByBooking(ctx context.Context, bookingId primitive.ObjectID) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.reviews {
		if r.BookingID != nil && *r.BookingID == bookingId {
			clone := *r
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) DeleteReview(ctx context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.reviews[id]; !ok {
		return false, nil
	}
	delete(f.reviews, id)
	return true, nil
}

func (f *fakeStore) CreateVendor(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := vendor.BeforeCreate(); err != nil {
		return nil, err
	}
	clone := *vendor
	f.vendors[vendor.ID] = &clone
	return vendor, nil
}

func (f *fakeStore) GetVendorByID(ctx context.Context, id primitive.ObjectID) (*models.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	vendor, ok := f.vendors[id]
	if !ok {
		return nil, nil
	}
	clone := *vendor
	return &clone, nil
}

func (f *fakeStore) GetVendorByUserID(ctx context.Context, userId primitive.ObjectID) (*models.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, v := range f.vendors {
		if v.UserID == userId {
			clone := *v
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListVendors(ctx context.Context, skip, limit int) ([]*models.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*models.Vendor
	for _, v := range f.vendors {
		if v.IsApproved && v.IsActive {
			clone := *v
			out = append(out, &clone)
		}
	}
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) UpdateVendor(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Vendor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	vendor, ok := f.vendors[id]
	if !ok {
		return nil, nil
	}

	for key, value := range fields {
		switch key {
		case "pending_requests":
			vendor.PendingRequests = value.(int)
		case "total_bookings":
			vendor.TotalBookings = value.(int)
		case "total_revenue":
			vendor.TotalRevenue = value.(float64)
		case "rating":
			vendor.Rating = value.(float64)
		case "is_approved":
			vendor.IsApproved = value.(bool)
		case "business_name":
			vendor.BusinessName = value.(string)
		case "contact_person":
			vendor.ContactPerson = value.(string)
		case "phone_number":
			vendor.PhoneNumber = value.(string)
		case "business_address":
			vendor.BusinessAddress = value.(string)
		case "description":
			vendor.Description = value.(string)
		}
	}
	vendor.UpdatedAt = time.Now().UTC()

	clone := *vendor
	return &clone, nil
}

func (f *fakeStore) UpdateVendorStats(ctx context.Context, id primitive.ObjectID, stats models.VendorStats) error {
	_, err := f.UpdateVendor(ctx, id, bson.M{
		"total_bookings":   stats.TotalBookings,
		"pending_requests": stats.PendingRequests,
		"total_revenue":    stats.TotalRevenue,
		"rating":           stats.Rating,
	})
	return err
}

func (f *fakeStore) SetVendorApproval(ctx context.Context, id primitive.ObjectID, approved bool) (*models.Vendor, error) {
	return f.UpdateVendor(ctx, id, bson.M{"is_approved": approved})
}

// seedVendor inserts an approved vendor with zeroed stats and returns it.
func (f *fakeStore) seedVendor() *models.Vendor {
	vendor := &models.Vendor{
		ID:              primitive.NewObjectID(),
		UserID:          primitive.NewObjectID(),
		BusinessName:    "Golden Hour Photography",
		ContactPerson:   "Ama Mensah",
		Email:           "hello@goldenhour.example",
		PhoneNumber:     "+233200000000",
		BusinessAddress: "12 Ring Road, Accra",
		ServiceCategory: "photographer",
		IsApproved:      true,
		IsActive:        true,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *vendor
	f.vendors[vendor.ID] = &clone
	return vendor
}

// seedBooking inserts a booking directly, bypassing the service layer.
func (f *fakeStore) seedBooking(userId, vendorId primitive.ObjectID, amount float64, status models.BookingStatus) *models.Booking {
	booking := &models.Booking{
		ID:            primitive.NewObjectID(),
		UserID:        userId,
		VendorID:      vendorId,
		EventDate:     time.Now().UTC().Add(30 * 24 * time.Hour),
		EventLocation: "Accra International Conference Centre",
		TotalAmount:   amount,
		Status:        status,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *booking
	f.bookings[booking.ID] = &clone
	return booking
}

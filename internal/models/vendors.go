package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vendor is a vendor business profile. The four stats fields are derived
// from the bookings and reviews collections and are only ever written by the
// stats recomputer; they are a cache, not a source of truth.
type Vendor struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	BusinessName    string             `bson:"business_name" json:"business_name" validate:"required"`
	ContactPerson   string             `bson:"contact_person" json:"contact_person" validate:"required"`
	Email           string             `bson:"email" json:"email" validate:"required,email"`
	PhoneNumber     string             `bson:"phone_number" json:"phone_number" validate:"required"`
	BusinessAddress string             `bson:"business_address" json:"business_address" validate:"required"`
	ServiceCategory string             `bson:"service_category" json:"service_category" validate:"required"` // photographer, caterer, venue, decorator, etc.
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Rating          float64            `bson:"rating" json:"rating"`
	TotalBookings   int                `bson:"total_bookings" json:"total_bookings"`
	PendingRequests int                `bson:"pending_requests" json:"pending_requests"`
	TotalRevenue    float64            `bson:"total_revenue" json:"total_revenue"`
	IsApproved      bool               `bson:"is_approved" json:"is_approved"`
	IsActive        bool               `bson:"is_active" json:"is_active"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

func (v *Vendor) BeforeCreate() error {
	if v.ID.IsZero() {
		v.ID = primitive.NewObjectID()
	}
	return nil
}

// VendorStats is the denormalized counter set written back by a recompute.
type VendorStats struct {
	TotalBookings   int     `bson:"total_bookings" json:"total_bookings"`
	PendingRequests int     `bson:"pending_requests" json:"pending_requests"`
	TotalRevenue    float64 `bson:"total_revenue" json:"total_revenue"`
	Rating          float64 `bson:"rating" json:"rating"`
}

type VendorCreateRequest struct {
	BusinessName    string `json:"business_name" binding:"required"`
	ContactPerson   string `json:"contact_person" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	PhoneNumber     string `json:"phone_number" binding:"required"`
	BusinessAddress string `json:"business_address" binding:"required"`
	ServiceCategory string `json:"service_category" binding:"required"`
	Description     string `json:"description,omitempty"`
}

type VendorUpdate struct {
	BusinessName    *string `json:"business_name,omitempty"`
	ContactPerson   *string `json:"contact_person,omitempty"`
	PhoneNumber     *string `json:"phone_number,omitempty"`
	BusinessAddress *string `json:"business_address,omitempty"`
	Description     *string `json:"description,omitempty"`
}

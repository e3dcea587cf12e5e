package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID  `bson:"user_id" json:"user_id"`
	VendorID  primitive.ObjectID  `bson:"vendor_id" json:"vendor_id"`
	BookingID *primitive.ObjectID `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	Rating    float64             `bson:"rating" json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string              `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at" json:"updated_at"`
}

func (r *Review) BeforeCreate() error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	return nil
}

func (r Review) ValidateReview() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	if r.UserID.IsZero() {
		return fmt.Errorf("invalid user ID")
	}

	if r.VendorID.IsZero() {
		return fmt.Errorf("invalid vendor ID")
	}

	return nil
}

func (r *Review) Sanitize() {
	r.Comment = strings.TrimSpace(r.Comment)

	// Ensure rating is within bounds
	if r.Rating < 1 {
		r.Rating = 1
	} else if r.Rating > 5 {
		r.Rating = 5
	}
}

// ReviewCreateRequest is the customer-facing payload. The user id comes from
// the authenticated caller; booking_id is optional.
type ReviewCreateRequest struct {
	VendorID  string  `json:"vendor_id" binding:"required"`
	BookingID string  `json:"booking_id,omitempty"`
	Rating    float64 `json:"rating" binding:"required"`
	Comment   string  `json:"comment,omitempty"`
}

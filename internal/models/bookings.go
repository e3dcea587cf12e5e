package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// bookingTransitions holds the allowed status edges. A booking starts in
// pending; rejected, cancelled and completed are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusApproved, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusApproved:  {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted},
	BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusCompleted},
}

func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusRejected, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CountsTowardRevenue reports whether a booking in this status contributes
// its total_amount to the vendor's accrued revenue. Revenue is recognized at
// approval and is not reversed on later cancellation.
func (s BookingStatus) CountsTowardRevenue() bool {
	switch s {
	case BookingStatusApproved, BookingStatusConfirmed, BookingStatusCompleted:
		return true
	}
	return false
}

// IsReviewable reports whether a booking in this status entitles its customer
// to review the vendor.
func (s BookingStatus) IsReviewable() bool {
	switch s {
	case BookingStatusApproved, BookingStatusConfirmed, BookingStatusCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID              primitive.ObjectID  `bson:"user_id" json:"user_id"`
	VendorID            primitive.ObjectID  `bson:"vendor_id" json:"vendor_id"`
	ServiceID           *primitive.ObjectID `bson:"service_id,omitempty" json:"service_id,omitempty"`
	PackageName         string              `bson:"package_name,omitempty" json:"package_name,omitempty"` // Basic, Standard, Premium
	EventDate           time.Time           `bson:"event_date" json:"event_date"`
	EventLocation       string              `bson:"event_location" json:"event_location"`
	GuestCount          int                 `bson:"guest_count,omitempty" json:"guest_count,omitempty"`
	SpecialRequirements string              `bson:"special_requirements,omitempty" json:"special_requirements,omitempty"`
	TotalAmount         float64             `bson:"total_amount" json:"total_amount" validate:"required,gt=0"`
	Status              BookingStatus       `bson:"status" json:"status"`
	CreatedAt           time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time           `bson:"updated_at" json:"updated_at"`
}

func (b *Booking) BeforeCreate() error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	return nil
}

// BookingCreateRequest is the customer-facing payload. The user id comes from
// the authenticated caller, never from the body.
type BookingCreateRequest struct {
	VendorID            string    `json:"vendor_id" binding:"required"`
	ServiceID           string    `json:"service_id,omitempty"`
	PackageName         string    `json:"package_name,omitempty"`
	EventDate           time.Time `json:"event_date" binding:"required"`
	EventLocation       string    `json:"event_location" binding:"required"`
	GuestCount          int       `json:"guest_count,omitempty"`
	SpecialRequirements string    `json:"special_requirements,omitempty"`
	TotalAmount         float64   `json:"total_amount" binding:"required"`
}

// BookingUpdate carries a partial update; nil fields are left untouched.
type BookingUpdate struct {
	EventDate           *time.Time     `json:"event_date,omitempty"`
	EventLocation       *string        `json:"event_location,omitempty"`
	GuestCount          *int           `json:"guest_count,omitempty"`
	SpecialRequirements *string        `json:"special_requirements,omitempty"`
	Status              *BookingStatus `json:"status,omitempty"`
}

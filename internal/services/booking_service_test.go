package services

import (
	"context"
	"testing"
	"time"

	"github.com/festivo/api/internal/apperr"
	"github.com/festivo/api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newBookingFixture() (*fakeStore, *BookingService, *VendorStatsService) {
	store := newFakeStore()
	stats := NewVendorStatsService(store, store, store)
	return store, NewBookingService(store, stats), stats
}

func createRequest(vendorId primitive.ObjectID, amount float64) *models.BookingCreateRequest {
	return &models.BookingCreateRequest{
		VendorID:      vendorId.Hex(),
		EventDate:     time.Now().UTC().Add(14 * 24 * time.Hour),
		EventLocation: "Labadi Beach Hotel",
		TotalAmount:   amount,
	}
}

func vendorActor(vendor *models.Vendor) AuthenticatedVendor {
	return AuthenticatedVendor{VendorID: vendor.ID, UserID: vendor.UserID}
}

func TestCreateBookingRejectsNonPositiveAmount(t *testing.T) {
	store, svc, _ := newBookingFixture()
	vendor := store.seedVendor()

	for _, amount := range []float64{0, -500} {
		_, err := svc.CreateBooking(context.Background(), primitive.NewObjectID(), createRequest(vendor.ID, amount))
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	}
}

func TestCreateBookingStartsPendingAndBumpsCounter(t *testing.T) {
	store, svc, _ := newBookingFixture()
	vendor := store.seedVendor()

	booking, err := svc.CreateBooking(context.Background(), primitive.NewObjectID(), createRequest(vendor.ID, 100000))
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.False(t, booking.ID.IsZero())

	got, err := store.GetVendorByID(context.Background(), vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.PendingRequests)
	assert.Equal(t, 1, got.TotalBookings)
	assert.Equal(t, float64(0), got.TotalRevenue)
}

func TestApproveBookingRecognizesRevenue(t *testing.T) {
	store, svc, _ := newBookingFixture()
	vendor := store.seedVendor()

	booking, err := svc.CreateBooking(context.Background(), primitive.NewObjectID(), createRequest(vendor.ID, 100000))
	require.NoError(t, err)

	approved, err := svc.ApproveBooking(context.Background(), booking.ID, vendorActor(vendor))
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, approved.Status)

	got, err := store.GetVendorByID(context.Background(), vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.PendingRequests)
	assert.Equal(t, float64(100000), got.TotalRevenue)
}

func TestApproveBookingChecksOwnership(t *testing.T) {
	store, svc, _ := newBookingFixture()
	vendor := store.seedVendor()
	other := store.seedVendor()

	booking, err := svc.CreateBooking(context.Background(), primitive.NewObjectID(), createRequest(vendor.ID, 50000))
	require.NoError(t, err)

	_, err = svc.ApproveBooking(context.Background(), booking.ID, vendorActor(other))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestApproveMissingBooking(t *testing.T) {
	store, svc, _ := newBookingFixture()
	vendor := store.seedVendor()

	_, err := svc.ApproveBooking(context.Background(), primitive.NewObjectID(), vendorActor(vendor))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestApproveAndRejectRequirePendingStatus(t *testing.T) {
	store, svc, _ := newBookingFixture()
	vendor := store.seedVendor()
	actor := vendorActor(vendor)

	for _, status := range []models.BookingStatus{
		models.BookingStatusApproved,
		models.BookingStatusRejected,
		models.BookingStatusConfirmed,
		models.BookingStatusCancelled,
		models.BookingStatusCompleted,
	} {
		booking := store.seedBooking(primitive.NewObjectID(), vendor.ID, 10000, status)

		_, err := svc.ApproveBooking(context.Background(), booking.ID, actor)
		require.Error(t, err, "approve from %s", status)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict), "approve from %s", status)

		_, err = svc.RejectBooking(context.Background(), booking.ID, actor)
		require.Error(t, err, "reject from %s", status)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict), "reject from %s", status)
	}
}

func TestRejectBookingLeavesRevenueAlone(t *testing.T) {
	store, svc, _ := newBookingFixture()
	vendor := store.seedVendor()

	booking, err := svc.CreateBooking(context.Background(), primitive.NewObjectID(), createRequest(vendor.ID, 50000))
	require.NoError(t, err)

	rejected, err := svc.RejectBooking(context.Background(), booking.ID, vendorActor(vendor))
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, rejected.Status)

	got, err := store.GetVendorByID(context.Background(), vendor.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.PendingRequests)
	assert.Equal(t, float64(0), got.TotalRevenue)
}

// The documented end-to-end scenario: approve one booking, reject another,
// and the counters track exactly.
func TestApproveThenRejectScenario(t *testing.T) {
	store, svc, _ := newBookingFixture()
	vendor := store.seedVendor()
	customer := primitive.NewObjectID()
	actor := vendorActor(vendor)

	first, err := svc.CreateBooking(context.Background(), customer, createRequest(vendor.ID, 100000))
	require.NoError(t, err)

	got, _ := store.GetVendorByID(context.Background(), vendor.ID)
	assert.Equal(t, 1, got.PendingRequests)

	_, err = svc.ApproveBooking(context.Background(), first.ID, actor)
	require.NoError(t, err)

	got, _ = store.GetVendorByID(context.Background(), vendor.ID)
	assert.Equal(t, 0, got.PendingRequests)
	assert.Equal(t, float64(100000), got.TotalRevenue)

	second, err := svc.CreateBooking(context.Background(), customer, createRequest(vendor.ID, 50000))
	require.NoError(t, err)

	_, err = svc.RejectBooking(context.Background(), second.ID, actor)
	require.NoError(t, err)

	got, _ = store.GetVendorByID(context.Background(), vendor.ID)
	assert.Equal(t, 0, got.PendingRequests)
	assert.Equal(t, float64(100000), got.TotalRevenue)
	assert.Equal(t, 2, got.TotalBookings)
}

func TestConfirmBookingRequiresApproved(t *testing.T) {
	store, svc, _ := newBookingFixture()
	vendor := store.seedVendor()
	actor := vendorActor(vendor)

	pending := store.seedBooking(primitive.NewObjectID(), vendor.ID, 10000, models.BookingStatusPending)
	_, err := svc.ConfirmBooking(context.Background(), pending.ID, actor)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	approved := store.seedBooking(primitive.NewObjectID(), vendor.ID, 10000, models.BookingStatusApproved)
	confirmed, err := svc.ConfirmBooking(context.Background(), approved.ID, actor)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)
}

func TestCancelBookingChecksOwnershipAndTerminalStates(t *testing.T) {
	store, svc, _ := newBookingFixture()
	vendor := store.seedVendor()
	customer := primitive.NewObjectID()

	booking := store.seedBooking(customer, vendor.ID, 10000, models.BookingStatusPending)

	_, err := svc.CancelBooking(context.Background(), booking.ID, primitive.NewObjectID())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	cancelled, err := svc.CancelBooking(context.Background(), booking.ID, customer)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)

	_, err = svc.CancelBooking(context.Background(), booking.ID, customer)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

// Cancellation deliberately leaves the counters alone; only the next full
// recompute trues them up against the records.
func TestCancelHasNoStatsSideEffects(t *testing.T) {
	store, svc, stats := newBookingFixture()
	vendor := store.seedVendor()
	customer := primitive.NewObjectID()

	booking, err := svc.CreateBooking(context.Background(), customer, createRequest(vendor.ID, 30000))
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), booking.ID, customer)
	require.NoError(t, err)

	got, _ := store.GetVendorByID(context.Background(), vendor.ID)
	assert.Equal(t, 1, got.PendingRequests, "cancel must not touch the counter")

	require.NoError(t, stats.Recompute(context.Background(), vendor.ID))
	got, _ = store.GetVendorByID(context.Background(), vendor.ID)
	assert.Equal(t, 0, got.PendingRequests)
}

func TestUpdateBookingPartialFields(t *testing.T) {
	store, svc, _ := newBookingFixture()
	vendor := store.seedVendor()
	customer := primitive.NewObjectID()

	booking := store.seedBooking(customer, vendor.ID, 10000, models.BookingStatusPending)

	newLocation := "Kempinski Hotel Gold Coast City"
	guests := 120
	updated, err := svc.UpdateBooking(context.Background(), booking.ID, customer, &models.BookingUpdate{
		EventLocation: &newLocation,
		GuestCount:    &guests,
	})
	require.NoError(t, err)
	assert.Equal(t, newLocation, updated.EventLocation)
	assert.Equal(t, guests, updated.GuestCount)
	assert.Equal(t, booking.TotalAmount, updated.TotalAmount)

	_, err = svc.UpdateBooking(context.Background(), booking.ID, primitive.NewObjectID(), &models.BookingUpdate{EventLocation: &newLocation})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestGetVendorBookingsFiltersByStatus(t *testing.T) {
	store, svc, _ := newBookingFixture()
	vendor := store.seedVendor()
	customer := primitive.NewObjectID()

	store.seedBooking(customer, vendor.ID, 10000, models.BookingStatusPending)
	store.seedBooking(customer, vendor.ID, 20000, models.BookingStatusApproved)
	store.seedBooking(customer, vendor.ID, 30000, models.BookingStatusPending)

	all, err := svc.GetVendorBookings(context.Background(), vendorActor(vendor), 0, 100, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pending, err := svc.GetVendorBookings(context.Background(), vendorActor(vendor), 0, 100, "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

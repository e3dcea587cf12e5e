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

type VendorService struct {
	vendors models.VendorsRepo
}

func NewVendorService(vendors models.VendorsRepo) *VendorService {
	return &VendorService{
		vendors: vendors,
	}
}

// RegisterVendor creates a vendor profile for the calling user. New profiles
// start unapproved with all stats counters at zero.
func (vs *VendorService) RegisterVendor(ctx context.Context, userId primitive.ObjectID, req *models.VendorCreateRequest) (*models.Vendor, error) {
	existing, err := vs.vendors.GetVendorByUserID(ctx, userId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("vendor profile already exists for this account")
	}

	now := time.Now().UTC()
	vendor := &models.Vendor{
		UserID:          userId,
		BusinessName:    req.BusinessName,
		ContactPerson:   req.ContactPerson,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		BusinessAddress: req.BusinessAddress,
		ServiceCategory: req.ServiceCategory,
		Description:     req.Description,
		IsApproved:      false,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := models.Validate.Struct(vendor); err != nil {
		return nil, apperr.Validation(fmt.Sprintf("invalid vendor data: %v", err))
	}

	return vs.vendors.CreateVendor(ctx, vendor)
}

func (vs *VendorService) GetVendorByID(ctx context.Context, id primitive.ObjectID) (*models.Vendor, error) {
	vendor, err := vs.vendors.GetVendorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperr.NotFound("vendor not found")
	}
	return vendor, nil
}

func (vs *VendorService) ListVendors(ctx context.Context, skip, limit int) ([]*models.Vendor, error) {
	if skip < 0 || limit <= 0 {
		return nil, apperr.Validation("invalid skip or limit")
	}
	return vs.vendors.ListVendors(ctx, skip, limit)
}

// ResolveVendor turns an authenticated user id into the vendor identity used
// by booking operations. Resolution happens once per request at the handler
// boundary.
func (vs *VendorService) ResolveVendor(ctx context.Context, userId primitive.ObjectID) (AuthenticatedVendor, error) {
	vendor, err := vs.vendors.GetVendorByUserID(ctx, userId)
	if err != nil {
		return AuthenticatedVendor{}, err
	}
	if vendor == nil {
		return AuthenticatedVendor{}, apperr.NotFound("vendor profile not found")
	}
	return AuthenticatedVendor{VendorID: vendor.ID, UserID: userId}, nil
}

// UpdateVendor applies a partial profile update by the owning vendor account.
func (vs *VendorService) UpdateVendor(ctx context.Context, userId primitive.ObjectID, update *models.VendorUpdate) (*models.Vendor, error) {
	vendor, err := vs.vendors.GetVendorByUserID(ctx, userId)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperr.NotFound("vendor profile not found")
	}

	fields := bson.M{}
	if update.BusinessName != nil {
		fields["business_name"] = *update.BusinessName
	}
	if update.ContactPerson != nil {
		fields["contact_person"] = *update.ContactPerson
	}
	if update.PhoneNumber != nil {
		fields["phone_number"] = *update.PhoneNumber
	}
	if update.BusinessAddress != nil {
		fields["business_address"] = *update.BusinessAddress
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if len(fields) == 0 {
		return vendor, nil
	}

	updated, err := vs.vendors.UpdateVendor(ctx, vendor.ID, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.NotFound("vendor not found")
	}
	return updated, nil
}

// SetApproval flips a vendor's marketplace approval flag (admin only).
func (vs *VendorService) SetApproval(ctx context.Context, vendorId primitive.ObjectID, approved bool) (*models.Vendor, error) {
	vendor, err := vs.vendors.SetVendorApproval(ctx, vendorId, approved)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperr.NotFound("vendor not found")
	}
	return vendor, nil
}

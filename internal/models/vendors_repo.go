package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const VendorColName = "vendors"

type VendorsRepo interface {
	CreateVendor(ctx context.Context, vendor *Vendor) (*Vendor, error)
	GetVendorByID(ctx context.Context, id primitive.ObjectID) (*Vendor, error)
	GetVendorByUserID(ctx context.Context, userId primitive.ObjectID) (*Vendor, error)
	ListVendors(ctx context.Context, skip, limit int) ([]*Vendor, error)
	UpdateVendor(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Vendor, error)
	UpdateVendorStats(ctx context.Context, id primitive.ObjectID, stats VendorStats) error
	SetVendorApproval(ctx context.Context, id primitive.ObjectID, approved bool) (*Vendor, error)
}

func (mdb *MongodbRepo) CreateVendor(ctx context.Context, vendor *Vendor) (*Vendor, error) {
	if err := vendor.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare vendor for creation: %w", err)
	}

	col, err := mdb.GetCollection(ctx, VendorColName)
	if err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	_, err = col.InsertOne(ctx, vendor)
	if err != nil {
		return nil, fmt.Errorf("failed to insert vendor into database: %w", err)
	}

	return vendor, nil
}

func (mdb *MongodbRepo) GetVendorByID(ctx context.Context, id primitive.ObjectID) (*Vendor, error) {
	return mdb.findVendor(ctx, bson.M{"_id": id})
}

func (mdb *MongodbRepo) GetVendorByUserID(ctx context.Context, userId primitive.ObjectID) (*Vendor, error) {
	return mdb.findVendor(ctx, bson.M{"user_id": userId})
}

func (mdb *MongodbRepo) findVendor(ctx context.Context, filter bson.M) (*Vendor, error) {
	col, err := mdb.GetCollection(ctx, VendorColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var vendor Vendor
	err = col.FindOne(ctx, filter).Decode(&vendor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding vendor: %v", err)
	}

	return &vendor, nil
}

func (mdb *MongodbRepo) ListVendors(ctx context.Context, skip, limit int) ([]*Vendor, error) {
	col, err := mdb.GetCollection(ctx, VendorColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	filter := bson.M{"is_approved": true, "is_active": true}
	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"rating": -1})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding vendors: %v", err)
	}
	defer cursor.Close(ctx)

	var vendors []*Vendor
	for cursor.Next(ctx) {
		var vendor Vendor
		if err := cursor.Decode(&vendor); err != nil {
			return nil, fmt.Errorf("error decoding vendor: %v", err)
		}
		vendors = append(vendors, &vendor)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return vendors, nil
}

func (mdb *MongodbRepo) UpdateVendor(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Vendor, error) {
	col, err := mdb.GetCollection(ctx, VendorColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	fields["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Vendor
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating vendor: %v", err)
	}

	return &updated, nil
}

func (mdb *MongodbRepo) UpdateVendorStats(ctx context.Context, id primitive.ObjectID, stats VendorStats) error {
	_, err := mdb.UpdateVendor(ctx, id, bson.M{
		"total_bookings":   stats.TotalBookings,
		"pending_requests": stats.PendingRequests,
		"total_revenue":    stats.TotalRevenue,
		"rating":           stats.Rating,
	})
	return err
}

func (mdb *MongodbRepo) SetVendorApproval(ctx context.Context, id primitive.ObjectID, approved bool) (*Vendor, error) {
	return mdb.UpdateVendor(ctx, id, bson.M{"is_approved": approved})
}

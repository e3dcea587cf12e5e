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

const BookingColName = "bookings"

type BookingsRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	GetBookingsByUser(ctx context.Context, userId primitive.ObjectID, skip, limit int) ([]*Booking, error)
	GetBookingsByVendor(ctx context.Context, vendorId primitive.ObjectID, skip, limit int) ([]*Booking, error)
	UpdateBooking(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status BookingStatus) (*Booking, error)
}

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	if err := booking.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare booking for creation: %w", err)
	}

	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	_, err = col.InsertOne(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to insert booking into database: %w", err)
	}

	return booking, nil
}

func (mdb *MongodbRepo) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var booking Booking
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding booking: %v", err)
	}

	return &booking, nil
}

func (mdb *MongodbRepo) GetBookingsByUser(ctx context.Context, userId primitive.ObjectID, skip, limit int) ([]*Booking, error) {
	return mdb.findBookings(ctx, bson.M{"user_id": userId}, skip, limit)
}

func (mdb *MongodbRepo) GetBookingsByVendor(ctx context.Context, vendorId primitive.ObjectID, skip, limit int) ([]*Booking, error) {
	return mdb.findBookings(ctx, bson.M{"vendor_id": vendorId}, skip, limit)
}

func (mdb *MongodbRepo) findBookings(ctx context.Context, filter bson.M, skip, limit int) ([]*Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"created_at": -1})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %v", err)
	}
	defer cursor.Close(ctx)

	var bookings []*Booking
	for cursor.Next(ctx) {
		var booking Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("error decoding booking: %v", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return bookings, nil
}

func (mdb *MongodbRepo) UpdateBooking(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Booking, error) {
	col, err := mdb.GetCollection(ctx, BookingColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	fields["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Booking
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating booking: %v", err)
	}

	return &updated, nil
}

func (mdb *MongodbRepo) UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status BookingStatus) (*Booking, error) {
	return mdb.UpdateBooking(ctx, id, bson.M{"status": status})
}

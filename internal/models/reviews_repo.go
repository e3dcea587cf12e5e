package models

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ReviewColName = "reviews"

type ReviewsRepo interface {
	CreateReview(ctx context.Context, review *Review) (*Review, error)
	GetReviewByID(ctx context.Context, id primitive.ObjectID) (*Review, error)
	GetReviewsByVendor(ctx context.Context, vendorId primitive.ObjectID, skip, limit int) ([]*Review, error)
	GetReviewsByUser(ctx context.Context, userId primitive.ObjectID, skip, limit int) ([]*Review, error)
	GetReviewByBooking(ctx context.Context, bookingId primitive.ObjectID) (*Review, error)
	DeleteReview(ctx context.Context, id primitive.ObjectID) (bool, error)
}

func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *Review) (*Review, error) {
	if err := review.ValidateReview(); err != nil {
		return nil, fmt.Errorf("invalid review data: %w", err)
	}

	if err := review.BeforeCreate(); err != nil {
		return nil, fmt.Errorf("failed to prepare review for creation: %w", err)
	}

	col, err := mdb.GetCollection(ctx, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	_, err = col.InsertOne(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("failed to insert review into database: %w", err)
	}

	return review, nil
}

func (mdb *MongodbRepo) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*Review, error) {
	col, err := mdb.GetCollection(ctx, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var review Review
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding review: %v", err)
	}

	return &review, nil
}

func (mdb *MongodbRepo) GetReviewsByVendor(ctx context.Context, vendorId primitive.ObjectID, skip, limit int) ([]*Review, error) {
	return mdb.findReviews(ctx, bson.M{"vendor_id": vendorId}, skip, limit)
}

func (mdb *MongodbRepo) GetReviewsByUser(ctx context.Context, userId primitive.ObjectID, skip, limit int) ([]*Review, error) {
	return mdb.findReviews(ctx, bson.M{"user_id": userId}, skip, limit)
}

func (mdb *MongodbRepo) findReviews(ctx context.Context, filter bson.M, skip, limit int) ([]*Review, error) {
	col, err := mdb.GetCollection(ctx, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	opts := options.Find().
		SetSkip(int64(skip)).
		SetLimit(int64(limit)).
		SetSort(bson.M{"created_at": -1})

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding reviews: %v", err)
	}
	defer cursor.Close(ctx)

	var reviews []*Review
	for cursor.Next(ctx) {
		var review Review
		if err := cursor.Decode(&review); err != nil {
			return nil, fmt.Errorf("error decoding review: %v", err)
		}
		reviews = append(reviews, &review)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return reviews, nil
}

func (mdb *MongodbRepo) GetReviewByBooking(ctx context.Context, bookingId primitive.ObjectID) (*Review, error) {
	col, err := mdb.GetCollection(ctx, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %v", err)
	}

	var review Review
	err = col.FindOne(ctx, bson.M{"booking_id": bookingId}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding review by booking: %v", err)
	}

	return &review, nil
}

func (mdb *MongodbRepo) DeleteReview(ctx context.Context, id primitive.ObjectID) (bool, error) {
	col, err := mdb.GetCollection(ctx, ReviewColName)
	if err != nil {
		return false, fmt.Errorf("error getting collection: %v", err)
	}

	result, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("error deleting review: %v", err)
	}

	return result.DeletedCount > 0, nil
}

package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"cabgo/config"
	"cabgo/database"
	"cabgo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// Insert persists a new booking document, stamping createdAt/updatedAt.
func (r *MongoBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateBookingID
		}
		return fmt.Errorf("failed to insert booking %s: %w", booking.BookingID, err)
	}
	return nil
}

// GetByBookingID retrieves a booking by its public ID. Returns (nil, nil)
// when no booking matches.
func (r *MongoBookingRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// Update replaces the booking document. The filter includes the updatedAt
// value the caller read, so a concurrent writer makes the match fail instead
// of silently losing the other update.
func (r *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	readVersion := booking.UpdatedAt
	booking.UpdatedAt = time.Now()

	filter := bson.M{"bookingId": booking.BookingID, "updatedAt": readVersion}
	update := bson.M{"$set": booking}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		booking.UpdatedAt = readVersion
		return fmt.Errorf("failed to update booking %s: %w", booking.BookingID, err)
	}
	if result.MatchedCount == 0 {
		booking.UpdatedAt = readVersion
		return ErrStaleBooking
	}
	return nil
}

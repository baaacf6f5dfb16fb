package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stayease/config"
	"stayease/database"
	"stayease/models"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	availColl   *mongo.Collection
	bookingColl *mongo.Collection
	maxAttempts int
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	return &MongoBookingRepo{
		availColl:   db.Collection("availability"),
		bookingColl: db.Collection("bookings"),
		maxAttempts: config.AppConfig.TxnMaxAttempts,
	}
}

func (repo *MongoBookingRepo) RunReservation(ctx context.Context, fn func(tx Tx) error) error {
	client := repo.bookingColl.Database().Client()
	return database.RunTxn(ctx, client, repo.maxAttempts, func(sc mongo.SessionContext) error {
		return fn(&mongoReservationTx{sc: sc, repo: repo})
	})
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"_id": bookingID}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "booked_at", Value: -1}})
	cursor, err := repo.bookingColl.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// mongoReservationTx issues every operation against the session context so it
// participates in the enclosing transaction.
type mongoReservationTx struct {
	sc   mongo.SessionContext
	repo *MongoBookingRepo
}

func (t *mongoReservationTx) GetNight(hotelID, date string) (*models.AvailabilityRecord, error) {
	var rec models.AvailabilityRecord
	err := t.repo.availColl.FindOne(t.sc, bson.M{"_id": models.NightKey(hotelID, date)}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNightNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch night %s: %w", date, err)
	}
	return &rec, nil
}

func (t *mongoReservationTx) DecrementNight(hotelID, date string) error {
	filter := bson.M{
		"_id":             models.NightKey(hotelID, date),
		"rooms_available": bson.M{"$gte": 1},
	}
	update := bson.M{"$inc": bson.M{"rooms_available": -1}}

	res, err := t.repo.availColl.UpdateOne(t.sc, filter, update)
	if err != nil {
		return fmt.Errorf("decrement night %s: %w", date, err)
	}
	if res.MatchedCount == 0 {
		return ErrNightConflict
	}
	return nil
}

func (t *mongoReservationTx) InsertBooking(booking *models.Booking) (bool, error) {
	// Read first: the transaction snapshot makes check-then-insert safe, and
	// it keeps $currentDate from touching an existing booking on collision.
	err := t.repo.bookingColl.FindOne(t.sc, bson.M{"_id": booking.ID}).Err()
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return false, fmt.Errorf("check booking id %s: %w", booking.ID, err)
	}

	update := bson.M{
		"$setOnInsert": bson.M{
			"hotel_id":    booking.HotelID,
			"hotel_name":  booking.HotelName,
			"user_id":     booking.UserID,
			"user_name":   booking.UserName,
			"user_email":  booking.UserEmail,
			"checkin":     booking.Checkin,
			"checkout":    booking.Checkout,
			"guests":      booking.Guests,
			"total_price": booking.TotalPrice,
		},
		// booked_at comes from the store's clock, not ours.
		"$currentDate": bson.M{"booked_at": true},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := t.repo.bookingColl.UpdateOne(t.sc, bson.M{"_id": booking.ID}, update, opts); err != nil {
		return false, fmt.Errorf("insert booking %s: %w", booking.ID, err)
	}
	return true, nil
}

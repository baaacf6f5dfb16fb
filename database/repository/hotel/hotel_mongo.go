package hotelRepo

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

// notDeleted excludes soft-deleted hotels from every read path.
var notDeleted = bson.M{"$ne": true}

// MongoHotelRepo implements HotelRepository using MongoDB.
type MongoHotelRepo struct {
	hotelColl   *mongo.Collection
	reviewColl  *mongo.Collection
	maxAttempts int
}

// NewMongoHotelRepo constructs a new instance of MongoHotelRepo.
func NewMongoHotelRepo() HotelRepository {
	db := database.DB()
	return &MongoHotelRepo{
		hotelColl:   db.Collection("hotels"),
		reviewColl:  db.Collection("reviews"),
		maxAttempts: config.AppConfig.TxnMaxAttempts,
	}
}

func (repo *MongoHotelRepo) Create(ctx context.Context, hotel *models.Hotel) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.hotelColl.InsertOne(ctx, hotel); err != nil {
		return fmt.Errorf("error creating hotel %s: %w", hotel.ID, err)
	}
	return nil
}

func (repo *MongoHotelRepo) GetByID(ctx context.Context, hotelID string) (*models.Hotel, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var hotel models.Hotel
	filter := bson.M{"_id": hotelID, "deleted": notDeleted}
	err := repo.hotelColl.FindOne(ctx, filter).Decode(&hotel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching hotel %s: %w", hotelID, err)
	}
	return &hotel, nil
}

func (repo *MongoHotelRepo) List(ctx context.Context) ([]models.Hotel, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := repo.hotelColl.Find(ctx, bson.M{"deleted": notDeleted}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing hotels: %w", err)
	}
	defer cursor.Close(ctx)

	var hotels []models.Hotel
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("error decoding hotels: %w", err)
	}
	return hotels, nil
}

func (repo *MongoHotelRepo) SoftDelete(ctx context.Context, hotelID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": hotelID, "deleted": notDeleted}
	res, err := repo.hotelColl.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"deleted": true}})
	if err != nil {
		return fmt.Errorf("error soft-deleting hotel %s: %w", hotelID, err)
	}
	if res.MatchedCount == 0 {
		return ErrHotelNotFound
	}
	return nil
}

func (repo *MongoHotelRepo) RunReview(ctx context.Context, fn func(tx ReviewTx) error) error {
	client := repo.hotelColl.Database().Client()
	return database.RunTxn(ctx, client, repo.maxAttempts, func(sc mongo.SessionContext) error {
		return fn(&mongoReviewTx{sc: sc, repo: repo})
	})
}

func (repo *MongoHotelRepo) ListReviews(ctx context.Context, hotelID string) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.reviewColl.Find(ctx, bson.M{"hotel_id": hotelID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching reviews for hotel %s: %w", hotelID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("error decoding reviews: %w", err)
	}
	return reviews, nil
}

type mongoReviewTx struct {
	sc   mongo.SessionContext
	repo *MongoHotelRepo
}

func (t *mongoReviewTx) GetHotel(hotelID string) (*models.Hotel, error) {
	var hotel models.Hotel
	filter := bson.M{"_id": hotelID, "deleted": notDeleted}
	err := t.repo.hotelColl.FindOne(t.sc, filter).Decode(&hotel)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch hotel %s: %w", hotelID, err)
	}
	return &hotel, nil
}

func (t *mongoReviewTx) GetReview(hotelID, userID string) (*models.Review, error) {
	var review models.Review
	err := t.repo.reviewColl.FindOne(t.sc, bson.M{"_id": models.ReviewKey(hotelID, userID)}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch review: %w", err)
	}
	return &review, nil
}

func (t *mongoReviewTx) InsertReview(review *models.Review) error {
	if _, err := t.repo.reviewColl.InsertOne(t.sc, review); err != nil {
		return fmt.Errorf("insert review %s: %w", review.ID, err)
	}
	return nil
}

func (t *mongoReviewTx) SetRating(hotelID string, rating float64, reviewCount int) error {
	update := bson.M{"$set": bson.M{"rating": rating, "review_count": reviewCount}}
	res, err := t.repo.hotelColl.UpdateOne(t.sc, bson.M{"_id": hotelID}, update)
	if err != nil {
		return fmt.Errorf("update rating for hotel %s: %w", hotelID, err)
	}
	if res.MatchedCount == 0 {
		return ErrHotelNotFound
	}
	return nil
}

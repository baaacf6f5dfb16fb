package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stayease/config"
	"stayease/database"
	"stayease/models"
)

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll        *mongo.Collection
	maxAttempts int
}

// NewMongoAvailabilityRepo constructs a new instance of MongoAvailabilityRepo.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	return &MongoAvailabilityRepo{
		coll:        database.DB().Collection("availability"),
		maxAttempts: config.AppConfig.TxnMaxAttempts,
	}
}

func (repo *MongoAvailabilityRepo) SetRange(ctx context.Context, records []models.AvailabilityRecord) error {
	if len(records) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	writes := make([]mongo.WriteModel, len(records))
	for i, rec := range records {
		writes[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": rec.ID}).
			SetReplacement(rec).
			SetUpsert(true)
	}

	// The bulk write runs inside a transaction so a mid-batch failure (for
	// example a permission denial) leaves no night modified.
	client := repo.coll.Database().Client()
	err := database.RunTxn(ctx, client, repo.maxAttempts, func(sc mongo.SessionContext) error {
		if _, err := repo.coll.BulkWrite(sc, writes, options.BulkWrite().SetOrdered(true)); err != nil {
			return fmt.Errorf("bulk write availability: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("set availability range: %w", err)
	}
	return nil
}

func (repo *MongoAvailabilityRepo) GetRange(ctx context.Context, hotelID, startDate, endDate string) ([]models.AvailabilityRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Dates are fixed-width "YYYY-MM-DD" strings, so the store's lexicographic
	// comparison matches chronological order.
	filter := bson.M{
		"hotel_id": hotelID,
		"date":     bson.M{"$gte": startDate, "$lte": endDate},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching availability for hotel %s: %w", hotelID, err)
	}
	defer cursor.Close(ctx)

	var records []models.AvailabilityRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("error decoding availability records: %w", err)
	}
	return records, nil
}

package userRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stayease/database"
	"stayease/models"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new instance of MongoUserRepo.
func NewMongoUserRepo() UserRepository {
	return &MongoUserRepo{coll: database.DB().Collection("users")}
}

func (repo *MongoUserRepo) Upsert(ctx context.Context, user *models.User) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"name": user.Name, "email": user.Email}}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.coll.UpdateOne(ctx, bson.M{"_id": user.ID}, update, opts); err != nil {
		return fmt.Errorf("error upserting user %s: %w", user.ID, err)
	}
	return nil
}

func (repo *MongoUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := repo.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		return nil, fmt.Errorf("error fetching user %s: %w", userID, err)
	}
	return &user, nil
}

func (repo *MongoUserRepo) AddFavorite(ctx context.Context, userID, hotelID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$addToSet": bson.M{"favorites": hotelID}}
	if _, err := repo.coll.UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
		return fmt.Errorf("error adding favorite for user %s: %w", userID, err)
	}
	return nil
}

func (repo *MongoUserRepo) RemoveFavorite(ctx context.Context, userID, hotelID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$pull": bson.M{"favorites": hotelID}}
	if _, err := repo.coll.UpdateOne(ctx, bson.M{"_id": userID}, update); err != nil {
		return fmt.Errorf("error removing favorite for user %s: %w", userID, err)
	}
	return nil
}

func (repo *MongoUserRepo) RemoveFavoriteFromAll(ctx context.Context, hotelID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	filter := bson.M{"favorites": hotelID}
	update := bson.M{"$pull": bson.M{"favorites": hotelID}}
	res, err := repo.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error pruning favorites for hotel %s: %w", hotelID, err)
	}
	return res.ModifiedCount, nil
}

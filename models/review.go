package models

import "time"

// Review is a single user's rating of a hotel. The document key is
// "<hotelID>:<userID>" so the one-review-per-user rule can be checked by a
// point read inside the same transaction that writes the review.
type Review struct {
	ID        string    `bson:"_id" json:"id"`
	HotelID   string    `bson:"hotel_id" json:"hotelId"`
	UserID    string    `bson:"user_id" json:"userId"`
	UserName  string    `bson:"user_name" json:"userName"`
	Rating    int       `bson:"rating" json:"rating"` // 1..5
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// ReviewKey builds the deterministic review document key.
func ReviewKey(hotelID, userID string) string {
	return hotelID + ":" + userID
}

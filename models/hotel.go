package models

import "time"

// Hotel holds the listing document. Rating and ReviewCount are maintained
// exclusively by the review workflow once any review exists; BasePrice is the
// default display price and is distinct from the per-night ledger override.
type Hotel struct {
	ID          string   `bson:"_id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	City        string   `bson:"city" json:"city"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Amenities   []string `bson:"amenities" json:"amenities"`
	BasePrice   float64  `bson:"base_price" json:"basePrice"`
	Rating      float64  `bson:"rating" json:"rating"`
	ReviewCount int      `bson:"review_count" json:"reviewCount"`
	Deleted     bool     `bson:"deleted,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

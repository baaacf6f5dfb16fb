package models

import "time"

// Booking represents a confirmed stay. It is created exactly once by the
// reservation engine and never mutated afterwards.
type Booking struct {
	ID         string    `bson:"_id" json:"id"`                 // Short shareable code, e.g. "StyA4F9"
	HotelID    string    `bson:"hotel_id" json:"hotelId"`       // Hotel that was booked
	HotelName  string    `bson:"hotel_name" json:"hotelName"`   // Denormalized snapshot at booking time
	UserID     string    `bson:"user_id" json:"userId"`         // Opaque identity-provider ID
	UserName   string    `bson:"user_name" json:"userName"`     // Denormalized snapshot
	UserEmail  string    `bson:"user_email" json:"userEmail"`   // Denormalized snapshot
	Checkin    string    `bson:"checkin" json:"checkin"`        // First night, "YYYY-MM-DD"
	Checkout   string    `bson:"checkout" json:"checkout"`      // Day of departure, exclusive
	Guests     int       `bson:"guests" json:"guests"`          // Number of guests, at least 1
	TotalPrice float64   `bson:"total_price" json:"totalPrice"` // Sum of per-night prices at booking time
	BookedAt   time.Time `bson:"booked_at" json:"bookedAt"`     // Server-assigned commit timestamp
}

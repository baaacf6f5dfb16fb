package models

// AvailabilityRecord is the sole source of truth for whether a single hotel
// night is sellable, and at what price. One document exists per (hotel, date);
// a missing document means the night was never configured and cannot be booked.
type AvailabilityRecord struct {
	ID             string  `bson:"_id" json:"-"`
	HotelID        string  `bson:"hotel_id" json:"hotelId"`
	Date           string  `bson:"date" json:"date"`
	Price          float64 `bson:"price" json:"price"`
	RoomsAvailable int     `bson:"rooms_available" json:"roomsAvailable"`
}

// NightKey builds the deterministic document key for a hotel night.
func NightKey(hotelID, date string) string {
	return hotelID + ":" + date
}

package models

// User mirrors the identity-provider account with the small amount of
// application state we keep alongside it. The ID is the provider's opaque uid.
type User struct {
	ID        string   `bson:"_id" json:"id"`
	Name      string   `bson:"name" json:"name"`
	Email     string   `bson:"email" json:"email"`
	Favorites []string `bson:"favorites,omitempty" json:"favorites,omitempty"` // Hotel IDs
}

package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a stored user document. PasswordHash is a bcrypt hash; this demo
// server gives every user the same fixed password (see graph.DemoPassword).
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Username      string             `bson:"username"`
	FavoriteGenre string             `bson:"favoriteGenre"`
	PasswordHash  []byte             `bson:"passwordHash"`
}

func (u User) Validate() error {
	if u.Username == "" {
		return ErrValidation("User validation failed: username is required")
	}
	if u.FavoriteGenre == "" {
		return ErrValidation("User validation failed: favoriteGenre is required")
	}
	return nil
}

package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author is a stored author document. Born stays nil until set by editAuthor.
// The author's book count is not stored here - it is derived by counting book
// documents referencing the author's id.
type Author struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
	Born *int               `bson:"born"`
}

func (a Author) Validate() error {
	if a.Name == "" {
		return ErrValidation("Author validation failed: name is required")
	}
	return nil
}

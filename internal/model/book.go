package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book is a stored book document. The author field holds a reference to an
// Author document and never changes once set.
type Book struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Published int                `bson:"published"`
	AuthorID  primitive.ObjectID `bson:"author"`
	Genres    []string           `bson:"genres"`
}

func (b Book) Validate() error {
	if b.Title == "" {
		return ErrValidation("Book validation failed: title is required")
	}
	if b.Published == 0 {
		return ErrValidation("Book validation failed: published is required")
	}
	if b.AuthorID.IsZero() {
		return ErrValidation("Book validation failed: author is required")
	}
	return nil
}

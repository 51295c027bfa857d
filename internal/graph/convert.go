package graph

import (
	"context"

	"github.com/andrewwphillips/eggql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"libraryql/internal/model"
)

func eggID(id primitive.ObjectID) eggql.ID {
	return eggql.ID(id.Hex())
}

// book converts a stored book, resolving its author reference once. Callers
// that already hold the author (addBook) build the Book directly instead.
func (r *Resolver) book(ctx context.Context, b model.Book) (Book, error) {
	a, err := r.store.AuthorByID(ctx, b.AuthorID)
	if err != nil {
		return Book{}, err
	}
	return Book{
		ID:        eggID(b.ID),
		Title:     b.Title,
		Published: b.Published,
		Author:    r.author(a),
		Genres:    b.Genres,
	}, nil
}

// author converts a stored author. Name, id and born come straight from the
// loaded document; only bookCount costs a query, and only when selected.
func (r *Resolver) author(a model.Author) Author {
	id := a.ID
	return Author{
		ID:   eggID(a.ID),
		Name: a.Name,
		Born: a.Born,
		BookCount: func(ctx context.Context) (int, error) {
			return r.store.CountBooksByAuthor(ctx, id)
		},
	}
}

func user(u model.User) User {
	return User{
		Username:      u.Username,
		FavoriteGenre: u.FavoriteGenre,
		ID:            eggID(u.ID),
	}
}

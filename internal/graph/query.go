package graph

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"libraryql/internal/auth"
	"libraryql/internal/repository"
)

func (r *Resolver) bookCount(ctx context.Context) (int, error) {
	return r.store.CountBooks(ctx)
}

func (r *Resolver) authorCount(ctx context.Context) (int, error) {
	return r.store.CountAuthors(ctx)
}

// allBooks returns all books, optionally filtered by author name and/or exact
// genre membership. An empty argument means no filter; a name that matches no
// author matches no books.
func (r *Resolver) allBooks(ctx context.Context, author, genre string) ([]Book, error) {
	var authorID *primitive.ObjectID
	if author != "" {
		a, err := r.store.AuthorByName(ctx, author)
		if errors.Is(err, repository.ErrNotFound) {
			return []Book{}, nil
		}
		if err != nil {
			return nil, err
		}
		authorID = &a.ID
	}

	books, err := r.store.Books(ctx, authorID, genre)
	if err != nil {
		return nil, err
	}
	out := make([]Book, 0, len(books))
	for _, b := range books {
		gb, err := r.book(ctx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, gb)
	}
	return out, nil
}

func (r *Resolver) allAuthors(ctx context.Context) ([]Author, error) {
	authors, err := r.store.AllAuthors(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Author, 0, len(authors))
	for _, a := range authors {
		out = append(out, r.author(a))
	}
	return out, nil
}

// me returns the current user, or null when the request is anonymous.
func (r *Resolver) me(ctx context.Context) (*User, error) {
	u, ok := auth.FromContext(ctx)
	if !ok {
		return nil, nil
	}
	gu := user(u)
	return &gu, nil
}

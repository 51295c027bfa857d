// Package repository holds the document store behind the GraphQL resolvers.
// The production implementation is Mongo; Memory carries the same semantics
// for tests.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"libraryql/internal/model"
)

// Store is the persistence surface the resolver layer needs.
type Store interface {
	CountBooks(ctx context.Context) (int, error)
	CountAuthors(ctx context.Context) (int, error)

	// Books returns books matching the given filters. A nil authorID and an
	// empty genre each mean "no filter"; both set means both must match.
	Books(ctx context.Context, authorID *primitive.ObjectID, genre string) ([]model.Book, error)
	InsertBook(ctx context.Context, b model.Book) (model.Book, error)
	CountBooksByAuthor(ctx context.Context, id primitive.ObjectID) (int, error)

	AllAuthors(ctx context.Context) ([]model.Author, error)
	AuthorByName(ctx context.Context, name string) (model.Author, error)
	AuthorByID(ctx context.Context, id primitive.ObjectID) (model.Author, error)
	// EnsureAuthor returns the author with the given name, creating it (with
	// a null birth year) if it does not exist yet. The upsert is atomic, so
	// concurrent calls for a new name yield a single author document.
	EnsureAuthor(ctx context.Context, name string) (model.Author, error)
	SetAuthorBorn(ctx context.Context, name string, born int) (model.Author, error)

	InsertUser(ctx context.Context, u model.User) (model.User, error)
	UserByUsername(ctx context.Context, username string) (model.User, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (model.User, error)
}

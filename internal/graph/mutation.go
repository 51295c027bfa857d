package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"

	"libraryql/internal/auth"
	"libraryql/internal/model"
	"libraryql/internal/repository"
)

// DemoPassword is the single password accepted for every user. This server
// exists to demonstrate the GraphQL surface, not credential handling.
const DemoPassword = "secret"

// addBook stores a new book for the authenticated user, creating the author
// on first mention. The bookAdded event is published only after the insert
// has succeeded, so subscribers never see an unsaved record.
func (r *Resolver) addBook(ctx context.Context, title, author string, published int, genres []string) (Book, error) {
	if _, ok := auth.FromContext(ctx); !ok {
		return Book{}, ErrNotAuthenticated
	}

	a, err := r.store.EnsureAuthor(ctx, author)
	if err != nil {
		return Book{}, fmt.Errorf("saving author failed: %w", err)
	}

	b, err := r.store.InsertBook(ctx, model.Book{
		Title:     title,
		Published: published,
		AuthorID:  a.ID,
		Genres:    lo.Uniq(genres), // genres form a set; keep first-seen order
	})
	if err != nil {
		return Book{}, fmt.Errorf("saving book failed: %w", err)
	}

	added := Book{
		ID:        eggID(b.ID),
		Title:     b.Title,
		Published: b.Published,
		Author:    r.author(a),
		Genres:    b.Genres,
	}
	r.bus.Publish(added)
	return added, nil
}

func (r *Resolver) editAuthor(ctx context.Context, name string, setBornTo int) (Author, error) {
	if _, ok := auth.FromContext(ctx); !ok {
		return Author{}, ErrNotAuthenticated
	}

	a, err := r.store.SetAuthorBorn(ctx, name, setBornTo)
	if errors.Is(err, repository.ErrNotFound) {
		return Author{}, ErrAuthorNotFound
	}
	if err != nil {
		return Author{}, fmt.Errorf("saving author failed: %w", err)
	}
	return r.author(a), nil
}

// createUser needs no authentication and performs no username uniqueness
// check, matching the open sign-up of the API.
func (r *Resolver) createUser(ctx context.Context, username, favoriteGenre string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	u, err := r.store.InsertUser(ctx, model.User{
		Username:      username,
		FavoriteGenre: favoriteGenre,
		PasswordHash:  hash,
	})
	if err != nil {
		return User{}, fmt.Errorf("creating the user failed: %w", err)
	}
	return user(u), nil
}

func (r *Resolver) login(ctx context.Context, username, password string) (Token, error) {
	u, err := r.store.UserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return Token{}, ErrWrongCredentials // same error as a bad password
	}
	if err != nil {
		return Token{}, err
	}

	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return Token{}, ErrWrongCredentials
	}

	value, err := r.tokens.Issue(u)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: value}, nil
}

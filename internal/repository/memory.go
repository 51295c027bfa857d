package repository

import (
	"context"
	"sync"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"libraryql/internal/model"
)

// Memory is an in-memory Store used by tests. It keeps insertion order and
// mirrors the filter and upsert semantics of the Mongo implementation.
type Memory struct {
	mu      sync.Mutex
	books   []model.Book
	authors []model.Author
	users   []model.User
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) CountBooks(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.books), nil
}

func (m *Memory) CountAuthors(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.authors), nil
}

func (m *Memory) Books(ctx context.Context, authorID *primitive.ObjectID, genre string) ([]model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.Filter(m.books, func(b model.Book, _ int) bool {
		if authorID != nil && b.AuthorID != *authorID {
			return false
		}
		if genre != "" && !lo.Contains(b.Genres, genre) {
			return false
		}
		return true
	}), nil
}

func (m *Memory) InsertBook(ctx context.Context, b model.Book) (model.Book, error) {
	if err := b.Validate(); err != nil {
		return model.Book{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = primitive.NewObjectID()
	m.books = append(m.books, b)
	return b, nil
}

func (m *Memory) CountBooksByAuthor(ctx context.Context, id primitive.ObjectID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return lo.CountBy(m.books, func(b model.Book) bool { return b.AuthorID == id }), nil
}

func (m *Memory) AllAuthors(ctx context.Context) ([]model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Author, len(m.authors))
	copy(out, m.authors)
	return out, nil
}

func (m *Memory) AuthorByName(ctx context.Context, name string) (model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.authors {
		if a.Name == name {
			return a, nil
		}
	}
	return model.Author{}, ErrNotFound
}

func (m *Memory) AuthorByID(ctx context.Context, id primitive.ObjectID) (model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.authors {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Author{}, ErrNotFound
}

func (m *Memory) EnsureAuthor(ctx context.Context, name string) (model.Author, error) {
	if err := (model.Author{Name: name}).Validate(); err != nil {
		return model.Author{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.authors {
		if a.Name == name {
			return a, nil
		}
	}
	a := model.Author{ID: primitive.NewObjectID(), Name: name}
	m.authors = append(m.authors, a)
	return a, nil
}

func (m *Memory) SetAuthorBorn(ctx context.Context, name string, born int) (model.Author, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.authors {
		if a.Name == name {
			b := born
			m.authors[i].Born = &b
			return m.authors[i], nil
		}
	}
	return model.Author{}, ErrNotFound
}

func (m *Memory) InsertUser(ctx context.Context, u model.User) (model.User, error) {
	if err := u.Validate(); err != nil {
		return model.User{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = primitive.NewObjectID()
	m.users = append(m.users, u)
	return u, nil
}

func (m *Memory) UserByUsername(ctx context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (m *Memory) UserByID(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryql/internal/model"
	"libraryql/internal/repository"
)

func TestEnsureAuthorIdempotent(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()

	first, err := store.EnsureAuthor(ctx, "Robert Martin")
	require.NoError(t, err)
	second, err := store.EnsureAuthor(ctx, "Robert Martin")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	n, err := store.CountAuthors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBooksFilter(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()

	martin, err := store.EnsureAuthor(ctx, "Robert Martin")
	require.NoError(t, err)
	kivy, err := store.EnsureAuthor(ctx, "Joel Kivy")
	require.NoError(t, err)

	for _, b := range []model.Book{
		{Title: "Clean Code", Published: 2008, AuthorID: martin.ID, Genres: []string{"refactoring"}},
		{Title: "Agile software development", Published: 2002, AuthorID: martin.ID, Genres: []string{"agile", "design"}},
		{Title: "Pimeyden tango", Published: 1997, AuthorID: kivy.ID, Genres: []string{"classic", "design"}},
	} {
		_, err := store.InsertBook(ctx, b)
		require.NoError(t, err)
	}

	all, err := store.Books(ctx, nil, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byAuthor, err := store.Books(ctx, &martin.ID, "")
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)

	byGenre, err := store.Books(ctx, nil, "design")
	require.NoError(t, err)
	assert.Len(t, byGenre, 2)

	both, err := store.Books(ctx, &martin.ID, "design")
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Agile software development", both[0].Title)

	n, err := store.CountBooksByAuthor(ctx, martin.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestInsertValidates(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()

	a, err := store.EnsureAuthor(ctx, "Robert Martin")
	require.NoError(t, err)

	_, err = store.InsertBook(ctx, model.Book{Published: 2008, AuthorID: a.ID})
	assert.ErrorContains(t, err, "title is required")

	_, err = store.InsertUser(ctx, model.User{Username: "alice"})
	assert.ErrorContains(t, err, "favoriteGenre is required")

	_, err = store.EnsureAuthor(ctx, "")
	assert.ErrorContains(t, err, "name is required")
}

func TestSetAuthorBorn(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()

	_, err := store.EnsureAuthor(ctx, "Robert Martin")
	require.NoError(t, err)

	a, err := store.SetAuthorBorn(ctx, "Robert Martin", 1952)
	require.NoError(t, err)
	require.NotNil(t, a.Born)
	assert.Equal(t, 1952, *a.Born)

	_, err = store.SetAuthorBorn(ctx, "Nobody", 1900)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

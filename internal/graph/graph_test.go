package graph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryql/internal/auth"
	"libraryql/internal/graph"
	"libraryql/internal/pubsub"
	"libraryql/internal/repository"
)

type fixture struct {
	query        graph.Query
	mutation     graph.Mutation
	subscription graph.Subscription
	store        *repository.Memory
	bus          *pubsub.Broadcaster[graph.Book]
	tokens       *auth.Tokens
}

func newFixture() *fixture {
	f := &fixture{
		store:  repository.NewMemory(),
		bus:    pubsub.New[graph.Book](),
		tokens: auth.NewTokens("test-secret"),
	}
	f.query, f.mutation, f.subscription = graph.New(f.store, f.bus, f.tokens)
	return f
}

// login creates a user and returns a context authenticated as that user.
func (f *fixture) login(t *testing.T, username string) context.Context {
	t.Helper()
	_, err := f.mutation.CreateUser(context.Background(), username, "sf")
	require.NoError(t, err)
	u, err := f.store.UserByUsername(context.Background(), username)
	require.NoError(t, err)
	return auth.WithUser(context.Background(), u)
}

func (f *fixture) addBook(t *testing.T, ctx context.Context, title, author string, published int, genres ...string) graph.Book {
	t.Helper()
	b, err := f.mutation.AddBook(ctx, title, author, published, genres)
	require.NoError(t, err)
	return b
}

func TestCounts(t *testing.T) {
	f := newFixture()
	ctx := f.login(t, "alice")

	f.addBook(t, ctx, "Clean Code", "Robert Martin", 2008, "refactoring")
	f.addBook(t, ctx, "Refactoring, edition 2", "Martin Fowler", 2018, "refactoring")
	f.addBook(t, ctx, "Agile software development", "Robert Martin", 2002, "agile")

	books, err := f.query.BookCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, books)

	authors, err := f.query.AuthorCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, authors)
}

func TestAllBooksFilters(t *testing.T) {
	f := newFixture()
	ctx := f.login(t, "alice")

	f.addBook(t, ctx, "Clean Code", "Robert Martin", 2008, "refactoring")
	f.addBook(t, ctx, "Agile software development", "Robert Martin", 2002, "agile", "design")
	f.addBook(t, ctx, "Pimeyden tango", "Reijo Mäki", 1997, "classic", "design")

	tests := map[string]struct {
		author, genre string
		wantTitles    []string
	}{
		"none":           {wantTitles: []string{"Clean Code", "Agile software development", "Pimeyden tango"}},
		"author":         {author: "Robert Martin", wantTitles: []string{"Clean Code", "Agile software development"}},
		"genre":          {genre: "design", wantTitles: []string{"Agile software development", "Pimeyden tango"}},
		"both":           {author: "Robert Martin", genre: "design", wantTitles: []string{"Agile software development"}},
		"genre_miss":     {genre: "horror", wantTitles: []string{}},
		"unknown_author": {author: "Nobody", wantTitles: []string{}},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			books, err := f.query.AllBooks(ctx, test.author, test.genre)
			require.NoError(t, err)
			titles := make([]string, 0, len(books))
			for _, b := range books {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, test.wantTitles, titles)
		})
	}
}

func TestAllBooksResolvesAuthor(t *testing.T) {
	f := newFixture()
	ctx := f.login(t, "alice")
	f.addBook(t, ctx, "Clean Code", "Robert Martin", 2008, "refactoring")

	books, err := f.query.AllBooks(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Robert Martin", books[0].Author.Name)
	assert.NotEmpty(t, books[0].Author.ID)
}

func TestAddBookCreatesAuthorOnce(t *testing.T) {
	f := newFixture()
	ctx := f.login(t, "alice")

	first := f.addBook(t, ctx, "Clean Code", "Robert Martin", 2008, "refactoring")
	second := f.addBook(t, ctx, "Agile software development", "Robert Martin", 2002, "agile")

	n, err := f.query.AuthorCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, first.Author.ID, second.Author.ID)
	assert.Nil(t, first.Author.Born) // implicitly created authors have no birth year
}

func TestAuthorBookCountRecomputed(t *testing.T) {
	f := newFixture()
	ctx := f.login(t, "alice")

	f.addBook(t, ctx, "Clean Code", "Robert Martin", 2008, "refactoring")

	authors, err := f.query.AllAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 1)

	n, err := authors[0].BookCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// same Author value must see the new book on the next resolution
	f.addBook(t, ctx, "Agile software development", "Robert Martin", 2002, "agile")
	n, err = authors[0].BookCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestAddBookDedupsGenres(t *testing.T) {
	f := newFixture()
	ctx := f.login(t, "alice")

	b := f.addBook(t, ctx, "Clean Code", "Robert Martin", 2008, "refactoring", "agile", "refactoring")
	assert.Equal(t, []string{"refactoring", "agile"}, b.Genres)
}

func TestMutationsRequireAuth(t *testing.T) {
	f := newFixture()
	anon := context.Background()

	_, err := f.mutation.AddBook(anon, "Clean Code", "Robert Martin", 2008, nil)
	assert.ErrorIs(t, err, graph.ErrNotAuthenticated)

	_, err = f.mutation.EditAuthor(anon, "Robert Martin", 1952)
	assert.ErrorIs(t, err, graph.ErrNotAuthenticated)

	// createUser is open by design
	u, err := f.mutation.CreateUser(anon, "bob", "crime")
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)
}

func TestAddBookValidation(t *testing.T) {
	f := newFixture()
	ctx := f.login(t, "alice")

	_, err := f.mutation.AddBook(ctx, "", "Robert Martin", 2008, nil)
	assert.ErrorContains(t, err, "title is required")
}

func TestEditAuthor(t *testing.T) {
	f := newFixture()
	ctx := f.login(t, "alice")
	f.addBook(t, ctx, "Clean Code", "Robert Martin", 2008, "refactoring")

	a, err := f.mutation.EditAuthor(ctx, "Robert Martin", 1952)
	require.NoError(t, err)
	require.NotNil(t, a.Born)
	assert.Equal(t, 1952, *a.Born)

	_, err = f.mutation.EditAuthor(ctx, "Nobody", 1900)
	assert.ErrorIs(t, err, graph.ErrAuthorNotFound)
}

func TestLogin(t *testing.T) {
	f := newFixture()
	_, err := f.mutation.CreateUser(context.Background(), "alice", "sf")
	require.NoError(t, err)

	token, err := f.mutation.Login(context.Background(), "alice", graph.DemoPassword)
	require.NoError(t, err)

	// the token must decode back to alice's id
	id, err := f.tokens.UserID(token.Value)
	require.NoError(t, err)
	alice, err := f.store.UserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, id)

	// wrong password and unknown user fail with the same error
	_, badPass := f.mutation.Login(context.Background(), "alice", "wrong")
	_, badUser := f.mutation.Login(context.Background(), "ghost", graph.DemoPassword)
	assert.ErrorIs(t, badPass, graph.ErrWrongCredentials)
	assert.ErrorIs(t, badUser, graph.ErrWrongCredentials)
	assert.Equal(t, badPass.Error(), badUser.Error())
}

func TestMe(t *testing.T) {
	f := newFixture()

	me, err := f.query.Me(context.Background())
	require.NoError(t, err)
	assert.Nil(t, me)

	ctx := f.login(t, "alice")
	me, err = f.query.Me(ctx)
	require.NoError(t, err)
	require.NotNil(t, me)
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, "sf", me.FavoriteGenre)
}

func TestBookAddedSubscription(t *testing.T) {
	f := newFixture()
	ctx := f.login(t, "alice")

	subCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := f.subscription.BookAdded(subCtx)

	f.addBook(t, ctx, "Clean Code", "Robert Martin", 2008, "refactoring")

	got := <-ch
	assert.Equal(t, "Clean Code", got.Title)
	assert.Equal(t, "Robert Martin", got.Author.Name)
	assert.NotEmpty(t, got.ID) // published after persistence, id already assigned
	assert.Empty(t, ch)

	// a subscriber arriving after the event sees nothing
	late := f.subscription.BookAdded(subCtx)
	assert.Empty(t, late)
}

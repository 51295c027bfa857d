// Package graph defines the GraphQL schema as Go structs (the egg: tags and
// field types generate the schema) and implements the resolvers over an
// injected Store and event Broadcaster.
package graph

import (
	"context"

	"github.com/andrewwphillips/eggql"

	"libraryql/internal/auth"
	"libraryql/internal/pubsub"
	"libraryql/internal/repository"
)

type (
	// Book implements: type Book { id: ID! title: String! published: Int! author: Author! genres: [String!]! }
	Book struct {
		ID        eggql.ID `egg:"id"`
		Title     string
		Published int
		Author    Author
		Genres    []string
	}

	// Author implements: type Author { id: ID! name: String! born: Int bookCount: Int! }
	// bookCount is derived - it is counted from the book collection on every
	// read so it can never go stale.
	Author struct {
		ID        eggql.ID `egg:"id"`
		Name      string
		Born      *int
		BookCount func(ctx context.Context) (int, error)
	}

	// User implements: type User { username: String! favoriteGenre: String! id: ID! }
	User struct {
		Username      string
		FavoriteGenre string
		ID            eggql.ID `egg:"id"`
	}

	// Token implements: type Token { value: String! }
	Token struct {
		Value string
	}

	Query struct {
		BookCount   func(ctx context.Context) (int, error)
		AuthorCount func(ctx context.Context) (int, error)
		AllBooks    func(ctx context.Context, author, genre string) ([]Book, error) `egg:"allBooks(author=\"\",genre=\"\")"`
		AllAuthors  func(ctx context.Context) ([]Author, error)
		Me          func(ctx context.Context) (*User, error)
	}

	Mutation struct {
		AddBook    func(ctx context.Context, title, author string, published int, genres []string) (Book, error) `egg:"addBook(title,author,published,genres)"`
		EditAuthor func(ctx context.Context, name string, setBornTo int) (Author, error)                         `egg:"editAuthor(name,setBornTo)"`
		CreateUser func(ctx context.Context, username, favoriteGenre string) (User, error)                       `egg:"createUser(username,favoriteGenre)"`
		Login      func(ctx context.Context, username, password string) (Token, error)                           `egg:"login(username,password)"`
	}

	Subscription struct {
		BookAdded func(ctx context.Context) <-chan Book
	}
)

// Resolver carries the dependencies shared by all resolvers.
type Resolver struct {
	store  repository.Store
	bus    *pubsub.Broadcaster[Book]
	tokens *auth.Tokens
}

// New builds the root query, mutation, and subscription objects. Pass all
// three to eggql.MustRun to obtain the HTTP handler.
func New(store repository.Store, bus *pubsub.Broadcaster[Book], tokens *auth.Tokens) (Query, Mutation, Subscription) {
	r := &Resolver{store: store, bus: bus, tokens: tokens}
	return Query{
			BookCount:   r.bookCount,
			AuthorCount: r.authorCount,
			AllBooks:    r.allBooks,
			AllAuthors:  r.allAuthors,
			Me:          r.me,
		},
		Mutation{
			AddBook:    r.addBook,
			EditAuthor: r.editAuthor,
			CreateUser: r.createUser,
			Login:      r.login,
		},
		Subscription{
			BookAdded: r.bookAdded,
		}
}

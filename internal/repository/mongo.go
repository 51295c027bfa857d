package repository

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"libraryql/internal/model"
)

// Mongo is the Store implementation backed by a MongoDB database.
type Mongo struct {
	books   *mongo.Collection
	authors *mongo.Collection
	users   *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *Mongo {
	return &Mongo{
		books:   db.Collection("books"),
		authors: db.Collection("authors"),
		users:   db.Collection("users"),
	}
}

// Init creates the unique index on author names. EnsureAuthor relies on it:
// without the index two concurrent upserts for a new name could both insert.
func (r *Mongo) Init(ctx context.Context) error {
	op := "Mongo.Init"

	_, err := r.authors.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		slog.Error("failed to create authors name index", slog.String("op", op), slog.String("err", err.Error()))
		return err
	}
	return nil
}

func (r *Mongo) CountBooks(ctx context.Context) (int, error) {
	n, err := r.books.CountDocuments(ctx, bson.D{})
	if err != nil {
		slog.Error("failed to count books", slog.String("op", "Mongo.CountBooks"), slog.String("err", err.Error()))
		return 0, err
	}
	return int(n), nil
}

func (r *Mongo) CountAuthors(ctx context.Context) (int, error) {
	n, err := r.authors.CountDocuments(ctx, bson.D{})
	if err != nil {
		slog.Error("failed to count authors", slog.String("op", "Mongo.CountAuthors"), slog.String("err", err.Error()))
		return 0, err
	}
	return int(n), nil
}

func (r *Mongo) Books(ctx context.Context, authorID *primitive.ObjectID, genre string) ([]model.Book, error) {
	op := "Mongo.Books"

	filter := bson.M{}
	if authorID != nil {
		filter["author"] = *authorID
	}
	if genre != "" {
		filter["genres"] = genre // matches any element of the genres array
	}

	cur, err := r.books.Find(ctx, filter)
	if err != nil {
		slog.Error("failed to find books", slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}
	var books []model.Book
	if err := cur.All(ctx, &books); err != nil {
		slog.Error("failed to decode books", slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}
	return books, nil
}

func (r *Mongo) InsertBook(ctx context.Context, b model.Book) (model.Book, error) {
	op := "Mongo.InsertBook"

	if err := b.Validate(); err != nil {
		return model.Book{}, err
	}
	res, err := r.books.InsertOne(ctx, b)
	if err != nil {
		slog.Error("failed to insert book", slog.String("op", op), slog.String("err", err.Error()))
		return model.Book{}, err
	}
	b.ID = res.InsertedID.(primitive.ObjectID)
	return b, nil
}

func (r *Mongo) CountBooksByAuthor(ctx context.Context, id primitive.ObjectID) (int, error) {
	n, err := r.books.CountDocuments(ctx, bson.M{"author": id})
	if err != nil {
		slog.Error("failed to count books by author", slog.String("op", "Mongo.CountBooksByAuthor"), slog.String("err", err.Error()))
		return 0, err
	}
	return int(n), nil
}

func (r *Mongo) AllAuthors(ctx context.Context) ([]model.Author, error) {
	op := "Mongo.AllAuthors"

	cur, err := r.authors.Find(ctx, bson.D{})
	if err != nil {
		slog.Error("failed to find authors", slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}
	var authors []model.Author
	if err := cur.All(ctx, &authors); err != nil {
		slog.Error("failed to decode authors", slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}
	return authors, nil
}

func (r *Mongo) AuthorByName(ctx context.Context, name string) (model.Author, error) {
	var a model.Author
	err := r.authors.FindOne(ctx, bson.M{"name": name}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Author{}, ErrNotFound
	}
	if err != nil {
		slog.Error("failed to find author by name", slog.String("op", "Mongo.AuthorByName"), slog.String("err", err.Error()))
		return model.Author{}, err
	}
	return a, nil
}

func (r *Mongo) AuthorByID(ctx context.Context, id primitive.ObjectID) (model.Author, error) {
	var a model.Author
	err := r.authors.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Author{}, ErrNotFound
	}
	if err != nil {
		slog.Error("failed to find author by id", slog.String("op", "Mongo.AuthorByID"), slog.String("err", err.Error()))
		return model.Author{}, err
	}
	return a, nil
}

func (r *Mongo) EnsureAuthor(ctx context.Context, name string) (model.Author, error) {
	op := "Mongo.EnsureAuthor"

	if err := (model.Author{Name: name}).Validate(); err != nil {
		return model.Author{}, err
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var a model.Author
	err := r.authors.FindOneAndUpdate(ctx,
		bson.M{"name": name},
		bson.M{"$setOnInsert": bson.M{"name": name, "born": nil}},
		opts,
	).Decode(&a)
	if err != nil {
		slog.Error("failed to upsert author", slog.String("op", op), slog.String("err", err.Error()))
		return model.Author{}, err
	}
	return a, nil
}

func (r *Mongo) SetAuthorBorn(ctx context.Context, name string, born int) (model.Author, error) {
	op := "Mongo.SetAuthorBorn"

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var a model.Author
	err := r.authors.FindOneAndUpdate(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"born": born}},
		opts,
	).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Author{}, ErrNotFound
	}
	if err != nil {
		slog.Error("failed to update author", slog.String("op", op), slog.String("err", err.Error()))
		return model.Author{}, err
	}
	return a, nil
}

func (r *Mongo) InsertUser(ctx context.Context, u model.User) (model.User, error) {
	op := "Mongo.InsertUser"

	if err := u.Validate(); err != nil {
		return model.User{}, err
	}
	res, err := r.users.InsertOne(ctx, u)
	if err != nil {
		slog.Error("failed to insert user", slog.String("op", op), slog.String("err", err.Error()))
		return model.User{}, err
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return u, nil
}

func (r *Mongo) UserByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.users.FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		slog.Error("failed to find user by username", slog.String("op", "Mongo.UserByUsername"), slog.String("err", err.Error()))
		return model.User{}, err
	}
	return u, nil
}

func (r *Mongo) UserByID(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	var u model.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		slog.Error("failed to find user by id", slog.String("op", "Mongo.UserByID"), slog.String("err", err.Error()))
		return model.User{}, err
	}
	return u, nil
}

package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
	"github.com/bookhaven/bookstore-api/internal/core/ports"
)

// BookRepository implements ports.BookRepository using MongoDB.
type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{coll: db.Collection(booksCollection)}
}

type mongoBook struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Author      string             `bson:"author"`
	Description string             `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (b mongoBook) toDomain() *domain.Book {
	return &domain.Book{
		ID:          b.ID.Hex(),
		Name:        b.Name,
		Author:      b.Author,
		Description: b.Description,
		Price:       b.Price,
		CreatedAt:   b.CreatedAt.UTC(),
		UpdatedAt:   b.UpdatedAt.UTC(),
	}
}

func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	doc := mongoBook{
		Name:        book.Name,
		Author:      book.Author,
		Description: book.Description,
		Price:       book.Price,
		CreatedAt:   book.CreatedAt.UTC(),
		UpdatedAt:   book.UpdatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBookExists
		}
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created := *book
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	var mb mongoBook
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return mb.toDomain(), nil
}

// List returns a page of books matching filter plus the total count. Search
// is a case-insensitive contains-match on name or author.
func (r *BookRepository) List(ctx context.Context, filter ports.ListBooksFilter) ([]*domain.Book, int64, error) {
	query := bson.M{}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"author": re},
		}
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	switch filter.Sort {
	case ports.SortPriceAsc:
		sort = bson.D{{Key: "price", Value: 1}}
	case ports.SortPriceDesc:
		sort = bson.D{{Key: "price", Value: -1}}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer cursor.Close(ctx)

	var books []*domain.Book
	for cursor.Next(ctx) {
		var mb mongoBook
		if err := cursor.Decode(&mb); err != nil {
			return nil, 0, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, mb.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate books: %w", err)
	}

	return books, total, nil
}

func (r *BookRepository) Update(ctx context.Context, book *domain.Book) error {
	oid, err := primitive.ObjectIDFromHex(book.ID)
	if err != nil {
		return domain.ErrBookNotFound
	}

	update := bson.M{"$set": bson.M{
		"name":        book.Name,
		"author":      book.Author,
		"description": book.Description,
		"price":       book.Price,
		"updated_at":  book.UpdatedAt.UTC(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrBookExists
		}
		return fmt.Errorf("update book: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

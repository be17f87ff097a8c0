package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kamal-Nayan-Kumar/expense-tracker/internal/models"
)

// DB wraps MongoDB operations for the expense collection.
type DB struct {
	client     *mongo.Client
	collection *mongo.Collection
	log        zerolog.Logger
}

// New creates a new database connection
func New(ctx context.Context, uri, dbName, collName string, log zerolog.Logger) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info().Str("database", dbName).Str("collection", collName).
		Msg("connected to MongoDB")

	return &DB{
		client:     client,
		collection: client.Database(dbName).Collection(collName),
		log:        log,
	}, nil
}

// Close closes the database connection
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// CreateExpense persists a new expense record scoped to its owning user and
// assigns it a generated unique identifier. Duplicate content is allowed; the
// caller decides whether to submit.
func (db *DB) CreateExpense(ctx context.Context, exp *models.Expense) error {
	exp.ID = uuid.NewString()
	if _, err := db.collection.InsertOne(ctx, exp); err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// ExpensesInRange returns the user's expenses with created_at in [start, end],
// capped at limit, in store-default order. The bounds are compared lexically,
// which is correct because every timestamp uses models.TimeLayout.
func (db *DB) ExpensesInRange(ctx context.Context, userID int64, start, end string, limit int64) ([]models.Expense, error) {
	filter := bson.M{
		"telegram_user_id": userID,
		"created_at":       bson.M{"$gte": start, "$lte": end},
	}

	cursor, err := db.collection.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}
	defer cursor.Close(ctx)

	var expenses []models.Expense
	for cursor.Next(ctx) {
		var exp models.Expense
		if err := cursor.Decode(&exp); err != nil {
			db.log.Warn().Err(err).Msg("skipping undecodable expense record")
			continue
		}
		expenses = append(expenses, exp)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expense cursor: %w", err)
	}
	return expenses, nil
}

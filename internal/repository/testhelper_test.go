package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcmongodb "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"blog-cms/internal/infrastructure/database"
)

// TestDB holds the test database connection and container
type TestDB struct {
	Client    *mongo.Client
	DB        *mongo.Database
	Container testcontainers.Container
}

// SetupTestDB starts a MongoDB container and ensures the application indexes
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	ctx := context.Background()

	mongoContainer, err := tcmongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("Failed to start mongo container: %v", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		_ = mongoContainer.Terminate(ctx)
		t.Fatalf("Failed to get connection string: %v", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		_ = mongoContainer.Terminate(ctx)
		t.Fatalf("Failed to connect to mongo: %v", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		_ = mongoContainer.Terminate(ctx)
		t.Fatalf("Failed to ping mongo: %v", err)
	}

	db := client.Database("blog_test")
	if err := database.EnsureIndexes(connectCtx, db); err != nil {
		_ = client.Disconnect(ctx)
		_ = mongoContainer.Terminate(ctx)
		t.Fatalf("Failed to create indexes: %v", err)
	}

	return &TestDB{
		Client:    client,
		DB:        db,
		Container: mongoContainer,
	}
}

// Cleanup disconnects the client and terminates the container
func (tdb *TestDB) Cleanup(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	if tdb.Client != nil {
		_ = tdb.Client.Disconnect(ctx)
	}
	if tdb.Container != nil {
		if err := tdb.Container.Terminate(ctx); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	}
}

// ClearCollections removes all documents from the given collections for test isolation
func (tdb *TestDB) ClearCollections(t *testing.T, collections ...string) {
	t.Helper()
	ctx := context.Background()
	for _, name := range collections {
		if _, err := tdb.DB.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			t.Fatalf("Failed to clear collection %s: %v", name, err)
		}
	}
}

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/orphanagecare/internal/app/system/indexes"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// TestMongoURIEnv names the variable that points tests at an existing
// MongoDB. When it is unset a shared container is started instead.
const TestMongoURIEnv = "ORPHANAGECARE_TEST_MONGO_URI"

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

// TestContext returns a context with a timeout suitable for a single test.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// SetupTestDB returns a fresh, indexed database for one test and drops it
// when the test ends. The test is skipped when no MongoDB is reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	c, err := sharedClient()
	if err != nil {
		t.Skipf("mongo unavailable: %v", err)
	}

	name := "orphanagecare_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	db := c.Database(name)

	ctx, cancel := TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := TestContext()
		defer cancel()
		_ = db.Drop(ctx)
	})
	return db
}

func sharedClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		uri := os.Getenv(TestMongoURIEnv)
		if uri == "" {
			uri, clientErr = startContainer(ctx)
			if clientErr != nil {
				return
			}
		}

		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			clientErr = err
			return
		}
		if err := c.Ping(ctx, readpref.Primary()); err != nil {
			_ = c.Disconnect(ctx)
			clientErr = err
			return
		}
		client = c
	})
	return client, clientErr
}

// startContainer runs a MongoDB container shared by every test in the
// process. Ryuk removes it when the test binary exits.
func startContainer(ctx context.Context) (uri string, err error) {
	defer func() {
		// testcontainers can panic when no Docker host is configured.
		if r := recover(); r != nil {
			err = fmt.Errorf("start mongo container: %v", r)
		}
	}()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		return "", fmt.Errorf("start mongo container: %w", err)
	}
	return container.ConnectionString(ctx)
}

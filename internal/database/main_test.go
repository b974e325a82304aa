package database

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

var testStore *Store

func TestMain(m *testing.M) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		log.Fatalf("failed to start mongodb container: %s", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("failed to get connection string: %s", err)
	}

	testStore, err = Connect(ctx, uri, "testdb")
	if err != nil {
		log.Fatalf("failed to connect to test database: %s", err)
	}
	if err := testStore.EnsureIndexes(ctx); err != nil {
		log.Fatalf("failed to create indexes: %s", err)
	}

	code := m.Run()

	_ = testStore.Disconnect(ctx)
	if err := testcontainers.TerminateContainer(mongoContainer); err != nil {
		log.Fatalf("failed to terminate mongodb container: %s", err)
	}

	os.Exit(code)
}

package common

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"

	"github.com/inkstone-dev/inkstone/migrations"
)

// TestDB opens a throwaway SQLite database in the test's temp directory and
// applies the embedded migrations to it.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "inkstone_test.db")

	db, err := NewDB(path, 10, 5, 15*time.Minute)
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}

	if err := MigrateDB(db, migrations.FS); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func TestRabbitMQ(t *testing.T) string {
	ctx := context.Background()

	container, err := rabbitmq.Run(ctx, "rabbitmq:3.12.11-management-alpine", rabbitmq.WithAdminUsername("guest"), rabbitmq.WithAdminPassword("guest"))
	if err != nil {
		t.Fatalf("could not start rabbitmq container: %v", err)
	}

	connURL, err := container.AmqpURL(ctx)
	if err != nil {
		t.Fatalf("could not get rabbitmq connection URL: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("could not terminate container: %v", err)
		}
	})

	return connURL
}

// MockMessageProducer records published messages instead of talking to AMQP.
type MockMessageProducer struct {
	mock.Mock

	Messages [][]byte
	Keys     []BindingKey
}

func (m *MockMessageProducer) Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error {
	m.Messages = append(m.Messages, msg)
	m.Keys = append(m.Keys, key)
	return nil
}

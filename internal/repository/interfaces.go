package repository

import (
	"context"
	"time"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
)

// EventRecord is an exported event as the archive stores it. Version orders
// redeliveries of the same event; the highest version survives deduplication.
type EventRecord struct {
	Event      domain.Event
	ReceivedAt time.Time
	Version    uint64
}

// EventRepository defines the interface for the event archive
type EventRepository interface {
	// InsertBatch inserts a batch of records and returns how many were written
	InsertBatch(ctx context.Context, records []*EventRecord) (int, error)

	// InitSchema creates the archive table if it does not exist
	InitSchema(ctx context.Context) error

	// Ping checks if the database connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error
}

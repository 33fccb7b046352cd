package clickhouse

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/repository"
)

const createEventsTable = `
	CREATE TABLE IF NOT EXISTS donation_events (
		event_id String,
		event_type LowCardinality(String),
		user_id String,
		variant_id LowCardinality(String),
		campaign_id String,
		payload String,
		timestamp DateTime64(3),
		received_at DateTime64(3),
		version UInt64
	) ENGINE = ReplacingMergeTree(version)
	ORDER BY (event_id)
	PARTITION BY toYYYYMM(timestamp)
	`

// Repository archives exported events in ClickHouse
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new ClickHouse repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// InitSchema creates donation_events. ReplacingMergeTree collapses
// redelivered copies of an event onto the highest version.
func (r *Repository) InitSchema(ctx context.Context) error {
	if err := r.client.Conn().Exec(ctx, createEventsTable); err != nil {
		return fmt.Errorf("failed to create donation_events table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized")
	return nil
}

// InsertBatch writes records in a single native batch
func (r *Repository) InsertBatch(ctx context.Context, records []*repository.EventRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO donation_events")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch: %w", err)
	}

	for _, record := range records {
		row, err := toRow(record)
		if err != nil {
			_ = batch.Abort()
			return 0, err
		}
		if err := batch.Append(row...); err != nil {
			_ = batch.Abort()
			return 0, fmt.Errorf("failed to append event %s to batch: %w", record.Event.ID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send batch: %w", err)
	}

	return len(records), nil
}

// toRow flattens a record into donation_events column order
func toRow(record *repository.EventRecord) ([]any, error) {
	payload := "{}"
	if len(record.Event.Payload) > 0 {
		b, err := json.Marshal(record.Event.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload of event %s: %w", record.Event.ID, err)
		}
		payload = string(b)
	}

	return []any{
		record.Event.ID,
		record.Event.EventType,
		record.Event.UserID,
		record.Event.VariantID,
		record.Event.CampaignID,
		payload,
		record.Event.Timestamp,
		record.ReceivedAt,
		record.Version,
	}, nil
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}

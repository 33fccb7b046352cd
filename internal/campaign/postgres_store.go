package campaign

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/config"
)

// OpenPostgres opens and verifies a connection pool for the campaign store
func OpenPostgres(ctx context.Context, cfg config.Postgres, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	log.Info("PostgreSQL connection established")
	return db, nil
}

// PostgresStore implements Store on PostgreSQL
type PostgresStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewPostgresStore(db *sql.DB, log *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:  db,
		log: log,
	}
}

// InitSchema creates the campaigns table and inserts seed campaigns that do not exist yet
func (s *PostgresStore) InitSchema(ctx context.Context, seed ...Campaign) error {
	query := `
	CREATE TABLE IF NOT EXISTS campaigns (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		total_goal NUMERIC(14, 2) NOT NULL,
		current_raised NUMERIC(14, 2) NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create campaigns table: %w", err)
	}

	for _, c := range seed {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO campaigns (id, name, total_goal, current_raised, description, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING`,
			c.ID, c.Name, c.TotalGoal, c.CurrentRaised, c.Description, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to seed campaign %s: %w", c.ID, err)
		}
	}

	s.log.Info("Campaign schema initialized", zap.Int("seeded", len(seed)))
	return nil
}

func (s *PostgresStore) GetCampaign(ctx context.Context, id string) (*Campaign, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, total_goal, current_raised, description, created_at, updated_at
		FROM campaigns
		WHERE id = $1`, id)

	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("campaign %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return c, nil
}

// ApplyDonation increments the total in a single statement so concurrent
// donations never lose updates
func (s *PostgresStore) ApplyDonation(ctx context.Context, id string, amount float64) (*Campaign, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE campaigns
		SET current_raised = current_raised + $2, updated_at = now()
		WHERE id = $1
		RETURNING id, name, total_goal, current_raised, description, created_at, updated_at`, id, amount)

	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("campaign %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply donation: %w", err)
	}
	return c, nil
}

func scanCampaign(row *sql.Row) (*Campaign, error) {
	var c Campaign
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.TotalGoal,
		&c.CurrentRaised,
		&c.Description,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

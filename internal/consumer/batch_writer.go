package consumer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/metrics"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/repository"
)

const (
	DefaultMaxBatchSize = 2000
	DefaultFlushTimeout = 10 * time.Second
)

// BatchWriterConfig configures the batch writer. Non-positive values select
// the defaults.
type BatchWriterConfig struct {
	MaxBatchSize int
	FlushTimeout time.Duration
}

// BatchWriter groups envelopes and writes them to the archive. A batch is
// settled as a unit: all messages are acked after a full insert, otherwise
// all are nacked.
type BatchWriter struct {
	repository repository.EventRepository
	config     BatchWriterConfig
	metrics    *metrics.Metrics
	log        *zap.Logger
}

// NewBatchWriter creates a new batch writer
func NewBatchWriter(repo repository.EventRepository, config BatchWriterConfig, m *metrics.Metrics, log *zap.Logger) *BatchWriter {
	if config.MaxBatchSize <= 0 {
		config.MaxBatchSize = DefaultMaxBatchSize
	}
	if config.FlushTimeout <= 0 {
		config.FlushTimeout = DefaultFlushTimeout
	}

	return &BatchWriter{
		repository: repo,
		config:     config,
		metrics:    m,
		log:        log,
	}
}

// Start batches envelopes until in is closed or ctx is done, flushing what
// is pending on the way out
func (w *BatchWriter) Start(ctx context.Context, in <-chan *Envelope) {
	ticker := time.NewTicker(w.config.FlushTimeout)
	defer ticker.Stop()

	batch := make([]*Envelope, 0, w.config.MaxBatchSize)

	flush := func(ctx context.Context, reason string) {
		if len(batch) == 0 {
			return
		}
		w.log.Debug("Flushing batch",
			zap.String("reason", reason),
			zap.Int("envelope_count", len(batch)))
		w.processBatch(ctx, batch)
		batch = make([]*Envelope, 0, w.config.MaxBatchSize)
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Batch writer shutting down")
			// ctx is already cancelled; the final flush gets its own deadline
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.config.FlushTimeout)
			flush(shutdownCtx, "shutdown")
			cancel()
			return
		case envelope, ok := <-in:
			if !ok {
				w.log.Info("Batch writer input channel closed")
				flush(ctx, "input_closed")
				return
			}

			batch = append(batch, envelope)
			if len(batch) >= w.config.MaxBatchSize {
				flush(ctx, "size")
				ticker.Reset(w.config.FlushTimeout)
			}
		case <-ticker.C:
			flush(ctx, "timeout")
		}
	}
}

func (w *BatchWriter) processBatch(ctx context.Context, envelopes []*Envelope) {
	records := dedupe(envelopes)
	duplicates := len(envelopes) - len(records)

	insertedCount, err := w.repository.InsertBatch(ctx, records)
	if err != nil {
		w.log.Error("Failed to insert batch",
			zap.Error(err),
			zap.Int("event_count", len(records)))
		w.metrics.ObserveArchived("failed", len(records))
		w.nackAll(ctx, envelopes)
		return
	}

	if insertedCount != len(records) {
		w.log.Warn("Partial insert",
			zap.Int("inserted", insertedCount),
			zap.Int("expected", len(records)))
		w.metrics.ObserveArchived("failed", len(records))
		w.nackAll(ctx, envelopes)
		return
	}

	w.log.Info("Archived events",
		zap.Int("count", insertedCount),
		zap.Int("duplicates", duplicates))
	w.metrics.ObserveArchived("inserted", insertedCount)
	w.metrics.ObserveArchived("duplicate", duplicates)
	w.ackAll(ctx, envelopes)
}

// dedupe keeps one record per event ID, the one with the highest version,
// in first-seen order
func dedupe(envelopes []*Envelope) []*repository.EventRecord {
	index := make(map[string]int, len(envelopes))
	records := make([]*repository.EventRecord, 0, len(envelopes))

	for _, env := range envelopes {
		id := env.Record.Event.ID
		if i, ok := index[id]; ok {
			if env.Record.Version > records[i].Version {
				records[i] = env.Record
			}
			continue
		}
		index[id] = len(records)
		records = append(records, env.Record)
	}

	return records
}

func (w *BatchWriter) ackAll(ctx context.Context, envelopes []*Envelope) {
	for _, env := range envelopes {
		if err := env.Ack(ctx); err != nil {
			w.log.Error("Failed to ack envelope",
				zap.String("event_id", env.Record.Event.ID),
				zap.Error(err))
		}
	}
}

func (w *BatchWriter) nackAll(ctx context.Context, envelopes []*Envelope) {
	for _, env := range envelopes {
		if err := env.Nack(ctx); err != nil {
			w.log.Error("Failed to nack envelope",
				zap.String("event_id", env.Record.Event.ID),
				zap.Error(err))
		}
	}
}

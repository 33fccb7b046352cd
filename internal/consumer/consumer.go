package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/config"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/metrics"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/queue"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/repository"
)

const stageBufferSize = 100

// Consumer moves exported events from the queue into the archive through
// three stages: receive, parse, batch write
type Consumer struct {
	receiver    *Receiver
	parser      *ParserStage
	batchWriter *BatchWriter
}

// NewConsumer creates a consumer pipeline
func NewConsumer(cfg config.Consumer, queueConsumer queue.QueueConsumer, repo repository.EventRepository, m *metrics.Metrics, log *zap.Logger) *Consumer {
	receiver := NewReceiver(queueConsumer, ReceiverConfig{
		MaxMessages:     10,
		WaitTimeSeconds: 20,
		ErrorBackoff:    time.Second,
	}, log)

	parser := NewParserStage(queueConsumer, NewJSONEventParser(nil),
		time.Duration(cfg.RetryDelaySec)*time.Second, m, log)

	batchWriter := NewBatchWriter(repo, BatchWriterConfig{
		MaxBatchSize: cfg.BatchSizeMax,
		FlushTimeout: time.Duration(cfg.BatchTimeoutSec) * time.Second,
	}, m, log)

	return &Consumer{
		receiver:    receiver,
		parser:      parser,
		batchWriter: batchWriter,
	}
}

// Start runs the pipeline and blocks until every stage has stopped
func (c *Consumer) Start(ctx context.Context) error {
	messages := make(chan types.Message, stageBufferSize)
	envelopes := make(chan *Envelope, stageBufferSize)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		c.receiver.Start(ctx, messages)
	}()

	go func() {
		defer wg.Done()
		c.parser.Start(ctx, messages, envelopes)
	}()

	go func() {
		defer wg.Done()
		c.batchWriter.Start(ctx, envelopes)
	}()

	wg.Wait()
	return nil
}

package consumer

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/config"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/repository"
)

func TestConsumer_Start_ArchivesPublishedEvent(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockRepo := new(MockEventRepository)

	body := `{"id":"evt-1","event_type":"page_view","payload":{"variant_id":"control"},"timestamp":"2025-06-01T12:00:00Z","user_id":"user_1","variant_id":"control"}`

	mockConsumer.On("QueueURL").Return(testQueueURL)
	mockConsumer.On("ReceiveMessages", mock.Anything, mock.AnythingOfType("*sqs.ReceiveMessageInput")).
		Return(&sqs.ReceiveMessageOutput{Messages: []types.Message{{
			MessageId:     aws.String("msg-1"),
			Body:          aws.String(body),
			ReceiptHandle: aws.String("receipt-1"),
		}}}, nil).Once()
	emptyReceive(mockConsumer)

	deleted := make(chan struct{}, 1)
	mockConsumer.On("DeleteMessage", mock.Anything, mock.AnythingOfType("*sqs.DeleteMessageInput")).
		Run(func(mock.Arguments) { deleted <- struct{}{} }).
		Return(&sqs.DeleteMessageOutput{}, nil)

	mockRepo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(records []*repository.EventRecord) bool {
		return len(records) == 1 && records[0].Event.ID == "evt-1" && records[0].Event.VariantID == "control"
	})).Return(1, nil)

	c := NewConsumer(config.Consumer{BatchSizeMax: 1, BatchTimeoutSec: 10, RetryDelaySec: 5}, mockConsumer, mockRepo, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	select {
	case <-deleted:
	case <-time.After(time.Second):
		t.Fatal("message was not acknowledged")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Graceful shutdown took too long")
	}

	mockRepo.AssertExpectations(t)
}

func TestConsumer_Start_EmptyQueue(t *testing.T) {
	mockConsumer := new(MockQueueConsumer)
	mockRepo := new(MockEventRepository)

	mockConsumer.On("QueueURL").Return(testQueueURL)
	emptyReceive(mockConsumer)

	c := NewConsumer(config.Consumer{BatchSizeMax: 10, BatchTimeoutSec: 1, RetryDelaySec: 5}, mockConsumer, mockRepo, nil, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := c.Start(ctx)

	require.NoError(t, err)
	mockRepo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestConsumer_NewConsumer_ComponentInitialization(t *testing.T) {
	c := NewConsumer(config.Consumer{BatchSizeMax: 100, BatchTimeoutSec: 5, RetryDelaySec: 5},
		new(MockQueueConsumer), new(MockEventRepository), nil, zap.NewNop())

	require.NotNil(t, c)
	assert.NotNil(t, c.receiver)
	assert.NotNil(t, c.parser)
	assert.NotNil(t, c.batchWriter)
	assert.Equal(t, 5*time.Second, c.parser.retryDelay)
	assert.Equal(t, 100, c.batchWriter.config.MaxBatchSize)
}

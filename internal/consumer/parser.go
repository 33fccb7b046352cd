package consumer

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
	"github.com/Harun1302123/impact-flow-optimizer-project/internal/repository"
)

// ErrInvalidEvent marks messages that decode but cannot be archived
var ErrInvalidEvent = errors.New("invalid event")

// JSONEventParser decodes the JSON events published by the API
type JSONEventParser struct {
	now func() time.Time
}

// NewJSONEventParser creates a parser; now defaults to time.Now
func NewJSONEventParser(now func() time.Time) *JSONEventParser {
	if now == nil {
		now = time.Now
	}
	return &JSONEventParser{now: now}
}

// Parse decodes body into a record stamped with its receive time. Events
// without a timestamp take the receive time.
func (p *JSONEventParser) Parse(body []byte) (*repository.EventRecord, error) {
	var event domain.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message body: %w", err)
	}

	if event.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidEvent)
	}
	if event.EventType == "" {
		return nil, fmt.Errorf("%w: event %s has no event_type", ErrInvalidEvent, event.ID)
	}

	received := p.now()
	if event.Timestamp.IsZero() {
		event.Timestamp = received
	}

	return &repository.EventRecord{
		Event:      event,
		ReceivedAt: received,
		Version:    uint64(received.UnixNano()),
	}, nil
}

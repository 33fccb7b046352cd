package consumer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harun1302123/impact-flow-optimizer-project/internal/domain"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 5, 0, time.UTC)

func TestJSONEventParser_Parse(t *testing.T) {
	parser := NewJSONEventParser(func() time.Time { return testNow })

	body := []byte(`{
		"id": "evt-1",
		"event_type": "donation_successful",
		"payload": {"amount": 50, "variant_id": "variant_b", "campaign_id": "demo-campaign"},
		"timestamp": "2025-06-01T12:00:00Z",
		"user_id": "user_1",
		"variant_id": "variant_b",
		"campaign_id": "demo-campaign"
	}`)

	record, err := parser.Parse(body)

	require.NoError(t, err)
	assert.Equal(t, "evt-1", record.Event.ID)
	assert.Equal(t, domain.EventTypeDonationSuccessful, record.Event.EventType)
	assert.Equal(t, "variant_b", record.Event.VariantID)
	assert.Equal(t, "demo-campaign", record.Event.CampaignID)
	assert.Equal(t, 50.0, record.Event.Payload["amount"])
	assert.True(t, record.Event.Timestamp.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, testNow, record.ReceivedAt)
	assert.Equal(t, uint64(testNow.UnixNano()), record.Version)
}

func TestJSONEventParser_Parse_MissingTimestamp(t *testing.T) {
	parser := NewJSONEventParser(func() time.Time { return testNow })

	record, err := parser.Parse([]byte(`{"id": "evt-2", "event_type": "page_view", "user_id": "u"}`))

	require.NoError(t, err)
	assert.Equal(t, testNow, record.Event.Timestamp)
}

func TestJSONEventParser_Parse_Invalid(t *testing.T) {
	parser := NewJSONEventParser(nil)

	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{name: "not json", body: `{invalid}`},
		{name: "missing id", body: `{"event_type": "page_view"}`, invalid: true},
		{name: "missing event type", body: `{"id": "evt-3"}`, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.body))

			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalidEvent)
			}
		})
	}
}

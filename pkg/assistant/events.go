package assistant

import (
	"time"

	"github.com/sysdevrun/transitchat/pkg/elastic_client"
)

const (
	EventModelResponse  = "model_response"
	EventModelFailed    = "model_failed"
	EventToolDispatch   = "tool_dispatch"
	EventToolResult     = "tool_result"
	EventExchangeFailed = "exchange_failed"
)

// Event is one observability record of an exchange: enough structure to
// reconstruct the full conversation flow afterwards.
type Event struct {
	ExchangeID string `json:"exchange_id"`
	Round      int    `json:"round"`
	Type       string `json:"type"`

	Tool       string `json:"tool,omitempty"`
	StopReason string `json:"stop_reason,omitempty"`
	Detail     string `json:"detail,omitempty"`

	DurationMS   int64 `json:"duration_ms,omitempty"`
	InputTokens  int   `json:"input_tokens,omitempty"`
	OutputTokens int   `json:"output_tokens,omitempty"`
	PayloadBytes int   `json:"payload_bytes,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// EventSink receives exchange events. Publishing is fire and forget: a sink
// must never block or fail the exchange.
type EventSink interface {
	Publish(event Event)
}

type NoopSink struct{}

func (NoopSink) Publish(Event) {}

// ElasticSink indexes events through the buffered background indexer. A nil
// client silently drops everything.
type ElasticSink struct {
	Client *elastic_client.Client
	Index  string
}

func (s ElasticSink) Publish(event Event) {
	event.Timestamp = time.Now()

	index := s.Index
	if index == "" {
		index = "transitchat-exchanges-1"
	}

	s.Client.IndexDocument(index, event)
}

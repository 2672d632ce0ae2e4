// Package telemetry aggregates lightweight operational events in memory and
// optionally fans them out to SNS best-effort.
package telemetry

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"restock-backend/awsx"
)

const (
	defaultMaxEvents = 200
	recentWindow     = 20
	publishTimeout   = 5 * time.Second
)

// Event is a single recorded telemetry event.
type Event struct {
	TimestampMs int64             `json:"timestamp_ms"`
	EventType   string            `json:"event_type"`
	Payload     map[string]string `json:"payload"`
}

// Summary aggregates event counts for the system endpoint.
type Summary struct {
	Events             map[string]int `json:"events"`
	DetectionsByObject map[string]int `json:"detections_by_object"`
}

// Client stores recent events in a bounded ring and provides counts on
// demand. Emit never blocks on the SNS publish; failures there are logged
// and dropped.
type Client struct {
	mu        sync.Mutex
	events    []Event
	maxEvents int

	publisher awsx.SNSPublisher
	topicArn  string
	logger    *zap.Logger
}

// NewClient creates a telemetry client. publisher and topicArn may be empty;
// events are then kept in memory only.
func NewClient(publisher awsx.SNSPublisher, topicArn string, logger *zap.Logger) *Client {
	return &Client{
		maxEvents: defaultMaxEvents,
		publisher: publisher,
		topicArn:  topicArn,
		logger:    logger,
	}
}

// Emit records an event and, when SNS is configured, publishes it
// asynchronously best-effort.
func (c *Client) Emit(eventType string, payload map[string]string) {
	if payload == nil {
		payload = map[string]string{}
	}
	event := Event{
		TimestampMs: time.Now().UnixMilli(),
		EventType:   eventType,
		Payload:     payload,
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	if len(c.events) > c.maxEvents {
		c.events = c.events[len(c.events)-c.maxEvents:]
	}
	c.mu.Unlock()

	if c.publisher == nil || c.topicArn == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		body, err := json.Marshal(event)
		if err != nil {
			return
		}
		if err := c.publisher.Publish(ctx, c.topicArn, body); err != nil && c.logger != nil {
			c.logger.Warn("telemetry publish failed", zap.String("event_type", eventType), zap.Error(err))
		}
	}()
}

// Recent returns the most recent events, newest last.
func (c *Client) Recent() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := 0
	if len(c.events) > recentWindow {
		start = len(c.events) - recentWindow
	}
	out := make([]Event, len(c.events)-start)
	copy(out, c.events[start:])
	return out
}

// Summarize returns event counts overall and detections broken down by
// object class.
func (c *Client) Summarize() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	summary := Summary{
		Events:             make(map[string]int),
		DetectionsByObject: make(map[string]int),
	}
	for _, event := range c.events {
		summary.Events[event.EventType]++
		if event.EventType == "detection" {
			object := event.Payload["object_class"]
			if object == "" {
				object = "unknown"
			}
			summary.DetectionsByObject[object]++
		}
	}
	return summary
}

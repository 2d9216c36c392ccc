package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"video_share_service/pkg/logger"
)

// Domain event types emitted on the video topic.
const (
	EventVideoCreated = "video.created"
	EventVideoViewed  = "video.viewed"
	EventLikeToggled  = "like.toggled"
)

// Event is one domain event. Keyed by VideoID so a video's events stay
// ordered within a partition.
type Event struct {
	Type    string    `json:"type"`
	VideoID string    `json:"videoId"`
	UserID  string    `json:"userId,omitempty"`
	Detail  string    `json:"detail,omitempty"`
	At      time.Time `json:"at"`
}

// EventPublisher emits domain events. Publish failures are reported to
// the caller but usecases treat them as non-fatal: the write of record
// has already happened.
type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaEventPublisher(w *kafka.Writer) EventPublisher {
	return &kafkaPublisher{writer: w}
}

func (p *kafkaPublisher) Publish(ctx context.Context, e Event) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.VideoID),
		Value: payload,
	})
}

// publishAsync fires the event without blocking the request path.
func publishAsync(pub EventPublisher, e Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pub.Publish(ctx, e); err != nil {
			logger.Log.Warn("publish event [" + e.Type + "] failed: " + err.Error())
		}
	}()
}

// NopPublisher discards events. Used where no broker is wired.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

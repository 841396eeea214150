package repository

import (
	"context"
	"time"

	"Lohas/internal/domain/models"
	domain "Lohas/internal/domain/repository"
	pkgkafka "Lohas/pkg/kafka"
)

// KafkaScanPublisher publishes finished watchlist scans to a Kafka topic.
// The message is keyed by user so one user's scans stay ordered.
type KafkaScanPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaScanPublisher wraps an existing producer.
func NewKafkaScanPublisher(producer *pkgkafka.Producer, topic string) *KafkaScanPublisher {
	return &KafkaScanPublisher{producer: producer, topic: topic}
}

type scanEvent struct {
	User      string           `json:"user"`
	Rows      []models.ScanRow `json:"rows"`
	ScannedAt time.Time        `json:"scanned_at"`
}

// PublishScan sends one scan summary message.
func (p *KafkaScanPublisher) PublishScan(ctx context.Context, user string, rows []models.ScanRow) error {
	evt := scanEvent{User: user, Rows: rows, ScannedAt: time.Now().UTC()}
	return p.producer.Publish(ctx, p.topic, []byte(user), evt)
}

// Close closes the underlying producer.
func (p *KafkaScanPublisher) Close() error {
	return p.producer.Close()
}

var _ domain.ScanPublisher = (*KafkaScanPublisher)(nil)

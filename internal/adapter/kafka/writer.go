package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/temperature-heatmap/internal/config"
	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

// Writer publishes chart summaries to a Kafka topic.
// It implements pipeline.SummaryPublisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured summary topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes a summary and writes it keyed by its source URL, so all
// summaries of one dataset land on the same partition.
func (w *Writer) Publish(ctx context.Context, summary domain.ChartSummary) error {
	msg, err := serializeToMessage(summary)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish summary: %w", err)
	}
	w.logger.Debug("summary published", "topic", w.writer.Topic, "source", summary.Source)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ChartSummary into a Kafka message.
func serializeToMessage(summary domain.ChartSummary) (kafkago.Message, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize chart summary: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(summary.Source),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "rendered_at", Value: []byte(summary.RenderedAt.Format(time.RFC3339))},
			{Key: "record_count", Value: []byte(strconv.Itoa(summary.RecordCount))},
		},
	}, nil
}

package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"printshop/internal/core/ports"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

var tracer = otel.Tracer("printshop/internal/adapters/out/notify")

// producer is the part of *kgo.Client the publisher needs.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// KafkaConfig describes the broker connection.
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
	Timeout  time.Duration
}

// KafkaPublisher writes one record per status change, keyed by order id so that the
// changes of one order stay ordered within a partition.
type KafkaPublisher struct {
	client producer
	topic  string
}

var _ ports.OrderEventPublisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka: at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka: topic is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.ProduceRequestTimeout(cfg.Timeout),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.AllowAutoTopicCreation(),
	}
	if cfg.ClientID != "" {
		opts = append(opts, kgo.ClientID(cfg.ClientID))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}
	return newKafkaPublisher(client, cfg.Topic), nil
}

func newKafkaPublisher(client producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{client: client, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...ports.StatusChangedEvent) (err error) {
	if len(events) == 0 {
		return nil
	}

	ctx, span := tracer.Start(ctx, "KafkaPublisher.Publish")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(
		attribute.String("messaging.destination", p.topic),
		attribute.Int("messaging.batch.message_count", len(events)),
	)

	headers := traceHeaders(ctx)
	records := make([]*kgo.Record, 0, len(events))
	for _, e := range events {
		value, encErr := encode(e)
		if encErr != nil {
			return fmt.Errorf("kafka: encode %s: %w", e.OrderID, encErr)
		}
		records = append(records, &kgo.Record{
			Topic:   p.topic,
			Key:     []byte(e.OrderID.String()),
			Value:   value,
			Headers: headers,
		})
	}

	if err = p.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("kafka: produce to %s: %w", p.topic, err)
	}
	return nil
}

// Close releases the broker connections.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}

// traceHeaders carries the W3C trace context of ctx, if any, to consumers.
func traceHeaders(ctx context.Context) []kgo.RecordHeader {
	carrier := propagation.MapCarrier{}
	propagation.TraceContext{}.Inject(ctx, carrier)

	headers := make([]kgo.RecordHeader, 0, len(carrier))
	for _, key := range carrier.Keys() {
		headers = append(headers, kgo.RecordHeader{Key: key, Value: []byte(carrier.Get(key))})
	}
	return headers
}

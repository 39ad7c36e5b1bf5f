package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"opshub/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// ProducerConfig contains configuration for the reset event producer
type ProducerConfig struct {
	Brokers          []string
	Topic            string
	LinkBaseURL      string
	TokenTTL         time.Duration
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	IdempotentWrites bool
}

func DefaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "auth.password-reset",
		LinkBaseURL:      "http://localhost:3000/reset-password",
		TokenTTL:         time.Hour,
		RetryMax:         3,
		Timeout:          10 * time.Second,
		RequiredAcks:     sarama.WaitForAll,
		IdempotentWrites: true,
	}
}

// SaramaConfig is the producer configuration used against a real cluster.
func (c *ProducerConfig) SaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.RequiredAcks = c.RequiredAcks
	cfg.Producer.Retry.Max = c.RetryMax
	cfg.Producer.Timeout = c.Timeout
	cfg.Producer.Idempotent = c.IdempotentWrites
	if c.IdempotentWrites {
		cfg.Net.MaxOpenRequests = 1
	}
	// same e-mail, same partition
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	return cfg
}

// ResetProducer publishes password reset tokens to the broker. It satisfies
// the auth package's ResetNotifier.
type ResetProducer struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
	now      func() time.Time
	log      *logger.Logger
}

func NewKafkaResetProducer(config *ProducerConfig, log *logger.Logger) (*ResetProducer, error) {
	producer, err := sarama.NewSyncProducer(config.Brokers, config.SaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	return NewResetProducer(producer, config, log), nil
}

// NewResetProducer wraps an existing sarama producer.
func NewResetProducer(producer sarama.SyncProducer, config *ProducerConfig, log *logger.Logger) *ResetProducer {
	return &ResetProducer{
		producer: producer,
		config:   config,
		now:      time.Now,
		log:      log,
	}
}

func (p *ResetProducer) Send(ctx context.Context, email, token string) error {
	now := p.now()
	event := &PasswordResetEvent{
		ID:        uuid.NewString(),
		Email:     email,
		Token:     token,
		Link:      strings.TrimRight(p.config.LinkBaseURL, "/") + "/" + token,
		ExpiresAt: now.Add(p.config.TokenTTL),
		CreatedAt: now,
	}

	payload, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal reset event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.config.Topic,
		Key:   sarama.StringEncoder(event.PartitionKey()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(event.ID)},
			{Key: []byte("event_type"), Value: []byte("password_reset")},
			{Key: []byte("producer"), Value: []byte("opshub-auth")},
		},
		Timestamp: now,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish reset event: %w", err)
	}

	p.log.DebugContext(ctx, "Reset event published",
		"topic", p.config.Topic,
		"partition", partition,
		"offset", offset,
		"event_id", event.ID,
	)
	return nil
}

func (p *ResetProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

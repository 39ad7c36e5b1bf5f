package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"opshub/internal/users"
	"opshub/pkg/logger"

	"github.com/IBM/sarama"
)

// Deliverer hands a reset link to its recipient.
type Deliverer interface {
	Deliver(ctx context.Context, event *PasswordResetEvent) error
}

// LogDeliverer writes reset links to the log; there is no mail transport.
type LogDeliverer struct {
	log *logger.Logger
}

func NewLogDeliverer(log *logger.Logger) *LogDeliverer {
	return &LogDeliverer{log: log}
}

func (d *LogDeliverer) Deliver(ctx context.Context, event *PasswordResetEvent) error {
	d.log.InfoContext(ctx, "Password reset link",
		slog.String("email", event.Email),
		slog.String("link", event.Link),
		slog.Time("expires_at", event.ExpiresAt),
	)
	return nil
}

// UserLookup resolves the account a reset event was issued for.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
}

type ConsumerConfig struct {
	Brokers           []string
	GroupID           string
	Topics            []string
	SessionTimeout    time.Duration
	Heartbeat         time.Duration
	OffsetOldest      bool
	MaxRetries        int
	RetryBackoff      time.Duration
	MaxProcessingTime time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:           []string{"localhost:9092"},
		GroupID:           "opshub-reset-delivery",
		Topics:            []string{"auth.password-reset"},
		SessionTimeout:    30 * time.Second,
		Heartbeat:         3 * time.Second,
		MaxRetries:        3,
		RetryBackoff:      time.Second,
		MaxProcessingTime: time.Minute,
	}
}

// ResetConsumer drains the reset topic and delivers every link.
type ResetConsumer struct {
	group   sarama.ConsumerGroup
	handler *ConsumerGroupHandler
	topics  []string
	log     *logger.Logger
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

func NewKafkaResetConsumer(config *ConsumerConfig, handler *ConsumerGroupHandler, log *logger.Logger) (*ResetConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = config.Heartbeat
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true
	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &ResetConsumer{
		group:   group,
		handler: handler,
		topics:  config.Topics,
		log:     log,
	}, nil
}

// Start consumes in the background until Stop is called or ctx ends.
func (rc *ResetConsumer) Start(ctx context.Context) {
	ctx, rc.cancel = context.WithCancel(ctx)

	rc.wg.Add(2)
	go func() {
		defer rc.wg.Done()
		for err := range rc.group.Errors() {
			rc.log.Error("Consumer group error", slog.String("error", err.Error()))
		}
	}()
	go func() {
		defer rc.wg.Done()
		for ctx.Err() == nil {
			if err := rc.group.Consume(ctx, rc.topics, rc.handler); err != nil {
				if errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				rc.log.Error("Consume failed", slog.String("error", err.Error()))
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
				}
			}
		}
	}()

	rc.log.Info("Reset delivery consumer started", slog.Any("topics", rc.topics))
}

func (rc *ResetConsumer) Stop() error {
	if rc.cancel != nil {
		rc.cancel()
	}
	err := rc.group.Close()
	rc.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

// ConsumerGroupHandler processes reset events: delivery first, then an
// in-app security notice for the account owner.
type ConsumerGroupHandler struct {
	deliverer     Deliverer
	notifications Service
	users         UserLookup
	maxRetries    int
	backoff       time.Duration
	now           func() time.Time
	log           *logger.Logger
}

func NewConsumerGroupHandler(deliverer Deliverer, notifications Service, lookup UserLookup, config *ConsumerConfig, log *logger.Logger) *ConsumerGroupHandler {
	return &ConsumerGroupHandler{
		deliverer:     deliverer,
		notifications: notifications,
		users:         lookup,
		maxRetries:    config.MaxRetries,
		backoff:       config.RetryBackoff,
		now:           time.Now,
		log:           log,
	}
}

func (h *ConsumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *ConsumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *ConsumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				h.log.Error("Reset event failed",
					slog.Int64("offset", message.Offset),
					slog.String("error", err.Error()),
				)
			}
			// poison messages are logged and skipped
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *ConsumerGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event PasswordResetEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal reset event: %w", err)
	}

	if event.IsExpired(h.now()) {
		h.log.Info("Reset event expired, skipping", slog.String("event_id", event.ID))
		return nil
	}

	if err := h.executeWithRetry(ctx, &event); err != nil {
		return err
	}

	h.notifyOwner(ctx, &event)
	return nil
}

func (h *ConsumerGroupHandler) executeWithRetry(ctx context.Context, event *PasswordResetEvent) error {
	var err error
	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		if err = h.deliverer.Deliver(ctx, event); err == nil {
			return nil
		}
		if attempt == h.maxRetries {
			break
		}

		delay := h.backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("deliver reset link after %d attempts: %w", h.maxRetries+1, err)
}

func (h *ConsumerGroupHandler) notifyOwner(ctx context.Context, event *PasswordResetEvent) {
	if h.notifications == nil || h.users == nil {
		return
	}

	userID := event.UserID
	if userID == 0 {
		user, err := h.users.FindByEmail(ctx, event.Email)
		if err != nil {
			return
		}
		userID = user.ID
	}

	err := h.notifications.Notify(ctx, &Notification{
		UserID:   userID,
		Title:    "Password reset requested",
		Message:  "A password reset link was sent to " + event.Email + ". If this was not you, contact your administrator.",
		Type:     TypeWarning,
		Priority: PriorityHigh,
	})
	if err != nil {
		h.log.Warn("Security notice not stored", slog.String("error", err.Error()))
	}
}

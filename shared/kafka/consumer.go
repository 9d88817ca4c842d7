// Package kafka runs a sarama consumer group over a single topic and hands
// each message to a MessageHandler.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// MessageHandler handles one consumed message.
//
// A non-nil error is retried in place with backoff, so the partition does not
// advance past the message until it succeeds or the session ends; an unfinished
// message is then redelivered to the next session. (false, nil) means skip the
// message without marking it. Kafka commits a single offset per partition, so a
// skipped message is only redelivered if nothing after it is marked first.
type MessageHandler interface {
	HandleMessage(ctx context.Context, message []byte) (done bool, err error)
}

// ConsumerConfig describes the group to join.
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler MessageHandler
	Logger  *zap.Logger

	// FromOldest starts a new group at the oldest retained offset so queued
	// work published before the first start is not skipped.
	FromOldest bool

	// RetryBackOff builds the schedule for retrying a failed message. Nil uses
	// DefaultRetryBackOff. A schedule that gives up skips the message unmarked.
	RetryBackOff func() backoff.BackOff
}

// DefaultRetryBackOff retries from one second up to once a minute, without giving up.
func DefaultRetryBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = time.Minute
	b.MaxElapsedTime = 0
	return b
}

// Consumer owns a sarama consumer group.
type Consumer struct {
	group   sarama.ConsumerGroup
	cfg     ConsumerConfig
	logger  *zap.Logger
	started chan struct{}
}

// NewConsumer connects to the brokers. Nothing is consumed until Start.
func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	if cfg.Handler == nil {
		return nil, errors.New("kafka: consumer needs a handler")
	}

	sc := sarama.NewConfig()
	sc.Version = sarama.V3_6_0_0
	sc.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	sc.Consumer.Return.Errors = true
	sc.Consumer.Offsets.Initial = sarama.OffsetNewest
	if cfg.FromOldest {
		sc.Consumer.Offsets.Initial = sarama.OffsetOldest
	}

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, sc)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("topic", cfg.Topic), zap.String("group", cfg.GroupID))
	if cfg.RetryBackOff == nil {
		cfg.RetryBackOff = DefaultRetryBackOff
	}

	return &Consumer{
		group:   group,
		cfg:     cfg,
		logger:  logger,
		started: make(chan struct{}),
	}, nil
}

// Start joins the group in the background and blocks until the first session
// has been set up or ctx is done.
func (c *Consumer) Start(ctx context.Context) error {
	gh := &groupHandler{
		handler:  c.cfg.Handler,
		newRetry: c.cfg.RetryBackOff,
		logger:   c.logger,
		started:  c.started,
	}

	go func() {
		for {
			err := c.group.Consume(ctx, []string{c.cfg.Topic}, gh)
			switch {
			case errors.Is(err, sarama.ErrClosedConsumerGroup), ctx.Err() != nil:
				return
			case err != nil:
				c.logger.Error("Consume failed", zap.Error(err))
			}
			// Consume returns on every rebalance; rejoin.
		}
	}()

	go func() {
		for err := range c.group.Errors() {
			c.logger.Error("Consumer group error", zap.Error(err))
		}
	}()

	select {
	case <-c.started:
		c.logger.Info("Kafka consumer started")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close leaves the group and commits marked offsets.
func (c *Consumer) Close() error {
	c.logger.Info("Closing Kafka consumer")
	return c.group.Close()
}

// groupHandler adapts a MessageHandler to sarama.ConsumerGroupHandler.
type groupHandler struct {
	handler  MessageHandler
	newRetry func() backoff.BackOff
	logger   *zap.Logger
	started  chan struct{}
	once     sync.Once
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	h.once.Do(func() { close(h.started) })
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			log := h.logger.With(zap.Int32("partition", msg.Partition), zap.Int64("offset", msg.Offset))
			log.Debug("Message received", zap.ByteString("key", msg.Key))

			if !deliver(session.Context(), h.handler, msg.Value, h.newRetry(), log) {
				if session.Context().Err() != nil {
					// Leave the rest of the claim for the next session.
					return nil
				}
				continue
			}
			session.MarkMessage(msg, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

// deliver runs handler on message until it stops failing, retrying on the
// schedule b. It reports whether the message should be marked; it returns
// false without marking when the handler skips the message or ctx ends first.
func deliver(ctx context.Context, handler MessageHandler, message []byte, b backoff.BackOff, log *zap.Logger) bool {
	var done bool
	attempt := 0
	op := func() error {
		attempt++
		d, err := handler.HandleMessage(ctx, message)
		if err != nil {
			log.Error("Message handling failed, retrying", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		done = d
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		log.Warn("Gave up on message", zap.Int("attempts", attempt), zap.Error(err))
		return false
	}
	return done
}

// TypedMessageHandler decodes JSON messages into T before validating and
// processing them.
type TypedMessageHandler[T any] struct {
	// Validate rejects messages that can never be processed. Nil accepts all.
	Validate func(msg *T) bool
	Process  func(ctx context.Context, msg *T) error
	// AlwaysMark marks undecodable and rejected messages as done. Without it
	// they are skipped unmarked. Processing failures are returned as errors and
	// retried by the consumer.
	AlwaysMark bool
	Logger     *zap.Logger
}

// HandleMessage implements MessageHandler.
func (h *TypedMessageHandler[T]) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var msg T
	if err := json.Unmarshal(message, &msg); err != nil {
		if h.Logger != nil {
			h.Logger.Warn("Dropping undecodable message", zap.Error(err))
		}
		return h.AlwaysMark, nil
	}

	if h.Validate != nil && !h.Validate(&msg) {
		return h.AlwaysMark, nil
	}

	if err := h.Process(ctx, &msg); err != nil {
		return false, err
	}
	return true, nil
}

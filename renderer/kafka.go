package renderer

import (
	"context"
	"errors"

	sharedKafka "ytautomation/shared/kafka"

	"go.uber.org/zap"
)

// ConsumerConfig holds the render queue settings.
type ConsumerConfig struct {
	Brokers   []string
	Topic     string
	GroupID   string
	Processor *Processor
	Logger    *zap.Logger
}

// NewJobHandler decodes render jobs. Jobs that fail validation are marked
// and dropped. A failed render is returned as an error, which the consumer
// retries in place with backoff, so later jobs on the same partition wait
// behind it and it is never committed past.
func NewJobHandler(processor *Processor, logger *zap.Logger) *sharedKafka.TypedMessageHandler[RenderJob] {
	return &sharedKafka.TypedMessageHandler[RenderJob]{
		Validate: func(job *RenderJob) bool {
			if err := job.CheckID(); err != nil {
				logger.Warn("Skipping job", zap.Error(err))
				return false
			}
			if _, err := job.Ext(); err != nil {
				logger.Warn("Skipping job", zap.String("job", job.ID), zap.Error(err))
				return false
			}
			if err := job.GenerationConfig.WithDefaults().Validate(); err != nil {
				logger.Warn("Skipping job", zap.String("job", job.ID), zap.Error(err))
				return false
			}
			return true
		},
		Process: func(ctx context.Context, job *RenderJob) error {
			res, err := processor.Process(ctx, *job)
			if err != nil {
				return err
			}
			logger.Info("Processed job", zap.String("job", res.ID), zap.Bool("skipped", res.Skipped))
			return nil
		},
		AlwaysMark: true,
		Logger:     logger,
	}
}

// RunConsumer consumes render jobs until ctx is done.
func RunConsumer(ctx context.Context, cfg ConsumerConfig) error {
	if cfg.Processor == nil {
		return errors.New("renderer: consumer needs a processor")
	}

	consumer, err := sharedKafka.NewConsumer(sharedKafka.ConsumerConfig{
		Brokers:    cfg.Brokers,
		Topic:      cfg.Topic,
		GroupID:    cfg.GroupID,
		Handler:    NewJobHandler(cfg.Processor, cfg.Logger),
		Logger:     cfg.Logger,
		FromOldest: true,
	})
	if err != nil {
		return err
	}

	if err := consumer.Start(ctx); err != nil {
		consumer.Close()
		return err
	}

	<-ctx.Done()
	cfg.Logger.Info("Stopping render consumer")
	return consumer.Close()
}

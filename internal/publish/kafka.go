package publish

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"motordiag/internal/config"
	"motordiag/internal/model"
)

// Publisher pushes completed diagnosis records to the external reporting
// layer. One message per sheet result, keyed by sheet so consumers see
// per-asset ordering. Publish failures are reported to the caller to log;
// they are never fatal to a run.
type Publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func New(cfg config.PublishConfig, logger *slog.Logger) *Publisher {
	if !cfg.Enabled {
		if logger != nil {
			logger.Info("publisher disabled")
		}
		return nil
	}
	if logger != nil {
		logger.Info("publisher enabled", "brokers", cfg.Brokers, "topic", cfg.Topic)
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(cfg.Brokers...),
			Topic:    cfg.Topic,
			Balancer: &kafka.Hash{},
		},
		logger: logger,
	}
}

func (p *Publisher) PublishResult(ctx context.Context, res *model.SheetResult) error {
	if p == nil || res == nil {
		return nil
	}
	value, err := json.Marshal(res)
	if err != nil {
		return err
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(res.Sheet),
		Value: value,
	})
	if err != nil && p.logger != nil {
		p.logger.Warn("publish failed", "sheet", res.Sheet, "err", err)
	}
	return err
}

func (p *Publisher) PublishRun(ctx context.Context, entries []model.SheetResult) error {
	if p == nil || len(entries) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(entries))
	for i := range entries {
		value, err := json.Marshal(&entries[i])
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{Key: []byte(entries[i].Sheet), Value: value})
	}
	err := p.writer.WriteMessages(ctx, msgs...)
	if err != nil && p.logger != nil {
		p.logger.Warn("publish failed", "messages", len(msgs), "err", err)
	}
	return err
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"campusanon/internal/model"
	"campusanon/internal/pkg"
)

const (
	relayInterval  = 3 * time.Second
	relayBatchSize = 100
)

type outboxStore interface {
	ListPending(ctx context.Context, batchSize int) ([]model.ModerationEvent, error)
	MarkSent(ctx context.Context, id uint64) error
	MarkFailed(ctx context.Context, id uint64) error
}

// Sender publishes one serialized moderation event keyed by the moderated
// item so events for the same item stay ordered.
type Sender func(ctx context.Context, key string, value []byte) error

func KafkaSender(p *pkg.KafkaProducer) Sender {
	return p.Send
}

// AuditRelayer drains the moderation outbox to the audit topic on a
// fixed tick. Failed rows are marked and retried on a later pass by an
// operator resetting their status.
type AuditRelayer struct {
	outbox outboxStore
	send   Sender
	log    *zap.Logger
}

func NewAuditRelayer(outbox outboxStore, send Sender, log *zap.Logger) *AuditRelayer {
	return &AuditRelayer{outbox: outbox, send: send, log: log}
}

func (r *AuditRelayer) Run(ctx context.Context) {
	ticker := time.NewTicker(relayInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.drainOnce(ctx); err != nil {
				r.log.Error("outbox drain failed", zap.Error(err))
			}
		}
	}
}

func (r *AuditRelayer) drainOnce(ctx context.Context) error {
	events, err := r.outbox.ListPending(ctx, relayBatchSize)
	if err != nil {
		return err
	}
	for _, ev := range events {
		key := pkg.KeyFromID(ev.ItemID)
		if err := r.send(ctx, key, []byte(ev.Payload)); err != nil {
			r.log.Warn("audit publish failed",
				zap.Uint64("event_id", ev.ID),
				zap.String("event_type", ev.EventType),
				zap.Error(err))
			if err := r.outbox.MarkFailed(ctx, ev.ID); err != nil {
				return err
			}
			continue
		}
		if err := r.outbox.MarkSent(ctx, ev.ID); err != nil {
			return err
		}
	}
	return nil
}

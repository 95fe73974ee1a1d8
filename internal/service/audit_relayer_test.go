package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"campusanon/internal/model"
)

type memOutboxStore struct {
	pending []model.ModerationEvent
	sent    []uint64
	failed  []uint64
}

func (s *memOutboxStore) ListPending(ctx context.Context, batchSize int) ([]model.ModerationEvent, error) {
	if len(s.pending) > batchSize {
		return s.pending[:batchSize], nil
	}
	return s.pending, nil
}

func (s *memOutboxStore) MarkSent(ctx context.Context, id uint64) error {
	s.sent = append(s.sent, id)
	return nil
}

func (s *memOutboxStore) MarkFailed(ctx context.Context, id uint64) error {
	s.failed = append(s.failed, id)
	return nil
}

func TestDrainOncePublishesAndMarks(t *testing.T) {
	outbox := &memOutboxStore{pending: []model.ModerationEvent{
		{ID: 1, EventType: model.EventAutoHide, ItemType: "post", ItemID: 10, Payload: `{"event":"auto_hide"}`},
		{ID: 2, EventType: model.EventAdminBan, ItemID: 7, Payload: `{"event":"admin_ban"}`},
	}}
	var keys []string
	var payloads []string
	send := func(ctx context.Context, key string, value []byte) error {
		keys = append(keys, key)
		payloads = append(payloads, string(value))
		return nil
	}

	relayer := NewAuditRelayer(outbox, send, zap.NewNop())
	if err := relayer.drainOnce(context.Background()); err != nil {
		t.Fatalf("drainOnce: %v", err)
	}

	if len(outbox.sent) != 2 || outbox.sent[0] != 1 || outbox.sent[1] != 2 {
		t.Errorf("sent %v, want [1 2]", outbox.sent)
	}
	if len(keys) != 2 || keys[0] != "10" || keys[1] != "7" {
		t.Errorf("keys %v, want item ids", keys)
	}
	if payloads[0] != `{"event":"auto_hide"}` {
		t.Errorf("payload %q passes through verbatim", payloads[0])
	}
}

func TestDrainOnceMarksFailures(t *testing.T) {
	outbox := &memOutboxStore{pending: []model.ModerationEvent{
		{ID: 1, EventType: model.EventAutoHide, ItemID: 10, Payload: `{}`},
		{ID: 2, EventType: model.EventAutoHide, ItemID: 11, Payload: `{}`},
	}}
	send := func(ctx context.Context, key string, value []byte) error {
		if key == "10" {
			return errors.New("broker unavailable")
		}
		return nil
	}

	relayer := NewAuditRelayer(outbox, send, zap.NewNop())
	if err := relayer.drainOnce(context.Background()); err != nil {
		t.Fatalf("drainOnce: %v", err)
	}

	// one failure does not block the rest of the batch
	if len(outbox.failed) != 1 || outbox.failed[0] != 1 {
		t.Errorf("failed %v, want [1]", outbox.failed)
	}
	if len(outbox.sent) != 1 || outbox.sent[0] != 2 {
		t.Errorf("sent %v, want [2]", outbox.sent)
	}
}

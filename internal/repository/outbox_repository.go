package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"epass-service/internal/storage"

	"github.com/google/uuid"
)

const (
	OutboxSlot = "pass_outbox"

	OutboxPending   = "pending"
	OutboxPublished = "published"
	OutboxFailed    = "failed"

	maxOutboxRetries = 5
)

type OutboxMessage struct {
	ID          uuid.UUID       `json:"id"`
	RoutingKey  string          `json:"routing_key"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
	RetryCount  int             `json:"retry_count"`
	LastError   *string         `json:"last_error,omitempty"`
	Status      string          `json:"status"`
}

// OutboxRepository keeps pass events waiting for the broker in one slot.
type OutboxRepository struct {
	mu    sync.Mutex
	slots storage.Slots
	now   func() time.Time
}

func NewOutboxRepository(slots storage.Slots, now func() time.Time) *OutboxRepository {
	if now == nil {
		now = time.Now
	}
	return &OutboxRepository{slots: slots, now: now}
}

func (r *OutboxRepository) load(ctx context.Context) ([]OutboxMessage, error) {
	var messages []OutboxMessage
	if _, err := readSlot(ctx, r.slots, OutboxSlot, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *OutboxRepository) mutate(ctx context.Context, fn func([]OutboxMessage) []OutboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages, err := r.load(ctx)
	if err != nil {
		return err
	}
	return writeSlot(ctx, r.slots, OutboxSlot, fn(messages))
}

func (r *OutboxRepository) Create(ctx context.Context, routingKey string, payload interface{}) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	msg := OutboxMessage{
		ID:         uuid.New(),
		RoutingKey: routingKey,
		Payload:    payloadBytes,
		CreatedAt:  r.now(),
		Status:     OutboxPending,
	}
	return r.mutate(ctx, func(messages []OutboxMessage) []OutboxMessage {
		return append(messages, msg)
	})
}

// GetPendingMessages returns up to limit pending messages, oldest first.
func (r *OutboxRepository) GetPendingMessages(ctx context.Context, limit int) ([]OutboxMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	var pending []OutboxMessage
	for _, m := range messages {
		if m.Status != OutboxPending {
			continue
		}
		pending = append(pending, m)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (r *OutboxRepository) MarkAsPublished(ctx context.Context, id uuid.UUID) error {
	now := r.now()
	return r.mutate(ctx, func(messages []OutboxMessage) []OutboxMessage {
		for i := range messages {
			if messages[i].ID == id {
				messages[i].Status = OutboxPublished
				messages[i].PublishedAt = &now
			}
		}
		return messages
	})
}

// MarkAsFailed records the error; the message stays pending until it has
// been retried maxOutboxRetries times.
func (r *OutboxRepository) MarkAsFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	return r.mutate(ctx, func(messages []OutboxMessage) []OutboxMessage {
		for i := range messages {
			if messages[i].ID != id {
				continue
			}
			messages[i].RetryCount++
			messages[i].LastError = &errMsg
			if messages[i].RetryCount >= maxOutboxRetries {
				messages[i].Status = OutboxFailed
			}
		}
		return messages
	})
}

func (r *OutboxRepository) DeletePublished(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := r.now().Add(-olderThan)
	var deleted int64
	err := r.mutate(ctx, func(messages []OutboxMessage) []OutboxMessage {
		kept := messages[:0]
		for _, m := range messages {
			if m.Status == OutboxPublished && m.PublishedAt != nil && m.PublishedAt.Before(cutoff) {
				deleted++
				continue
			}
			kept = append(kept, m)
		}
		return kept
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *OutboxRepository) GetStats(ctx context.Context) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	stats := map[string]int{OutboxPending: 0, OutboxPublished: 0, OutboxFailed: 0}
	for _, m := range messages {
		stats[m.Status]++
	}
	return stats, nil
}

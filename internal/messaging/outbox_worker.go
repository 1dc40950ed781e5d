package messaging

import (
	"context"
	"sync"
	"time"

	"epass-service/internal/logger"
	"epass-service/internal/metrics"
	"epass-service/internal/repository"
)

const (
	workerInterval     = 1 * time.Second
	batchSize          = 50
	cleanupInterval    = 1 * time.Hour
	publishedRetention = 24 * time.Hour
)

// OutboxWorker drains the pass outbox into the broker.
type OutboxWorker struct {
	outboxRepo *repository.OutboxRepository
	publisher  Publisher
	done       chan struct{}
	wg         sync.WaitGroup
	log        *logger.Logger
}

func NewOutboxWorker(outboxRepo *repository.OutboxRepository, publisher Publisher, log *logger.Logger) *OutboxWorker {
	return &OutboxWorker{
		outboxRepo: outboxRepo,
		publisher:  publisher,
		done:       make(chan struct{}),
		log:        log.With("component", "outbox"),
	}
}

func (w *OutboxWorker) Start() {
	w.wg.Add(2)
	go w.processLoop()
	go w.cleanupLoop()
	w.log.Info("started")
}

func (w *OutboxWorker) processLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(workerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.processPendingMessages(context.Background())
		}
	}
}

func (w *OutboxWorker) processPendingMessages(ctx context.Context) {
	messages, err := w.outboxRepo.GetPendingMessages(ctx, batchSize)
	if err != nil {
		w.log.Error("get pending", "error", err)
		return
	}

	for _, msg := range messages {
		if err := w.publisher.Publish(ctx, msg.ID.String(), msg.RoutingKey, msg.Payload); err != nil {
			metrics.OutboxPublished.WithLabelValues("failure").Inc()
			w.log.Warn("publish failed", "message_id", msg.ID, "routing_key", msg.RoutingKey, "error", err)
			if err := w.outboxRepo.MarkAsFailed(ctx, msg.ID, err.Error()); err != nil {
				w.log.Error("mark failed", "message_id", msg.ID, "error", err)
			}
			continue
		}

		metrics.OutboxPublished.WithLabelValues("success").Inc()
		if err := w.outboxRepo.MarkAsPublished(ctx, msg.ID); err != nil {
			w.log.Error("mark published", "message_id", msg.ID, "error", err)
		}
	}
}

func (w *OutboxWorker) cleanupLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			deleted, err := w.outboxRepo.DeletePublished(context.Background(), publishedRetention)
			if err != nil {
				w.log.Error("cleanup", "error", err)
			} else if deleted > 0 {
				w.log.Info("cleaned published messages", "count", deleted)
			}
		}
	}
}

func (w *OutboxWorker) Stop() {
	close(w.done)
	w.wg.Wait()
	w.log.Info("stopped")
}

func (w *OutboxWorker) GetStats(ctx context.Context) (map[string]int, error) {
	return w.outboxRepo.GetStats(ctx)
}

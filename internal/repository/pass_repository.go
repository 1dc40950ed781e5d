package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"epass-service/internal/logger"
	"epass-service/internal/model"
	"epass-service/internal/storage"
)

const PassesSlot = "user_passes"

var (
	ErrPassNotFound      = errors.New("pass not found")
	ErrCorruptCollection = errors.New("stored pass collection is malformed")
)

// PassRepository stores every pass as one JSON array in a single slot. Each
// write rewrites the whole array; mu makes read-modify-write cycles atomic.
type PassRepository struct {
	mu    sync.Mutex
	slots storage.Slots
	seed  func() []model.Pass
	log   *logger.Logger
}

// NewPassRepository wires the store. seed, if non-nil, supplies the
// collection persisted on first access when the slot is empty.
func NewPassRepository(slots storage.Slots, seed func() []model.Pass, log *logger.Logger) *PassRepository {
	return &PassRepository{
		slots: slots,
		seed:  seed,
		log:   log.With("component", "pass_repository"),
	}
}

// load must be called with mu held.
func (r *PassRepository) load(ctx context.Context) ([]model.Pass, error) {
	var passes []model.Pass
	found, err := readSlot(ctx, r.slots, PassesSlot, &passes)
	if err != nil {
		var de *decodeError
		if errors.As(err, &de) {
			r.log.Error("pass collection unreadable, leaving slot untouched", "slot", PassesSlot, "error", err)
			return nil, fmt.Errorf("%w: %v", ErrCorruptCollection, err)
		}
		return nil, err
	}
	if found {
		return passes, nil
	}
	if r.seed == nil {
		return []model.Pass{}, nil
	}

	passes = r.seed()
	if err := writeSlot(ctx, r.slots, PassesSlot, passes); err != nil {
		return nil, err
	}
	r.log.Info("seeded pass collection", "count", len(passes))
	return passes, nil
}

// List returns every pass in insertion order.
func (r *PassRepository) List(ctx context.Context) ([]model.Pass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

func (r *PassRepository) FindByID(ctx context.Context, id string) (*model.Pass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	passes, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range passes {
		if passes[i].ID == id {
			p := passes[i]
			return &p, nil
		}
	}
	return nil, ErrPassNotFound
}

func (r *PassRepository) Append(ctx context.Context, pass *model.Pass) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	passes, err := r.load(ctx)
	if err != nil {
		return err
	}
	passes = append(passes, *pass)
	return writeSlot(ctx, r.slots, PassesSlot, passes)
}

// Replace applies update to a copy of the pass with the given id and persists
// the result. Nothing is written when update fails.
func (r *PassRepository) Replace(ctx context.Context, id string, update func(*model.Pass) error) (*model.Pass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	passes, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range passes {
		if passes[i].ID != id {
			continue
		}
		updated := passes[i]
		if err := update(&updated); err != nil {
			return nil, err
		}
		passes[i] = updated
		if err := writeSlot(ctx, r.slots, PassesSlot, passes); err != nil {
			return nil, err
		}
		return &updated, nil
	}
	return nil, ErrPassNotFound
}

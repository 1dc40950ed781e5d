package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"epass-service/internal/storage"
)

// readSlot decodes the JSON value under key into v. found is false when the
// slot has never been written.
func readSlot(ctx context.Context, slots storage.Slots, key string, v interface{}) (found bool, err error) {
	data, err := slots.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, &decodeError{key: key, err: err}
	}
	return true, nil
}

func writeSlot(ctx context.Context, slots storage.Slots, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", key, err)
	}
	return slots.Put(ctx, key, data)
}

type decodeError struct {
	key string
	err error
}

func (e *decodeError) Error() string {
	return fmt.Sprintf("decode slot %s: %v", e.key, e.err)
}

func (e *decodeError) Unwrap() error { return e.err }

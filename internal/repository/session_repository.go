package repository

import (
	"context"
	"errors"

	"epass-service/internal/logger"
	"epass-service/internal/model"
	"epass-service/internal/storage"
)

const sessionSlotPrefix = "auth:"

// SessionRepository persists one AuthState per session id, each in its own
// slot next to (never inside) the pass collection.
type SessionRepository struct {
	slots storage.Slots
	log   *logger.Logger
}

func NewSessionRepository(slots storage.Slots, log *logger.Logger) *SessionRepository {
	return &SessionRepository{
		slots: slots,
		log:   log.With("component", "session_repository"),
	}
}

func sessionSlot(sessionID string) string {
	return sessionSlotPrefix + sessionID
}

// Load returns the stored state, or the anonymous state when nothing is
// stored. A slot that no longer decodes is deleted and treated as anonymous.
func (r *SessionRepository) Load(ctx context.Context, sessionID string) (*model.Session, error) {
	var session model.Session
	found, err := readSlot(ctx, r.slots, sessionSlot(sessionID), &session)
	if err != nil {
		var de *decodeError
		if !errors.As(err, &de) {
			return nil, err
		}
		r.log.Warn("discarding corrupt session", "session_id", sessionID, "error", err)
		if err := r.slots.Delete(ctx, sessionSlot(sessionID)); err != nil {
			r.log.Error("delete corrupt session", "session_id", sessionID, "error", err)
		}
		return model.AnonymousSession(), nil
	}
	if !found {
		return model.AnonymousSession(), nil
	}
	return &session, nil
}

func (r *SessionRepository) Save(ctx context.Context, sessionID string, session *model.Session) error {
	return writeSlot(ctx, r.slots, sessionSlot(sessionID), session)
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.slots.Delete(ctx, sessionSlot(sessionID))
}

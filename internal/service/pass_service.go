package service

import (
	"context"
	"strings"
	"time"

	"epass-service/internal/logger"
	"epass-service/internal/messaging"
	"epass-service/internal/metrics"
	"epass-service/internal/model"
	"epass-service/internal/repository"
	"epass-service/internal/validation"

	"github.com/google/uuid"
)

// EventSink receives pass events after the store write succeeded.
type EventSink interface {
	Create(ctx context.Context, routingKey string, payload interface{}) error
}

// PassService is the only writer of pass status.
type PassService struct {
	passes *repository.PassRepository
	events EventSink
	now    func() time.Time
	log    *logger.Logger
}

// NewPassService wires the controller. events may be nil when messaging is
// disabled.
func NewPassService(passes *repository.PassRepository, events EventSink, now func() time.Time, log *logger.Logger) *PassService {
	if now == nil {
		now = time.Now
	}
	return &PassService{
		passes: passes,
		events: events,
		now:    now,
		log:    log.With("component", "pass_service"),
	}
}

// Submit files a new application for the signed-in citizen. Validation
// failures come back as validation.Errors and change nothing.
func (s *PassService) Submit(ctx context.Context, principal model.Principal, draft *model.Draft) (*model.Pass, error) {
	user, err := requireCitizen(principal)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if errs := validation.Validate(draft, now); len(errs) > 0 {
		metrics.ValidationFailures.Inc()
		return nil, errs
	}

	pass := &model.Pass{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		CategoryID:  strings.TrimSpace(draft.CategoryID),
		FullName:    strings.TrimSpace(draft.FullName),
		Email:       strings.TrimSpace(draft.Email),
		Phone:       strings.TrimSpace(draft.Phone),
		Address:     strings.TrimSpace(draft.Address),
		Destination: strings.TrimSpace(draft.Destination),
		Purpose:     strings.TrimSpace(draft.Purpose),
		StartDate:   strings.TrimSpace(draft.StartDate),
		EndDate:     strings.TrimSpace(draft.EndDate),
		StartTime:   strings.TrimSpace(draft.StartTime),
		EndTime:     strings.TrimSpace(draft.EndTime),
		Status:      model.StatusPending,
		AppliedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.passes.Append(ctx, pass); err != nil {
		return nil, err
	}
	metrics.PassesSubmitted.Inc()
	s.log.Info("pass submitted", "pass_id", pass.ID, "user_id", pass.UserID, "category_id", pass.CategoryID)

	s.emit(ctx, messaging.RoutingKeyPassSubmitted, messaging.PassSubmittedMessage{
		PassID:      pass.ID,
		UserID:      pass.UserID,
		Email:       pass.Email,
		CategoryID:  pass.CategoryID,
		Destination: pass.Destination,
		StartDate:   pass.StartDate,
		EndDate:     pass.EndDate,
		Timestamp:   now.Unix(),
	})
	return pass, nil
}

// Decide records an administrator decision. A pass that was already decided
// is overwritten: the last decision wins.
func (s *PassService) Decide(ctx context.Context, principal model.Principal, passID string, decision model.PassStatus, notes string) (*model.Pass, error) {
	admin, err := requireAdministrator(principal)
	if err != nil {
		return nil, err
	}
	if !decision.Decided() {
		return nil, ErrInvalidDecision
	}

	var previous model.PassStatus
	pass, err := s.passes.Replace(ctx, passID, func(p *model.Pass) error {
		previous = p.Status
		now := s.now()
		if !now.After(p.UpdatedAt) {
			now = p.UpdatedAt.Add(time.Nanosecond)
		}
		approvedBy := admin.Username
		p.Status = decision
		p.AdminNotes = &notes
		p.ApprovedBy = &approvedBy
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if previous.Decided() {
		s.log.Warn("overwriting earlier decision", "pass_id", pass.ID, "previous", previous, "decision", decision)
	}
	metrics.PassDecisions.WithLabelValues(string(decision)).Inc()
	s.log.Info("pass decided", "pass_id", pass.ID, "decision", decision, "approved_by", admin.Username)

	s.emit(ctx, messaging.RoutingKeyPassDecided, messaging.PassDecidedMessage{
		PassID:     pass.ID,
		UserID:     pass.UserID,
		Email:      pass.Email,
		NewStatus:  string(pass.Status),
		AdminNotes: notes,
		ApprovedBy: admin.Username,
		Timestamp:  pass.UpdatedAt.Unix(),
	})
	return pass, nil
}

func (s *PassService) emit(ctx context.Context, routingKey string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Create(ctx, routingKey, payload); err != nil {
		s.log.Error("enqueue pass event", "routing_key", routingKey, "error", err)
	}
}

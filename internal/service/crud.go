package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	contractmq "projectdesk/contracts/mq"
	"projectdesk/internal/apperr"
	"projectdesk/internal/repository"
	"projectdesk/pkg/logger"
	"projectdesk/pkg/metrics"
)

// crud implements the five resource operations on top of a Repository.
// Each operation is a single storage call; nothing is retried.
type crud[T any] struct {
	name  string // lower-case resource name used in events and metrics
	title string // capitalised name used in client messages

	repo   Repository[T]
	events notifier
	logger *zap.Logger

	setID func(rec *T, id int)
	wire  func(rec *T) any
}

func (s *crud[T]) List(ctx context.Context) ([]T, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, "listing", 0, err)
	}
	return recs, nil
}

func (s *crud[T]) Get(ctx context.Context, id int) (*T, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "retrieving", id, err)
	}
	return rec, nil
}

// Create inserts rec and returns the persisted record with its id.
func (s *crud[T]) Create(ctx context.Context, rec T) (*T, error) {
	id, err := s.repo.Insert(ctx, &rec)
	if err != nil {
		metrics.IncrementResourceMutation(s.name, contractmq.ActionCreated, "failed")
		return nil, s.fail(ctx, "creating", 0, err)
	}
	s.setID(&rec, id)

	logger.WithTrace(ctx, s.logger).Info(s.title+" created", zap.Int("id", id))
	metrics.IncrementResourceMutation(s.name, contractmq.ActionCreated, "success")
	s.events.changed(ctx, s.name, contractmq.ActionCreated, id, s.wire(&rec))
	return &rec, nil
}

// Update overwrites every field of the record identified by id.
func (s *crud[T]) Update(ctx context.Context, id int, rec T) (*T, error) {
	s.setID(&rec, id)
	return s.save(ctx, id, &rec)
}

func (s *crud[T]) save(ctx context.Context, id int, rec *T) (*T, error) {
	if err := s.repo.Update(ctx, rec); err != nil {
		metrics.IncrementResourceMutation(s.name, contractmq.ActionUpdated, "failed")
		return nil, s.fail(ctx, "updating", id, err)
	}

	logger.WithTrace(ctx, s.logger).Info(s.title+" updated", zap.Int("id", id))
	metrics.IncrementResourceMutation(s.name, contractmq.ActionUpdated, "success")
	s.events.changed(ctx, s.name, contractmq.ActionUpdated, id, s.wire(rec))
	return rec, nil
}

// Delete removes the record, failing with NotFound when it does not exist.
func (s *crud[T]) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		metrics.IncrementResourceMutation(s.name, contractmq.ActionDeleted, "failed")
		return s.fail(ctx, "deleting", id, err)
	}

	logger.WithTrace(ctx, s.logger).Info(s.title+" deleted", zap.Int("id", id))
	metrics.IncrementResourceMutation(s.name, contractmq.ActionDeleted, "success")
	s.events.changed(ctx, s.name, contractmq.ActionDeleted, id, nil)
	return nil
}

// fail translates a storage error into the API error taxonomy.
func (s *crud[T]) fail(ctx context.Context, verb string, id int, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(s.title + " not found")
	}

	log := logger.WithTrace(ctx, s.logger).With(
		zap.String("resource", s.name),
		zap.String("op", verb),
		zap.Int("id", id),
		zap.Error(err),
	)
	if repository.IsConstraintViolation(err) {
		log.Warn("Constraint violation")
	} else {
		log.Error("Storage operation failed")
	}

	return apperr.Storage(fmt.Sprintf("An error occurred while %s the %s", verb, s.name), err)
}

package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/installment-service/internal/models"
	"github.com/Dan9191/installment-service/internal/utils/dates"
)

// Store persists notification records
//
//go:generate mockgen -destination=mocks/mock_store.go -source=engine.go Store
type Store interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	ExistsWithKeyBetween(ctx context.Context, key string, from, to time.Time) (bool, error)
}

// Engine decides whether a key may raise an alert today. A key gets at most one record per
// calendar day; the next day it becomes eligible again even if the condition still holds.
type Engine struct {
	store Store
	loc   *time.Location
	now   func() time.Time
}

// NewEngine creates a dedup engine scoped to calendar days in loc
func NewEngine(store Store, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{store: store, loc: loc, now: time.Now}
}

// WithClock replaces the engine clock
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Now returns the engine clock reading
func (e *Engine) Now() time.Time {
	return e.now()
}

// Today returns the current calendar date as YYYY-MM-DD
func (e *Engine) Today() string {
	return dates.Today(e.now(), e.loc)
}

// Location returns the location calendar days are computed in
func (e *Engine) Location() *time.Location {
	return e.loc
}

// ExistsTodayWithKey reports whether a record with key was created during the current day
func (e *Engine) ExistsTodayWithKey(ctx context.Context, key string) (bool, error) {
	from, to := dates.DayBounds(e.now(), e.loc)
	exists, err := e.store.ExistsWithKeyBetween(ctx, key, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to check notification %s: %w", key, err)
	}
	return exists, nil
}

// ShouldNotify reports whether no record with key exists today
func (e *Engine) ShouldNotify(ctx context.Context, key string) (bool, error) {
	exists, err := e.ExistsTodayWithKey(ctx, key)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// Create persists a new unread record for key
func (e *Engine) Create(ctx context.Context, message string, t models.NotificationType, key string) (*models.Notification, error) {
	n := &models.Notification{
		Key:       key,
		Message:   message,
		Type:      t,
		CreatedAt: e.now(),
	}
	if err := e.store.CreateNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("failed to create notification %s: %w", key, err)
	}
	return n, nil
}

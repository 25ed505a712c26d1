package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// SessionRepo is the append-only per-user session log. The log is the
// source for pure recomputation of a profile if that ever becomes
// necessary; entries are never updated or deleted individually.
type SessionRepo interface {
	// Append records one completed session.
	Append(ctx context.Context, event *SessionEvent) error

	// Recent returns the user's most recent sessions, newest first.
	Recent(ctx context.Context, userID string, limit int) ([]SessionEvent, error)

	// CountForUser returns the number of logged sessions for the user.
	CountForUser(ctx context.Context, userID string) (int64, error)
}

type sessionRepo struct {
	db *gorm.DB
}

func (r *sessionRepo) Append(ctx context.Context, event *SessionEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("append session event: %w", err)
	}
	return nil
}

func (r *sessionRepo) Recent(ctx context.Context, userID string, limit int) ([]SessionEvent, error) {
	var events []SessionEvent
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	return events, nil
}

func (r *sessionRepo) CountForUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&SessionEvent{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count session events: %w", err)
	}
	return n, nil
}

package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"teachsim/internal/profile"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ProfileRepo manages trainee accounts and their aggregated state.
type ProfileRepo interface {
	// Create inserts a new user record.
	Create(ctx context.Context, user *UserRecord) error

	// Get returns the user by ID, or ErrNotFound.
	Get(ctx context.Context, userID string) (*UserRecord, error)

	// GetByEmail returns the user by email, or ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*UserRecord, error)

	// Apply runs fn against the user's current snapshot inside a
	// transaction and persists the snapshot fn returns. The transaction
	// serializes concurrent folds for the same user: each fold reads the
	// committed result of the previous one, never a stale snapshot.
	Apply(ctx context.Context, userID string, fn func(profile.Snapshot) (profile.Snapshot, error)) error
}

type profileRepo struct {
	db *gorm.DB
}

func (r *profileRepo) Create(ctx context.Context, user *UserRecord) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *profileRepo) Get(ctx context.Context, userID string) (*UserRecord, error) {
	var user UserRecord
	err := r.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*UserRecord, error) {
	var user UserRecord
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (r *profileRepo) Apply(ctx context.Context, userID string, fn func(profile.Snapshot) (profile.Snapshot, error)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user UserRecord
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load user: %w", err)
		}

		next, err := fn(user.Snapshot())
		if err != nil {
			return err
		}

		user.SetSnapshot(next)
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		return nil
	})
}

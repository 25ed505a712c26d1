package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"teachsim/internal/profile"
	"teachsim/internal/store"
)

var (
	// ErrEmailTaken is returned when registering an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for a bad email/password pair.
	// Login never distinguishes "no such user" from "wrong password".
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports a registration field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Config tunes account behavior.
type Config struct {
	// JWTSecret signs session tokens. Must be non-empty.
	JWTSecret []byte
	// TokenTTL is how long issued tokens stay valid.
	TokenTTL time.Duration
	// BcryptCost is the password hashing cost. Zero means bcrypt's
	// default.
	BcryptCost int
}

// DefaultConfig returns standard account settings with the given secret.
func DefaultConfig(secret []byte) Config {
	return Config{
		JWTSecret: secret,
		TokenTTL:  7 * 24 * time.Hour,
	}
}

// User is the public view of an account.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// SessionOutcome is what the trainee sees after a session folds into
// their profile.
type SessionOutcome struct {
	Snapshot      profile.Snapshot
	NewlyUnlocked []profile.Achievement
}

// Service manages accounts and folds completed sessions into profiles.
type Service struct {
	profiles store.ProfileRepo
	sessions store.SessionRepo
	cfg      Config
	now      func() time.Time
}

// NewService creates an account service.
func NewService(profiles store.ProfileRepo, sessions store.SessionRepo, cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 7 * 24 * time.Hour
	}
	return &Service{
		profiles: profiles,
		sessions: sessions,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Register creates an account and returns the user with a signed session
// token.
func (s *Service) Register(ctx context.Context, email, password, displayName string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateRegistration(email, password); err != nil {
		return nil, "", err
	}

	if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	record := &store.UserRecord{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(displayName),
	}
	record.SetSnapshot(profile.NewSnapshot())

	if err := s.profiles.Create(ctx, record); err != nil {
		return nil, "", err
	}

	token, err := issueToken(s.cfg.JWTSecret, record.ID, s.cfg.TokenTTL, s.now())
	if err != nil {
		return nil, "", err
	}
	return userOf(record), token, nil
}

// Login verifies credentials and returns the user with a fresh token.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	record, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := issueToken(s.cfg.JWTSecret, record.ID, s.cfg.TokenTTL, s.now())
	if err != nil {
		return nil, "", err
	}
	return userOf(record), token, nil
}

// Authenticate resolves a session token to the user ID it was issued to.
func (s *Service) Authenticate(token string) (string, error) {
	return parseToken(s.cfg.JWTSecret, token)
}

// Profile returns the user's account info and aggregated training state.
func (s *Service) Profile(ctx context.Context, userID string) (*User, profile.Snapshot, error) {
	record, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, profile.Snapshot{}, err
	}
	return userOf(record), record.Snapshot(), nil
}

// CompleteSession folds an evaluated session into the user's profile and
// appends it to the session log. The fold runs inside the profile
// transaction; the log append happens after commit, so a crash between
// the two loses the log entry but never the profile update.
func (s *Service) CompleteSession(ctx context.Context, userID, scenarioID string, result profile.SessionResult, messageCount int) (*SessionOutcome, error) {
	var outcome SessionOutcome

	err := s.profiles.Apply(ctx, userID, func(snap profile.Snapshot) (profile.Snapshot, error) {
		folded := profile.FoldSession(snap, result, s.now())

		next := profile.Snapshot{
			Progress:     folded.Progress,
			Skills:       folded.Skills,
			Achievements: folded.Achievements,
		}
		outcome.Snapshot = next
		outcome.NewlyUnlocked = make([]profile.Achievement, 0, len(folded.NewlyUnlocked))
		for _, id := range folded.NewlyUnlocked {
			outcome.NewlyUnlocked = append(outcome.NewlyUnlocked, folded.Achievements[id])
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Append(ctx, &store.SessionEvent{
		UserID:       userID,
		ScenarioID:   scenarioID,
		Score:        result.Score,
		DurationMs:   result.DurationMs,
		SkillsGained: store.SkillsColumn(result.SkillsGained),
		MessageCount: messageCount,
	}); err != nil {
		return nil, err
	}

	return &outcome, nil
}

// RecentSessions returns the user's latest logged sessions, newest first.
func (s *Service) RecentSessions(ctx context.Context, userID string, limit int) ([]store.SessionEvent, error) {
	return s.sessions.Recent(ctx, userID, limit)
}

func validateRegistration(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Reason: "must be a valid address"}
	}
	if len(password) < 8 {
		return &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	return nil
}

func userOf(r *store.UserRecord) *User {
	return &User{ID: r.ID, Email: r.Email, DisplayName: r.DisplayName}
}

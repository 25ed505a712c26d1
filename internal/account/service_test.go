package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"teachsim/internal/profile"
	"teachsim/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cfg := DefaultConfig([]byte("test-secret"))
	cfg.BcryptCost = bcrypt.MinCost
	return NewService(st.ProfileRepo(), st.SessionRepo(), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Ana@Example.com", "correct-horse", "Ana")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Errorf("Email = %q, want lowercased", user.Email)
	}
	if token == "" {
		t.Error("Register() returned empty token")
	}

	got, err := svc.Authenticate(token)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if got != user.ID {
		t.Errorf("Authenticate() = %q, want %q", got, user.ID)
	}

	loggedIn, token2, err := svc.Login(ctx, "ana@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loggedIn.ID != user.ID || token2 == "" {
		t.Errorf("Login() = %+v, token %q", loggedIn, token2)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "long-enough"},
		{"no at sign", "not-an-email", "long-enough"},
		{"short password", "a@b.com", "short"},
	}
	for _, tt := range tests {
		_, _, err := svc.Register(ctx, tt.email, tt.password, "X")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: error = %v, want ValidationError", tt.name, err)
		}
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "dup@example.com", "password1", "A"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	_, _, err := svc.Register(ctx, "DUP@example.com", "password2", "B")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "u@example.com", "password1", "U"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, _, err := svc.Login(ctx, "u@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticate_RejectsBadTokens(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, token, err := svc.Register(ctx, "t@example.com", "password1", "T")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	other := NewService(nil, nil, DefaultConfig([]byte("other-secret")))
	if _, err := other.Authenticate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: error = %v, want ErrInvalidToken", err)
	}
	if _, err := svc.Authenticate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token: error = %v, want ErrInvalidToken", err)
	}
}

func TestAuthenticate_RejectsExpiredToken(t *testing.T) {
	svc := newTestService(t)
	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	svc.cfg.TokenTTL = time.Hour

	_, token, err := svc.Register(context.Background(), "old@example.com", "password1", "O")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := svc.Authenticate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: error = %v, want ErrInvalidToken", err)
	}
}

func TestCompleteSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	fixed := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	user, _, err := svc.Register(ctx, "s@example.com", "password1", "S")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result := profile.SessionResult{
		Score:      95,
		DurationMs: 300000,
		SkillsGained: profile.SkillSet{
			profile.SkillEmpathy: 90,
		},
	}
	outcome, err := svc.CompleteSession(ctx, user.ID, "angry-parent", result, 14)
	if err != nil {
		t.Fatalf("CompleteSession() error = %v", err)
	}

	p := outcome.Snapshot.Progress
	if p.TotalSessions != 1 || p.AverageScore != 95 || p.Streak != 1 {
		t.Errorf("Progress = %+v", p)
	}
	if outcome.Snapshot.Skills[profile.SkillEmpathy] != 62 {
		t.Errorf("empathy = %d, want 62", outcome.Snapshot.Skills[profile.SkillEmpathy])
	}

	// first_session and perfectionist unlock on a 95-point first session.
	if len(outcome.NewlyUnlocked) != 2 {
		t.Fatalf("NewlyUnlocked = %+v, want 2 entries", outcome.NewlyUnlocked)
	}
	for _, a := range outcome.NewlyUnlocked {
		if !a.UnlockedAt.Equal(fixed) {
			t.Errorf("UnlockedAt = %v, want %v", a.UnlockedAt, fixed)
		}
	}

	sessions, err := svc.RecentSessions(ctx, user.ID, 10)
	if err != nil {
		t.Fatalf("RecentSessions() error = %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(sessions))
	}
	if sessions[0].ScenarioID != "angry-parent" || sessions[0].Score != 95 || sessions[0].MessageCount != 14 {
		t.Errorf("session = %+v", sessions[0])
	}

	// A second session the next day folds over the committed profile.
	svc.now = func() time.Time { return fixed.Add(25 * time.Hour) }
	outcome, err = svc.CompleteSession(ctx, user.ID, "disruptive-student", profile.SessionResult{Score: 60, DurationMs: 60000}, 8)
	if err != nil {
		t.Fatalf("second CompleteSession() error = %v", err)
	}
	p = outcome.Snapshot.Progress
	if p.TotalSessions != 2 || p.AverageScore != 78 || p.Streak != 2 {
		t.Errorf("after second session: Progress = %+v", p)
	}
	if len(outcome.NewlyUnlocked) != 0 {
		t.Errorf("NewlyUnlocked = %+v, want none", outcome.NewlyUnlocked)
	}
}

func TestCompleteSession_UnknownUser(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CompleteSession(context.Background(), "no-such-user", "angry-parent", profile.SessionResult{Score: 50}, 1)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

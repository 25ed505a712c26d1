package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"teachsim/internal/profile"
)

// UserRecord is a trainee account plus their aggregated training state.
// Progress, skills and achievements are stored as JSON columns: they are
// read and written as one unit per session fold, never queried by field.
type UserRecord struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:255"`
	PasswordHash string `gorm:"size:100"`
	DisplayName  string `gorm:"size:100"`

	Progress     ProgressColumn     `gorm:"type:text"`
	Skills       SkillsColumn       `gorm:"type:text"`
	Achievements AchievementsColumn `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserRecord) TableName() string { return "users" }

// Snapshot assembles the profile snapshot stored on this record.
func (u *UserRecord) Snapshot() profile.Snapshot {
	snap := profile.Snapshot{
		Progress:     profile.Progress(u.Progress),
		Skills:       profile.SkillSet(u.Skills),
		Achievements: profile.AchievementSet(u.Achievements),
	}
	if snap.Skills == nil {
		snap.Skills = profile.SkillSet{}
	}
	if snap.Achievements == nil {
		snap.Achievements = profile.AchievementSet{}
	}
	return snap
}

// SetSnapshot writes the snapshot back onto the record's JSON columns.
func (u *UserRecord) SetSnapshot(snap profile.Snapshot) {
	u.Progress = ProgressColumn(snap.Progress)
	u.Skills = SkillsColumn(snap.Skills)
	u.Achievements = AchievementsColumn(snap.Achievements)
}

// SessionEvent is one appended entry in the per-user session log.
type SessionEvent struct {
	ID           int64        `gorm:"primaryKey;autoIncrement"`
	UserID       string       `gorm:"size:36;index"`
	ScenarioID   string       `gorm:"size:64"`
	Score        int
	DurationMs   int64
	SkillsGained SkillsColumn `gorm:"type:text"`
	MessageCount int
	CreatedAt    time.Time
}

func (SessionEvent) TableName() string { return "session_events" }

// LLMRequestEvent records a single LLM API call.
type LLMRequestEvent struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Provider     string `gorm:"size:32"`
	Model        string `gorm:"size:64"`
	Purpose      string `gorm:"size:32;index"`
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string `gorm:"type:text"`
	CreatedAt    time.Time
}

func (LLMRequestEvent) TableName() string { return "llm_events" }

// AnalyticsEvent is a client-reported product event.
type AnalyticsEvent struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	UserID    string  `gorm:"size:36;index"`
	Name      string  `gorm:"size:64;index"`
	Props     JSONMap `gorm:"type:text"`
	CreatedAt time.Time
}

func (AnalyticsEvent) TableName() string { return "analytics_events" }

// JSON column wrappers. SQLite has no native JSON type, so these
// marshal through text via the driver interfaces.

type ProgressColumn profile.Progress

func (p ProgressColumn) Value() (driver.Value, error) { return jsonValue(p) }
func (p *ProgressColumn) Scan(src any) error          { return jsonScan(src, p) }

type SkillsColumn profile.SkillSet

func (s SkillsColumn) Value() (driver.Value, error) { return jsonValue(s) }
func (s *SkillsColumn) Scan(src any) error          { return jsonScan(src, s) }

type AchievementsColumn profile.AchievementSet

func (a AchievementsColumn) Value() (driver.Value, error) { return jsonValue(a) }
func (a *AchievementsColumn) Scan(src any) error          { return jsonScan(src, a) }

// JSONMap stores free-form event properties.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return jsonValue(m)
}
func (m *JSONMap) Scan(src any) error { return jsonScan(src, m) }

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(src, dst any) error {
	if src == nil {
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}

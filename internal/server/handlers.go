package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teachsim/internal/account"
	"teachsim/internal/analytics"
	"teachsim/internal/llm"
	"teachsim/internal/profile"
	"teachsim/internal/simulation"
	"teachsim/internal/store"
)

// Handler carries the services the HTTP endpoints delegate to.
type Handler struct {
	log       *zap.SugaredLogger
	accounts  *account.Service
	simulator *simulation.Service
	events    *analytics.Dispatcher
}

// NewHandler creates the endpoint handler set.
func NewHandler(log *zap.SugaredLogger, accounts *account.Service, simulator *simulation.Service, events *analytics.Dispatcher) *Handler {
	return &Handler{log: log, accounts: accounts, simulator: simulator, events: events}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type credentialsRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
}

type authResponse struct {
	User  *account.User `json:"user"`
	Token string        `json:"token"`
}

// Register creates an account.
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	user, token, err := h.accounts.Register(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, authResponse{User: user, Token: token})
}

// Login authenticates an existing account.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	user, token, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, authResponse{User: user, Token: token})
}

// Scenarios lists the training catalog.
func (h *Handler) Scenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"scenarios": simulation.Scenarios()})
}

type chatRequest struct {
	ScenarioID string            `json:"scenarioId" binding:"required"`
	Transcript []simulation.Turn `json:"transcript" binding:"required"`
}

// Chat generates the persona's next reply in a running conversation.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scenarioId and transcript are required"})
		return
	}
	reply, err := h.simulator.Reply(c.Request.Context(), req.ScenarioID, req.Transcript)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

type completeSessionRequest struct {
	ScenarioID string            `json:"scenarioId" binding:"required"`
	Transcript []simulation.Turn `json:"transcript" binding:"required"`
	DurationMs int64             `json:"durationMs"`
}

type completeSessionResponse struct {
	Score         int                   `json:"score"`
	Feedback      string                `json:"feedback"`
	Profile       profileJSON           `json:"profile"`
	NewlyUnlocked []profile.Achievement `json:"newlyUnlocked"`
}

// CompleteSession grades the conversation and folds the result into the
// trainee's profile.
func (h *Handler) CompleteSession(c *gin.Context) {
	var req completeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scenarioId and transcript are required"})
		return
	}

	result, feedback, err := h.simulator.Evaluate(c.Request.Context(), req.ScenarioID, req.Transcript, req.DurationMs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID := currentUserID(c)
	outcome, err := h.accounts.CompleteSession(c.Request.Context(), userID, req.ScenarioID, result, len(req.Transcript))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.events.Track(store.AnalyticsEventData{
		UserID: userID,
		Name:   "session_completed",
		Props: map[string]any{
			"scenario": req.ScenarioID,
			"score":    result.Score,
		},
	})

	c.JSON(http.StatusOK, completeSessionResponse{
		Score:         result.Score,
		Feedback:      feedback,
		Profile:       profileOf(outcome.Snapshot),
		NewlyUnlocked: outcome.NewlyUnlocked,
	})
}

type profileJSON struct {
	TotalSessions      int                            `json:"totalSessions"`
	CompletedScenarios int                            `json:"completedScenarios"`
	AverageScore       int                            `json:"averageScore"`
	TotalTimeMs        int64                          `json:"totalTimeMs"`
	Streak             int                            `json:"streak"`
	LastSessionAt      string                         `json:"lastSessionAt,omitempty"`
	Skills             map[string]int                 `json:"skills"`
	Achievements       map[string]profile.Achievement `json:"achievements"`
}

func profileOf(snap profile.Snapshot) profileJSON {
	out := profileJSON{
		TotalSessions:      snap.Progress.TotalSessions,
		CompletedScenarios: snap.Progress.CompletedScenarios,
		AverageScore:       snap.Progress.AverageScore,
		TotalTimeMs:        snap.Progress.TotalTimeMs,
		Streak:             snap.Progress.Streak,
		Skills:             map[string]int{},
		Achievements:       snap.Achievements,
	}
	if !snap.Progress.LastSessionAt.IsZero() {
		out.LastSessionAt = snap.Progress.LastSessionAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	for skill, score := range snap.Skills {
		out.Skills[string(skill)] = score
	}
	return out
}

// Profile returns the trainee's account and aggregated training state.
func (h *Handler) Profile(c *gin.Context) {
	user, snap, err := h.accounts.Profile(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "profile": profileOf(snap)})
}

type sessionJSON struct {
	ScenarioID   string         `json:"scenarioId"`
	Score        int            `json:"score"`
	DurationMs   int64          `json:"durationMs"`
	SkillsGained map[string]int `json:"skillsGained"`
	MessageCount int            `json:"messageCount"`
	CreatedAt    string         `json:"createdAt"`
}

// Sessions returns the trainee's recent session history, newest first.
func (h *Handler) Sessions(c *gin.Context) {
	events, err := h.accounts.RecentSessions(c.Request.Context(), currentUserID(c), 50)
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := make([]sessionJSON, 0, len(events))
	for _, e := range events {
		gained := map[string]int{}
		for skill, score := range e.SkillsGained {
			gained[string(skill)] = score
		}
		out = append(out, sessionJSON{
			ScenarioID:   e.ScenarioID,
			Score:        e.Score,
			DurationMs:   e.DurationMs,
			SkillsGained: gained,
			MessageCount: e.MessageCount,
			CreatedAt:    e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

type trackEventRequest struct {
	Name  string         `json:"name" binding:"required"`
	Props map[string]any `json:"props"`
}

// TrackEvent enqueues a client-reported product event. Always accepted;
// delivery is best-effort.
func (h *Handler) TrackEvent(c *gin.Context) {
	var req trackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	h.events.Track(store.AnalyticsEventData{
		UserID: currentUserID(c),
		Name:   req.Name,
		Props:  req.Props,
	})
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// respondError maps service errors onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error) {
	var (
		validation *account.ValidationError
		badInput   *profile.InvalidInputError
		unknown    *simulation.ErrUnknownScenario
		rateLimit  *llm.ErrRateLimit
		badOutput  *llm.ErrInvalidResponse
		unavail    *llm.ErrProviderUnavailable
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &unknown):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, account.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, account.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &rateLimit):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "model is rate limited, try again shortly"})
	case errors.As(err, &badOutput), errors.As(err, &unavail), errors.As(err, &badInput):
		h.log.Errorw("upstream evaluation failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "the tutor model is unavailable, try again"})
	default:
		h.log.Errorw("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

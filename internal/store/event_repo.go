package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// AnalyticsEventData captures a client-reported product event.
type AnalyticsEventData struct {
	UserID string
	Name   string
	Props  map[string]any
}

// LLMUsageStats aggregates token usage per purpose for cost reporting.
type LLMUsageStats struct {
	Purpose      string
	Model        string
	Requests     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to operational events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendAnalytics records a product analytics event.
	AppendAnalytics(ctx context.Context, data AnalyticsEventData) error

	// RecentLLMEvents returns the most recent LLM events, newest first.
	RecentLLMEvents(ctx context.Context, limit int) ([]LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage grouped by purpose and model.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
}

type eventRepo struct {
	db *gorm.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	event := LLMRequestEvent{
		Provider:     data.Provider,
		Model:        data.Model,
		Purpose:      data.Purpose,
		InputTokens:  data.InputTokens,
		OutputTokens: data.OutputTokens,
		LatencyMs:    data.LatencyMs,
		Success:      data.Success,
		ErrorMessage: data.ErrorMessage,
	}
	if err := r.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnalytics(ctx context.Context, data AnalyticsEventData) error {
	event := AnalyticsEvent{
		UserID: data.UserID,
		Name:   data.Name,
		Props:  JSONMap(data.Props),
	}
	if err := r.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("append analytics event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentLLMEvents(ctx context.Context, limit int) ([]LLMRequestEvent, error) {
	var events []LLMRequestEvent
	q := r.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error) {
	var stats []LLMUsageStats
	err := r.db.WithContext(ctx).
		Model(&LLMRequestEvent{}).
		Select("purpose, model, COUNT(*) AS requests, SUM(input_tokens) AS input_tokens, SUM(output_tokens) AS output_tokens").
		Group("purpose, model").
		Order("purpose, model").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate llm usage: %w", err)
	}
	return stats, nil
}

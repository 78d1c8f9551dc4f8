package services

import (
	"context"
	"time"

	"pocketwise/internal/advisor"
	"pocketwise/internal/ai"
	"pocketwise/internal/logger"
	"pocketwise/internal/models"
)

const (
	// insightWindowDays is the lookback window for both AI endpoints.
	insightWindowDays = 30
	// chatWindowLimit caps the rows fed into the chat spending context.
	chatWindowLimit = 50
)

// insightService grounds the AI endpoints in the user's recent spending. It
// never surfaces errors: data-fetch failures degrade to empty context, and
// provider failures degrade to canned Vietnamese replies.
type insightService struct {
	transactions TransactionServicer
	profiles     ProfileServicer
	provider     ai.CompletionProvider
	now          func() time.Time
}

// NewInsightService creates a new InsightServicer backed by the given provider.
func NewInsightService(transactions TransactionServicer, profiles ProfileServicer, provider ai.CompletionProvider) InsightServicer {
	return &insightService{
		transactions: transactions,
		profiles:     profiles,
		provider:     provider,
		now:          time.Now,
	}
}

// Chat answers the latest turn of a conversation, grounded in the 30-day
// spending window.
func (s *insightService) Chat(ctx context.Context, userID string, messages []ai.Message) string {
	profile, rows := s.spendingContext(userID, chatWindowLimit)

	reply, err := s.provider.Chat(ctx, profile, rows, messages)
	if err != nil {
		logger.Get().Warnw("chat completion failed", "user_id", userID, "error", err)
		return advisor.ChatErrorReply
	}
	if reply == "" {
		return advisor.EmptyCompletionReply
	}
	return reply
}

// Analyze produces a one-shot spending analysis. An empty window short-circuits
// to the no-data insight without calling the provider.
func (s *insightService) Analyze(ctx context.Context, userID string) string {
	profile, rows := s.spendingContext(userID, 0)
	if len(rows) == 0 {
		return advisor.EmptyWindowInsight
	}

	insight, err := s.provider.Analyze(ctx, profile, rows)
	if err != nil {
		logger.Get().Warnw("analysis completion failed", "user_id", userID, "error", err)
		return advisor.AnalyzeErrorReply
	}
	if insight == "" {
		return advisor.EmptyAnalysisReply
	}
	return insight
}

// spendingContext loads the profile and the 30-day window. Either part may be
// missing; the advisor templates fall back to defaults for a nil profile and
// the provider sees an empty window as zero spending.
func (s *insightService) spendingContext(userID string, limit int) (*models.Profile, []models.Transaction) {
	profile, err := s.profiles.GetProfile(userID)
	if err != nil {
		profile = nil
	}

	since := s.now().AddDate(0, 0, -insightWindowDays).Format(time.DateOnly)
	rows, err := s.transactions.GetWindow(userID, since, limit)
	if err != nil {
		logger.Get().Warnw("spending window load failed", "user_id", userID, "error", err)
		rows = nil
	}

	return profile, rows
}

package ai

import (
	"context"

	"pocketwise/internal/advisor"
	"pocketwise/internal/models"
)

// DeterministicFallbackProvider serves template-based replies when no live
// completion API is configured. It interpolates real spending data into
// fixed Vietnamese templates and never fails.
type DeterministicFallbackProvider struct{}

// NewDeterministicFallbackProvider creates the offline reply provider.
func NewDeterministicFallbackProvider() *DeterministicFallbackProvider {
	return &DeterministicFallbackProvider{}
}

// Chat keyword-matches the last message of the conversation and returns the
// matching canned reply.
func (p *DeterministicFallbackProvider) Chat(_ context.Context, profile *models.Profile, rows []models.Transaction, history []Message) (string, error) {
	var lastMessage string
	if len(history) > 0 {
		lastMessage = history[len(history)-1].Content
	}
	return advisor.OfflineReply(lastMessage, profile, rows), nil
}

// Analyze returns the template-based spending insight.
func (p *DeterministicFallbackProvider) Analyze(_ context.Context, profile *models.Profile, rows []models.Transaction) (string, error) {
	return advisor.OfflineInsight(profile, rows), nil
}

var _ CompletionProvider = (*DeterministicFallbackProvider)(nil)
var _ CompletionProvider = (*LiveCompletionProvider)(nil)

// Package ai provides the reply strategy for the chat and analysis
// endpoints. The provider is selected once at startup from configuration:
// a live chat-completion client when an API key is present, a deterministic
// offline fallback otherwise. Handlers never branch on credential presence.
package ai

import (
	"context"

	"pocketwise/internal/models"
)

// historyLimit caps the conversation history forwarded to the provider to
// the most recent turns.
const historyLimit = 10

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionProvider produces reply strings from the user's spending context.
// Implementations may fail (live provider); callers are responsible for
// converting failures into user-facing reply text.
type CompletionProvider interface {
	// Chat answers the latest turn of a conversation, grounded in the
	// profile and the 30-day transaction window.
	Chat(ctx context.Context, profile *models.Profile, rows []models.Transaction, history []Message) (string, error)

	// Analyze produces a one-shot spending analysis for the window.
	Analyze(ctx context.Context, profile *models.Profile, rows []models.Transaction) (string, error)
}

// lastTurns returns at most n trailing messages from history.
func lastTurns(history []Message, n int) []Message {
	if len(history) > n {
		return history[len(history)-n:]
	}
	return history
}

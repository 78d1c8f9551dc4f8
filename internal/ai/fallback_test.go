package ai

import (
	"context"
	"strings"
	"testing"

	"pocketwise/internal/advisor"
	"pocketwise/internal/models"
)

func TestDeterministicFallbackChat(t *testing.T) {
	provider := NewDeterministicFallbackProvider()
	profile := &models.Profile{DisplayName: "Minh", MonthlyBudget: 500000}

	t.Run("matches_last_message", func(t *testing.T) {
		history := []Message{
			{Role: "user", Content: "tiết kiệm thế nào?"},
			{Role: "assistant", Content: "..."},
			{Role: "user", Content: "phân tích giúp mình"},
		}

		reply, err := provider.Chat(context.Background(), profile, nil, history)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(reply, "Dựa trên dữ liệu của bạn") {
			t.Errorf("expected analysis reply for the latest turn, got %q", reply)
		}
	})

	t.Run("greets_by_name_on_unmatched_message", func(t *testing.T) {
		reply, err := provider.Chat(context.Background(), profile, nil,
			[]Message{{Role: "user", Content: "hello"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(reply, "Xin chào Minh") {
			t.Errorf("expected greeting with display name, got %q", reply)
		}
	})

	t.Run("empty_history_greets_generically", func(t *testing.T) {
		reply, err := provider.Chat(context.Background(), nil, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(reply, "Xin chào bạn") {
			t.Errorf("expected generic greeting, got %q", reply)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		history := []Message{{Role: "user", Content: "làm sao để tiết kiệm?"}}
		first, _ := provider.Chat(context.Background(), profile, nil, history)
		second, _ := provider.Chat(context.Background(), profile, nil, history)
		if first != second {
			t.Error("expected identical replies for identical input")
		}
	})
}

func TestDeterministicFallbackAnalyze(t *testing.T) {
	provider := NewDeterministicFallbackProvider()

	t.Run("empty_window", func(t *testing.T) {
		insight, err := provider.Analyze(context.Background(), nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if insight != advisor.EmptyWindowInsight {
			t.Errorf("expected the no-data insight, got %q", insight)
		}
	})

	t.Run("reports_top_category", func(t *testing.T) {
		rows := []models.Transaction{
			{Amount: 200000, Category: &models.Category{Name: "Ăn uống"}},
			{Amount: 100000, Category: &models.Category{Name: "Di chuyển"}},
		}

		insight, err := provider.Analyze(context.Background(), &models.Profile{MonthlyBudget: 500000}, rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(insight, "Ăn uống") {
			t.Errorf("expected the top category, got %q", insight)
		}
		if !strings.Contains(insight, "300.000đ") {
			t.Errorf("expected the grouped total, got %q", insight)
		}
	})
}

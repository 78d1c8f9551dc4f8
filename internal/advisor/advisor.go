// Package advisor builds the natural-language spending context handed to the
// AI completion provider, and the deterministic Vietnamese replies used when
// no provider is configured. Everything here is a pure function of the
// profile and the 30-day transaction window: given the same inputs, the same
// bytes come out, which is what makes the offline mode testable.
package advisor

import (
	"fmt"
	"sort"
	"strings"

	"pocketwise/internal/models"
	"pocketwise/internal/report"
)

// Canned replies for the degraded paths of the AI endpoints.
const (
	// ChatErrorReply is returned when the chat completion call fails.
	ChatErrorReply = "❌ Đã xảy ra lỗi. Vui lòng thử lại sau."
	// AnalyzeErrorReply is returned when the analysis completion call fails.
	AnalyzeErrorReply = "❌ Đã xảy ra lỗi khi phân tích. Vui lòng thử lại sau."
	// EmptyCompletionReply substitutes an empty chat completion.
	EmptyCompletionReply = "Xin lỗi, mình không thể trả lời lúc này."
	// EmptyAnalysisReply substitutes an empty analysis completion.
	EmptyAnalysisReply = "Không thể phân tích lúc này."
	// EmptyWindowInsight is returned when the 30-day window has no rows.
	EmptyWindowInsight = "Bạn chưa có giao dịch nào trong 30 ngày qua. Hãy bắt đầu ghi chép chi tiêu hàng ngày để AI có thể phân tích và đưa ra gợi ý hữu ích cho bạn! 📝"

	savingTipsReply = "💰 Một số mẹo tiết kiệm cho học sinh:\n\n" +
		"1. Ghi chép chi tiêu mỗi ngày\n" +
		"2. Đặt ngân sách cho từng danh mục\n" +
		"3. Áp dụng quy tắc 50-30-20\n" +
		"4. Mang theo bình nước thay vì mua nước ngoài\n" +
		"5. Tìm ưu đãi và khuyến mãi cho sinh viên"

	noDataLabel = "Chưa có dữ liệu"
)

// FormatVND renders a whole-VND amount with Vietnamese digit grouping
// (dots as thousands separators): 1500000 -> "1.500.000".
func FormatVND(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// DisplayName returns the profile's display name, or a generic fallback.
func DisplayName(profile *models.Profile) string {
	if profile != nil && profile.DisplayName != "" {
		return profile.DisplayName
	}
	return "Bạn"
}

// Budget returns the profile's monthly budget, falling back to the default
// when the profile is missing or has no budget set.
func Budget(profile *models.Profile) int64 {
	if profile != nil && profile.MonthlyBudget > 0 {
		return profile.MonthlyBudget
	}
	return models.DefaultMonthlyBudget
}

// Total sums the amounts of the window rows.
func Total(rows []models.Transaction) int64 {
	var total int64
	for _, t := range rows {
		total += t.Amount
	}
	return total
}

// SpendingContext renders per-category totals as a single comma-joined line
// ("Ăn uống: 200.000đ, Di chuyển: 50.000đ"), in first-seen order. Empty rows
// yield an empty string.
func SpendingContext(rows []models.Transaction) string {
	breakdown := report.CategoryBreakdown(rows)
	parts := make([]string, 0, len(breakdown))
	for _, entry := range breakdown {
		parts = append(parts, fmt.Sprintf("%s: %sđ", entry.Name, FormatVND(entry.Amount)))
	}
	return strings.Join(parts, ", ")
}

// BuildSpendingSummary renders one line per category, sorted by descending
// total, each with its share of the window total:
//
//	- Ăn uống: 200.000đ (66.7%)
//
// Empty rows yield an empty summary; the percentage division is guarded so a
// zero total never divides.
func BuildSpendingSummary(rows []models.Transaction) string {
	total := Total(rows)
	if total == 0 {
		return ""
	}

	breakdown := report.CategoryBreakdown(rows)
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount > breakdown[j].Amount
	})

	lines := make([]string, 0, len(breakdown))
	for _, entry := range breakdown {
		pct := float64(entry.Amount) / float64(total) * 100
		lines = append(lines, fmt.Sprintf("- %s: %sđ (%.1f%%)", entry.Name, FormatVND(entry.Amount), pct))
	}
	return strings.Join(lines, "\n")
}

// BuildAnalysisPrompt composes the one-shot instruction for the analysis
// endpoint: budget, window total, transaction count, per-category summary,
// and the three-part request (habit comment, top category with improvement
// suggestion, one concrete savings tip), bounded and in Vietnamese.
func BuildAnalysisPrompt(profile *models.Profile, rows []models.Transaction) string {
	return fmt.Sprintf(`Bạn là chuyên gia tài chính dành cho học sinh Việt Nam. Phân tích chi tiêu sau và đưa ra nhận xét ngắn gọn, thân thiện:

Tên: %s
Ngân sách tháng: %sđ
Tổng chi tiêu 30 ngày: %sđ
Số giao dịch: %d

Chi tiêu theo danh mục:
%s

Hãy:
1. Nhận xét thói quen chi tiêu (1-2 câu)
2. Chỉ ra danh mục chi tiêu nhiều nhất và gợi ý cải thiện (1-2 câu)
3. Đưa ra 1 mẹo tiết kiệm cụ thể phù hợp với học sinh (1 câu)

Trả lời bằng tiếng Việt, ngắn gọn, thân thiện, dùng emoji.`,
		DisplayName(profile),
		FormatVND(Budget(profile)),
		FormatVND(Total(rows)),
		len(rows),
		BuildSpendingSummary(rows),
	)
}

// BuildChatSystemPrompt composes the persistent assistant persona for the
// chat endpoint: the same spending context plus behavioral constraints (stay
// on personal finance, answer in Vietnamese, reference real figures).
func BuildChatSystemPrompt(profile *models.Profile, rows []models.Transaction) string {
	context := SpendingContext(rows)
	if context == "" {
		context = noDataLabel
	}

	return fmt.Sprintf(`Bạn là trợ lý tài chính AI thân thiện dành cho học sinh Việt Nam, tên là PocketWise AI.

Thông tin người dùng:
- Tên: %s
- Ngân sách hàng tháng: %sđ
- Tổng chi tiêu 30 ngày gần đây: %sđ
- Chi tiêu theo danh mục: %s
- Số giao dịch: %d

Quy tắc:
- Trả lời bằng tiếng Việt, thân thiện, ngắn gọn
- Dùng emoji phù hợp
- Đưa ra lời khuyên thiết thực cho học sinh
- Nếu hỏi về chi tiêu, dựa vào dữ liệu thực tế ở trên
- Không nói những gì không liên quan đến tài chính cá nhân
- Khuyến khích thói quen tiết kiệm tốt`,
		DisplayName(profile),
		FormatVND(Budget(profile)),
		FormatVND(Total(rows)),
		context,
		len(rows),
	)
}

// OfflineReply answers a chat message without a completion provider. The last
// user message is keyword-matched against two intents — spending analysis
// ("phân tích", "chi tiêu") and saving tips ("tiết kiệm") — with a greeting
// as the default. Deterministic: the same (message, profile, rows) triple
// always produces the identical string.
func OfflineReply(lastUserMessage string, profile *models.Profile, rows []models.Transaction) string {
	msg := strings.ToLower(lastUserMessage)

	switch {
	case strings.Contains(msg, "phân tích") || strings.Contains(msg, "chi tiêu"):
		context := SpendingContext(rows)
		if context == "" {
			context = noDataLabel
		}
		return fmt.Sprintf("📊 Dựa trên dữ liệu của bạn:\n\n- Tổng chi 30 ngày: %sđ\n- Ngân sách: %sđ\n- Top chi tiêu: %s\n\n💡 Hãy cố gắng giữ chi tiêu trong ngân sách nhé!",
			FormatVND(Total(rows)), FormatVND(Budget(profile)), context)

	case strings.Contains(msg, "tiết kiệm"):
		return savingTipsReply

	default:
		name := "bạn"
		if profile != nil && profile.DisplayName != "" {
			name = profile.DisplayName
		}
		return fmt.Sprintf("Xin chào %s! 👋\n\nMình có thể giúp bạn phân tích chi tiêu và đưa ra gợi ý tiết kiệm. Hãy thử hỏi:\n- \"Phân tích chi tiêu tháng này\"\n- \"Làm sao để tiết kiệm?\"\n\n⚠️ Để có trải nghiệm AI đầy đủ, hãy cấu hình OPENAI_API_KEY trong .env", name)
	}
}

// OfflineInsight produces the analysis-endpoint fallback: window total as a
// share of the budget, the top spending category, and a fixed tip. Callers
// handle the empty window with EmptyWindowInsight before reaching here.
func OfflineInsight(profile *models.Profile, rows []models.Transaction) string {
	total := Total(rows)
	if total == 0 {
		return EmptyWindowInsight
	}

	breakdown := report.CategoryBreakdown(rows)
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount > breakdown[j].Amount
	})
	top := breakdown[0]

	budgetPct := float64(total) / float64(Budget(profile)) * 100
	topPct := float64(top.Amount) / float64(total) * 100

	return fmt.Sprintf("📊 Tổng chi tiêu 30 ngày: %sđ (%.0f%% ngân sách)\n\n🏷️ Chi nhiều nhất: %s (%sđ - %.0f%%)\n\n💡 Mẹo: Hãy thử ghi chép chi tiêu mỗi ngày và đặt giới hạn cho từng danh mục để tiết kiệm hiệu quả hơn!\n\n⚠️ Để nhận phân tích AI chi tiết hơn, hãy cấu hình OPENAI_API_KEY trong file .env",
		FormatVND(total), budgetPct, top.Name, FormatVND(top.Amount), topPct)
}

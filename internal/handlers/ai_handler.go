package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pocketwise/internal/advisor"
	"pocketwise/internal/ai"
	"pocketwise/internal/services"
)

// AIHandler handles the chat and analysis endpoints. These endpoints never
// return error statuses for upstream failures: the client always gets a
// 200 with a human-readable Vietnamese reply.
type AIHandler struct {
	insightService services.InsightServicer
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(insightService services.InsightServicer) *AIHandler {
	return &AIHandler{insightService: insightService}
}

// ChatRequest represents the chat request payload.
type ChatRequest struct {
	Messages []ai.Message `json:"messages"`
}

// ChatResponse represents the chat reply payload.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// AnalyzeResponse represents the analysis payload.
type AnalyzeResponse struct {
	Insight string `json:"insight"`
}

// Chat handles a conversational AI turn
// @Summary     Chat with the finance assistant
// @Description Send a conversation and get a reply grounded in the user's recent spending
// @Tags        ai
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChatRequest true "Conversation messages"
// @Success     200 {object} ChatResponse "Assistant reply"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /ai/chat [post]
func (h *AIHandler) Chat(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Malformed chat input degrades to the canned error reply rather
		// than a 400, so the conversation UI always has text to render.
		c.JSON(http.StatusOK, gin.H{"reply": advisor.ChatErrorReply})
		return
	}

	reply := h.insightService.Chat(c.Request.Context(), userID, req.Messages)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// Analyze handles the one-shot spending analysis
// @Summary     Analyze spending
// @Description Get an AI analysis of the last 30 days of spending
// @Tags        ai
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} AnalyzeResponse "Spending insight"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /ai/analyze [post]
func (h *AIHandler) Analyze(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	insight := h.insightService.Analyze(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"insight": insight})
}

// Package chat implements the shopping assistant: an LLM decides the intent
// (reply, search, recommend) and local product data backs the
// recommendations. Every LLM failure degrades to keyword heuristics, so the
// assistant always answers.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shopsync/shopsync/internal/llm"
	"github.com/shopsync/shopsync/internal/models"
	"github.com/shopsync/shopsync/pkg/utils"
)

const systemPrompt = `You are ShopSync Assistant, a shopping helper for a
price comparison platform aggregating Amazon and Flipkart.

Your capabilities:
1. Recommend products from currently loaded search results
2. Understand vague product descriptions and convert them into search queries
3. Answer shopping questions naturally

RESPONSE FORMAT - respond with valid JSON only (no markdown, no code fences):
{
  "action": "reply" | "search" | "recommend",
  "reply": "your message to the user (markdown bold ** allowed)",
  "search_query": "product search term (only when action=search)",
  "criteria": "best" | "cheapest" | "rating" | "compare" (only when action=recommend),
  "budget": null or number
}

RULES:
- When the user describes something they need, set action=search and translate
  the description into a real product search term.
- When the user asks about current results (best deal, cheapest, ratings),
  set action=recommend with the matching criteria.
- When the user asks to compare, set action=recommend with criteria=compare.
- Greetings, thanks, and general chat get action=reply.
- A budget like "under 5000" goes in the budget field as a number, never in
  search_query.
- ALWAYS respond with valid JSON and nothing outside the JSON object.`

// intent is the assistant's parsed decision.
type intent struct {
	Action      string   `json:"action"`
	Reply       string   `json:"reply"`
	SearchQuery string   `json:"search_query"`
	Criteria    string   `json:"criteria"`
	Budget      *float64 `json:"budget"`
}

// Assistant turns chat messages into actions over the current product set.
type Assistant struct {
	client  llm.Client
	timeout time.Duration
	logger  *zap.Logger
}

// New builds an assistant around client with the given per-message timeout.
func New(client llm.Client, timeout time.Duration, logger *zap.Logger) *Assistant {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Assistant{client: client, timeout: timeout, logger: logger}
}

// Process answers one chat message. The LLM path runs first; on any error
// the keyword fallback takes over, and if that also fails a canned reply is
// returned. Process never returns an unusable response.
func (a *Assistant) Process(ctx context.Context, req models.ChatRequest) models.ChatResponse {
	resp, err := a.processWithModel(ctx, req)
	if err == nil {
		return resp
	}
	a.logger.Warn("assistant model path failed, using keyword fallback", zap.Error(err))

	if resp, ok := processKeywords(req.Message, req.CurrentProducts); ok {
		return resp
	}
	return models.ChatResponse{
		Success: true,
		Action:  models.ActionReply,
		Reply:   "I'm having trouble processing that. Could you rephrase your question?",
	}
}

func (a *Assistant) processWithModel(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	if a.client == nil {
		return models.ChatResponse{}, fmt.Errorf("no model client configured")
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := "User message: " + req.Message + productContext(req.CurrentProducts)
	raw, err := a.client.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("assistant model call failed: %w", err)
	}
	parsed, err := parseIntent(raw)
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("unusable assistant response: %w", err)
	}

	switch {
	case parsed.Action == models.ActionSearch && parsed.SearchQuery != "":
		reply := parsed.Reply
		if reply == "" {
			reply = fmt.Sprintf("Searching for **%q**... results will appear in the main area.", parsed.SearchQuery)
		}
		if parsed.Budget != nil {
			reply += fmt.Sprintf("\n\nBudget noted: under ₹%.0f", *parsed.Budget)
		}
		return models.ChatResponse{
			Success:     true,
			Action:      models.ActionSearch,
			SearchQuery: parsed.SearchQuery,
			Reply:       reply,
		}, nil

	case parsed.Action == models.ActionRecommend && len(req.CurrentProducts) > 0:
		var result models.ChatResponse
		if parsed.Criteria == models.CriteriaCompare {
			result = CompareProducts(req.CurrentProducts)
		} else {
			result = RecommendBest(req.CurrentProducts, parsed.Criteria, parsed.Budget)
		}
		// The model's phrasing leads, our product data follows.
		if parsed.Reply != "" {
			result.Reply = parsed.Reply + "\n\n" + result.Reply
		}
		return result, nil
	}

	reply := parsed.Reply
	if reply == "" {
		reply = "I'm not sure what you mean. Try describing a product or asking about the current results!"
	}
	return models.ChatResponse{Success: true, Action: models.ActionReply, Reply: reply}, nil
}

// productContext summarizes the loaded products for the prompt, capped so a
// large result set does not blow the token budget.
func productContext(products []models.UnifiedProduct) string {
	if len(products) == 0 {
		return "\n\nNo products are currently loaded. If the user asks about results, tell them to search first."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n\nCURRENT SEARCH RESULTS (%d products loaded):\n", len(products))
	for i, p := range products {
		if i >= 15 {
			break
		}
		var prices []string
		if p.AmazonPrice != nil {
			prices = append(prices, fmt.Sprintf("Amazon: ₹%.0f", *p.AmazonPrice))
		}
		if p.FlipkartPrice != nil {
			prices = append(prices, fmt.Sprintf("Flipkart: ₹%.0f", *p.FlipkartPrice))
		}
		priceStr := "Price N/A"
		if len(prices) > 0 {
			priceStr = strings.Join(prices, " | ")
		}
		fmt.Fprintf(&b, "%d. %s - %s", i+1, utils.Truncate(p.Title, 80), priceStr)
		if p.Rating != nil {
			fmt.Fprintf(&b, " (rating %.1f)", *p.Rating)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

var (
	reChatFence  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	reChatObject = regexp.MustCompile(`(?s)\{.*\}`)
)

// parseIntent decodes the model's JSON decision, tolerating markdown fences
// and surrounding prose.
func parseIntent(raw string) (intent, error) {
	text := strings.TrimSpace(raw)
	if m := reChatFence.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}

	var parsed intent
	if err := json.Unmarshal([]byte(text), &parsed); err == nil {
		return normalizeIntent(parsed), nil
	}
	if obj := reChatObject.FindString(text); obj != "" {
		if err := json.Unmarshal([]byte(obj), &parsed); err == nil {
			return normalizeIntent(parsed), nil
		}
	}
	return intent{}, fmt.Errorf("no intent object found in model output")
}

func normalizeIntent(in intent) intent {
	in.Action = strings.ToLower(strings.TrimSpace(in.Action))
	in.Criteria = strings.ToLower(strings.TrimSpace(in.Criteria))
	if in.Action == "" {
		in.Action = models.ActionReply
	}
	if in.Criteria == "" {
		in.Criteria = models.CriteriaBest
	}
	return in
}

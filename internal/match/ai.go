package match

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopsync/shopsync/internal/llm"
	"go.uber.org/zap"
)

const aiSystemPrompt = `You are a product matching engine. Given two lists of
e-commerce product titles, identify which pairs refer to the same physical
product. Respond with ONLY a JSON array of objects:
[{"a": <amazon index>, "f": <flipkart index>, "confidence": <0.0-1.0>}]
Rules: indexes are zero-based; never pair different storage sizes, variants
(Pro vs Max), brands, or an accessory with a main product; omit a pair rather
than guessing. No text outside the JSON array.`

// AIScorer asks an external reasoning service to propose matches in a single
// structured prompt per invocation and converts the returned
// {a, f, confidence} triples into a sparse score matrix. Proposals are
// suggestions only: the veto chain and acceptance thresholds still apply to
// every pair, since model confidence alone is not authoritative.
type AIScorer struct {
	client  llm.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewAIScorer creates a scorer calling client with the given per-invocation
// timeout.
func NewAIScorer(client llm.Client, timeout time.Duration, logger *zap.Logger) *AIScorer {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &AIScorer{client: client, timeout: timeout, logger: logger}
}

// Name identifies the strategy in logs and responses.
func (s *AIScorer) Name() string { return "ai" }

// ScoreMatrix sends both indexed title lists in one prompt and returns a
// matrix that is zero everywhere except at proposed pairs. Out-of-range
// indexes and sub-threshold confidences are skipped silently; an unusable
// response surfaces as an error so the matcher can fall back.
func (s *AIScorer) ScoreMatrix(ctx context.Context, titlesA, titlesB []string) ([][]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.Generate(ctx, aiSystemPrompt, buildMatchPrompt(titlesA, titlesB))
	if err != nil {
		return nil, fmt.Errorf("reasoning service call failed: %w", err)
	}
	pairs, err := parsePairs(raw)
	if err != nil {
		return nil, fmt.Errorf("unusable reasoning response: %w", err)
	}

	matrix := make([][]float64, len(titlesA))
	for i := range matrix {
		matrix[i] = make([]float64, len(titlesB))
	}
	for _, p := range pairs {
		if p.A < 0 || p.A >= len(titlesA) || p.F < 0 || p.F >= len(titlesB) {
			s.logger.Debug("skipping out-of-range match proposal",
				zap.Int("a", p.A), zap.Int("f", p.F))
			continue
		}
		if p.Confidence < minAIConfidence {
			continue
		}
		conf := p.Confidence
		if conf > 1 {
			conf = 1
		}
		if conf > matrix[p.A][p.F] {
			matrix[p.A][p.F] = conf
		}
	}
	return matrix, nil
}

func buildMatchPrompt(titlesA, titlesB []string) string {
	var b strings.Builder
	b.WriteString("AMAZON LISTINGS:\n")
	for i, t := range titlesA {
		fmt.Fprintf(&b, "%d. %s\n", i, t)
	}
	b.WriteString("\nFLIPKART LISTINGS:\n")
	for i, t := range titlesB {
		fmt.Fprintf(&b, "%d. %s\n", i, t)
	}
	b.WriteString("\nReturn the JSON array of matching pairs.")
	return b.String()
}

// Package narrative generates an optional prose executive summary for a
// finished analysis through an OpenAI-compatible inference endpoint.
package narrative

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/chiku1101/druggs/internal/domain"
	"github.com/chiku1101/druggs/internal/ports"
)

var _ ports.Narrator = (*Summarizer)(nil)

const systemPrompt = "You are a pharmaceutical business analyst. " +
	"Write a concise executive summary (at most 150 words) of a drug " +
	"repurposing assessment. State the verdict plainly, name the " +
	"strongest evidence, and name the main risk. Do not invent data " +
	"beyond what is provided."

// Summarizer writes executive summaries via chat completion. It is
// best-effort infrastructure: callers treat any error as a degraded run,
// never a failed one.
type Summarizer struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// New builds a summarizer. baseURL may be empty to use the client
// default endpoint.
func New(apiKey, baseURL, model string, timeout time.Duration) *Summarizer {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Summarizer{
		client:  openai.NewClientWithConfig(config),
		model:   model,
		timeout: timeout,
	}
}

// Summarize implements ports.Narrator.
func (s *Summarizer) Summarize(ctx context.Context, subject, condition string, breakdown domain.ScoreBreakdown, decision domain.Decision) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(subject, condition, breakdown, decision)},
		},
		Temperature: 0.3,
		MaxTokens:   300,
	})
	if err != nil {
		return "", fmt.Errorf("narrative generation: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("narrative generation: empty completion")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildPrompt(subject, condition string, breakdown domain.ScoreBreakdown, decision domain.Decision) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Drug: %s\n", orUnknown(subject))
	fmt.Fprintf(&b, "Target condition: %s\n", orUnknown(condition))
	fmt.Fprintf(&b, "Verdict: %s (overall score %d/100, confidence %.2f)\n",
		decision.Verdict, breakdown.Overall, breakdown.Confidence)

	b.WriteString("Category scores:\n")
	for _, id := range domain.AllCollectors {
		if score, ok := breakdown.CategoryScore(id); ok {
			fmt.Fprintf(&b, "- %s: %d\n", id, score)
		}
	}

	if len(decision.Reasoning) > 0 {
		b.WriteString("Key findings:\n")
		for _, line := range decision.Reasoning {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}
	if len(decision.RiskFactors) > 0 {
		b.WriteString("Risks:\n")
		for _, risk := range decision.RiskFactors {
			fmt.Fprintf(&b, "- [%s] %s\n", risk.Severity, risk.Factor)
		}
	}
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "(not specified)"
	}
	return s
}

// Package narrative drafts an optional profile-ready highlights paragraph
// from a portfolio summary.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/joelkehle/patentfolio/internal/canonical"
	"github.com/joelkehle/patentfolio/internal/portfolio"
)

const systemPrompt = "You are a career profile editor. Write a concise, factual, first-person " +
	"highlights paragraph about an inventor's patent portfolio. No superlatives you cannot " +
	"support from the data given. Respond with plain text only."

// Caller generates text for a prompt.
type Caller interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type AnthropicCaller struct {
	messages AnthropicMessager
}

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

func NewAnthropicCallerFromEnv() (*AnthropicCaller, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicCaller{messages: &c.Messages}, nil
}

func (a *AnthropicCaller) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.ModelClaudeSonnet4_20250514,
		MaxTokens:   1024,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

// Writer turns a portfolio summary into a highlights paragraph.
type Writer struct {
	caller Caller
}

func NewWriter(caller Caller) *Writer {
	return &Writer{caller: caller}
}

func (w *Writer) Write(ctx context.Context, inventor string, patents []canonical.Patent, sum portfolio.Summary) (string, error) {
	out, err := w.caller.GenerateText(ctx, BuildPrompt(inventor, patents, sum))
	if err != nil {
		return "", fmt.Errorf("narrative generation failed: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", errors.New("narrative generation failed: empty response")
	}
	return out, nil
}

// BuildPrompt flattens the summary and patent titles into the drafting
// prompt. Only data already in the canonical set is included.
func BuildPrompt(inventor string, patents []canonical.Patent, sum portfolio.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Inventor: %s\n", inventor)
	fmt.Fprintf(&b, "Total granted patents: %d\n", sum.TotalPatents)
	if sum.MinYear != 0 {
		fmt.Fprintf(&b, "Timeline: %d-%d\n", sum.MinYear, sum.MaxYear)
	}
	if sum.PatentsPerYear != nil {
		fmt.Fprintf(&b, "Average rate: %.1f patents/year\n", *sum.PatentsPerYear)
	}
	for _, c := range sum.Categories {
		if c.Count > 0 {
			fmt.Fprintf(&b, "Technology area: %s (%d)\n", c.Label, c.Count)
		}
	}
	b.WriteString("Patent titles:\n")
	for _, p := range patents {
		fmt.Fprintf(&b, "- %s\n", p.Title)
	}
	b.WriteString("\nDraft the highlights paragraph now.")
	return b.String()
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

// geminiClassifier implements ClassifierInterface against the Gemini API.
// It asks for a strict JSON array and defensively strips the Markdown
// fences the model sometimes wraps responses in anyway.
type geminiClassifier struct {
	client *genai.Client
	model  string
}

// NewGeminiClassifier creates a classifier backed by the Gemini API. The
// client reads its API key from the environment.
func NewGeminiClassifier(ctx context.Context, model string) (ClassifierInterface, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &geminiClassifier{client: client, model: model}, nil
}

// Classify sends one chunk of transaction descriptions plus the owner's
// category names and parses the JSON array of proposals.
func (c *geminiClassifier) Classify(ctx context.Context, items []ClassifierItem, categoryNames []string) ([]ClassifierProposal, error) {
	if len(items) == 0 {
		return nil, nil
	}

	prompt := buildClassifierPrompt(items, categoryNames)
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("classifier call failed: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("classifier returned an empty response")
	}

	return ParseClassifierResponse(rawText)
}

func buildClassifierPrompt(items []ClassifierItem, categoryNames []string) string {
	var b strings.Builder
	b.WriteString("You classify bank statement lines into budget categories.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("- For each transaction below, identify the merchant and pick ONE category from the allowed list.\n")
	b.WriteString("- Output STRICT JSON only (no comments, no trailing commas, no extra text).\n")
	b.WriteString("- Output a JSON array of objects with fields \"id\", \"merchant\", \"category\".\n")
	b.WriteString("- Keep the \"id\" exactly as given.\n")
	b.WriteString("- If no category fits, use \"Uncategorized\".\n")
	b.WriteString("- Do NOT wrap the response in code fences. Output must begin with \"[\" and end with \"]\".\n\n")

	b.WriteString("Allowed categories:\n")
	for _, name := range categoryNames {
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteString("\n")
	}

	b.WriteString("\nTransactions:\n")
	for _, item := range items {
		b.WriteString(item.ID.String())
		b.WriteString(": ")
		b.WriteString(item.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// ParseClassifierResponse parses the classifier's JSON array, tolerating
// Markdown fences around it. A response that is not a JSON array is a
// parse error the caller logs and skips; individual entries with an
// unusable id are dropped without failing the chunk.
func ParseClassifierResponse(raw string) ([]ClassifierProposal, error) {
	clean := stripCodeFences(raw)

	var wire []struct {
		ID       string `json:"id"`
		Merchant string `json:"merchant"`
		Category string `json:"category"`
	}
	if err := json.Unmarshal([]byte(clean), &wire); err != nil {
		return nil, fmt.Errorf("failed to parse classifier response: %w", err)
	}

	proposals := make([]ClassifierProposal, 0, len(wire))
	for _, entry := range wire {
		id, err := uuid.Parse(entry.ID)
		if err != nil {
			continue
		}
		proposals = append(proposals, ClassifierProposal{
			ID:       id,
			Merchant: entry.Merchant,
			Category: entry.Category,
		})
	}
	return proposals, nil
}

func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

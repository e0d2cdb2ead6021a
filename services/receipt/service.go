package receipt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"
)

// ParsedReceipt is the prefill data extracted from an uploaded payment
// receipt, used to seed a new ledger entry.
type ParsedReceipt struct {
	Amount      float64 `json:"amount"`
	PaidOn      string  `json:"paid_on"`
	Description string  `json:"description"`
}

// Service extracts structured payment data from receipt images with the
// Gemini Vision API.
type Service struct {
	model string
}

func NewService() *Service {
	return &Service{model: "gemini-2.5-flash-lite"}
}

const prompt = `Analyze this payment receipt image and extract the following information. Return ONLY valid JSON.

		Extract these fields from the image. If a field is missing or unclear, use an empty string for text and 0 for numbers.

		Required JSON format:
		{
		"amount": number,        // Paid amount as a plain number, no separators
		"paid_on": string,       // Payment date in YYYY-MM-DD format
		"description": string    // Short description: payer, method or reference number
		}`

// Parse sends the receipt image to Gemini and decodes the structured answer.
func (s *Service) Parse(ctx context.Context, imageBytes []byte, mimeType string) (*ParsedReceipt, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not found in environment variables")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	content := &genai.Content{
		Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     imageBytes,
			}},
		},
	}

	result, err := client.Models.GenerateContent(
		ctx,
		s.model,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.1)),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	responseText := result.Candidates[0].Content.Parts[0].Text
	if responseText == "" {
		return nil, fmt.Errorf("empty response")
	}

	jsonText := extractJSONFromMarkdown(responseText)

	var parsed ParsedReceipt
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, response: %s", err, jsonText)
	}

	return &parsed, nil
}

// extractJSONFromMarkdown extracts JSON content from markdown code blocks
func extractJSONFromMarkdown(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") && strings.HasSuffix(text, "```") {
		lines := strings.Split(text, "\n")
		if len(lines) > 1 {
			return strings.Join(lines[1:len(lines)-1], "\n")
		}
	}

	return text
}

package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONFromMarkdown_JSONFence(t *testing.T) {
	text := "```json\n{\"amount\": 1500, \"paid_on\": \"2024-06-01\"}\n```"
	out := extractJSONFromMarkdown(text)
	assert.Equal(t, `{"amount": 1500, "paid_on": "2024-06-01"}`, out)
}

func TestExtractJSONFromMarkdown_PlainFence(t *testing.T) {
	text := "```\n{\"amount\": 1500}\n```"
	out := extractJSONFromMarkdown(text)
	assert.Equal(t, `{"amount": 1500}`, out)
}

func TestExtractJSONFromMarkdown_NoFence(t *testing.T) {
	text := `{"amount": 1500}`
	assert.Equal(t, text, extractJSONFromMarkdown(text))
}

func TestExtractJSONFromMarkdown_TrimsWhitespace(t *testing.T) {
	text := "  \n```json\n{\"a\": 1}\n```\n  "
	assert.Equal(t, `{"a": 1}`, extractJSONFromMarkdown(text))
}

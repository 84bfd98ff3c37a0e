package daterange

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/mauricejumelet/advisor-cli/internal/ollama"
)

// Model is the last-resort strategy: it asks a language model to extract
// the range as a strict JSON object. Every failure mode — network,
// timeout, malformed JSON, missing keys, bad date format — is a plain
// miss; this matcher never surfaces an error.
type Model struct {
	client *ollama.Client
}

func NewModel(client *ollama.Client) Model {
	return Model{client: client}
}

func (m Model) Match(text string, _ time.Time) (Range, bool) {
	if m.client == nil {
		return Range{}, false
	}

	content, err := m.client.Extract(text)
	if err != nil {
		return Range{}, false
	}

	var obj struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &obj); err != nil {
		return Range{}, false
	}

	start, err1 := time.Parse("2006-01-02", obj.Start)
	end, err2 := time.Parse("2006-01-02", obj.End)
	if err1 != nil || err2 != nil {
		return Range{}, false
	}

	return Range{Start: start, End: end}, true
}

// stripCodeFence unwraps JSON that the model wrapped in a markdown code
// block (```json ... ```).
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	start := strings.Index(text, "```json")
	fence := "```json"
	if start == -1 {
		start = strings.Index(text, "```")
		fence = "```"
	}
	if start == -1 {
		return text
	}

	text = strings.TrimSpace(text[start+len(fence):])
	if end := strings.Index(text, "```"); end >= 0 {
		text = text[:end]
	}
	return strings.TrimSpace(text)
}

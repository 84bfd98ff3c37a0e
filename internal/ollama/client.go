// Package ollama is a minimal client for the Ollama chat endpoint.
package ollama

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mauricejumelet/advisor-cli/internal/config"
)

// requestTimeout bounds every chat call; a slow model is treated as a
// failure, never a hang.
const requestTimeout = 20 * time.Second

const (
	chatSystemPrompt    = "You are a friendly assistant helping users with their Food Score queries."
	extractSystemPrompt = `Return JSON only: {"start":"YYYY-MM-DD","end":"YYYY-MM-DD"}`

	// fallbackReply is returned by Chat when the model is unreachable.
	fallbackReply = "Sorry, I couldn't reach the language model."
)

type Client struct {
	httpClient *http.Client
	url        string
	model      string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		url:        cfg.OllamaURL,
		model:      cfg.OllamaModel,
	}
}

// Message is a single chat turn in the Ollama wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Message Message `json:"message"`
}

// Chat sends a conversational message and returns the model's reply, or a
// canned apology when the endpoint is unreachable.
func (c *Client) Chat(message string) string {
	reply, err := c.send(chatSystemPrompt, message)
	if err != nil {
		return fallbackReply
	}
	return reply
}

// Extract asks the model to pull a start/end date pair out of the text.
// The returned string is the raw message content, expected to be a strict
// JSON object; the caller parses and validates it.
func (c *Client) Extract(text string) (string, error) {
	return c.send(extractSystemPrompt, text)
}

func (c *Client) send(system, user string) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequest("POST", c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("ollama error (%d): %s", resp.StatusCode, string(respBody))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}

	return parsed.Message.Content, nil
}

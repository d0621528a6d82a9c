package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aktagon/llmkit/anthropic/agents"
)

const (
	openRouterURL   = "https://openrouter.ai/api/v1/chat/completions"
	openRouterModel = "openai/gpt-4o-mini"

	summarizeTimeout      = 25 * time.Second
	summaryMaxTokens      = 400
	summaryTemperature    = 0.3
	maxSummaryResponseLen = 256 * 1024
)

// summaryPrompt renders the user prompt shared by both backends.
func summaryPrompt(req SummaryRequest) string {
	return fmt.Sprintf("Language: %s\nTitle: %s\nExcerpt: %s", req.Lang, req.Title, req.Excerpt)
}

// OpenRouterSummarizer calls the OpenRouter chat-completions endpoint
// requesting a JSON object response. One attempt, bounded timeout.
type OpenRouterSummarizer struct {
	apiKey       string
	systemPrompt string
	endpoint     string
	model        string
	client       *http.Client
}

// NewOpenRouterSummarizer creates the default remote backend.
func NewOpenRouterSummarizer(apiKey, systemPrompt string) *OpenRouterSummarizer {
	return &OpenRouterSummarizer{
		apiKey:       apiKey,
		systemPrompt: systemPrompt,
		endpoint:     openRouterURL,
		model:        openRouterModel,
		client:       &http.Client{Timeout: summarizeTimeout},
	}
}

func (o *OpenRouterSummarizer) Name() string { return "openrouter" }

// chatMessage and friends mirror the chat-completions wire format; only
// the fields we touch are declared.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Summarize performs one structured summarization call.
func (o *OpenRouterSummarizer) Summarize(ctx context.Context, req SummaryRequest) (*remoteSummary, error) {
	payload := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: o.systemPrompt},
			{Role: "user", Content: summaryPrompt(req)},
		},
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	}
	payload.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling openrouter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("openrouter status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxSummaryResponseLen))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("response has no choices")
	}

	var summary remoteSummary
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &summary); err != nil {
		return nil, fmt.Errorf("decoding summary content: %w", err)
	}
	return &summary, nil
}

// AnthropicSummarizer uses llmkit's chat agent with structured output,
// selected when an Anthropic credential is configured instead of an
// OpenRouter one.
type AnthropicSummarizer struct {
	agent        *agents.ChatAgent
	systemPrompt string
	schema       string
}

// NewAnthropicSummarizer creates the llmkit-backed backend.
func NewAnthropicSummarizer(apiKey, systemPrompt, schema string) (*AnthropicSummarizer, error) {
	agent, err := agents.New(apiKey)
	if err != nil {
		return nil, fmt.Errorf("creating summarizer agent: %w", err)
	}
	return &AnthropicSummarizer{
		agent:        agent,
		systemPrompt: systemPrompt,
		schema:       schema,
	}, nil
}

func (a *AnthropicSummarizer) Name() string { return "anthropic" }

// Summarize performs one structured summarization call via llmkit.
func (a *AnthropicSummarizer) Summarize(ctx context.Context, req SummaryRequest) (*remoteSummary, error) {
	response, err := a.agent.Chat(summaryPrompt(req), &agents.ChatOptions{
		SystemPrompt: a.systemPrompt,
		Schema:       a.schema,
		MaxTokens:    summaryMaxTokens,
		Temperature:  summaryTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("summarizer agent chat: %w", err)
	}

	var summary remoteSummary
	if err := json.Unmarshal([]byte(response.Text), &summary); err != nil {
		return nil, fmt.Errorf("decoding summary content: %w", err)
	}
	return &summary, nil
}

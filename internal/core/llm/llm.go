// Package llm provides an OpenAI-backed nlp.Analyzer. It asks the model for
// a JSON verdict and maps it onto the domain enums, so it can stand in for
// the keyword scorer and rule classifier behind the same interface.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/reliefwatch/relief-pulse/internal/core/domain"
)

const (
	rateLimiterBurst = 5

	sentimentPrompt = `Judge the sentiment of the following social-media text about disaster relief.
Respond with JSON: {"sentiment": "POSITIVE"|"NEGATIVE"|"NEUTRAL", "confidence": <0..1>}.

Text:
%s`

	categoryPrompt = `Assign the following social-media text about disaster relief to one relief category.
Respond with JSON: {"category": "CASH"|"MEDICAL"|"SHELTER"|"FOOD"|"TRANSPORTATION"|"NONE", "confidence": <0..1>}.
Use "NONE" when no category applies.

Text:
%s`
)

// ErrEmptyResponse indicates the model returned no choices.
var ErrEmptyResponse = errors.New("empty completion response")

// Client is an OpenAI chat-completion analyzer.
type Client struct {
	client      *openai.Client
	model       string
	rateLimiter *rate.Limiter
	logger      *zerolog.Logger
}

// New builds a Client. rps bounds outgoing requests per second.
func New(apiKey, model string, rps int, logger *zerolog.Logger) *Client {
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		client:      openai.NewClient(apiKey),
		model:       model,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rps)), rateLimiterBurst),
		logger:      logger,
	}
}

type sentimentVerdict struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

type categoryVerdict struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Score implements nlp.Analyzer.
func (c *Client) Score(ctx context.Context, text string) (domain.Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Sentiment{Type: domain.SentimentNeutral, Confidence: 0, RawText: ""}, nil
	}

	content, err := c.complete(ctx, fmt.Sprintf(sentimentPrompt, text))
	if err != nil {
		return domain.Sentiment{}, err
	}

	var verdict sentimentVerdict
	if err := json.Unmarshal([]byte(content), &verdict); err != nil {
		return domain.Sentiment{}, fmt.Errorf("parse sentiment verdict: %w", err)
	}

	polarity, err := domain.ParseSentimentType(strings.ToUpper(verdict.Sentiment))
	if err != nil {
		return domain.Sentiment{}, err
	}

	sentiment, err := domain.NewSentiment(polarity, clamp01(verdict.Confidence), text)
	if err != nil {
		return domain.Sentiment{}, err
	}

	return sentiment, nil
}

// Classify implements nlp.Analyzer.
func (c *Client) Classify(ctx context.Context, text string) (domain.Category, bool, error) {
	if strings.TrimSpace(text) == "" {
		return "", false, nil
	}

	content, err := c.complete(ctx, fmt.Sprintf(categoryPrompt, text))
	if err != nil {
		return "", false, err
	}

	var verdict categoryVerdict
	if err := json.Unmarshal([]byte(content), &verdict); err != nil {
		return "", false, fmt.Errorf("parse category verdict: %w", err)
	}

	name := strings.ToUpper(verdict.Category)
	if name == "NONE" || name == "" {
		return "", false, nil
	}

	category, err := domain.ParseCategory(name)
	if err != nil {
		return "", false, err
	}

	return category, true, nil
}

// ModelName identifies the active model for logging and reports.
func (c *Client) ModelName() string {
	return "openai:" + c.model
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := resp.Choices[0].Message.Content
	c.logger.Debug().Str("content", content).Msg("LLM verdict")

	return content, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

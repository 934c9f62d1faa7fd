package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/claimsift/claimsift/internal/model"
)

const classifierSystemPrompt = "You classify healthcare claim denial reasons. " +
	"Answer with a single JSON object: {\"label\": \"retryable\"|\"not_retryable\", \"confidence\": 0.0-1.0}. " +
	"A reason is retryable when the provider can correct it and resubmit (coding errors, missing fields); " +
	"not_retryable when the denial is terminal (duplicate claim, service not covered)."

// OpenAIProvider implements the Provider seam against any
// OpenAI-compatible Chat Completions endpoint (OpenAI itself, or Ollama
// via BaseURL). Calls are rate limited; future model endpoints may be
// slow or remote.
type OpenAIProvider struct {
	client  *openai.Client
	limiter *rate.Limiter
	config  Config
	name    string
}

// NewOpenAIProvider creates a provider against api.openai.com
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return newChatProvider(config, "openai"), nil
}

// NewOllamaProvider creates a provider against a local OpenAI-compatible
// endpoint; no API key required.
func NewOllamaProvider(config Config) (*OpenAIProvider, error) {
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:11434/v1"
	}
	if config.APIKey == "" {
		config.APIKey = "ollama" // SDK requires a non-empty key
	}
	return newChatProvider(config, "ollama"), nil
}

func newChatProvider(config Config, name string) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	perSecond := config.RatePerSecond
	if perSecond <= 0 {
		perSecond = 2
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 5
	}

	return &OpenAIProvider{
		client:  openai.NewClientWithConfig(clientConfig),
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		config:  config,
		name:    name,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// Classify asks the model for a retryability verdict
func (p *OpenAIProvider) Classify(ctx context.Context, reason string) (model.RetryabilityVerdict, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return model.RetryabilityVerdict{}, fmt.Errorf("rate limit wait: %w", err)
	}

	timeout := time.Duration(p.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	modelName := p.config.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifierSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Denial reason: %q", reason)},
		},
		MaxTokens:   100,
		Temperature: 0, // Deterministic output for stable verdicts
	})
	if err != nil {
		return model.RetryabilityVerdict{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.RetryabilityVerdict{}, fmt.Errorf("no response from %s", p.name)
	}

	return parseVerdict(resp.Choices[0].Message.Content)
}

// parseVerdict extracts the JSON verdict from the model response,
// tolerating surrounding prose.
func parseVerdict(content string) (model.RetryabilityVerdict, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return model.RetryabilityVerdict{}, fmt.Errorf("no JSON object in response %q", content)
	}

	var parsed struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil {
		return model.RetryabilityVerdict{}, fmt.Errorf("parse response: %w", err)
	}

	label := model.LabelNotRetryable
	if strings.EqualFold(parsed.Label, string(model.LabelRetryable)) {
		label = model.LabelRetryable
	}

	confidence := parsed.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return model.RetryabilityVerdict{Label: label, Confidence: &confidence}, nil
}

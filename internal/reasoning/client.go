// File: internal/reasoning/client.go

// Package reasoning implements the external causal reasoning service: a
// generativelanguage REST transport plus the three request/response flows
// defined by the ReasoningEngine capability interface. No causal inference
// happens locally; this package shapes requests and validates structured
// results.
package reasoning

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nachiketsane1912/habit-impact-coach/api/schemas"
	"github.com/nachiketsane1912/habit-impact-coach/internal/config"
)

// ErrMissingAPIKey is the configuration error for absent credentials. It is
// raised at construction time, before any request is attempted.
var ErrMissingAPIKey = errors.New("reasoning service API key is not configured (set GEMINI_API_KEY)")

const defaultEndpointFormat = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

// GoogleClient implements schemas.LLMClient against the Gemini
// generateContent API.
type GoogleClient struct {
	apiKey     string
	endpoint   string // full URL override; empty means per-model default
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// -- Wire structures (internal to this file) --

type wirePart struct {
	Text string `json:"text"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wireSystemInstruction struct {
	Parts []wirePart `json:"parts"`
}

type wireGenerationConfig struct {
	Temperature      float64                 `json:"temperature"`
	ResponseMimeType string                  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schemas.ResponseSchema `json:"responseSchema,omitempty"`
}

type wireRequest struct {
	Contents          []wireContent          `json:"contents"`
	SystemInstruction *wireSystemInstruction `json:"systemInstruction,omitempty"`
	GenerationConfig  wireGenerationConfig   `json:"generationConfig"`
}

type wireResponse struct {
	Candidates []struct {
		Content      wireContent `json:"content"`
		FinishReason string      `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// NewGoogleClient initializes the transport. A missing API key fails fast as
// a configuration error.
func NewGoogleClient(cfg config.ReasoningConfig, logger *zap.Logger) (*GoogleClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute/60.0), 1)
	}

	timeout := cfg.APITimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	return &GoogleClient{
		apiKey:     cfg.APIKey,
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		logger:     logger.Named("reasoning.transport"),
	}, nil
}

// Generate sends one generateContent request and returns the first
// candidate's text. There is no automatic retry: every operation behind this
// client is user triggered and recoverable by re-invoking the same action.
func (c *GoogleClient) Generate(ctx context.Context, req schemas.GenerationRequest) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("request pacing interrupted: %w", err)
		}
	}

	body, err := json.Marshal(c.buildPayload(req))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	endpoint := c.endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf(defaultEndpointFormat, req.Model)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to reach reasoning service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Reasoning service returned error status",
			zap.Int("status", resp.StatusCode), zap.ByteString("response", respBody))
		return "", fmt.Errorf("reasoning service error: status %d", resp.StatusCode)
	}

	var payload wireResponse
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return "", fmt.Errorf("failed to decode response payload: %w", err)
	}
	if len(payload.Candidates) == 0 {
		return "", fmt.Errorf("reasoning service returned no candidates")
	}

	candidate := payload.Candidates[0]
	if len(candidate.Content.Parts) == 0 {
		switch candidate.FinishReason {
		case "SAFETY", "BLOCKLIST", "PROHIBITED_CONTENT":
			return "", fmt.Errorf("reasoning service blocked the request (reason: %s)", candidate.FinishReason)
		default:
			// An empty completion is "no answer", not a transport failure.
			return "", nil
		}
	}

	c.logger.Info("Generation complete",
		zap.String("model", req.Model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("prompt_tokens", payload.UsageMetadata.PromptTokenCount),
		zap.Int("completion_tokens", payload.UsageMetadata.CandidatesTokenCount),
	)
	return candidate.Content.Parts[0].Text, nil
}

// Close releases client resources. The plain HTTP transport holds none.
func (c *GoogleClient) Close() error { return nil }

func (c *GoogleClient) buildPayload(req schemas.GenerationRequest) wireRequest {
	contents := make([]wireContent, 0, len(req.Turns))
	for _, turn := range req.Turns {
		contents = append(contents, wireContent{
			Role:  string(turn.Role),
			Parts: []wirePart{{Text: turn.Text}},
		})
	}

	genCfg := wireGenerationConfig{Temperature: req.Temperature}
	if req.ResponseSchema != nil {
		genCfg.ResponseMimeType = "application/json"
		genCfg.ResponseSchema = req.ResponseSchema
	}

	payload := wireRequest{
		Contents:         contents,
		GenerationConfig: genCfg,
	}
	if req.SystemPrompt != "" {
		payload.SystemInstruction = &wireSystemInstruction{
			Parts: []wirePart{{Text: req.SystemPrompt}},
		}
	}
	return payload
}

// File: internal/reasoning/engine.go
package reasoning

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nachiketsane1912/habit-impact-coach/api/schemas"
	"github.com/nachiketsane1912/habit-impact-coach/internal/config"
	"github.com/nachiketsane1912/habit-impact-coach/internal/llmutil"
)

const driverAnalysisSystem = `You are an expert Causal Inference Engine for a habit coaching app.
You will receive a window of daily user logs containing habits (inputs), context (covariates like weather or work days), and outcomes (sleep, energy, stress).

YOUR TASK:
1. Analyze the data to find TRUE CAUSAL DRIVERS, not just correlations.
2. Use logic similar to difference-in-differences or counterfactual reasoning: compare days with similar contexts but different habits.
3. Identify the top 3 factors driving sleep quality or energy level.

Return a JSON array of driver objects.`

const simulatorSystemFormat = `You are the 'Habit Impact Simulator'.
Your goal is to answer "What if" questions based on the user's historical data and general causal knowledge.

User data context:
%s

Rules:
1. Be scientific but accessible.
2. If the user's data supports a conclusion (e.g. "Every time you drank coffee late, sleep dropped"), cite the data.
3. If data is sparse, use general scientific consensus but label it as "General Knowledge" or "External Evidence".
4. Provide specific predicted outcomes (e.g. "Sleep quality would likely improve by ~15%%").`

const extractionPromptFormat = `Extract health and habit metrics from the following user journal entry into a structured JSON object.

USER ENTRY: %q

INSTRUCTIONS:
- Map 'coffee', 'latte', 'espresso' mentions to caffeineIntake (estimate mg: coffee=100, espresso=64).
- Set caffeineCutoffHour (0-24) from the *last* time caffeine consumption is mentioned.
- Extract exerciseMinutes, screenTimeMinutes and meditationMinutes when stated.
- Infer sleepQuality, energyLevel, stressLevel (1-10 integers) only when mentioned; match polarity (e.g. "felt great" = 8-9 energy).
- If a field is not mentioned, do NOT include it in the JSON. Never default or zero-fill.`

// insightResponseSchema is the strict output contract for batch driver
// analysis: an array of insight objects with an enumerated impact type.
var insightResponseSchema = &schemas.ResponseSchema{
	Type: schemas.TypeArray,
	Items: &schemas.ResponseSchema{
		Type: schemas.TypeObject,
		Properties: map[string]*schemas.ResponseSchema{
			"factor":          {Type: schemas.TypeString, Description: "The specific habit or context identified."},
			"impactType":      {Type: schemas.TypeString, Enum: []string{"POSITIVE", "NEGATIVE", "NEUTRAL"}},
			"confidenceScore": {Type: schemas.TypeInteger, Description: "Confidence 0-100 based on data consistency."},
			"description":     {Type: schemas.TypeString, Description: "Explanation of the causal link found."},
			"recommendation":  {Type: schemas.TypeString, Description: "Actionable advice based on this finding."},
		},
		Required: []string{"factor", "impactType", "confidenceScore", "description", "recommendation"},
	},
}

// extractionResponseSchema allows every field to be optionally present; the
// responder must omit anything the entry does not mention.
var extractionResponseSchema = &schemas.ResponseSchema{
	Type: schemas.TypeObject,
	Properties: map[string]*schemas.ResponseSchema{
		"caffeineIntake":     {Type: schemas.TypeInteger},
		"caffeineCutoffHour": {Type: schemas.TypeInteger},
		"screenTimeMinutes":  {Type: schemas.TypeInteger},
		"exerciseMinutes":    {Type: schemas.TypeInteger},
		"meditationMinutes":  {Type: schemas.TypeInteger},
		"sleepQuality":       {Type: schemas.TypeInteger},
		"energyLevel":        {Type: schemas.TypeInteger},
		"stressLevel":        {Type: schemas.TypeInteger},
	},
}

// Engine realizes schemas.ReasoningEngine over a low-level LLMClient. Complex
// batch analysis rides the powerful model; chat and extraction ride the fast
// one.
type Engine struct {
	client schemas.LLMClient
	cfg    config.ReasoningConfig
	logger *zap.Logger
}

var _ schemas.ReasoningEngine = (*Engine)(nil)

// NewEngine wires an Engine over the given transport.
func NewEngine(client schemas.LLMClient, cfg config.ReasoningConfig, logger *zap.Logger) *Engine {
	return &Engine{
		client: client,
		cfg:    cfg,
		logger: logger.Named("reasoning.engine"),
	}
}

// AnalyzeDrivers runs one stateless batch driver-discovery pass over the
// supplied window and returns validated insights. Any transport, parse, or
// contract violation surfaces as a recoverable error; nothing is retried or
// cached.
func (e *Engine) AnalyzeDrivers(ctx context.Context, window []schemas.DailyLog) ([]schemas.CausalInsight, error) {
	data, err := json.Marshal(window)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis window: %w", err)
	}

	raw, err := e.client.Generate(ctx, schemas.GenerationRequest{
		SystemPrompt: driverAnalysisSystem,
		Turns: []schemas.SimulationMessage{
			{Role: schemas.RoleUser, Text: "DATA:\n" + string(data)},
		},
		Model:          e.cfg.PowerfulModel,
		Temperature:    e.cfg.Temperature,
		ResponseSchema: insightResponseSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("driver analysis request failed: %w", err)
	}

	insights, err := llmutil.ParseJSONResponse[[]schemas.CausalInsight](raw)
	if err != nil {
		return nil, fmt.Errorf("driver analysis returned a malformed response: %w", err)
	}
	for i, ci := range *insights {
		if err := schemas.ValidateInsight(ci); err != nil {
			return nil, fmt.Errorf("driver analysis violated the response contract (insight %d): %w", i, err)
		}
	}

	e.logger.Info("Driver analysis complete",
		zap.Int("window", len(window)), zap.Int("insights", len(*insights)))
	return *insights, nil
}

// Converse produces one counterfactual chat reply. The session owns
// conversation memory, so the full prior turn sequence arrives on every call;
// an empty completion is "no answer", not an error.
func (e *Engine) Converse(ctx context.Context, contextLogs []schemas.DailyLog, history []schemas.SimulationMessage, userText string) (string, error) {
	data, err := json.Marshal(contextLogs)
	if err != nil {
		return "", fmt.Errorf("failed to encode session context: %w", err)
	}

	turns := make([]schemas.SimulationMessage, 0, len(history)+1)
	turns = append(turns, history...)
	turns = append(turns, schemas.SimulationMessage{Role: schemas.RoleUser, Text: userText})

	reply, err := e.client.Generate(ctx, schemas.GenerationRequest{
		SystemPrompt: fmt.Sprintf(simulatorSystemFormat, string(data)),
		Turns:        turns,
		Model:        e.cfg.FastModel,
		Temperature:  e.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("simulation turn failed: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

// ExtractFields turns one free-text journal entry into a partial record.
// Pointer fields carry absence: anything the entry does not mention stays
// nil.
func (e *Engine) ExtractFields(ctx context.Context, freeText string) (schemas.DailyLogDraft, error) {
	raw, err := e.client.Generate(ctx, schemas.GenerationRequest{
		Turns: []schemas.SimulationMessage{
			{Role: schemas.RoleUser, Text: fmt.Sprintf(extractionPromptFormat, freeText)},
		},
		Model:          e.cfg.FastModel,
		Temperature:    e.cfg.Temperature,
		ResponseSchema: extractionResponseSchema,
	})
	if err != nil {
		return schemas.DailyLogDraft{}, fmt.Errorf("field extraction request failed: %w", err)
	}

	draft, err := llmutil.ParseJSONResponse[schemas.DailyLogDraft](raw)
	if err != nil {
		return schemas.DailyLogDraft{}, fmt.Errorf("field extraction returned a malformed response: %w", err)
	}
	return *draft, nil
}

// File: api/schemas/interfaces.go
package schemas

import "context"

// -- Reasoning Service Interface --

// ReasoningEngine is the capability interface for the external causal
// reasoning service. The core never implements causal inference locally; it
// prepares well-formed requests and validates the structured results. All
// implementations must be swappable for testing.
type ReasoningEngine interface {
	// AnalyzeDrivers runs one stateless batch driver-discovery pass over the
	// supplied analysis window. It fails with a transport or parse error if
	// the response is not a well-formed insight array matching the declared
	// field set and enum values.
	AnalyzeDrivers(ctx context.Context, window []DailyLog) ([]CausalInsight, error)

	// Converse produces the model reply for one counterfactual chat turn.
	// The transport is stateless across calls: contextLogs and the full prior
	// turn sequence are supplied on every call. An empty reply is "no answer",
	// not an error.
	Converse(ctx context.Context, contextLogs []DailyLog, history []SimulationMessage, userText string) (string, error)

	// ExtractFields turns one free-text journal entry into a partial record.
	// Fields not mentioned in the text must be absent from the result, never
	// null or zero-filled.
	ExtractFields(ctx context.Context, freeText string) (DailyLogDraft, error)
}

// -- Generation Transport Interface --

// GenerationRequest encapsulates a single request to the language-model
// transport: system and user content, conversation turns, and the optional
// constrained-output schema.
type GenerationRequest struct {
	SystemPrompt string              `json:"system_prompt"`
	Turns        []SimulationMessage `json:"turns"`
	Model        string              `json:"model"`
	Temperature  float64             `json:"temperature"`
	// ResponseSchema, when non-nil, forces application/json output shaped by
	// the given schema (the strict output contract).
	ResponseSchema *ResponseSchema `json:"response_schema,omitempty"`
}

// LLMClient is the low-level transport beneath ReasoningEngine. It abstracts
// the provider-specific wire protocol.
type LLMClient interface {
	// Generate produces a text completion for the request.
	Generate(ctx context.Context, req GenerationRequest) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// -- Constrained Output Schema --

// SchemaType enumerates the JSON schema node types accepted by the
// generativelanguage structured-output contract.
type SchemaType string

const (
	TypeObject  SchemaType = "OBJECT"
	TypeArray   SchemaType = "ARRAY"
	TypeString  SchemaType = "STRING"
	TypeInteger SchemaType = "INTEGER"
	TypeNumber  SchemaType = "NUMBER"
	TypeBoolean SchemaType = "BOOLEAN"
)

// ResponseSchema declares the exact shape the responder must emit. It mirrors
// the generativelanguage responseSchema wire format.
type ResponseSchema struct {
	Type        SchemaType                 `json:"type"`
	Description string                     `json:"description,omitempty"`
	Enum        []string                   `json:"enum,omitempty"`
	Items       *ResponseSchema            `json:"items,omitempty"`
	Properties  map[string]*ResponseSchema `json:"properties,omitempty"`
	Required    []string                   `json:"required,omitempty"`
}

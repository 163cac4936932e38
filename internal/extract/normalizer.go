// Package extract turns free-text journal entries into partial daily records.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nachiketsane1912/habit-impact-coach/api/schemas"
	"github.com/nachiketsane1912/habit-impact-coach/internal/observability"
)

// ErrEmptyEntry is returned when the journal text contains nothing to extract.
var ErrEmptyEntry = errors.New("journal entry is empty")

// Normalizer maps natural-language journal text onto the structured fields of
// a daily record. Fields the text never mentions stay absent; nothing is
// guessed or defaulted here.
type Normalizer struct {
	engine schemas.ReasoningEngine
	logger *zap.Logger
}

func NewNormalizer(engine schemas.ReasoningEngine, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = observability.GetLogger()
	}
	return &Normalizer{
		engine: engine,
		logger: logger.Named("extract"),
	}
}

// Normalize extracts the fields mentioned in freeText and validates them.
// An out-of-range value rejects the whole draft so that a bad extraction
// never reaches a record.
func (n *Normalizer) Normalize(ctx context.Context, freeText string) (schemas.DailyLogDraft, error) {
	if strings.TrimSpace(freeText) == "" {
		return schemas.DailyLogDraft{}, ErrEmptyEntry
	}

	draft, err := n.engine.ExtractFields(ctx, freeText)
	if err != nil {
		return schemas.DailyLogDraft{}, fmt.Errorf("extracting fields: %w", err)
	}
	if err := schemas.ValidateDraft(draft); err != nil {
		return schemas.DailyLogDraft{}, fmt.Errorf("extracted fields out of range: %w", err)
	}

	n.logger.Debug("Extracted journal fields.", zap.Int("fieldsPresent", countPresent(draft)))
	return draft, nil
}

// Merge overlays the present fields of partial onto draft and returns the
// combined draft. Fields absent from partial keep their value in draft, so
// successive extractions accumulate instead of clobbering each other.
func Merge(draft, partial schemas.DailyLogDraft) schemas.DailyLogDraft {
	if partial.CaffeineIntake != nil {
		draft.CaffeineIntake = intPtr(*partial.CaffeineIntake)
	}
	if partial.CaffeineCutoffHour != nil {
		draft.CaffeineCutoffHour = intPtr(*partial.CaffeineCutoffHour)
	}
	if partial.ScreenTimeMinutes != nil {
		draft.ScreenTimeMinutes = intPtr(*partial.ScreenTimeMinutes)
	}
	if partial.ExerciseMinutes != nil {
		draft.ExerciseMinutes = intPtr(*partial.ExerciseMinutes)
	}
	if partial.MeditationMinutes != nil {
		draft.MeditationMinutes = intPtr(*partial.MeditationMinutes)
	}
	if partial.WeatherCondition != nil {
		w := *partial.WeatherCondition
		draft.WeatherCondition = &w
	}
	if partial.IsWorkDay != nil {
		b := *partial.IsWorkDay
		draft.IsWorkDay = &b
	}
	if partial.SleepQuality != nil {
		draft.SleepQuality = intPtr(*partial.SleepQuality)
	}
	if partial.EnergyLevel != nil {
		draft.EnergyLevel = intPtr(*partial.EnergyLevel)
	}
	if partial.StressLevel != nil {
		f := *partial.StressLevel
		draft.StressLevel = &f
	}
	return draft
}

func intPtr(v int) *int { return &v }

func countPresent(d schemas.DailyLogDraft) int {
	n := 0
	for _, present := range []bool{
		d.CaffeineIntake != nil,
		d.CaffeineCutoffHour != nil,
		d.ScreenTimeMinutes != nil,
		d.ExerciseMinutes != nil,
		d.MeditationMinutes != nil,
		d.WeatherCondition != nil,
		d.IsWorkDay != nil,
		d.SleepQuality != nil,
		d.EnergyLevel != nil,
		d.StressLevel != nil,
	} {
		if present {
			n++
		}
	}
	return n
}

package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nachiketsane1912/habit-impact-coach/api/schemas"
)

type stubEngine struct {
	draft     schemas.DailyLogDraft
	err       error
	gotText   string
	callCount int
}

func (s *stubEngine) AnalyzeDrivers(context.Context, []schemas.DailyLog) ([]schemas.CausalInsight, error) {
	return nil, errors.New("not used")
}

func (s *stubEngine) Converse(context.Context, []schemas.DailyLog, []schemas.SimulationMessage, string) (string, error) {
	return "", errors.New("not used")
}

func (s *stubEngine) ExtractFields(_ context.Context, freeText string) (schemas.DailyLogDraft, error) {
	s.callCount++
	s.gotText = freeText
	return s.draft, s.err
}

func intp(v int) *int { return &v }

func TestNormalize_MentionedFieldsOnly(t *testing.T) {
	engine := &stubEngine{draft: schemas.DailyLogDraft{
		CaffeineIntake:     intp(100),
		CaffeineCutoffHour: intp(14),
		ExerciseMinutes:    intp(30),
		EnergyLevel:        intp(8),
	}}
	n := NewNormalizer(engine, zaptest.NewLogger(t))

	draft, err := n.Normalize(context.Background(), "Drank a coffee around 2pm, ran 5k, felt great.")
	require.NoError(t, err)
	assert.Equal(t, "Drank a coffee around 2pm, ran 5k, felt great.", engine.gotText)

	require.NotNil(t, draft.CaffeineIntake)
	assert.Equal(t, 100, *draft.CaffeineIntake)
	require.NotNil(t, draft.CaffeineCutoffHour)
	assert.Equal(t, 14, *draft.CaffeineCutoffHour)
	require.NotNil(t, draft.EnergyLevel)
	assert.GreaterOrEqual(t, *draft.EnergyLevel, 7)

	assert.Nil(t, draft.MeditationMinutes)
	assert.Nil(t, draft.StressLevel)
	assert.Nil(t, draft.SleepQuality)
}

func TestNormalize_EmptyEntry(t *testing.T) {
	engine := &stubEngine{}
	n := NewNormalizer(engine, zaptest.NewLogger(t))

	_, err := n.Normalize(context.Background(), "   \n\t")
	require.ErrorIs(t, err, ErrEmptyEntry)
	assert.Zero(t, engine.callCount)
}

func TestNormalize_EngineFailure(t *testing.T) {
	engine := &stubEngine{err: errors.New("transport down")}
	n := NewNormalizer(engine, zaptest.NewLogger(t))

	_, err := n.Normalize(context.Background(), "slept badly")
	require.ErrorContains(t, err, "transport down")
}

func TestNormalize_RejectsOutOfRangeExtraction(t *testing.T) {
	engine := &stubEngine{draft: schemas.DailyLogDraft{SleepQuality: intp(12)}}
	n := NewNormalizer(engine, zaptest.NewLogger(t))

	_, err := n.Normalize(context.Background(), "best sleep ever")
	require.Error(t, err)
	var verr *schemas.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestMerge_PreservesAbsentFields(t *testing.T) {
	draft := schemas.DailyLogDraft{EnergyLevel: intp(6), SleepQuality: intp(3)}
	partial := schemas.DailyLogDraft{SleepQuality: intp(8)}

	merged := Merge(draft, partial)

	require.NotNil(t, merged.EnergyLevel)
	assert.Equal(t, 6, *merged.EnergyLevel)
	require.NotNil(t, merged.SleepQuality)
	assert.Equal(t, 8, *merged.SleepQuality)
	assert.Nil(t, merged.CaffeineIntake)
}

func TestMerge_EmptyPartialIsNoOp(t *testing.T) {
	draft := schemas.DailyLogDraft{CaffeineIntake: intp(200), StressLevel: floatp(4.5)}

	merged := Merge(draft, schemas.DailyLogDraft{})

	require.NotNil(t, merged.CaffeineIntake)
	assert.Equal(t, 200, *merged.CaffeineIntake)
	require.NotNil(t, merged.StressLevel)
	assert.InDelta(t, 4.5, *merged.StressLevel, 1e-9)
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	partial := schemas.DailyLogDraft{EnergyLevel: intp(9)}

	merged := Merge(schemas.DailyLogDraft{}, partial)
	*merged.EnergyLevel = 1

	assert.Equal(t, 9, *partial.EnergyLevel)
}

func floatp(v float64) *float64 { return &v }

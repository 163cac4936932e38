package schemas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validLog returns a log that passes every schema bound. Tests mutate single
// fields from this baseline.
func validLog() DailyLog {
	return DailyLog{
		ID:                 "log-1",
		Date:               "2026-08-29",
		CaffeineIntake:     200,
		CaffeineCutoffHour: 14,
		ScreenTimeMinutes:  120,
		ExerciseMinutes:    30,
		MeditationMinutes:  0,
		WeatherCondition:   WeatherSunny,
		IsWorkDay:          true,
		SleepQuality:       7,
		EnergyLevel:        7,
		StressLevel:        5,
	}
}

func TestValidateDailyLog_Accepts(t *testing.T) {
	require.NoError(t, ValidateDailyLog(validLog()))
}

// The cutoff hour is inclusive on both ends: midnight (0) and "24" (end of
// day) are both legal submissions.
func TestValidateDailyLog_CutoffHourBoundaries(t *testing.T) {
	for _, hour := range []int{0, 24} {
		l := validLog()
		l.CaffeineCutoffHour = hour
		assert.NoError(t, ValidateDailyLog(l), "hour %d should be accepted", hour)
	}
	for _, hour := range []int{-1, 25} {
		l := validLog()
		l.CaffeineCutoffHour = hour
		assert.Error(t, ValidateDailyLog(l), "hour %d should be rejected", hour)
	}
}

func TestValidateDailyLog_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DailyLog)
	}{
		{"empty id", func(l *DailyLog) { l.ID = "" }},
		{"malformed date", func(l *DailyLog) { l.Date = "29/08/2026" }},
		{"negative caffeine", func(l *DailyLog) { l.CaffeineIntake = -10 }},
		{"negative screen time", func(l *DailyLog) { l.ScreenTimeMinutes = -1 }},
		{"negative exercise", func(l *DailyLog) { l.ExerciseMinutes = -5 }},
		{"unknown weather", func(l *DailyLog) { l.WeatherCondition = "Foggy" }},
		{"sleep below range", func(l *DailyLog) { l.SleepQuality = 0 }},
		{"sleep above range", func(l *DailyLog) { l.SleepQuality = 11 }},
		{"energy above range", func(l *DailyLog) { l.EnergyLevel = 12 }},
		{"stress below range", func(l *DailyLog) { l.StressLevel = 0.5 }},
		{"stress NaN", func(l *DailyLog) { l.StressLevel = math.NaN() }},
		{"stress infinite", func(l *DailyLog) { l.StressLevel = math.Inf(1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLog()
			tt.mutate(&l)
			err := ValidateDailyLog(l)
			require.Error(t, err)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

// A draft is explicitly partial: an empty draft is valid, and only present
// fields are bounds-checked.
func TestValidateDraft(t *testing.T) {
	assert.NoError(t, ValidateDraft(DailyLogDraft{}))

	sleep := 8
	assert.NoError(t, ValidateDraft(DailyLogDraft{SleepQuality: &sleep}))

	bad := 25
	assert.Error(t, ValidateDraft(DailyLogDraft{CaffeineCutoffHour: &bad}))

	negative := -1
	assert.Error(t, ValidateDraft(DailyLogDraft{ExerciseMinutes: &negative}))

	stress := math.NaN()
	assert.Error(t, ValidateDraft(DailyLogDraft{StressLevel: &stress}))
}

func TestValidateIntervention(t *testing.T) {
	iv := HabitIntervention{ID: "iv-1", Name: "No caffeine after 2pm", StartDate: "2026-08-15"}
	require.NoError(t, ValidateIntervention(iv))

	iv.Name = ""
	assert.Error(t, ValidateIntervention(iv))

	iv.Name = "x"
	iv.StartDate = "soon"
	assert.Error(t, ValidateIntervention(iv))
}

func TestValidateInsight(t *testing.T) {
	ci := CausalInsight{
		Factor:          "Late caffeine",
		ImpactType:      ImpactNegative,
		ConfidenceScore: 85,
		Description:     "Cutoff after 15:00 tracks with lower sleep quality.",
		Recommendation:  "Move the last coffee before 3 PM.",
	}
	require.NoError(t, ValidateInsight(ci))

	ci.ImpactType = "HARMFUL"
	assert.Error(t, ValidateInsight(ci))

	ci.ImpactType = ImpactNeutral
	ci.ConfidenceScore = 101
	assert.Error(t, ValidateInsight(ci))

	ci.ConfidenceScore = 50
	ci.Factor = ""
	assert.Error(t, ValidateInsight(ci))
}

func TestDraftOverlay(t *testing.T) {
	base := DailyLog{
		ID:           "log-1",
		Date:         "2026-08-14",
		SleepQuality: 3,
		EnergyLevel:  6,
		StressLevel:  5,
	}
	sleep := 8
	out := DailyLogDraft{SleepQuality: &sleep}.Overlay(base)

	assert.Equal(t, 8, out.SleepQuality)
	assert.Equal(t, 6, out.EnergyLevel)
	assert.Equal(t, "log-1", out.ID)
	assert.Equal(t, 3, base.SleepQuality)
}

// File: api/schemas/records.go
package schemas

import (
	"fmt"
	"math"
	"time"
)

// -- Record Schemas --

// DateLayout is the calendar-date wire format used by every record.
const DateLayout = "2006-01-02"

// WeatherCondition is the enumerated daily weather covariate.
type WeatherCondition string

const (
	WeatherSunny  WeatherCondition = "Sunny"
	WeatherCloudy WeatherCondition = "Cloudy"
	WeatherRainy  WeatherCondition = "Rainy"
	WeatherSnowy  WeatherCondition = "Snowy"
)

// DailyLog is one submitted record per calendar day: habit inputs, context
// covariates, and outcome scores. Outcome scores live on a 1-10 scale;
// stressLevel may be fractional and is treated as a continuous score.
type DailyLog struct {
	ID   string `json:"id"`
	Date string `json:"date"` // YYYY-MM-DD

	// Habits (inputs)
	CaffeineIntake     int `json:"caffeineIntake"` // mg
	CaffeineCutoffHour int `json:"caffeineCutoffHour"`
	ScreenTimeMinutes  int `json:"screenTimeMinutes"`
	ExerciseMinutes    int `json:"exerciseMinutes"`
	MeditationMinutes  int `json:"meditationMinutes"`

	// Context (covariates)
	WeatherCondition WeatherCondition `json:"weatherCondition"`
	IsWorkDay        bool             `json:"isWorkDay"`

	// Outcomes
	SleepQuality int     `json:"sleepQuality"`
	EnergyLevel  int     `json:"energyLevel"`
	StressLevel  float64 `json:"stressLevel"`
}

// DailyLogDraft is the explicit partial form of a DailyLog. Every field is
// optional; nil means "not provided". The Extraction Normalizer emits drafts,
// and the log form flow merges them before a record is committed.
type DailyLogDraft struct {
	CaffeineIntake     *int              `json:"caffeineIntake,omitempty"`
	CaffeineCutoffHour *int              `json:"caffeineCutoffHour,omitempty"`
	ScreenTimeMinutes  *int              `json:"screenTimeMinutes,omitempty"`
	ExerciseMinutes    *int              `json:"exerciseMinutes,omitempty"`
	MeditationMinutes  *int              `json:"meditationMinutes,omitempty"`
	WeatherCondition   *WeatherCondition `json:"weatherCondition,omitempty"`
	IsWorkDay          *bool             `json:"isWorkDay,omitempty"`
	SleepQuality       *int              `json:"sleepQuality,omitempty"`
	EnergyLevel        *int              `json:"energyLevel,omitempty"`
	StressLevel        *float64          `json:"stressLevel,omitempty"`
}

// Overlay applies the draft's present fields on top of a full record and
// returns the result. Absent fields leave the base values untouched.
func (d DailyLogDraft) Overlay(base DailyLog) DailyLog {
	if d.CaffeineIntake != nil {
		base.CaffeineIntake = *d.CaffeineIntake
	}
	if d.CaffeineCutoffHour != nil {
		base.CaffeineCutoffHour = *d.CaffeineCutoffHour
	}
	if d.ScreenTimeMinutes != nil {
		base.ScreenTimeMinutes = *d.ScreenTimeMinutes
	}
	if d.ExerciseMinutes != nil {
		base.ExerciseMinutes = *d.ExerciseMinutes
	}
	if d.MeditationMinutes != nil {
		base.MeditationMinutes = *d.MeditationMinutes
	}
	if d.WeatherCondition != nil {
		base.WeatherCondition = *d.WeatherCondition
	}
	if d.IsWorkDay != nil {
		base.IsWorkDay = *d.IsWorkDay
	}
	if d.SleepQuality != nil {
		base.SleepQuality = *d.SleepQuality
	}
	if d.EnergyLevel != nil {
		base.EnergyLevel = *d.EnergyLevel
	}
	if d.StressLevel != nil {
		base.StressLevel = *d.StressLevel
	}
	return base
}

// HabitIntervention marks the start of an open-ended behavior change event.
// Its startDate partitions the log series into pre/post subsets for
// event-study reasoning. Immutable after creation.
type HabitIntervention struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"` // YYYY-MM-DD
}

// ImpactType classifies the direction of a discovered causal driver.
type ImpactType string

const (
	ImpactPositive ImpactType = "POSITIVE"
	ImpactNegative ImpactType = "NEGATIVE"
	ImpactNeutral  ImpactType = "NEUTRAL"
)

// CausalInsight is one driver finding returned by a batch analysis run.
// Response only; it is never persisted across sessions.
type CausalInsight struct {
	Factor          string     `json:"factor"`
	ImpactType      ImpactType `json:"impactType"`
	ConfidenceScore int        `json:"confidenceScore"` // 0-100
	Description     string     `json:"description"`
	Recommendation  string     `json:"recommendation"`
}

// Role identifies the author of a simulation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// SimulationMessage is a single turn in a counterfactual chat session.
type SimulationMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// -- Validation --

const (
	ScoreMin = 1
	ScoreMax = 10
)

// ValidationError reports a record field that failed schema bounds.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ValidateDailyLog checks a fully submitted log against schema bounds. It
// rejects out-of-range scores and non-finite numeric fields; it never clamps.
func ValidateDailyLog(l DailyLog) error {
	if l.ID == "" {
		return invalid("id", "must not be empty")
	}
	if _, err := time.Parse(DateLayout, l.Date); err != nil {
		return invalid("date", "%q is not a YYYY-MM-DD date", l.Date)
	}
	if l.CaffeineIntake < 0 {
		return invalid("caffeineIntake", "%d is negative", l.CaffeineIntake)
	}
	if l.CaffeineCutoffHour < 0 || l.CaffeineCutoffHour > 24 {
		return invalid("caffeineCutoffHour", "%d outside [0,24]", l.CaffeineCutoffHour)
	}
	if l.ScreenTimeMinutes < 0 {
		return invalid("screenTimeMinutes", "%d is negative", l.ScreenTimeMinutes)
	}
	if l.ExerciseMinutes < 0 {
		return invalid("exerciseMinutes", "%d is negative", l.ExerciseMinutes)
	}
	if l.MeditationMinutes < 0 {
		return invalid("meditationMinutes", "%d is negative", l.MeditationMinutes)
	}
	if !validWeather(l.WeatherCondition) {
		return invalid("weatherCondition", "unknown value %q", l.WeatherCondition)
	}
	if err := checkScore("sleepQuality", float64(l.SleepQuality)); err != nil {
		return err
	}
	if err := checkScore("energyLevel", float64(l.EnergyLevel)); err != nil {
		return err
	}
	if err := checkScore("stressLevel", l.StressLevel); err != nil {
		return err
	}
	return nil
}

// ValidateDraft checks only the fields present on a partial record. Absent
// fields are acceptable; a draft is valid as long as nothing present is out
// of range.
func ValidateDraft(d DailyLogDraft) error {
	if d.CaffeineIntake != nil && *d.CaffeineIntake < 0 {
		return invalid("caffeineIntake", "%d is negative", *d.CaffeineIntake)
	}
	if d.CaffeineCutoffHour != nil && (*d.CaffeineCutoffHour < 0 || *d.CaffeineCutoffHour > 24) {
		return invalid("caffeineCutoffHour", "%d outside [0,24]", *d.CaffeineCutoffHour)
	}
	if d.ScreenTimeMinutes != nil && *d.ScreenTimeMinutes < 0 {
		return invalid("screenTimeMinutes", "%d is negative", *d.ScreenTimeMinutes)
	}
	if d.ExerciseMinutes != nil && *d.ExerciseMinutes < 0 {
		return invalid("exerciseMinutes", "%d is negative", *d.ExerciseMinutes)
	}
	if d.MeditationMinutes != nil && *d.MeditationMinutes < 0 {
		return invalid("meditationMinutes", "%d is negative", *d.MeditationMinutes)
	}
	if d.WeatherCondition != nil && !validWeather(*d.WeatherCondition) {
		return invalid("weatherCondition", "unknown value %q", *d.WeatherCondition)
	}
	if d.SleepQuality != nil {
		if err := checkScore("sleepQuality", float64(*d.SleepQuality)); err != nil {
			return err
		}
	}
	if d.EnergyLevel != nil {
		if err := checkScore("energyLevel", float64(*d.EnergyLevel)); err != nil {
			return err
		}
	}
	if d.StressLevel != nil {
		if err := checkScore("stressLevel", *d.StressLevel); err != nil {
			return err
		}
	}
	return nil
}

// ValidateIntervention checks a behavior-change marker before it is appended.
func ValidateIntervention(iv HabitIntervention) error {
	if iv.ID == "" {
		return invalid("id", "must not be empty")
	}
	if iv.Name == "" {
		return invalid("name", "must not be empty")
	}
	if _, err := time.Parse(DateLayout, iv.StartDate); err != nil {
		return invalid("startDate", "%q is not a YYYY-MM-DD date", iv.StartDate)
	}
	return nil
}

// ValidateInsight checks one driver finding against the declared response
// contract (enumerated impactType, bounded confidence).
func ValidateInsight(ci CausalInsight) error {
	if ci.Factor == "" {
		return invalid("factor", "must not be empty")
	}
	switch ci.ImpactType {
	case ImpactPositive, ImpactNegative, ImpactNeutral:
	default:
		return invalid("impactType", "unknown value %q", ci.ImpactType)
	}
	if ci.ConfidenceScore < 0 || ci.ConfidenceScore > 100 {
		return invalid("confidenceScore", "%d outside [0,100]", ci.ConfidenceScore)
	}
	if ci.Description == "" {
		return invalid("description", "must not be empty")
	}
	if ci.Recommendation == "" {
		return invalid("recommendation", "must not be empty")
	}
	return nil
}

func checkScore(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be finite")
	}
	if v < ScoreMin || v > ScoreMax {
		return invalid(field, "%g outside [%d,%d]", v, ScoreMin, ScoreMax)
	}
	return nil
}

func validWeather(w WeatherCondition) bool {
	switch w {
	case WeatherSunny, WeatherCloudy, WeatherRainy, WeatherSnowy:
		return true
	}
	return false
}

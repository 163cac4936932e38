package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestNewConfigFromViper_Defaults(t *testing.T) {
	cfg, err := NewConfigFromViper(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, "habitcoach", cfg.Logger.ServiceName)
	assert.Equal(t, "habitcoach.db", cfg.Store.Path)
	assert.True(t, cfg.Store.AllowDuplicateDates)
	assert.Equal(t, 30, cfg.Dataset.Days)
	assert.Equal(t, 14, cfg.Insight.WindowSize)
	assert.Equal(t, 7, cfg.Simulation.ContextWindow)
	assert.Equal(t, "gemini-2.5-pro", cfg.Reasoning.PowerfulModel)
}

func TestNewConfigFromViper_APIKeyFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key-123")

	cfg, err := NewConfigFromViper(newTestViper())
	require.NoError(t, err)
	assert.Equal(t, "test-key-123", cfg.Reasoning.APIKey)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*viper.Viper)
	}{
		{"empty store path", func(v *viper.Viper) { v.Set("store.path", "") }},
		{"zero dataset days", func(v *viper.Viper) { v.Set("dataset.days", 0) }},
		{"zero insight window", func(v *viper.Viper) { v.Set("insight.window_size", 0) }},
		{"zero simulation window", func(v *viper.Viper) { v.Set("simulation.context_window", 0) }},
		{"negative rate", func(v *viper.Viper) { v.Set("reasoning.requests_per_minute", -1.0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViper()
			tt.mutate(v)
			_, err := NewConfigFromViper(v)
			assert.Error(t, err)
		})
	}
}

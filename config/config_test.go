package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDecode_EmptyKeepsDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecode_Overrides(t *testing.T) {
	src := `
interaction:
  range: 4
exit:
  countdown: 90
runes:
  speed:
    duration: 2s
    amount: 3
log:
  level: debug
  output: stderr
`
	cfg, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 4.0, cfg.Interaction.Range)
	assert.Equal(t, 3.0, cfg.Interaction.RayDistance, "untouched field keeps default")
	assert.Equal(t, 90, cfg.Exit.Countdown)
	assert.Equal(t, 2*time.Second, cfg.Runes.Speed.Duration)
	assert.Equal(t, 3.0, cfg.Runes.Speed.Amount)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := Decode(strings.NewReader("interaction:\n  reach: 4\n"))
	assert.Error(t, err)
}

func TestDecode_InvalidRange(t *testing.T) {
	_, err := Decode(strings.NewReader("runes:\n  fake_chance_min: 0.5\n  fake_chance_max: 0.2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fake_chance")
}

func TestDecode_FlightRetries(t *testing.T) {
	cfg, err := Decode(strings.NewReader("runes:\n  flight:\n    max_retries: 0\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Runes.Flight.MaxRetries)
	assert.Equal(t, time.Second, cfg.Runes.Flight.RetryAfter, "untouched field keeps default")

	_, err = Decode(strings.NewReader("runes:\n  flight:\n    max_retries: -1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_retries")
}

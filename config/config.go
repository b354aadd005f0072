// Package config holds the tunable constants of the game and loads them
// from YAML. Anything not present in the file keeps its default.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/runemaze/logging"
)

// Config is the complete set of tunables.
type Config struct {
	Interaction     Interaction    `yaml:"interaction"`
	Player          Player         `yaml:"player"`
	Runes           Runes          `yaml:"runes"`
	Secrets         Secrets        `yaml:"secrets"`
	Exit            Exit           `yaml:"exit"`
	FrameRate       int            `yaml:"frame_rate"`
	MessageDuration time.Duration  `yaml:"message_duration"`
	Seed            int64          `yaml:"seed"` // 0 picks a time-based seed
	Log             logging.Config `yaml:"log"`
}

// Interaction configures the arbiter.
type Interaction struct {
	Range       float64 `yaml:"range"`        // max anchor-to-target distance
	RayDistance float64 `yaml:"ray_distance"` // max aim ray length
}

// Player configures the player body.
type Player struct {
	Speed     float64 `yaml:"speed"` // units per second
	Size      float64 `yaml:"size"`  // collision cube edge
	EyeHeight float64 `yaml:"eye_height"`
	TurnStep  float64 `yaml:"turn_step"` // degrees per turn command
}

// Timed is a duration plus a magnitude whose meaning depends on the kind.
type Timed struct {
	Duration time.Duration `yaml:"duration"`
	Amount   float64       `yaml:"amount"`
}

// Runes configures disguise odds and every rune kind.
type Runes struct {
	FakeChanceMin float64 `yaml:"fake_chance_min"`
	FakeChanceMax float64 `yaml:"fake_chance_max"`

	Flight   Flight `yaml:"flight"`
	Blink    Blink  `yaml:"blink"`
	Strength Timed  `yaml:"strength"`
	Speed    Timed  `yaml:"speed"`  // Amount is the multiplier
	Vision   Timed  `yaml:"vision"`

	Confusion Timed `yaml:"confusion"`
	PathBlock Timed `yaml:"pathblock"`
	Silence   Timed `yaml:"silence"`
	Gravity   Timed `yaml:"gravity"`
	Void      Timed `yaml:"void"`
	Collapse  Timed `yaml:"collapse"`
}

// Flight configures the flight rune and its landing search.
type Flight struct {
	Height        float64       `yaml:"height"`
	Duration      time.Duration `yaml:"duration"`
	LandingStep   float64       `yaml:"landing_step"`
	LandingRadius float64       `yaml:"landing_radius"`
	RetryAfter    time.Duration `yaml:"retry_after"`
	MaxRetries    int           `yaml:"max_retries"` // then land where the flight began
}

// Blink configures the blink rune.
type Blink struct {
	MaxDistance  float64 `yaml:"max_distance"`
	SafetyBuffer float64 `yaml:"safety_buffer"`
}

// Secrets configures world hazards.
type Secrets struct {
	Quicksand Quicksand `yaml:"quicksand"`
}

// Quicksand configures the sink-in-quicksand effect.
type Quicksand struct {
	Duration        time.Duration `yaml:"duration"`
	SpeedMultiplier float64       `yaml:"speed_multiplier"`
	SinkDepth       float64       `yaml:"sink_depth"`
}

// Exit configures the countdown and the door trigger zone.
type Exit struct {
	Countdown int     `yaml:"countdown"` // seconds
	Radius    float64 `yaml:"radius"`
}

// Default returns the built-in tunables.
func Default() Config {
	return Config{
		Interaction: Interaction{Range: 5, RayDistance: 3},
		Player:      Player{Speed: 5, Size: 0.4, EyeHeight: 1.6, TurnStep: 90},
		Runes: Runes{
			FakeChanceMin: 0.25,
			FakeChanceMax: 0.35,
			Flight: Flight{
				Height:        15,
				Duration:      3 * time.Second,
				LandingStep:   0.5,
				LandingRadius: 4.5,
				RetryAfter:    time.Second,
				MaxRetries:    3,
			},
			Blink:     Blink{MaxDistance: 6, SafetyBuffer: 0.5},
			Strength:  Timed{Duration: 5 * time.Second},
			Speed:     Timed{Duration: 4 * time.Second, Amount: 2},
			Vision:    Timed{Duration: 6 * time.Second},
			Confusion: Timed{Duration: 10 * time.Second},
			PathBlock: Timed{Duration: 10 * time.Second},
			Silence:   Timed{Duration: 10 * time.Second},
			Gravity:   Timed{Duration: 5 * time.Second},
			Void:      Timed{Duration: 7 * time.Second},
			Collapse:  Timed{Duration: 8 * time.Second},
		},
		Secrets: Secrets{
			Quicksand: Quicksand{Duration: 3 * time.Second, SpeedMultiplier: 0.4, SinkDepth: 0.6},
		},
		Exit:            Exit{Countdown: 60, Radius: 2},
		FrameRate:       30,
		MessageDuration: 3 * time.Second,
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening config %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads YAML from r on top of the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that would break the engine.
func (c Config) Validate() error {
	var problems []string
	if c.Interaction.Range <= 0 {
		problems = append(problems, "interaction.range must be positive")
	}
	if c.Interaction.RayDistance <= 0 {
		problems = append(problems, "interaction.ray_distance must be positive")
	}
	if c.Player.Speed <= 0 {
		problems = append(problems, "player.speed must be positive")
	}
	if c.Player.Size <= 0 {
		problems = append(problems, "player.size must be positive")
	}
	if c.Runes.FakeChanceMin < 0 || c.Runes.FakeChanceMax > 1 || c.Runes.FakeChanceMin > c.Runes.FakeChanceMax {
		problems = append(problems, "runes.fake_chance_min/max must satisfy 0 <= min <= max <= 1")
	}
	if c.Runes.Flight.LandingStep <= 0 {
		problems = append(problems, "runes.flight.landing_step must be positive")
	}
	if c.Runes.Flight.MaxRetries < 0 {
		problems = append(problems, "runes.flight.max_retries must not be negative")
	}
	if c.Exit.Countdown <= 0 {
		problems = append(problems, "exit.countdown must be positive")
	}
	if c.Exit.Radius <= 0 {
		problems = append(problems, "exit.radius must be positive")
	}
	if c.FrameRate <= 0 {
		problems = append(problems, "frame_rate must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

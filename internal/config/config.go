// Package config loads the board settings.
//
// Settings are layered from lowest to highest priority:
//  1. Defaults (in code)
//  2. An optional YAML file
//  3. AMBIENT_* environment variables
//
// The merged result is validated before it is returned.
package config

import (
	"time"
)

const (
	PolicyPoint  = "point"
	PolicyStroke = "stroke"
)

type Config struct {
	Window Window `yaml:"window"`
	Draw   Draw   `yaml:"draw"`
	Text   Text   `yaml:"text"`
	Log    Log    `yaml:"log"`
}

type Window struct {
	Title      string `yaml:"title" validate:"required"`
	Width      int    `yaml:"width" validate:"min=100"`
	Height     int    `yaml:"height" validate:"min=100"`
	Fullscreen bool   `yaml:"fullscreen"`
	Background string `yaml:"background" validate:"hexcolor"`
}

// Draw configures the fading ink layer.
type Draw struct {
	Policy  string     `yaml:"policy" validate:"oneof=point stroke"`
	Color   string     `yaml:"color" validate:"hexcolor"`
	Opacity float64    `yaml:"opacity" validate:"gt=0,lte=1"`
	Point   PointFade  `yaml:"point"`
	Stroke  StrokeFade `yaml:"stroke"`
}

// PointFade holds each segment at full opacity for Delay, then fades it out
// over Duration.
type PointFade struct {
	Delay     time.Duration `yaml:"delay" validate:"gte=0"`
	Duration  time.Duration `yaml:"duration" validate:"gt=0"`
	LineWidth float64       `yaml:"line_width" validate:"gt=0"`
}

// StrokeFade fades a whole stroke out over Duration from the moment it is
// committed.
type StrokeFade struct {
	Duration  time.Duration `yaml:"duration" validate:"gt=0"`
	LineWidth float64       `yaml:"line_width" validate:"gt=0"`
}

type Text struct {
	Lifetime        time.Duration `yaml:"lifetime" validate:"gt=0"`
	InactivityReset time.Duration `yaml:"inactivity_reset" validate:"gt=0"`
	FontSize        float64       `yaml:"font_size" validate:"gt=0"`
	Color           string        `yaml:"color" validate:"hexcolor"`
}

type Log struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		Window: Window{
			Title:      "Ambient Board",
			Width:      1024,
			Height:     768,
			Background: "#101014",
		},
		Draw: Draw{
			Policy:  PolicyPoint,
			Color:   "#f5f0e6",
			Opacity: 0.8,
			Point: PointFade{
				Delay:     2 * time.Second,
				Duration:  4 * time.Second,
				LineWidth: 5,
			},
			Stroke: StrokeFade{
				Duration:  12 * time.Second,
				LineWidth: 3,
			},
		},
		Text: Text{
			Lifetime:        6 * time.Second,
			InactivityReset: 30 * time.Second,
			FontSize:        24,
			Color:           "#f5f0e6",
		},
		Log: Log{
			Level: "info",
		},
	}
}

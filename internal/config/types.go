// Package config loads shelf's YAML configuration: the embedded defaults
// with an optional user file merged on top.
package config

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the merged configuration.
type Config struct {
	API    APIConfig    `yaml:"api" json:"api" toml:"api"`
	Search SearchConfig `yaml:"search" json:"search" toml:"search"`
	UI     UIConfig     `yaml:"ui" json:"ui" toml:"ui"`
	Log    LogConfig    `yaml:"log" json:"log" toml:"log"`
}

// APIConfig points shelf at the bookstore backend.
type APIConfig struct {
	BaseURL      string   `yaml:"base_url" json:"base_url" toml:"base_url"`
	AssetBaseURL string   `yaml:"asset_base_url" json:"asset_base_url" toml:"asset_base_url"`
	Timeout      Duration `yaml:"timeout" json:"timeout" toml:"timeout"`
	// RateLimit caps requests per second. Zero means unlimited.
	RateLimit float64 `yaml:"rate_limit" json:"rate_limit" toml:"rate_limit"`
}

// SearchConfig holds the search box and suggestion panel settings.
type SearchConfig struct {
	Placeholder    string `yaml:"placeholder" json:"placeholder" toml:"placeholder"`
	PanelMargin    int    `yaml:"panel_margin" json:"panel_margin" toml:"panel_margin"`
	Currency       string `yaml:"currency" json:"currency" toml:"currency"`
	NoResultsLabel string `yaml:"no_results_label" json:"no_results_label" toml:"no_results_label"`
	ViewAllLabel   string `yaml:"view_all_label" json:"view_all_label" toml:"view_all_label"`
}

// UIConfig selects the palette.
type UIConfig struct {
	Theme   string                 `yaml:"theme" json:"theme" toml:"theme"`
	NoColor bool                   `yaml:"no_color" json:"no_color" toml:"no_color"`
	Themes  map[string]ThemeConfig `yaml:"themes" json:"themes" toml:"themes"`
}

// LogConfig controls the JSON log sink.
type LogConfig struct {
	Level string `yaml:"level" json:"level" toml:"level"`
	File  string `yaml:"file" json:"file" toml:"file"`
}

// ThemeConfig is the YAML form of a palette. Empty colors inherit from the
// theme it overrides.
type ThemeConfig struct {
	Accent      ColorValue `yaml:"accent,omitempty" json:"accent,omitempty" toml:"accent,omitempty"`
	Text        ColorValue `yaml:"text,omitempty" json:"text,omitempty" toml:"text,omitempty"`
	Muted       ColorValue `yaml:"muted,omitempty" json:"muted,omitempty" toml:"muted,omitempty"`
	Border      ColorValue `yaml:"border,omitempty" json:"border,omitempty" toml:"border,omitempty"`
	SelectedFG  ColorValue `yaml:"selected_fg,omitempty" json:"selected_fg,omitempty" toml:"selected_fg,omitempty"`
	SelectedBG  ColorValue `yaml:"selected_bg,omitempty" json:"selected_bg,omitempty" toml:"selected_bg,omitempty"`
	InputFG     ColorValue `yaml:"input_fg,omitempty" json:"input_fg,omitempty" toml:"input_fg,omitempty"`
	Placeholder ColorValue `yaml:"placeholder,omitempty" json:"placeholder,omitempty" toml:"placeholder,omitempty"`
	Error       ColorValue `yaml:"error,omitempty" json:"error,omitempty" toml:"error,omitempty"`
}

// Merge overlays the non-empty colors of override onto base.
func (base ThemeConfig) Merge(override ThemeConfig) ThemeConfig {
	set := func(dst *ColorValue, val ColorValue) {
		if val != "" {
			*dst = val
		}
	}
	out := base
	set(&out.Accent, override.Accent)
	set(&out.Text, override.Text)
	set(&out.Muted, override.Muted)
	set(&out.Border, override.Border)
	set(&out.SelectedFG, override.SelectedFG)
	set(&out.SelectedBG, override.SelectedBG)
	set(&out.InputFG, override.InputFG)
	set(&out.Placeholder, override.Placeholder)
	set(&out.Error, override.Error)
	return out
}

// ColorValue stores a color token (ANSI number, name or hex) and marshals
// numerics as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: s,
		}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	*c = ColorValue(value.Value)
	return nil
}

// Duration is a time.Duration written as "10s" in every output format.
type Duration time.Duration

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

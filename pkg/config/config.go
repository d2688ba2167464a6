// Package config defines the dashboard configuration: display geometry and
// an ordered list of widget definitions. Configs load from TOML (the native
// format), JSON, or YAML, chosen by file extension, with XDG-style search
// paths and a usable built-in default layout.
package config

import "fmt"

// MinRefreshRateMS is the floor for the frame period. The keyboard's display
// endpoint cannot keep up with faster refreshes.
const MinRefreshRateMS = 33

// Config is the top-level dashboard configuration.
type Config struct {
	ConfigName    string   `toml:"config_name" json:"config_name" yaml:"config_name"`
	RefreshRateMS int      `toml:"refresh_rate_ms" json:"refresh_rate_ms" yaml:"refresh_rate_ms"`
	Display       Display  `toml:"display" json:"display" yaml:"display"`
	Widgets       []Widget `toml:"widgets" json:"widgets" yaml:"widgets"`
}

// Display describes the target display surface.
type Display struct {
	Width      int `toml:"width" json:"width" yaml:"width"`
	Height     int `toml:"height" json:"height" yaml:"height"`
	Background int `toml:"background" json:"background" yaml:"background"`
}

// Widget is one configured, positioned unit of dashboard content. Unknown
// kinds are skipped at render time rather than rejected at load time, so a
// config written for a newer version still renders its known widgets.
type Widget struct {
	Kind          string       `toml:"type" json:"type" yaml:"type"`
	Enabled       *bool        `toml:"enabled" json:"enabled" yaml:"enabled"`
	RefreshRateMS *int         `toml:"refresh_rate_ms" json:"refresh_rate_ms" yaml:"refresh_rate_ms"`
	Position      Position     `toml:"position" json:"position" yaml:"position"`
	Interface     string       `toml:"interface" json:"interface" yaml:"interface"`
	ShowIcon      bool         `toml:"show_icon" json:"show_icon" yaml:"show_icon"`
	Bar           *BarConfig   `toml:"bar" json:"bar" yaml:"bar"`
	Graph         *GraphConfig `toml:"graph" json:"graph" yaml:"graph"`
}

// Position is an integer rectangle in pixel space. It may extend beyond the
// display bounds; drawing clips implicitly.
type Position struct {
	X int `toml:"x" json:"x" yaml:"x"`
	Y int `toml:"y" json:"y" yaml:"y"`
	W int `toml:"w" json:"w" yaml:"w"`
	H int `toml:"h" json:"h" yaml:"h"`
}

// BarConfig configures bar-style widgets.
type BarConfig struct {
	Direction string `toml:"direction" json:"direction" yaml:"direction"`
	Border    bool   `toml:"border" json:"border" yaml:"border"`
}

// GraphConfig configures graph-style widgets.
type GraphConfig struct {
	History int `toml:"history" json:"history" yaml:"history"`
}

// IsEnabled reports whether the widget is enabled. Absent means enabled.
func (w *Widget) IsEnabled() bool {
	return w.Enabled == nil || *w.Enabled
}

// BarDirection returns the configured bar direction, or def when absent.
func (w *Widget) BarDirection(def string) string {
	if w.Bar == nil || w.Bar.Direction == "" {
		return def
	}
	return w.Bar.Direction
}

// BarBorder returns the configured bar border flag, or def when absent.
func (w *Widget) BarBorder(def bool) bool {
	if w.Bar == nil {
		return def
	}
	return w.Bar.Border
}

// EffectiveRefreshRateMS returns the frame period with the floor applied.
func (c *Config) EffectiveRefreshRateMS() int {
	if c.RefreshRateMS < MinRefreshRateMS {
		return MinRefreshRateMS
	}
	return c.RefreshRateMS
}

// PreferredNetworkInterface returns the interface named by the first enabled
// network widget, or "" when unset.
func (c *Config) PreferredNetworkInterface() string {
	for i := range c.Widgets {
		w := &c.Widgets[i]
		if w.IsEnabled() && w.Kind == "network" {
			return w.Interface
		}
	}
	return ""
}

// WidgetRefreshRateMS returns the smallest per-widget refresh override among
// enabled widgets of the given kind, or 0 when none is configured.
func (c *Config) WidgetRefreshRateMS(kind string) int {
	min := 0
	for i := range c.Widgets {
		w := &c.Widgets[i]
		if !w.IsEnabled() || w.Kind != kind || w.RefreshRateMS == nil {
			continue
		}
		if min == 0 || *w.RefreshRateMS < min {
			min = *w.RefreshRateMS
		}
	}
	return min
}

// Validate checks the parts of the configuration that cannot be repaired at
// render time. Individual widget problems are deliberately not errors: a
// misconfigured widget is skipped, never the whole frame.
func (c *Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size %dx%d is not drawable", c.Display.Width, c.Display.Height)
	}
	return nil
}

// Default returns the built-in configuration: a full 128×40 Apex OLED layout
// with every widget kind enabled.
func Default() *Config {
	return &Config{
		ConfigName:    "default",
		RefreshRateMS: MinRefreshRateMS,
		Display:       Display{Width: 128, Height: 40},
		Widgets: []Widget{
			{
				Kind:     "cpu",
				Position: Position{X: 0, Y: 0, W: 12, H: 40},
				Bar:      &BarConfig{Direction: "vertical"},
			},
			{
				Kind:     "memory",
				Position: Position{X: 14, Y: 0, W: 50, H: 20},
			},
			{
				Kind:     "network",
				Position: Position{X: 14, Y: 22, W: 50, H: 18},
			},
			{
				Kind:     "keyboard",
				Position: Position{X: 66, Y: 0, W: 62, H: 12},
			},
			{
				Kind:     "volume",
				ShowIcon: true,
				Position: Position{X: 66, Y: 22, W: 62, H: 18},
				Bar:      &BarConfig{Direction: "horizontal", Border: true},
			},
		},
	}
}

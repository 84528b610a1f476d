package styling

import (
	"fmt"

	"github.com/ja-he/proppanel/internal/config"
)

// Stylesheet represents all styles used by the terminal driver for rendering.
type Stylesheet struct {
	Normal          Style
	Header          Style
	TabActive       Style
	TabInactive     Style
	GroupLabel      Style
	EntryLabel      Style
	Control         Style
	ControlFocused  Style
	ControlDisabled Style
	Invalid         Style
	Status          Style
	Help            Style
	Editor          Style

	LogDefault    Style
	LogEntryError Style
	LogEntryWarn  Style
	LogEntryInfo  Style
	LogEntryDebug Style
}

// NewStylesheetFromConfig constructs a new stylesheet from a given config
// stylesheet, failing on the first invalid color.
func NewStylesheetFromConfig(c config.Stylesheet) (*Stylesheet, error) {
	stylesheet := Stylesheet{}

	for _, field := range []struct {
		name   string
		target *Style
		source config.Styling
	}{
		{"normal", &stylesheet.Normal, c.Normal},
		{"header", &stylesheet.Header, c.Header},
		{"tab-active", &stylesheet.TabActive, c.TabActive},
		{"tab-inactive", &stylesheet.TabInactive, c.TabInactive},
		{"group-label", &stylesheet.GroupLabel, c.GroupLabel},
		{"entry-label", &stylesheet.EntryLabel, c.EntryLabel},
		{"control", &stylesheet.Control, c.Control},
		{"control-focused", &stylesheet.ControlFocused, c.ControlFocused},
		{"control-disabled", &stylesheet.ControlDisabled, c.ControlDisabled},
		{"invalid", &stylesheet.Invalid, c.Invalid},
		{"status", &stylesheet.Status, c.Status},
		{"help", &stylesheet.Help, c.Help},
		{"editor", &stylesheet.Editor, c.Editor},
		{"log-default", &stylesheet.LogDefault, c.LogDefault},
		{"log-entry-error", &stylesheet.LogEntryError, c.LogEntryError},
		{"log-entry-warn", &stylesheet.LogEntryWarn, c.LogEntryWarn},
		{"log-entry-info", &stylesheet.LogEntryInfo, c.LogEntryInfo},
		{"log-entry-debug", &stylesheet.LogEntryDebug, c.LogEntryDebug},
	} {
		s, err := StyleFromConfig(field.source)
		if err != nil {
			return nil, fmt.Errorf("stylesheet entry '%s': %w", field.name, err)
		}
		*field.target = s
	}

	return &stylesheet, nil
}

// LogLevel returns the style for a log entry of the given zerolog level name.
func (s *Stylesheet) LogLevel(level string) Style {
	switch level {
	case "error", "fatal", "panic":
		return s.LogEntryError
	case "warn":
		return s.LogEntryWarn
	case "info":
		return s.LogEntryInfo
	case "debug", "trace":
		return s.LogEntryDebug
	default:
		return s.LogDefault
	}
}

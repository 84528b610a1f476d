package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ja-he/proppanel/internal/input"
)

// Config is the configuration data as present in a config file at
// '${PROPPANEL_HOME}/config.yaml'.
type Config struct {
	Panel      Panel               `yaml:"panel"`
	Activation Activation          `yaml:"activation"`
	Types      map[string][]string `yaml:"types"`
	Keys       input.InputConfig   `yaml:"keys"`
	Stylesheet Stylesheet          `yaml:"stylesheet"`
}

// Panel configures the presentation of the properties panel.
type Panel struct {
	HiddenClass  string `yaml:"hidden-class"`
	InvalidClass string `yaml:"invalid-class"`
	// RootTypes are the business object types the panel falls back to when
	// nothing is selected.
	RootTypes []string `yaml:"root-types"`
}

// Activation configures the visibility and editability policies.
type Activation struct {
	DefaultPriority int           `yaml:"default-priority"`
	Restrictions    []Restriction `yaml:"restrictions"`
}

// RestrictionPriority returns the priority the restrictions are installed
// at, above the default.
func (a Activation) RestrictionPriority() int {
	return a.DefaultPriority + 500
}

// A Restriction limits the entries shown for elements of a type to those
// listed and marks properties read-only.
type Restriction struct {
	Type     string   `yaml:"type"`
	Entries  []string `yaml:"entries,omitempty"`
	ReadOnly []string `yaml:"read-only,omitempty"`
}

// A Stylesheet is the stylesheet contents defined in a config file.
type Stylesheet struct {
	Normal          Styling `yaml:"normal"`
	Header          Styling `yaml:"header"`
	TabActive       Styling `yaml:"tab-active"`
	TabInactive     Styling `yaml:"tab-inactive"`
	GroupLabel      Styling `yaml:"group-label"`
	EntryLabel      Styling `yaml:"entry-label"`
	Control         Styling `yaml:"control"`
	ControlFocused  Styling `yaml:"control-focused"`
	ControlDisabled Styling `yaml:"control-disabled"`
	Invalid         Styling `yaml:"invalid"`
	Status          Styling `yaml:"status"`
	Help            Styling `yaml:"help"`
	Editor          Styling `yaml:"editor"`
	LogDefault      Styling `yaml:"log-default"`
	LogEntryError   Styling `yaml:"log-entry-error"`
	LogEntryWarn    Styling `yaml:"log-entry-warn"`
	LogEntryInfo    Styling `yaml:"log-entry-info"`
	LogEntryDebug   Styling `yaml:"log-entry-debug"`
}

// A Styling is a styling as defined in a config file.
// It must contain fore- and background colors and can optionally specify font
// style (bold, italic, underlined).
type Styling struct {
	Fg    string     `yaml:"fg"`
	Bg    string     `yaml:"bg"`
	Style *FontStyle `yaml:"style"`
}

// A FontStyle can be any combination of bold, italic, and underlined.
type FontStyle struct {
	Bold       bool `yaml:"bold,omitempty"`
	Italic     bool `yaml:"italic,omitempty"`
	Underlined bool `yaml:"underlined,omitempty"`
}

// ParseConfigAugmentDefaults parses the configuration specified in
// YAML-formatted data and uses it to augment a given default configuration.
func ParseConfigAugmentDefaults(defaultTheme ColorschemeType, yamlData []byte) (Config, error) {
	defaultConfig := Default(defaultTheme)

	parsedConfig := Config{}
	err := yaml.Unmarshal(yamlData, &parsedConfig)
	if err != nil {
		return defaultConfig, fmt.Errorf("error unmarshaling yaml (%w)", err)
	}

	return defaultConfig.augmentWith(parsedConfig), nil
}

func (base Config) augmentWith(augment Config) Config {
	result := base

	result.Panel = base.Panel.augmentWith(augment.Panel)

	if augment.Activation.DefaultPriority != 0 {
		result.Activation.DefaultPriority = augment.Activation.DefaultPriority
	}
	if len(augment.Activation.Restrictions) > 0 {
		result.Activation.Restrictions = augment.Activation.Restrictions
	}

	if len(augment.Types) > 0 {
		result.Types = make(map[string][]string, len(base.Types)+len(augment.Types))
		for typ, supers := range base.Types {
			result.Types[typ] = supers
		}
		for typ, supers := range augment.Types {
			result.Types[typ] = supers
		}
	}

	result.Keys = base.Keys.AugmentWith(augment.Keys)
	result.Stylesheet = base.Stylesheet.augmentWith(augment.Stylesheet)

	return result
}

func (base Panel) augmentWith(augment Panel) Panel {
	result := base
	if augment.HiddenClass != "" {
		result.HiddenClass = augment.HiddenClass
	}
	if augment.InvalidClass != "" {
		result.InvalidClass = augment.InvalidClass
	}
	if len(augment.RootTypes) > 0 {
		result.RootTypes = augment.RootTypes
	}
	return result
}

func (base Stylesheet) augmentWith(augment Stylesheet) Stylesheet {
	result := base

	result.Normal.overwriteIfDefined(augment.Normal)
	result.Header.overwriteIfDefined(augment.Header)
	result.TabActive.overwriteIfDefined(augment.TabActive)
	result.TabInactive.overwriteIfDefined(augment.TabInactive)
	result.GroupLabel.overwriteIfDefined(augment.GroupLabel)
	result.EntryLabel.overwriteIfDefined(augment.EntryLabel)
	result.Control.overwriteIfDefined(augment.Control)
	result.ControlFocused.overwriteIfDefined(augment.ControlFocused)
	result.ControlDisabled.overwriteIfDefined(augment.ControlDisabled)
	result.Invalid.overwriteIfDefined(augment.Invalid)
	result.Status.overwriteIfDefined(augment.Status)
	result.Help.overwriteIfDefined(augment.Help)
	result.Editor.overwriteIfDefined(augment.Editor)
	result.LogDefault.overwriteIfDefined(augment.LogDefault)
	result.LogEntryError.overwriteIfDefined(augment.LogEntryError)
	result.LogEntryWarn.overwriteIfDefined(augment.LogEntryWarn)
	result.LogEntryInfo.overwriteIfDefined(augment.LogEntryInfo)
	result.LogEntryDebug.overwriteIfDefined(augment.LogEntryDebug)

	return result
}

func (s *Styling) overwriteIfDefined(augment Styling) {
	if augment.Fg != "" && augment.Bg != "" {
		s.Fg = augment.Fg
		s.Bg = augment.Bg
	}
	if augment.Style != nil {
		if s.Style == nil {
			s.Style = &FontStyle{}
		}
		s.Style.Bold = augment.Style.Bold
		s.Style.Italic = augment.Style.Italic
		s.Style.Underlined = augment.Style.Underlined
	}
}

// A ColorschemeType can either be light or dark.
type ColorschemeType = int

const (
	_ ColorschemeType = iota
	Dark
	Light
)

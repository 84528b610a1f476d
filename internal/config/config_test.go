package config_test

import (
	"testing"

	"github.com/ja-he/proppanel/internal/config"
)

func TestParseConfigAugmentDefaults(t *testing.T) {

	t.Run("empty keeps defaults", func(t *testing.T) {
		c, err := config.ParseConfigAugmentDefaults(config.Dark, []byte(""))
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if c.Panel.HiddenClass != "pp-hidden" || c.Panel.InvalidClass != "invalid" {
			t.Error("default classes not kept:", c.Panel)
		}
		if len(c.Panel.RootTypes) != 2 {
			t.Error("default root types not kept:", c.Panel.RootTypes)
		}
		if c.Activation.RestrictionPriority() != 1500 {
			t.Error("unexpected restriction priority", c.Activation.RestrictionPriority())
		}
	})

	t.Run("augments", func(t *testing.T) {
		c, err := config.ParseConfigAugmentDefaults(config.Light, []byte(`
panel:
  hidden-class: gone
  root-types: [my:Root]
activation:
  restrictions:
    - type: bpmn:Task
      entries: [id, name]
      read-only: [id]
types:
  my:Task: [bpmn:Task]
keys:
  panel:
    x: quit
stylesheet:
  normal:
    fg: "#111111"
    bg: "#eeeeee"
`))
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if c.Panel.HiddenClass != "gone" || c.Panel.InvalidClass != "invalid" {
			t.Error("panel not augmented correctly:", c.Panel)
		}
		if len(c.Panel.RootTypes) != 1 || c.Panel.RootTypes[0] != "my:Root" {
			t.Error("root types not replaced:", c.Panel.RootTypes)
		}
		if len(c.Activation.Restrictions) != 1 || c.Activation.Restrictions[0].ReadOnly[0] != "id" {
			t.Error("restrictions not parsed:", c.Activation.Restrictions)
		}
		if c.Types["my:Task"][0] != "bpmn:Task" || len(c.Types["bpmn:ReceiveTask"]) != 1 {
			t.Error("types not merged:", c.Types)
		}
		if c.Keys.Panel["x"] != "quit" || c.Keys.Panel["q"] != "quit" {
			t.Error("keys not merged:", c.Keys.Panel)
		}
		if c.Stylesheet.Normal.Fg != "#111111" || c.Stylesheet.Header.Fg != "#000000" {
			t.Error("stylesheet not augmented:", c.Stylesheet.Normal, c.Stylesheet.Header)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		c, err := config.ParseConfigAugmentDefaults(config.Dark, []byte("panel: ["))
		if err == nil {
			t.Error("expected error")
		}
		if c.Panel.HiddenClass != "pp-hidden" {
			t.Error("expected defaults on error")
		}
	})

	t.Run("keys parse", func(t *testing.T) {
		for spec := range config.Default(config.Dark).Keys.Panel {
			if _, err := spec.Parse(); err != nil {
				t.Errorf("default keyspec '%s' invalid: %s", spec, err)
			}
		}
	})
}

package config

import (
	"github.com/ja-he/proppanel/internal/input"
)

// Default returns the default configuration with the colorscheme for the given
// type (light or dark).
func Default(colorschemeType ColorschemeType) Config {
	return Config{
		Panel: Panel{
			HiddenClass:  "pp-hidden",
			InvalidClass: "invalid",
			RootTypes:    []string{"bpmn:Process", "bpmn:Collaboration"},
		},
		Activation: Activation{
			DefaultPriority: 1000,
		},
		Types: map[string][]string{
			"bpmn:Task":                   {"bpmn:Activity"},
			"bpmn:ReceiveTask":            {"bpmn:Task"},
			"bpmn:SendTask":               {"bpmn:Task"},
			"bpmn:UserTask":               {"bpmn:Task"},
			"bpmn:ServiceTask":            {"bpmn:Task"},
			"bpmn:Activity":               {"bpmn:FlowNode"},
			"bpmn:StartEvent":             {"bpmn:Event"},
			"bpmn:EndEvent":               {"bpmn:Event"},
			"bpmn:Event":                  {"bpmn:FlowNode"},
			"bpmn:FlowNode":               {"bpmn:FlowElement"},
			"bpmn:SequenceFlow":           {"bpmn:FlowElement"},
			"bpmn:FlowElement":            {"bpmn:BaseElement"},
			"bpmn:Process":                {"bpmn:RootElement"},
			"bpmn:Collaboration":          {"bpmn:RootElement"},
			"bpmn:Message":                {"bpmn:RootElement"},
			"bpmn:RootElement":            {"bpmn:BaseElement"},
			"bpmn:MessageEventDefinition": {"bpmn:EventDefinition"},
		},
		Keys:       defaultKeys(),
		Stylesheet: defaultStylesheet(colorschemeType),
	}
}

func defaultKeys() input.InputConfig {
	return input.InputConfig{
		Panel: map[input.Keyspec]input.Actionspec{
			"j":       "next-control",
			"<down>":  "next-control",
			"k":       "prev-control",
			"<up>":    "prev-control",
			"<tab>":   "next-tab",
			"<s-tab>": "prev-tab",
			"<cr>":    "activate",
			"<space>": "toggle",
			"i":       "edit",
			"c":       "clear",
			"u":       "undo",
			"<c-r>":   "redo",
			"/":       "pick-element",
			"<c-s>":   "save",
			"?":       "help",
			"L":       "log",
			"q":       "quit",
		},
		StringEditor: input.ModedSpec{
			Normal: map[input.Keyspec]input.Actionspec{
				"h":     "move-cursor-left",
				"l":     "move-cursor-right",
				"0":     "move-cursor-to-beginning",
				"$":     "move-cursor-to-end",
				"w":     "move-cursor-to-next-word",
				"b":     "move-cursor-to-prev-word",
				"x":     "delete-char",
				"dd":    "delete-all",
				"i":     "swap-mode-insert",
				"a":     "append",
				"A":     "append-end",
				"<esc>": "quit",
				"<cr>":  "write-and-quit",
			},
			Insert: map[input.Keyspec]input.Actionspec{
				"<left>":  "move-cursor-left",
				"<right>": "move-cursor-right",
				"<bs>":    "backspace",
				"<del>":   "delete-char",
				"<c-u>":   "backspace-to-beginning",
				"<esc>":   "swap-mode-normal",
				"<cr>":    "write-and-quit",
			},
		},
		Picker: map[input.Keyspec]input.Actionspec{
			"<down>": "next-match",
			"<up>":   "prev-match",
			"<bs>":   "backspace",
			"<cr>":   "select",
			"<esc>":  "quit",
		},
	}
}

func defaultStylesheet(colorschemeType ColorschemeType) Stylesheet {
	if colorschemeType == Dark {
		return Stylesheet{
			Normal:          Styling{Fg: "#ffffff", Bg: "#000000", Style: &FontStyle{}},
			Header:          Styling{Fg: "#f0f0f0", Bg: "#202040", Style: &FontStyle{Bold: true}},
			TabActive:       Styling{Fg: "#ffffff", Bg: "#404080", Style: &FontStyle{Bold: true}},
			TabInactive:     Styling{Fg: "#c0c0c0", Bg: "#202020", Style: &FontStyle{}},
			GroupLabel:      Styling{Fg: "#ccebff", Bg: "#000000", Style: &FontStyle{Bold: true, Underlined: true}},
			EntryLabel:      Styling{Fg: "#c0c0c0", Bg: "#000000", Style: &FontStyle{}},
			Control:         Styling{Fg: "#ffffff", Bg: "#303030", Style: &FontStyle{}},
			ControlFocused:  Styling{Fg: "#000000", Bg: "#ccebff", Style: &FontStyle{Bold: true}},
			ControlDisabled: Styling{Fg: "#808080", Bg: "#202020", Style: &FontStyle{Italic: true}},
			Invalid:         Styling{Fg: "#ffaaaa", Bg: "#882222", Style: &FontStyle{Bold: true}},
			Status:          Styling{Fg: "#f0f0f0", Bg: "#202020", Style: &FontStyle{}},
			Help:            Styling{Fg: "#ffffff", Bg: "#404040", Style: &FontStyle{}},
			Editor:          Styling{Fg: "#ffffff", Bg: "#606060", Style: &FontStyle{}},
			LogDefault:      Styling{Fg: "#ffffff", Bg: "#000000", Style: &FontStyle{}},
			LogEntryError:   Styling{Fg: "#ffaaaa", Bg: "#882222", Style: &FontStyle{Bold: true}},
			LogEntryWarn:    Styling{Fg: "#fff0cc", Bg: "#cc8f00", Style: &FontStyle{Bold: true}},
			LogEntryInfo:    Styling{Fg: "#c2edab", Bg: "#3a751a", Style: &FontStyle{Bold: true}},
			LogEntryDebug:   Styling{Fg: "#ccebff", Bg: "#0065a3", Style: &FontStyle{Bold: true}},
		}
	}
	return Stylesheet{
		Normal:          Styling{Fg: "#000000", Bg: "#ffffff", Style: &FontStyle{}},
		Header:          Styling{Fg: "#000000", Bg: "#dcdcf0", Style: &FontStyle{Bold: true}},
		TabActive:       Styling{Fg: "#000000", Bg: "#b0b0e0", Style: &FontStyle{Bold: true}},
		TabInactive:     Styling{Fg: "#404040", Bg: "#f0f0f0", Style: &FontStyle{}},
		GroupLabel:      Styling{Fg: "#0065a3", Bg: "#ffffff", Style: &FontStyle{Bold: true, Underlined: true}},
		EntryLabel:      Styling{Fg: "#404040", Bg: "#ffffff", Style: &FontStyle{}},
		Control:         Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
		ControlFocused:  Styling{Fg: "#000000", Bg: "#ccebff", Style: &FontStyle{Bold: true}},
		ControlDisabled: Styling{Fg: "#a0a0a0", Bg: "#f0f0f0", Style: &FontStyle{Italic: true}},
		Invalid:         Styling{Fg: "#882222", Bg: "#ffaaaa", Style: &FontStyle{Bold: true}},
		Status:          Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
		Help:            Styling{Fg: "#000000", Bg: "#f0f0f0", Style: &FontStyle{}},
		Editor:          Styling{Fg: "#000000", Bg: "#e0e0e0", Style: &FontStyle{}},
		LogDefault:      Styling{Fg: "#000000", Bg: "#ffffff", Style: &FontStyle{}},
		LogEntryError:   Styling{Fg: "#882222", Bg: "#ffaaaa", Style: &FontStyle{Bold: true}},
		LogEntryWarn:    Styling{Fg: "#cc8f00", Bg: "#fff0cc", Style: &FontStyle{Bold: true}},
		LogEntryInfo:    Styling{Fg: "#3a751a", Bg: "#c2edab", Style: &FontStyle{Bold: true}},
		LogEntryDebug:   Styling{Fg: "#0065a3", Bg: "#ccebff", Style: &FontStyle{Bold: true}},
	}
}

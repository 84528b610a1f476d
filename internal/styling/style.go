// Package styling turns the configured stylesheet into tcell styles.
package styling

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ja-he/proppanel/internal/config"
)

// Style holds renderer-independent colors and font attributes.
// Its methods return modified copies.
type Style struct {
	fg colorful.Color
	bg colorful.Color

	bold, italic, underlined bool
}

// AsTcell returns this styling as a tcell.Style.
func (s Style) AsTcell() tcell.Style {
	return tcell.StyleDefault.
		Foreground(colorfulColorToTcellColor(s.fg)).
		Background(colorfulColorToTcellColor(s.bg)).
		Bold(s.bold).
		Italic(s.italic).
		Underline(s.underlined)
}

// Dimmed lightens both colors by a default amount, e.g. for disabled
// controls without a configured style.
func (s Style) Dimmed() Style {
	s.fg = lightenColorfulColor(s.fg, 50)
	s.bg = lightenColorfulColor(s.bg, 50)
	return s
}

// DarkenedBG darkens the background by the given percentage.
func (s Style) DarkenedBG(percentage int) Style {
	s.bg = darkenColorfulColor(s.bg, percentage)
	return s
}

// LightenedBG lightens the background by the given percentage.
func (s Style) LightenedBG(percentage int) Style {
	s.bg = lightenColorfulColor(s.bg, percentage)
	return s
}

func (s Style) Bolded() Style     { s.bold = true; return s }
func (s Style) Italicized() Style { s.italic = true; return s }

// String returns a representation for logs.
func (s Style) String() string {
	return fmt.Sprintf(
		"[fg:'%s' bg:'%s' (b:%t i:%t u:%t)]",
		s.fg.Hex(),
		s.bg.Hex(),
		s.bold,
		s.italic,
		s.underlined,
	)
}

// StyleFromHex constructs a style from two colors in hexadecimal HTML
// notation, e.g. '#ff0000' or '#fff'.
func StyleFromHex(fg, bg string) (Style, error) {
	fgColor, err := colorful.Hex(fg)
	if err != nil {
		return Style{}, fmt.Errorf("invalid foreground color '%s' (%w)", fg, err)
	}
	bgColor, err := colorful.Hex(bg)
	if err != nil {
		return Style{}, fmt.Errorf("invalid background color '%s' (%w)", bg, err)
	}
	return Style{fg: fgColor, bg: bgColor}, nil
}

// StyleFromConfig converts a configured styling.
func StyleFromConfig(c config.Styling) (Style, error) {
	s, err := StyleFromHex(c.Fg, c.Bg)
	if err != nil {
		return Style{}, err
	}
	if c.Style != nil {
		s.bold = c.Style.Bold
		s.italic = c.Style.Italic
		s.underlined = c.Style.Underlined
	}
	return s, nil
}

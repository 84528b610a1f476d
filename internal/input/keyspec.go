package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// namedKeys is the vocabulary of special keys usable in angle brackets,
// e.g. "<cr>". Several names can share a terminal key code (tcell reports
// <c-i> as <tab>); a key prints as the first name listed for it, control
// letters coming last.
var namedKeys = []struct {
	name string
	key  Key
}{
	// moving between controls and tabs
	{"up", Key{Key: tcell.KeyUp}},
	{"down", Key{Key: tcell.KeyDown}},
	{"left", Key{Key: tcell.KeyLeft}},
	{"right", Key{Key: tcell.KeyRight}},
	{"tab", Key{Key: tcell.KeyTab}},
	{"s-tab", Key{Key: tcell.KeyBacktab}},
	{"home", Key{Key: tcell.KeyHome}},
	{"end", Key{Key: tcell.KeyEnd}},
	{"pgup", Key{Key: tcell.KeyPgUp}},
	{"pgdn", Key{Key: tcell.KeyPgDn}},

	// acting on the focused control
	{"space", Key{Key: tcell.KeyRune, Ch: ' '}},
	{"cr", Key{Key: tcell.KeyEnter}},
	{"esc", Key{Key: tcell.KeyESC}},
	{"del", Key{Key: tcell.KeyDelete}},
	{"bs", Key{Key: tcell.KeyBackspace2}},
	{"c-bs", Key{Key: tcell.KeyBackspace}},
	{"c-space", Key{Key: tcell.KeyCtrlSpace}},
}

var keysByName, namesByKey = keyNames()

func keyNames() (map[string]Key, map[Key]string) {
	byName := map[string]Key{}
	byKey := map[Key]string{}
	add := func(name string, k Key) {
		byName[name] = k
		if _, taken := byKey[k]; !taken {
			byKey[k] = name
		}
	}
	for _, nk := range namedKeys {
		add(nk.name, nk.key)
	}
	for r := 'a'; r <= 'z'; r++ {
		add("c-"+string(r), Key{Key: tcell.KeyCtrlA + tcell.Key(r-'a')})
	}
	return byName, byKey
}

// NamedKey returns the key for a special key name (without brackets), e.g.
// "c-r" or "pgdn". Names are case-insensitive.
func NamedKey(name string) (Key, error) {
	k, ok := keysByName[strings.ToLower(name)]
	if !ok {
		return Key{}, fmt.Errorf("unknown key name '%s'", name)
	}
	return k, nil
}

// Parse returns the key sequence of the keyspec. Runes stand for themselves
// and names in angle brackets for special keys, so "<space>qw" is SPACE, Q,
// W. A literal '<' or '>' can't be bound.
func (s Keyspec) Parse() ([]Key, error) {
	runes := []rune(string(s))
	keys := []Key{}
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '>':
			return nil, fmt.Errorf("'>' without '<' at %d in '%s'", i, s)
		case '<':
			end := i + 1
			for end < len(runes) && runes[end] != '>' {
				if runes[end] == '<' {
					return nil, fmt.Errorf("'<' inside key name at %d in '%s'", end, s)
				}
				end++
			}
			if end == len(runes) {
				return nil, fmt.Errorf("unclosed '<' at %d in '%s'", i, s)
			}
			k, err := NamedKey(string(runes[i+1 : end]))
			if err != nil {
				return nil, fmt.Errorf("in '%s': %w", s, err)
			}
			keys = append(keys, k)
			i = end
		default:
			keys = append(keys, Key{Key: tcell.KeyRune, Ch: runes[i]})
		}
	}
	return keys, nil
}

// String returns the key as written in a keyspec, e.g. "x" or "<c-r>".
func (k Key) String() string {
	if name, ok := namesByKey[k]; ok {
		return "<" + name + ">"
	}
	if k.Key == tcell.KeyRune {
		return string(k.Ch)
	}
	return "<" + strings.ToLower(tcell.KeyNames[k.Key]) + ">"
}

// FormatKeys returns the keyspec typing keys.
func FormatKeys(keys ...Key) Keyspec {
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(k.String())
	}
	return Keyspec(sb.String())
}

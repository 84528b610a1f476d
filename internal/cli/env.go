package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ja-he/proppanel/internal/activation"
	"github.com/ja-he/proppanel/internal/bus"
	"github.com/ja-he/proppanel/internal/command"
	"github.com/ja-he/proppanel/internal/command/handlers"
	"github.com/ja-he/proppanel/internal/config"
	"github.com/ja-he/proppanel/internal/model"
	"github.com/ja-he/proppanel/internal/panel"
	"github.com/ja-he/proppanel/internal/provider"
	"github.com/ja-he/proppanel/internal/storage/providers"
	"github.com/ja-he/proppanel/internal/tui"
)

// homeDir returns the directory holding config.yaml.
func homeDir() string {
	if home := os.Getenv("PROPPANEL_HOME"); home != "" {
		return strings.TrimRight(home, "/")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "proppanel")
}

func themeFromString(theme string) config.ColorschemeType {
	switch theme {
	case "light":
		return config.Light
	default:
		return config.Dark
	}
}

// loadConfig reads config.yaml from the home directory, falling back to the
// defaults if there is none.
func loadConfig(theme string) (config.Config, error) {
	path := filepath.Join(homeDir(), "config.yaml")
	yamlData, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("can't read config file, using defaults")
		yamlData = nil
	}
	cfg, err := config.ParseConfigAugmentDefaults(themeFromString(theme), yamlData)
	if err != nil {
		return config.Config{}, fmt.Errorf("can't parse config data (%w)", err)
	}
	return cfg, nil
}

// session is a loaded document with a panel bound to it.
type session struct {
	cfg      config.Config
	files    *providers.FilesDocumentProvider
	doc      *model.Document
	registry *model.ElementRegistry
	bus      *bus.Bus
	stack    *command.Stack
	panel    *panel.Panel
}

// newSession loads the document in filename and wires up the panel for it.
func newSession(cfg config.Config, filename string) (*session, error) {
	files := providers.NewFilesDocumentProvider(filename)
	doc, registry, err := files.Load()
	if err != nil {
		return nil, err
	}
	for typ, supertypes := range cfg.Types {
		doc.DeclareType(typ, supertypes...)
	}

	b := bus.New()
	stack := command.NewStack(b)
	if err := handlers.Register(stack, registry); err != nil {
		return nil, err
	}

	activation.Register(b, cfg.Activation.DefaultPriority, activation.Permissive{})
	if len(cfg.Activation.Restrictions) > 0 {
		restrictions := make([]activation.Restriction, 0, len(cfg.Activation.Restrictions))
		for _, r := range cfg.Activation.Restrictions {
			restrictions = append(restrictions, activation.Restriction{Type: r.Type, Entries: r.Entries, ReadOnly: r.ReadOnly})
		}
		activation.Register(b, cfg.Activation.RestrictionPriority(), activation.NewRestricted(registry, restrictions))
	}

	p := panel.New(b, stack, provider.New(registry), registry, activation.NewActivator(b), panelConfig(cfg))

	log.Debug().Str("file", filename).Int("restrictions", len(cfg.Activation.Restrictions)).Msg("session set up")
	return &session{
		cfg:      cfg,
		files:    files,
		doc:      doc,
		registry: registry,
		bus:      b,
		stack:    stack,
		panel:    p,
	}, nil
}

func panelConfig(cfg config.Config) panel.Config {
	return panel.Config{
		HiddenClass:  cfg.Panel.HiddenClass,
		InvalidClass: cfg.Panel.InvalidClass,
		RootTypes:    cfg.Panel.RootTypes,
	}
}

// selectElement binds the panel to the element matching query, or to the
// root element if query is empty.
func (s *session) selectElement(query string) error {
	var el *model.Element
	if query != "" {
		var err error
		el, err = tui.ResolveElement(s.registry, query)
		if err != nil {
			return err
		}
	}
	if err := s.panel.Update(el); err != nil {
		return err
	}
	if s.panel.Current() == nil {
		return fmt.Errorf("no element to show (nothing selected and no root element)")
	}
	return nil
}

func (s *session) save() error {
	return s.files.Save(s.doc, s.registry)
}

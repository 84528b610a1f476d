package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/proppanel/internal/logbuf"
	"github.com/ja-he/proppanel/internal/styling"
	"github.com/ja-he/proppanel/internal/tui"
)

type TuiCommand struct {
	File          string `short:"f" long:"file" required:"true" description:"The document to edit" value-name:"<file>"`
	Element       string `short:"e" long:"element" description:"The element to select initially (id or fuzzy name match)"`
	Theme         string `short:"t" long:"theme" choice:"light" choice:"dark" description:"Select a 'dark' or a 'light' default theme (note: only sets defaults, which are individually overridden by settings in config.yaml"`
	LogOutputFile string `short:"l" long:"log-output-file" description:"specify a log output file (otherwise logs dropped)"`
	LogPretty     bool   `short:"p" long:"log-pretty" description:"prettify logs to file"`
}

func (command *TuiCommand) Execute(args []string) error {
	// set up stderr logger until TUI set up
	stderrLogger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// create TUI logger
	var logWriter io.Writer
	if command.LogOutputFile != "" {
		var fileLogger io.Writer
		file, err := os.OpenFile(command.LogOutputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			stderrLogger.Fatal().Err(err).Str("file", command.LogOutputFile).Msg("could not open file for logging")
		}
		defer file.Close()
		if command.LogPretty {
			fileLogger = zerolog.ConsoleWriter{Out: file}
		} else {
			fileLogger = file
		}
		logWriter = zerolog.MultiLevelWriter(fileLogger, logbuf.Global)
	} else {
		logWriter = logbuf.Global
	}
	tuiLogger := zerolog.New(logWriter).With().Timestamp().Caller().Logger()

	// temporarily log to both (in case the TUI doesn't get set we want the info
	// on the stderr logger, otherwise the TUI logger is relevant)
	log.Logger = log.Output(zerolog.MultiLevelWriter(stderrLogger, tuiLogger))

	cfg, err := loadConfig(command.Theme)
	if err != nil {
		return err
	}
	styles, err := styling.NewStylesheetFromConfig(cfg.Stylesheet)
	if err != nil {
		return err
	}
	s, err := newSession(cfg, command.File)
	if err != nil {
		return err
	}
	if err := s.selectElement(command.Element); err != nil {
		return err
	}

	screen, err := tui.NewTerminalScreenHandler()
	if err != nil {
		return err
	}
	// the screen owns the terminal now
	log.Logger = tuiLogger
	defer screen.Fini()

	driver, err := tui.New(screen, s.panel, s.stack, s.bus, s.registry, tui.Options{
		Keys:        cfg.Keys,
		Styles:      styles,
		PanelConfig: panelConfig(cfg),
		Save:        s.save,
		Logs:        logbuf.Global,
	})
	if err != nil {
		return err
	}
	defer driver.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("file", command.File).Msg("starting terminal panel")
	if err := driver.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

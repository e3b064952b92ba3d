package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/amterp/palettator/internal/config"
	"github.com/amterp/palettator/internal/model"
	"github.com/amterp/palettator/internal/prompt"
	"github.com/amterp/palettator/internal/session"
)

// App holds all the dependencies for the CLI.
// Uses interfaces for testability.
type App struct {
	Session    *session.Session
	Selector   prompt.Selector
	Config     model.Config
	ConfigPath string // Empty when running on defaults
	Printer    *Printer
	In         io.Reader
	Warnings   []string
	Initial    []string // Images to extract before the first prompt
}

// Options controls how NewApp builds the App.
type Options struct {
	ConfigPath  string
	NoClear     bool
	Interactive bool
}

// NewApp loads configuration and creates an App with all dependencies
// wired up. If Interactive is false, uses NoopSelector that fails on
// selections. A config file that cannot be parsed is an error; invalid
// values only produce warnings.
func NewApp(opts Options) (*App, error) {
	path := config.ResolvePath(opts.ConfigPath)
	cfg, warnings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.NoClear {
		cfg.ClearConsole = false
	}

	sess, fontWarnings, err := session.NewDefault(cfg, SystemOpener{})
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, fontWarnings...)

	var selector prompt.Selector
	if opts.Interactive {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		selector = prompt.NewHuhSelector(cwd, os.Stdout)
	} else {
		selector = &prompt.NoopSelector{}
	}

	return &App{
		Session:    sess,
		Selector:   selector,
		Config:     cfg,
		ConfigPath: path,
		Printer:    stdPrinter,
		In:         os.Stdin,
		Warnings:   warnings,
	}, nil
}

// Fatal prints an error and exits.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

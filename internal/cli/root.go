package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amterp/palettator/internal/config"
	"github.com/amterp/palettator/internal/logging"
	"github.com/amterp/palettator/internal/version"
	"github.com/amterp/ra"
)

// CommandContext holds parsed flag values.
type CommandContext struct {
	Config  *string
	Images  *[]string
	NoClear *bool
	Verbose *bool
	Version *bool
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("palettator")
	cmd.SetDescription("Extract color palettes from images and export them as swatches")

	ctx.Config, _ = ra.NewString("config").
		SetShort("c").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Path to a TOML config file").
		Register(cmd)

	ctx.Images, _ = ra.NewStringSlice("image").
		SetShort("i").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Image to extract before the prompt starts (repeatable)").
		Register(cmd)

	ctx.NoClear, _ = ra.NewBool("no-clear").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Never clear the terminal between commands").
		Register(cmd)

	ctx.Verbose, _ = ra.NewBool("verbose").
		SetShort("v").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Log diagnostics to stderr").
		Register(cmd)

	ctx.Version, _ = ra.NewBool("version").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Print the version and exit").
		Register(cmd)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	if *ctx.Version {
		fmt.Println(version.String())
		return
	}
	if *ctx.Verbose {
		logging.SetLogger(logging.NewTextLogger(os.Stderr))
	}

	runInteractive(ctx)
}

func runInteractive(ctx *CommandContext) {
	app, err := NewApp(Options{
		ConfigPath:  *ctx.Config,
		NoClear:     *ctx.NoClear,
		Interactive: true,
	})
	if err != nil {
		Fatal(err)
	}
	for _, w := range app.Warnings {
		PrintWarning("%s", w)
	}

	if app.ConfigPath != "" {
		watcher, err := config.NewWatcher(app.ConfigPath, func(path string) {
			PrintWarning("%s changed; restart palettator to apply it", path)
		})
		if err == nil {
			if err := watcher.Start(); err != nil {
				logging.Logger().Debug("config watcher not started", "error", err)
			}
			defer watcher.Stop()
		}
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.Initial = *ctx.Images
	if err := app.Loop(sigCtx); err != nil {
		PrintError("%v", err)
	}
}

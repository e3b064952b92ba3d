package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	palerr "github.com/amterp/palettator/internal/errors"
	"github.com/amterp/palettator/internal/logging"
	"github.com/amterp/palettator/internal/prompt"
)

const promptText = "Option : "

type readResult struct {
	line string
	err  error
}

// Loop runs the interactive command loop until /exit, end of input or ctx
// is cancelled. Each command is fully handled before the next line is
// read. Input is only read while the prompt is waiting, so the file
// selectors own a.In while a command runs.
func (a *App) Loop(ctx context.Context) error {
	a.printHeader()
	if len(a.Initial) > 0 {
		a.runGenerate(a.Initial)
	}
	a.printHints()

	in := &lineReader{r: a.In}
	for {
		fmt.Fprint(a.Printer.Out, promptText)

		// One read per prompt. If ctx ends first the read is abandoned; the
		// process is exiting.
		res := make(chan readResult, 1)
		go func() {
			line, err := in.ReadLine()
			res <- readResult{line, err}
		}()

		var r readResult
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.Printer.Out)
			return nil
		case r = <-res:
		}
		if r.err != nil {
			fmt.Fprintln(a.Printer.Out)
			if errors.Is(r.err, io.EOF) {
				return nil
			}
			return r.err
		}

		if a.Handle(r.line) {
			return nil
		}
	}
}

// lineReader reads one line at a time without buffering past the newline,
// leaving the rest of the input to whoever reads next.
type lineReader struct {
	r io.Reader
}

// ReadLine returns the next line without its "\n" or "\r\n". A final line
// without a newline is returned before io.EOF.
func (l *lineReader) ReadLine() (string, error) {
	var b strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := l.r.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				return strings.TrimSuffix(b.String(), "\r"), nil
			}
			b.WriteByte(buf[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && b.Len() > 0 {
				return strings.TrimSuffix(b.String(), "\r"), nil
			}
			return "", err
		}
	}
}

// Handle runs one input line and reports whether the loop should stop.
func (a *App) Handle(line string) (exit bool) {
	cmd, err := ParseCommand(line)
	if err != nil {
		a.Printer.Error("%v", err)
		return false
	}
	logging.Logger().Debug("command", "kind", cmd.Kind, "line", line)

	switch cmd.Kind {
	case CmdEmpty:
		return false
	case CmdExit:
		return true
	}

	// Validate before clearing so error messages stay next to the input.
	var paths []string
	switch cmd.Kind {
	case CmdGenerate:
		if !a.checkImagePath(cmd.Path) {
			return false
		}
		paths = []string{cmd.Path}
	case CmdSelectOne:
		path, err := a.Selector.SelectSingleFile("Choose an image")
		if err != nil {
			a.printSelectError(err)
			return false
		}
		paths = []string{path}
	case CmdSelectMany:
		selected, err := a.Selector.SelectMultipleFiles("Choose one or more images")
		if err != nil {
			a.printSelectError(err)
			return false
		}
		paths = selected
	case CmdShow:
		if _, _, err := a.Session.Show(cmd.Selector); err != nil {
			a.printIndexError(err)
			return false
		}
	case CmdExport, CmdList:
		if a.Session.Len() == 0 {
			a.Printer.Error("No palette available.")
			return false
		}
	}

	a.clear()

	switch cmd.Kind {
	case CmdHelp:
		a.printInstructions()
		return false
	case CmdConfig:
		a.printConfig()
	case CmdShow:
		a.runShow(cmd.Selector, cmd.Display)
	case CmdList:
		a.printList()
	case CmdExport:
		a.runExport(cmd)
	case CmdGenerate, CmdSelectOne, CmdSelectMany:
		a.runGenerate(paths)
	}

	a.printHints()
	return false
}

func (a *App) checkImagePath(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		a.Printer.Error("Please enter a valid path.")
		return false
	}
	if info.IsDir() {
		a.Printer.Error("Only files are allowed.")
		return false
	}
	return true
}

func (a *App) printSelectError(err error) {
	if errors.Is(err, prompt.ErrNoSelection) {
		a.Printer.Error("No file has been selected.")
		return
	}
	a.Printer.Error("File selection failed: %v", err)
}

func (a *App) printIndexError(err error) {
	if palerr.IsIndexOutOfRange(err) {
		a.Printer.Error("Invalid palette index. %s", RenderMuted(err.Error()))
		return
	}
	a.Printer.Error("%v", err)
}

func (a *App) clear() {
	if !a.Config.ClearConsole {
		return
	}
	if err := a.Selector.ClearDisplay(); err != nil {
		logging.Logger().Debug("clear failed", "error", err)
		return
	}
	a.printHeader()
}

func (a *App) runGenerate(paths []string) {
	plural := ""
	if len(paths) > 1 {
		plural = "s"
	}
	a.Printer.Info("Extracting palette%s from %d image%s", plural, len(paths), plural)

	result := a.Session.Generate(paths)
	for _, f := range result.Failures {
		a.Printer.Error("Error during generation of %s: %v", f.Path, f.Err)
	}
	if len(result.Added) == 0 {
		return
	}
	a.printList()
}

func (a *App) runShow(selector string, display bool) {
	index, p, err := a.Session.Show(selector)
	if err != nil {
		a.printIndexError(err)
		return
	}
	a.printPalette(index, p)

	if display {
		if err := a.Session.Display(p); err != nil {
			a.Printer.Warning("Cannot display images: %v", err)
		}
	}
}

func (a *App) runExport(cmd Command) {
	a.Printer.Println(Rule("Exporting to "+cmd.Format.String(), ruleWidth))
	a.Printer.Println("")

	result, err := a.Session.Export(cmd.Format, cmd.Selector)
	if err != nil {
		a.printIndexError(err)
		return
	}

	for i, path := range result.Written {
		a.Printer.Success("%2d >  Palette exported to %s", i+1, RenderPath(path))
	}
	for _, f := range result.Failures {
		a.Printer.Error("%s: %v", f.Palette.Name(), f.Err)
	}
	if !result.OK() {
		total := len(result.Written) + len(result.Failures)
		a.Printer.Warning("%d of %d exports failed", len(result.Failures), total)
	}
	a.printEnd()
}

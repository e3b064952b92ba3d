package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amterp/palettator/internal/model"
	"github.com/amterp/palettator/internal/version"
	"github.com/charmbracelet/lipgloss"
)

const ruleWidth = 60

func (a *App) printHeader() {
	title := TitleBox(version.Name)
	a.Printer.Println("")
	a.Printer.Println(lipgloss.JoinHorizontal(lipgloss.Bottom, title, " "+RenderMuted(version.String())))
	a.Printer.Println("")
}

func (a *App) printEnd() {
	a.Printer.Println("")
	a.Printer.Println(Rule("", ruleWidth))
	a.Printer.Println("")
}

// printHints prints the one-line command reminders shown above the prompt.
// Palette commands are only listed once palettes exist.
func (a *App) printHints() {
	hint := func(cmd, desc string) string {
		return "> " + StyleSuccess.Bold(true).Render(cmd) + " " + RenderMuted(desc)
	}

	n := a.Session.Len()
	if n == 0 {
		a.Printer.Println(hint("Full path to the image", ""))
		a.Printer.Println(hint("1 or /select", "select one file"))
		a.Printer.Println(hint("2 or /multi", "select multiple files"))
		a.Printer.Println(hint("/c or /config", "display configuration"))
		a.Printer.Println(hint("/h or /help", "display help"))
		a.Printer.Println(hint("Ctrl-C or /exit", "exit"))
	} else {
		a.Printer.Println(hint("1 or 2", "selection") + " - " + hint("Ctrl-C or /exit", "exit") + " - " + hint("/h or /help", "display help"))
		a.Printer.Println(hint(fmt.Sprintf("/s or /show [1-%d] [-d or --display]", n), "view palette details"))
		a.Printer.Println(hint(fmt.Sprintf("/(csv | json | gpl | aco) ALL | [1-%d]", n), "export palette"))
		a.Printer.Println(hint("/l or /list", "display palette list"))
	}
	a.Printer.Println("")
}

func (a *App) printList() {
	entries := a.Session.List()
	title := "PALETTE"
	if len(entries) > 1 {
		title = "PALETTES"
	}

	a.Printer.Println(Rule(title, ruleWidth))
	a.Printer.Println("")
	for _, e := range entries {
		a.Printer.Println(fmt.Sprintf("%2d >  %s  %s", e.Index, RenderBold(filepath.Base(e.SourcePath)), RenderID(e.ID)))
	}
	a.printEnd()
}

func (a *App) printPalette(index int, p *model.Palette) {
	a.Printer.Println(Rule(fmt.Sprintf("PALETTE %d", index), ruleWidth))
	a.Printer.Println("")
	a.Printer.Println(LabelValue("Directory", filepath.Dir(p.SourcePath), 14))
	a.Printer.Println(LabelValue("Name", filepath.Base(p.SourcePath), 14))
	a.Printer.Println(LabelValue("Palette path", RenderPath(p.SwatchPath()), 14))
	a.Printer.Println(LabelValue("ID", RenderID(p.ID), 14))
	a.Printer.Println("")

	for i, s := range p.Swatches {
		a.Printer.Println(fmt.Sprintf("%2d.  %s %-15s - %s - %6.2f%%",
			i+1, ColorSwatch(s.Color), s.Color.String(), s.Color.Hex(), s.Weight*100))
	}
	a.printEnd()
}

func (a *App) printConfig() {
	a.Printer.Println(Rule("Configuration", ruleWidth))
	a.Printer.Println("")

	source := "defaults"
	if a.ConfigPath != "" {
		source = a.ConfigPath
	}
	a.Printer.Println(LabelValue("Source", RenderPath(source), 8))
	a.Printer.Println("")

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(a.Config); err != nil {
		a.Printer.Error("Cannot display configuration: %v", err)
		return
	}
	a.Printer.Println(strings.TrimRight(buf.String(), "\n"))
	a.printEnd()
}

func (a *App) printInstructions() {
	a.Printer.Println(Rule("Usage", ruleWidth))
	a.Printer.Println("")
	a.Printer.Println(instructions)
	a.printEnd()
}

const instructions = `Palettator extracts the color palette of an image.

Generate palettes
  <path>            full path to the image
  1 or /select      select one file
  2 or /multi       select multiple files

  New palettes are appended to the list; it is cleared on exit.

View palette details
  /s or /show [1-N] [-d or --display]
      1-N           palette index in the list, blank for the first
      -d            also open the palette image and the source image

  Examples: /s 1 -d    /show 5    /s -d

Export palettes
  /(csv | json | gpl | aco) ALL | [1-N]
      ALL           every palette in the list
      1-N           palette index, blank for the first

  Examples: /csv 1    /aco ALL    /json

  Files are written next to the source image as <name>_palette.<ext>,
  or into export_dir when it is configured. Palettes sharing a name in
  one export get numbered files: <name>_palette_2.<ext>.

List palettes
  /l or /list

Configuration
  /c or /config     display the active configuration
  Settings are read at startup from --config, ./config.toml or
  ~/.config/palettator/config.toml.

Exit
  Ctrl-C or /exit`

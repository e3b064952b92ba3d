package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amterp/palettator/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Adaptive colors that work in both light and dark terminals.
// First value is for dark terminals, second for light terminals.
var (
	ColorSuccess = lipgloss.AdaptiveColor{Dark: "#22c55e", Light: "#16a34a"} // green
	ColorError   = lipgloss.AdaptiveColor{Dark: "#ef4444", Light: "#dc2626"} // red
	ColorWarning = lipgloss.AdaptiveColor{Dark: "#f59e0b", Light: "#d97706"} // amber
	ColorInfo    = lipgloss.AdaptiveColor{Dark: "#3b82f6", Light: "#2563eb"} // blue
	ColorMuted   = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"} // gray
	ColorAccent  = lipgloss.AdaptiveColor{Dark: "#a78bfa", Light: "#7c3aed"} // purple for IDs
	ColorPath    = lipgloss.AdaptiveColor{Dark: "#38bdf8", Light: "#0284c7"} // cyan for paths
)

// Reusable text styles
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleID      = lipgloss.NewStyle().Foreground(ColorAccent)
	StylePath    = lipgloss.NewStyle().Foreground(ColorPath)
	StyleBold    = lipgloss.NewStyle().Bold(true)
)

// Icons for status messages
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "→"
)

// Printer writes status messages. Errors and warnings go to Err.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

var stdPrinter = &Printer{Out: os.Stdout, Err: os.Stderr}

// Success prints a success message with a green checkmark.
func (p *Printer) Success(format string, args ...any) {
	icon := StyleSuccess.Render(IconSuccess)
	fmt.Fprintf(p.Out, "%s %s\n", icon, fmt.Sprintf(format, args...))
}

// Error prints an error message with a red X.
func (p *Printer) Error(format string, args ...any) {
	icon := StyleError.Render(IconError)
	fmt.Fprintf(p.Err, "%s %s\n", icon, fmt.Sprintf(format, args...))
}

// Warning prints a warning message with an amber icon.
func (p *Printer) Warning(format string, args ...any) {
	icon := StyleWarning.Render(IconWarning)
	fmt.Fprintf(p.Err, "%s %s\n", icon, fmt.Sprintf(format, args...))
}

// Info prints an info message with a muted arrow.
func (p *Printer) Info(format string, args ...any) {
	icon := StyleMuted.Render(IconInfo)
	fmt.Fprintf(p.Out, "%s %s\n", icon, fmt.Sprintf(format, args...))
}

// Println prints a plain line.
func (p *Printer) Println(s string) {
	fmt.Fprintln(p.Out, s)
}

// PrintError prints an error message with a red X to stderr.
func PrintError(format string, args ...any) {
	stdPrinter.Error(format, args...)
}

// PrintWarning prints a warning message with an amber icon to stderr.
func PrintWarning(format string, args ...any) {
	stdPrinter.Warning(format, args...)
}

// RenderID renders a palette ID in accent color.
func RenderID(id string) string {
	return StyleID.Render(id)
}

// RenderPath renders a file path in the path color.
func RenderPath(path string) string {
	return StylePath.Render(path)
}

// RenderMuted renders text in muted color.
func RenderMuted(text string) string {
	return StyleMuted.Render(text)
}

// RenderBold renders text in bold.
func RenderBold(text string) string {
	return StyleBold.Render(text)
}

// ColorSwatch renders a small block filled with c.
func ColorSwatch(c model.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render("██")
}

// TitleBox renders a title in a prominent bordered box.
func TitleBox(title string) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Padding(0, 2).
		Bold(true)
	return style.Render(title)
}

// Rule renders a horizontal rule with an optional title, like
// "── PALETTE 1 ──────".
func Rule(title string, width int) string {
	if title == "" {
		return StyleInfo.Render(strings.Repeat("─", width))
	}
	head := "── " + title + " "
	rest := max(2, width-lipgloss.Width(head))
	return StyleInfo.Render(head + strings.Repeat("─", rest))
}

// LabelValue formats a label-value pair with right-aligned label.
func LabelValue(label, value string, labelWidth int) string {
	labelStyle := lipgloss.NewStyle().
		Width(labelWidth).
		Align(lipgloss.Right).
		Foreground(ColorMuted)
	return fmt.Sprintf("%s %s", labelStyle.Render(label+":"), value)
}

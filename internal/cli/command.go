package cli

import (
	"fmt"
	"strings"

	"github.com/amterp/palettator/internal/export"
)

// CommandKind identifies an interactive command.
type CommandKind int

const (
	CmdEmpty CommandKind = iota
	CmdGenerate
	CmdSelectOne
	CmdSelectMany
	CmdShow
	CmdList
	CmdExport
	CmdConfig
	CmdHelp
	CmdExit
)

// Command is one parsed input line.
type Command struct {
	Kind     CommandKind
	Path     string        // CmdGenerate
	Selector string        // CmdShow, CmdExport; empty means the first palette
	Display  bool          // CmdShow
	Format   export.Format // CmdExport
}

// ParseCommand parses a line typed at the prompt. Anything that is not a
// slash command, "1" or "2" is taken as an image path. An unknown single
// word after a slash is an error rather than a path.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Kind: CmdEmpty}, nil
	}

	switch line {
	case "1":
		return Command{Kind: CmdSelectOne}, nil
	case "2":
		return Command{Kind: CmdSelectMany}, nil
	}

	if !strings.HasPrefix(line, "/") {
		return Command{Kind: CmdGenerate, Path: unquote(line)}, nil
	}

	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case "/exit", "/quit", "/q":
		return Command{Kind: CmdExit}, nil
	case "/h", "/help":
		return Command{Kind: CmdHelp}, nil
	case "/c", "/config":
		return Command{Kind: CmdConfig}, nil
	case "/l", "/list":
		return Command{Kind: CmdList}, nil
	case "/select":
		return Command{Kind: CmdSelectOne}, nil
	case "/multi":
		return Command{Kind: CmdSelectMany}, nil
	case "/s", "/show":
		return parseShow(args), nil
	}

	f, err := export.ParseFormat(strings.TrimPrefix(name, "/"))
	if err != nil {
		// Absolute paths also start with a slash.
		if strings.Contains(name[1:], "/") || strings.Contains(name, ".") {
			return Command{Kind: CmdGenerate, Path: line}, nil
		}
		return Command{}, fmt.Errorf("unknown command %q, enter /h for help", name)
	}
	cmd := Command{Kind: CmdExport, Format: f}
	if len(args) > 0 {
		cmd.Selector = args[0]
	}
	return cmd, nil
}

// parseShow reads "[N] [-d|--display]" in either order.
func parseShow(args []string) Command {
	cmd := Command{Kind: CmdShow}
	for _, a := range args {
		switch {
		case a == "-d" || a == "--display":
			cmd.Display = true
		case strings.HasPrefix(a, "-"):
		case cmd.Selector == "":
			cmd.Selector = a
		}
	}
	return cmd
}

// unquote strips the quotes terminals add around dropped file paths.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}

package cli

import (
	"flag"
	"fmt"
	"strings"
	"taskflow/internal/app"
	"taskflow/internal/kanban/search"
	"taskflow/internal/kanban/store"
)

func runSearch(args []string, s *app.Session) int {
	term := strings.Join(args, " ")
	if strings.TrimSpace(term) == "" {
		return usageError("search term required", "taskflow search <term>")
	}

	results := search.Cards(s.Data(), term)
	if len(results) == 0 {
		fmt.Fprintln(stdout, "No cards found.")
		return 0
	}

	for _, r := range results {
		fmt.Fprintf(stdout, "[%s] %s  (%s / %s)\n", shortID(r.Ref.CardID), r.CardTitle, r.BoardTitle, r.ColumnTitle)
		if r.MatchType != search.MatchTitle {
			fmt.Fprintf(stdout, "        %s: %s\n", r.MatchType, r.MatchText)
		}
	}

	fmt.Fprintf(stdout, "\n%d card(s)\n", len(results))
	return 0
}

func runExport(args []string, s *app.Session) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	formatName := fs.String("format", "", "Format: json, yaml, md (default from the file extension, else json)")
	rest, err := parseArgs(fs, args)
	if err != nil {
		return 1
	}
	if len(rest) > 1 {
		return usageError("at most one path", "taskflow export [path] [-format json|yaml|md]")
	}

	cmd := app.Export{}
	if len(rest) == 1 {
		cmd.Path = rest[0]
	}
	if *formatName != "" {
		if cmd.Format, err = store.ParseFormat(*formatName); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	out, err := s.Dispatch(cmd)
	if err != nil {
		fmt.Fprintf(stderr, "Error exporting: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Exported to %s\n", out.ExportPath)
	return 0
}

func runImport(args []string, s *app.Session) int {
	if len(args) != 1 {
		return usageError("file required", "taskflow import <file.json|file.yaml|board.md>")
	}

	if err := s.Import(args[0]); err != nil {
		fmt.Fprintf(stderr, "Error importing %s: %v\n", args[0], err)
		return 1
	}

	data := s.Data()
	board, _ := data.GetActiveBoard()
	fmt.Fprintf(stdout, "Imported %s (%d boards, active: %s)\n", args[0], len(data.Boards), board.Title)
	return 0
}

func runDarkMode(args []string, s *app.Session) int {
	if len(args) == 0 {
		fmt.Fprintf(stdout, "Dark mode: %s\n", onOff(s.DarkMode()))
		return 0
	}

	switch args[0] {
	case "on":
		s.SetDarkMode(true)
	case "off":
		s.SetDarkMode(false)
	case "toggle":
		s.Dispatch(app.ToggleDarkMode{})
	default:
		return usageError("unknown value "+args[0], "taskflow darkmode [on|off|toggle]")
	}

	fmt.Fprintf(stdout, "Dark mode: %s\n", onOff(s.DarkMode()))
	return 0
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

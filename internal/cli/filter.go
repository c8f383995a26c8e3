package cli

import (
	"flag"
	"fmt"
	"taskflow/internal/app"
	"taskflow/internal/config"
	"taskflow/internal/kanban/dates"
	"taskflow/internal/kanban/filter"
	"taskflow/internal/kanban/models"
)

func runFilterCommand(args []string, s *app.Session) int {
	if len(args) == 0 {
		return runFilterShow(s)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "show":
		return runFilterShow(s)
	case "set":
		return runFilterSet(cmdArgs, s)
	case "clear":
		return runFilterClear(s)
	case "help", "-h", "--help":
		printFilterUsage()
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown filter command: %s\n", command)
		printFilterUsage()
		return 1
	}
}

func runFilterShow(s *app.Session) int {
	data := s.Data()
	board, err := findBoard(data, "")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	opts := data.FilterFor(board.ID)
	fmt.Fprintf(stdout, "%s: %s\n", board.Title, filter.Describe(opts, data.Labels))
	return 0
}

func runFilterSet(args []string, s *app.Session) int {
	fs := flag.NewFlagSet("set", flag.ContinueOnError)
	labels := fs.String("l", "", "Labels by name or id (comma-separated, any match)")
	priority := fs.String("p", "", "Priority: low, medium, high, urgent")
	due := fs.String("due", "", "Due date: overdue, today, thisWeek, future")
	if _, err := parseArgs(fs, args); err != nil {
		return 1
	}

	data := s.Data()
	board, err := findBoard(data, "")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	opts := models.FilterOptions{}
	if opts.LabelIDs, err = labelIDs(data, config.ParseCommaSeparated(*labels)); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *priority != "" {
		p, err := parsePriority(*priority)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		opts.Priority = &p
	}
	if *due != "" {
		bucket, err := dates.ParseFilter(*due)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		opts.DueDateFilter = &bucket
	}

	if code, ok := apply(s, "set filter", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().SetFilter(data, board.ID, opts)
	}); !ok {
		return code
	}

	return runFilterShow(s)
}

func runFilterClear(s *app.Session) int {
	board, err := findBoard(s.Data(), "")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if code, ok := apply(s, "clear filter", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().ClearFilter(data, board.ID)
	}); !ok {
		return code
	}

	fmt.Fprintf(stdout, "Cleared filter on %s\n", board.Title)
	return 0
}

func printFilterUsage() {
	fmt.Fprintln(stdout, `taskflow filter - Filter the active board

Usage: taskflow filter <command> [arguments]

Commands:
  show        Show the active board's filter
  set         Replace the filter; cards must match every given criterion
              taskflow filter set -l bug,ui -p high -due thisWeek
  clear       Remove the filter`)
}

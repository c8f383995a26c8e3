package cli

import (
	"flag"
	"fmt"
	"taskflow/internal/app"
	"taskflow/internal/kanban/models"
)

func runLabelCommand(args []string, s *app.Session) int {
	if len(args) == 0 {
		return runLabelList(s)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "list", "ls", "l":
		return runLabelList(s)
	case "add", "a", "new":
		return runLabelAdd(cmdArgs, s)
	case "update", "edit":
		return runLabelUpdate(cmdArgs, s)
	case "delete", "rm", "del":
		return runLabelDelete(cmdArgs, s)
	case "help", "-h", "--help":
		printLabelUsage()
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown label command: %s\n", command)
		printLabelUsage()
		return 1
	}
}

func runLabelList(s *app.Session) int {
	data := s.Data()
	if len(data.Labels) == 0 {
		fmt.Fprintln(stdout, "No labels.")
		return 0
	}

	used := map[string]int{}
	for _, b := range data.Boards {
		for _, col := range b.Columns {
			for _, card := range col.Cards {
				for _, id := range card.Labels {
					used[id]++
				}
			}
		}
	}

	for _, l := range data.Labels {
		fmt.Fprintf(stdout, "[%s] %s %s (%d cards)\n", shortID(l.ID), l.Name, l.Color, used[l.ID])
	}
	return 0
}

func runLabelAdd(args []string, s *app.Session) int {
	if len(args) == 0 || len(args) > 2 {
		return usageError("label name required", "taskflow label add <name> [#color]")
	}

	color := ""
	if len(args) == 2 {
		color = args[1]
	}

	if code, ok := apply(s, "add label", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().AddLabel(data, args[0], color)
	}); !ok {
		return code
	}

	labels := s.Data().Labels
	l := labels[len(labels)-1]
	fmt.Fprintf(stdout, "Added label: %s %s\n", l.Name, l.Color)
	return 0
}

func runLabelUpdate(args []string, s *app.Session) int {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	name := fs.String("n", "", "New name")
	color := fs.String("color", "", "New color (#rrggbb)")
	rest, err := parseArgs(fs, args)
	if err != nil {
		return 1
	}
	if len(rest) != 1 {
		return usageError("label required", "taskflow label update <label> [-n name] [-color #rrggbb]")
	}

	label, err := findLabel(s.Data(), rest[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	newName, newColor := label.Name, label.Color
	if *name != "" {
		newName = *name
	}
	if *color != "" {
		newColor = *color
	}

	if code, ok := apply(s, "update label", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().UpdateLabel(data, label.ID, newName, newColor)
	}); !ok {
		return code
	}

	updated, _ := s.Data().FindLabel(label.ID)
	fmt.Fprintf(stdout, "Updated label: %s %s\n", updated.Name, updated.Color)
	return 0
}

func runLabelDelete(args []string, s *app.Session) int {
	if len(args) != 1 {
		return usageError("label required", "taskflow label delete <label>")
	}

	label, err := findLabel(s.Data(), args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if code, ok := apply(s, "delete label", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().DeleteLabel(data, label.ID)
	}); !ok {
		return code
	}

	fmt.Fprintf(stdout, "Deleted label: %s (removed from all cards and filters)\n", label.Name)
	return 0
}

func printLabelUsage() {
	fmt.Fprintln(stdout, `taskflow label - Label commands

Usage: taskflow label <command> [arguments]

Commands:
  list, ls    List labels with how many cards carry them
  add         Add a label (default color #3b82f6)
              taskflow label add Bug "#ef4444"
  update      Rename or recolor a label
              taskflow label update Bug -n Defect -color "#dc2626"
  delete, rm  Delete a label from every card and filter

Labels may be given by name or id.`)
}

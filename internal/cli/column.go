package cli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"taskflow/internal/app"
	"taskflow/internal/kanban/models"
)

func runColumnCommand(args []string, s *app.Session) int {
	if len(args) == 0 {
		return runColumnList(nil, s)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "list", "ls", "l":
		return runColumnList(cmdArgs, s)
	case "add", "a", "new":
		return runColumnAdd(cmdArgs, s)
	case "rename":
		return runColumnRename(cmdArgs, s)
	case "delete", "rm", "del":
		return runColumnDelete(cmdArgs, s)
	case "move", "mv":
		return runColumnMove(cmdArgs, s)
	case "help", "-h", "--help":
		printColumnUsage()
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown column command: %s\n", command)
		printColumnUsage()
		return 1
	}
}

// boardFlag adds the -b flag shared by column commands
func boardFlag(fs *flag.FlagSet) *string {
	return fs.String("b", "", "Board (defaults to the active board)")
}

func runColumnList(args []string, s *app.Session) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	boardRef := boardFlag(fs)
	if _, err := parseArgs(fs, args); err != nil {
		return 1
	}

	board, err := findBoard(s.Data(), *boardRef)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	for i, col := range board.Columns {
		fmt.Fprintf(stdout, "%d. [%s] %s (%d cards)\n", i, shortID(col.ID), col.Title, len(col.Cards))
	}
	return 0
}

func runColumnAdd(args []string, s *app.Session) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	boardRef := boardFlag(fs)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return 1
	}

	title := strings.Join(rest, " ")
	if strings.TrimSpace(title) == "" {
		return usageError("column title required", `taskflow column add "Review" [-b board]`)
	}

	board, err := findBoard(s.Data(), *boardRef)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if code, ok := apply(s, "add column", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().AddColumn(data, board.ID, title)
	}); !ok {
		return code
	}

	fmt.Fprintf(stdout, "Added column: %s\n", strings.TrimSpace(title))
	return 0
}

func runColumnRename(args []string, s *app.Session) int {
	fs := flag.NewFlagSet("rename", flag.ContinueOnError)
	boardRef := boardFlag(fs)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return 1
	}
	if len(rest) < 2 {
		return usageError("column and new title required", `taskflow column rename <column> "New title" [-b board]`)
	}

	board, col, err := boardColumn(s, *boardRef, rest[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	title := strings.Join(rest[1:], " ")

	if code, ok := apply(s, "rename column", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().RenameColumn(data, board.ID, col.ID, title)
	}); !ok {
		return code
	}

	fmt.Fprintf(stdout, "Renamed: %s -> %s\n", col.Title, strings.TrimSpace(title))
	return 0
}

func runColumnDelete(args []string, s *app.Session) int {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	boardRef := boardFlag(fs)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return 1
	}
	if len(rest) == 0 {
		return usageError("column required", "taskflow column delete <column> [-b board]")
	}

	board, col, err := boardColumn(s, *boardRef, strings.Join(rest, " "))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if code, ok := apply(s, "delete column", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().DeleteColumn(data, board.ID, col.ID)
	}); !ok {
		return code
	}

	fmt.Fprintf(stdout, "Deleted column: %s (%d cards)\n", col.Title, len(col.Cards))
	return 0
}

func runColumnMove(args []string, s *app.Session) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	boardRef := boardFlag(fs)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return 1
	}
	if len(rest) != 2 {
		return usageError("column and position required", "taskflow column move <column> <position> [-b board]")
	}

	to, err := strconv.Atoi(rest[1])
	if err != nil {
		return usageError("position must be a number", "taskflow column move <column> <position> [-b board]")
	}

	board, col, err := boardColumn(s, *boardRef, rest[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if code, ok := apply(s, "move column", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().MoveColumn(data, board.ID, board.ColumnIndex(col.ID), to)
	}); !ok {
		return code
	}

	fmt.Fprintf(stdout, "Moved column: %s\n", col.Title)
	return 0
}

func boardColumn(s *app.Session, boardRef, columnRef string) (models.Board, models.Column, error) {
	board, err := findBoard(s.Data(), boardRef)
	if err != nil {
		return models.Board{}, models.Column{}, err
	}
	col, err := findColumn(board, columnRef)
	if err != nil {
		return models.Board{}, models.Column{}, err
	}
	return board, col, nil
}

func printColumnUsage() {
	fmt.Fprintln(stdout, `taskflow column - Column commands

Usage: taskflow column <command> [arguments] [-b board]

Commands:
  list, ls       List the columns of a board
  add            Append a column
                 taskflow column add "Review"
  rename         Rename a column
                 taskflow column rename "To Do" "Backlog"
  delete, rm     Delete a column and every card in it
  move, mv       Move a column to a position (0-based)
                 taskflow column move Done 0

Columns may be given by title, id or id prefix.`)
}

package cli

import (
	"fmt"
	"strings"
	"taskflow/internal/app"
	"taskflow/internal/kanban/models"
)

func runBoardCommand(args []string, s *app.Session) int {
	if len(args) == 0 {
		return runBoardList(s)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "list", "ls", "l":
		return runBoardList(s)
	case "add", "a", "new":
		return runBoardAdd(cmdArgs, s)
	case "rename", "mv":
		return runBoardRename(cmdArgs, s)
	case "delete", "rm", "del":
		return runBoardDelete(cmdArgs, s)
	case "use", "switch":
		return runBoardUse(cmdArgs, s)
	case "next":
		return runBoardCycle(s, app.NextBoard{})
	case "prev":
		return runBoardCycle(s, app.PrevBoard{})
	case "help", "-h", "--help":
		printBoardUsage()
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown board command: %s\n", command)
		printBoardUsage()
		return 1
	}
}

func runBoardList(s *app.Session) int {
	data := s.Data()
	for _, b := range data.Boards {
		marker := " "
		if b.ID == data.ActiveBoard {
			marker = "*"
		}
		fmt.Fprintf(stdout, "%s [%s] %s (%d columns, %d cards)\n", marker, shortID(b.ID), b.Title, len(b.Columns), b.CardCount())
	}
	return 0
}

func runBoardAdd(args []string, s *app.Session) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		return usageError("board title required", `taskflow board add "Board title"`)
	}

	if code, ok := dispatch(s, app.NewBoard{Title: title}); !ok {
		return code
	}

	board, _ := s.Data().GetActiveBoard()
	fmt.Fprintf(stdout, "Added board: %s\n", board.Title)
	fmt.Fprintf(stdout, "ID: %s\n", board.ID)
	return 0
}

func runBoardRename(args []string, s *app.Session) int {
	if len(args) < 2 {
		return usageError("board and new title required", `taskflow board rename <board> "New title"`)
	}

	board, err := findBoard(s.Data(), args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	title := strings.Join(args[1:], " ")

	if code, ok := apply(s, "rename board", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().RenameBoard(data, board.ID, title)
	}); !ok {
		return code
	}

	fmt.Fprintf(stdout, "Renamed: %s -> %s\n", board.Title, strings.TrimSpace(title))
	return 0
}

func runBoardDelete(args []string, s *app.Session) int {
	if len(args) == 0 {
		return usageError("board required", "taskflow board delete <board>")
	}

	board, err := findBoard(s.Data(), args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if code, ok := apply(s, "delete board", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().DeleteBoard(data, board.ID)
	}); !ok {
		return code
	}

	fmt.Fprintf(stdout, "Deleted board: %s\n", board.Title)
	return 0
}

func runBoardUse(args []string, s *app.Session) int {
	if len(args) == 0 {
		return usageError("board required", "taskflow board use <board>")
	}

	board, err := findBoard(s.Data(), strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if code, ok := apply(s, "use board", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().SetActiveBoard(data, board.ID)
	}); !ok {
		return code
	}

	fmt.Fprintf(stdout, "Active board: %s\n", board.Title)
	return 0
}

func runBoardCycle(s *app.Session, cmd app.Command) int {
	if code, ok := dispatch(s, cmd); !ok {
		return code
	}
	board, _ := s.Data().GetActiveBoard()
	fmt.Fprintf(stdout, "Active board: %s\n", board.Title)
	return 0
}

func printBoardUsage() {
	fmt.Fprintln(stdout, `taskflow board - Board commands

Usage: taskflow board <command> [arguments]

Commands:
  list, ls       List boards (* marks the active board)
  add, new       Add a board with To Do, In Progress and Done columns
                 taskflow board add "Side project"
  rename, mv     Rename a board
                 taskflow board rename <board> "New title"
  delete, rm     Delete a board (the last board cannot be deleted)
  use            Make a board active
  next, prev     Cycle the active board

Boards may be given by id, id prefix or title.`)
}

package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"taskflow/internal/app"
	"taskflow/internal/kanban/operations"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Commands lists the namespaces Run understands, for the caller to decide
// between the CLI and the TUI
var Commands = []string{"board", "column", "card", "label", "filter", "search", "export", "import", "darkmode", "help"}

// IsCommand reports whether name is a CLI namespace
func IsCommand(name string) bool {
	for _, c := range Commands {
		if c == name {
			return true
		}
	}
	return name == "-h" || name == "--help"
}

// Run executes the CLI with the given arguments.
// The first argument should be the namespace ("board", "card", ...).
func Run(args []string, s *app.Session) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	namespace := args[0]
	subArgs := args[1:]

	switch namespace {
	case "board":
		return runBoardCommand(subArgs, s)
	case "column":
		return runColumnCommand(subArgs, s)
	case "card":
		return runCardCommand(subArgs, s)
	case "label":
		return runLabelCommand(subArgs, s)
	case "filter":
		return runFilterCommand(subArgs, s)
	case "search":
		return runSearch(subArgs, s)
	case "export":
		return runExport(subArgs, s)
	case "import":
		return runImport(subArgs, s)
	case "darkmode":
		return runDarkMode(subArgs, s)
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", namespace)
		printUsage()
		return 1
	}
}

// apply runs a mutation. When ok is false the command should stop and exit
// with code: a mutation that changes nothing exits 0, rejections exit 1.
func apply(s *app.Session, op string, fn app.Mutation) (code int, ok bool) {
	err := s.Apply(op, fn)
	if err == nil {
		return 0, true
	}
	if errors.Is(err, operations.ErrUnchanged) {
		fmt.Fprintf(stdout, "Nothing to do: %v\n", err)
		return 0, false
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1, false
}

// parseArgs parses flags that may appear before, between or after positional
// arguments
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	fs.SetOutput(stderr)
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func usageError(msg, usage string) int {
	fmt.Fprintf(stderr, "Error: %s\n", msg)
	fmt.Fprintf(stderr, "Usage: %s\n", usage)
	return 1
}

func printUsage() {
	fmt.Fprintln(stdout, `taskflow - Personal kanban boards

Usage: taskflow [flags] [command] [arguments]

Commands:
  board       List, add, rename, delete and switch boards
  column      Manage the columns of a board
  card        Add, edit, move and comment on cards
  label       Manage labels
  filter      Show, set or clear the active board's filter
  search      Search card titles, descriptions and comments
  export      Export all boards (json, yaml) or the active board (md)
  import      Import a json/yaml export or a markdown board
  darkmode    Show or change the dark mode preference

Flags:
  -d, --dir <path>       Data directory
      --storage <name>   Storage backend: file, sqlite, memory
  -u, --user <id>        User recorded on activity and comments

Running taskflow without arguments launches the interactive TUI.
Use "taskflow <command> help" for subcommands.`)
}

// dispatch routes a command through the session, reporting like apply
func dispatch(s *app.Session, cmd app.Command) (code int, ok bool) {
	_, err := s.Dispatch(cmd)
	if err == nil {
		return 0, true
	}
	if errors.Is(err, operations.ErrUnchanged) {
		fmt.Fprintf(stdout, "Nothing to do: %v\n", err)
		return 0, false
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1, false
}

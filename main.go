package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"taskflow/internal/app"
	"taskflow/internal/cli"
	"taskflow/internal/config"
	"taskflow/internal/kanban/operations"
	"taskflow/internal/kanban/store"
	"taskflow/internal/logs"
	"taskflow/internal/tui"
)

func main() {
	// Parse CLI flags
	dirFlag := flag.String("dir", "", "Data directory")
	flag.StringVar(dirFlag, "d", "", "Data directory (shorthand)")
	storageFlag := flag.String("storage", "", "Storage backend: file, sqlite, memory")
	userFlag := flag.String("user", "", "User recorded on comments and activity")
	flag.StringVar(userFlag, "u", "", "User (shorthand)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(config.CLIFlags{
		DataDir: *dirFlag,
		Storage: *storageFlag,
		User:    *userFlag,
	})
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure config file exists
	if err := config.EnsureConfigFile(); err != nil {
		log.Printf("Warning: could not create config file: %v", err)
	}

	// Ensure data and export directories exist
	if err := cfg.EnsureDirs(); err != nil {
		log.Fatalf("Failed to create directories: %v", err)
	}

	// Reinitialize logger
	if err := logs.Initialize(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
	}
	defer logs.Close()

	storage, err := store.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.Storage, err)
	}
	gateway := store.NewGateway(storage)
	defer gateway.Close()

	session, err := app.NewSession(operations.New(operations.WithUser(cfg.User)), gateway, cfg.ExportDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Check for CLI subcommands
	if args := flag.Args(); len(args) > 0 {
		if !cli.IsCommand(args[0]) {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\nRun 'taskflow help' for usage.\n", args[0])
			os.Exit(1)
		}
		exitCode := cli.Run(args, session)
		gateway.Close()
		logs.Close()
		os.Exit(exitCode)
	}

	// TUI mode
	logs.Logger.Println("Starting app in TUI mode")
	p := tea.NewProgram(tui.NewAppModel(session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}

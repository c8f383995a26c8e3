package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const prefix = "[taskflow] "

var (
	Logger  *log.Logger
	logFile *os.File
	mu      sync.Mutex
)

// Writes to debug.log in the working directory until Initialize points the
// logger at the data directory.
func init() {
	f, err := os.OpenFile("debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		Logger = log.New(io.Discard, prefix, log.LstdFlags|log.Lshortfile)
		return
	}
	logFile = f
	Logger = log.New(f, prefix, log.LstdFlags|log.Lshortfile)
}

// Initialize reinitializes the logger to write to a new directory.
func Initialize(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" || logDir == "." {
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		Logger.Printf("Failed to create log directory %s: %v", logDir, err)
		return err
	}

	logPath := filepath.Join(logDir, "debug.log")

	Logger.Printf("Reinitializing logger to: %s", logPath)

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		Logger.Printf("Failed to open new log file at %s: %v", logPath, err)
		return err
	}

	if logFile != nil {
		logFile.Close()
	}

	logFile = f
	Logger = log.New(f, prefix, log.LstdFlags|log.Lshortfile)

	Logger.Printf("Logger successfully reinitialized to: %s", logPath)

	return nil
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		return err
	}
	return nil
}

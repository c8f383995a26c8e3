package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"taskflow/internal/kanban/models"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidImport means the input parsed but is not a kanban tree
	ErrInvalidImport = errors.New("invalid kanban data")
	// ErrParseImport means the input could not be parsed at all
	ErrParseImport = errors.New("could not parse import file")
)

// Format is an export/import file format
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "md"
)

// ParseFormat accepts a format name or file extension
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, yaml or md)", s)
	}
}

// FormatForPath picks the format from a file extension, defaulting to JSON
func FormatForPath(path string) Format {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return FormatJSON
	}
	return f
}

// ExportFilename returns the default export file name for the given day
func ExportFilename(now time.Time, format Format) string {
	ext := string(format)
	if format == "" {
		ext = string(FormatJSON)
	}
	return fmt.Sprintf("kanban-export-%s.%s", now.Format("2006-01-02"), ext)
}

// Export writes the full tree as JSON or YAML
func Export(w io.Writer, data models.KanbanData, format Format) error {
	var (
		out []byte
		err error
	)
	switch format {
	case FormatJSON, "":
		out, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("format %q cannot hold the whole tree", format)
	}
	if err != nil {
		return fmt.Errorf("error encoding kanban data: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// ExportFile writes an export into dir with the default name and returns its
// path. Markdown exports hold only the active board.
func ExportFile(dir string, data models.KanbanData, format Format, now time.Time) (string, error) {
	path := filepath.Join(dir, ExportFilename(now, format))
	return path, ExportTo(path, data, format, now)
}

// ExportTo writes an export to path
func ExportTo(path string, data models.KanbanData, format Format, now time.Time) error {
	var buf bytes.Buffer
	if format == FormatMarkdown {
		board, ok := data.GetActiveBoard()
		if !ok {
			return fmt.Errorf("no active board to export")
		}
		if err := WriteBoardMarkdown(&buf, data, board, now); err != nil {
			return err
		}
	} else if err := Export(&buf, data, format); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating export directory: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Import decodes a whole tree. Input must hold a boards array and a non-empty
// activeBoard.
func Import(r io.Reader, format Format) (models.KanbanData, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return models.KanbanData{}, fmt.Errorf("%w: %v", ErrParseImport, err)
	}

	var (
		raw  map[string]any
		data models.KanbanData
	)
	switch format {
	case FormatJSON, "":
		if err := json.Unmarshal(content, &raw); err != nil {
			return models.KanbanData{}, parseOrShapeError(err)
		}
		if err := checkShape(raw); err != nil {
			return models.KanbanData{}, err
		}
		if err := json.Unmarshal(content, &data); err != nil {
			return models.KanbanData{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return models.KanbanData{}, parseOrShapeError(err)
		}
		if err := checkShape(raw); err != nil {
			return models.KanbanData{}, err
		}
		if err := yaml.Unmarshal(content, &data); err != nil {
			return models.KanbanData{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}
	default:
		return models.KanbanData{}, fmt.Errorf("format %q cannot hold the whole tree", format)
	}

	return normalize(data), nil
}

// ImportFile reads a JSON or YAML export, choosing the format by extension
func ImportFile(path string) (models.KanbanData, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.KanbanData{}, err
	}
	defer f.Close()
	return Import(f, FormatForPath(path))
}

// ReadBoardMarkdownFile reads a markdown board outline from disk
func ReadBoardMarkdownFile(path string) (BoardOutline, error) {
	f, err := os.Open(path)
	if err != nil {
		return BoardOutline{}, err
	}
	defer f.Close()
	return ReadBoardMarkdown(f)
}

// parseOrShapeError separates syntax errors from valid documents that are not
// objects (a top-level array or string, say)
func parseOrShapeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var yamlTypeErr *yaml.TypeError
	if errors.As(err, &typeErr) || errors.As(err, &yamlTypeErr) {
		return fmt.Errorf("%w: expected an object with boards and activeBoard", ErrInvalidImport)
	}
	return fmt.Errorf("%w: %v", ErrParseImport, err)
}

func checkShape(raw map[string]any) error {
	if raw == nil {
		return fmt.Errorf("%w: expected an object with boards and activeBoard", ErrInvalidImport)
	}
	if _, ok := raw["boards"].([]any); !ok {
		return fmt.Errorf("%w: boards must be an array", ErrInvalidImport)
	}
	if !truthy(raw["activeBoard"]) {
		return fmt.Errorf("%w: activeBoard is missing", ErrInvalidImport)
	}
	return nil
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case int:
		return x != 0
	default:
		return true
	}
}

// normalize replaces absent collections with empty ones so engine output and
// decoded input look the same, and points activeBoard at a real board
func normalize(data models.KanbanData) models.KanbanData {
	if data.Boards == nil {
		data.Boards = []models.Board{}
	}
	if data.Users == nil {
		data.Users = []models.User{}
	}
	if data.Labels == nil {
		data.Labels = []models.Label{}
	}
	if data.Filters == nil {
		data.Filters = map[string]models.FilterOptions{}
	}
	for id, f := range data.Filters {
		if f.LabelIDs == nil {
			f.LabelIDs = []string{}
			data.Filters[id] = f
		}
	}
	for bi := range data.Boards {
		board := &data.Boards[bi]
		if board.Columns == nil {
			board.Columns = []models.Column{}
		}
		for ci := range board.Columns {
			column := &board.Columns[ci]
			if column.Cards == nil {
				column.Cards = []models.Card{}
			}
			for k := range column.Cards {
				card := &column.Cards[k]
				if card.Assignees == nil {
					card.Assignees = []string{}
				}
				if card.Labels == nil {
					card.Labels = []string{}
				}
				if card.Comments == nil {
					card.Comments = []models.Comment{}
				}
				if card.Activity == nil {
					card.Activity = []models.Activity{}
				}
			}
		}
	}
	if len(data.Boards) > 0 && data.BoardIndex(data.ActiveBoard) < 0 {
		data.ActiveBoard = data.Boards[0].ID
	}
	return data
}

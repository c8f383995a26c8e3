package store

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"taskflow/internal/kanban/dates"
	"taskflow/internal/kanban/models"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
)

// BoardOutline is a board read back from markdown. Labels are kept by name
// because ids are not portable between trees.
type BoardOutline struct {
	Title   string
	Columns []ColumnOutline
}

type ColumnOutline struct {
	Title string
	Cards []CardOutline
}

type CardOutline struct {
	Title       string
	Description string
	Priority    models.Priority
	DueDate     *time.Time
	LabelNames  []string
}

type boardFrontmatter struct {
	Board    string `yaml:"board,omitempty"`
	Title    string `yaml:"title"`
	Exported string `yaml:"exported,omitempty"`
}

// WriteBoardMarkdown renders a board as markdown: one h2 per column and one
// list item per card. Card metadata is written as code spans after the title.
func WriteBoardMarkdown(w io.Writer, data models.KanbanData, board models.Board, now time.Time) error {
	var buf bytes.Buffer

	fm, err := yaml.Marshal(boardFrontmatter{Board: board.ID, Title: board.Title, Exported: now.Format("2006-01-02")})
	if err != nil {
		return fmt.Errorf("error encoding frontmatter: %w", err)
	}
	buf.WriteString("---\n")
	buf.Write(fm)
	buf.WriteString("---\n\n")

	buf.WriteString("# ")
	buf.WriteString(board.Title)
	buf.WriteString("\n\n")

	for _, column := range board.Columns {
		buf.WriteString("## ")
		buf.WriteString(column.Title)
		buf.WriteString("\n\n")

		for _, card := range column.Cards {
			buf.WriteString("- ")
			buf.WriteString(card.Title)
			if card.Priority != "" && card.Priority != models.PriorityMedium {
				fmt.Fprintf(&buf, " `%s`", card.Priority)
			}
			if card.DueDate != nil {
				fmt.Fprintf(&buf, " `due:%s`", card.DueDate.Local().Format("2006-01-02"))
			}
			for _, id := range card.Labels {
				if label, ok := data.FindLabel(id); ok {
					fmt.Fprintf(&buf, " `#%s`", label.Name)
				}
			}
			buf.WriteString("\n")

			if desc := strings.TrimSpace(card.Description); desc != "" {
				for _, line := range strings.Split(desc, "\n") {
					buf.WriteString("\n")
					if strings.TrimSpace(line) != "" {
						buf.WriteString("  ")
						buf.WriteString(line)
					}
				}
				buf.WriteString("\n\n")
			}
		}
		buf.WriteString("\n")
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// ReadBoardMarkdown parses markdown written by WriteBoardMarkdown (or by hand)
func ReadBoardMarkdown(r io.Reader) (BoardOutline, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return BoardOutline{}, err
	}

	body, fm := stripBoardFrontmatter(content)

	outline := BoardOutline{Title: fm.Title}
	doc := goldmark.DefaultParser().Parse(text.NewReader(body))

	var current *ColumnOutline

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			headingText := plainText(node, body)
			if node.Level == 1 {
				outline.Title = headingText
			} else if node.Level == 2 {
				if current != nil {
					outline.Columns = append(outline.Columns, *current)
				}
				current = &ColumnOutline{Title: headingText}
			}
			return ast.WalkSkipChildren, nil

		case *ast.ListItem:
			if current != nil {
				if card, ok := readCardItem(node, body); ok {
					current.Cards = append(current.Cards, card)
				}
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return BoardOutline{}, err
	}

	if current != nil {
		outline.Columns = append(outline.Columns, *current)
	}
	if strings.TrimSpace(outline.Title) == "" {
		return BoardOutline{}, fmt.Errorf("%w: board has no title", ErrInvalidImport)
	}

	return outline, nil
}

func readCardItem(item *ast.ListItem, source []byte) (CardOutline, bool) {
	first := item.FirstChild()
	if first == nil {
		return CardOutline{}, false
	}

	card := CardOutline{Priority: models.PriorityMedium}
	var title strings.Builder

	for c := first.FirstChild(); c != nil; c = c.NextSibling() {
		switch inline := c.(type) {
		case *ast.CodeSpan:
			applyTag(&card, plainText(inline, source))
		case *ast.Text:
			title.Write(inline.Segment.Value(source))
			if inline.SoftLineBreak() {
				title.WriteString(" ")
			}
		default:
			title.WriteString(plainText(c, source))
		}
	}

	card.Title = strings.Join(strings.Fields(title.String()), " ")
	if card.Title == "" {
		return CardOutline{}, false
	}

	var paragraphs []string
	for c := first.NextSibling(); c != nil; c = c.NextSibling() {
		lines := c.Lines()
		if lines == nil || lines.Len() == 0 {
			continue
		}
		var para strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			para.Write(seg.Value(source))
		}
		paragraphs = append(paragraphs, strings.TrimSpace(para.String()))
	}
	card.Description = strings.Join(paragraphs, "\n\n")

	return card, true
}

func applyTag(card *CardOutline, tag string) {
	switch {
	case strings.HasPrefix(tag, "#"):
		if name := strings.TrimSpace(tag[1:]); name != "" {
			card.LabelNames = append(card.LabelNames, name)
		}
	case strings.HasPrefix(tag, "due:"):
		if due, err := dates.ParseDate(strings.TrimPrefix(tag, "due:")); err == nil {
			card.DueDate = &due
		}
	default:
		if p, ok := models.ParsePriority(tag); ok {
			card.Priority = p
		}
	}
}

// plainText flattens the inline content of a node, turning line breaks into
// spaces
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

// stripBoardFrontmatter splits optional YAML frontmatter from the markdown body
func stripBoardFrontmatter(content []byte) ([]byte, boardFrontmatter) {
	var fm boardFrontmatter

	lines := bytes.Split(content, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, fm
	}

	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == 0 {
		return content, fm
	}

	frontmatterBytes := bytes.Join(lines[1:frontmatterEnd], []byte("\n"))
	if err := yaml.Unmarshal(frontmatterBytes, &fm); err != nil {
		return content, boardFrontmatter{}
	}

	body := bytes.TrimLeft(bytes.Join(lines[frontmatterEnd+1:], []byte("\n")), "\n")
	return body, fm
}

// Preview returns the first two paragraphs of a markdown description as
// plain text, truncated to maxLen runes
func Preview(markdown string, maxLen int) string {
	source := []byte(markdown)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var preview strings.Builder
	lineCount := 0
	maxLines := 2

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if n.Kind() == ast.KindHeading {
			return ast.WalkSkipChildren, nil
		}

		if n.Kind() == ast.KindParagraph {
			if lineCount >= maxLines {
				return ast.WalkStop, nil
			}

			text := plainText(n, source)
			if text != "" {
				if preview.Len() > 0 {
					preview.WriteString(" ")
				}
				preview.WriteString(text)
				lineCount++
			}

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	runes := []rune(preview.String())
	if maxLen > 3 && len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return string(runes)
}

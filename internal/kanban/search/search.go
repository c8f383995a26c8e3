package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"taskflow/internal/kanban/models"
)

// MatchType says which part of a card matched
type MatchType string

const (
	MatchTitle       MatchType = "title"
	MatchDescription MatchType = "description"
	MatchComment     MatchType = "comment"
)

// snippetRadius is how many characters of context surround a body match
const snippetRadius = 20

// Result is one card found by a search. Ref must be re-resolved against the
// current tree before it is acted on.
type Result struct {
	Ref            models.CardRef
	BoardTitle     string
	ColumnTitle    string
	CardTitle      string
	MatchType      MatchType
	MatchText      string
	MatchedIndexes []int // rune positions in MatchText, title matches only
}

type entry struct {
	ref    models.CardRef
	board  string
	column string
	card   models.Card
}

// titles implements fuzzy.Source over card titles
type titles []entry

func (t titles) String(i int) string { return t[i].card.Title }
func (t titles) Len() int            { return len(t) }

// Cards searches every board. Titles are matched fuzzily and ranked by score;
// cards whose title does not match are then checked for the term in their
// description and comments, in board order. Each card appears at most once.
func Cards(data models.KanbanData, term string) []Result {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	var entries titles
	for _, board := range data.Boards {
		for _, col := range board.Columns {
			for _, card := range col.Cards {
				entries = append(entries, entry{
					ref:    models.CardRef{BoardID: board.ID, ColumnID: col.ID, CardID: card.ID},
					board:  board.Title,
					column: col.Title,
					card:   card,
				})
			}
		}
	}

	var results []Result
	matched := make(map[int]bool)

	for _, m := range fuzzy.FindFrom(term, entries) {
		matched[m.Index] = true
		results = append(results, newResult(entries[m.Index], MatchTitle, m.Str, m.MatchedIndexes))
	}

	lowerTerm := strings.ToLower(term)
	for i, e := range entries {
		if matched[i] {
			continue
		}
		if snippet, ok := excerpt(e.card.Description, lowerTerm); ok {
			results = append(results, newResult(e, MatchDescription, snippet, nil))
			continue
		}
		for _, c := range e.card.Comments {
			if snippet, ok := excerpt(c.Text, lowerTerm); ok {
				results = append(results, newResult(e, MatchComment, snippet, nil))
				break
			}
		}
	}

	return results
}

func newResult(e entry, kind MatchType, text string, indexes []int) Result {
	return Result{
		Ref:            e.ref,
		BoardTitle:     e.board,
		ColumnTitle:    e.column,
		CardTitle:      e.card.Title,
		MatchType:      kind,
		MatchText:      text,
		MatchedIndexes: indexes,
	}
}

// excerpt finds lowerTerm in text case-insensitively and returns the match
// with some surrounding context
func excerpt(text, lowerTerm string) (string, bool) {
	runes := []rune(text)
	lower := []rune(strings.ToLower(text))
	needle := []rune(lowerTerm)

	pos := indexRunes(lower, needle)
	if pos < 0 {
		return "", false
	}
	if len(lower) != len(runes) {
		// lowercasing changed the length; fall back to the start of the text
		pos = 0
	}

	start := max(0, pos-snippetRadius)
	end := min(len(runes), pos+len(needle)+snippetRadius)
	return "..." + string(runes[start:end]) + "...", true
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		found := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				found = false
				break
			}
		}
		if found {
			return i
		}
	}
	return -1
}

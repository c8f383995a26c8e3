package cli

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"taskflow/internal/app"
	"taskflow/internal/config"
	"taskflow/internal/kanban/dates"
	"taskflow/internal/kanban/filter"
	"taskflow/internal/kanban/models"
	"taskflow/internal/kanban/operations"
	"taskflow/internal/kanban/store"
	"time"
)

func runCardCommand(args []string, s *app.Session) int {
	if len(args) == 0 {
		printCardUsage()
		return 1
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "add", "a", "new":
		return runCardAdd(cmdArgs, s)
	case "list", "ls", "l":
		return runCardList(cmdArgs, s)
	case "show", "s":
		return runCardShow(cmdArgs, s)
	case "edit", "e":
		return runCardEdit(cmdArgs, s)
	case "delete", "rm", "del":
		return runCardDelete(cmdArgs, s)
	case "move", "mv":
		return runCardMove(cmdArgs, s)
	case "reorder":
		return runCardReorder(cmdArgs, s)
	case "comment", "c":
		return runCardComment(cmdArgs, s)
	case "help", "-h", "--help":
		printCardUsage()
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown card command: %s\n", command)
		printCardUsage()
		return 1
	}
}

// cardFlags are the editable card fields shared by add and edit
type cardFlags struct {
	title       *string
	description *string
	due         *string
	priority    *string
	labels      *string
	assignees   *string
}

func newCardFlags(fs *flag.FlagSet) cardFlags {
	return cardFlags{
		title:       fs.String("t", "", "Title"),
		description: fs.String("d", "", "Description (markdown)"),
		due:         fs.String("due", "", "Due date YYYY-MM-DD (\"none\" clears it)"),
		priority:    fs.String("p", "", "Priority: low, medium, high, urgent"),
		labels:      fs.String("l", "", "Labels by name or id (comma-separated)"),
		assignees:   fs.String("a", "", "Assignees by name or id (comma-separated)"),
	}
}

func parseDue(s string) (*time.Time, error) {
	if s == "" || s == "none" {
		return nil, nil
	}
	due, err := dates.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &due, nil
}

func parsePriority(s string) (models.Priority, error) {
	p, ok := models.ParsePriority(strings.ToLower(s))
	if !ok {
		return "", fmt.Errorf("unknown priority %q (want low, medium, high or urgent)", s)
	}
	return p, nil
}

// ensureUsers resolves assignees by id or name, registering unknown names
func ensureUsers(e *operations.Engine, data models.KanbanData, refs []string) (models.KanbanData, []string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		found := ""
		for _, u := range data.Users {
			if u.ID == ref || strings.EqualFold(u.Name, ref) {
				found = u.ID
				break
			}
		}
		if found == "" {
			next, err := e.AddUser(data, ref)
			if err != nil {
				return data, nil, err
			}
			data = next
			found = data.Users[len(data.Users)-1].ID
		}
		ids = append(ids, found)
	}
	return data, ids, nil
}

func runCardAdd(args []string, s *app.Session) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	columnRef := fs.String("c", "", "Column (defaults to the first column)")
	f := newCardFlags(fs)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return 1
	}

	title := strings.Join(rest, " ")
	if *f.title != "" {
		title = *f.title
	}
	if strings.TrimSpace(title) == "" {
		return usageError("card title required", `taskflow card add "Card title" [-c column] [-p high] [-due 2026-03-01] [-l bug,ui]`)
	}

	data := s.Data()
	board, err := findBoard(data, "")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	input := operations.CardInput{Title: title, Description: *f.description}
	if input.DueDate, err = parseDue(*f.due); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *f.priority != "" {
		if input.Priority, err = parsePriority(*f.priority); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	if input.Labels, err = labelIDs(data, config.ParseCommaSeparated(*f.labels)); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	columnID := ""
	if len(board.Columns) > 0 {
		columnID = board.Columns[0].ID
	}
	if *columnRef != "" {
		col, err := findColumn(board, *columnRef)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		columnID = col.ID
	}

	assignees := config.ParseCommaSeparated(*f.assignees)
	var created models.CardRef
	if code, ok := apply(s, "add card", func(data models.KanbanData) (models.KanbanData, error) {
		next, ids, err := ensureUsers(s.Engine(), data, assignees)
		if err != nil {
			return data, err
		}
		input.Assignees = ids

		next, err = s.Engine().AddCard(next, board.ID, columnID, input)
		if err != nil {
			return data, err
		}
		col, _ := next.Boards[next.BoardIndex(board.ID)].FindColumn(columnID)
		created = models.CardRef{BoardID: board.ID, ColumnID: columnID, CardID: col.Cards[len(col.Cards)-1].ID}
		return next, nil
	}); !ok {
		return code
	}

	_, col, card, _ := s.Data().ResolveCard(created)
	fmt.Fprintf(stdout, "Added to %s: %s\n", col.Title, card.Title)
	fmt.Fprintf(stdout, "ID: %s\n", shortID(card.ID))
	return 0
}

func runCardList(args []string, s *app.Session) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	boardRef := boardFlag(fs)
	columnRef := fs.String("c", "", "Only this column")
	all := fs.Bool("all", false, "Ignore the board's filter")
	if _, err := parseArgs(fs, args); err != nil {
		return 1
	}

	data := s.Data()
	board, err := findBoard(data, *boardRef)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	now := s.Engine().LocalNow()
	opts := data.FilterFor(board.ID)
	if *all {
		opts = models.FilterOptions{}
	}
	view := filter.FilterBoard(board, opts, now)

	fmt.Fprintf(stdout, "%s\n", board.Title)
	if opts.IsActive() {
		fmt.Fprintf(stdout, "Filter: %s\n", filter.Describe(opts, data.Labels))
	}

	onlyColumn := ""
	if *columnRef != "" {
		col, err := findColumn(board, *columnRef)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		onlyColumn = col.ID
	}

	total := 0
	for _, col := range view.Columns {
		if onlyColumn != "" && col.ID != onlyColumn {
			continue
		}
		fmt.Fprintf(stdout, "\n## %s (%d)\n", col.Title, len(col.Cards))
		for _, card := range col.Cards {
			printCard(data, card, now)
		}
		total += len(col.Cards)
	}

	fmt.Fprintf(stdout, "\n%d card(s)\n", total)
	return 0
}

func printCard(data models.KanbanData, card models.Card, now time.Time) {
	fmt.Fprintf(stdout, "[%s] %s", shortID(card.ID), card.Title)
	if card.Priority != "" && card.Priority != models.PriorityMedium {
		fmt.Fprintf(stdout, " !%s", card.Priority)
	}
	fmt.Fprintln(stdout)

	var meta []string
	if card.DueDate != nil {
		meta = append(meta, fmt.Sprintf("%s (%s)", dates.StatusText(*card.DueDate, now), dates.Format(*card.DueDate)))
	}
	for _, name := range labelNames(data, card.Labels) {
		meta = append(meta, "#"+name)
	}
	for _, id := range card.Assignees {
		name := id
		if u, ok := data.FindUser(id); ok {
			name = u.Name
		}
		meta = append(meta, "@"+name)
	}
	if n := len(card.Comments); n > 0 {
		meta = append(meta, fmt.Sprintf("%d comment(s)", n))
	}
	if preview := store.Preview(card.Description, 60); preview != "" {
		meta = append(meta, preview)
	}
	if len(meta) > 0 {
		fmt.Fprintf(stdout, "        %s\n", strings.Join(meta, "  "))
	}
}

func runCardShow(args []string, s *app.Session) int {
	if len(args) == 0 {
		return usageError("card ID required", "taskflow card show <card-id>")
	}

	data := s.Data()
	board, _ := findBoard(data, "")
	ref, card, err := findCard(board, args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	col, _ := board.FindColumn(ref.ColumnID)
	now := s.Engine().LocalNow()

	fmt.Fprintf(stdout, "%s\n", card.Title)
	fmt.Fprintf(stdout, "ID:       %s\n", card.ID)
	fmt.Fprintf(stdout, "Column:   %s\n", col.Title)
	fmt.Fprintf(stdout, "Priority: %s\n", card.Priority)
	fmt.Fprintf(stdout, "Created:  %s\n", card.CreatedAt.Local().Format("2006-01-02 15:04"))
	if card.DueDate != nil {
		fmt.Fprintf(stdout, "Due:      %s (%s)\n", dates.Format(*card.DueDate), dates.StatusText(*card.DueDate, now))
	}
	if names := labelNames(data, card.Labels); len(names) > 0 {
		fmt.Fprintf(stdout, "Labels:   %s\n", strings.Join(names, ", "))
	}
	if len(card.Assignees) > 0 {
		names := make([]string, len(card.Assignees))
		for i, id := range card.Assignees {
			names[i] = userName(data, id)
		}
		fmt.Fprintf(stdout, "Assigned: %s\n", strings.Join(names, ", "))
	}
	if card.Description != "" {
		fmt.Fprintf(stdout, "\n%s\n", card.Description)
	}

	if len(card.Comments) > 0 {
		fmt.Fprintln(stdout, "\nComments:")
		for _, c := range card.Comments {
			fmt.Fprintf(stdout, "  %s %s: %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04"), userName(data, c.UserID), c.Text)
		}
	}

	fmt.Fprintln(stdout, "\nActivity:")
	for _, a := range card.Activity {
		fmt.Fprintf(stdout, "  %s %s %s\n", a.Timestamp.Local().Format("2006-01-02 15:04"), userName(data, a.UserID), a.Describe())
	}
	return 0
}

func userName(data models.KanbanData, id string) string {
	if u, ok := data.FindUser(id); ok {
		return u.Name
	}
	return id
}

func runCardEdit(args []string, s *app.Session) int {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	f := newCardFlags(fs)
	rest, err := parseArgs(fs, args)
	if err != nil {
		return 1
	}
	if len(rest) == 0 {
		return usageError("card ID required", `taskflow card edit <card-id> [-t title] [-d description] [-due date|none] [-p priority] [-l labels] [-a assignees]`)
	}

	data := s.Data()
	board, _ := findBoard(data, "")
	ref, card, err := findCard(board, rest[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	updated := card
	if set["t"] {
		updated.Title = *f.title
	}
	if set["d"] {
		updated.Description = *f.description
	}
	if set["due"] {
		if updated.DueDate, err = parseDue(*f.due); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	if set["p"] {
		if updated.Priority, err = parsePriority(*f.priority); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	if set["l"] {
		if updated.Labels, err = labelIDs(data, config.ParseCommaSeparated(*f.labels)); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	if code, ok := apply(s, "edit card", func(data models.KanbanData) (models.KanbanData, error) {
		if set["a"] {
			next, ids, err := ensureUsers(s.Engine(), data, config.ParseCommaSeparated(*f.assignees))
			if err != nil {
				return data, err
			}
			updated.Assignees = ids
			data = next
		}
		return s.Engine().UpdateCard(data, ref, updated)
	}); !ok {
		return code
	}

	_, _, card, _ = s.Data().ResolveCard(ref)
	fmt.Fprintf(stdout, "Updated: %s\n", card.Title)
	return 0
}

func runCardDelete(args []string, s *app.Session) int {
	if len(args) == 0 {
		return usageError("card ID required", "taskflow card delete <card-id>")
	}

	board, _ := findBoard(s.Data(), "")
	ref, card, err := findCard(board, args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if code, ok := apply(s, "delete card", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().DeleteCard(data, ref)
	}); !ok {
		return code
	}

	fmt.Fprintf(stdout, "Deleted: %s\n", card.Title)
	return 0
}

func runCardMove(args []string, s *app.Session) int {
	if len(args) < 2 || len(args) > 3 {
		return usageError("card and column required", "taskflow card move <card-id> <column> [position]")
	}

	board, _ := findBoard(s.Data(), "")
	ref, card, err := findCard(board, args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	dst, err := findColumn(board, args[1])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	src, _ := board.FindColumn(ref.ColumnID)

	to := len(dst.Cards)
	if len(args) == 3 {
		if to, err = strconv.Atoi(args[2]); err != nil {
			return usageError("position must be a number", "taskflow card move <card-id> <column> [position]")
		}
	}

	if code, ok := apply(s, "move card", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().MoveCard(data, src.ID, dst.ID, src.CardIndex(card.ID), to)
	}); !ok {
		return code
	}

	fmt.Fprintf(stdout, "Moved %s: %s -> %s\n", card.Title, src.Title, dst.Title)
	return 0
}

func runCardReorder(args []string, s *app.Session) int {
	if len(args) != 2 {
		return usageError("card and position required", "taskflow card reorder <card-id> <position>")
	}

	board, _ := findBoard(s.Data(), "")
	ref, card, err := findCard(board, args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return usageError("position must be a number", "taskflow card reorder <card-id> <position>")
	}
	col, _ := board.FindColumn(ref.ColumnID)

	if code, ok := apply(s, "reorder card", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().ReorderCard(data, board.ID, col.ID, col.CardIndex(card.ID), to)
	}); !ok {
		return code
	}

	fmt.Fprintf(stdout, "Moved %s to position %d in %s\n", card.Title, to, col.Title)
	return 0
}

func runCardComment(args []string, s *app.Session) int {
	if len(args) < 2 {
		return usageError("card ID and comment required", `taskflow card comment <card-id> "Comment text"`)
	}

	board, _ := findBoard(s.Data(), "")
	ref, card, err := findCard(board, args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	text := strings.Join(args[1:], " ")

	if code, ok := apply(s, "comment", func(data models.KanbanData) (models.KanbanData, error) {
		return s.Engine().AddComment(data, ref, text)
	}); !ok {
		return code
	}

	fmt.Fprintf(stdout, "Commented on %s\n", card.Title)
	return 0
}

func printCardUsage() {
	fmt.Fprintln(stdout, `taskflow card - Card commands (on the active board)

Usage: taskflow card <command> [arguments]

Commands:
  add, a      Add a card
              taskflow card add "Fix login" -c "In Progress" -p high -due 2026-03-01 -l bug
  list, ls    List cards, applying the board's filter
              taskflow card list              # Active board, filtered
              taskflow card list --all        # Ignore the filter
              taskflow card list -c Done      # One column
  show, s     Show a card with comments and activity
  edit, e     Edit a card; only the given fields change
              taskflow card edit <card-id> -p urgent -due none
  delete, rm  Delete a card
  move, mv    Move a card to another column
              taskflow card move <card-id> Done [position]
  reorder     Move a card within its column
              taskflow card reorder <card-id> 0
  comment, c  Comment on a card
              taskflow card comment <card-id> "Looks good"

Cards are given by id or an id prefix of at least four characters.`)
}

package kanban

import (
	"errors"
	"fmt"
	"strings"
	"taskflow/internal/app"
	"taskflow/internal/kanban/dates"
	"taskflow/internal/kanban/dragdrop"
	"taskflow/internal/kanban/filter"
	"taskflow/internal/kanban/models"
	"taskflow/internal/kanban/operations"
	"taskflow/internal/kanban/search"
	"taskflow/internal/kanban/store"
	"taskflow/internal/tui/messages"
	"taskflow/internal/tui/theme"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type boardMode int

const (
	boardModeNormal boardMode = iota
	boardModeMove
	boardModeConfirmDelete
	boardModeInput
	boardModeSearch
	boardModeDetail
	boardModeLabels
	boardModeDue
	boardModePriority
	boardModeColumns
	boardModeBoards
	boardModeCardForm
	boardModeLabelManager
	boardModeLabelFilter
)

// inputKind says what the text prompt creates
type inputKind int

const (
	inputNewCard inputKind = iota
	inputNewColumn
	inputNewBoard
	inputComment
)

type BoardModel struct {
	session                *app.Session
	keys                   KeyMap
	styles                 boardStyles
	data                   models.KanbanData
	board                  models.Board // active board with its filter applied
	selectedCol            int
	selectedCard           int
	mode                   boardMode
	prevMode               boardMode // mode the text prompt returns to
	input                  textinput.Model
	inputKind              inputKind
	inputRef               models.CardRef
	detailRef              models.CardRef
	searchResults          []search.Result
	searchCursor           int
	editRef                models.CardRef // card an overlay edits
	labelPicker            LabelPickerModel
	datePicker             DatePickerModel
	priorityInput          PriorityInputModel
	columnEditor           ColumnEditorModel
	boardPicker            PickerModel
	cardForm               CardFormModel
	labelManager           LabelManagerModel
	labelFilter            LabelFilterModel
	width                  int
	height                 int
	err                    error
	message                string
	columnScrollOffsets    []int // scroll position (card index) for each column
	columnCursorPos        []int // cursor position (card index) for each column
	columnHorizontalOffset int   // first visible column index
}

func NewBoardModel(session *app.Session, keys KeyMap) BoardModel {
	m := BoardModel{
		session: session,
		keys:    keys,
		styles:  newBoardStyles(theme.New(theme.For(session.DarkMode()))),
	}
	m.reload()
	return m
}

// SetSize updates the view dimensions
func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

// SetDark rebuilds the styles for the dark or light palette
func (m *BoardModel) SetDark(dark bool) {
	m.styles = newBoardStyles(theme.New(theme.For(dark)))
}

// IsModal returns true while a prompt, overlay or move is in progress
func (m BoardModel) IsModal() bool {
	return m.mode != boardModeNormal
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles board events as a child view
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.OpenCardMsg:
		return m.openCard(msg.Ref), nil

	case messages.ExportDoneMsg:
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.message = "Exported to " + msg.Path
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case boardModeNormal:
			return m.updateNormal(msg)
		case boardModeMove:
			return m.updateMove(msg), nil
		case boardModeConfirmDelete:
			return m.updateConfirmDelete(msg), nil
		case boardModeInput:
			return m.updateInput(msg)
		case boardModeSearch:
			return m.updateSearch(msg)
		case boardModeDetail:
			return m.updateDetail(msg)
		case boardModeLabels:
			return m.updateLabels(msg)
		case boardModeDue:
			return m.updateDue(msg)
		case boardModePriority:
			return m.updatePriority(msg), nil
		case boardModeColumns:
			return m.updateColumns(msg)
		case boardModeBoards:
			return m.updateBoards(msg)
		case boardModeCardForm:
			return m.updateCardForm(msg)
		case boardModeLabelManager:
			return m.updateLabelManager(msg)
		case boardModeLabelFilter:
			return m.updateLabelFilter(msg)
		}
	}

	if m.mode == boardModeInput || m.mode == boardModeSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m BoardModel) updateNormal(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	m.message = ""
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Left):
		m.selectColumn(m.selectedCol - 1)

	case key.Matches(msg, m.keys.Right):
		m.selectColumn(m.selectedCol + 1)

	case key.Matches(msg, m.keys.Down):
		if m.selectedCol < len(m.board.Columns) {
			maxCard := len(m.board.Columns[m.selectedCol].Cards) - 1
			if m.selectedCard < maxCard {
				m.selectedCard++
				m.columnCursorPos[m.selectedCol] = m.selectedCard
				m.adjustScrollPosition()
			}
		}

	case key.Matches(msg, m.keys.Up):
		if m.selectedCard > 0 {
			m.selectedCard--
			m.columnCursorPos[m.selectedCol] = m.selectedCard
			m.adjustScrollPosition()
		}

	case key.Matches(msg, m.keys.Move):
		if _, ok := m.selectedRef(); ok {
			m.mode = boardModeMove
		}

	case key.Matches(msg, m.keys.NewCard):
		if len(m.board.Columns) == 0 {
			m.err = operations.ErrColumnNotFound
			return m, nil
		}
		return m.prompt(inputNewCard, "card title")

	case key.Matches(msg, m.keys.NewColumn):
		return m.prompt(inputNewColumn, "column title")

	case key.Matches(msg, m.keys.NewBoard):
		return m.prompt(inputNewBoard, "board title")

	case key.Matches(msg, m.keys.PrevBoard):
		return m.switchBoard(app.PrevBoard{}), nil

	case key.Matches(msg, m.keys.NextBoard):
		return m.switchBoard(app.NextBoard{}), nil

	case key.Matches(msg, m.keys.Export):
		m.message = "Exporting..."
		return m, m.export()

	case key.Matches(msg, m.keys.Search):
		return m.startSearch()

	case key.Matches(msg, m.keys.OpenCard):
		if ref, ok := m.selectedRef(); ok {
			m.detailRef = ref
			m.mode = boardModeDetail
		}

	case key.Matches(msg, m.keys.AddComment):
		if ref, ok := m.selectedRef(); ok {
			m.inputRef = ref
			return m.prompt(inputComment, "comment")
		}

	case key.Matches(msg, m.keys.DeleteCard):
		if _, ok := m.selectedRef(); ok {
			m.mode = boardModeConfirmDelete
		}

	case key.Matches(msg, m.keys.EditCard):
		return m.openCardForm()

	case key.Matches(msg, m.keys.EditLabels):
		return m.openLabels(), nil

	case key.Matches(msg, m.keys.EditDue):
		return m.openDue(), nil

	case key.Matches(msg, m.keys.EditPriority):
		return m.openPriority(), nil

	case key.Matches(msg, m.keys.EditColumns):
		return m.openColumns(), nil

	case key.Matches(msg, m.keys.Boards):
		return m.openBoards(), nil

	case key.Matches(msg, m.keys.ManageLabels):
		return m.openLabelManager(), nil

	case key.Matches(msg, m.keys.LabelFilter):
		return m.openLabelFilter(), nil

	case key.Matches(msg, m.keys.CyclePriority):
		return m.cycleFilter(func(opts *models.FilterOptions) {
			opts.Priority = cycle(models.Priorities, opts.Priority)
		}), nil

	case key.Matches(msg, m.keys.CycleDue):
		return m.cycleFilter(func(opts *models.FilterOptions) {
			opts.DueDateFilter = cycle(models.DueBuckets, opts.DueDateFilter)
		}), nil

	case key.Matches(msg, m.keys.ClearFilter):
		return m.clearFilter(), nil
	}

	return m, nil
}

func (m BoardModel) updateMove(msg tea.KeyMsg) BoardModel {
	switch {
	case key.Matches(msg, m.keys.Cancel, m.keys.Confirm, m.keys.Move):
		m.mode = boardModeNormal
	case key.Matches(msg, m.keys.Left):
		m.moveAcross(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveAcross(1)
	case key.Matches(msg, m.keys.Up):
		m.moveWithin(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveWithin(1)
	}
	return m
}

func (m BoardModel) updateConfirmDelete(msg tea.KeyMsg) BoardModel {
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.mode = boardModeNormal
		ref, ok := m.selectedRef()
		if !ok {
			return m
		}
		e := m.session.Engine()
		err := m.session.Apply("delete card", func(data models.KanbanData) (models.KanbanData, error) {
			return e.DeleteCard(data, ref)
		})
		m.reload()
		m.report(err, "Card deleted")
	case key.Matches(msg, m.keys.No):
		m.mode = boardModeNormal
	}
	return m
}

func (m BoardModel) updateDetail(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel, m.keys.OpenCard, m.keys.Quit):
		m.mode = boardModeNormal
	case key.Matches(msg, m.keys.AddComment):
		m.inputRef = m.detailRef
		return m.prompt(inputComment, "comment")
	}
	return m, nil
}

// prompt opens the single-line text input for kind
func (m BoardModel) prompt(kind inputKind, placeholder string) (BoardModel, tea.Cmd) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Width = 40
	ti.Focus()
	m.input = ti
	m.inputKind = kind
	m.prevMode = m.mode
	m.mode = boardModeInput
	return m, textinput.Blink
}

func (m BoardModel) updateInput(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = m.prevMode
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m.submitInput(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m BoardModel) submitInput() BoardModel {
	value := m.input.Value()
	m.mode = m.prevMode
	m.message = ""
	m.err = nil

	switch m.inputKind {
	case inputNewCard:
		if m.selectedCol >= len(m.board.Columns) {
			return m
		}
		columnID := m.board.Columns[m.selectedCol].ID
		out, err := m.session.Dispatch(app.NewCard{
			ColumnID: columnID,
			Input:    operations.CardInput{Title: value},
		})
		m.reload()
		if err == nil && !m.focusCard(out.Card.CardID) {
			m.message = "Card created (hidden by the filter)"
			return m
		}
		m.report(err, "Card created")

	case inputNewColumn:
		_, err := m.session.Dispatch(app.NewColumn{Title: value})
		m.reload()
		if err == nil {
			m.selectColumn(len(m.board.Columns) - 1)
		}
		m.report(err, "Column created")

	case inputNewBoard:
		_, err := m.session.Dispatch(app.NewBoard{Title: value})
		if err == nil {
			m.resetCursor()
		}
		m.reload()
		m.report(err, "Board created")

	case inputComment:
		ref := m.inputRef
		e := m.session.Engine()
		err := m.session.Apply("comment", func(data models.KanbanData) (models.KanbanData, error) {
			return e.AddComment(data, ref, value)
		})
		m.reload()
		m.report(err, "Comment added")
	}
	return m
}

// moveAcross drops the selected card into the neighbouring column, at the
// same visible row when there is one
func (m *BoardModel) moveAcross(step int) {
	ref, ok := m.selectedRef()
	target := m.selectedCol + step
	if !ok || target < 0 || target >= len(m.board.Columns) {
		return
	}

	src := m.fullColumn(m.selectedCol)
	dst := m.fullColumn(target)
	visible := m.board.Columns[target].Cards
	dstIndex := len(dst.Cards)
	if m.selectedCard < len(visible) {
		dstIndex = dst.CardIndex(visible[m.selectedCard].ID)
	}
	m.drop(dragdrop.CardDrop(src.ID, src.CardIndex(ref.CardID), dst.ID, dstIndex), ref.CardID)
}

// moveWithin swaps the selected card with its visible neighbour. Indexes are
// translated to the unfiltered column so hidden cards keep their places.
func (m *BoardModel) moveWithin(step int) {
	ref, ok := m.selectedRef()
	if !ok {
		return
	}
	visible := m.board.Columns[m.selectedCol].Cards
	target := m.selectedCard + step
	if target < 0 || target >= len(visible) {
		return
	}

	col := m.fullColumn(m.selectedCol)
	m.drop(dragdrop.CardDrop(col.ID, col.CardIndex(ref.CardID), col.ID, col.CardIndex(visible[target].ID)), ref.CardID)
}

func (m *BoardModel) drop(result dragdrop.DropResult, cardID string) {
	_, err := m.session.Dispatch(app.Drop{Result: result})
	m.reload()
	m.focusCard(cardID)
	if err != nil && !errors.Is(err, operations.ErrUnchanged) {
		m.err = err
	}
}

func (m BoardModel) switchBoard(cmd app.Command) BoardModel {
	_, err := m.session.Dispatch(cmd)
	if err == nil {
		m.resetCursor()
	}
	m.reload()
	m.report(err, "")
	return m
}

// openCard focuses a card that may live on another board
func (m BoardModel) openCard(ref models.CardRef) BoardModel {
	m.mode = boardModeNormal
	m.message = ""
	m.err = nil

	_, err := m.session.Dispatch(app.OpenCard{Ref: ref})
	if err != nil {
		m.reload()
		if errors.Is(err, app.ErrStaleRef) {
			m.message = "That card no longer exists"
			return m
		}
		m.err = err
		return m
	}

	if ref.BoardID != m.board.ID {
		m.resetCursor()
	}
	m.reload()
	if !m.focusCard(ref.CardID) {
		m.message = "Card is hidden by the filter"
	}
	return m
}

func (m BoardModel) export() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		out, err := session.Dispatch(app.Export{})
		return messages.ExportDoneMsg{Path: out.ExportPath, Err: err}
	}
}

// cycleFilter changes one criterion of the active board's filter. An empty
// result clears the stored filter.
func (m BoardModel) cycleFilter(change func(*models.FilterOptions)) BoardModel {
	boardID := m.board.ID
	e := m.session.Engine()
	var opts models.FilterOptions
	err := m.session.Apply("filter", func(data models.KanbanData) (models.KanbanData, error) {
		opts = data.FilterFor(boardID)
		change(&opts)
		if !opts.IsActive() {
			return e.ClearFilter(data, boardID)
		}
		return e.SetFilter(data, boardID, opts)
	})
	m.reload()
	m.report(err, "Filter: "+filter.Describe(opts, m.data.Labels))
	return m
}

func (m BoardModel) clearFilter() BoardModel {
	boardID := m.board.ID
	e := m.session.Engine()
	err := m.session.Apply("clear filter", func(data models.KanbanData) (models.KanbanData, error) {
		return e.ClearFilter(data, boardID)
	})
	m.reload()
	m.report(err, "Filter cleared")
	return m
}

// cycle steps through values and back to nil after the last one
func cycle[T comparable](values []T, current *T) *T {
	next := 0
	if current != nil {
		next = -1
		for i, v := range values {
			if v == *current {
				next = i + 1
				break
			}
		}
	}
	if next < 0 || next >= len(values) {
		return nil
	}
	v := values[next]
	return &v
}

func (m *BoardModel) report(err error, success string) {
	switch {
	case err == nil:
		m.message = success
	case errors.Is(err, operations.ErrUnchanged):
		m.message = "Nothing to do"
	default:
		m.err = err
	}
}

// reload pulls the committed tree and re-applies the active board's filter
func (m *BoardModel) reload() {
	m.data = m.session.Data()
	board, _ := m.data.GetActiveBoard()
	m.board = filter.FilterBoard(board, m.data.FilterFor(board.ID), m.now())
	m.reloadBoardState()
}

func (m BoardModel) now() time.Time {
	return m.session.Engine().LocalNow()
}

// reloadBoardState syncs arrays and validates cursors after a reload
func (m *BoardModel) reloadBoardState() {
	n := len(m.board.Columns)
	if len(m.columnScrollOffsets) != n {
		newOffsets := make([]int, n)
		copy(newOffsets, m.columnScrollOffsets)
		m.columnScrollOffsets = newOffsets
	}

	if len(m.columnCursorPos) != n {
		newCursorPos := make([]int, n)
		copy(newCursorPos, m.columnCursorPos)
		m.columnCursorPos = newCursorPos
	}

	if m.selectedCol >= n {
		m.selectedCol = max(0, n-1)
	}
	m.clampCursor()

	if m.columnHorizontalOffset >= n {
		m.columnHorizontalOffset = max(0, n-1)
	}
	m.adjustHorizontalScrollPosition()
}

func (m *BoardModel) resetCursor() {
	m.selectedCol = 0
	m.selectedCard = 0
	m.columnScrollOffsets = nil
	m.columnCursorPos = nil
	m.columnHorizontalOffset = 0
}

func (m *BoardModel) clampCursor() {
	if m.selectedCol >= len(m.board.Columns) {
		m.selectedCard = 0
		return
	}
	count := len(m.board.Columns[m.selectedCol].Cards)
	if m.selectedCard >= count {
		m.selectedCard = max(0, count-1)
	}
	m.columnCursorPos[m.selectedCol] = m.selectedCard
}

func (m *BoardModel) selectColumn(i int) {
	if i < 0 || i >= len(m.board.Columns) {
		return
	}
	m.selectedCol = i
	m.selectedCard = m.columnCursorPos[i]
	m.clampCursor()
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

// focusCard moves the cursor onto a visible card
func (m *BoardModel) focusCard(cardID string) bool {
	for colIdx, col := range m.board.Columns {
		if i := col.CardIndex(cardID); i >= 0 {
			m.selectedCol = colIdx
			m.selectedCard = i
			m.columnCursorPos[colIdx] = i
			m.adjustScrollPosition()
			m.adjustHorizontalScrollPosition()
			return true
		}
	}
	return false
}

func (m BoardModel) selectedRef() (models.CardRef, bool) {
	if m.selectedCol >= len(m.board.Columns) {
		return models.CardRef{}, false
	}
	col := m.board.Columns[m.selectedCol]
	if m.selectedCard >= len(col.Cards) {
		return models.CardRef{}, false
	}
	return models.CardRef{BoardID: m.board.ID, ColumnID: col.ID, CardID: col.Cards[m.selectedCard].ID}, true
}

// fullColumn returns a column of the active board without the filter applied
func (m BoardModel) fullColumn(i int) models.Column {
	board, _ := m.data.GetActiveBoard()
	if i < 0 || i >= len(board.Columns) {
		return models.Column{}
	}
	return board.Columns[i]
}

func (m BoardModel) View() string {
	switch m.mode {
	case boardModeDetail:
		return m.place(m.renderDetail())
	case boardModeSearch:
		return m.place(m.renderSearch())
	case boardModeInput:
		return m.place(m.renderInput())
	case boardModeLabels:
		return m.place(m.labelPicker.View())
	case boardModeDue:
		return m.place(m.datePicker.View())
	case boardModePriority:
		return m.place(m.priorityInput.View())
	case boardModeColumns:
		return m.place(m.columnEditor.View())
	case boardModeBoards:
		return m.place(m.boardPicker.View())
	case boardModeCardForm:
		return m.place(m.cardForm.View())
	case boardModeLabelManager:
		return m.place(m.labelManager.View())
	case boardModeLabelFilter:
		return m.place(m.labelFilter.View())
	}

	var s strings.Builder

	// Title
	position := fmt.Sprintf("(%d/%d)", m.data.ActiveBoardIndex()+1, len(m.data.Boards))
	s.WriteString(m.styles.boardTitle.Render("Board: "+m.board.Title) + " " + m.styles.Muted.Render(position))
	s.WriteString("\n")

	// Filter bar
	opts := m.data.FilterFor(m.board.ID)
	if opts.IsActive() {
		s.WriteString("  " + m.styles.filterIndicator.Render("Filter: "+filter.Describe(opts, m.data.Labels)))
	}
	s.WriteString("\n")

	totalFixedColumnHeight := m.columnHeight()

	// Render columns with fixed height and horizontal scrolling
	startCol, endCol := m.calculateVisibleColumns()
	visibleColumnViews := []string{}

	if startCol > 0 {
		visibleColumnViews = append(visibleColumnViews, m.renderScrollIndicator("◀", totalFixedColumnHeight))
	} else {
		visibleColumnViews = append(visibleColumnViews, m.renderScrollIndicator(" ", totalFixedColumnHeight))
	}

	for i := startCol; i < endCol; i++ {
		visibleColumnViews = append(visibleColumnViews, m.renderColumn(i, m.board.Columns[i], totalFixedColumnHeight))
	}

	if endCol < len(m.board.Columns) {
		visibleColumnViews = append(visibleColumnViews, m.renderScrollIndicator("▶", totalFixedColumnHeight))
	} else {
		visibleColumnViews = append(visibleColumnViews, m.renderScrollIndicator(" ", totalFixedColumnHeight))
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top, visibleColumnViews...)
	s.WriteString(lipgloss.Place(m.width, 0, lipgloss.Center, lipgloss.Top, columns))
	s.WriteString("\n")

	// Status message or error
	if m.err != nil {
		s.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n")
	} else if m.message != "" {
		s.WriteString(m.styles.Ok.Render(m.message))
		s.WriteString("\n")
	}

	// Mode-specific help
	switch m.mode {
	case boardModeMove:
		s.WriteString(m.styles.help.Render("h/l: move card • j/k: reorder • esc: done"))
	case boardModeConfirmDelete:
		s.WriteString(m.styles.Warn.Render("Delete this card? (y/n)"))
	default:
		s.WriteString(m.styles.help.Render(helpLine(m.keys.ShortHelp()...)))
	}

	return s.String()
}

func (m BoardModel) place(box string) string {
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m BoardModel) renderColumn(index int, col models.Column, fixedHeight int) string {
	var s strings.Builder
	cards := col.Cards

	// Column title
	colTitleStyle := m.styles.columnTitle
	if index == m.selectedCol {
		colTitleStyle = m.styles.selectedColumnTitle
	}
	s.WriteString(colTitleStyle.Render(fmt.Sprintf("%s (%d)", col.Title, len(cards))))
	s.WriteString("\n\n")

	style := m.styles.column
	if index == m.selectedCol {
		style = m.styles.selectedColumn
	}

	if len(cards) == 0 {
		s.WriteString(m.styles.cardPreview.Render("(empty)"))
		s.WriteString("\n")
		return style.Height(fixedHeight).Render(s.String())
	}

	scrollOffset := 0
	if index < len(m.columnScrollOffsets) {
		scrollOffset = min(m.columnScrollOffsets[index], len(cards)-1)
	}

	// Top scroll indicator (always reserve space)
	if scrollOffset > 0 {
		s.WriteString(m.styles.scrollIndicator.Render(fmt.Sprintf("▲ +%d cards above", scrollOffset)))
	}
	s.WriteString("\n\n")

	availableCardSpace := fixedHeight - 8

	cardsRendered := 0
	currentCardHeight := 0
	for i := scrollOffset; i < len(cards); i++ {
		cardView := m.renderCard(index, i, cards[i])
		cardHeight := lipgloss.Height(cardView)

		if cardsRendered > 0 && currentCardHeight+cardHeight > availableCardSpace {
			break
		}

		s.WriteString(cardView)
		s.WriteString("\n")
		cardsRendered++
		currentCardHeight += cardHeight
	}

	if cardsBelow := len(cards) - scrollOffset - cardsRendered; cardsBelow > 0 {
		s.WriteString(m.styles.scrollIndicator.Render(fmt.Sprintf("▼ +%d cards below", cardsBelow)))
	}

	return style.Height(fixedHeight).Render(s.String())
}

func (m BoardModel) renderCard(colIndex, cardIndex int, card models.Card) string {
	maxWidth := columnWidth - (2 * columnPaddingHorizontal) - cardBorderWidth - (2 * cardPaddingHorizontal)
	isSelected := colIndex == m.selectedCol && cardIndex == m.selectedCard

	var lines []string

	// Line 1: title with a priority badge when it is not the default
	badge := ""
	if card.Priority != models.PriorityMedium && card.Priority != "" {
		badge = string(card.Priority) + " "
	}
	title := truncate(card.Title, maxWidth-len(badge))
	if badge != "" {
		pStyle := lipgloss.NewStyle().Bold(true).Foreground(m.styles.priorityColor(card.Priority))
		tStyle := m.styles.cardTitle
		if isSelected {
			pStyle = pStyle.Background(m.styles.Palette.Surface)
			tStyle = tStyle.Background(m.styles.Palette.Surface)
		}
		lines = append(lines, pStyle.Render(badge)+tStyle.Render(title))
	} else {
		lines = append(lines, m.styles.cardTitle.Render(title))
	}

	// Line 2: description preview
	if preview := store.Preview(card.Description, maxWidth); preview != "" {
		lines = append(lines, m.styles.cardPreview.Render(preview))
	}

	// Line 3: due date
	if card.DueDate != nil {
		now := m.now()
		dateStyle := lipgloss.NewStyle().Foreground(m.styles.dueColor(dates.Classify(*card.DueDate, now))).Bold(true)
		lines = append(lines, dateStyle.Render(dates.Format(*card.DueDate)+" · "+dates.StatusText(*card.DueDate, now)))
	}

	// Line 4: labels
	if badges := m.labelBadges(card.Labels); badges != "" {
		lines = append(lines, badges)
	}

	// Line 5: comments and assignees
	var meta []string
	if n := len(card.Comments); n > 0 {
		meta = append(meta, plural(n, "comment"))
	}
	if n := len(card.Assignees); n > 0 {
		meta = append(meta, plural(n, "assignee"))
	}
	if len(meta) > 0 {
		lines = append(lines, m.styles.cardMeta.Render(strings.Join(meta, " · ")))
	}

	style := m.styles.card
	if isSelected {
		style = m.styles.selectedCard
		if m.mode == boardModeMove {
			style = m.styles.moveSelectedCard
		}
	}

	return style.Render(strings.Join(lines, "\n"))
}

func (m BoardModel) labelBadges(ids []string) string {
	var badges []string
	for _, id := range ids {
		if l, ok := m.data.FindLabel(id); ok {
			badges = append(badges, m.styles.labelBadge(l))
		}
	}
	return strings.Join(badges, " ")
}

func (m BoardModel) renderInput() string {
	var title string
	switch m.inputKind {
	case inputNewCard:
		colTitle := ""
		if m.selectedCol < len(m.board.Columns) {
			colTitle = m.board.Columns[m.selectedCol].Title
		}
		title = "New card in " + colTitle
	case inputNewColumn:
		title = "New column"
	case inputNewBoard:
		title = "New board"
	case inputComment:
		title = "Add comment"
	}

	var s strings.Builder
	s.WriteString(m.styles.ModalTitle.Render(title))
	s.WriteString("\n\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")
	s.WriteString(m.styles.ModalHelp.Render("enter: save • esc: cancel"))
	return m.styles.inputBox.Render(s.String())
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width > 3 && len(r) > width {
		return string(r[:width-3]) + "..."
	}
	return s
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// helpLine renders bindings as "key: desc" pairs
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

func (m BoardModel) columnHeight() int {
	boardHeaderLines := 3
	statusLines := 3
	marginLines := 2

	height := m.height - boardHeaderLines - statusLines - marginLines
	if height < 10 {
		height = 10
	}
	return height
}

// adjustScrollPosition ensures the selected card is visible by adjusting scroll offset
func (m *BoardModel) adjustScrollPosition() {
	if m.selectedCol >= len(m.board.Columns) || m.selectedCol >= len(m.columnScrollOffsets) {
		return
	}

	cards := m.board.Columns[m.selectedCol].Cards
	if len(cards) == 0 {
		return
	}

	availableCardHeight := m.columnHeight() - 8
	scrollOffset := m.columnScrollOffsets[m.selectedCol]

	if m.selectedCard < scrollOffset {
		m.columnScrollOffsets[m.selectedCol] = m.selectedCard
	} else {
		visibleCards := 0
		accumulatedHeight := 0

		for i := scrollOffset; i < len(cards); i++ {
			cardHeight := lipgloss.Height(m.renderCard(m.selectedCol, i, cards[i]))
			if visibleCards > 0 && accumulatedHeight+cardHeight > availableCardHeight {
				break
			}
			accumulatedHeight += cardHeight
			visibleCards++
		}

		if visibleCards < 1 {
			visibleCards = 1
		}

		if m.selectedCard >= scrollOffset+visibleCards {
			m.columnScrollOffsets[m.selectedCol] = m.selectedCard - visibleCards + 1
		}
	}

	if m.columnScrollOffsets[m.selectedCol] < 0 {
		m.columnScrollOffsets[m.selectedCol] = 0
	}
	if maxOffset := max(len(cards)-1, 0); m.columnScrollOffsets[m.selectedCol] > maxOffset {
		m.columnScrollOffsets[m.selectedCol] = maxOffset
	}
}

// calculateVisibleColumns determines which columns fit in terminal width
func (m *BoardModel) calculateVisibleColumns() (startCol, endCol int) {
	columnTotalWidth := 46
	leftIndicatorWidth := 5
	rightIndicatorWidth := 5

	startCol = m.columnHorizontalOffset

	widthForColumns := m.width - leftIndicatorWidth - rightIndicatorWidth
	visibleCount := widthForColumns / columnTotalWidth
	if visibleCount < 1 {
		visibleCount = 1
	}

	endCol = min(startCol+visibleCount, len(m.board.Columns))
	if endCol <= startCol && len(m.board.Columns) > 0 {
		endCol = startCol + 1
	}

	return startCol, endCol
}

// renderScrollIndicator renders ◀ and ▶ indicators for horizontal scrolling
func (m *BoardModel) renderScrollIndicator(symbol string, height int) string {
	indicator := lipgloss.NewStyle().
		Foreground(m.styles.Palette.Warning).
		Bold(true).
		Render(symbol)
	return lipgloss.NewStyle().
		Width(3).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(indicator)
}

// adjustHorizontalScrollPosition ensures the selected column is visible
func (m *BoardModel) adjustHorizontalScrollPosition() {
	if len(m.board.Columns) == 0 {
		return
	}

	startCol, endCol := m.calculateVisibleColumns()

	if m.selectedCol < startCol {
		m.columnHorizontalOffset = m.selectedCol
		return
	}

	if m.selectedCol >= endCol {
		visibleCount := endCol - startCol
		m.columnHorizontalOffset = max(m.selectedCol-visibleCount+1, 0)
	}
}

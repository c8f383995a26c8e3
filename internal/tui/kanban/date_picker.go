package kanban

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"taskflow/internal/kanban/dates"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type datePickerMode int

const (
	calendarMode datePickerMode = iota
	textInputMode
)

var errInvalidDate = errors.New("invalid date format")

// DatePickerModel picks a due date on a month calendar or from typed text.
// Every date it produces is local midnight.
type DatePickerModel struct {
	mode        datePickerMode
	styles      boardStyles
	currentDate *time.Time // The date being edited (nil if none)
	cursorDate  time.Time  // The date under cursor in calendar
	viewMonth   time.Time  // The month being viewed
	today       time.Time
	textInput   textinput.Model
	title       string
	err         error
}

func NewDatePickerModel(currentDate *time.Time, now time.Time, title string, styles boardStyles) DatePickerModel {
	today := localDay(now)

	cursorDate := today
	if currentDate != nil {
		cursorDate = localDay(*currentDate)
	}

	ti := textinput.New()
	ti.Placeholder = "2026-03-15, +5, tomorrow"
	ti.CharLimit = 20
	ti.Width = 30
	if currentDate != nil {
		ti.SetValue(cursorDate.Format("2006-01-02"))
	}

	return DatePickerModel{
		mode:        calendarMode,
		styles:      styles,
		currentDate: currentDate,
		cursorDate:  cursorDate,
		viewMonth:   firstOfMonth(cursorDate),
		today:       today,
		textInput:   ti,
		title:       title,
	}
}

// localDay returns local midnight of t's local calendar day
func localDay(t time.Time) time.Time {
	return dates.StartOfDay(t.In(time.Local))
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}

func (m DatePickerModel) Update(msg tea.KeyMsg) (DatePickerModel, tea.Cmd, pickerResult) {
	if m.mode == textInputMode {
		return m.updateTextInput(msg)
	}
	return m.updateCalendar(msg)
}

func (m DatePickerModel) updateCalendar(msg tea.KeyMsg) (DatePickerModel, tea.Cmd, pickerResult) {
	switch msg.String() {
	case "esc":
		return m, nil, pickerCancel
	case "enter":
		date := m.cursorDate
		m.currentDate = &date
		return m, nil, pickerSave
	case "c":
		m.currentDate = nil
		return m, nil, pickerSave
	case "i":
		m.mode = textInputMode
		m.err = nil
		m.textInput.Focus()
		return m, textinput.Blink, pickerOpen
	case "t":
		m.cursorDate = m.today
		m.viewMonth = firstOfMonth(m.today)
	case "h", "left":
		m.moveCursor(-1)
	case "l", "right":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-7)
	case "j", "down":
		m.moveCursor(7)
	case "-", "H":
		m.viewMonth = m.viewMonth.AddDate(0, -1, 0)
	case "+", "=", "L":
		m.viewMonth = m.viewMonth.AddDate(0, 1, 0)
	}

	return m, nil, pickerOpen
}

func (m DatePickerModel) updateTextInput(msg tea.KeyMsg) (DatePickerModel, tea.Cmd, pickerResult) {
	switch msg.String() {
	case "esc":
		m.mode = calendarMode
		m.textInput.Blur()
		m.err = nil
		return m, nil, pickerOpen
	case "enter":
		parsed, err := parseDateInput(m.textInput.Value(), m.today)
		if err != nil {
			m.err = err
			return m, nil, pickerOpen
		}
		m.currentDate = &parsed
		m.cursorDate = parsed
		m.viewMonth = firstOfMonth(parsed)
		return m, nil, pickerSave
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd, pickerOpen
}

func (m *DatePickerModel) moveCursor(days int) {
	m.cursorDate = m.cursorDate.AddDate(0, 0, days)
	if m.cursorDate.Year() != m.viewMonth.Year() || m.cursorDate.Month() != m.viewMonth.Month() {
		m.viewMonth = firstOfMonth(m.cursorDate)
	}
}

// parseDateInput reads +N, -N, today, tomorrow, YYYY-MM-DD or MM-DD
// relative to today
func parseDateInput(input string, today time.Time) (time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "":
		return time.Time{}, errInvalidDate
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	if input[0] == '+' || input[0] == '-' {
		days, err := strconv.Atoi(input[1:])
		if err != nil {
			return time.Time{}, errInvalidDate
		}
		if input[0] == '-' {
			days = -days
		}
		return today.AddDate(0, 0, days), nil
	}

	if parsed, err := dates.ParseDate(input); err == nil {
		return localDay(parsed), nil
	}

	// Short format assumes the current year
	if parsed, err := time.Parse("01-02", input); err == nil {
		return time.Date(today.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.Local), nil
	}

	return time.Time{}, errInvalidDate
}

func (m DatePickerModel) View() string {
	if m.mode == textInputMode {
		return m.viewTextInput()
	}
	return m.viewCalendar()
}

func (m DatePickerModel) viewCalendar() string {
	var s strings.Builder

	s.WriteString(m.styles.ModalTitle.Render(m.title))
	s.WriteString("\n\n")

	current := "(none)"
	if m.currentDate != nil {
		current = dates.Format(*m.currentDate)
	}
	s.WriteString(m.styles.Muted.Render("Current: " + current))
	s.WriteString("\n\n")

	s.WriteString(m.styles.datePickerMonth.Render(m.viewMonth.Format("January 2006")))
	s.WriteString("\n\n")

	for _, day := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		s.WriteString(m.styles.datePickerDayHeader.Render(day))
		s.WriteString(" ")
	}
	s.WriteString("\n")

	daysInMonth := m.viewMonth.AddDate(0, 1, -1).Day()
	currentDay := 1 - int(m.viewMonth.Weekday())

	for week := 0; week < 6; week++ {
		for weekday := 0; weekday < 7; weekday++ {
			if currentDay < 1 || currentDay > daysInMonth {
				s.WriteString("  ")
			} else {
				date := time.Date(m.viewMonth.Year(), m.viewMonth.Month(), currentDay, 0, 0, 0, 0, time.Local)
				dayStr := fmt.Sprintf("%2d", currentDay)

				switch {
				case date.Equal(m.cursorDate):
					s.WriteString(m.styles.datePickerCursor.Render(dayStr))
				case date.Equal(m.today):
					s.WriteString(m.styles.datePickerToday.Render(dayStr))
				default:
					s.WriteString(m.styles.datePickerDay.Render(dayStr))
				}
			}
			s.WriteString(" ")
			currentDay++
		}
		s.WriteString("\n")

		if currentDay > daysInMonth {
			break
		}
	}

	s.WriteString("\n")
	s.WriteString(m.styles.ModalHelp.Render("hjkl: move • t: today • +/-: month • c: clear • i: type • enter: save • esc: cancel"))

	return m.styles.datePickerBox.Render(s.String())
}

func (m DatePickerModel) viewTextInput() string {
	var s strings.Builder

	s.WriteString(m.styles.ModalTitle.Render(m.title + " (Text Input)"))
	s.WriteString("\n\n")

	s.WriteString(m.textInput.View())
	s.WriteString("\n\n")

	if m.err != nil {
		s.WriteString(m.styles.Error.Render(m.err.Error()))
		s.WriteString("\n\n")
	}

	s.WriteString(m.styles.ModalHelp.Render("enter: save • esc: back to calendar"))
	s.WriteString("\n\n")
	s.WriteString(m.styles.datePickerExamples.Render("Examples: 2026-03-15, 03-15, +5, tomorrow, today"))

	return m.styles.datePickerBox.Render(s.String())
}

// GetDate returns the picked date, nil when cleared
func (m DatePickerModel) GetDate() *time.Time {
	return m.currentDate
}

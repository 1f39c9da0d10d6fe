// Package tui is the interactive trip browser: a bubbletea program that
// lists, filters, sorts and edits the trips and expenses of a workspace.
package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/travel-mate/internal/engine"
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/Veraticus/travel-mate/internal/service"
	"github.com/Veraticus/travel-mate/internal/tui/themes"
	"github.com/Veraticus/travel-mate/internal/workspace"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode is what the keyboard currently drives.
type Mode int

const (
	ModeList Mode = iota
	ModeFilter
	ModeDetails
	ModeTripForm
	ModeExpenseForm
	ModeConfirmDelete
)

// deleteTarget is the record a pending confirmation would remove.
type deleteTarget struct {
	label  string
	id     string
	isTrip bool
}

// Model holds the main TUI state.
type Model struct {
	ctx           context.Context
	storage       service.Storage
	ws            *workspace.Workspace
	lastError     error
	theme         themes.Theme
	help          help.Model
	keymap        KeyMap
	filterInput   textinput.Model
	pendingDelete deleteTarget
	tripForm      tripForm
	expenseForm   expenseForm
	config        Config
	status        string
	filter        string
	selectedTrip  string
	sortKey       engine.SortKey
	width         int
	height        int
	cursor        int
	expenseCursor int
	revision      int
	savedRevision int
	mode          Mode
	returnMode    Mode
	ready         bool
	readOnly      bool
	quitting      bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "destination, purpose, customer or project"

	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := Model{
		ctx:         ctx,
		storage:     cfg.Storage,
		theme:       cfg.Theme,
		help:        help.New(),
		keymap:      DefaultKeyMap(),
		filterInput: filter,
		config:      cfg,
		sortKey:     cfg.Sort,
		width:       cfg.Width,
		height:      cfg.Height,
		mode:        ModeList,
	}
	m.help.Width = cfg.Width

	if cfg.State != nil || cfg.Storage == nil {
		m.setState(cfg.State)
	}
	return m
}

func (m *Model) setState(state *model.AppState) {
	opts := append([]workspace.Option{workspace.WithDefaultCurrency(m.config.Currency)}, m.config.WorkspaceOptions...)
	m.ws = workspace.New(state, opts...)
	m.ready = true
}

// Init loads the workspace when the model was not given one.
func (m Model) Init() tea.Cmd {
	if !m.ready && m.storage != nil {
		return loadState(m.ctx, m.storage)
	}
	return nil
}

// Dirty reports whether there are edits not yet written to storage.
func (m Model) Dirty() bool {
	return m.revision != m.savedRevision
}

// State returns the workspace being edited, or nil before it is loaded.
func (m Model) State() *model.AppState {
	if m.ws == nil {
		return nil
	}
	return m.ws.State()
}

// Mode returns the current input mode.
func (m Model) Mode() Mode {
	return m.mode
}

func (m *Model) touch() {
	m.revision++
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case stateLoadedMsg:
		if msg.err != nil {
			// Saving would overwrite the file that failed to load.
			m.lastError = fmt.Errorf("failed to load workspace: %w", msg.err)
			m.readOnly = true
			m.setState(nil)
			return m, nil
		}
		m.setState(msg.state)
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.lastError = fmt.Errorf("failed to save workspace: %w", msg.err)
			return m, nil
		}
		m.savedRevision = msg.revision
		m.status = "Saved."
		if msg.quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if !m.ready {
			return m, nil
		}
		m.lastError = nil
		switch m.mode {
		case ModeFilter:
			return m.updateFilter(msg)
		case ModeDetails:
			return m.updateDetails(msg)
		case ModeTripForm:
			return m.updateTripForm(msg)
		case ModeExpenseForm:
			return m.updateExpenseForm(msg)
		case ModeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

// visibleTrips is the filtered, sorted trip list.
func (m Model) visibleTrips() []model.Trip {
	return engine.VisibleTrips(m.ws.State(), m.filter, m.sortKey)
}

func (m *Model) clampCursor() {
	n := len(m.visibleTrips())
	m.cursor = max(0, min(m.cursor, n-1))
}

func (m Model) currentTrip() (model.Trip, bool) {
	trips := m.visibleTrips()
	if m.cursor < 0 || m.cursor >= len(trips) {
		return model.Trip{}, false
	}
	return trips[m.cursor], true
}

func (m Model) selectedExpenses() []model.Expense {
	return m.ws.State().ExpensesFor(m.selectedTrip)
}

// quit writes pending edits first and exits once they are saved.
func (m Model) quit() (Model, tea.Cmd) {
	if !m.Dirty() {
		m.quitting = true
		return m, tea.Quit
	}
	return m.save(true)
}

func (m Model) save(quit bool) (Model, tea.Cmd) {
	if m.storage == nil {
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		m.status = "No workspace file to save to."
		return m, nil
	}
	if m.readOnly {
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		m.status = "Workspace failed to load; not saving over it."
		return m, nil
	}
	return m, saveState(m.ctx, m.storage, m.ws.State(), m.revision, quit)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()

	case key.Matches(msg, m.keymap.Save):
		return m.save(false)

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keymap.Up):
		m.cursor = max(0, m.cursor-1)

	case key.Matches(msg, m.keymap.Down):
		m.cursor++
		m.clampCursor()

	case key.Matches(msg, m.keymap.Filter):
		m.mode = ModeFilter
		m.filterInput.SetValue(m.filter)
		return m, m.filterInput.Focus()

	case key.Matches(msg, m.keymap.Sort):
		m.sortKey = m.sortKey.Next()
		m.status = "Sorted by " + m.sortKey.Label() + "."
		m.clampCursor()

	case key.Matches(msg, m.keymap.NewTrip):
		trip := m.ws.AddTrip()
		m.touch()
		m.selectedTrip = trip.ID
		return m.openTripForm(trip, ModeList)

	case key.Matches(msg, m.keymap.Edit):
		if trip, ok := m.currentTrip(); ok {
			m.selectedTrip = trip.ID
			return m.openTripForm(trip, ModeList)
		}

	case key.Matches(msg, m.keymap.AddExpense):
		if trip, ok := m.currentTrip(); ok {
			m.selectedTrip = trip.ID
			m.expenseCursor = 0
			return m.addExpense(ModeDetails)
		}

	case key.Matches(msg, m.keymap.Delete):
		if trip, ok := m.currentTrip(); ok {
			m.pendingDelete = deleteTarget{isTrip: true, id: trip.ID, label: trip.Route()}
			m.returnMode = ModeList
			m.mode = ModeConfirmDelete
		}

	case key.Matches(msg, m.keymap.Details):
		if trip, ok := m.currentTrip(); ok {
			m.selectedTrip = trip.ID
			m.expenseCursor = 0
			m.mode = ModeDetails
		}
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = ModeList
		m.filterInput.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = ModeList
		m.filter = ""
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filter = m.filterInput.Value()
	m.clampCursor()
	return m, cmd
}

func (m Model) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	trip, ok := m.ws.State().Trip(m.selectedTrip)
	if !ok {
		m.mode = ModeList
		return m, nil
	}
	expenses := m.selectedExpenses()

	switch {
	case key.Matches(msg, m.keymap.Back):
		m.mode = ModeList

	case key.Matches(msg, m.keymap.Quit):
		return m.quit()

	case key.Matches(msg, m.keymap.Save):
		return m.save(false)

	case key.Matches(msg, m.keymap.Up):
		m.expenseCursor = max(0, m.expenseCursor-1)

	case key.Matches(msg, m.keymap.Down):
		m.expenseCursor = max(0, min(m.expenseCursor+1, len(expenses)-1))

	case key.Matches(msg, m.keymap.Edit):
		return m.openTripForm(trip, ModeDetails)

	case key.Matches(msg, m.keymap.AddExpense):
		return m.addExpense(ModeDetails)

	case key.Matches(msg, m.keymap.Details):
		if m.expenseCursor < len(expenses) {
			return m.openExpenseForm(expenses[m.expenseCursor], ModeDetails)
		}

	case key.Matches(msg, m.keymap.Delete):
		if m.expenseCursor < len(expenses) {
			e := expenses[m.expenseCursor]
			m.pendingDelete = deleteTarget{id: e.ID, label: fmt.Sprintf("%s expense from %s", e.Category, e.Date)}
			m.returnMode = ModeDetails
			m.mode = ModeConfirmDelete
		}
	}
	return m, nil
}

func (m Model) openTripForm(trip model.Trip, returnTo Mode) (tea.Model, tea.Cmd) {
	m.tripForm = newTripForm(trip)
	m.returnMode = returnTo
	m.mode = ModeTripForm
	return m, textinput.Blink
}

func (m Model) addExpense(returnTo Mode) (tea.Model, tea.Cmd) {
	e, err := m.ws.AddExpense(m.selectedTrip)
	if err != nil {
		m.lastError = err
		return m, nil
	}
	m.touch()
	m.expenseCursor = 0
	return m.openExpenseForm(e, returnTo)
}

func (m Model) openExpenseForm(e model.Expense, returnTo Mode) (tea.Model, tea.Cmd) {
	m.expenseForm = newExpenseForm(e)
	m.returnMode = returnTo
	m.mode = ModeExpenseForm
	return m, textinput.Blink
}

func (m Model) updateTripForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.mode = m.returnMode
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		if _, err := m.ws.UpdateTrip(m.tripForm.tripID, m.tripForm.patch()); err != nil {
			m.lastError = err
			return m, nil
		}
		m.touch()
		m.status = "Trip updated."
		m.mode = m.returnMode
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keymap.NextField):
		return m, m.tripForm.setFocus(m.tripForm.focus + 1)

	case key.Matches(msg, m.keymap.PrevField):
		return m, m.tripForm.setFocus(m.tripForm.focus - 1)

	case key.Matches(msg, m.keymap.Toggle):
		if _, ok := m.tripForm.mealFocused(); ok {
			m.tripForm.toggleMeal()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.tripForm, cmd = m.tripForm.update(msg)
	return m, cmd
}

func (m Model) updateExpenseForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.mode = m.returnMode
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		if _, err := m.ws.UpdateExpense(m.expenseForm.expenseID, m.expenseForm.patch()); err != nil {
			m.lastError = err
			return m, nil
		}
		m.touch()
		m.status = "Expense updated."
		m.mode = m.returnMode
		return m, nil

	case key.Matches(msg, m.keymap.NextField):
		return m, m.expenseForm.setFocus(m.expenseForm.focus + 1)

	case key.Matches(msg, m.keymap.PrevField):
		return m, m.expenseForm.setFocus(m.expenseForm.focus - 1)

	case key.Matches(msg, m.keymap.Toggle):
		if m.expenseForm.onSelector() {
			m.expenseForm.cycle()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.expenseForm, cmd = m.expenseForm.update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := m.pendingDelete
	m.pendingDelete = deleteTarget{}
	m.mode = m.returnMode

	if !key.Matches(msg, m.keymap.ConfirmYes) {
		m.status = "Nothing deleted."
		return m, nil
	}

	if target.isTrip {
		removed, err := m.ws.RemoveTrip(target.id)
		if err != nil {
			m.lastError = err
			return m, nil
		}
		m.status = fmt.Sprintf("Deleted trip %s and %d expense(s).", target.label, removed)
		m.mode = ModeList
		m.clampCursor()
	} else {
		if err := m.ws.RemoveExpense(target.id); err != nil {
			m.lastError = err
			return m, nil
		}
		m.status = "Deleted " + target.label + "."
		m.expenseCursor = max(0, min(m.expenseCursor, len(m.selectedExpenses())-1))
	}
	m.touch()
	return m, nil
}

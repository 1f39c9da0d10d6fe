package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/travel-mate/internal/cli"
	"github.com/Veraticus/travel-mate/internal/engine"
	"github.com/Veraticus/travel-mate/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// chromeLines is the height taken by the title, summary, status bar and help.
const chromeLines = 8

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}

	var body string
	switch m.mode {
	case ModeDetails:
		body = m.renderDetails()
	case ModeTripForm:
		body = m.renderTripForm()
	case ModeExpenseForm:
		body = m.renderExpenseForm()
	case ModeConfirmDelete:
		body = m.renderConfirm()
	default:
		body = m.renderList()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		body,
		"",
		m.renderStatusBar(),
		m.help.View(m.keymap),
	)
}

func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Travel Mate"),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Loading workspace..."),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) money(d decimal.Decimal) string {
	return cli.FormatMoney(d, m.config.Currency)
}

func (m Model) renderList() string {
	state := m.ws.State()
	trips := m.visibleTrips()

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("🧳 Travel Mate"))
	b.WriteString("\n")

	summary := engine.Summarize(trips, state.Expenses)
	fmt.Fprintf(&b, "%d trip(s) · total %s · average %s · sorted by %s\n",
		summary.TripCount,
		m.theme.Money.Render(m.money(summary.Total)),
		m.money(summary.Average),
		m.sortKey.Label())

	if m.mode == ModeFilter {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	} else if m.filter != "" {
		b.WriteString(m.theme.Subtitle.Render("filter: " + m.filter))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(trips) == 0 {
		if len(state.Trips) == 0 {
			b.WriteString(m.theme.StatusPending.Render("No trips yet. Press n to add one."))
		} else {
			b.WriteString(m.theme.StatusPending.Render("No trips match the filter."))
		}
		return b.String()
	}

	first, last := m.window(len(trips))
	for i := first; i < last; i++ {
		trip := trips[i]
		total := engine.TotalForTrip(trip, state.Expenses).Total
		line := fmt.Sprintf("%-36s %s → %s  %-20s %14s",
			truncate(trip.Route(), 36),
			trip.StartDate,
			trip.EndDate,
			truncate(trip.Customer, 20),
			m.money(total))
		if i == m.cursor {
			b.WriteString(m.theme.Selected.Render("› " + line))
		} else {
			b.WriteString(m.theme.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// window returns the range of list rows that fit on screen around the cursor.
func (m Model) window(n int) (int, int) {
	rows := m.height - chromeLines
	if rows <= 0 || n <= rows {
		return 0, n
	}
	first := max(0, m.cursor-rows+1)
	return first, min(n, first+rows)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func (m Model) renderDetails() string {
	trip, ok := m.ws.State().Trip(m.selectedTrip)
	if !ok {
		return m.theme.StatusError.Render("Trip not found.")
	}
	b := engine.TotalForTrip(trip, m.ws.State().Expenses)

	var sb strings.Builder
	sb.WriteString(m.theme.Title.Render(trip.Route()))
	sb.WriteString("\n")
	sb.WriteString(m.theme.Subtitle.Render(cli.TripSubtitle(trip)))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Total %s\n", m.theme.Money.Render(m.money(b.Total)))
	fmt.Fprintf(&sb, "Expenses %s · Per-diem %s · Mileage %s\n",
		m.money(b.ExpenseSum), m.money(b.PerDiem), m.money(b.Mileage))
	fmt.Fprintf(&sb, "Meals provided: %s\n\n", cli.MealsLabel(trip.Meals()))

	expenses := m.selectedExpenses()
	sb.WriteString(m.theme.Bold.Render("Expenses"))
	sb.WriteString("\n")
	if len(expenses) == 0 {
		sb.WriteString(m.theme.StatusPending.Render("No expenses yet. Press a to add one."))
	}
	for i, e := range expenses {
		line := fmt.Sprintf("%s %s  %-9s %12s  %s",
			themes.GetCategoryIcon(e.Category),
			e.Date,
			e.Category,
			cli.FormatMoney(decimal.NewFromFloat(e.Amount.Finite()), e.Currency),
			e.Note)
		if i == m.expenseCursor {
			sb.WriteString(m.theme.Selected.Render("› " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	return m.theme.RoundedBox.Render(strings.TrimRight(sb.String(), "\n"))
}

func (m Model) fieldLine(label, value string, focused bool) string {
	marker := "  "
	if focused {
		marker = "› "
	}
	return fmt.Sprintf("%s%-20s %s", marker, label, value)
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) renderTripForm() string {
	f := m.tripForm
	var sb strings.Builder
	sb.WriteString(m.theme.Title.Render("Edit trip"))
	sb.WriteString("\n")
	for i, label := range tripFieldLabels {
		sb.WriteString(m.fieldLine(label, f.inputs[i].View(), f.focus == i))
		sb.WriteString("\n")
	}
	for i, label := range mealLabels {
		sb.WriteString(m.fieldLine(label, checkbox(f.meals[i]), f.focus == len(f.inputs)+i))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.theme.StatusPending.Render("Tab next field · Space toggle meal · Enter apply · Esc cancel"))
	return m.theme.RoundedBox.Render(sb.String())
}

func (m Model) renderExpenseForm() string {
	f := m.expenseForm
	values := []string{
		f.date.View(),
		"‹ " + string(f.category) + " ›",
		f.amount.View(),
		"‹ " + string(f.currency) + " ›",
		f.note.View(),
	}
	var sb strings.Builder
	sb.WriteString(m.theme.Title.Render("Edit expense"))
	sb.WriteString("\n")
	for i, label := range expenseFieldLabels {
		sb.WriteString(m.fieldLine(label, values[i], f.focus == i))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.theme.StatusPending.Render("Tab next field · Space cycle choice · Enter apply · Esc cancel"))
	return m.theme.RoundedBox.Render(sb.String())
}

func (m Model) renderConfirm() string {
	question := "Delete " + m.pendingDelete.label + "?"
	if m.pendingDelete.isTrip {
		n := len(m.ws.State().ExpensesFor(m.pendingDelete.id))
		question = fmt.Sprintf("Delete trip %s and its %d expense(s)?", m.pendingDelete.label, n)
	}
	return m.theme.RoundedBox.Render(
		m.theme.StatusWarning.Render(question) + "\n\n" + "y delete · any other key keeps it",
	)
}

func (m Model) modeLabel() string {
	switch m.mode {
	case ModeFilter:
		return "Filter"
	case ModeDetails:
		return "Trip"
	case ModeTripForm, ModeExpenseForm:
		return "Edit"
	case ModeConfirmDelete:
		return "Confirm"
	default:
		return "Browse"
	}
}

func (m Model) renderStatusBar() string {
	parts := []string{m.theme.Bold.Render(m.modeLabel())}
	if m.Dirty() {
		parts = append(parts, m.theme.StatusWarning.Render("● unsaved"))
	}
	if m.readOnly {
		parts = append(parts, m.theme.StatusError.Render("read-only"))
	}
	switch {
	case m.lastError != nil:
		parts = append(parts, m.theme.StatusError.Render(m.lastError.Error()))
	case m.status != "":
		parts = append(parts, m.theme.StatusInfo.Render(m.status))
	}
	return strings.Join(parts, "  ")
}


package tui

import (
	"slices"
	"strconv"
	"strings"

	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var tripFieldLabels = []string{
	"Origin", "Destination", "Start", "End",
	"Purpose", "Customer", "Project", "Mileage (km)",
}

var mealLabels = []string{"Breakfast provided", "Lunch provided", "Dinner provided"}

const (
	fieldOrigin = iota
	fieldDestination
	fieldStart
	fieldEnd
	fieldPurpose
	fieldCustomer
	fieldProject
	fieldMileage
)

func newInput(value, placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.SetValue(value)
	return ti
}

// tripForm edits one trip. Text fields come first, then the three meal
// checkboxes.
type tripForm struct {
	tripID string
	inputs []textinput.Model
	meals  [3]bool
	focus  int
}

func newTripForm(trip model.Trip) tripForm {
	km := ""
	if trip.MileageKm != 0 {
		km = strconv.FormatFloat(model.Amount(trip.MileageKm).Finite(), 'f', -1, 64)
	}
	f := tripForm{
		tripID: trip.ID,
		inputs: []textinput.Model{
			newInput(trip.Origin, "Berlin"),
			newInput(trip.Destination, "München"),
			newInput(trip.StartDate, model.DateLayout),
			newInput(trip.EndDate, model.DateLayout),
			newInput(trip.Purpose, "Kundentermin"),
			newInput(trip.Customer, ""),
			newInput(trip.Project, ""),
			newInput(km, "0"),
		},
		meals: [3]bool{trip.IncludeBreakfast, trip.IncludeLunch, trip.IncludeDinner},
	}
	f.setFocus(0)
	return f
}

func (f tripForm) fieldCount() int {
	return len(f.inputs) + len(f.meals)
}

// setFocus moves focus to field i, wrapping around.
func (f *tripForm) setFocus(i int) tea.Cmd {
	n := f.fieldCount()
	f.focus = ((i % n) + n) % n
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	if f.focus < len(f.inputs) {
		return f.inputs[f.focus].Focus()
	}
	return nil
}

// mealFocused reports which meal checkbox has focus, if any.
func (f tripForm) mealFocused() (int, bool) {
	if f.focus < len(f.inputs) {
		return 0, false
	}
	return f.focus - len(f.inputs), true
}

func (f *tripForm) toggleMeal() {
	if i, ok := f.mealFocused(); ok {
		f.meals[i] = !f.meals[i]
	}
}

func (f tripForm) update(msg tea.Msg) (tripForm, tea.Cmd) {
	if f.focus >= len(f.inputs) {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f tripForm) value(field int) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

// patch sets every field from the form. Mileage that does not parse is 0.
func (f tripForm) patch() model.TripPatch {
	str := func(field int) *string {
		v := f.value(field)
		return &v
	}
	km := model.ParseKilometers(f.value(fieldMileage))
	breakfast, lunch, dinner := f.meals[0], f.meals[1], f.meals[2]
	return model.TripPatch{
		Origin:           str(fieldOrigin),
		Destination:      str(fieldDestination),
		StartDate:        str(fieldStart),
		EndDate:          str(fieldEnd),
		Purpose:          str(fieldPurpose),
		Customer:         str(fieldCustomer),
		Project:          str(fieldProject),
		MileageKm:        &km,
		IncludeBreakfast: &breakfast,
		IncludeLunch:     &lunch,
		IncludeDinner:    &dinner,
	}
}

var expenseFieldLabels = []string{"Date", "Category", "Amount", "Currency", "Note"}

const (
	expenseFieldDate = iota
	expenseFieldCategory
	expenseFieldAmount
	expenseFieldCurrency
	expenseFieldNote
)

// expenseForm edits one expense. Category and currency are selectors cycled
// with space; the other fields are text.
type expenseForm struct {
	expenseID string
	date      textinput.Model
	amount    textinput.Model
	note      textinput.Model
	category  model.Category
	currency  model.Currency
	focus     int
}

func newExpenseForm(e model.Expense) expenseForm {
	amount := ""
	if v := e.Amount.Finite(); v != 0 {
		amount = strconv.FormatFloat(v, 'f', -1, 64)
	}
	f := expenseForm{
		expenseID: e.ID,
		date:      newInput(e.Date, model.DateLayout),
		amount:    newInput(amount, "0.00"),
		note:      newInput(e.Note, "Note (optional)"),
		category:  e.Category,
		currency:  e.Currency,
	}
	if f.category == "" {
		f.category = model.CategoryOther
	}
	if f.currency == "" {
		f.currency = model.DefaultCurrency
	}
	f.setFocus(0)
	return f
}

func (f *expenseForm) input(field int) *textinput.Model {
	switch field {
	case expenseFieldDate:
		return &f.date
	case expenseFieldAmount:
		return &f.amount
	case expenseFieldNote:
		return &f.note
	}
	return nil
}

func (f *expenseForm) setFocus(i int) tea.Cmd {
	n := len(expenseFieldLabels)
	f.focus = ((i % n) + n) % n
	f.date.Blur()
	f.amount.Blur()
	f.note.Blur()
	if in := f.input(f.focus); in != nil {
		return in.Focus()
	}
	return nil
}

// cycle advances the focused selector to its next value.
func (f *expenseForm) cycle() {
	switch f.focus {
	case expenseFieldCategory:
		f.category = next(model.Categories(), f.category)
	case expenseFieldCurrency:
		f.currency = next(model.Currencies(), f.currency)
	}
}

func next[T comparable](values []T, current T) T {
	i := slices.Index(values, current)
	return values[(i+1)%len(values)]
}

func (f expenseForm) onSelector() bool {
	return f.focus == expenseFieldCategory || f.focus == expenseFieldCurrency
}

func (f expenseForm) update(msg tea.Msg) (expenseForm, tea.Cmd) {
	in := f.input(f.focus)
	if in == nil {
		return f, nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return f, cmd
}

// patch sets every field from the form. An amount that does not parse is 0.
func (f expenseForm) patch() model.ExpensePatch {
	date := strings.TrimSpace(f.date.Value())
	note := strings.TrimSpace(f.note.Value())
	amount := model.ParseAmount(f.amount.Value())
	category, currency := f.category, f.currency
	return model.ExpensePatch{
		Date:     &date,
		Category: &category,
		Amount:   &amount,
		Currency: &currency,
		Note:     &note,
	}
}

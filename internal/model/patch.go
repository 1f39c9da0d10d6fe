package model

// TripPatch carries a field-level edit of a trip. Nil fields are left unchanged.
type TripPatch struct {
	Origin           *string
	Destination      *string
	StartDate        *string
	EndDate          *string
	Purpose          *string
	Customer         *string
	Project          *string
	MileageKm        *float64
	IncludeBreakfast *bool
	IncludeLunch     *bool
	IncludeDinner    *bool
}

// Apply returns t with the patch applied. Mileage below zero is stored as 0.
func (p TripPatch) Apply(t Trip) Trip {
	setString(&t.Origin, p.Origin)
	setString(&t.Destination, p.Destination)
	setString(&t.StartDate, p.StartDate)
	setString(&t.EndDate, p.EndDate)
	setString(&t.Purpose, p.Purpose)
	setString(&t.Customer, p.Customer)
	setString(&t.Project, p.Project)
	if p.MileageKm != nil {
		t.MileageKm = max(0, *p.MileageKm)
	}
	setBool(&t.IncludeBreakfast, p.IncludeBreakfast)
	setBool(&t.IncludeLunch, p.IncludeLunch)
	setBool(&t.IncludeDinner, p.IncludeDinner)
	return t
}

// IsEmpty reports whether the patch changes nothing.
func (p TripPatch) IsEmpty() bool {
	return p == TripPatch{}
}

// ExpensePatch carries a field-level edit of an expense. Nil fields are left unchanged.
type ExpensePatch struct {
	Date     *string
	Category *Category
	Amount   *Amount
	Currency *Currency
	Note     *string
}

// Apply returns e with the patch applied.
func (p ExpensePatch) Apply(e Expense) Expense {
	setString(&e.Date, p.Date)
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Currency != nil {
		e.Currency = *p.Currency
	}
	setString(&e.Note, p.Note)
	return e
}

// IsEmpty reports whether the patch changes nothing.
func (p ExpensePatch) IsEmpty() bool {
	return p == ExpensePatch{}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

package dto

// ProductFilters narrows a product query. Zero values mean "not filtered"
// except Status, which WithDefaults pins to published records.
type ProductFilters struct {
	TermID       int64
	RequireYears bool // both year fields must be present (existence, not value)
	YearStart    *int // exact match when set
	YearEnd      *int // exact match when set
	Status       string
	Limit        int // 0 means all
}

// WithDefaults returns a copy with unset fields filled in. Pure merge; the
// input is never mutated.
func (f ProductFilters) WithDefaults() ProductFilters {
	if f.Status == "" {
		f.Status = "publish"
	}
	return f
}

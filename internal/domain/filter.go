package domain

// PageSize is the fixed number of advertisements per listing page.
const PageSize = 10

// AdvertisementFilter selects advertisements by related entity. A nil field
// leaves that relation unconstrained. Page is 1-based.
type AdvertisementFilter struct {
	CityID      *int64 `json:"city,omitempty"`
	CountryID   *int64 `json:"country,omitempty"`
	EngineID    *int64 `json:"engine,omitempty"`
	ColorID     *int64 `json:"color,omitempty"`
	MakeID      *int64 `json:"make,omitempty"`
	ModelID     *int64 `json:"model,omitempty"`
	ConditionID *int64 `json:"condition,omitempty"`
	Page        int    `json:"page"`
}

// Predicate is an equality condition on a joined entity's key.
type Predicate struct {
	Column string
	Value  int64
}

// Predicates returns the conditions for the present filter fields, always in
// the same order.
func (f AdvertisementFilter) Predicates() []Predicate {
	fields := [...]struct {
		column string
		value  *int64
	}{
		{"cities.id", f.CityID},
		{"countries.id", f.CountryID},
		{"engines.id", f.EngineID},
		{"colors.id", f.ColorID},
		{"car_models.id", f.ModelID},
		{"makes.id", f.MakeID},
		{"conditions.id", f.ConditionID},
	}

	preds := make([]Predicate, 0, len(fields))
	for _, field := range fields {
		if field.value != nil {
			preds = append(preds, Predicate{Column: field.column, Value: *field.value})
		}
	}
	return preds
}

// Offset is the number of rows skipped for Page. Pages below 1 read as page 1.
func (f AdvertisementFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return PageSize * (page - 1)
}

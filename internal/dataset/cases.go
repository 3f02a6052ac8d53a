package dataset

// CleanCases returns a cleaned copy of a raw cases table.
//
// Each step only runs when its input columns are present:
//   - date_filed, decision_date and registration_date are parsed; bad values become null
//   - disposal_days = decision_date - date_filed + 1, null when either date is missing
//   - filing_year is the calendar year of date_filed
//   - total_hearings is coerced to an integer, or added as 0 when absent
//   - rows are deduplicated on cnr_number (first wins) and the key is kept as text
func CleanCases(raw *Table) *Table {
	t := NormalizeColumns(raw)

	for _, col := range []string{ColDateFiled, ColDecisionDate, ColRegistrationDate} {
		t.mapColumn(col, toDate)
	}

	if t.Has(ColDateFiled) && t.Has(ColDecisionDate) {
		days := make([]Value, t.Len())
		for i := range days {
			filed, decided := t.Get(i, ColDateFiled), t.Get(i, ColDecisionDate)
			if filed.Kind == KindDate && decided.Kind == KindDate {
				days[i] = IntValue(DaysBetween(filed.Date, decided.Date))
			}
		}
		t.setColumn(ColDisposalDays, days)
	}

	if t.Has(ColDateFiled) {
		years := make([]Value, t.Len())
		for i := range years {
			if filed := t.Get(i, ColDateFiled); filed.Kind == KindDate {
				years[i] = IntValue(int64(filed.Date.Year()))
			}
		}
		t.setColumn(ColFilingYear, years)
	}

	if t.Has(ColTotalHearings) {
		t.mapColumn(ColTotalHearings, toInt)
	} else {
		zeros := make([]Value, t.Len())
		for i := range zeros {
			zeros[i] = IntValue(0)
		}
		t.setColumn(ColTotalHearings, zeros)
	}

	if t.Has(ColCNR) {
		t = dedupe(t, ColCNR)
		t.mapColumn(ColCNR, toKey)
	}
	return t
}

// dedupe keeps the first row for every distinct key. Null keys compare equal
// to each other.
func dedupe(t *Table, column string) *Table {
	seen := make(map[string]struct{}, t.Len())
	nullSeen := false
	return t.Filter(func(r Row) bool {
		v := r.Get(column)
		if v.IsNull() {
			if nullSeen {
				return false
			}
			nullSeen = true
			return true
		}
		k := keyOf(v)
		if _, dup := seen[k]; dup {
			return false
		}
		seen[k] = struct{}{}
		return true
	})
}

// keyOf renders a join key. Numeric keys compare by value so "12" and 12 match.
func keyOf(v Value) string {
	return v.String()
}

// toKey forces a key cell to text. Null stays null and never joins.
func toKey(v Value) Value {
	if v.IsNull() {
		return v
	}
	return StringValue(keyOf(v))
}

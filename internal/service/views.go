package service

import (
	"strings"
	"time"

	"github.com/rongwang/nyayadrishti/internal/analytics"
	"github.com/rongwang/nyayadrishti/internal/dataset"
	"github.com/rongwang/nyayadrishti/internal/models"
)

// AgeColumn is added to the aging alert table
const AgeColumn = "age_days"

// RoleView returns the merged rows visible to a user. A Judge sees rows whose
// judge column contains the name; an Advocate sees rows where either advocate
// column does. Matching ignores case. A blank name sees nothing.
func RoleView(merged *dataset.Table, name string, role models.Role) *dataset.Table {
	needle := strings.ToLower(strings.TrimSpace(name))

	var columns []string
	switch role {
	case models.RoleJudge:
		columns = []string{dataset.ColJudge}
	case models.RoleAdvocate:
		columns = []string{dataset.ColPetitionerAdvocate, dataset.ColRespondentAdvocate}
	}
	var present []string
	for _, c := range columns {
		if col := merged.Lookup(c); col != "" {
			present = append(present, col)
		}
	}

	return merged.Filter(func(r dataset.Row) bool {
		if needle == "" {
			return false
		}
		for _, col := range present {
			v := r.Get(col)
			if !v.IsNull() && strings.Contains(strings.ToLower(v.String()), needle) {
				return true
			}
		}
		return false
	})
}

// AgingCases returns the rows filed more than a year before today, with their
// age in days
func AgingCases(view *dataset.Table, today time.Time) *dataset.Table {
	col := view.Lookup(dataset.ColDateFiled)
	if col == "" {
		return dataset.NewTable(view.Columns())
	}
	day := dataset.DateValue(today).Date
	withAge := view.WithColumn(AgeColumn, func(r dataset.Row) dataset.Value {
		filed := r.Get(col)
		if filed.Kind != dataset.KindDate {
			return dataset.Null()
		}
		return dataset.IntValue(dataset.DaySpan(filed.Date, day))
	})
	return withAge.Filter(func(r dataset.Row) bool {
		age := r.Get(AgeColumn)
		return age.Kind == dataset.KindInt && age.Int > analytics.AgingThresholdDays
	})
}

// PendingCases returns rows whose status is anything but "disposed". A missing
// status counts as pending.
func PendingCases(view *dataset.Table) *dataset.Table {
	col := view.Lookup(dataset.ColCurrentStatus)
	if col == "" {
		return view
	}
	return view.Filter(func(r dataset.Row) bool {
		return strings.ToLower(strings.TrimSpace(r.Get(col).String())) != "disposed"
	})
}

// HearingsOn splits the view by next hearing date relative to today and
// collects rows that carry a previous hearing date
func HearingsOn(view *dataset.Table, today time.Time) (onDay, upcoming, rescheduled *dataset.Table) {
	day := dataset.DateValue(today).Date
	empty := dataset.NewTable(view.Columns())

	onDay, upcoming = empty, empty
	if col := view.Lookup(dataset.ColNextHearingDate); col != "" {
		onDay = view.Filter(func(r dataset.Row) bool {
			v := r.Get(col)
			return v.Kind == dataset.KindDate && v.Date.Equal(day)
		})
		upcoming = view.Filter(func(r dataset.Row) bool {
			v := r.Get(col)
			return v.Kind == dataset.KindDate && v.Date.After(day)
		})
	}

	rescheduled = empty
	if col := view.Lookup(dataset.ColPreviousHearing); col != "" {
		rescheduled = view.Filter(func(r dataset.Row) bool {
			return !r.Get(col).IsNull()
		})
	}
	return onDay, upcoming, rescheduled
}

func containsCase(view *dataset.Table, cnr string) bool {
	for i := 0; i < view.Len(); i++ {
		if view.Get(i, dataset.ColCNR).String() == cnr {
			return true
		}
	}
	return false
}

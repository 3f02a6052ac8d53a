package models

import (
	"strings"

	"github.com/rongwang/nyayadrishti/internal/dataset"
)

// Role is the portal view a user signs in to
type Role string

const (
	RoleJudge    Role = "Judge"
	RoleAdvocate Role = "Advocate"
)

// ParseRole accepts the role names used by the login form, ignoring case.
// "Advocate (Lawyer)" and "Lawyer" both mean Advocate.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "judge":
		return RoleJudge, true
	case "advocate", "lawyer", "advocate (lawyer)":
		return RoleAdvocate, true
	default:
		return "", false
	}
}

// Principal is the authenticated caller of a request
type Principal struct {
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	FirstLogin bool   `json:"firstLogin"`
}

// TableData is the JSON form of a dataset table
type TableData struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Count   int      `json:"count"`
}

// NewTableData converts a table for a response. A nil table gives an empty
// result.
func NewTableData(t *dataset.Table) TableData {
	if t == nil {
		return TableData{Columns: []string{}, Rows: [][]any{}}
	}
	columns := t.Columns()
	rows := make([][]any, t.Len())
	for i := range rows {
		row := t.Row(i)
		rows[i] = make([]any, len(columns))
		for j, name := range columns {
			rows[i][j] = row.Get(name).Interface()
		}
	}
	return TableData{Columns: columns, Rows: rows, Count: len(rows)}
}

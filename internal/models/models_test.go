package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rongwang/nyayadrishti/internal/dataset"
)

func TestParseRole(t *testing.T) {
	for in, want := range map[string]Role{
		"Judge":             RoleJudge,
		" judge ":           RoleJudge,
		"Advocate":          RoleAdvocate,
		"Advocate (Lawyer)": RoleAdvocate,
		"LAWYER":            RoleAdvocate,
	} {
		got, ok := ParseRole(in)
		assert.True(t, ok, "input %q", in)
		assert.Equal(t, want, got)
	}

	_, ok := ParseRole("clerk")
	assert.False(t, ok)
}

func TestNewTableData(t *testing.T) {
	raw, err := dataset.ReadCSV(strings.NewReader("cnr_number,date_filed\nC1,2021-01-10\nC2,\n"))
	require.NoError(t, err)

	data := NewTableData(dataset.CleanCases(raw))

	assert.Equal(t, []string{"cnr_number", "date_filed", "filing_year", "total_hearings"}, data.Columns)
	assert.Equal(t, 2, data.Count)
	assert.Equal(t, []any{"C1", "2021-01-10", int64(2021), int64(0)}, data.Rows[0])
	assert.Equal(t, []any{"C2", nil, nil, int64(0)}, data.Rows[1])

	empty := NewTableData(nil)
	assert.Equal(t, 0, empty.Count)
	assert.NotNil(t, empty.Rows)
}

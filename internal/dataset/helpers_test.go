package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustCSV(t *testing.T, text string) *Table {
	t.Helper()
	tbl, err := ReadCSV(strings.NewReader(text))
	require.NoError(t, err)
	return tbl
}

func column(t *Table, name string) []string {
	out := make([]string, t.Len())
	for i := range out {
		out[i] = t.Get(i, name).String()
	}
	return out
}

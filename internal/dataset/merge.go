package dataset

// Suffixes added to a column present on both sides of a merge
const (
	SuffixHearing = "_hear"
	SuffixCase    = "_case"
)

// DefaultChunkSize bounds how many hearing rows are joined at a time
const DefaultChunkSize = 100000

// Merge left-joins cases onto hearings by cnr_number. The result has one row
// per hearing row; hearings without a case get null case columns and cases
// without a hearing do not appear.
//
// Hearings are processed chunkSize rows at a time and the partial results
// concatenated in order. The output does not depend on chunkSize; a value
// <= 0 joins everything in one pass.
func Merge(cases, hearings *Table, chunkSize int) (*Table, error) {
	if err := Require(hearings, ColCNR); err != nil {
		return nil, err
	}
	if err := Require(cases, ColCNR); err != nil {
		return nil, err
	}

	hearingCols := hearings.Columns()
	var caseCols []string
	var caseIdx []int
	for j, name := range cases.columns {
		if name == ColCNR {
			continue
		}
		caseCols = append(caseCols, name)
		caseIdx = append(caseIdx, j)
	}

	header := make([]string, 0, len(hearingCols)+len(caseCols))
	for _, name := range hearingCols {
		if name != ColCNR && cases.Has(name) {
			name += SuffixHearing
		}
		header = append(header, name)
	}
	for _, name := range caseCols {
		if hearings.Has(name) {
			name += SuffixCase
		}
		header = append(header, name)
	}

	byKey := make(map[string][]int, cases.Len())
	for i := range cases.rows {
		v := cases.Get(i, ColCNR)
		if v.IsNull() {
			continue
		}
		k := keyOf(v)
		byKey[k] = append(byKey[k], i)
	}

	n := hearings.Len()
	if chunkSize <= 0 || chunkSize > n {
		chunkSize = n
	}

	out := NewTable(header)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		part := joinChunk(hearings, cases, header, caseIdx, byKey, start, end)
		out.rows = append(out.rows, part.rows...)
	}
	return out, nil
}

func joinChunk(hearings, cases *Table, header []string, caseIdx []int, byKey map[string][]int, start, end int) *Table {
	part := NewTable(header)
	width := len(hearings.columns)
	for i := start; i < end; i++ {
		var matches []int
		if key := hearings.Get(i, ColCNR); !key.IsNull() {
			matches = byKey[keyOf(key)]
		}
		if len(matches) == 0 {
			row := make([]Value, len(header))
			copy(row, hearings.rows[i])
			part.rows = append(part.rows, row)
			continue
		}
		for _, ci := range matches {
			row := make([]Value, len(header))
			copy(row, hearings.rows[i])
			for k, j := range caseIdx {
				row[width+k] = cases.rows[ci][j]
			}
			part.rows = append(part.rows, row)
		}
	}
	return part
}

// Lookup returns the first of name, name+SuffixHearing and name+SuffixCase
// present in t, or "" when none is
func (t *Table) Lookup(name string) string {
	for _, candidate := range []string{name, name + SuffixHearing, name + SuffixCase} {
		if t.Has(candidate) {
			return candidate
		}
	}
	return ""
}

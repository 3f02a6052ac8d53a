package analytics

import (
	"github.com/rongwang/nyayadrishti/internal/dataset"
)

// PredictionColumns are required by the disposal time estimate
var PredictionColumns = []string{
	dataset.ColCNR,
	dataset.ColDisposalDays,
	dataset.ColTotalHearings,
	dataset.ColFilingYear,
}

// PredictionInputs returns the columns the disposal estimate reads, or a
// *dataset.MissingColumnsError naming what the cleaned cases lack
func PredictionInputs(cases *dataset.Table) (*dataset.Table, error) {
	if err := dataset.Require(cases, PredictionColumns...); err != nil {
		return nil, err
	}
	return cases.Select(PredictionColumns...), nil
}

// Matrix is a dense numeric view of a table. RowIndex maps each matrix row
// back to its row in the source table.
type Matrix struct {
	Columns  []string
	Rows     [][]float64
	RowIndex []int
}

// NumericMatrix builds the feature matrix for outlier detection. With no
// columns given it uses every column whose non-null cells are all numeric.
// Rows with a missing value in any selected column are left out.
func NumericMatrix(t *dataset.Table, columns ...string) (*Matrix, error) {
	if len(columns) == 0 {
		columns = NumericColumns(t)
		if len(columns) == 0 {
			return nil, dataset.ErrNoNumericColumns
		}
	} else if err := dataset.Require(t, columns...); err != nil {
		return nil, err
	}

	m := &Matrix{Columns: columns}
rows:
	for i := 0; i < t.Len(); i++ {
		row := make([]float64, len(columns))
		for j, col := range columns {
			f, ok := t.Get(i, col).Number()
			if !ok {
				continue rows
			}
			row[j] = f
		}
		m.Rows = append(m.Rows, row)
		m.RowIndex = append(m.RowIndex, i)
	}
	return m, nil
}

// NumericColumns lists the columns with at least one value where every
// non-null value is a number
func NumericColumns(t *dataset.Table) []string {
	var out []string
	for _, col := range t.Columns() {
		seen := false
		numeric := true
		for i := 0; i < t.Len(); i++ {
			v := t.Get(i, col)
			if v.IsNull() {
				continue
			}
			if _, ok := v.Number(); !ok {
				numeric = false
				break
			}
			seen = true
		}
		if seen && numeric {
			out = append(out, col)
		}
	}
	return out
}

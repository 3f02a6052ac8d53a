// Package dataset loads, normalizes, cleans and joins the cases and hearings
// tables that back the dashboard.
//
// Tables handed out by this package are never mutated after construction.
// Every cleaning step works on a copy, so a cached table can be shared by
// concurrent readers.
package dataset

import "strconv"

// Table is an in-memory, column-named table of cells
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// NewTable creates an empty table with the given header. Duplicate names get
// a ".1", ".2" suffix, the way pandas mangles repeated CSV headers.
func NewTable(columns []string) *Table {
	t := &Table{
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, name := range columns {
		t.addColumnName(name)
	}
	return t
}

func (t *Table) addColumnName(name string) int {
	unique := name
	for n := 1; ; n++ {
		if _, taken := t.index[unique]; !taken {
			break
		}
		unique = name + "." + strconv.Itoa(n)
	}
	t.index[unique] = len(t.columns)
	t.columns = append(t.columns, unique)
	return len(t.columns) - 1
}

// Columns returns a copy of the header
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Has reports whether the column exists
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Missing returns the names from want that the table lacks, in order
func (t *Table) Missing(want ...string) []string {
	var missing []string
	for _, name := range want {
		if !t.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Append adds a row. Short rows are padded with nulls and long rows truncated.
func (t *Table) Append(values []Value) {
	row := make([]Value, len(t.columns))
	copy(row, values)
	t.rows = append(t.rows, row)
}

// Get returns the cell at row i for the named column, or null when the
// column does not exist
func (t *Table) Get(i int, column string) Value {
	j, ok := t.index[column]
	if !ok {
		return Null()
	}
	return t.rows[i][j]
}

// Row returns a read-only accessor for row i
func (t *Table) Row(i int) Row {
	return Row{table: t, i: i}
}

// Values returns a deep copy of all rows
func (t *Table) Values() [][]Value {
	out := make([][]Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = append([]Value(nil), row...)
	}
	return out
}

// Clone returns an independent copy of the table
func (t *Table) Clone() *Table {
	c := &Table{
		columns: t.Columns(),
		index:   make(map[string]int, len(t.index)),
		rows:    t.Values(),
	}
	for k, v := range t.index {
		c.index[k] = v
	}
	return c
}

// Filter returns a new table holding the rows for which keep returns true
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := NewTable(t.columns)
	for i := range t.rows {
		if keep(t.Row(i)) {
			out.rows = append(out.rows, append([]Value(nil), t.rows[i]...))
		}
	}
	return out
}

// Select returns a new table restricted to the given columns. Unknown columns
// are skipped.
func (t *Table) Select(columns ...string) *Table {
	var keep []string
	var idx []int
	for _, name := range columns {
		if j, ok := t.index[name]; ok {
			keep = append(keep, name)
			idx = append(idx, j)
		}
	}
	out := NewTable(keep)
	for _, row := range t.rows {
		r := make([]Value, len(idx))
		for k, j := range idx {
			r[k] = row[j]
		}
		out.rows = append(out.rows, r)
	}
	return out
}

// Head returns a new table holding at most the first n rows
func (t *Table) Head(n int) *Table {
	if n > len(t.rows) || n < 0 {
		n = len(t.rows)
	}
	out := NewTable(t.columns)
	for _, row := range t.rows[:n] {
		out.rows = append(out.rows, append([]Value(nil), row...))
	}
	return out
}

// WithColumn returns a copy of t with a column computed from each row. An
// existing column of that name is replaced.
func (t *Table) WithColumn(name string, fn func(Row) Value) *Table {
	values := make([]Value, len(t.rows))
	for i := range values {
		values[i] = fn(t.Row(i))
	}
	out := t.Clone()
	out.setColumn(name, values)
	return out
}

// setColumn replaces or appends a column. Only used on tables this package
// has just copied.
func (t *Table) setColumn(name string, values []Value) {
	j, ok := t.index[name]
	if !ok {
		j = t.addColumnName(name)
		for i := range t.rows {
			t.rows[i] = append(t.rows[i], Null())
		}
	}
	for i := range t.rows {
		t.rows[i][j] = values[i]
	}
}

// mapColumn rewrites every cell of an existing column
func (t *Table) mapColumn(name string, fn func(Value) Value) {
	j, ok := t.index[name]
	if !ok {
		return
	}
	for i := range t.rows {
		t.rows[i][j] = fn(t.rows[i][j])
	}
}

func (t *Table) renameColumn(from, to string) {
	j, ok := t.index[from]
	if !ok {
		return
	}
	delete(t.index, from)
	t.columns[j] = to
	t.index[to] = j
}

// Row is a read-only view of one table row
type Row struct {
	table *Table
	i     int
}

// Index returns the row position within its table
func (r Row) Index() int {
	return r.i
}

// Get returns the named cell, or null when the column does not exist
func (r Row) Get(column string) Value {
	return r.table.Get(r.i, column)
}

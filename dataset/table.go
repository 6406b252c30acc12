package dataset

import (
	"gonum.org/v1/gonum/mat"

	"github.com/crossfold/crossfold/pkg/errors"
)

// Table is a tabular container: named float64 columns over a dense matrix.
// Rows are observations. The combiner stacks per-fold Table fragments
// row-wise, so Table is also the natural shape for per-fold tabular results.
type Table struct {
	columns []string
	data    *mat.Dense
}

// NewTable creates a table from column names and a backing matrix. The
// column count of data must match the number of names.
func NewTable(columns []string, data *mat.Dense) (*Table, error) {
	_, cols := data.Dims()
	if cols != len(columns) {
		return nil, errors.NewValidationError("columns",
			"column name count must match matrix width", len(columns))
	}
	seen := make(map[string]bool, len(columns))
	for _, name := range columns {
		if seen[name] {
			return nil, errors.NewValidationError("columns", "duplicate column name", name)
		}
		seen[name] = true
	}
	names := make([]string, len(columns))
	copy(names, columns)
	return &Table{columns: names, data: data}, nil
}

// NewTableFromRows creates a table from row-major values.
func NewTableFromRows(columns []string, rows [][]float64) (*Table, error) {
	flat := make([]float64, 0, len(rows)*len(columns))
	for _, row := range rows {
		if len(row) != len(columns) {
			return nil, errors.NewValidationError("rows",
				"row width must match column count", len(row))
		}
		flat = append(flat, row...)
	}
	return NewTable(columns, mat.NewDense(len(rows), len(columns), flat))
}

// Len returns the number of rows.
func (t *Table) Len() int {
	r, _ := t.data.Dims()
	return r
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// At returns the value at row i, column j.
func (t *Table) At(i, j int) float64 {
	return t.data.At(i, j)
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []float64 {
	_, cols := t.data.Dims()
	out := make([]float64, cols)
	mat.Row(out, i, t.data)
	return out
}

// Column returns a copy of the named column's values, or an error if the
// column does not exist.
func (t *Table) Column(name string) ([]float64, error) {
	for j, col := range t.columns {
		if col == name {
			rows, _ := t.data.Dims()
			out := make([]float64, rows)
			mat.Col(out, j, t.data)
			return out, nil
		}
	}
	return nil, errors.Newf("dataset: no column %q", name)
}

// Matrix exposes the backing data read-only.
func (t *Table) Matrix() mat.Matrix {
	return t.data
}

// Select returns a new table holding the rows at the given positions, in the
// given order, all columns preserved. No positions selects a zero-row table
// that keeps the column names.
func (t *Table) Select(indices []int) (*Table, error) {
	rows, cols := t.data.Dims()
	for _, idx := range indices {
		if idx < 0 || idx >= rows {
			return nil, errors.NewIndexRangeError("Table.Select", idx, rows)
		}
	}
	if len(indices) == 0 {
		return &Table{columns: t.Columns(), data: &mat.Dense{}}, nil
	}
	out := mat.NewDense(len(indices), cols, nil)
	for i, idx := range indices {
		for j := 0; j < cols; j++ {
			out.Set(i, j, t.data.At(idx, j))
		}
	}
	return NewTable(t.columns, out)
}

// SameColumns reports whether other has an identical column set, in order.
func (t *Table) SameColumns(other *Table) bool {
	if len(t.columns) != len(other.columns) {
		return false
	}
	for i, name := range t.columns {
		if other.columns[i] != name {
			return false
		}
	}
	return true
}

// Stack concatenates the given tables row-wise into a new table. All tables
// must share the first table's column set; the offending table's position is
// reported otherwise.
func Stack(tables []*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyDataset)
	}
	first := tables[0]
	total := 0
	for i, tbl := range tables {
		if !first.SameColumns(tbl) {
			return nil, errors.Newf("dataset: table %d columns %v differ from %v",
				i+1, tbl.columns, first.columns)
		}
		total += tbl.Len()
	}

	if total == 0 {
		return &Table{columns: first.Columns(), data: &mat.Dense{}}, nil
	}
	cols := len(first.columns)
	out := mat.NewDense(total, cols, nil)
	row := 0
	for _, tbl := range tables {
		n := tbl.Len()
		for i := 0; i < n; i++ {
			for j := 0; j < cols; j++ {
				out.Set(row, j, tbl.data.At(i, j))
			}
			row++
		}
	}
	return NewTable(first.columns, out)
}

// WithColumn returns a new table with an extra column appended. The value
// slice length must equal the row count.
func (t *Table) WithColumn(name string, values []float64) (*Table, error) {
	rows, cols := t.data.Dims()
	if len(values) != rows {
		return nil, errors.NewValidationError("values",
			"length must match row count", len(values))
	}
	if rows == 0 {
		return &Table{columns: append(t.Columns(), name), data: &mat.Dense{}}, nil
	}
	out := mat.NewDense(rows, cols+1, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, t.data.At(i, j))
		}
		out.Set(i, cols, values[i])
	}
	return NewTable(append(t.Columns(), name), out)
}

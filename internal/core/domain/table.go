package domain

// Table is a raw tabular dataset: a header row plus string cells. Empty
// cells stand for missing values. Classification and typing happen in
// the profile builder, not here.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of a header name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// ColumnValues returns the cells of one column in row order.
func (t *Table) ColumnValues(idx int) []string {
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			values = append(values, row[idx])
		} else {
			values = append(values, "")
		}
	}
	return values
}

package rowvalidator

import "strconv"

// Row is one record of a batch. Index is the row's address: failures report it
// and the engine addresses the row by it, so it must be unique within a batch.
// Values maps column names to cell values and is never modified.
type Row struct {
	Index  int
	Values map[string]any
}

// key is the engine entry key of the row.
func (r Row) key() string {
	return strconv.Itoa(r.Index)
}

// Rows builds a batch whose indexes are the 0-based positions of the records.
func Rows(records ...map[string]any) []Row {
	return RowsFrom(0, records...)
}

// RowsFrom builds a batch whose first row has index start, e.g. 2 for a sheet
// whose data starts below a heading row.
func RowsFrom(start int, records ...map[string]any) []Row {
	rows := make([]Row, len(records))
	for i, values := range records {
		rows[i] = Row{Index: start + i, Values: values}
	}
	return rows
}

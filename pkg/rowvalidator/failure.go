package rowvalidator

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Failure is one violated attribute on one row.
type Failure struct {
	// Row is the Index of the row the failure belongs to.
	Row int `json:"row" bson:"row"`
	// Attribute is the column's display name.
	Attribute string `json:"attribute" bson:"attribute"`
	// Errors are the messages for the attribute, in rule order.
	Errors []string `json:"errors" bson:"errors"`
	// Values is the row's raw record.
	Values map[string]any `json:"values" bson:"values"`
}

func (f Failure) Error() string {
	return fmt.Sprintf("row %d: %s", f.Row, strings.Join(f.Errors, " "))
}

// ToMap flattens the failure for reports and exports: the row's values plus the
// "row", "attribute" and "errors" keys, which win over columns of the same name.
func (f Failure) ToMap() map[string]any {
	m := make(map[string]any, len(f.Values)+3)
	maps.Copy(m, f.Values)
	m["row"] = f.Row
	m["attribute"] = f.Attribute
	m["errors"] = slices.Clone(f.Errors)
	return m
}

// rowsOf returns the distinct row indexes of failures in first-seen order.
func rowsOf(failures []Failure) []int {
	seen := make(map[int]bool, len(failures))
	rows := make([]int, 0, len(failures))
	for _, f := range failures {
		if !seen[f.Row] {
			seen[f.Row] = true
			rows = append(rows, f.Row)
		}
	}
	return rows
}

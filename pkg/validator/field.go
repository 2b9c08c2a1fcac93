package validator

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Entry is one addressable element of a validated collection, e.g. a row of a sheet.
// Its fields are addressed as "<Key>.<field>".
type Entry struct {
	Key    string
	Fields map[string]any
}

// dataset indexes entries by key for path lookups.
type dataset struct {
	entries []Entry
	index   map[string]int
}

func newDataset(entries []Entry) (*dataset, error) {
	d := &dataset{entries: entries, index: make(map[string]int, len(entries))}
	for i, e := range entries {
		if _, dup := d.index[e.Key]; dup {
			return nil, errors.Join(ErrDuplicateEntry, fmt.Errorf("key %q", e.Key))
		}
		d.index[e.Key] = i
	}
	return d, nil
}

func (d *dataset) has(key string) bool {
	_, ok := d.index[key]
	return ok
}

// lookup resolves a concrete path. The first segment selects the entry and the
// remainder is taken verbatim as the field name, so field names may contain dots.
func (d *dataset) lookup(path string) (any, bool) {
	key, field, hasField := strings.Cut(path, ".")
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	if !hasField {
		return d.entries[i].Fields, true
	}
	v, ok := d.entries[i].Fields[field]
	return v, ok
}

// Field is the value under validation together with its place in the collection.
type Field struct {
	// Path is the concrete attribute path, e.g. "3.email".
	Path string
	// Name is the field name inside its entry.
	Name    string
	Value   any
	Present bool
	Params  []string

	entry   string
	numeric bool
	data    *dataset
}

// Ref resolves a reference to another attribute. A leading "*." addresses a field of
// the same entry; anything else is an absolute path into the collection.
func (f Field) Ref(ref string) (any, bool) {
	return f.data.lookup(f.resolve(ref))
}

func (f Field) resolve(ref string) string {
	if rest, ok := strings.CutPrefix(ref, "*."); ok {
		return f.entry + "." + rest
	}
	return ref
}

// Column yields the non-empty values of the same field in every other entry.
func (f Field) Column() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, e := range f.data.entries {
			if e.Key == f.entry {
				continue
			}
			v, ok := e.Fields[f.Name]
			if isEmpty(v, ok) {
				continue
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Numeric reports whether the field's rule list declares numeric or integer, which
// makes size rules compare numeric strings by value instead of length.
func (f Field) Numeric() bool {
	return f.numeric
}

func isEmpty(v any, present bool) bool {
	if !present || v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// isNumber reports whether v holds a Go numeric type.
func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// toFloat converts numeric types and numeric strings.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

// stringify renders a cell value the way it is compared against rule parameters.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// dateLayouts are tried in order by the date rules.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

func toTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

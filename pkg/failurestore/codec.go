package failurestore

import (
	"bytes"
	"encoding/json"
	"io"
)

// DecodeRecord reads one JSON-encoded Record from r. Numbers in the row values
// are decoded with UseNumber and normalized: integral values become int64, the
// rest float64, so integer cells do not come back as float64.
func DecodeRecord(r io.Reader, rec *Record) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(rec); err != nil {
		return err
	}
	rec.Failure.Values = normalizeMap(rec.Failure.Values)
	return nil
}

// UnmarshalRecord is DecodeRecord over a byte slice.
func UnmarshalRecord(data []byte, rec *Record) error {
	return DecodeRecord(bytes.NewReader(data), rec)
}

// UnmarshalValues decodes a JSON object of row values with the same number
// handling as DecodeRecord.
func UnmarshalValues(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return nil, err
	}
	return normalizeMap(values), nil
}

func normalizeMap(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = normalize(v)
	}
	return m
}

func normalize(v any) any {
	switch v := v.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		// out of float64 range
		return v.String()
	case map[string]any:
		return normalizeMap(v)
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v
	}
	return v
}

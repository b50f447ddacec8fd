package model

import (
	"bytes"
	"encoding/json"
)

// Record is a single recipe row with every column of the source file.
// Columns and Values are parallel slices in header order; values keep the
// type inferred at load time (int64, float64, string or nil for empty cells).
type Record struct {
	Columns []string
	Values  []interface{}
}

// Get returns the value stored under the given column name.
func (r Record) Get(column string) (interface{}, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// MarshalJSON encodes the record as an object whose keys follow header order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, column := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(column)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.Values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

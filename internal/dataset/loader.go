package dataset

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/gcbaptista/diet-insights/internal/errors"
)

// missingMarkers are cell values treated as "no value", matching the usual
// spreadsheet and dataframe NA spellings.
var missingMarkers = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"n/a":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
	"#N/A": true,
}

// Load reads the CSV file at path into a Table validated against schema
func Load(path string, schema Schema) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f, path, schema)
}

// Parse reads CSV data from r. source is only used in error messages.
func Parse(r io.Reader, source string, schema Schema) (*Table, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperrors.NewDatasetError(source, "file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", apperrors.NewDatasetError(source, err.Error()))
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = h
	}

	var cells [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if stderrors.As(err, &parseErr) {
				return nil, apperrors.NewDatasetError(source, fmt.Sprintf("line %d: %v", parseErr.Line, parseErr.Err))
			}
			return nil, apperrors.NewDatasetError(source, err.Error())
		}
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		cells = append(cells, row)
	}

	t, err := NewTable(header, cells, schema)
	if err != nil {
		return nil, err
	}
	t.source = source
	return t, nil
}

// NewTable types and validates raw cells. Every row must have one cell per header.
func NewTable(header []string, cells [][]string, schema Schema) (*Table, error) {
	if err := validateHeader(header, schema); err != nil {
		return nil, err
	}
	for i, row := range cells {
		if len(row) != len(header) {
			return nil, apperrors.NewDatasetError("", fmt.Sprintf("row %d has %d fields, expected %d", i+1, len(row), len(header)))
		}
	}

	t := &Table{
		schema:  schema,
		columns: make([]Column, len(header)),
		rows:    make([][]interface{}, len(cells)),
		numeric: make([][]float64, len(header)),
	}
	for i := range cells {
		t.rows[i] = make([]interface{}, len(header))
	}

	for c, name := range header {
		kind := inferKind(cells, c)
		t.columns[c] = Column{Name: name, Kind: kind}
		if kind.IsNumeric() {
			t.numeric[c] = make([]float64, len(cells))
		}
		for r, row := range cells {
			raw := row[c]
			if missingMarkers[raw] {
				t.rows[r][c] = nil
				if kind.IsNumeric() {
					t.numeric[c][r] = math.NaN()
				}
				continue
			}
			switch kind {
			case KindInt:
				v, _ := strconv.ParseInt(raw, 10, 64)
				t.rows[r][c] = v
				t.numeric[c][r] = float64(v)
			case KindFloat:
				v, _ := strconv.ParseFloat(raw, 64)
				t.rows[r][c] = v
				t.numeric[c][r] = v
			default:
				t.rows[r][c] = raw
			}
		}
	}

	if err := t.bindRequired(header, cells); err != nil {
		return nil, err
	}
	return t, nil
}

func validateHeader(header []string, schema Schema) error {
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		if h == "" {
			return apperrors.NewDatasetError("", "header contains an empty column name")
		}
		if seen[h] {
			return apperrors.NewDatasetError("", "duplicate column '"+h+"' in header")
		}
		seen[h] = true
	}
	for _, required := range []string{schema.DietType, schema.Protein, schema.Carbs, schema.Fat} {
		if !seen[required] {
			return apperrors.NewColumnNotFoundError(required)
		}
	}
	return nil
}

// bindRequired extracts the diet type and macronutrient columns, failing on
// any missing or non-numeric value in them.
func (t *Table) bindRequired(header []string, cells [][]string) error {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}

	dt := index[t.schema.DietType]
	t.dietType = make([]string, len(cells))
	for r, row := range cells {
		if missingMarkers[row[dt]] {
			return apperrors.NewDatasetError("", fmt.Sprintf("column '%s' has an empty value at row %d", t.schema.DietType, r+1))
		}
		t.dietType[r] = row[dt]
	}

	for _, m := range Macros {
		name := t.schema.macroColumn(m)
		c := index[name]
		if len(cells) == 0 {
			t.columns[c].Kind = KindFloat
			t.numeric[c] = []float64{}
		}
		if !t.columns[c].Kind.IsNumeric() {
			r, v := firstNonNumeric(cells, c)
			return apperrors.NewColumnNotNumericError(name, r, v)
		}
		values := t.numeric[c]
		for r, v := range values {
			if math.IsNaN(v) {
				return apperrors.NewColumnNotNumericError(name, r+1, "")
			}
		}
		t.macros[m] = values
	}
	return nil
}

// inferKind picks the narrowest kind that fits every present value of column c.
// A column with no present values is a string column.
func inferKind(cells [][]string, c int) Kind {
	kind := KindInt
	present := false
	for _, row := range cells {
		raw := row[c]
		if missingMarkers[raw] {
			continue
		}
		present = true
		if kind == KindInt {
			if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
				continue
			}
			kind = KindFloat
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
			return KindString
		}
	}
	if !present {
		return KindString
	}
	return kind
}

func firstNonNumeric(cells [][]string, c int) (int, string) {
	for r, row := range cells {
		raw := row[c]
		if missingMarkers[raw] {
			continue
		}
		if v, err := strconv.ParseFloat(raw, 64); err != nil || math.IsInf(v, 0) {
			return r + 1, raw
		}
	}
	return 0, ""
}

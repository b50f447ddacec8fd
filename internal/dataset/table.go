// Package dataset holds the immutable in-memory recipe table.
// A Table is built once from a flat file and is safe for concurrent reads;
// nothing in this package mutates a Table after construction.
package dataset

import (
	"sort"

	"github.com/gcbaptista/diet-insights/model"
)

// AllDietTypes is the filter value that selects every row
const AllDietTypes = "All"

// Kind is the value type inferred for a column at load time
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

// IsNumeric reports whether values of this kind take part in numeric analysis
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat
}

// Column describes one column of the source file
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Macro identifies one of the three macronutrient columns
type Macro int

const (
	Protein Macro = iota
	Carbs
	Fat
)

// Macros lists the macronutrients in their canonical display order
var Macros = []Macro{Protein, Carbs, Fat}

func (m Macro) String() string {
	switch m {
	case Protein:
		return "Protein"
	case Carbs:
		return "Carbs"
	default:
		return "Fat"
	}
}

// Schema names the header of each required column in the source file
type Schema struct {
	DietType string `yaml:"diet_type"`
	Protein  string `yaml:"protein"`
	Carbs    string `yaml:"carbs"`
	Fat      string `yaml:"fat"`
}

// DefaultSchema matches the headers of the All Diets dataset
func DefaultSchema() Schema {
	return Schema{
		DietType: "Diet Type",
		Protein:  "Protein",
		Carbs:    "Carbs",
		Fat:      "Fat",
	}
}

// macroColumn returns the header used for a macronutrient
func (s Schema) macroColumn(m Macro) string {
	switch m {
	case Protein:
		return s.Protein
	case Carbs:
		return s.Carbs
	default:
		return s.Fat
	}
}

// Table is the immutable recipe table
type Table struct {
	source   string
	schema   Schema
	columns  []Column
	rows     [][]interface{}
	dietType []string
	macros   [3][]float64
	numeric  [][]float64 // per column, NaN for missing; nil for string columns
}

// Source returns the path or label the table was loaded from
func (t *Table) Source() string {
	return t.source
}

// Schema returns the required column mapping the table was validated against
func (t *Table) Schema() Schema {
	return t.schema
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Columns returns a copy of the column descriptors in header order
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// NumericColumns returns the names and values of every numeric column in header order.
// Missing cells are NaN. The returned slices are copies.
func (t *Table) NumericColumns() ([]string, [][]float64) {
	var names []string
	var values [][]float64
	for i, col := range t.columns {
		if !col.Kind.IsNumeric() {
			continue
		}
		names = append(names, col.Name)
		values = append(values, append([]float64(nil), t.numeric[i]...))
	}
	return names, values
}

// All returns a view over every row
func (t *Table) All() View {
	return View{table: t}
}

// Filter returns the rows whose diet type equals dietType.
// AllDietTypes selects every row; unknown values select nothing.
func (t *Table) Filter(dietType string) View {
	if dietType == AllDietTypes {
		return t.All()
	}
	idx := make([]int, 0)
	for i, dt := range t.dietType {
		if dt == dietType {
			idx = append(idx, i)
		}
	}
	return View{table: t, idx: idx, filtered: true}
}

// DietTypeCounts counts rows per distinct diet type, largest first, ties alphabetical
func (t *Table) DietTypeCounts() []model.DietTypeCount {
	counts := make(map[string]int)
	for _, dt := range t.dietType {
		counts[dt]++
	}
	out := make([]model.DietTypeCount, 0, len(counts))
	for dt, n := range counts {
		out = append(out, model.DietTypeCount{DietType: dt, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].DietType < out[j].DietType
	})
	return out
}

// View is a read-only selection of table rows in table order
type View struct {
	table    *Table
	idx      []int
	filtered bool
}

// Len returns the number of selected rows
func (v View) Len() int {
	if !v.filtered {
		return v.table.Len()
	}
	return len(v.idx)
}

func (v View) row(i int) int {
	if !v.filtered {
		return i
	}
	return v.idx[i]
}

// Macro returns a copy of one macronutrient column for the selected rows
func (v View) Macro(m Macro) []float64 {
	src := v.table.macros[m]
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = src[v.row(i)]
	}
	return out
}

// DietTypes returns the diet type label of each selected row
func (v View) DietTypes() []string {
	out := make([]string, v.Len())
	for i := range out {
		out[i] = v.table.dietType[v.row(i)]
	}
	return out
}

// Records returns up to limit selected rows as full records; limit <= 0 returns all
func (v View) Records(limit int) []model.Record {
	n := v.Len()
	if limit > 0 && n > limit {
		n = limit
	}
	names := make([]string, len(v.table.columns))
	for i, col := range v.table.columns {
		names[i] = col.Name
	}
	out := make([]model.Record, 0, n)
	for i := 0; i < n; i++ {
		values := make([]interface{}, len(names))
		copy(values, v.table.rows[v.row(i)])
		out = append(out, model.Record{Columns: names, Values: values})
	}
	return out
}

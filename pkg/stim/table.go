package stim

// Column names of a flattened provenance table, in order. The display
// string and parent link of each entry are deliberately excluded: the
// table is the tabular export surface, not a serialization of the chain.
var tableColumns = []string{
	"source_name",
	"source_file",
	"source_class",
	"result_name",
	"result_file",
	"result_class",
	"transformer_class",
	"transformer_params",
}

// Columns returns the column names of a flattened provenance table.
func Columns() []string {
	cols := make([]string, len(tableColumns))
	copy(cols, tableColumns)
	return cols
}

// Table holds the flattened form of a provenance chain: one row per
// transformation, earliest first. Row values are positionally aligned
// with Columns; transformer_params is a map[string]any, everything else
// a string.
type Table struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

package engine

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// SalesTable holds the loaded CSV in columnar form.
// Every column is a nullable Arrow string column; typed views are parsed on
// demand and never written back.
type SalesTable struct {
	schema  *arrow.Schema
	records []arrow.Record
	rows    int
}

func (t *SalesTable) Columns() []string {
	fields := t.schema.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func (t *SalesTable) NumRows() int { return t.rows }

// Release frees the Arrow buffers. The table must not be used afterwards.
func (t *SalesTable) Release() {
	for _, rec := range t.records {
		rec.Release()
	}
	t.records = nil
}

// column is a flattened view of one string column across all batches.
type column struct {
	name   string
	values []string
	valid  []bool
}

func (t *SalesTable) column(name string) (*column, error) {
	idx := -1
	for i, f := range t.schema.Fields() {
		if f.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}

	col := &column{
		name:   name,
		values: make([]string, 0, t.rows),
		valid:  make([]bool, 0, t.rows),
	}
	for _, rec := range t.records {
		arr, ok := rec.Column(idx).(*array.String)
		if !ok {
			return nil, fmt.Errorf("column %q: unexpected arrow type %s", name, rec.Column(idx).DataType())
		}
		for i := 0; i < arr.Len(); i++ {
			if arr.IsNull(i) {
				col.values = append(col.values, "")
				col.valid = append(col.valid, false)
				continue
			}
			col.values = append(col.values, arr.Value(i))
			col.valid = append(col.valid, true)
		}
	}
	return col, nil
}

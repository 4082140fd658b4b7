// Package arrowio reads parquet files into Apache Arrow backed tables.
package arrowio

import (
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
)

// Table wraps an arrow.Table. The underlying columnar buffers are shared,
// never copied, and live for the lifetime of the process.
type Table struct {
	tbl arrow.Table
}

// ReadTable deserializes the parquet file at path into an arrow-backed table.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mem := memory.DefaultAllocator
	tbl, err := pqarrow.ReadTable(context.Background(), f, parquet.NewReaderProperties(mem), pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Table{tbl: tbl}, nil
}

func (t *Table) NumRows() int64 { return t.tbl.NumRows() }

func (t *Table) NumCols() int { return int(t.tbl.NumCols()) }

func (t *Table) ColumnNames() []string {
	fields := t.tbl.Schema().Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// Head materializes up to n leading rows as column-name keyed maps. Arrow
// stores each column as a list of chunks, so rows are assembled column by
// column.
func (t *Table) Head(n int) ([]map[string]interface{}, error) {
	if n < 0 {
		n = 0
	}
	if int64(n) > t.tbl.NumRows() {
		n = int(t.tbl.NumRows())
	}

	rows := make([]map[string]interface{}, n)
	for i := range rows {
		rows[i] = make(map[string]interface{}, t.NumCols())
	}

	for c := 0; c < t.NumCols(); c++ {
		col := t.tbl.Column(c)
		name := col.Name()

		row := 0
		for _, chunk := range col.Data().Chunks() {
			for i := 0; i < chunk.Len() && row < n; i++ {
				v, err := cellValue(chunk, i)
				if err != nil {
					return nil, fmt.Errorf("column %s: %w", name, err)
				}
				rows[row][name] = v
				row++
			}
			if row >= n {
				break
			}
		}
	}
	return rows, nil
}

func cellValue(a arrow.Array, i int) (interface{}, error) {
	if a.IsNull(i) {
		return nil, nil
	}
	switch arr := a.(type) {
	case *array.Boolean:
		return arr.Value(i), nil
	case *array.Int32:
		return arr.Value(i), nil
	case *array.Int64:
		return arr.Value(i), nil
	case *array.Float32:
		return arr.Value(i), nil
	case *array.Float64:
		return arr.Value(i), nil
	case *array.String:
		return arr.Value(i), nil
	case *array.LargeString:
		return arr.Value(i), nil
	default:
		return nil, fmt.Errorf("unsupported arrow type %s", a.DataType())
	}
}

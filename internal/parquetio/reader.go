// Package parquetio reads parquet files into row-materialized tables using
// the parquet-go reader.
package parquetio

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
)

// Table holds every row of a parquet file materialized in memory, in file
// order. Cells are decoded to Go scalars up front so reads never touch the
// file again.
type Table struct {
	columns []string
	rows    [][]interface{}
}

// ReadTable deserializes the parquet file at path.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	fields := pf.Schema().Fields()
	t := &Table{columns: make([]string, len(fields))}
	for i, fld := range fields {
		t.columns[i] = fld.Name()
	}

	buf := make([]parquet.Row, 256)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		if err := t.readGroup(rows, buf); err != nil {
			rows.Close()
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		rows.Close()
	}
	return t, nil
}

func (t *Table) readGroup(rows parquet.Rows, buf []parquet.Row) error {
	for {
		n, err := rows.ReadRows(buf)
		for _, r := range buf[:n] {
			rec := make([]interface{}, len(t.columns))
			for _, v := range r {
				rec[v.Column()] = cellValue(v)
			}
			t.rows = append(t.rows, rec)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (t *Table) NumRows() int64 { return int64(len(t.rows)) }

func (t *Table) NumCols() int { return len(t.columns) }

func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	copy(names, t.columns)
	return names
}

// Head returns up to n leading rows as column-name keyed maps.
func (t *Table) Head(n int) ([]map[string]interface{}, error) {
	if n < 0 {
		n = 0
	}
	if n > len(t.rows) {
		n = len(t.rows)
	}

	out := make([]map[string]interface{}, n)
	for i := 0; i < n; i++ {
		m := make(map[string]interface{}, len(t.columns))
		for c, name := range t.columns {
			m[name] = t.rows[i][c]
		}
		out[i] = m
	}
	return out, nil
}

func cellValue(v parquet.Value) interface{} {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return v.Int32()
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return v.Float()
	case parquet.Double:
		return v.Double()
	default:
		return v.String()
	}
}

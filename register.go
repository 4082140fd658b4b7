package babynames

import (
	"fmt"

	"github.com/ssa-data/babynames/internal/arrowio"
	"github.com/ssa-data/babynames/internal/parquetio"
)

// defaultRegistry holds every reader compiled into this build. Each reader
// is wrapped so any failure surfaces as ErrDeserialize.
func defaultRegistry(logger Logger) *Registry {
	r := NewRegistry(logger)
	r.Register(Arrow, wrapReader(func(path string) (Table, error) {
		return arrowio.ReadTable(path)
	}))
	r.Register(Parquet, wrapReader(func(path string) (Table, error) {
		return parquetio.ReadTable(path)
	}))
	return r
}

func wrapReader(read func(string) (Table, error)) ReaderFunc {
	return func(path string) (Table, error) {
		t, err := read(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDeserialize, path, err)
		}
		return t, nil
	}
}

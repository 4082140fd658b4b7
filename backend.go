package babynames

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

// ID identifies one of the supported parquet backends.
type ID string

const (
	// Arrow reads parquet through the Apache Arrow columnar reader.
	Arrow ID = "arrow"
	// Parquet reads parquet through the parquet-go row reader.
	Parquet ID = "parquet"
)

// recognized lists every supported backend. The fallback scan in Resolve
// walks this slice front to back, so the order is part of the contract.
var recognized = []ID{Arrow, Parquet}

// DefaultBackend is used when EnvBackend is unset or unrecognized.
const DefaultBackend = Arrow

// EnvBackend names the environment variable selecting the preferred backend.
// Recognized values are "arrow" and "parquet" (case-insensitive).
const EnvBackend = "BABYNAMES_BACKEND"

var (
	// ErrInvalidBackend marks a configured backend name outside the
	// recognized set. Recovered by substituting DefaultBackend.
	ErrInvalidBackend = errors.New("unrecognized backend")

	// ErrBackendUnavailable marks a recognized backend that is not
	// registered in this build. Recovered by the fallback scan.
	ErrBackendUnavailable = errors.New("backend not available")

	// ErrNoBackend is returned when no recognized backend is registered.
	ErrNoBackend = errors.New("no parquet backend available")

	// ErrDeserialize wraps every failure to turn a parquet file into a
	// Table: missing file, unreadable file, or malformed data.
	ErrDeserialize = errors.New("cannot deserialize parquet file")
)

// Table is an immutable in-memory tabular dataset.
type Table interface {
	NumRows() int64
	NumCols() int
	ColumnNames() []string
	// Head returns up to n leading rows as column-name keyed maps.
	Head(n int) ([]map[string]interface{}, error)
}

// ReaderFunc deserializes one parquet file into a Table.
type ReaderFunc func(path string) (Table, error)

// Logger receives the non-fatal warnings emitted during backend resolution
// and dataset loading.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// stdLogger writes warnings through the standard logger.
type stdLogger struct{}

func (stdLogger) Warnf(format string, args ...interface{}) {
	log.Printf("WARNING: "+format, args...)
}

// Registry maps backend IDs to their readers. A backend is available when it
// is registered; the stock registry is populated with every reader compiled
// into the binary, so availability mirrors what the build actually contains.
type Registry struct {
	readers map[ID]ReaderFunc
	logger  Logger
}

// NewRegistry returns an empty registry. A nil logger falls back to the
// standard logger.
func NewRegistry(logger Logger) *Registry {
	if logger == nil {
		logger = stdLogger{}
	}
	return &Registry{
		readers: make(map[ID]ReaderFunc),
		logger:  logger,
	}
}

// Register binds a reader to a backend ID, replacing any previous binding.
func (r *Registry) Register(id ID, read ReaderFunc) {
	r.readers[id] = read
}

// Reader returns the reader registered for id.
func (r *Registry) Reader(id ID) (ReaderFunc, bool) {
	read, ok := r.readers[id]
	return read, ok
}

// Available reports, for every recognized backend, whether it is registered.
func (r *Registry) Available() map[ID]bool {
	m := make(map[ID]bool, len(recognized))
	for _, id := range recognized {
		_, ok := r.readers[id]
		m[id] = ok
	}
	return m
}

// Resolve picks the backend to use from a preference string (normally the
// value of EnvBackend), the fixed default, and what is registered.
//
// An empty preference means DefaultBackend. An unrecognized preference is
// substituted with DefaultBackend after a warning. If the resulting backend
// is registered it wins; otherwise the first registered backend in
// declaration order is returned, again with a warning. With nothing
// registered, Resolve fails with ErrNoBackend.
func (r *Registry) Resolve(preference string) (ID, error) {
	id := DefaultBackend
	if preference != "" {
		id = ID(strings.ToLower(preference))
	}

	if !isRecognized(id) {
		r.logger.Warnf("%v: %s=%q, using default: %s", ErrInvalidBackend, EnvBackend, preference, DefaultBackend)
		id = DefaultBackend
	}

	if _, ok := r.readers[id]; ok {
		return id, nil
	}

	for _, alt := range recognized {
		if _, ok := r.readers[alt]; ok {
			r.logger.Warnf("%v: %s, switching to %s", ErrBackendUnavailable, id, alt)
			return alt, nil
		}
	}

	return "", fmt.Errorf("%w: install at least one of %v", ErrNoBackend, recognized)
}

func isRecognized(id ID) bool {
	for _, r := range recognized {
		if r == id {
			return true
		}
	}
	return false
}

// Package babynames exposes the bundled SSA datasets — baby names, SSN
// applicants, live births and cohort life tables — as ready-made in-memory
// tables, deserialized from parquet through one of two interchangeable
// backends (Apache Arrow or parquet-go).
//
// The backend is resolved once per load from the BABYNAMES_BACKEND
// environment variable, falling back deterministically when the preferred
// backend is not compiled in. Either all four datasets load, or none do.
package babynames

import (
	"os"
	"path/filepath"
	"sync"
)

// Dataset names, which are also the parquet file stems under the data
// directory.
const (
	NameBabynames  = "babynames"
	NameApplicants = "applicants"
	NameBirths     = "births"
	NameLifetables = "lifetables"
)

// Names lists the bundled datasets in load order.
var Names = []string{NameBabynames, NameApplicants, NameBirths, NameLifetables}

// EnvDataDir overrides the directory holding the bundled parquet files.
const EnvDataDir = "BABYNAMES_DATA_DIR"

const defaultDataDir = "data"

// Datasets is the result of one load attempt. Either Err is nil and all
// four tables are populated, or Err is set and all four are nil — there is
// no partial state.
type Datasets struct {
	Babynames  Table
	Applicants Table
	Births     Table
	Lifetables Table

	// Backend is the resolved backend identifier, empty when resolution
	// itself failed.
	Backend ID

	// Available reports which recognized backends were registered at
	// load time.
	Available map[ID]bool

	// Docs holds the static documentation for each dataset, keyed by
	// name. Populated even when the tables failed to load.
	Docs map[string]DatasetDoc

	// Err records why loading failed. Nil means every table loaded.
	Err error
}

// OK reports whether all four datasets loaded.
func (d *Datasets) OK() bool { return d.Err == nil }

// Table returns the dataset with the given name, or nil for unknown names
// and failed loads.
func (d *Datasets) Table(name string) Table {
	switch name {
	case NameBabynames:
		return d.Babynames
	case NameApplicants:
		return d.Applicants
	case NameBirths:
		return d.Births
	case NameLifetables:
		return d.Lifetables
	}
	return nil
}

type config struct {
	dir        string
	preference string
	getenv     func(string) string
	logger     Logger
	registry   *Registry
}

// Option customizes a Load call.
type Option func(*config)

// WithDir sets the directory holding the parquet files, overriding both the
// default and EnvDataDir.
func WithDir(dir string) Option {
	return func(c *config) { c.dir = dir }
}

// WithBackend sets the preferred backend directly, overriding EnvBackend.
// Resolution still falls back when the preference is unavailable.
func WithBackend(id ID) Option {
	return func(c *config) { c.preference = string(id) }
}

// WithEnv replaces os.Getenv as the configuration source.
func WithEnv(getenv func(string) string) Option {
	return func(c *config) { c.getenv = getenv }
}

// WithLogger replaces the standard logger as the warning sink.
func WithLogger(l Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithRegistry replaces the stock backend registry.
func WithRegistry(r *Registry) Option {
	return func(c *config) { c.registry = r }
}

// Load resolves a backend and deserializes the four bundled datasets.
//
// Load never returns an error directly: any failure — no backend, a missing
// or corrupt file — is reported as a warning and recorded on the returned
// Datasets with all four tables left nil. Loading bundled data must never
// be fatal, even on a broken install.
func Load(opts ...Option) *Datasets {
	cfg := config{
		getenv: os.Getenv,
		logger: stdLogger{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	reg := cfg.registry
	if reg == nil {
		reg = defaultRegistry(cfg.logger)
	}

	d := &Datasets{Available: reg.Available()}

	// Docs are static metadata; attach them regardless of load outcome.
	docs, err := Catalog()
	if err != nil {
		cfg.logger.Warnf("failed to load datasets: %v", err)
		d.Err = err
		return d
	}
	d.Docs = docs

	preference := cfg.preference
	if preference == "" {
		preference = cfg.getenv(EnvBackend)
	}

	id, err := reg.Resolve(preference)
	if err != nil {
		cfg.logger.Warnf("failed to load datasets: %v", err)
		d.Err = err
		return d
	}
	d.Backend = id

	read, _ := reg.Reader(id)

	dir := cfg.dir
	if dir == "" {
		dir = cfg.getenv(EnvDataDir)
	}
	if dir == "" {
		dir = defaultDataDir
	}

	// Tables are only bound after every file deserialized: all load, or
	// none do.
	tables := make([]Table, len(Names))
	for i, name := range Names {
		t, err := read(filepath.Join(dir, name+".parquet"))
		if err != nil {
			cfg.logger.Warnf("failed to load datasets: %v", err)
			d.Err = err
			return d
		}
		tables[i] = t
	}

	d.Babynames = tables[0]
	d.Applicants = tables[1]
	d.Births = tables[2]
	d.Lifetables = tables[3]
	return d
}

var (
	defaultOnce sync.Once
	defaultSet  *Datasets
)

// Default loads the bundled datasets once for the whole process and returns
// the same result on every call. Both outcomes are terminal: a failed load
// stays failed until the process restarts.
func Default() *Datasets {
	defaultOnce.Do(func() { defaultSet = Load() })
	return defaultSet
}

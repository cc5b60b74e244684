// Package importer reads bank statement exports into transactions.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/bastally/internal/model"
	"github.com/cleared-dev/bastally/internal/parse"
)

// Parser converts one statement export into transactions.
// name identifies the input in errors and in Transaction.Source.
type Parser interface {
	Parse(r io.Reader, name string) (Batch, error)
	Format() string
}

// Batch is the result of parsing one input. Rows that could not be read are
// reported in Skipped; they never abort the file.
type Batch struct {
	Transactions []model.Transaction
	Skipped      []parse.RowError
}

func (b *Batch) skip(err error, file string, line int) {
	var rowErr *parse.RowError
	if errors.As(err, &rowErr) {
		b.Skipped = append(b.Skipped, rowErr.At(file, line))
		return
	}
	b.Skipped = append(b.Skipped, parse.RowError{File: file, Line: line, Kind: parse.KindOf(err), Err: err})
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a statement file found by Scan.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered formats in sorted order.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Option configures DefaultRegistry.
type Option func(*options)

type options struct {
	lookAhead   int
	dateLayouts []string
}

// WithLookAhead sets how far the blocks parser searches for an amount.
func WithLookAhead(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.lookAhead = n
		}
	}
}

// WithDateLayouts sets the date layouts every parser tries, in order.
// An empty list keeps parse.DateLayouts.
func WithDateLayouts(layouts []string) Option {
	return func(o *options) {
		if len(layouts) > 0 {
			o.dateLayouts = layouts
		}
	}
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry(opts ...Option) *Registry {
	o := options{lookAhead: DefaultLookAhead}
	for _, opt := range opts {
		opt(&o)
	}
	r := NewRegistry()
	r.Register(&CSVParser{DateLayouts: o.dateLayouts})
	r.Register(&TextParser{DateLayouts: o.dateLayouts})
	r.Register(&BlocksParser{LookAhead: o.lookAhead, DateLayouts: o.dateLayouts})
	return r
}

// FormatFor guesses the parser format from a file name.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatText
}

// DefaultPatterns are the glob patterns Scan uses when none are configured.
var DefaultPatterns = []string{"*.csv", "*.txt"}

// Scan returns the files in dir matching any of patterns, sorted by path.
// A missing directory yields no files.
func Scan(dir string, patterns []string) ([]FileInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading statement dir: %w", err)
	}
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	seen := make(map[string]bool)
	var files []FileInfo
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, path := range matches {
			if seen[path] {
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", path, err)
			}
			if info.IsDir() {
				continue
			}
			seen[path] = true
			files = append(files, FileInfo{
				Name: info.Name(),
				Path: path,
				Size: info.Size(),
			})
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

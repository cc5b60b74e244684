// Package pipeline runs one BAS calculation: read every input, filter to the
// period, remove duplicates across files, classify and aggregate.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"

	"github.com/cleared-dev/bastally/internal/bas"
	"github.com/cleared-dev/bastally/internal/dedup"
	"github.com/cleared-dev/bastally/internal/importer"
	"github.com/cleared-dev/bastally/internal/logging"
	"github.com/cleared-dev/bastally/internal/model"
	"github.com/cleared-dev/bastally/internal/parse"
	"github.com/cleared-dev/bastally/internal/rules"
)

// Input is one statement file. An empty Format is guessed from the file name.
type Input struct {
	Path   string
	Format string
}

// Options configures a run.
type Options struct {
	Period   model.Period
	Rules    *rules.RuleSet
	Registry *importer.Registry
	Logger   logging.Logger
	// RunID tags log entries; generated when empty.
	RunID string
}

// Stats describes what happened to every input, so nothing is dropped silently.
type Stats struct {
	FilesRead     int
	SkippedFiles  []parse.FileError
	RowsParsed    int
	SkippedRows   map[parse.Kind]int
	RowErrors     []parse.RowError
	Duplicates    int
	OutsidePeriod int
	Classified    int
	// Coverage lists the date span of each file that yielded rows, in input order.
	Coverage []FileCoverage
	// Uncovered are the parts of the period no file spans.
	Uncovered []model.Period
}

// SkippedRowCount is the total of SkippedRows.
func (s Stats) SkippedRowCount() int {
	n := 0
	for _, c := range s.SkippedRows {
		n += c
	}
	return n
}

// Result is the outcome of a run.
type Result struct {
	RunID        string
	RulesVersion string
	Report       model.PeriodReport
	// Transactions are the in-period, de-duplicated rows ordered by date.
	Transactions []model.ClassifiedTransaction
	Stats        Stats
}

// Run processes inputs. Missing or unusable files are recorded in the stats
// and skipped; the result is returned even when every input was skipped.
// Only a cancelled context or a bad option fails the run.
func Run(ctx context.Context, inputs []Input, opts Options) (*Result, error) {
	if opts.Rules == nil {
		return nil, errors.New("pipeline: no rule set")
	}
	if opts.Registry == nil {
		opts.Registry = importer.DefaultRegistry()
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	log = log.WithFields(
		logging.F(logging.FieldRunID, opts.RunID),
		logging.F(logging.FieldPeriod, opts.Period.String()),
	)

	res := &Result{
		RunID:        opts.RunID,
		RulesVersion: opts.Rules.Version,
		Stats:        Stats{SkippedRows: make(map[parse.Kind]int)},
	}

	var inPeriod []model.Transaction
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run cancelled: %w", err)
		}
		txns, err := readInput(in, opts.Registry, &res.Stats, log)
		if err != nil {
			return nil, err
		}
		if c, ok := coverageOf(in.Path, txns); ok {
			res.Stats.Coverage = append(res.Stats.Coverage, c)
		}
		for _, txn := range txns {
			if opts.Period.Contains(txn.Date) {
				inPeriod = append(inPeriod, txn)
			} else {
				res.Stats.OutsidePeriod++
			}
		}
	}

	res.Stats.Uncovered = Gaps(res.Stats.Coverage, opts.Period)
	for _, gap := range res.Stats.Uncovered {
		log.Warn("Statements do not cover part of the period", logging.F(logging.FieldGap, gap.String()))
	}

	kept, removed := dedup.Dedup(inPeriod)
	res.Stats.Duplicates = removed
	if removed > 0 {
		log.Info("Removed duplicate rows", logging.F(logging.FieldCount, removed))
	}

	res.Transactions = make([]model.ClassifiedTransaction, 0, len(kept))
	for _, txn := range kept {
		c := rules.ClassifyTransaction(txn, opts.Rules)
		log.Debug("Classified transaction",
			logging.F(logging.FieldFile, txn.Source),
			logging.F(logging.FieldLine, txn.Line),
			logging.F(logging.FieldBucket, string(c.Bucket)))
		res.Transactions = append(res.Transactions, c)
	}
	res.Stats.Classified = len(res.Transactions)
	res.Report = bas.Aggregate(res.Transactions, opts.Period)

	log.Info("Processing complete",
		logging.F("files_read", res.Stats.FilesRead),
		logging.F("files_skipped", len(res.Stats.SkippedFiles)),
		logging.F("rows_parsed", res.Stats.RowsParsed),
		logging.F("rows_skipped", res.Stats.SkippedRowCount()),
		logging.F("duplicates", res.Stats.Duplicates),
		logging.F("classified", res.Stats.Classified))
	return res, nil
}

// readInput parses one file. File-level problems are recorded in stats and
// yield no rows; the returned error is reserved for misconfiguration.
func readInput(in Input, registry *importer.Registry, stats *Stats, log logging.Logger) ([]model.Transaction, error) {
	format := in.Format
	if format == "" {
		format = importer.FormatFor(in.Path)
	}
	p := registry.Get(format)
	if p == nil {
		return nil, fmt.Errorf("unknown input format %q (available: %v)", format, registry.Formats())
	}
	flog := log.WithFields(logging.F(logging.FieldFile, in.Path), logging.F(logging.FieldFormat, p.Format()))

	f, err := os.Open(in.Path)
	if err != nil {
		skipFile(stats, flog, in.Path, err)
		return nil, nil
	}
	defer f.Close()

	batch, err := p.Parse(f, in.Path)
	if err != nil {
		skipFile(stats, flog, in.Path, err)
		return nil, nil
	}

	stats.FilesRead++
	stats.RowsParsed += len(batch.Transactions)
	for _, rowErr := range batch.Skipped {
		stats.SkippedRows[rowErr.Kind]++
		stats.RowErrors = append(stats.RowErrors, rowErr)
		flog.Warn("Skipping row",
			logging.F(logging.FieldLine, rowErr.Line),
			logging.F(logging.FieldKind, string(rowErr.Kind)),
			logging.F(logging.FieldReason, rowErr.Error()))
	}
	flog.Debug("Read statement file", logging.F(logging.FieldCount, len(batch.Transactions)))
	return batch.Transactions, nil
}

func skipFile(stats *Stats, log logging.Logger, path string, err error) {
	var fe *parse.FileError
	if !errors.As(err, &fe) {
		fe = &parse.FileError{File: path, Kind: parse.KindOf(err), Err: err}
	}
	stats.SkippedFiles = append(stats.SkippedFiles, *fe)
	log.WithError(err).Warn("Skipping file", logging.F(logging.FieldKind, string(fe.Kind)))
}

// SortedKinds returns the row error kinds present in stats, in a stable order.
func (s Stats) SortedKinds() []parse.Kind {
	kinds := make([]parse.Kind, 0, len(s.SkippedRows))
	for k := range s.SkippedRows {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Package logging provides the structured logger used across bastally.
// Logs are written to stderr so reports on stdout stay machine-readable.
package logging

// Logger is a structured, levelled logger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	WithError(err error) Logger
	WithField(key string, value any) Logger
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for constructing a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Standard field names.
const (
	FieldFile   = "file_path"
	FieldLine   = "line"
	FieldFormat = "format"
	FieldReason = "reason"
	FieldKind   = "kind"
	FieldCount  = "count"
	FieldRunID  = "run_id"
	FieldPeriod = "period"
	FieldBucket = "bucket"
	FieldRules  = "rules_version"
	FieldGap    = "gap"
)

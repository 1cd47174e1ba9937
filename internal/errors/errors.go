// Package errors implements spec.md §7's typed error taxonomy
// (DiscoveryError/ParseError/ResolutionError/AnalysisError/CacheError/
// SerializationError/ConfigError), each carrying a stable scriptable
// code. Grounded on the teacher's internal/errors/errors.go: same method
// shapes (NewXError, fluent With* setters, Unwrap, Error), same per-type struct
// layout, generalized from the teacher's indexing/search-focused taxonomy
// to the seven types this spec's pipeline stages raise.
package errors

import (
	"fmt"
	"time"

	"github.com/standardbeagle/codeintel/internal/types"
)

// ErrorType is the stable, scriptable code surfaced in every Diagnostic
// (spec.md §7: "every error is reported exactly once with a stable code
// suitable for scripting").
type ErrorType string

const (
	ErrorTypeDiscovery     ErrorType = "discovery"
	ErrorTypeParse         ErrorType = "parse"
	ErrorTypeResolution    ErrorType = "resolution"
	ErrorTypeAnalysis      ErrorType = "analysis"
	ErrorTypeCache         ErrorType = "cache"
	ErrorTypeSerialization ErrorType = "serialization"
	ErrorTypeConfig        ErrorType = "config"
)

// DiscoveryError covers an unreadable path, permission denial, or broken
// symlink loop encountered during C1.
type DiscoveryError struct {
	Type        ErrorType
	FilePath    string
	Underlying  error
	Timestamp   time.Time
	Recoverable bool
}

func NewDiscoveryError(path string, err error) *DiscoveryError {
	return &DiscoveryError{Type: ErrorTypeDiscovery, FilePath: path, Underlying: err, Timestamp: time.Now()}
}

func (e *DiscoveryError) WithRecoverable(recoverable bool) *DiscoveryError {
	e.Recoverable = recoverable
	return e
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("%s failed for %s: %v", e.Type, e.FilePath, e.Underlying)
}

func (e *DiscoveryError) Unwrap() error { return e.Underlying }

// ParseError carries (path, span, language, message) for a syntax error
// in a source file (spec.md §7).
type ParseError struct {
	Type       ErrorType
	FileID     types.FileID
	FilePath   string
	Language   types.Language
	Line       int
	Column     int
	Token      string
	Underlying error
	Timestamp  time.Time
}

func NewParseError(fileID types.FileID, path string, lang types.Language, line, column int, token string, err error) *ParseError {
	return &ParseError{
		Type:       ErrorTypeParse,
		FileID:     fileID,
		FilePath:   path,
		Language:   lang,
		Line:       line,
		Column:     column,
		Token:      token,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s:%d:%d (near token %q): %v", e.FilePath, e.Line, e.Column, e.Token, e.Underlying)
}

func (e *ParseError) Unwrap() error { return e.Underlying }

// ResolutionError is an ambiguous symbol or unresolved reference;
// spec.md §7 downgrades these to a diagnostic when non-fatal, so
// Fatal defaults false and must be explicitly set.
type ResolutionError struct {
	Type       ErrorType
	FilePath   string
	Name       string
	Fatal      bool
	Underlying error
	Timestamp  time.Time
}

func NewResolutionError(path, name string, err error) *ResolutionError {
	return &ResolutionError{Type: ErrorTypeResolution, FilePath: path, Name: name, Underlying: err, Timestamp: time.Now()}
}

func (e *ResolutionError) WithFatal(fatal bool) *ResolutionError {
	e.Fatal = fatal
	return e
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("unresolved reference %q in %s: %v", e.Name, e.FilePath, e.Underlying)
}

func (e *ResolutionError) Unwrap() error { return e.Underlying }

// AnalysisError is an analyzer-specific failure: a timeout or an
// internal invariant violation in C7-C10.
type AnalysisError struct {
	Type       ErrorType
	Analyzer   string
	FilePath   string
	Timeout    bool
	Underlying error
	Timestamp  time.Time
}

func NewAnalysisError(analyzer, path string, err error) *AnalysisError {
	return &AnalysisError{Type: ErrorTypeAnalysis, Analyzer: analyzer, FilePath: path, Underlying: err, Timestamp: time.Now()}
}

func (e *AnalysisError) WithTimeout(timeout bool) *AnalysisError {
	e.Timeout = timeout
	return e
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("%s analysis failed for %s: %v", e.Analyzer, e.FilePath, e.Underlying)
}

func (e *AnalysisError) Unwrap() error { return e.Underlying }

// CacheError is a corrupt entry (auto-evicted) or a disk-full condition
// (surfaced, not retried forever).
type CacheError struct {
	Type        ErrorType
	Namespace   string
	Fingerprint string
	Evicted     bool
	Underlying  error
	Timestamp   time.Time
}

func NewCacheError(namespace, fingerprint string, err error) *CacheError {
	return &CacheError{Type: ErrorTypeCache, Namespace: namespace, Fingerprint: fingerprint, Underlying: err, Timestamp: time.Now()}
}

func (e *CacheError) WithEvicted(evicted bool) *CacheError {
	e.Evicted = evicted
	return e
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache error in %s/%s: %v", e.Namespace, e.Fingerprint, e.Underlying)
}

func (e *CacheError) Unwrap() error { return e.Underlying }

// SerializationError means an emitter produced an invalid escape
// sequence — spec.md §7 treats this as "should be impossible; treated
// as a bug" rather than a recoverable condition.
type SerializationError struct {
	Type       ErrorType
	Format     string
	Underlying error
	Timestamp  time.Time
}

func NewSerializationError(format string, err error) *SerializationError {
	return &SerializationError{Type: ErrorTypeSerialization, Format: format, Underlying: err, Timestamp: time.Now()}
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization to %s failed: %v", e.Format, e.Underlying)
}

func (e *SerializationError) Unwrap() error { return e.Underlying }

// ConfigError is an invalid option combination; spec.md §7: "fail fast
// at orchestrator entry."
type ConfigError struct {
	Type       ErrorType
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{Type: ErrorTypeConfig, Field: field, Value: value, Underlying: err, Timestamp: time.Now()}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

func (e *ConfigError) Unwrap() error { return e.Underlying }

// MultiError aggregates several errors raised in one stage (e.g. several
// workers each failing independently) into one reportable error.
type MultiError struct {
	Errors []error
}

func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

func (e *MultiError) Unwrap() []error { return e.Errors }

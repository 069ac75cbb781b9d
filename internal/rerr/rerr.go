// Package rerr defines the error kinds raised across recspec's analysis
// pipeline, so callers can branch on failure category with errors.As
// instead of parsing messages.
package rerr

import "fmt"

// Kind identifies a category of analysis failure.
type Kind string

// Error kinds recognized by the core, per the error-handling design.
const (
	NotAWavFile                Kind = "not_a_wav_file"
	MissingFmtChunk            Kind = "missing_fmt_chunk"
	TruncatedInput             Kind = "truncated_input"
	UnsupportedBitDepth        Kind = "unsupported_bit_depth"
	DecodeFailed               Kind = "decode_failed"
	AnalysisCancelled          Kind = "analysis_cancelled"
	InvalidPreset              Kind = "invalid_preset"
	PresetRequiresConfig       Kind = "preset_requires_configuration"
	CatalogueMiss              Kind = "catalogue_miss"
	InternalInvariant          Kind = "internal_invariant"
)

// Error wraps a Kind with the underlying cause and, for AnalysisCancelled,
// the stage that was interrupted.
type Error struct {
	Kind  Kind
	Stage string // only meaningful for AnalysisCancelled
	Err   error
}

func (e *Error) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s (stage=%s): %v", e.Kind, e.Stage, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, rerr.New(kind, nil)) style matching against Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an Error of the given kind wrapping cause (which may be nil).
func New(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

// Newf builds an Error of the given kind with a formatted cause.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Cancelled builds an AnalysisCancelled error tagged with the stage that
// was interrupted.
func Cancelled(stage string) *Error {
	return &Error{Kind: AnalysisCancelled, Stage: stage, Err: fmt.Errorf("cancelled during %s", stage)}
}

package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRead        Phase = "read"        // decoding the next event
	PhaseMaterialize Phase = "materialize" // forcing a deferred scalar
	PhaseProtocol    Phase = "protocol"    // request sequencing
)

// Kind categorizes the error
type Kind string

const (
	KindMalformed   Kind = "malformed"
	KindIncomplete  Kind = "incomplete"
	KindProtocol    Kind = "protocol_violation"
	KindOverflow    Kind = "overflow"
	KindInvalidUTF8 Kind = "invalid_utf8"
)

// NoOffset marks an error that is not tied to a stream position.
const NoOffset int64 = -1

// Error is the structured error type used throughout the decoder
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Expected string
	Actual   string
	Detail   string
	Offset   int64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Offset >= 0 {
		b.WriteString(" at offset ")
		b.WriteString(strconv.FormatInt(e.Offset, 10))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Expected != "" || e.Actual != "" {
		b.WriteString(" (")
		if e.Expected != "" {
			b.WriteString("expected ")
			b.WriteString(e.Expected)
		}
		if e.Actual != "" {
			if e.Expected != "" {
				b.WriteString(", ")
			}
			b.WriteString("got ")
			b.WriteString(e.Actual)
		}
		b.WriteByte(')')
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches any phase.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase != "" && t.Phase != e.Phase {
			return false
		}
		return e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: NoOffset,
		},
	}
}

// Offset sets the absolute stream offset
func (b *Builder) Offset(off int64) *Builder {
	b.err.Offset = off
	return b
}

// Expected describes what the decoder expected to find
func (b *Builder) Expected(format string, args ...any) *Builder {
	b.err.Expected = sprintf(format, args)
	return b
}

// Actual describes what the decoder found instead
func (b *Builder) Actual(format string, args ...any) *Builder {
	b.err.Actual = sprintf(format, args)
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	b.err.Detail = sprintf(msg, args)
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

func sprintf(format string, args []any) string {
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

// Convenience constructors for common error patterns

// Malformed creates a malformed input error at the given offset
func Malformed(phase Phase, offset int64, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMalformed,
		Offset: offset,
		Detail: sprintf(detail, args),
	}
}

// Overflow creates an overflow error for a value that does not fit its target
func Overflow(phase Phase, offset int64, what string, bits int) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindOverflow,
		Offset:   offset,
		Detail:   fmt.Sprintf("%s exceeds %d bits", what, bits),
		Expected: fmt.Sprintf("at most %d bits", bits),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, offset int64, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Offset: offset,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// Incomplete creates an incomplete input error for a read of need bytes with have buffered
func Incomplete(offset int64, need, have int) *Error {
	return &Error{
		Phase:    PhaseRead,
		Kind:     KindIncomplete,
		Offset:   offset,
		Expected: fmt.Sprintf("%d bytes", need),
		Actual:   fmt.Sprintf("%d buffered", have),
	}
}

// Protocol creates a protocol violation error
func Protocol(detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseProtocol,
		Kind:   KindProtocol,
		Offset: NoOffset,
		Detail: sprintf(detail, args),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Offset: NoOffset,
		Detail: detail,
		Cause:  cause,
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsMalformed reports whether err is fatal malformed input.
// Overflow and invalid UTF-8 errors count as malformed input.
func IsMalformed(err error) bool {
	switch KindOf(err) {
	case KindMalformed, KindOverflow, KindInvalidUTF8:
		return true
	}
	return false
}

// IsIncomplete reports whether err signals that more input is needed.
func IsIncomplete(err error) bool {
	return KindOf(err) == KindIncomplete
}

// IsProtocolViolation reports whether err is a caller protocol violation.
func IsProtocolViolation(err error) bool {
	return KindOf(err) == KindProtocol
}

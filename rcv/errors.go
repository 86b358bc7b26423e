package rcv

import "fmt"

// Error kinds, per spec §7. Tabulation only ever fails with one of
// these sentinels wrapped underneath; callers use errors.Is against the
// sentinel and Type() for a transport-agnostic category string.
var (
	// ErrConfigInvalid means Validate found at least one violation; no
	// tabulation is attempted.
	ErrConfigInvalid = sentinel("contest configuration is invalid")
	// ErrCVRMalformed is raised by a CVR source, not by this package;
	// it is declared here so callers can wrap it into the same Type()
	// surface the engine uses for its own errors.
	ErrCVRMalformed = sentinel("cast vote record is malformed")
	// ErrTabulationInvariant marks a defect in the round loop: an
	// assertion the engine itself is responsible for keeping true.
	ErrTabulationInvariant = sentinel("tabulation invariant violated")
	// ErrTieBreakUnresolved means an INTERACTIVE tie-break got no valid
	// selection: no oracle is configured, the oracle returned an error,
	// or it returned a candidate outside the tied set.
	ErrTieBreakUnresolved = sentinel("tie-break could not be resolved")
)

type sentinelError string

func sentinel(msg string) error { return sentinelError(msg) }

func (e sentinelError) Error() string { return string(e) }

// messageError pairs a sentinel with a human-readable detail message,
// the way vote/http/error.go's statusCodeError pairs a status code with
// an underlying error. Unwrap exposes the sentinel so errors.Is keeps
// working through fmt.Errorf("%w", ...) chains built on top of it.
type messageError struct {
	kind error
	msg  string
}

func (e messageError) Error() string {
	if e.msg == "" {
		return e.kind.Error()
	}
	return e.msg
}

func (e messageError) Unwrap() error { return e.kind }

// Type reports the error kind as a short category string, for callers
// that want to map it to a transport status without depending on this
// package's sentinel values directly.
func (e messageError) Type() string {
	switch e.kind {
	case ErrConfigInvalid:
		return "config_invalid"
	case ErrCVRMalformed:
		return "cvr_malformed"
	case ErrTabulationInvariant:
		return "tabulation_invariant"
	case ErrTieBreakUnresolved:
		return "tie_break_unresolved"
	default:
		return "internal"
	}
}

// MessageError wraps kind with a fixed message.
func MessageError(kind error, msg string) error {
	return messageError{kind: kind, msg: msg}
}

// MessageErrorf wraps kind with a formatted message.
func MessageErrorf(kind error, format string, args ...any) error {
	return messageError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Package errs defines the error-kind taxonomy used across linmemparser.
//
// A forensics run has exactly one trusted signal when something goes
// wrong: what kind of thing failed. Everything else (message text, a
// wrapped cause, a stack) is there to help a human, not to drive control
// flow, so callers that need to branch should always do it on Kind.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a failure per spec §7.
type Kind int

const (
	// IO covers failures opening/mapping the dump or writing output.
	IO Kind = iota
	// ParseError covers structurally invalid symbol files or debug-info JSON.
	ParseError
	// SymbolError covers a symbol file that parses but is semantically unusable.
	SymbolError
	// SymbolNotFound covers a required symbol missing after the fallback chain is exhausted.
	SymbolNotFound
	// AddressTranslationFailed covers a virtual address with no containing region.
	AddressTranslationFailed
	// InvalidStructure covers an out-of-bounds or structurally implausible read.
	InvalidStructure
	// PluginError covers a plugin that cannot execute.
	PluginError
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "IO"
	case ParseError:
		return "ParseError"
	case SymbolError:
		return "SymbolError"
	case SymbolNotFound:
		return "SymbolNotFound"
	case AddressTranslationFailed:
		return "AddressTranslationFailed"
	case InvalidStructure:
		return "InvalidStructure"
	case PluginError:
		return "PluginError"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a typed, context-carrying error. It wraps an optional cause
// with github.com/pkg/errors so that %+v under --debug prints a stack.
type Error struct {
	Kind    Kind
	Context string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Context, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Context)
}

func (e *Error) Unwrap() error { return e.cause }

// Format implements fmt.Formatter so that "%+v" surfaces the wrapped
// stack trace captured by pkg/errors.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') && e.cause != nil {
		fmt.Fprintf(s, "%s: %s: %+v", e.Kind, e.Context, e.cause)
		return
	}
	fmt.Fprint(s, e.Error())
}

// New builds an Error of the given kind. Its cause is a pkg/errors error
// carrying the same context text, so "%+v" prints the call site's stack.
func New(kind Kind, context string) *Error {
	return &Error{Kind: kind, Context: context, cause: errors.New(context)}
}

// Newf is New with a formatted context string.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	ctx := fmt.Sprintf(format, args...)
	return &Error{Kind: kind, Context: ctx, cause: errors.New(ctx)}
}

// Wrap attaches a kind and context to an existing cause, capturing a
// stack trace at the wrap site via pkg/errors.
func Wrap(kind Kind, cause error, context string) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, Context: context, cause: errors.Wrap(cause, context)}
}

// Wrapf is Wrap with a formatted context string.
func Wrapf(kind Kind, cause error, format string, args ...interface{}) *Error {
	if cause == nil {
		return nil
	}
	ctx := fmt.Sprintf(format, args...)
	return &Error{Kind: kind, Context: ctx, cause: errors.Wrap(cause, ctx)}
}

// KindOf extracts the Kind from err if it (or something it wraps) is an
// *Error, reporting ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

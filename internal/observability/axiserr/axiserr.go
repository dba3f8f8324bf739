// Package axiserr defines the error type returned by the axis engine.
//
// The engine corrects almost every bad input in place. The errors that do
// escape are configuration and data errors raised synchronously while a chart
// is being set up:
//
//   - Newf constructs an error from a formatted message.
//   - Enrichf is like Newf, but it preserves an underlying error's data.
//     It is like using `fmt.Errorf` with the `%v` verb.
//   - Bubblef is like Enrichf, but it exposes the underlying error.
//     It is like using `fmt.Errorf` with the `%w` verb.
//
// Errors carry a Kind so callers can test them with errors.Is against
// ErrConfig and ErrData, and slog attrs that CoreLogger.CaptureError logs:
//
//	return axiserr.Newf("series %q has no x axis", name).
//		Kind(axiserr.KindConfig).
//		Attr(slog.String("series", name))
package axiserr

import (
	"fmt"
	"log/slog"
	"maps"
)

// ErrorKind classifies fatal setup errors.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota

	// KindConfig is a chart configuration error, e.g. a series that
	// references an axis that does not exist.
	KindConfig

	// KindData is a data validation error, e.g. a missing date field.
	KindData
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindData:
		return "data"
	default:
		return "unknown"
	}
}

// Sentinels for use with errors.Is.
var (
	ErrConfig = &Error{msg: "configuration error", kind: KindConfig}
	ErrData   = &Error{msg: "data error", kind: KindData}
)

// Attrs returns any slog attrs stored in the error.
func Attrs(err error) []slog.Attr {
	if axerr, ok := err.(*Error); ok {
		attrs := make([]slog.Attr, 0, len(axerr.attrs))

		for key, value := range axerr.attrs {
			attrs = append(attrs, slog.Attr{Key: key, Value: value})
		}

		return attrs
	}

	return nil
}

// KindOf returns the kind of the error, or KindUnknown.
func KindOf(err error) ErrorKind {
	if axerr, ok := err.(*Error); ok {
		return axerr.kind
	}
	return KindUnknown
}

// Error is a standard Go error with a kind and structured attributes.
//
// Errors are not safe for concurrent use. Construct and mutate an error in a
// single statement using method chaining.
type Error struct {
	msg  string // error message or context
	err  error  // wrapped error or nil
	kind ErrorKind

	// attrs is structured data included when the error is logged.
	attrs map[string]slog.Value
}

// Newf creates a new error using Sprintf to construct the message.
func Newf(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Enrichf enriches an error without exposing it through `errors.Unwrap`.
//
// If the given error is already an *Error, its kind and attrs are copied.
func Enrichf(err error, format string, args ...any) *Error {
	return wrap(fmt.Sprintf(format, args...), err, false)
}

// Bubblef is like Enrichf, but exposes the given error through `errors.Unwrap`.
func Bubblef(err error, format string, args ...any) *Error {
	return wrap(fmt.Sprintf(format, args...), err, true)
}

func wrap(msg string, err error, shouldWrap bool) *Error {
	if err == nil {
		panic("axiserr: cannot wrap nil error")
	}

	wrapped := &Error{}

	switch {
	case shouldWrap:
		wrapped.msg = msg
		wrapped.err = err
	case msg == "":
		wrapped.msg = err.Error()
	default:
		wrapped.msg = fmt.Sprintf("%s: %v", msg, err)
	}

	if axerr, ok := err.(*Error); ok {
		wrapped.kind = axerr.kind
		wrapped.attrs = maps.Clone(axerr.attrs)
	}

	return wrapped
}

// Kind sets the error's kind and returns the error.
func (e *Error) Kind(kind ErrorKind) *Error {
	e.kind = kind
	return e
}

// Attr associates structured data to the error and returns the error.
//
// If the error already has an attr with the same key, it is overwritten.
func (e *Error) Attr(attr slog.Attr) *Error {
	if e.attrs == nil {
		e.attrs = make(map[string]slog.Value)
	}

	e.attrs[attr.Key] = attr.Value
	return e
}

// Error implements error.Error.
func (e *Error) Error() string {
	switch {
	case e.err == nil:
		return e.msg
	case e.msg == "":
		return e.err.Error()
	default:
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
}

// Unwrap returns the inner error.
func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e.kind == KindUnknown {
		return false
	}
	return (t == ErrConfig || t == ErrData) && t.kind == e.kind
}

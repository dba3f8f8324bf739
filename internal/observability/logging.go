package observability

import (
	"io"
	"log/slog"

	"github.com/wandb/axiskit/internal/observability/axiserr"
)

type Tags map[string]string

// NewTags creates a new Tags from a mix of slog.Attr and a string and its
// corresponding value. It ignores incomplete pairs and other types.
func NewTags(args ...any) Tags {
	var done bool
	tags := Tags{}
	for len(args) > 0 && !done {
		switch x := args[0].(type) {
		case slog.Attr:
			tags[x.Key] = x.Value.String()
			args = args[1:]
		case string:
			if len(args) < 2 {
				done = true
				break
			}
			attr := slog.Any(x, args[1])
			tags[attr.Key] = attr.Value.String()
			args = args[2:]
		default:
			args = args[1:]
		}
	}
	return tags
}

type CoreLoggerParams struct {
	Tags Tags
}

// CoreLogger is the logger handed to every engine component.
//
// It wraps a *slog.Logger and remembers the base tags it was created with so
// that derived loggers (one per axis, one per coordinator) keep them.
type CoreLogger struct {
	*slog.Logger
	baseTags Tags
}

func NewCoreLogger(logger *slog.Logger, params *CoreLoggerParams) *CoreLogger {
	if params == nil {
		params = &CoreLoggerParams{}
	}

	tags := Tags{}
	var args []any
	for key, value := range params.Tags {
		args = append(args, slog.String(key, value))
		tags[key] = value
	}

	return &CoreLogger{
		Logger:   logger.With(args...),
		baseTags: tags,
	}
}

// With returns a derived logger that includes the given tags in each message.
func (cl *CoreLogger) With(args ...any) *CoreLogger {
	tags := Tags{}
	for key, value := range cl.baseTags {
		tags[key] = value
	}
	for key, value := range NewTags(args...) {
		tags[key] = value
	}

	return &CoreLogger{
		Logger:   cl.Logger.With(args...),
		baseTags: tags,
	}
}

// CaptureError logs an error together with the attrs stored on it.
func (cl *CoreLogger) CaptureError(err error, args ...any) {
	for _, attr := range axiserr.Attrs(err) {
		args = append(args, attr)
	}
	cl.Error(err.Error(), args...)
}

// CaptureWarn logs a warning.
func (cl *CoreLogger) CaptureWarn(msg string, args ...any) {
	cl.Warn(msg, args...)
}

// GetTags returns the tags associated with the logger.
//
// Used for testing.
func (cl *CoreLogger) GetTags() Tags {
	return cl.baseTags
}

// NewNoOpLogger returns a logger that discards all messages.
func NewNoOpLogger() *CoreLogger {
	return NewCoreLogger(
		slog.New(slog.NewJSONHandler(io.Discard, nil)),
		nil,
	)
}

// OrNoOp returns the logger, or a no-op logger if it is nil.
func OrNoOp(logger *CoreLogger) *CoreLogger {
	if logger == nil {
		return NewNoOpLogger()
	}
	return logger
}

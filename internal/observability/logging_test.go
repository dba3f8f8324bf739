package observability_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wandb/axiskit/internal/observability"
	"github.com/wandb/axiskit/internal/observability/axiserr"
	"github.com/wandb/axiskit/internal/observabilitytest"
)

func TestNewTags(t *testing.T) {
	testCases := []struct {
		name   string
		input  []any
		expect observability.Tags
	}{
		{
			name:   "Tags from slog.Attr",
			input:  []any{slog.Attr{Key: "axis", Value: slog.Int64Value(3)}},
			expect: observability.Tags{"axis": "3"},
		},
		{
			name:   "Tags from string and value",
			input:  []any{"kind", "temporal"},
			expect: observability.Tags{"kind": "temporal"},
		},
		{
			name:   "Incomplete pair is dropped",
			input:  []any{slog.String("a", "b"), "dangling"},
			expect: observability.Tags{"a": "b"},
		},
		{
			name:   "Empty input",
			input:  []any{},
			expect: observability.Tags{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, observability.NewTags(tc.input...))
		})
	}
}

func TestWith_KeepsBaseTags(t *testing.T) {
	logger := observability.NewCoreLogger(
		observability.NewNoOpLogger().Logger,
		&observability.CoreLoggerParams{Tags: observability.Tags{"chart": "c1"}},
	)

	derived := logger.With("axis", "x")

	assert.Equal(t,
		observability.Tags{"chart": "c1", "axis": "x"},
		derived.GetTags())
	assert.Equal(t, observability.Tags{"chart": "c1"}, logger.GetTags())
}

func TestCaptureError_LogsAttrs(t *testing.T) {
	logger, logs := observabilitytest.NewRecordingTestLogger(t)

	logger.CaptureError(
		axiserr.Newf("no axis").Attr(slog.String("series", "s1")))

	assert.Contains(t, logs.String(), `"msg":"no axis"`)
	assert.Contains(t, logs.String(), `"series":"s1"`)
}

func TestOrNoOp(t *testing.T) {
	assert.NotNil(t, observability.OrNoOp(nil))

	logger := observability.NewNoOpLogger()
	assert.Same(t, logger, observability.OrNoOp(logger))
}

package axiserr_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wandb/axiskit/internal/observability/axiserr"
)

func TestNewfFormat(t *testing.T) {
	assert.Equal(t,
		"the number is 3",
		axiserr.Newf("the number is %d", 3).Error())
}

func TestWrapNil_Panics(t *testing.T) {
	t.Run("Enrichf", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = axiserr.Enrichf(nil, "text")
		})
	})

	t.Run("Bubblef", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = axiserr.Bubblef(nil, "text")
		})
	})
}

func TestEnrichfFormat(t *testing.T) {
	t.Run("no message", func(t *testing.T) {
		assert.Equal(t, "EOF", axiserr.Enrichf(io.EOF, "").Error())
	})

	t.Run("with format", func(t *testing.T) {
		assert.Equal(t,
			"failed (123): EOF",
			axiserr.Enrichf(io.EOF, "failed (%d)", 123).Error())
	})

	t.Run("does not unwrap", func(t *testing.T) {
		assert.NotErrorIs(t, axiserr.Enrichf(io.EOF, "x"), io.EOF)
	})
}

func TestBubblef_Unwraps(t *testing.T) {
	err := axiserr.Bubblef(io.EOF, "reading")

	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "reading: EOF", err.Error())
}

func TestKind_MatchesSentinel(t *testing.T) {
	cfg := axiserr.Newf("no axis").Kind(axiserr.KindConfig)
	data := axiserr.Newf("no field").Kind(axiserr.KindData)
	plain := axiserr.Newf("plain")

	assert.ErrorIs(t, cfg, axiserr.ErrConfig)
	assert.NotErrorIs(t, cfg, axiserr.ErrData)
	assert.ErrorIs(t, data, axiserr.ErrData)
	assert.NotErrorIs(t, plain, axiserr.ErrConfig)
	assert.Equal(t, axiserr.KindConfig, axiserr.KindOf(cfg))
	assert.Equal(t, axiserr.KindUnknown, axiserr.KindOf(errors.New("x")))
}

func TestEnrichf_KeepsKindAndAttrs(t *testing.T) {
	inner := axiserr.Newf("bad").
		Kind(axiserr.KindData).
		Attr(slog.String("field", "date"))

	outer := axiserr.Enrichf(inner, "series %q", "s1")

	assert.ErrorIs(t, outer, axiserr.ErrData)
	assert.Equal(t,
		[]slog.Attr{slog.String("field", "date")},
		axiserr.Attrs(outer))
}

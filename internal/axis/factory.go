package axis

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/wandb/axiskit/internal/observability/axiserr"
)

// Constructor creates an axis from options.
type Constructor func(opts Options) Axis

// Factory maps axis type names to constructors.
//
// A chart receives its Factory at construction; there is no global
// registry.
type Factory map[string]Constructor

// DefaultFactory returns a factory for the built-in axis kinds.
func DefaultFactory() Factory {
	return Factory{
		KindContinuous.String(): func(opts Options) Axis { return NewContinuous(opts) },
		KindDiscrete.String():   func(opts Options) Axis { return NewDiscrete(opts) },
		KindTemporal.String():   func(opts Options) Axis { return NewTemporal(opts) },
	}
}

// New creates an axis of the named type.
func (f Factory) New(typeName string, opts Options) (Axis, error) {
	ctor, ok := f[strings.ToLower(typeName)]
	if !ok || ctor == nil {
		return nil, axiserr.Newf(
			"axis: unknown axis type %q (known: %s)",
			typeName, strings.Join(f.Names(), ", "),
		).Kind(axiserr.KindConfig).Attr(slog.String("axis", opts.Name))
	}
	return ctor(opts), nil
}

// Names returns the registered type names in sorted order.
func (f Factory) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

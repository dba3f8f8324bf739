package chart

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/wandb/axiskit/internal/axis"
	"github.com/wandb/axiskit/internal/observability/axiserr"
)

// DataItem is one record of a series, keyed by field name.
type DataItem map[string]any

// dateLayouts are the string formats accepted for date fields.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// fieldValue is a parsed field of a data item.
type fieldValue struct {
	number   float64
	category string
	date     time.Time
}

// parseField reads a field as the type an axis kind needs.
func parseField(
	item DataItem,
	field string,
	kind axis.Kind,
	loc *time.Location,
) (fieldValue, error) {
	raw, ok := item[field]
	if !ok || raw == nil {
		return fieldValue{}, axiserr.Newf("missing field %q", field).
			Kind(axiserr.KindData)
	}

	var out fieldValue
	var err error
	switch kind {
	case axis.KindContinuous:
		out.number, err = parseNumber(raw)
	case axis.KindDiscrete:
		out.category, err = parseCategory(raw)
	case axis.KindTemporal:
		out.date, err = parseDate(raw, loc)
	default:
		err = fmt.Errorf("unsupported axis kind %v", kind)
	}
	if err != nil {
		return fieldValue{}, axiserr.Enrichf(err, "field %q", field).
			Kind(axiserr.KindData).
			Attr(slog.String("field", field))
	}
	return out, nil
}

func parseNumber(raw any) (float64, error) {
	var v float64
	switch x := raw.(type) {
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int32:
		v = float64(x)
	case int64:
		v = float64(x)
	case uint64:
		v = float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, err
		}
		v = f
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", x)
		}
		v = f
	default:
		return 0, fmt.Errorf("not a number: %T", raw)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %v", v)
	}
	return v, nil
}

func parseCategory(raw any) (string, error) {
	switch x := raw.(type) {
	case string:
		return x, nil
	case fmt.Stringer:
		return x.String(), nil
	case int, int64, float64:
		return fmt.Sprint(x), nil
	default:
		return "", fmt.Errorf("not a category: %T", raw)
	}
}

func parseDate(raw any, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	switch x := raw.(type) {
	case time.Time:
		return x.In(loc), nil
	case int64:
		return time.UnixMilli(x).In(loc), nil
	case int:
		return time.UnixMilli(int64(x)).In(loc), nil
	case float64:
		return time.UnixMilli(int64(x)).In(loc), nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.ParseInLocation(layout, x, loc); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("not a date: %q", x)
	default:
		return time.Time{}, fmt.Errorf("not a date: %T", raw)
	}
}

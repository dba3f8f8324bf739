package config

import (
	"strconv"

	"github.com/gwenn/yacr"
	"github.com/spf13/afero"

	"github.com/wandb/axiskit/internal/chart"
	"github.com/wandb/axiskit/internal/observability/axiserr"
)

// ReadCSV reads data items from a CSV file with a header row.
//
// Numeric fields become float64 and other fields strings. Empty fields are
// left out of the item.
func ReadCSV(fs afero.Fs, path string) ([]chart.DataItem, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, axiserr.Bubblef(err, "config: opening %s", path).
			Kind(axiserr.KindData)
	}
	defer f.Close()

	r := yacr.DefaultReader(f)
	r.Trim = true

	var headers []string
	for r.Scan() {
		headers = append(headers, r.Text())
		if r.EndOfRecord() {
			break
		}
	}

	var items []chart.DataItem
	item := chart.DataItem{}
	field := 0
	for r.Scan() {
		if field < len(headers) && len(r.Bytes()) > 0 {
			item[headers[field]] = csvValue(r)
		}
		field++

		if r.EndOfRecord() {
			if len(item) > 0 {
				items = append(items, item)
			}
			item = chart.DataItem{}
			field = 0
		}
	}
	if err := r.Err(); err != nil {
		return nil, axiserr.Enrichf(err, "config: reading %s", path).
			Kind(axiserr.KindData)
	}

	return items, nil
}

func csvValue(r *yacr.Reader) any {
	if isNum, _ := r.IsNumber(); isNum {
		if v, err := strconv.ParseFloat(r.Text(), 64); err == nil {
			return v
		}
	}
	return r.Text()
}

package grid_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/axiskit/cmd/axisdemo/root/grid"
)

func writeChart(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(heredoc.Doc(`
		axes:
		  - name: category
		    type: discrete
		    categories: [a, b, c, d]
		  - name: value
		    type: continuous
		series:
		  - name: bars
		    xAxis: category
		    xField: name
		    yAxis: value
		    yField: v
		    data:
		      - {name: a, v: 1}
		      - {name: d, v: 4}
	`)), 0o644))
	return path
}

func runGrid(t *testing.T, args ...string) string {
	t.Helper()
	cmd := grid.NewGridCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestGridCmd_JSON(t *testing.T) {
	path := writeChart(t)

	out := runGrid(t, path, "--axis", "category", "--format", "json", "--range", "0.5:1")

	var rows []grid.Row
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = r.Label
	}
	assert.Equal(t, []string{"c", "d"}, labels)
	assert.InDelta(t, 0.5, rows[0].Position, 1e-9)
}

func TestGridCmd_Table(t *testing.T) {
	path := writeChart(t)

	out := runGrid(t, path, "--axis", "category")

	assert.Contains(t, out, "LABEL")
	for _, label := range []string{"a", "b", "c", "d"} {
		assert.Contains(t, out, label)
	}
}

func TestGridCmd_UnknownAxis(t *testing.T) {
	path := writeChart(t)
	cmd := grid.NewGridCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "--axis", "nope"})

	assert.ErrorContains(t, cmd.Execute(), `unknown axis "nope"`)
}

package grid

import (
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/wandb/axiskit/cmd/axisdemo/root/common"
	"github.com/wandb/axiskit/internal/axis"
	"github.com/wandb/axiskit/internal/cliutil"
)

// Row is one grid element in the command output.
type Row struct {
	Axis         string  `json:"axis" yaml:"axis"`
	Label        string  `json:"label" yaml:"label"`
	Value        float64 `json:"value" yaml:"value"`
	EndValue     float64 `json:"endValue" yaml:"endValue"`
	Position     float64 `json:"position" yaml:"position"`
	Coordinate   float64 `json:"coordinate" yaml:"coordinate"`
	PeriodChange bool    `json:"periodChange,omitempty" yaml:"periodChange,omitempty"`
}

func NewGridCmd() *cobra.Command {
	var axisName string

	cmd := &cobra.Command{
		Use:   "grid <chart.yaml>",
		Short: "Print the grid elements of the axes of a chart",
		Long:  `Load a chart declaration and its data, apply a zoom and print the grid lines the axes compute.`,
		Example: heredoc.Doc(`
			# Print the grid of every axis
			$ axisdemo grid chart.yaml

			# Zoom the x axes to the middle of the domain and print as YAML
			$ axisdemo grid chart.yaml --range 0.25:0.75 --axis date --format yaml
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			built, err := common.LoadChart(cmd, args[0])
			if err != nil {
				return err
			}

			var axes []axis.Axis
			if axisName != "" {
				a, ok := built.Chart.Axis(axisName)
				if !ok {
					return fmt.Errorf("unknown axis %q", axisName)
				}
				axes = append(axes, a)
			} else {
				axes = built.Chart.Axes()
			}

			rows := Rows(axes)
			if cliutil.Format(cmd) == cliutil.FormatTable {
				fmt.Fprintln(cmd.OutOrStdout(), Table(rows))
				return nil
			}
			return cliutil.HandleOutput(cmd, rows)
		},
	}

	cmd.Flags().StringVarP(&axisName, "axis", "a", "", "Only print the grid of this axis")
	cliutil.AddOutputFlags(cmd, cliutil.FormatTable)
	common.AddViewFlags(cmd)

	return cmd
}

// Rows lists the enabled grid elements of the axes.
func Rows(axes []axis.Axis) []Row {
	var rows []Row
	for _, a := range axes {
		for _, el := range a.GridElements() {
			if el.Disabled {
				continue
			}
			rows = append(rows, Row{
				Axis:         a.Name(),
				Label:        el.Label,
				Value:        el.Value,
				EndValue:     el.EndValue,
				Position:     el.Position,
				Coordinate:   a.PositionToCoordinate(el.Position),
				PeriodChange: el.PeriodChange,
			})
		}
	}
	return rows
}

// Table renders rows as a text table.
func Table(rows []Row) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("AXIS", "LABEL", "POSITION", "PERIOD")

	for _, r := range rows {
		period := ""
		if r.PeriodChange {
			period = "*"
		}
		t.Row(r.Axis, r.Label, strconv.FormatFloat(r.Position, 'f', 4, 64), period)
	}
	return t.String()
}

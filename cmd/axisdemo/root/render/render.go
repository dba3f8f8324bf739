package render

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/wandb/axiskit/cmd/axisdemo/root/common"
	"github.com/wandb/axiskit/internal/render"
)

func NewRenderCmd() *cobra.Command {
	var (
		width, height int
		xName, yName  string
		plain         bool
	)

	cmd := &cobra.Command{
		Use:   "render <chart.yaml>",
		Short: "Draw a chart in the terminal",
		Example: heredoc.Doc(`
			# Draw the first series of a chart
			$ axisdemo render chart.yaml

			# Draw price against date, zoomed out from the right edge
			$ axisdemo render chart.yaml -x date -y value --wheel 2 --anchor 1
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			built, err := common.LoadChart(cmd, args[0])
			if err != nil {
				return err
			}
			c := built.Chart

			if xName == "" || yName == "" {
				series := c.AllSeries()
				if len(series) == 0 {
					return fmt.Errorf("chart has no series")
				}
				opts := series[0].Options()
				xName, yName = defaultName(xName, opts.XAxis), defaultName(yName, opts.YAxis)
			}
			x, ok := c.Axis(xName)
			if !ok {
				return fmt.Errorf("unknown axis %q", xName)
			}
			y, ok := c.Axis(yName)
			if !ok {
				return fmt.Errorf("unknown axis %q", yName)
			}

			styles := render.DefaultStyles()
			if plain {
				styles = render.PlainStyles()
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Render(c, x, y, render.Params{
				Width:  width,
				Height: height,
				Styles: styles,
			}))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 80, "Chart width in cells")
	cmd.Flags().IntVar(&height, "height", 20, "Chart height in cells")
	cmd.Flags().StringVarP(&xName, "x-axis", "x", "", "Horizontal axis (default: x axis of the first series)")
	cmd.Flags().StringVarP(&yName, "y-axis", "y", "", "Vertical axis (default: y axis of the first series)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable colors")
	common.AddViewFlags(cmd)

	return cmd
}

func defaultName(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}

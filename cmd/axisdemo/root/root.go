package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wandb/axiskit/cmd/axisdemo/root/grid"
	"github.com/wandb/axiskit/cmd/axisdemo/root/render"
	"github.com/wandb/axiskit/cmd/axisdemo/root/version"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "axisdemo <command>",
		Short: "Explore chart axes from the command line",
		Long: heredoc.Doc(`
			Load a chart declaration with its data, zoom and pan it, and
			inspect the grid lines and labels the axes compute.
		`),
		Example: heredoc.Doc(`
			$ axisdemo grid chart.yaml --range 0.2:0.8
			$ axisdemo render chart.yaml --wheel 0.5
		`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "Log debug messages, including silently corrected input")
	viper.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))

	cmd.AddCommand(grid.NewGridCmd())
	cmd.AddCommand(render.NewRenderCmd())
	cmd.AddCommand(version.NewVersionCmd())

	return cmd
}

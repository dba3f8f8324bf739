// Package common holds helpers shared by the axisdemo commands.
package common

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wandb/axiskit/internal/axis"
	"github.com/wandb/axiskit/internal/cliutil"
	"github.com/wandb/axiskit/internal/config"
	"github.com/wandb/axiskit/internal/observability"
	"github.com/wandb/axiskit/internal/observability/axiserr"
)

// NewLogger returns a logger writing through charmbracelet/log.
func NewLogger(debug bool) *observability.CoreLogger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "axisdemo",
	})
	return observability.NewCoreLogger(slog.New(handler), nil)
}

// Logger returns the logger configured by the debug flag.
func Logger(cmd *cobra.Command) *observability.CoreLogger {
	return NewLogger(cliutil.GetBool(cmd, "debug"))
}

// AddViewFlags registers the flags that move the zoom window.
func AddViewFlags(cmd *cobra.Command) {
	cmd.Flags().String("range", "", "Zoom window as start:end positions, e.g. 0.2:0.8")
	cmd.Flags().Float64("pan", 0, "Pan the zoom window by this fraction of the domain")
	cmd.Flags().Float64("wheel", 0, "Scale the zoom window by this factor around --anchor")
	cmd.Flags().Float64("anchor", 0.5, "Relative position in the zoom window kept fixed by --wheel")
}

// LoadChart loads a chart declaration and applies the view flags.
func LoadChart(cmd *cobra.Command, path string) (*config.Built, error) {
	logger := Logger(cmd)
	fs := afero.NewOsFs()

	spec, err := config.Load(fs, path, logger)
	if err != nil {
		return nil, err
	}
	built, err := config.Build(spec, config.BuildParams{Fs: fs, Logger: logger})
	if err != nil {
		return nil, err
	}

	if err := applyView(cmd, built); err != nil {
		return nil, err
	}
	built.Chart.Validate()
	return built, nil
}

func applyView(cmd *cobra.Command, built *config.Built) error {
	coordinator := built.Coordinator

	if r := cliutil.GetString(cmd, "range"); r != "" {
		start, end, err := parseRange(r)
		if err != nil {
			return err
		}
		coordinator.Zoom(axis.ZoomRange{Start: start, End: end}, true)
	}

	if factor, _ := cmd.Flags().GetFloat64("wheel"); factor > 0 {
		anchor, _ := cmd.Flags().GetFloat64("anchor")
		coordinator.ZoomAround(anchor, factor)
	}

	if delta, _ := cmd.Flags().GetFloat64("pan"); delta != 0 {
		coordinator.BeginPan()
		coordinator.Pan(delta)
		coordinator.EndPan()
	}
	return nil
}

func parseRange(s string) (start, end float64, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, axiserr.Newf("range %q is not start:end", s).
			Kind(axiserr.KindConfig)
	}
	if start, err = strconv.ParseFloat(parts[0], 64); err != nil {
		return 0, 0, axiserr.Enrichf(err, "range start").Kind(axiserr.KindConfig)
	}
	if end, err = strconv.ParseFloat(parts[1], 64); err != nil {
		return 0, 0, axiserr.Enrichf(err, "range end").Kind(axiserr.KindConfig)
	}
	return start, end, nil
}

// InitConfig reads the optional settings file and the AXISDEMO_
// environment variables.
func InitConfig(cfgFile, home string) error {
	viper.SetEnvPrefix("AXISDEMO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(home)
		viper.SetConfigName(".axisdemo")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("can't read config: %w", err)
	}
	return nil
}

package cliutil

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// GetString returns a string flag, falling back to the viper setting of the
// same name (config file or AXISDEMO_ environment variable).
func GetString(cmd *cobra.Command, flag string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return f.Value.String()
	}

	if value := viper.GetString(flag); value != "" {
		return value
	}

	value, _ := cmd.Flags().GetString(flag)
	return value
}

// GetBool is like GetString for boolean flags.
func GetBool(cmd *cobra.Command, flag string) bool {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		value, _ := cmd.Flags().GetBool(flag)
		return value
	}
	if viper.IsSet(flag) {
		return viper.GetBool(flag)
	}
	value, _ := cmd.Flags().GetBool(flag)
	return value
}

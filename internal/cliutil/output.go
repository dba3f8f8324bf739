package cliutil

import (
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by the format flag.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// AddOutputFlags registers the template and format flags.
func AddOutputFlags(cmd *cobra.Command, defaultFormat string) {
	cmd.Flags().String("template", "", "Template for output format. Accepts Go template format (e.g. --template='{{.label}}')")
	cmd.Flags().String("format", defaultFormat, "Output format. Accepts 'table', 'json' or 'yaml'")
}

// Format returns the value of the format flag.
func Format(cmd *cobra.Command) string {
	return GetString(cmd, "format")
}

// HandleOutput writes result according to the template or format flag.
//
// The table format is not handled here; callers print tables themselves
// and use HandleOutput for the structured formats.
func HandleOutput(cmd *cobra.Command, result any) error {
	templateFlag, _ := cmd.Flags().GetString("template")
	formatFlag := Format(cmd)

	if templateFlag != "" {
		tmpl, err := template.New("output").Parse(templateFlag)
		if err != nil {
			return fmt.Errorf("failed to parse template: %w", err)
		}

		if err := tmpl.Execute(cmd.OutOrStdout(), result); err != nil {
			return fmt.Errorf("failed to execute template: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	}

	var output []byte
	var err error

	switch formatFlag {
	case FormatYAML:
		output, err = yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal to YAML: %w", err)
		}
	default:
		output, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal to JSON: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(output))
	return nil
}

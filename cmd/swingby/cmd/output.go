package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// render writes v to the command's output in the configured format.
func (a *app) render(cmd *cobra.Command, v any) error {
	return writeOutput(cmd.OutOrStdout(), a.settings.Output, v)
}

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case OutputYAML:
		// yaml.v3 does not know json.Number; round-trip through JSON so
		// numbers come out as plain scalars.
		plain, err := plainValue(v)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plain); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}

func plainValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	var out any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to re-read json as yaml: %w", err)
	}
	return out, nil
}

// notice prints a human-readable status line to stderr so stdout stays
// machine-readable.
func notice(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.ErrOrStderr(), fmt.Sprintf(format, args...))
}

func success(s string) string { return color.GreenString(s) }

func warning(s string) string { return color.YellowString(s) }

func highlight(s string) string { return color.CyanString(s) }

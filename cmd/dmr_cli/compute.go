package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/handlers/input"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/report"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/strategy/dmr"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
)

func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

func newComputeCmd(c *cli) *cobra.Command {
	var (
		inputPath string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute a daily market review",
		Long: `Compute a daily market review from a YAML input file, from flags, or
both. Flags override values read from the file.`,
		Example: `  dmr compute --input levels.yaml
  dmr compute --input levels.yaml --r30-high 4160 --r30-low 4141.5 --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values := map[string]string{}

			if inputPath != "" {
				data, err := os.ReadFile(inputPath)
				if err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				if err := yaml.Unmarshal(data, &values); err != nil {
					return fmt.Errorf("failed to parse %s: %w", inputPath, err)
				}
				for _, name := range unknownFields(values) {
					c.logger.Warn().Str("field", name).Str("file", inputPath).Msg("ignoring unknown input field")
				}
			}
			for _, f := range input.Fields {
				if flag := cmd.Flags().Lookup(flagName(f.Name)); flag != nil && flag.Changed {
					values[f.Name] = flag.Value.String()
				}
			}

			in, err := input.FromMap(values)
			if err != nil {
				return err
			}

			res := dmr.NewEngine(dmr.PlaceholderFactors).Run(in)
			rev := report.NewReview("", in, res)
			c.logger.Debug().
				Bool("fallback", res.FallbackUsed).
				Float64("min_gap", res.MinGap).
				Msg("review computed")
			if rev.Warning != "" {
				c.logger.Warn().Msg(rev.Warning)
			}

			return writeReview(cmd.OutOrStdout(), format, rev)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "YAML file with the 15 inputs keyed by field name")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, yaml or json")
	for _, f := range input.Fields {
		cmd.Flags().String(flagName(f.Name), "", f.Label)
	}
	return cmd
}

// unknownFields lists keys that name no input field, in sorted order.
func unknownFields(values map[string]string) []string {
	var unknown []string
	for name := range values {
		if _, ok := input.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

type jsonReview struct {
	Input        map[string]float64 `json:"input"`
	Output       types.EngineOutput `json:"output"`
	YAML         string             `json:"yaml"`
	FallbackUsed bool               `json:"fallback_used"`
	Warning      string             `json:"warning,omitempty"`
}

func writeReview(w io.Writer, format string, rev report.Review) error {
	switch strings.ToLower(format) {
	case "text":
		return report.WriteText(w, rev)
	case "yaml":
		block, err := rev.YAML()
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, block)
		return err
	case "json":
		block, err := rev.YAML()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonReview{
			Input:        input.Flatten(rev.Input),
			Output:       rev.Output,
			YAML:         block,
			FallbackUsed: rev.FallbackUsed,
			Warning:      rev.Warning,
		})
	default:
		return fmt.Errorf("unknown format %q (want text, yaml or json)", format)
	}
}

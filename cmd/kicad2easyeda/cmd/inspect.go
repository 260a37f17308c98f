package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.kicad_mod>",
	Short: "Show what the converter extracts from a footprint",
	Long: `Extract a KiCad footprint and print the name, description, pads and
circles found in it as YAML. No output file is written.

Examples:
  kicad2easyeda inspect part.kicad_mod
  kicad2easyeda inspect --layer-window 400 part.kicad_mod`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	fp, err := readFootprint(args[0])
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(fp); err != nil {
		return fmt.Errorf("failed to encode footprint: %w", err)
	}
	return enc.Close()
}

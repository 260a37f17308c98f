package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/OpenTraceLab/kicad2easyeda/internal/config"
	"github.com/OpenTraceLab/kicad2easyeda/internal/logging"
	"github.com/OpenTraceLab/kicad2easyeda/pkg/easyeda"
	"github.com/OpenTraceLab/kicad2easyeda/pkg/kicad/footprint"
)

// Version is the released version of the converter.
const Version = "1.0.0"

const (
	footprintExt = ".kicad_mod"
	outputSuffix = "_easyeda.json"
)

var (
	// Global flags
	verbose     bool
	cfgFile     string
	contributor string
	prefix      string
	layerWindow int

	// Resolved before every command runs
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kicad2easyeda <input.kicad_mod> [output.json]",
	Short: "Convert KiCad footprints to EasyEDA",
	Long: `kicad2easyeda converts a KiCad footprint (.kicad_mod) into an EasyEDA
footprint document that can be opened in the EasyEDA editor.

Pads with a drill and fp_circle graphics are converted; everything else in
the footprint is ignored.

Examples:
  kicad2easyeda MountingHole_2.5mm_Pad_TopBottom.kicad_mod
  kicad2easyeda part.kicad_mod part.json
  kicad2easyeda inspect part.kicad_mod`,
	Args:              cobra.RangeArgs(1, 2),
	Version:           Version,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
	RunE:              runConvert,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./kicad2easyeda.yaml)")

	def := config.Default()
	flags.StringVar(&contributor, "contributor", def.Contributor, "contributor written to the document header")
	flags.StringVar(&prefix, "prefix", def.Prefix, "designator prefix written to the document header")
	flags.IntVar(&layerWindow, "layer-window", def.LayerWindow, "characters after a pad searched for its copper layer")
}

// initConfig merges flags, environment and config file into cfg.
func initConfig(cmd *cobra.Command, args []string) error {
	// Arguments are valid by now; later errors are not usage errors.
	cmd.SilenceUsage = true

	v := config.NewViper(cfgFile)
	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	c, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = c
	logger = logging.New(cmd.ErrOrStderr(), cfg.Verbose)
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("loaded config", "file", used)
	}
	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	bindings := map[string]string{
		config.KeyVerbose:     "verbose",
		config.KeyContributor: "contributor",
		config.KeyPrefix:      "prefix",
		config.KeyLayerWindow: "layer-window",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := defaultOutputPath(input)
	if len(args) > 1 {
		output = args[1]
	}

	fp, err := readFootprint(input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Parsing KiCad footprint: %s\n", input)
	fmt.Fprintf(out, "Found: %d pads, %d circles\n", len(fp.Pads), len(fp.Circles))
	for i, pad := range fp.Pads {
		fmt.Fprintf(out, "  Pad %d: num=%s, type=%s, shape=%s, drill=%smm\n",
			i+1, pad.Number, pad.Type, pad.Shape, easyeda.FormatFloat(pad.Drill))
	}

	fmt.Fprintln(out, "Converting to EasyEDA format...")
	res := easyeda.ConvertFootprint(fp, logger)
	doc := easyeda.Assemble(fp.Name, res, cfg.DocumentOptions())

	fmt.Fprintf(out, "Generated %d shape elements\n", len(doc.Shape))
	fmt.Fprintf(out, "Origin set to: (%d, %d)\n", doc.Head.X, doc.Head.Y)

	if err := doc.WriteFile(output); err != nil {
		return err
	}

	fmt.Fprintf(out, "Successfully converted to: %s\n", output)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "To import in EasyEDA:")
	fmt.Fprintln(out, "1. Go to File > Open > EasyEDA...")
	fmt.Fprintln(out, "2. Select the generated JSON file")
	fmt.Fprintln(out, "3. The footprint will be imported into your library")
	return nil
}

// readFootprint parses the input file, reporting a missing file the way
// users of the converter expect.
func readFootprint(path string) (*footprint.Footprint, error) {
	opts := cfg.ExtractOptions()
	opts.Logger = logger

	fp, err := footprint.ParseFile(path, opts)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &fileNotFoundError{path: path, err: err}
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("extracted footprint", "name", fp.Name, "pads", len(fp.Pads), "circles", len(fp.Circles))
	return fp, nil
}

// fileNotFoundError reports a missing input file with the message the
// converter has always printed.
type fileNotFoundError struct {
	path string
	err  error
}

func (e *fileNotFoundError) Error() string {
	return fmt.Sprintf("File '%s' not found", e.path)
}

func (e *fileNotFoundError) Unwrap() error {
	return e.err
}

// defaultOutputPath swaps the .kicad_mod extension for _easyeda.json. Any
// other extension is dropped first.
func defaultOutputPath(input string) string {
	base := strings.TrimSuffix(input, footprintExt)
	if base == input {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}
	return base + outputSuffix
}

// Command sigen reconstructs a tree-structured neuron skeleton from a
// directory of grayscale microscopy slices, wiring the loader, binarizer,
// extractor, builder, post-processing passes, and SWC writer into one
// batch invocation (spec.md §6).
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/OUDON/sigen/internal/builder"
	"github.com/OUDON/sigen/internal/config"
	"github.com/OUDON/sigen/internal/extractor"
	"github.com/OUDON/sigen/internal/imaging"
	"github.com/OUDON/sigen/internal/logging"
	"github.com/OUDON/sigen/internal/postprocess"
	"github.com/OUDON/sigen/internal/swc"
)

var (
	inputDir   string
	outputFile string
	scaleXY    float64
	scaleZ     float64
	dt         float64
	vt         int
	clipping   int
	smoothing  int
	configPath string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "sigen",
	Short: "Reconstruct a neuron skeleton from a binary voxel volume",
	Long: `sigen turns a directory of grayscale microscopy slices into one or more
rooted neuron skeletons, serialized in the SWC morphology format.`,
	RunE: run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&inputDir, "input", "", "directory of grayscale slice images (required)")
	flags.StringVar(&outputFile, "output", "", "SWC output file path (required)")
	flags.Float64Var(&scaleXY, "scale-xy", 1.0, "anisotropic scale applied to x and y")
	flags.Float64Var(&scaleZ, "scale-z", 1.0, "anisotropic scale applied to z")
	flags.Float64Var(&dt, "dt", 0.0, "interpolation distance threshold")
	flags.IntVar(&vt, "vt", 0, "binarization intensity threshold")
	flags.IntVar(&clipping, "clipping", 0, "post-processing clipping level")
	flags.IntVar(&smoothing, "smoothing", 0, "post-processing smoothing level")
	flags.StringVar(&configPath, "config", "", "optional config file path")
	flags.BoolVar(&quiet, "quiet", false, "drop to a no-op logger")

	for _, name := range []string{"input", "output", "scale-xy", "scale-z", "dt", "vt", "clipping", "smoothing", "quiet"} {
		// Viper keys use the config struct's underscore names (scale_xy).
		key := strings.ReplaceAll(name, "-", "_")
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func run(cmd *cobra.Command, args []string) error {
	// viper.GetViper() is the same global instance init() bound every
	// flag into with viper.BindPFlag, so an explicit flag outranks both
	// the config file and config.Load's defaults.
	cfg, err := config.LoadInto(viper.GetViper(), configPath)
	if err != nil {
		return fmt.Errorf("sigen: load config: %w", err)
	}

	logger, err := logging.New(cfg.Quiet)
	if err != nil {
		return fmt.Errorf("sigen: construct logger: %w", err)
	}
	defer logger.Sync()

	loader := imaging.NewLoader(logger)
	slices, err := loader.Load(cfg.Input)
	if err != nil {
		return fmt.Errorf("sigen: load: %w", err)
	}
	logger.Info("sigen: slices loaded", zap.Int("count", len(slices)))

	binarizer := imaging.NewBinarizer(uint32(cfg.VT))
	vol := binarizer.Binarize(slices)

	ext := extractor.New(logger)
	clusters, err := ext.Extract(vol)
	if err != nil {
		return fmt.Errorf("sigen: extract: %w", err)
	}

	bd, err := builder.New(cfg.ScaleXY, cfg.ScaleZ, logger)
	if err != nil {
		return fmt.Errorf("sigen: new builder: %w", err)
	}
	neurons, err := bd.Build(clusters)
	if err != nil {
		return fmt.Errorf("sigen: build: %w", err)
	}

	neurons, err = postprocess.Interpolate(neurons, cfg.DT)
	if err != nil {
		return fmt.Errorf("sigen: interpolate: %w", err)
	}
	neurons, err = postprocess.Smoothing(neurons, cfg.Smoothing)
	if err != nil {
		return fmt.Errorf("sigen: smoothing: %w", err)
	}
	neurons, err = postprocess.Clipping(neurons, cfg.Clipping)
	if err != nil {
		return fmt.Errorf("sigen: clipping: %w", err)
	}

	if err := swc.WriteFile(cfg.Output, neurons); err != nil {
		return fmt.Errorf("sigen: write swc: %w", err)
	}

	logger.Info("sigen: done", zap.Int("neurons", len(neurons)), zap.String("output", cfg.Output))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

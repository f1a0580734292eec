package main

import (
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/pixelart-recover/internal/imaging"
	"github.com/ironsheep/pixelart-recover/internal/pixelpipe"
	"github.com/ironsheep/pixelart-recover/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:     "pixelart-recover",
		Short:   "Recover a pixel-art grid from an upscaled or resampled image",
		Long:    "pixelart-recover detects the native pixel grid of an upscaled or resampled pixel-art image and resamples it back down to one output pixel per detected cell.",
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("PIXELART_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRecoverCmd(), newServeCmd())
	return rootCmd
}

func configureLogging(levelName string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	level, err := zerolog.ParseLevel(strings.ToLower(levelName))
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newRecoverCmd builds the "recover" subcommand: run the pipeline against a
// single file and write its outputs to disk rather than over MCP.
func newRecoverCmd() *cobra.Command {
	var (
		outDir             string
		sigma              float32
		enhanceEnergy      bool
		enhanceDirectional bool
		pixelSize          uint32
		minS, maxS         uint32
		sampleModeName     string
		upscale            uint32
		nativeRes          bool
		includeHeatmap     bool
		includeGridOverlay bool
	)

	cmd := &cobra.Command{
		Use:   "recover [image]",
		Short: "Detect and resample a pixel-art grid, writing PNGs to disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]

			mode, err := parseSampleMode(sampleModeName)
			if err != nil {
				return err
			}

			f, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", inputPath, err)
			}
			defer f.Close()

			img, _, err := image.Decode(f)
			if err != nil {
				return fmt.Errorf("failed to decode %s: %w", inputPath, err)
			}

			rgba, width, height := imaging.ToRGBA(img)

			params := pixelpipe.DefaultParams()
			params.Sigma = sigma
			params.EnhanceEnergy = enhanceEnergy
			params.EnhanceDirectional = enhanceDirectional
			params.PixelSize = pixelSize
			params.MinS = minS
			params.MaxS = maxS
			params.SampleMode = mode
			params.Upscale = upscale
			params.NativeRes = nativeRes

			result, err := pixelpipe.RunPipeline(
				pixelpipe.Image{Width: width, Height: height, RGBA: rgba},
				params,
				func(stage string, elapsed time.Duration) {
					log.Debug().Str("stage", stage).Dur("elapsed", elapsed).Msg("stage complete")
				},
			)
			if err != nil {
				return fmt.Errorf("pipeline failed: %w", err)
			}

			log.Info().
				Int("detected_pixel_size", result.DetectedPixelSize).
				Int("x_lines", len(result.XLines)).
				Int("y_lines", len(result.YLines)).
				Msg("grid recovered")

			if outDir == "" {
				outDir = filepath.Dir(inputPath)
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

			if result.PixelArt != nil {
				outPath := filepath.Join(outDir, base+".recovered.png")
				if err := writePNGFile(outPath, imaging.FromRGBA(result.PixelArt.RGBA, result.PixelArt.Width, result.PixelArt.Height)); err != nil {
					return err
				}
				log.Info().Str("path", outPath).Msg("wrote recovered pixel art")
			}

			if includeHeatmap && len(result.EnergyU8) > 0 {
				heatmap := image.NewGray(image.Rect(0, 0, result.Width, result.Height))
				copy(heatmap.Pix, result.EnergyU8)
				outPath := filepath.Join(outDir, base+".energy.png")
				if err := writePNGFile(outPath, heatmap); err != nil {
					return err
				}
				log.Info().Str("path", outPath).Msg("wrote energy heatmap")
			}

			if includeGridOverlay {
				overlay, err := imaging.DrawGridLines(img, result.AllXLines, result.AllYLines, false, "#00FF00C0")
				if err != nil {
					return fmt.Errorf("failed to render grid overlay: %w", err)
				}
				outPath := filepath.Join(outDir, base+".grid.png")
				if err := writeBase64PNG(outPath, overlay.ImageBase64); err != nil {
					return err
				}
				log.Info().Str("path", outPath).Msg("wrote grid overlay")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default: alongside input file)")
	cmd.Flags().Float32Var(&sigma, "sigma", 1.2, "Gaussian blur sigma")
	cmd.Flags().BoolVar(&enhanceEnergy, "enhance-energy", false, "apply gradient energy enhancement")
	cmd.Flags().BoolVar(&enhanceDirectional, "enhance-directional", false, "apply directional enhancement")
	cmd.Flags().Uint32Var(&pixelSize, "pixel-size", 0, "force a known pixel size (0 = auto-detect)")
	cmd.Flags().Uint32Var(&minS, "min-s", 4, "minimum pixel size to consider during auto-detect")
	cmd.Flags().Uint32Var(&maxS, "max-s", 32, "maximum pixel size to consider during auto-detect")
	cmd.Flags().StringVar(&sampleModeName, "sample-mode", "average", "sampling mode: direct, center, average, weighted")
	cmd.Flags().Uint32Var(&upscale, "upscale", 0, "tile each output pixel into an upscaleXupscale block (0 = auto)")
	cmd.Flags().BoolVar(&nativeRes, "native-res", false, "emit at the detected native resolution instead of upscaling")
	cmd.Flags().BoolVar(&includeHeatmap, "energy-heatmap", false, "also write the gradient energy heatmap")
	cmd.Flags().BoolVar(&includeGridOverlay, "grid-overlay", false, "also write the detected grid drawn over the source image")

	return cmd
}

// newServeCmd builds the "serve" subcommand: run the MCP server over stdio.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().Str("version", Version).Msg("starting pixelart-recover MCP server")
			srv := server.New()
			if err := srv.Run(); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
}

func parseSampleMode(s string) (pixelpipe.SampleMode, error) {
	switch strings.ToLower(s) {
	case "", "average":
		return pixelpipe.SampleAverage, nil
	case "direct":
		return pixelpipe.SampleDirect, nil
	case "center":
		return pixelpipe.SampleCenter, nil
	case "weighted":
		return pixelpipe.SampleWeighted, nil
	default:
		return 0, fmt.Errorf("unknown sample mode %q", s)
	}
}

func writePNGFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

func writeBase64PNG(path, b64 string) error {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return fmt.Errorf("failed to decode overlay PNG: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

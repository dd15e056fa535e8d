package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/philipparndt/meshray/internal/config"
	"github.com/philipparndt/meshray/pkg/raycast"
	"github.com/philipparndt/meshray/version"
	"github.com/spf13/cobra"
)

var (
	configFile   string
	verbose      bool
	strategyFlag string
	epsFlag      float64
	workersFlag  int

	// cfg is resolved before any command runs
	cfg    config.Config
	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "meshray",
	Short: "Nearest-hit ray casting against triangulated meshes",
	Long: `meshray casts rays, segments and lines against triangulated meshes and
reports the nearest hit together with the surface it belongs to.
Meshes are built from primitives, imported from STL or loaded from the
binary mesh format. Queries run serially, on one goroutine per chunk of
triangles, or on a long-lived worker pool.`,
	Version:           version.GetFullVersion(),
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "Config file (.yaml, .toml or .json)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&strategyFlag, "strategy", "", "Scan strategy: serial, partitioned or pooled")
	flags.Float64Var(&epsFlag, "eps", 0, "Geometric tolerance")
	flags.IntVar(&workersFlag, "workers", 0, "Worker goroutines (default: number of CPUs)")
}

// setup installs the logger and resolves the configuration
func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	raycast.SetLogger(logger)

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	return cfg.Resolve(config.Flags{
		Strategy:  strategyFlag,
		Tolerance: epsFlag,
		Workers:   workersFlag,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

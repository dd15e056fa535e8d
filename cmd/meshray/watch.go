package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/philipparndt/meshray/pkg/watcher"
	"github.com/spf13/cobra"
)

var (
	watchOrigin  []float64
	watchDir     []float64
	watchSegment bool
	watchLine    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-run a query whenever the mesh file changes",
	Long: `Cast a query against a mesh, then reload the mesh and cast again every time
the file is written or replaced. For OpenSCAD sources every used or included
file is watched as well. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Float64SliceVar(&watchOrigin, "origin", nil, "Query origin x,y,z")
	watchCmd.Flags().Float64SliceVar(&watchDir, "dir", nil, "Query direction x,y,z")
	watchCmd.Flags().BoolVar(&watchSegment, "segment", false, "Treat the query as the segment origin..origin+dir")
	watchCmd.Flags().BoolVar(&watchLine, "line", false, "Treat the query as an infinite line")
	_ = watchCmd.MarkFlagRequired("origin")
	_ = watchCmd.MarkFlagRequired("dir")
	watchCmd.MarkFlagsMutuallyExclusive("segment", "line")
}

func runWatch(cmd *cobra.Command, args []string) {
	filename := args[0]

	query, err := queryLine(watchOrigin, watchDir, watchSegment, watchLine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// every watched file has its own debounce timer
	cast := serialize(func() {
		m, err := loadMesh(filename)
		if err != nil {
			logger.Error("reload failed", "file", filename, "error", err)
			return
		}
		engine, err := newEngine(m)
		if err != nil {
			logger.Error("engine failed", "file", filename, "error", err)
			return
		}
		defer engine.Close()

		hit, ok := engine.CastRay(query)
		fmt.Printf("[%s] %s\n", time.Now().Format(time.TimeOnly), filename)
		printHit(query, hit, ok)
	})

	fw, err := watcher.NewFileWatcher(time.Duration(cfg.WatchDebounce), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating watcher: %v\n", err)
		os.Exit(1)
	}
	defer fw.Close()

	files, err := sourceFiles(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving sources: %v\n", err)
		os.Exit(1)
	}
	if err := fw.Watch(files, func(string) { cast() }); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching file: %v\n", err)
		os.Exit(1)
	}

	cast()
	fw.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
}

// serialize returns f guarded so that concurrent calls run one at a time
func serialize(f func()) func() {
	var mu sync.Mutex
	return func() {
		mu.Lock()
		defer mu.Unlock()
		f()
	}
}

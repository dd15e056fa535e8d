package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/meshray/pkg/render"
	"github.com/spf13/cobra"
)

var (
	renderOutput      string
	renderAxis        string
	renderWidth       int
	renderHeight      int
	renderSupersample int
	renderCaption     bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render an orthographic picture of a mesh",
	Long: `Cast one ray per pixel along a coordinate axis and colour every hit by its
surface. The picture is written as PNG or BMP depending on the output extension.`,
	Args: cobra.ExactArgs(1),
	Run:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output image (.png or .bmp)")
	renderCmd.Flags().StringVar(&renderAxis, "axis", "z", "View axis: x, y or z")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "Image width (default from config)")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "Image height (default from config)")
	renderCmd.Flags().IntVar(&renderSupersample, "supersample", 1, "Rays per pixel along each image axis")
	renderCmd.Flags().BoolVar(&renderCaption, "caption", false, "Draw a summary line")
	_ = renderCmd.MarkFlagRequired("output")
}

func runRender(cmd *cobra.Command, args []string) {
	m, err := loadMesh(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}

	engine, err := newEngine(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating engine: %v\n", err)
		os.Exit(1)
	}

	opts := render.Options{
		Width:       cfg.RenderWidth,
		Height:      cfg.RenderHeight,
		Axis:        renderAxis,
		Supersample: renderSupersample,
		Caption:     renderCaption,
	}
	if renderWidth > 0 {
		opts.Width = renderWidth
	}
	if renderHeight > 0 {
		opts.Height = renderHeight
	}

	img, stats, err := render.Render(engine, opts)
	engine.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}

	if err := render.WriteFile(renderOutput, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%dx%d)\n", renderOutput, opts.Width, opts.Height)
	fmt.Printf("  Rays: %d\n", stats.Rays)
	fmt.Printf("  Hits: %d\n", stats.Hits)
	fmt.Printf("  Surfaces seen: %d of %d\n", len(stats.Surfaces), len(m.Surfaces))
}

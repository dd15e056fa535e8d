package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/meshray/pkg/analysis"
	"github.com/spf13/cobra"
)

var measureFrom, measureTo []float64

var measureCmd = &cobra.Command{
	Use:   "measure [file]",
	Short: "Measure distance between two points",
	Long: `Measure the straight-line distance between two 3D points,
and between the mesh vertices nearest to them.`,
	Args: cobra.ExactArgs(1),
	Run:  runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().Float64SliceVar(&measureFrom, "from", nil, "First point x,y,z")
	measureCmd.Flags().Float64SliceVar(&measureTo, "to", nil, "Second point x,y,z")
	_ = measureCmd.MarkFlagRequired("from")
	_ = measureCmd.MarkFlagRequired("to")
}

func runMeasure(cmd *cobra.Command, args []string) {
	filename := args[0]

	p1, err := toPoint("from", measureFrom)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	p2, err := toPoint("to", measureTo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m, err := loadMesh(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Point-to-Point Measurement")
	fmt.Println("==========================")

	nearest1, dist1, ok1 := analysis.FindNearestVertex(m, p1)
	nearest2, dist2, ok2 := analysis.FindNearestVertex(m, p2)

	fmt.Printf("\nPoint 1: %s\n", analysis.FormatPoint(p1))
	if ok1 && dist1 > 0 {
		fmt.Printf("  Nearest vertex: %s (distance: %.6f)\n", analysis.FormatPoint(nearest1), dist1)
	}

	fmt.Printf("\nPoint 2: %s\n", analysis.FormatPoint(p2))
	if ok2 && dist2 > 0 {
		fmt.Printf("  Nearest vertex: %s (distance: %.6f)\n", analysis.FormatPoint(nearest2), dist2)
	}

	fmt.Printf("\nDirect distance: %s\n", analysis.FormatMeasurement(p1.Distance(p2), ""))

	if ok1 && ok2 && (dist1 > 0 || dist2 > 0) {
		fmt.Printf("Distance between nearest vertices: %s\n", analysis.FormatMeasurement(nearest1.Distance(nearest2), ""))
	}
}

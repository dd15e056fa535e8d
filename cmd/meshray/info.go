package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/meshray/pkg/analysis"
	"github.com/spf13/cobra"
)

var infoSurfaces bool

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a mesh",
	Long:  "Show comprehensive information including dimensions, triangle count, surface area, edge statistics and surfaces.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVarP(&infoSurfaces, "surfaces", "s", false, "List every surface")
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	m, err := loadMesh(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}

	result := analysis.AnalyzeMesh(m, cfg.Tolerance)

	fmt.Println("Mesh Information")
	fmt.Println("================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Mesh Statistics:")
	fmt.Printf("  Points: %d\n", result.PointCount)
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Degenerate triangles: %d\n", result.DegenerateCount)
	fmt.Printf("  Surfaces: %d\n", len(result.Surfaces))
	fmt.Printf("  Edges: %d (%d unique)\n", result.EdgeCount, result.UniqueEdgeCount)
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	if result.TriangleCount == 0 {
		return
	}

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatPoint(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatPoint(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatPoint(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Printf("  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Printf("  Height (Z): %.6f units\n", result.Dimensions.Z)
	fmt.Printf("  Diagonal: %.6f units\n", result.BoundingBox.Diagonal())
	fmt.Printf("  Volume: %.6f cubic units\n\n", result.Volume)

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n", result.AvgEdgeLength)

	if !infoSurfaces {
		return
	}

	fmt.Println("\nSurfaces:")
	fmt.Printf("  %-6s %-14s %-10s %-14s %-12s %s\n", "ID", "Triangles", "Count", "Area", "Shape", "Normal / Axis")
	for _, s := range result.Surfaces {
		shape, detail := "curved", ""
		switch {
		case s.Planar:
			shape, detail = "planar", analysis.FormatVector(s.Normal)
		case s.Cylindrical:
			shape = "cylindrical"
			detail = fmt.Sprintf("%s through %s, radius %.6f",
				analysis.FormatVector(s.Cylinder.Axis), analysis.FormatPoint(s.Cylinder.Origin), s.Cylinder.Radius)
		}
		fmt.Printf("  %-6d %-14s %-10d %-14.6f %-12s %s\n",
			s.ID, s.Surface, s.Triangles, s.Area, shape, detail)
	}
}

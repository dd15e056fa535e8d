package main

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/philipparndt/meshray/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	triCount    int
	triLargest  bool
	triSmallest bool
	triSurface  int
)

type triangleInfo struct {
	Index     int
	SurfaceID int
	Area      float64
	Perimeter float64
	Vertices  string
}

var trianglesCmd = &cobra.Command{
	Use:   "triangles [file]",
	Short: "Analyze triangles in a mesh",
	Long:  "Display information about triangles including surface, area, perimeter, and vertex positions.",
	Args:  cobra.ExactArgs(1),
	Run:   runTriangles,
}

func init() {
	rootCmd.AddCommand(trianglesCmd)

	trianglesCmd.Flags().IntVarP(&triCount, "count", "n", 10, "Number of triangles to display")
	trianglesCmd.Flags().BoolVarP(&triLargest, "largest", "l", false, "Show largest triangles by area")
	trianglesCmd.Flags().BoolVarP(&triSmallest, "smallest", "s", false, "Show smallest triangles by area")
	trianglesCmd.Flags().IntVar(&triSurface, "surface", -1, "Only show triangles of this surface id")
}

func runTriangles(cmd *cobra.Command, args []string) {
	filename := args[0]

	m, err := loadMesh(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}

	begin, end := 0, m.TriangleCount()
	if triSurface >= 0 {
		if triSurface >= len(m.Surfaces) {
			fmt.Fprintf(os.Stderr, "Error: surface %d out of range (mesh has %d)\n", triSurface, len(m.Surfaces))
			os.Exit(1)
		}
		begin, end = m.Surfaces[triSurface].Begin, m.Surfaces[triSurface].End
	}

	triangles := make([]triangleInfo, 0, end-begin)
	totalArea := 0.0
	minArea := math.MaxFloat64
	maxArea := 0.0

	for i := begin; i < end; i++ {
		tri := m.Triangle(i)
		area := tri.Area()

		triangles = append(triangles, triangleInfo{
			Index:     i,
			SurfaceID: m.SurfaceIndex(i),
			Area:      area,
			Perimeter: tri.Perimeter(),
			Vertices: fmt.Sprintf("%s, %s, %s",
				analysis.FormatPoint(tri.A),
				analysis.FormatPoint(tri.B),
				analysis.FormatPoint(tri.C)),
		})

		totalArea += area
		minArea = math.Min(minArea, area)
		maxArea = math.Max(maxArea, area)
	}

	if len(triangles) == 0 {
		fmt.Println("No triangles.")
		return
	}

	var title string
	switch {
	case triLargest:
		sort.SliceStable(triangles, func(i, j int) bool {
			return triangles[i].Area > triangles[j].Area
		})
		title = fmt.Sprintf("Top %d Largest Triangles", min(triCount, len(triangles)))
	case triSmallest:
		sort.SliceStable(triangles, func(i, j int) bool {
			return triangles[i].Area < triangles[j].Area
		})
		title = fmt.Sprintf("Top %d Smallest Triangles", min(triCount, len(triangles)))
	default:
		title = fmt.Sprintf("First %d Triangles", min(triCount, len(triangles)))
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total triangles: %d\n", len(triangles))
	fmt.Printf("Total surface area: %.6f square units\n", totalArea)
	fmt.Printf("Min triangle area: %.6f square units\n", minArea)
	fmt.Printf("Max triangle area: %.6f square units\n", maxArea)
	fmt.Printf("Avg triangle area: %.6f square units\n\n", totalArea/float64(len(triangles)))

	for _, tri := range triangles[:min(triCount, len(triangles))] {
		fmt.Printf("Triangle #%d (surface %d):\n", tri.Index, tri.SurfaceID)
		fmt.Printf("  Area: %.6f square units\n", tri.Area)
		fmt.Printf("  Perimeter: %.6f units\n", tri.Perimeter)
		fmt.Printf("  Vertices: %s\n\n", tri.Vertices)
	}
}

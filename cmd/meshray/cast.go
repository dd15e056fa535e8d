package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	castOrigin  []float64
	castDir     []float64
	castSegment bool
	castLine    bool
)

var castCmd = &cobra.Command{
	Use:   "cast [file]",
	Short: "Find the nearest hit of a ray, segment or line",
	Long: `Cast a query against a mesh and report the nearest hit point, its triangle
and the surface the triangle belongs to.
By default the query is a ray from --origin along --dir. With --segment it
ends at origin+dir; with --line it extends in both directions.`,
	Args: cobra.ExactArgs(1),
	Run:  runCast,
}

func init() {
	rootCmd.AddCommand(castCmd)

	castCmd.Flags().Float64SliceVar(&castOrigin, "origin", nil, "Query origin x,y,z")
	castCmd.Flags().Float64SliceVar(&castDir, "dir", nil, "Query direction x,y,z")
	castCmd.Flags().BoolVar(&castSegment, "segment", false, "Treat the query as the segment origin..origin+dir")
	castCmd.Flags().BoolVar(&castLine, "line", false, "Treat the query as an infinite line")
	_ = castCmd.MarkFlagRequired("origin")
	_ = castCmd.MarkFlagRequired("dir")
	castCmd.MarkFlagsMutuallyExclusive("segment", "line")
}

func runCast(cmd *cobra.Command, args []string) {
	query, err := queryLine(castOrigin, castDir, castSegment, castLine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

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
	defer engine.Close()

	hit, ok := engine.CastRay(query)
	printHit(query, hit, ok)
}

package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/meshray/pkg/mesh"
	"github.com/philipparndt/meshray/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	importOutput   string
	importCoplanar float64
)

var importCmd = &cobra.Command{
	Use:   "import [file.stl]",
	Short: "Convert an STL file to the binary mesh format",
	Long: `Read an ASCII or binary STL file and write it as a mesh.
Consecutive facets lying in one plane with the same orientation become one surface.`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Output mesh file")
	importCmd.Flags().Float64Var(&importCoplanar, "coplanar", coplanarTolerance, "Tolerance for grouping facets into surfaces")
	_ = importCmd.MarkFlagRequired("output")
	addTransformFlags(importCmd.Flags())
}

func runImport(cmd *cobra.Command, args []string) {
	filename := args[0]

	model, err := stl.Parse(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL file: %v\n", err)
		os.Exit(1)
	}

	m, skipped := model.ToMesh(importCoplanar)
	if err := applyPlacement(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := mesh.SaveFile(importOutput, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing mesh: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %s -> %s\n", filename, importOutput)
	if model.Name != "" {
		fmt.Printf("  Name: %s\n", model.Name)
	}
	fmt.Printf("  Facets: %d\n", model.FacetCount())
	fmt.Printf("  Skipped degenerate facets: %d\n", skipped)
	fmt.Printf("  Surfaces: %d\n", len(m.Surfaces))
}

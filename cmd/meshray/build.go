package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/meshray/pkg/mesh"
	"github.com/spf13/cobra"
)

var (
	buildOutput string
	buildCenter []float64
	buildSize   []float64
	buildOrigin []float64
	buildAxis   []float64
	buildRadius float64
	buildHeight float64
	buildTol    float64
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate a mesh from a primitive",
	Long: `Generate a cube, cuboid or closed cylinder mesh and write it in the binary mesh format.
--scale, --rotate and --translate place the result, applied in that order.`,
}

var buildCubeCmd = &cobra.Command{
	Use:   "cube",
	Short: "Generate an axis-aligned cube or cuboid",
	Long: `Generate an axis-aligned box with one surface per face.
--size takes one value for a cube or three for a cuboid.`,
	Args: cobra.NoArgs,
	Run:  runBuildCube,
}

var buildCylinderCmd = &cobra.Command{
	Use:   "cylinder",
	Short: "Generate a closed cylinder",
	Long: `Generate a cylinder with a bottom cap, a top cap and a lateral band as surfaces.
The number of sides follows from the chord tolerance.`,
	Args: cobra.NoArgs,
	Run:  runBuildCylinder,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.AddCommand(buildCubeCmd)
	buildCmd.AddCommand(buildCylinderCmd)

	buildCmd.PersistentFlags().StringVarP(&buildOutput, "output", "o", "", "Output mesh file")
	_ = buildCmd.MarkPersistentFlagRequired("output")
	addTransformFlags(buildCmd.PersistentFlags())

	buildCubeCmd.Flags().Float64SliceVar(&buildCenter, "center", []float64{0, 0, 0}, "Center x,y,z")
	buildCubeCmd.Flags().Float64SliceVar(&buildSize, "size", []float64{1}, "Side length, or x,y,z sizes")

	buildCylinderCmd.Flags().Float64SliceVar(&buildOrigin, "origin", []float64{0, 0, 0}, "Center of the bottom cap x,y,z")
	buildCylinderCmd.Flags().Float64SliceVar(&buildAxis, "axis", []float64{0, 0, 1}, "Axis direction x,y,z")
	buildCylinderCmd.Flags().Float64Var(&buildRadius, "radius", 1, "Radius")
	buildCylinderCmd.Flags().Float64Var(&buildHeight, "height", 1, "Height along the axis")
	buildCylinderCmd.Flags().Float64Var(&buildTol, "tol", 0.01, "Chord tolerance")
}

func runBuildCube(cmd *cobra.Command, args []string) {
	center, err := toPoint("center", buildCenter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var m *mesh.Mesh
	switch len(buildSize) {
	case 1:
		m, err = mesh.Cube(center, buildSize[0])
	case 3:
		m, err = mesh.Cuboid(center, buildSize[0], buildSize[1], buildSize[2])
	default:
		err = fmt.Errorf("--size takes one or three values, got %d", len(buildSize))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building cube: %v\n", err)
		os.Exit(1)
	}

	writeBuilt(m)
}

func runBuildCylinder(cmd *cobra.Command, args []string) {
	origin, err := toPoint("origin", buildOrigin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	axis, err := toVector("axis", buildAxis)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m, err := mesh.Cylinder(origin, axis, buildRadius, buildHeight, buildTol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building cylinder: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sides: %d\n", mesh.CylinderSides(buildRadius, buildTol))
	writeBuilt(m)
}

func writeBuilt(m *mesh.Mesh) {
	if err := applyPlacement(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := mesh.SaveFile(buildOutput, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing mesh: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", buildOutput)
	fmt.Printf("  Points: %d\n", len(m.Points))
	fmt.Printf("  Triangles: %d\n", m.TriangleCount())
	fmt.Printf("  Surfaces: %d\n", len(m.Surfaces))
}

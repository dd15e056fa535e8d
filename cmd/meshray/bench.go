package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/philipparndt/meshray/pkg/geometry"
	"github.com/philipparndt/meshray/pkg/mesh"
	"github.com/philipparndt/meshray/pkg/raycast"
	"github.com/spf13/cobra"
)

var (
	benchRays int
	benchSeed uint64
)

var benchCmd = &cobra.Command{
	Use:   "bench [file]",
	Short: "Compare the scan strategies on random rays",
	Long: `Cast the same random rays with every strategy, check that all strategies
return identical hits and print the time each one took.
Rays start on a sphere around the mesh and aim at random points of its bounding box.`,
	Args: cobra.ExactArgs(1),
	Run:  runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().IntVarP(&benchRays, "rays", "n", 1000, "Number of rays")
	benchCmd.Flags().Uint64Var(&benchSeed, "seed", 1, "Random seed")
}

func runBench(cmd *cobra.Command, args []string) {
	m, err := loadMesh(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}
	if benchRays <= 0 {
		fmt.Fprintf(os.Stderr, "Error: --rays must be positive\n")
		os.Exit(1)
	}

	rays := randomRays(m, benchRays, benchSeed)
	opts := cfg.EngineOptions()

	fmt.Println("Strategy Benchmark")
	fmt.Println("==================")
	fmt.Printf("Triangles: %d\n", m.TriangleCount())
	fmt.Printf("Rays: %d\n", len(rays))
	fmt.Printf("Workers: %d\n\n", opts.Workers)
	fmt.Printf("%-12s %-14s %-14s %-8s %s\n", "Strategy", "Total", "Per ray", "Hits", "Mismatches")

	var reference []raycast.Hit
	var referenceOK []bool
	failed := false

	for _, strategy := range raycast.Strategies {
		opts.Strategy = strategy
		engine, err := raycast.NewEngine(m, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating engine: %v\n", err)
			os.Exit(1)
		}

		hits := make([]raycast.Hit, len(rays))
		oks := make([]bool, len(rays))
		start := time.Now()
		for i, ray := range rays {
			hits[i], oks[i] = engine.CastRay(ray)
		}
		elapsed := time.Since(start)
		engine.Close()

		count, mismatches := 0, 0
		for i := range rays {
			if oks[i] {
				count++
			}
			if reference != nil && !sameHit(hits[i], oks[i], reference[i], referenceOK[i], opts.Tolerance) {
				mismatches++
			}
		}
		if reference == nil {
			reference, referenceOK = hits, oks
		}
		if mismatches > 0 {
			failed = true
		}

		fmt.Printf("%-12s %-14s %-14s %-8d %d\n",
			strategy, elapsed.Round(time.Microsecond), (elapsed / time.Duration(len(rays))).Round(time.Nanosecond), count, mismatches)
	}

	if failed {
		fmt.Fprintf(os.Stderr, "Error: strategies disagree\n")
		os.Exit(1)
	}
}

// sameHit compares two query results by hit point and surface
func sameHit(a raycast.Hit, aok bool, b raycast.Hit, bok bool, eps float64) bool {
	if aok != bok {
		return false
	}
	if !aok {
		return true
	}
	return a.SurfaceID == b.SurfaceID && a.Surface == b.Surface && a.Point.Equal(b.Point, eps)
}

// randomRays aims rays from a sphere around the mesh at points inside its bounding box
func randomRays(m *mesh.Mesh, n int, seed uint64) []geometry.Line {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	bbox := m.BoundingBox()
	if bbox.IsEmpty() {
		bbox.Extend(geometry.Point3{})
	}
	center := bbox.Center()
	radius := bbox.Diagonal() + 1
	size := bbox.Size()

	rays := make([]geometry.Line, n)
	for i := range rays {
		// uniform direction on the unit sphere
		z := 2*rng.Float64() - 1
		phi := 2 * math.Pi * rng.Float64()
		r := math.Sqrt(1 - z*z)
		dir := geometry.NewVector3(r*math.Cos(phi), r*math.Sin(phi), z)

		origin := center.Add(dir.Mul(radius))
		target := bbox.Min.Add(geometry.NewVector3(
			size.X*rng.Float64(),
			size.Y*rng.Float64(),
			size.Z*rng.Float64(),
		))
		d := target.Sub(origin)
		if d.IsZero(geometry.Eps) {
			d = dir.Neg()
		}
		rays[i] = geometry.NewRay(origin, d)
	}
	return rays
}

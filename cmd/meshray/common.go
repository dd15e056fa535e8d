package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/meshray/pkg/analysis"
	"github.com/philipparndt/meshray/pkg/geometry"
	"github.com/philipparndt/meshray/pkg/mesh"
	"github.com/philipparndt/meshray/pkg/openscad"
	"github.com/philipparndt/meshray/pkg/raycast"
	"github.com/philipparndt/meshray/pkg/stl"
)

// coplanarTolerance groups STL facets into surfaces; STL stores float32
const coplanarTolerance = 1e-5

// loadMesh reads a binary mesh, or imports an STL or OpenSCAD file by extension
func loadMesh(filename string) (*mesh.Mesh, error) {
	var (
		m       *mesh.Mesh
		skipped int
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".stl":
		model, err := stl.Parse(filename)
		if err != nil {
			return nil, err
		}
		m, skipped = model.ToMesh(coplanarTolerance)
	case ".scad":
		var err error
		m, skipped, err = scadRenderer().RenderMesh(context.Background(), filename, coplanarTolerance)
		if err != nil {
			return nil, err
		}
	default:
		return mesh.LoadFile(filename)
	}
	if skipped > 0 {
		logger.Warn("skipped degenerate facets", "file", filename, "count", skipped)
	}
	return m, nil
}

func scadRenderer() *openscad.Renderer {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return openscad.NewRenderer(wd)
}

// sourceFiles lists the files whose change alters the mesh loaded from filename
func sourceFiles(filename string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".scad") {
		return scadRenderer().ResolveDependencies(filename)
	}
	return []string{filename}, nil
}

// toVector converts an x,y,z flag value
func toVector(name string, values []float64) (geometry.Vector3, error) {
	if len(values) != 3 {
		return geometry.Vector3{}, fmt.Errorf("--%s needs three comma separated values, got %d", name, len(values))
	}
	return geometry.NewVector3(values[0], values[1], values[2]), nil
}

func toPoint(name string, values []float64) (geometry.Point3, error) {
	v, err := toVector(name, values)
	return geometry.Point3(v), err
}

// queryLine builds the line, ray or segment given by the query flags
func queryLine(origin, dir []float64, segment, line bool) (geometry.Line, error) {
	o, err := toPoint("origin", origin)
	if err != nil {
		return geometry.Line{}, err
	}
	d, err := toVector("dir", dir)
	if err != nil {
		return geometry.Line{}, err
	}
	switch {
	case segment && line:
		return geometry.Line{}, fmt.Errorf("--segment and --line are mutually exclusive")
	case segment:
		return geometry.NewSegment(o, o.Add(d)), nil
	case line:
		return geometry.NewLine(o, d), nil
	default:
		return geometry.NewRay(o, d), nil
	}
}

func newEngine(m *mesh.Mesh) (*raycast.Engine, error) {
	return raycast.NewEngine(m, cfg.EngineOptions())
}

func printHit(query geometry.Line, hit raycast.Hit, ok bool) {
	fmt.Printf("Query: %s from %s along %s\n", query.Domain, analysis.FormatPoint(query.Origin), analysis.FormatVector(query.Direction))
	if !ok {
		fmt.Println("  No hit")
		return
	}
	fmt.Printf("  Hit point: %s\n", analysis.FormatPoint(hit.Point))
	fmt.Printf("  Distance: %.6f units\n", hit.Distance)
	fmt.Printf("  Triangle: %d\n", hit.Triangle)
	fmt.Printf("  Surface: #%d %s\n", hit.SurfaceID, hit.Surface)
}

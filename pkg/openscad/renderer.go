// Package openscad turns OpenSCAD sources into meshes by running the
// openscad binary and importing the STL it exports.
package openscad

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/philipparndt/meshray/pkg/mesh"
	"github.com/philipparndt/meshray/pkg/stl"
)

// ErrNotInstalled is returned when the openscad binary cannot be found
var ErrNotInstalled = errors.New("openscad not found in PATH")

var dependencyRegex = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// Renderer runs openscad for sources below a working directory
type Renderer struct {
	Binary  string // defaults to "openscad"
	workDir string
}

// NewRenderer creates a renderer resolving relative paths against workDir
func NewRenderer(workDir string) *Renderer {
	return &Renderer{
		Binary:  "openscad",
		workDir: workDir,
	}
}

func (r *Renderer) abs(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(r.workDir, file)
}

// RenderToSTL exports an OpenSCAD file as STL
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	binary, err := exec.LookPath(r.Binary)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrNotInstalled, r.Binary)
	}

	cmd := exec.CommandContext(ctx, binary, "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(output.String())
		if msg == "" {
			return fmt.Errorf("failed to render %s: %w", scadFile, err)
		}
		return fmt.Errorf("failed to render %s: %w\n%s", scadFile, err, msg)
	}
	return nil
}

// RenderMesh exports an OpenSCAD file and converts the result to a mesh.
// eps groups coplanar facets into surfaces. skipped counts degenerate facets.
func (r *Renderer) RenderMesh(ctx context.Context, scadFile string, eps float64) (m *mesh.Mesh, skipped int, err error) {
	dir, err := os.MkdirTemp("", "meshray-scad-")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, strings.TrimSuffix(filepath.Base(scadFile), filepath.Ext(scadFile))+".stl")
	if err := r.RenderToSTL(ctx, scadFile, out); err != nil {
		return nil, 0, err
	}

	model, err := stl.Parse(out)
	if err != nil {
		return nil, 0, err
	}
	m, skipped = model.ToMesh(eps)
	return m, skipped, nil
}

// ResolveDependencies returns the absolute paths of scadFile and every file
// it reaches through use or include statements, scadFile first
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	visited := make(map[string]bool)
	var deps []string

	var visit func(string) error
	visit = func(file string) error {
		if visited[file] {
			return nil
		}
		visited[file] = true
		deps = append(deps, file)

		direct, err := r.parseDependencies(file)
		if err != nil {
			return err
		}
		for _, dep := range direct {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(filepath.Clean(r.abs(scadFile))); err != nil {
		return nil, err
	}
	return deps, nil
}

// parseDependencies lists the use/include targets of one file
func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	file, err := os.Open(scadFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", scadFile, err)
	}
	defer file.Close()

	var deps []string
	scadDir := filepath.Dir(scadFile)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if matches := dependencyRegex.FindStringSubmatch(line); len(matches) > 1 {
			deps = append(deps, r.resolveDepPath(matches[1], scadDir))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", scadFile, err)
	}
	return deps, nil
}

// resolveDepPath looks next to the including file first, then in the work directory
func (r *Renderer) resolveDepPath(depPath, currentDir string) string {
	if filepath.IsAbs(depPath) {
		return filepath.Clean(depPath)
	}
	local := filepath.Join(currentDir, depPath)
	if strings.HasPrefix(depPath, "./") || strings.HasPrefix(depPath, "../") {
		return filepath.Clean(local)
	}
	if _, err := os.Stat(local); err == nil {
		return filepath.Clean(local)
	}
	return filepath.Clean(filepath.Join(r.workDir, depPath))
}

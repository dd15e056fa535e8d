package raycast

import (
	"runtime"
	"sync"

	"github.com/philipparndt/meshray/pkg/geometry"
	"github.com/philipparndt/meshray/pkg/mesh"
	"github.com/philipparndt/meshray/pkg/pool"
)

// DefaultTaskFraction is the share of the triangles handled by one pool task
const DefaultTaskFraction = 0.01

// chunk is a half-open triangle range
type chunk struct {
	begin, end int
}

// split divides n triangles into parts contiguous chunks; the first n%parts
// chunks get one extra triangle. Empty chunks are not produced.
func split(n, parts int) []chunk {
	if parts > n {
		parts = n
	}
	if parts <= 0 {
		return nil
	}
	base, rem := n/parts, n%parts
	chunks := make([]chunk, 0, parts)
	begin := 0
	for i := range parts {
		size := base
		if i < rem {
			size++
		}
		chunks = append(chunks, chunk{begin: begin, end: begin + size})
		begin += size
	}
	return chunks
}

// TaskSize returns the number of triangles per pool task for a mesh of n
// triangles: fraction of n, at least one
func TaskSize(n int, fraction float64) int {
	if fraction <= 0 || fraction > 1 {
		fraction = DefaultTaskFraction
	}
	return max(1, int(float64(n)*fraction))
}

// CastRayPartitioned splits the triangles into one contiguous chunk per
// worker, scans each chunk on its own goroutine and reduces the partial
// results after all of them have joined. workers <= 0 uses runtime.NumCPU().
func CastRayPartitioned(m *mesh.Mesh, ray geometry.Line, eps float64, workers int) (Hit, bool) {
	if !castable(m, ray, eps) {
		return Hit{}, false
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	chunks := split(m.TriangleCount(), workers)
	partials := make([]candidate, len(chunks))

	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for i, c := range chunks {
		go func() {
			defer wg.Done()
			partials[i] = scanRange(m, ray, eps, c.begin, c.end)
		}()
	}
	wg.Wait()

	Logger().Debug("partitioned cast", "chunks", len(chunks), "triangles", m.TriangleCount())
	return toHit(m, reduce(partials))
}

// CastRayPooled splits the triangles into tasks of taskSize triangles
// (taskSize <= 0 uses DefaultTaskFraction of the mesh), runs them on p and
// reduces after p.Wait. Each task writes only its own slot of the result
// arena. Tasks the pool refuses, or drops because it was stopped before
// they ran, are scanned on the caller.
//
// Wait covers every task on the pool, so callers sharing one pool across
// goroutines still get correct results but may wait for each other.
func CastRayPooled(m *mesh.Mesh, ray geometry.Line, eps float64, p *pool.Pool, taskSize int) (Hit, bool) {
	if !castable(m, ray, eps) {
		return Hit{}, false
	}
	n := m.TriangleCount()
	if taskSize <= 0 {
		taskSize = TaskSize(n, DefaultTaskFraction)
	}

	chunks := split(n, (n+taskSize-1)/taskSize)
	partials := make([]candidate, len(chunks))
	ran := make([]bool, len(chunks))

	for i, c := range chunks {
		p.Submit(func() {
			partials[i] = scanRange(m, ray, eps, c.begin, c.end)
			ran[i] = true
		})
	}
	p.Wait()

	// slots without a run were refused or dropped by Stop
	missed := 0
	for i, c := range chunks {
		if !ran[i] {
			partials[i] = scanRange(m, ray, eps, c.begin, c.end)
			missed++
		}
	}
	if missed > 0 {
		Logger().Warn("pool skipped tasks, scanned on caller", "missed", missed, "tasks", len(chunks))
	}
	Logger().Debug("pooled cast", "tasks", len(chunks), "triangles", n)
	return toHit(m, reduce(partials))
}

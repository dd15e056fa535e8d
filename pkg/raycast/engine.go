package raycast

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/philipparndt/meshray/pkg/geometry"
	"github.com/philipparndt/meshray/pkg/mesh"
	"github.com/philipparndt/meshray/pkg/pool"
)

// Strategy selects how an Engine scans the triangles
type Strategy int

const (
	// Serial scans on the calling goroutine
	Serial Strategy = iota
	// Partitioned starts one goroutine per contiguous chunk for every query
	Partitioned
	// Pooled submits small tasks to a long-lived worker pool
	Pooled
)

// Strategies lists all strategies in declaration order
var Strategies = []Strategy{Serial, Partitioned, Pooled}

func (s Strategy) String() string {
	switch s {
	case Serial:
		return "serial"
	case Partitioned:
		return "partitioned"
	case Pooled:
		return "pooled"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a strategy name (case-insensitive) to a Strategy
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if strings.EqualFold(strings.TrimSpace(name), s.String()) {
			return s, nil
		}
	}
	return Serial, fmt.Errorf("unknown strategy %q (expected serial, partitioned or pooled)", name)
}

// MarshalText implements encoding.TextMarshaler
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Options configures an Engine
type Options struct {
	Strategy     Strategy
	Tolerance    float64 // geometric eps for all intersection tests
	Workers      int     // goroutines for Partitioned and Pooled
	TaskFraction float64 // share of the triangles per pool task
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Strategy:     Partitioned,
		Tolerance:    geometry.Eps,
		Workers:      runtime.NumCPU(),
		TaskFraction: DefaultTaskFraction,
	}
}

// normalized fills zero values with defaults
func (o Options) normalized() Options {
	def := DefaultOptions()
	if o.Tolerance <= 0 {
		o.Tolerance = def.Tolerance
	}
	if o.Workers <= 0 {
		o.Workers = def.Workers
	}
	if o.TaskFraction <= 0 || o.TaskFraction > 1 {
		o.TaskFraction = def.TaskFraction
	}
	return o
}

// Engine answers nearest-hit queries against one immutable mesh. It hides
// the chosen strategy and, for Pooled, owns the worker pool.
//
// Thread safety: CastRay is safe for concurrent use as long as the mesh is
// not modified.
type Engine struct {
	mesh     *mesh.Mesh
	opts     Options
	taskSize int
	pool     *pool.Pool

	closeOnce sync.Once
}

// NewEngine validates the mesh and prepares the strategy
func NewEngine(m *mesh.Mesh, opts Options) (*Engine, error) {
	if m == nil {
		return nil, fmt.Errorf("mesh is nil")
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mesh: %w", err)
	}
	switch opts.Strategy {
	case Serial, Partitioned, Pooled:
	default:
		return nil, fmt.Errorf("unknown strategy %v", opts.Strategy)
	}
	opts = opts.normalized()

	e := &Engine{
		mesh:     m,
		opts:     opts,
		taskSize: TaskSize(m.TriangleCount(), opts.TaskFraction),
	}
	if opts.Strategy == Pooled {
		e.pool = pool.New(opts.Workers, pool.WithLogger(Logger()))
	}

	Logger().Info("engine ready",
		"strategy", opts.Strategy,
		"triangles", m.TriangleCount(),
		"surfaces", len(m.Surfaces),
		"workers", opts.Workers)
	return e, nil
}

// Options returns the effective options
func (e *Engine) Options() Options {
	return e.opts
}

// Mesh returns the mesh the engine queries
func (e *Engine) Mesh() *mesh.Mesh {
	return e.mesh
}

// CastRay returns the nearest hit of ray with the mesh
func (e *Engine) CastRay(ray geometry.Line) (Hit, bool) {
	var (
		hit Hit
		ok  bool
	)
	switch e.opts.Strategy {
	case Partitioned:
		hit, ok = CastRayPartitioned(e.mesh, ray, e.opts.Tolerance, e.opts.Workers)
	case Pooled:
		hit, ok = CastRayPooled(e.mesh, ray, e.opts.Tolerance, e.pool, e.taskSize)
	default:
		hit, ok = CastRay(e.mesh, ray, e.opts.Tolerance)
	}

	if ok {
		Logger().Debug("hit", "triangle", hit.Triangle, "surface", hit.Surface.String(), "distance", hit.Distance)
	}
	return hit, ok
}

// Close stops the worker pool, if any. Later pooled queries are scanned on
// the caller.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		if e.pool != nil {
			e.pool.Stop()
		}
	})
}

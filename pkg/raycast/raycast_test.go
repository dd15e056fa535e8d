package raycast

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshray/pkg/geometry"
	"github.com/philipparndt/meshray/pkg/mesh"
	"github.com/philipparndt/meshray/pkg/pool"
)

// castFunc runs one strategy for a query
type castFunc func(m *mesh.Mesh, ray geometry.Line) (Hit, bool)

func strategies(t *testing.T) map[string]castFunc {
	t.Helper()
	p := pool.New(4)
	t.Cleanup(p.Stop)

	return map[string]castFunc{
		"serial": func(m *mesh.Mesh, ray geometry.Line) (Hit, bool) {
			return CastRay(m, ray, geometry.Eps)
		},
		"partitioned": func(m *mesh.Mesh, ray geometry.Line) (Hit, bool) {
			return CastRayPartitioned(m, ray, geometry.Eps, 4)
		},
		"partitioned more workers than triangles": func(m *mesh.Mesh, ray geometry.Line) (Hit, bool) {
			return CastRayPartitioned(m, ray, geometry.Eps, 1000)
		},
		"pooled": func(m *mesh.Mesh, ray geometry.Line) (Hit, bool) {
			return CastRayPooled(m, ray, geometry.Eps, p, 1)
		},
		"pooled default task size": func(m *mesh.Mesh, ray geometry.Line) (Hit, bool) {
			return CastRayPooled(m, ray, geometry.Eps, p, 0)
		},
	}
}

func unitCube(t *testing.T) *mesh.Mesh {
	t.Helper()
	m, err := mesh.Cube(geometry.NewPoint3(0.5, 0.5, 0.5), 1)
	require.NoError(t, err)
	return m
}

func TestCastRayCube(t *testing.T) {
	m := unitCube(t)

	for name, cast := range strategies(t) {
		t.Run(name, func(t *testing.T) {
			ray := geometry.NewRay(geometry.NewPoint3(1.22, 2, 1.5), geometry.NewVector3(-1.72, -2, -1.5))
			hit, ok := cast(m, ray)
			require.True(t, ok)

			assert.True(t, hit.Point.Equal(geometry.NewPoint3(0.36, 1, 0.75), 1e-9), "got %v", hit.Point)
			assert.Equal(t, mesh.Surface{Begin: 2, End: 4}, hit.Surface)
			assert.Equal(t, 1, hit.SurfaceID)
			assert.InDelta(t, hit.Point.Distance(ray.Origin), hit.Distance, 1e-12)

			miss := geometry.NewRay(geometry.NewPoint3(0, 3, 1.5), geometry.NewVector3(-0.5, -3, -1.5))
			_, ok = cast(m, miss)
			assert.False(t, ok)
		})
	}
}

func TestCastRayCylinderCaps(t *testing.T) {
	m, err := mesh.Cylinder(geometry.NewPoint3(0, 0, 0), geometry.NewVector3(0, 0, 1), 1, 2, 0.5)
	require.NoError(t, err)

	for name, cast := range strategies(t) {
		t.Run(name, func(t *testing.T) {
			hit, ok := cast(m, geometry.NewRay(geometry.NewPoint3(0, 0, 3), geometry.NewVector3(0, 0, -1)))
			require.True(t, ok)
			assert.True(t, hit.Point.Equal(geometry.NewPoint3(0, 0, 2), 1e-9), "got %v", hit.Point)
			assert.Equal(t, mesh.Surface{Begin: 3, End: 6}, hit.Surface)
			// the ray meets all three cap triangles at the shared center
			assert.Equal(t, 3, hit.Triangle)

			hit, ok = cast(m, geometry.NewRay(geometry.NewPoint3(0, 0, -3), geometry.NewVector3(0, 0, 1)))
			require.True(t, ok)
			assert.True(t, hit.Point.Equal(geometry.NewPoint3(0, 0, 0), 1e-9), "got %v", hit.Point)
			assert.Equal(t, mesh.Surface{Begin: 0, End: 3}, hit.Surface)
			assert.Equal(t, 0, hit.Triangle)
		})
	}
}

func TestCastRayDomains(t *testing.T) {
	m := unitCube(t)
	origin := geometry.NewPoint3(0.5, 0.5, 3)

	// pointing away: a ray misses, the infinite line still hits the top face
	away := geometry.NewVector3(0, 0, 1)
	_, ok := CastRay(m, geometry.NewRay(origin, away), geometry.Eps)
	assert.False(t, ok)

	hit, ok := CastRay(m, geometry.NewLine(origin, away), geometry.Eps)
	require.True(t, ok)
	assert.True(t, hit.Point.Equal(geometry.NewPoint3(0.5, 0.5, 1), 1e-9))
	assert.Equal(t, 4, hit.SurfaceID)

	// a segment ending above the cube misses, one reaching into it hits
	_, ok = CastRay(m, geometry.NewSegment(origin, geometry.NewPoint3(0.5, 0.5, 1.5)), geometry.Eps)
	assert.False(t, ok)
	hit, ok = CastRay(m, geometry.NewSegment(origin, geometry.NewPoint3(0.5, 0.5, 0.5)), geometry.Eps)
	require.True(t, ok)
	assert.InDelta(t, 2.0, hit.Distance, 1e-9)
}

func TestCastRayNoQuery(t *testing.T) {
	m := unitCube(t)
	empty := &mesh.Mesh{}
	ray := geometry.NewRay(geometry.NewPoint3(0.5, 0.5, 3), geometry.NewVector3(0, 0, -1))
	zero := geometry.NewRay(geometry.NewPoint3(0.5, 0.5, 3), geometry.Vector3{})

	for name, cast := range strategies(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := cast(empty, ray)
			assert.False(t, ok, "empty mesh")
			_, ok = cast(m, zero)
			assert.False(t, ok, "zero direction")
		})
	}
}

func TestStrategiesAgree(t *testing.T) {
	m, err := mesh.Cylinder(geometry.NewPoint3(0, 0, 0), geometry.NewVector3(0.3, 0.1, 1), 2, 5, 0.001)
	require.NoError(t, err)
	require.GreaterOrEqual(t, m.TriangleCount(), 400)

	p := pool.New(3)
	defer p.Stop()

	for i := range 64 {
		angle := float64(i) * 2 * math.Pi / 64
		origin := geometry.NewPoint3(6*math.Cos(angle), 6*math.Sin(angle), 0.1*float64(i%40))
		ray := geometry.NewRay(origin, geometry.NewPoint3(0.1, -0.2, 2.5).Sub(origin))

		serial, okSerial := CastRay(m, ray, geometry.Eps)
		part, okPart := CastRayPartitioned(m, ray, geometry.Eps, 7)
		pooled, okPooled := CastRayPooled(m, ray, geometry.Eps, p, 5)

		require.True(t, okSerial, "ray %d", i)
		require.True(t, okPart, "ray %d", i)
		require.True(t, okPooled, "ray %d", i)
		assert.Equal(t, serial, part, "ray %d", i)
		assert.Equal(t, serial, pooled, "ray %d", i)
		assert.Equal(t, 2, serial.SurfaceID, "ray %d should hit the lateral band", i)
	}
}

func TestCastRayPooledOnStoppedPool(t *testing.T) {
	m := unitCube(t)
	p := pool.New(2)
	p.Stop()

	ray := geometry.NewRay(geometry.NewPoint3(1.22, 2, 1.5), geometry.NewVector3(-1.72, -2, -1.5))
	hit, ok := CastRayPooled(m, ray, geometry.Eps, p, 1)
	require.True(t, ok)
	assert.Equal(t, 1, hit.SurfaceID)
}

func TestCastRayPooledStoppedMidQuery(t *testing.T) {
	m := unitCube(t)
	p := pool.New(1)

	started := make(chan struct{})
	release := make(chan struct{})
	require.True(t, p.Submit(func() {
		close(started)
		<-release
	}))
	<-started

	ray := geometry.NewRay(geometry.NewPoint3(1.22, 2, 1.5), geometry.NewVector3(-1.72, -2, -1.5))
	type result struct {
		hit Hit
		ok  bool
	}
	results := make(chan result, 1)
	go func() {
		hit, ok := CastRayPooled(m, ray, geometry.Eps, p, 1)
		results <- result{hit, ok}
	}()

	// every task of the query is queued behind the blocked worker
	require.Eventually(t, func() bool {
		return p.Stats().Queued == m.TriangleCount()
	}, 5*time.Second, time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()
	require.Eventually(t, func() bool {
		s := p.Stats()
		return s.Stopped && s.Queued == 0
	}, 5*time.Second, time.Millisecond)
	close(release)

	got := <-results
	<-stopped

	want, wantOK := CastRay(m, ray, geometry.Eps)
	require.True(t, wantOK)
	require.True(t, got.ok)
	assert.Equal(t, want, got.hit)
}

func TestSplit(t *testing.T) {
	chunks := split(10, 4)
	assert.Equal(t, []chunk{{0, 3}, {3, 6}, {6, 8}, {8, 10}}, chunks)

	assert.Len(t, split(3, 8), 3)
	assert.Empty(t, split(0, 4))

	assert.Equal(t, 1, TaskSize(50, 0.01))
	assert.Equal(t, 10, TaskSize(1000, 0.01))
	assert.Equal(t, 10, TaskSize(1000, 0))
}

func TestCandidateTieBreak(t *testing.T) {
	a := candidate{triangle: 5, dist2: 1, found: true}
	b := candidate{triangle: 2, dist2: 1, found: true}
	c := candidate{triangle: 9, dist2: 0.5, found: true}

	assert.Equal(t, 2, reduce([]candidate{a, b}).triangle)
	assert.Equal(t, 2, reduce([]candidate{b, a}).triangle)
	assert.Equal(t, 9, reduce([]candidate{a, {}, c, b}).triangle)
	assert.False(t, reduce([]candidate{{}, {}}).found)
}

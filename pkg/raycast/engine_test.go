package raycast

import (
	"bytes"
	"log/slog"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshray/pkg/geometry"
	"github.com/philipparndt/meshray/pkg/mesh"
)

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies {
		parsed, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := ParseStrategy(" Pooled ")
	require.NoError(t, err)
	assert.Equal(t, Pooled, parsed)

	_, err = ParseStrategy("gpu")
	assert.Error(t, err)

	var s Strategy
	require.NoError(t, s.UnmarshalText([]byte("partitioned")))
	assert.Equal(t, Partitioned, s)
	text, err := Serial.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "serial", string(text))
}

func TestEngineStrategies(t *testing.T) {
	m := unitCube(t)
	ray := geometry.NewRay(geometry.NewPoint3(1.22, 2, 1.5), geometry.NewVector3(-1.72, -2, -1.5))

	for _, s := range Strategies {
		t.Run(s.String(), func(t *testing.T) {
			e, err := NewEngine(m, Options{Strategy: s, Workers: 3})
			require.NoError(t, err)
			defer e.Close()

			assert.Equal(t, geometry.Eps, e.Options().Tolerance)
			assert.Equal(t, DefaultTaskFraction, e.Options().TaskFraction)
			assert.Same(t, m, e.Mesh())

			hit, ok := e.CastRay(ray)
			require.True(t, ok)
			assert.Equal(t, mesh.Surface{Begin: 2, End: 4}, hit.Surface)
		})
	}
}

func TestEngineConcurrentQueries(t *testing.T) {
	m, err := mesh.Cylinder(geometry.NewPoint3(0, 0, 0), geometry.NewVector3(0, 0, 1), 1, 2, 0.01)
	require.NoError(t, err)

	e, err := NewEngine(m, Options{Strategy: Pooled, Workers: 4})
	require.NoError(t, err)
	defer e.Close()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			z := 0.2 + 0.2*float64(i)
			hit, ok := e.CastRay(geometry.NewRay(geometry.NewPoint3(5, 0, z), geometry.NewVector3(-1, 0, 0)))
			assert.True(t, ok)
			assert.Equal(t, 2, hit.SurfaceID)
			assert.InDelta(t, z, hit.Point.Z, 1e-9)
		}()
	}
	wg.Wait()
}

func TestEngineCloseIsIdempotent(t *testing.T) {
	e, err := NewEngine(unitCube(t), Options{Strategy: Pooled})
	require.NoError(t, err)
	assert.Equal(t, runtime.NumCPU(), e.Options().Workers)

	e.Close()
	e.Close()

	// queries after Close still answer, on the calling goroutine
	_, ok := e.CastRay(geometry.NewRay(geometry.NewPoint3(0.5, 0.5, 3), geometry.NewVector3(0, 0, -1)))
	assert.True(t, ok)
}

func TestNewEngineRejectsInvalidInput(t *testing.T) {
	_, err := NewEngine(nil, DefaultOptions())
	assert.Error(t, err)

	bad := unitCube(t)
	bad.Normals = bad.Normals[:5]
	_, err = NewEngine(bad, DefaultOptions())
	assert.ErrorIs(t, err, mesh.ErrNormalCount)

	_, err = NewEngine(unitCube(t), Options{Strategy: Strategy(42)})
	assert.Error(t, err)
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	e, err := NewEngine(unitCube(t), Options{Strategy: Serial})
	require.NoError(t, err)
	defer e.Close()

	_, ok := e.CastRay(geometry.NewRay(geometry.NewPoint3(0.5, 0.5, 3), geometry.NewVector3(0, 0, -1)))
	require.True(t, ok)

	out := buf.String()
	assert.Contains(t, out, "engine ready")
	assert.Contains(t, out, "strategy=serial")
	assert.Contains(t, out, "surface=[8,10)")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError))
}

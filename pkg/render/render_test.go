package render

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/philipparndt/meshray/pkg/geometry"
	"github.com/philipparndt/meshray/pkg/mesh"
	"github.com/philipparndt/meshray/pkg/raycast"
)

func cubeEngine(t *testing.T) *raycast.Engine {
	t.Helper()
	m, err := mesh.Cube(geometry.NewPoint3(0.5, 0.5, 0.5), 1)
	require.NoError(t, err)
	e, err := raycast.NewEngine(m, raycast.Options{Strategy: raycast.Serial})
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestRenderTopView(t *testing.T) {
	img, stats, err := Render(cubeEngine(t), Options{Width: 32, Height: 32, Axis: "z"})
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds())
	assert.Equal(t, 32*32, stats.Rays)
	assert.Greater(t, stats.Hits, 0)
	assert.Less(t, stats.Hits, stats.Rays)

	// looking down -Z only the +Z face (surface 4) is visible
	assert.Equal(t, map[int]int{4: stats.Hits}, stats.Surfaces)
	assert.Equal(t, SurfaceColor(4), img.RGBAAt(16, 16))
	assert.Equal(t, Background, img.RGBAAt(0, 0))
}

func TestRenderSideViews(t *testing.T) {
	e := cubeEngine(t)

	_, stats, err := Render(e, Options{Width: 16, Height: 16, Axis: "x"})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{0: stats.Hits}, stats.Surfaces)

	_, stats, err = Render(e, Options{Width: 16, Height: 16, Axis: "y"})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{3: stats.Hits}, stats.Surfaces)
}

func TestRenderSupersampleAndCaption(t *testing.T) {
	img, stats, err := Render(cubeEngine(t), Options{Width: 40, Height: 20, Supersample: 2, Caption: true})
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 40, 20), img.Bounds())
	assert.Equal(t, 80*40, stats.Rays)
}

func TestRenderRejectsBadOptions(t *testing.T) {
	e := cubeEngine(t)

	_, _, err := Render(e, Options{Width: 0, Height: 10})
	assert.Error(t, err)
	_, _, err = Render(e, Options{Width: 10, Height: 10, Axis: "w"})
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	img, _, err := Render(cubeEngine(t), Options{Width: 8, Height: 8})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img, "png"))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	buf.Reset()
	require.NoError(t, Encode(&buf, img, "BMP"))
	decoded, err = bmp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	assert.Error(t, Encode(&buf, img, "gif"))
}

func TestWriteFile(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	dir := t.TempDir()

	require.NoError(t, WriteFile(filepath.Join(dir, "out.png"), img))
	require.NoError(t, WriteFile(filepath.Join(dir, "out.bmp"), img))
	assert.Error(t, WriteFile(filepath.Join(dir, "out.jpg"), img))
}

func TestSurfaceColorsDiffer(t *testing.T) {
	seen := make(map[[3]uint8]bool)
	for id := range 12 {
		c := SurfaceColor(id)
		key := [3]uint8{c.R, c.G, c.B}
		assert.False(t, seen[key], "surface %d repeats a colour", id)
		seen[key] = true
	}
}

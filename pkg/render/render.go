// Package render draws orthographic pictures of a mesh by casting one ray
// per pixel and colouring each hit by its surface.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/philipparndt/meshray/pkg/geometry"
	"github.com/philipparndt/meshray/pkg/raycast"
)

// Background is the colour of pixels whose ray misses the mesh
var Background = color.RGBA{R: 24, G: 24, B: 32, A: 255}

// Options configures a rendering
type Options struct {
	Width       int
	Height      int
	Axis        string // view axis: x, y or z
	Supersample int    // rays per pixel along each image axis
	Caption     bool   // draw a summary line at the bottom
}

// Stats reports what a rendering did
type Stats struct {
	Rays     int
	Hits     int
	Surfaces map[int]int // hit count per surface id
}

// view is an orthographic camera
type view struct {
	right, up, dir geometry.Vector3
}

func viewFor(axis string) (view, error) {
	var v view
	switch strings.ToLower(axis) {
	case "x":
		v.right, v.up = geometry.NewVector3(0, 1, 0), geometry.NewVector3(0, 0, 1)
	case "y":
		v.right, v.up = geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 0, 1)
	case "z", "":
		v.right, v.up = geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0)
	default:
		return view{}, fmt.Errorf("unknown view axis %q (expected x, y or z)", axis)
	}
	// the camera sits on the positive side of right x up
	v.dir = v.right.Cross(v.up).Neg()
	return v, nil
}

// Render casts one ray per (sub)pixel through the engine's mesh
func Render(e *raycast.Engine, opts Options) (*image.RGBA, Stats, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, Stats{}, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	v, err := viewFor(opts.Axis)
	if err != nil {
		return nil, Stats{}, err
	}
	ss := max(1, opts.Supersample)

	m := e.Mesh()
	bbox := m.BoundingBox()
	stats := Stats{Surfaces: make(map[int]int)}
	if bbox.IsEmpty() {
		bbox.Extend(geometry.Point3{})
	}

	// fit the projected box into the picture, keeping the aspect ratio
	size := bbox.Size()
	extentX := math.Abs(size.Dot(v.right))
	extentY := math.Abs(size.Dot(v.up))
	w, h := opts.Width*ss, opts.Height*ss
	scale := 1.05 * math.Max(extentX/float64(w), extentY/float64(h))
	if scale == 0 {
		scale = 1.0 / float64(max(w, h))
	}
	center := bbox.Center()
	eye := center.Add(v.dir.Mul(-(bbox.Diagonal() + 1)))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			dx := (float64(px) + 0.5 - float64(w)/2) * scale
			dy := (float64(h)/2 - float64(py) - 0.5) * scale
			origin := eye.Add(v.right.Mul(dx)).Add(v.up.Mul(dy))

			stats.Rays++
			hit, ok := e.CastRay(geometry.NewRay(origin, v.dir))
			if !ok {
				img.SetRGBA(px, py, Background)
				continue
			}
			stats.Hits++
			stats.Surfaces[hit.SurfaceID]++

			normal := m.Normals[m.Triangles[3*hit.Triangle]]
			img.SetRGBA(px, py, shade(SurfaceColor(hit.SurfaceID), normal, v.dir))
		}
	}

	out := img
	if ss > 1 {
		out = image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
		draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	}
	if opts.Caption {
		drawCaption(out, fmt.Sprintf("%d surfaces, %d/%d rays hit", len(m.Surfaces), stats.Hits, stats.Rays))
	}
	return out, stats, nil
}

// SurfaceColor returns a distinct colour for a surface id by walking the
// hue circle in golden-angle steps
func SurfaceColor(id int) color.RGBA {
	hue := math.Mod(float64(id)*137.508, 360)
	return hsv(hue, 0.55, 0.95)
}

// shade darkens c for faces seen at a grazing angle
func shade(c color.RGBA, normal, dir geometry.Vector3) color.RGBA {
	f := 0.35 + 0.65*math.Abs(normal.Normalize(geometry.Eps).Dot(dir.Normalize(geometry.Eps)))
	return color.RGBA{
		R: uint8(float64(c.R)*f + 0.5),
		G: uint8(float64(c.G)*f + 0.5),
		B: uint8(float64(c.B)*f + 0.5),
		A: 255,
	}
}

func hsv(h, s, v float64) color.RGBA {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8((r+m)*255 + 0.5),
		G: uint8((g+m)*255 + 0.5),
		B: uint8((b+m)*255 + 0.5),
		A: 255,
	}
}

func drawCaption(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(4, img.Bounds().Dy()-face.Descent-2),
	}
	d.DrawString(text)
}

// Encode writes img as PNG or BMP
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// WriteFile encodes img into a file; the extension selects the format
func WriteFile(filename string, img image.Image) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if format != "png" && format != "bmp" {
		return fmt.Errorf("unsupported image format %q (use .png or .bmp)", format)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Encode(file, img, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return file.Close()
}

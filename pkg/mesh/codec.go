package mesh

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/philipparndt/meshray/pkg/geometry"
)

// maxPrealloc bounds how many elements are allocated up front for a count
// read from the stream; larger arrays grow as data actually arrives.
const maxPrealloc = 1 << 16

// Save writes the mesh in the little-endian binary layout: point count and
// float64 triples, normal count and triples, index count and uint32
// indices, surface count and uint64 begin/end pairs.
func Save(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)

	if err := writeVectors(bw, len(m.Points), func(i int) [3]float64 {
		p := m.Points[i]
		return [3]float64{p.X, p.Y, p.Z}
	}); err != nil {
		return fmt.Errorf("failed to write points: %w", err)
	}
	if err := writeVectors(bw, len(m.Normals), func(i int) [3]float64 {
		n := m.Normals[i]
		return [3]float64{n.X, n.Y, n.Z}
	}); err != nil {
		return fmt.Errorf("failed to write normals: %w", err)
	}

	if err := binary.Write(bw, binary.LittleEndian, uint64(len(m.Triangles))); err != nil {
		return fmt.Errorf("failed to write index count: %w", err)
	}
	for _, idx := range m.Triangles {
		if idx < 0 || uint64(idx) > math.MaxUint32 {
			return fmt.Errorf("failed to write indices: %w: %d", ErrIndexRange, idx)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint32(idx)); err != nil {
			return fmt.Errorf("failed to write indices: %w", err)
		}
	}

	if err := binary.Write(bw, binary.LittleEndian, uint64(len(m.Surfaces))); err != nil {
		return fmt.Errorf("failed to write surface count: %w", err)
	}
	for _, s := range m.Surfaces {
		pair := [2]uint64{uint64(s.Begin), uint64(s.End)}
		if err := binary.Write(bw, binary.LittleEndian, pair); err != nil {
			return fmt.Errorf("failed to write surfaces: %w", err)
		}
	}

	return bw.Flush()
}

func writeVectors(w io.Writer, count int, at func(int) [3]float64) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(count)); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := binary.Write(w, binary.LittleEndian, at(i)); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a mesh written by Save and validates it
func Load(r io.Reader) (*Mesh, error) {
	br := bufio.NewReader(r)
	m := &Mesh{}

	points, err := readTriples(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read points: %w", err)
	}
	for _, t := range points {
		m.Points = append(m.Points, geometry.NewPoint3(t[0], t[1], t[2]))
	}

	normals, err := readTriples(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read normals: %w", err)
	}
	for _, t := range normals {
		m.Normals = append(m.Normals, geometry.NewVector3(t[0], t[1], t[2]))
	}

	count, err := readCount(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read index count: %w", err)
	}
	m.Triangles = make([]int, 0, min(count, maxPrealloc))
	for i := uint64(0); i < count; i++ {
		var idx uint32
		if err := binary.Read(br, binary.LittleEndian, &idx); err != nil {
			return nil, fmt.Errorf("failed to read index %d: %w", i, unexpected(err))
		}
		m.Triangles = append(m.Triangles, int(idx))
	}

	count, err = readCount(br)
	if err != nil {
		return nil, fmt.Errorf("failed to read surface count: %w", err)
	}
	m.Surfaces = make([]Surface, 0, min(count, maxPrealloc))
	for i := uint64(0); i < count; i++ {
		var pair [2]uint64
		if err := binary.Read(br, binary.LittleEndian, &pair); err != nil {
			return nil, fmt.Errorf("failed to read surface %d: %w", i, unexpected(err))
		}
		if pair[0] > math.MaxInt || pair[1] > math.MaxInt {
			return nil, fmt.Errorf("%w: surface %d out of range", ErrSurfaces, i)
		}
		m.Surfaces = append(m.Surfaces, Surface{Begin: int(pair[0]), End: int(pair[1])})
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mesh: %w", err)
	}
	return m, nil
}

func readCount(r io.Reader) (uint64, error) {
	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return 0, unexpected(err)
	}
	return count, nil
}

func readTriples(r io.Reader) ([][3]float64, error) {
	count, err := readCount(r)
	if err != nil {
		return nil, err
	}
	triples := make([][3]float64, 0, min(count, maxPrealloc))
	for i := uint64(0); i < count; i++ {
		var t [3]float64
		if err := binary.Read(r, binary.LittleEndian, &t); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, unexpected(err))
		}
		triples = append(triples, t)
	}
	return triples, nil
}

// unexpected turns a clean EOF inside the stream into ErrUnexpectedEOF
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// SaveFile writes the mesh to a file
func SaveFile(filename string, m *Mesh) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Save(file, m); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadFile reads a mesh from a file
func LoadFile(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Load(file)
}

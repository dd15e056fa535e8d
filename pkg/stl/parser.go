package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/meshray/pkg/geometry"
)

const (
	binaryHeaderSize = 80
	binaryFacetSize  = 50
)

// Parse reads an STL file and returns a Model
// It automatically detects whether the file is ASCII or binary format
func Parse(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file)
}

// ParseReader reads an STL model from r. Binary files whose header starts
// with "solid" are recognized by their exact size.
func ParseReader(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL data: %w", err)
	}

	if len(data) >= binaryHeaderSize+4 {
		count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
		if uint64(len(data)) == binaryHeaderSize+4+uint64(count)*binaryFacetSize {
			return parseBinary(bytes.NewReader(data))
		}
	}

	// Check if it's ASCII format (starts with "solid")
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return parseASCII(bytes.NewReader(data))
	}

	return parseBinary(bytes.NewReader(data))
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := NewModel("")

	var currentNormal geometry.Vector3
	var vertices []geometry.Point3
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())

		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) < 5 || fields[1] != "normal" {
				return nil, fmt.Errorf("line %d: malformed facet", lineNo)
			}
			v, err := parseTriple(fields[2:5])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid normal: %w", lineNo, err)
			}
			currentNormal = v
			vertices = vertices[:0]

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: malformed vertex", lineNo)
			}
			v, err := parseTriple(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid vertex: %w", lineNo, err)
			}
			vertices = append(vertices, geometry.Point3(v))

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("line %d: facet has %d vertices", lineNo, len(vertices))
			}
			model.AddFacet(Facet{
				Normal:   currentNormal,
				Vertices: [3]geometry.Point3{vertices[0], vertices[1], vertices[2]},
			})
			vertices = vertices[:0] // Clear vertices
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, nil
}

func parseTriple(fields []string) (geometry.Vector3, error) {
	var v [3]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, err
		}
		v[i] = x
	}
	return geometry.NewVector3(v[0], v[1], v[2]), nil
}

// parseBinary parses a binary STL file
func parseBinary(reader io.Reader) (*Model, error) {
	model := NewModel("")

	// Read 80-byte header
	header := make([]byte, binaryHeaderSize)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Extract name from header (if present)
	headerStr := strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))
	if len(headerStr) > 0 {
		model.Name = headerStr
	}

	// Read triangle count
	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	// normal, three vertices, attribute byte count
	var record struct {
		Normal    [3]float32
		Vertices  [3][3]float32
		Attribute uint16
	}
	for i := uint32(0); i < triangleCount; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &record); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}

		var facet Facet
		facet.Normal = geometry.NewVector3(float64(record.Normal[0]), float64(record.Normal[1]), float64(record.Normal[2]))
		for j, v := range record.Vertices {
			facet.Vertices[j] = geometry.NewPoint3(float64(v[0]), float64(v[1]), float64(v[2]))
		}
		model.AddFacet(facet)
	}

	return model, nil
}

package mesh

import (
	"fmt"
	"math"
	"sort"
)

// Attrib describes one float attribute inside an interleaved vertex.
type Attrib struct {
	Location   uint32
	Components int32
	// Offset is counted in floats from the start of the vertex.
	Offset int
}

// Data is interleaved float32 vertex data with an optional index list.
type Data struct {
	Name     string
	Vertices []float32
	Indices  []uint32
	// FloatsPerVertex is the stride in floats.
	FloatsPerVertex int
	Attribs         []Attrib
}

// StrideBytes returns the vertex stride in bytes.
func (d Data) StrideBytes() int32 {
	return int32(d.FloatsPerVertex * 4)
}

// VertexCount returns the number of vertices in Vertices.
func (d Data) VertexCount() int {
	if d.FloatsPerVertex == 0 {
		return 0
	}
	return len(d.Vertices) / d.FloatsPerVertex
}

// Indexed reports whether the mesh is drawn through an index list.
func (d Data) Indexed() bool {
	return len(d.Indices) > 0
}

// Validate checks that vertices fill whole strides, attributes fit inside
// a vertex and every index names an existing vertex.
func (d Data) Validate() error {
	if d.FloatsPerVertex <= 0 {
		return fmt.Errorf("mesh %s: non-positive stride", d.Name)
	}
	if len(d.Vertices) == 0 || len(d.Vertices)%d.FloatsPerVertex != 0 {
		return fmt.Errorf("mesh %s: %d floats is not a multiple of %d", d.Name, len(d.Vertices), d.FloatsPerVertex)
	}
	for _, a := range d.Attribs {
		if a.Components < 1 || a.Components > 4 {
			return fmt.Errorf("mesh %s: attribute %d has %d components", d.Name, a.Location, a.Components)
		}
		if a.Offset+int(a.Components) > d.FloatsPerVertex {
			return fmt.Errorf("mesh %s: attribute %d overruns the vertex", d.Name, a.Location)
		}
	}
	n := uint32(d.VertexCount())
	for i, idx := range d.Indices {
		if idx >= n {
			return fmt.Errorf("mesh %s: index %d at %d out of range (%d vertices)", d.Name, idx, i, n)
		}
	}
	return nil
}

// Position-only layout: location 0 = vec3 position.
var positionOnly = []Attrib{
	{Location: 0, Components: 3, Offset: 0},
}

// Textured layout: location 0 = position, 1 = color, 2 = texture coordinates.
var textured = []Attrib{
	{Location: 0, Components: 3, Offset: 0},
	{Location: 1, Components: 3, Offset: 3},
	{Location: 2, Components: 2, Offset: 6},
}

// Triangle is a single 3-vertex triangle with positions only, drawn without
// an index buffer.
func Triangle() Data {
	return Data{
		Name: "triangle",
		Vertices: []float32{
			-0.5, -0.5, 0.0, // lower left
			0.5, -0.5, 0.0, // lower right
			0.0, 0.5, 0.0, // top
		},
		FloatsPerVertex: 3,
		Attribs:         positionOnly,
	}
}

// Tripoint is the equilateral triangle split into three at the edge
// midpoints, drawn through an index buffer.
func Tripoint() Data {
	s := float32(math.Sqrt(3))
	return Data{
		Name: "tripoint",
		Vertices: []float32{
			-0.5, -0.5 * s / 3, 0.0, // lower left
			0.5, -0.5 * s / 3, 0.0, // lower right
			0.0, 0.5 * s * 2 / 3, 0.0, // top
			-0.25, 0.5 * s / 6, 0.0, // inner left
			0.25, 0.5 * s / 6, 0.0, // inner right
			0.0, -0.5 * s / 3, 0.0, // inner down
		},
		Indices: []uint32{
			0, 3, 5,
			3, 2, 4,
			5, 4, 1,
		},
		FloatsPerVertex: 3,
		Attribs:         positionOnly,
	}
}

// Quad is a textured, vertex-colored square.
func Quad() Data {
	return Data{
		Name: "quad",
		Vertices: []float32{
			// position         color           uv
			-0.5, -0.5, 0.0, 1.0, 0.0, 0.0, 0.0, 0.0,
			-0.5, 0.5, 0.0, 0.0, 1.0, 0.0, 0.0, 1.0,
			0.5, 0.5, 0.0, 0.0, 0.0, 1.0, 1.0, 1.0,
			0.5, -0.5, 0.0, 1.0, 1.0, 1.0, 1.0, 0.0,
		},
		Indices: []uint32{
			0, 2, 1,
			0, 3, 2,
		},
		FloatsPerVertex: 8,
		Attribs:         textured,
	}
}

// Pyramid is a textured square pyramid, meant to be drawn with depth testing
// and a model/view/projection transform.
func Pyramid() Data {
	return Data{
		Name: "pyramid",
		Vertices: []float32{
			// position          color               uv
			-0.5, 0.0, 0.5, 0.83, 0.70, 0.44, 0.0, 0.0,
			-0.5, 0.0, -0.5, 0.83, 0.70, 0.44, 5.0, 0.0,
			0.5, 0.0, -0.5, 0.83, 0.70, 0.44, 0.0, 0.0,
			0.5, 0.0, 0.5, 0.83, 0.70, 0.44, 5.0, 0.0,
			0.0, 0.8, 0.0, 0.92, 0.86, 0.76, 2.5, 5.0,
		},
		Indices: []uint32{
			0, 1, 2,
			0, 2, 3,
			0, 1, 4,
			1, 2, 4,
			2, 3, 4,
			3, 0, 4,
		},
		FloatsPerVertex: 8,
		Attribs:         textured,
	}
}

var builtins = map[string]func() Data{
	"triangle": Triangle,
	"tripoint": Tripoint,
	"quad":     Quad,
	"pyramid":  Pyramid,
}

// ByName returns a built-in mesh.
func ByName(name string) (Data, error) {
	fn, ok := builtins[name]
	if !ok {
		return Data{}, fmt.Errorf("unknown mesh %q (have %v)", name, Names())
	}
	return fn(), nil
}

// Names lists the built-in meshes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package mesh

import (
	"testing"
)

func TestBuiltinsAreValid(t *testing.T) {
	for _, name := range Names() {
		d, err := ByName(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := d.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if d.Name != name {
			t.Errorf("%s: mesh reports name %q", name, d.Name)
		}
	}
}

func TestTriangleIsUnindexedThreeFloatVertices(t *testing.T) {
	d := Triangle()
	if d.Indexed() {
		t.Fatal("triangle should not use an index buffer")
	}
	if d.VertexCount() != 3 {
		t.Fatalf("vertex count: got %d, want 3", d.VertexCount())
	}
	if d.StrideBytes() != 12 {
		t.Fatalf("stride: got %d, want 12", d.StrideBytes())
	}
}

func TestPyramidCounts(t *testing.T) {
	d := Pyramid()
	if d.VertexCount() != 5 {
		t.Fatalf("vertex count: got %d, want 5", d.VertexCount())
	}
	if len(d.Indices) != 18 {
		t.Fatalf("index count: got %d, want 18", len(d.Indices))
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		data Data
	}{
		{"zero stride", Data{Vertices: []float32{0}}},
		{"partial vertex", Data{Vertices: []float32{0, 0, 0, 0}, FloatsPerVertex: 3}},
		{"index out of range", Data{Vertices: []float32{0, 0, 0}, FloatsPerVertex: 3, Indices: []uint32{1}}},
		{"attribute overrun", Data{Vertices: []float32{0, 0, 0}, FloatsPerVertex: 3, Attribs: []Attrib{{Location: 0, Components: 3, Offset: 1}}}},
		{"too many components", Data{Vertices: []float32{0, 0, 0, 0, 0}, FloatsPerVertex: 5, Attribs: []Attrib{{Location: 0, Components: 5}}}},
	}
	for _, tt := range tests {
		if err := tt.data.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("teapot"); err == nil {
		t.Fatal("expected error for unknown mesh")
	}
}

package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraAspectRatio(t *testing.T) {
	c := NewCamera(800, 400)
	if c.AspectRatio != 2 {
		t.Fatalf("aspect ratio: got %v, want 2", c.AspectRatio)
	}
	c.SetViewport(0, 600)
	if c.AspectRatio != 2 {
		t.Fatalf("zero-width viewport changed aspect ratio to %v", c.AspectRatio)
	}
}

func TestCameraViewMovesTargetToOrigin(t *testing.T) {
	c := NewCamera(100, 100)
	c.Position = mgl32.Vec3{0, 0, 5}
	c.Target = mgl32.Vec3{0, 0, 0}

	p := c.GetViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	want := mgl32.Vec4{0, 0, -5, 1}
	if !p.ApproxEqual(want) {
		t.Fatalf("target in view space: got %v, want %v", p, want)
	}
}

func TestCameraProjectionKeepsNearPlaneInClipRange(t *testing.T) {
	c := NewCamera(100, 100)
	clip := c.GetProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, -c.NearPlane, 1})
	ndcZ := clip.Z() / clip.W()
	if !mgl32.FloatEqualThreshold(ndcZ, -1, 1e-4) {
		t.Fatalf("near plane depth: got %v, want -1", ndcZ)
	}
}

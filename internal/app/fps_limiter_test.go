package app

import (
	"testing"
	"time"
)

func TestFPSLimiterDisabledDoesNotBlock(t *testing.T) {
	f := NewFPSLimiter(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		f.Wait()
	}
	if d := time.Since(start); d > 50*time.Millisecond {
		t.Fatalf("disabled limiter blocked for %v", d)
	}
}

func TestFPSLimiterPacesFrames(t *testing.T) {
	f := NewFPSLimiter(200) // 5ms per frame
	start := time.Now()
	for i := 0; i < 6; i++ {
		f.Wait()
	}
	if d := time.Since(start); d < 25*time.Millisecond {
		t.Fatalf("6 frames at 200 FPS took %v, want at least 25ms", d)
	}
}

func TestFPSLimiterResyncsAfterHitch(t *testing.T) {
	f := NewFPSLimiter(100)
	f.Wait()
	time.Sleep(50 * time.Millisecond)
	f.Wait()
	if until := time.Until(f.next); until < 0 {
		t.Fatalf("next frame deadline still in the past by %v", -until)
	}
}

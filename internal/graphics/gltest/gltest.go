// Package gltest runs tests that need a current OpenGL context.
//
// GL calls must come from the thread that created the context. A test
// package calls Main from its TestMain; tests then use Do to run code on
// that thread.
package gltest

import (
	"fmt"
	"os"
	"runtime"
	"testing"

	"mini-gl/internal/graphics"
)

func init() { runtime.LockOSThread() }

var (
	queue  = make(chan func())
	ctx    *graphics.Context
	ctxErr error
)

// Main opens a hidden 64x64 window and runs the tests while serving Do
// requests on the calling goroutine. It must be called from TestMain and
// does not return.
func Main(m *testing.M) {
	ctx, ctxErr = open()

	done := make(chan int)
	go func() { done <- m.Run() }()

	for {
		select {
		case f := <-queue:
			f()
		case code := <-done:
			if ctx != nil {
				ctx.Close()
			}
			os.Exit(code)
		}
	}
}

func open() (c *graphics.Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("glfw: %v", r)
		}
	}()
	return graphics.NewContext(graphics.WindowConfig{Width: 64, Height: 64, Title: "gltest", Hidden: true})
}

// Do runs fn on the context thread and fails t with the returned error.
// The test is skipped when no context is available.
func Do(t *testing.T, fn func(ctx *graphics.Context) error) {
	t.Helper()
	if ctx == nil {
		t.Skipf("no OpenGL context available: %v", ctxErr)
	}

	errc := make(chan error, 1)
	queue <- func() {
		defer func() {
			if r := recover(); r != nil {
				errc <- fmt.Errorf("panic: %v", r)
			}
		}()
		errc <- fn(ctx)
	}
	if err := <-errc; err != nil {
		t.Fatal(err)
	}
}

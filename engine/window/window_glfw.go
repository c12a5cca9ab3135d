package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var errNotInitialized = errors.New("window is not initialized")

// glfwWindow is the GLFW backing of an engineWindow. A nil *glfwWindow behaves as a closed window.
type glfwWindow struct {
	handle *glfw.Window
	closed bool
}

// openGLFWWindow initializes GLFW and opens the status window on the calling OS thread.
// The window has no client API; WebGPU draws through the surface descriptor instead.
func openGLFWWindow(w *engineWindow) (*glfwWindow, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	handle, err := glfw.CreateWindow(w.width, w.height, w.Title(), nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}
	handle.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		w.dispatchKey(uint32(key), action != glfw.Release)
	})

	// framebuffer size, not window size, so high-DPI displays report pixels
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resized(width, height)
	})
	w.width, w.height = handle.GetFramebufferSize()

	return &glfwWindow{handle: handle}, nil
}

func (g *glfwWindow) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	if g == nil || g.closed {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(g.handle)
}

func (g *glfwWindow) running() bool {
	return g != nil && !g.closed && !g.handle.ShouldClose()
}

// requestClose may be called from any goroutine; the empty event wakes a waiting loop.
func (g *glfwWindow) requestClose() {
	if !g.running() {
		return
	}
	g.handle.SetShouldClose(true)
	glfw.PostEmptyEvent()
}

func (g *glfwWindow) setTitle(title string) {
	if g.running() {
		g.handle.SetTitle(title)
	}
}

// poll processes pending events without blocking and reports whether the window is still open.
func (g *glfwWindow) poll() bool {
	if g == nil || g.closed {
		return false
	}
	glfw.PollEvents()
	return g.running()
}

func (g *glfwWindow) close() error {
	if g == nil || g.closed {
		return errNotInitialized
	}
	g.closed = true
	g.handle.Destroy()
	glfw.Terminate()
	return nil
}

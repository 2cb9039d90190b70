// srview - Terminal triangle rasterizer viewer
// Spin a GLB model (or a built-in cube) in your terminal, or render a
// single frame to an image file.
//
// Controls:
//
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Roll left/right
//	Space       - Apply random impulse
//	R           - Reset rotation
//	X           - Toggle wireframe
//	P           - Toggle parallel rasterization
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/image/draw"

	"github.com/zhvrnkov/software-renderer/pkg/math3d"
	"github.com/zhvrnkov/software-renderer/pkg/render"
	"github.com/zhvrnkov/software-renderer/pkg/scene"
)

var (
	targetFPS  = flag.Int("fps", 60, "Target FPS")
	bgColor    = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	parallel   = flag.Bool("parallel", false, "Use the primitive-parallel rasterizer")
	workers    = flag.Int("workers", 0, "Parallel lanes (0 = GOMAXPROCS)")
	aaSamples  = flag.Int("aa", 2, "Edge anti-aliasing grid size (1 = off)")
	wireframe  = flag.Bool("wireframe", false, "Draw edges instead of filled triangles")
	outputPath = flag.String("o", "", "Render one frame to this PNG/WebP file and exit")
	outWidth   = flag.Int("width", 512, "Output image width (with -o)")
	outHeight  = flag.Int("height", 512, "Output image height (with -o)")
	outScale   = flag.Int("scale", 1, "Upscale factor for the output image (with -o)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "srview - Terminal triangle rasterizer viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: srview [options] [model.glb|model.gltf]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model, a colored cube is rendered.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Pitch and yaw\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Roll left/right\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset rotation\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  P           - Toggle parallel rasterization\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	mesh, err := loadMesh(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *outputPath != "" {
		err = renderToFile(mesh)
	} else {
		err = run(mesh)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadMesh loads the model at path, or builds the demo cube when no path
// is given. The mesh comes back centered and scaled to fit the view.
func loadMesh(path string) (*scene.Mesh, error) {
	var mesh *scene.Mesh
	if path == "" {
		mesh = scene.Cube()
	} else {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".glb", ".gltf":
			var err error
			mesh, err = scene.LoadGLB(path)
			if err != nil {
				return nil, fmt.Errorf("load model: %w", err)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", path)
		}
	}

	mesh.Transform(mesh.FitUnit(2))
	return mesh, nil
}

// parseBG parses the -bg flag into a clear color.
func parseBG() render.Color {
	var r, g, b uint8 = 30, 30, 40
	fmt.Sscanf(*bgColor, "%d,%d,%d", &r, &g, &b)
	return render.RGB(r, g, b)
}

// renderToFile rasterizes a single frame offscreen and writes it to the
// -o path, upscaling first when -scale is above 1.
func renderToFile(mesh *scene.Mesh) error {
	fb := render.NewFramebuffer(*outWidth, *outHeight)
	fb.Clear(parseBG())

	camera := render.NewCamera()
	camera.SetAspectRatio(float64(*outWidth) / float64(*outHeight))
	camera.SetClipPlanes(0.1, 100)
	camera.SetPosition(math3d.V3(0, 0, 3))
	camera.LookAt(math3d.Zero3())

	// A fixed three-quarter angle so all faces read in a still image.
	model := math3d.RotateX(-0.4).Mul(math3d.RotateY(0.7))
	if err := drawMesh(&render.Renderer{
		Parallel:  *parallel,
		Workers:   *workers,
		AASamples: *aaSamples,
	}, fb, mesh, camera.ViewProjectionMatrix().Mul(model)); err != nil {
		return err
	}

	if *outScale > 1 {
		return saveScaled(fb, *outputPath, *outScale)
	}
	if strings.EqualFold(filepath.Ext(*outputPath), ".webp") {
		return fb.Color.SaveWebP(*outputPath)
	}
	return fb.Color.SavePNG(*outputPath)
}

// saveScaled upscales the frame with Catmull-Rom resampling before
// encoding, which smooths the low-resolution raster for presentation.
func saveScaled(fb *render.Framebuffer, path string, scale int) error {
	src := fb.Color.ToImage()
	dst := image.NewRGBA(image.Rect(0, 0, fb.Width()*scale, fb.Height()*scale))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return nativewebp.Encode(f, dst, nil)
	}
	return png.Encode(f, dst)
}

// drawMesh renders the mesh's primitives (or its derived edges in
// wireframe mode) through the renderer.
func drawMesh(r *render.Renderer, fb *render.Framebuffer, mesh *scene.Mesh, transform math3d.Mat4) error {
	return r.Render(fb, mesh.Kind, mesh.Vertices, mesh.Indices, transform)
}

// RotationAxis tracks position and velocity for one rotation axis with spring decay
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with harmonica spring for smooth velocity decay
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0 using spring
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState holds rotation with harmonica spring physics
type RotationState struct {
	Pitch, Yaw, Roll RotationAxis
	fps              int
}

func NewRotationState(fps int) *RotationState {
	return &RotationState{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		Roll:  NewRotationAxis(fps),
		fps:   fps,
	}
}

func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
	r.Roll.Update()
}

func (r *RotationState) ApplyImpulse(pitch, yaw, roll float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
	r.Roll.Velocity += roll
}

func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.fps)
	r.Yaw = NewRotationAxis(r.fps)
	r.Roll = NewRotationAxis(r.fps)
}

// ViewState holds all view-related settings (UI state, not library code)
type ViewState struct {
	Wireframe bool // Draw edges instead of filled triangles
	Parallel  bool // Use the primitive-parallel rasterizer
	ShowHUD   bool // Whether to show the HUD overlay
}

// HUD renders an overlay with model info and rasterizer counters
type HUD struct {
	filename  string
	primCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD(filename string, primCount int) *HUD {
	return &HUD{
		filename:  filename,
		primCount: primCount,
		fpsTime:   time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, view *ViewState, stats render.Stats) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !view.ShowHUD {
		return
	}

	// Top left: FPS
	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	// Top middle: filename
	titleCol := max((width-len(h.filename)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.filename, reset)

	// Top right: primitive count
	polyCol := max(width-14, 1)
	fmt.Printf("%s%s%s%s %d prims %s", moveTo(1, polyCol), bgBlack, fgCyan, bold, h.primCount, reset)

	// Bottom: rasterizer mode and skip counters
	mode := "scanline"
	if view.Parallel {
		mode = "parallel"
	}
	if view.Wireframe {
		mode += " wire"
	}
	fmt.Printf("%s%s%s %s  degenerate:%d %s",
		moveTo(height, 1), bgBlack, fgWhite, mode, stats.Degenerate, reset)
}

func run(mesh *scene.Mesh) error {
	bg := parseBG()

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	camera := render.NewCamera()
	camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))
	camera.SetFOV(math.Pi / 3)
	camera.SetClipPlanes(0.1, 100)
	camera.SetPosition(math3d.V3(0, 0, 3))
	camera.LookAt(math3d.Zero3())

	renderer := &render.Renderer{
		Parallel:  *parallel,
		Workers:   *workers,
		AASamples: *aaSamples,
	}

	edges := mesh.Edges()
	hud := NewHUD(mesh.Name, mesh.PrimitiveCount())
	view := &ViewState{Wireframe: *wireframe, Parallel: *parallel, ShowHUD: true}

	rotation := NewRotationState(*targetFPS)
	// A gentle initial spin so the scene is alive immediately.
	rotation.ApplyImpulse(0.005, 0.02, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Input state
	inputTorque := struct{ pitch, yaw, roll float64 }{}
	const torqueStrength = 3.0

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewFramebuffer(fbWidth, fbHeight)
				camera.SetAspectRatio(float64(fbWidth) / float64(fbHeight))

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("w"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("s"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("a"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("q"):
					inputTorque.roll = -torqueStrength
				case ev.MatchString("e"):
					inputTorque.roll = torqueStrength
				case ev.MatchString("space"):
					rotation.ApplyImpulse(
						(rand.Float64()-0.5)*0.4,
						(rand.Float64()-0.5)*0.4,
						(rand.Float64()-0.5)*0.2,
					)
				case ev.MatchString("r"):
					rotation.Reset()
				case ev.MatchString("x"):
					view.Wireframe = !view.Wireframe
				case ev.MatchString("p"):
					view.Parallel = !view.Parallel
				case ev.MatchString("?"):
					view.ShowHUD = !view.ShowHUD
				}
			}
		}
	}()

	// Main loop
	targetDuration := time.Second / time.Duration(*targetFPS)
	lastFrame := time.Now()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		// Apply input torque and decay it (key release events unreliable)
		rotation.ApplyImpulse(
			inputTorque.pitch*dt,
			inputTorque.yaw*dt,
			inputTorque.roll*dt,
		)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		inputTorque.roll *= 0.9

		// Update springs (harmonica handles timing internally)
		rotation.Update()

		model := math3d.RotateX(rotation.Pitch.Position).
			Mul(math3d.RotateY(rotation.Yaw.Position)).
			Mul(math3d.RotateZ(rotation.Roll.Position))
		transform := camera.ViewProjectionMatrix().Mul(model)

		fb.Clear(bg)

		renderer.Parallel = view.Parallel
		renderer.Stats.Reset()
		target := mesh
		if view.Wireframe {
			target = edges
		}
		if err := drawMesh(renderer, fb, target, transform); err != nil {
			cleanup()
			return fmt.Errorf("render: %w", err)
		}

		// Display
		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, view, renderer.Stats)

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// Package render implements triangle rasterization with depth compositing.
// A scene's primitives are scan-converted into a shared framebuffer, either
// sequentially one scanline at a time or primitive-parallel across goroutines.
package render

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"sync"
	"sync/atomic"

	"github.com/HugoSmits86/nativewebp"
)

// tileSize is the edge length of one lock tile in the framebuffer.
// Concurrent depth writes within the same tile serialize on one mutex.
const tileSize = 32

// ColorBuffer is a row-major 2D color surface with 4 bytes per pixel in
// blue, green, red, alpha order. Stride is in bytes and may exceed
// Width*4 when the buffer wraps externally allocated memory.
type ColorBuffer struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
}

// NewColorBuffer creates a tightly packed color buffer.
func NewColorBuffer(width, height int) *ColorBuffer {
	return &ColorBuffer{
		Width:  width,
		Height: height,
		Stride: width * 4,
		Pix:    make([]byte, width*height*4),
	}
}

// WrapColorBuffer wraps externally allocated BGRA pixel memory.
// Stride is in bytes and must cover at least Width*4.
func WrapColorBuffer(pix []byte, width, height, stride int) (*ColorBuffer, error) {
	if stride < width*4 {
		return nil, fmt.Errorf("render: stride %d shorter than row width %d", stride, width*4)
	}
	if len(pix) < stride*height {
		return nil, fmt.Errorf("render: pixel buffer holds %d bytes, need %d", len(pix), stride*height)
	}
	return &ColorBuffer{Width: width, Height: height, Stride: stride, Pix: pix}, nil
}

// SetPixel sets the pixel at (x, y). Out-of-bounds writes are skipped and
// reported via the return value.
func (cb *ColorBuffer) SetPixel(x, y int, c Color) bool {
	if x < 0 || x >= cb.Width || y < 0 || y >= cb.Height {
		return false
	}
	i := y*cb.Stride + x*4
	cb.Pix[i+0] = c.B
	cb.Pix[i+1] = c.G
	cb.Pix[i+2] = c.R
	cb.Pix[i+3] = c.A
	return true
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (cb *ColorBuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= cb.Width || y < 0 || y >= cb.Height {
		return Color{}
	}
	i := y*cb.Stride + x*4
	return Color{R: cb.Pix[i+2], G: cb.Pix[i+1], B: cb.Pix[i+0], A: cb.Pix[i+3]}
}

// Clear fills the buffer with a solid color.
func (cb *ColorBuffer) Clear(c Color) {
	if cb.Width == 0 || cb.Height == 0 {
		return
	}
	// Fill the first row with copy-doubling, then copy it down the
	// remaining rows.
	cb.SetPixel(0, 0, c)
	row := cb.Pix[:cb.Width*4]
	for i := 4; i < len(row); i *= 2 {
		copy(row[i:], row[:i])
	}
	for y := 1; y < cb.Height; y++ {
		copy(cb.Pix[y*cb.Stride:y*cb.Stride+cb.Width*4], row)
	}
}

// ToImage converts the buffer to a standard Go image.RGBA.
func (cb *ColorBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cb.Width, cb.Height))
	for y := 0; y < cb.Height; y++ {
		for x := 0; x < cb.Width; x++ {
			img.SetRGBA(x, y, cb.GetPixel(x, y))
		}
	}
	return img
}

// SavePNG saves the buffer as a PNG file.
func (cb *ColorBuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, cb.ToImage())
}

// SaveWebP saves the buffer as a lossless WebP file.
func (cb *ColorBuffer) SaveWebP(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return nativewebp.Encode(f, cb.ToImage(), nil)
}

// DepthBuffer is a row-major 2D surface of one float32 depth value per
// pixel. Stride is in elements. Smaller values are closer to the viewer.
type DepthBuffer struct {
	Width  int
	Height int
	Stride int
	Pix    []float32
}

// NewDepthBuffer creates a tightly packed depth buffer cleared to +Inf.
func NewDepthBuffer(width, height int) *DepthBuffer {
	db := &DepthBuffer{
		Width:  width,
		Height: height,
		Stride: width,
		Pix:    make([]float32, width*height),
	}
	db.Clear()
	return db
}

// WrapDepthBuffer wraps externally allocated depth memory. Stride is in
// elements and must cover at least Width. The buffer is not cleared.
func WrapDepthBuffer(pix []float32, width, height, stride int) (*DepthBuffer, error) {
	if stride < width {
		return nil, fmt.Errorf("render: depth stride %d shorter than row width %d", stride, width)
	}
	if len(pix) < stride*height {
		return nil, fmt.Errorf("render: depth buffer holds %d elements, need %d", len(pix), stride*height)
	}
	return &DepthBuffer{Width: width, Height: height, Stride: stride, Pix: pix}, nil
}

// Clear resets every depth value to +Inf. Padding elements of a wrapped
// buffer are left alone.
func (db *DepthBuffer) Clear() {
	if db.Width == 0 || db.Height == 0 {
		return
	}
	// Fill the first row with copy-doubling, then copy it down the
	// remaining rows.
	row := db.Pix[:db.Width]
	row[0] = float32(math.Inf(1))
	for i := 1; i < len(row); i *= 2 {
		copy(row[i:], row[:i])
	}
	for y := 1; y < db.Height; y++ {
		copy(db.Pix[y*db.Stride:y*db.Stride+db.Width], row)
	}
}

// At returns the depth at (x, y), or +Inf if out of bounds.
func (db *DepthBuffer) At(x, y int) float32 {
	if x < 0 || x >= db.Width || y < 0 || y >= db.Height {
		return float32(math.Inf(1))
	}
	return db.Pix[y*db.Stride+x]
}

// Set stores the depth at (x, y). Out-of-bounds writes are skipped.
func (db *DepthBuffer) Set(x, y int, z float32) bool {
	if x < 0 || x >= db.Width || y < 0 || y >= db.Height {
		return false
	}
	db.Pix[y*db.Stride+x] = z
	return true
}

// Framebuffer pairs a color surface with a depth surface of the same size.
// It is the only mutable resource shared between rasterization lanes; every
// write goes through a depth test so that the nearest surface wins.
type Framebuffer struct {
	Color *ColorBuffer
	Depth *DepthBuffer

	// oobWrites counts writes that fell outside the buffer and were
	// skipped. Non-fatal diagnostic, see OOBWrites.
	oobWrites atomic.Uint64

	// locks guards depth-test-then-write sequences in the parallel path,
	// one mutex per tileSize x tileSize pixel tile.
	locks  []sync.Mutex
	tilesX int
}

// NewFramebuffer creates a framebuffer with matching color and depth
// surfaces. The depth surface starts cleared to +Inf.
func NewFramebuffer(width, height int) *Framebuffer {
	return Compose(NewColorBuffer(width, height), NewDepthBuffer(width, height))
}

// Compose pairs caller-owned color and depth surfaces. The two must have
// identical width and height.
func Compose(cb *ColorBuffer, db *DepthBuffer) *Framebuffer {
	if cb.Width != db.Width || cb.Height != db.Height {
		panic(fmt.Sprintf("render: color %dx%d and depth %dx%d surfaces differ in size",
			cb.Width, cb.Height, db.Width, db.Height))
	}
	tilesX := max((cb.Width+tileSize-1)/tileSize, 1)
	tilesY := max((cb.Height+tileSize-1)/tileSize, 1)
	return &Framebuffer{
		Color:  cb,
		Depth:  db,
		locks:  make([]sync.Mutex, tilesX*tilesY),
		tilesX: tilesX,
	}
}

// Width returns the framebuffer width in pixels.
func (fb *Framebuffer) Width() int { return fb.Color.Width }

// Height returns the framebuffer height in pixels.
func (fb *Framebuffer) Height() int { return fb.Color.Height }

// Clear fills the color surface and resets the depth surface to +Inf.
// It returns only after both surfaces are fully cleared, so rasterization
// for the next frame never observes a partially cleared buffer.
func (fb *Framebuffer) Clear(c Color) {
	fb.Color.Clear(c)
	fb.Depth.Clear()
}

// TestAndSet performs the depth test at (x, y) and, if z is closer than
// the stored depth, writes depth then color. Out-of-bounds writes are
// skipped, counted, and reported via the return value.
//
// Not safe for concurrent use; the parallel path goes through
// TestAndSetLocked.
func (fb *Framebuffer) TestAndSet(x, y int, z float32, c Color) bool {
	if x < 0 || x >= fb.Color.Width || y < 0 || y >= fb.Color.Height {
		fb.oobWrites.Add(1)
		return false
	}
	if z >= fb.Depth.At(x, y) {
		return false
	}
	fb.Depth.Set(x, y, z)
	fb.Color.SetPixel(x, y, c)
	return true
}

// TestAndSetLocked is TestAndSet with the depth compare and the depth and
// color writes executed as one critical section under the pixel's tile
// lock. Concurrent writers racing for the same pixel resolve to the
// smallest depth regardless of scheduling order.
func (fb *Framebuffer) TestAndSetLocked(x, y int, z float32, c Color) bool {
	if x < 0 || x >= fb.Color.Width || y < 0 || y >= fb.Color.Height {
		fb.oobWrites.Add(1)
		return false
	}
	mu := &fb.locks[(y/tileSize)*fb.tilesX+x/tileSize]
	mu.Lock()
	defer mu.Unlock()
	if z >= fb.Depth.At(x, y) {
		return false
	}
	fb.Depth.Set(x, y, z)
	fb.Color.SetPixel(x, y, c)
	return true
}

// OOBWrites reports how many pixel writes were skipped for falling outside
// the buffer since the framebuffer was created.
func (fb *Framebuffer) OOBWrites() uint64 {
	return fb.oobWrites.Load()
}

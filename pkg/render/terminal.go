package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the color surface to terminal cells and draws them on the
// screen.
// The surface height should be 2x the terminal height.
func (cb *ColorBuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 pixel rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < cb.Width; col++ {
			topColor := cb.GetPixel(col, topY)
			botColor := cb.GetPixel(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(topColor),
					Bg: rgbaToColor(botColor),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// TerminalRenderer presents framebuffers on a terminal using half-block
// cells, packing two pixel rows into each terminal row.
type TerminalRenderer struct {
	term   *uv.Terminal
	width  int // terminal columns
	height int // terminal rows
}

// NewTerminalRenderer creates a renderer for a width x height cell
// terminal.
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{term: term, width: width, height: height}
}

// FramebufferSize returns the pixel dimensions a framebuffer should have
// to fill the terminal: one pixel per column, two per row.
func (r *TerminalRenderer) FramebufferSize() (width, height int) {
	return r.width, r.height * 2
}

// Render draws the framebuffer's color surface into the terminal's cell
// grid. Call Flush to present it.
func (r *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Color.Draw(r.term, uv.Rect(0, 0, r.width, r.height))
}

// Flush presents the pending cell grid to the terminal.
func (r *TerminalRenderer) Flush() error {
	return r.term.Display()
}

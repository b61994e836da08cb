// Command vellobridge-demo encodes a small scene and prints the GPU
// buffer layout a renderer would allocate for it.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"golang.org/x/image/colornames"

	"github.com/gogpu/vellobridge"
)

func main() {
	width := flag.Uint("width", 1920, "render target width in pixels")
	height := flag.Uint("height", 1080, "render target height in pixels")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		vellobridge.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	enc := vellobridge.New()

	// A filled card with a stroked border and a clipped circle.
	var card vellobridge.Path
	card.Rect(100, 100, 700, 500)
	enc.Fill(vellobridge.FillNonZero, vellobridge.Identity(),
		brushFor(colornames.Steelblue), card.Iterate())

	var border vellobridge.Path
	border.Rect(100, 100, 700, 500)
	enc.Stroke(vellobridge.Stroke{
		Width:      6,
		MiterLimit: 4,
		Cap:        vellobridge.CapRound,
		Join:       vellobridge.JoinRound,
	}, vellobridge.Identity(), brushFor(colornames.Navy), border.Iterate())

	var clip vellobridge.Path
	clip.Circle(400, 300, 150)
	enc.BeginClip(vellobridge.Identity(), clip.Iterate())

	var dot vellobridge.Path
	dot.Circle(400, 300, 180)
	enc.Fill(vellobridge.FillEvenOdd, vellobridge.Identity(),
		brushFor(colornames.Orange), dot.Iterate())
	enc.EndClip()

	cfg := enc.PrepareRender(uint32(*width), uint32(*height), color01(colornames.White))

	fmt.Printf("scene: %d paths, %d draw objects\n", enc.NumPaths(), enc.NumDrawObjects())
	fmt.Printf("config uniform: %d bytes\n", cfg.ConfigUniformBufferSize())
	fmt.Printf("packed scene:   %d bytes\n", cfg.SceneBufferSize())

	info := cfg.WorkgroupCounts()
	fmt.Printf("dispatch: fine %dx%d, coarse %dx%d, largePathScan=%v\n",
		info.Fine.X, info.Fine.Y, info.Coarse.X, info.Coarse.Y, info.UseLargePathScan)

	sizes := cfg.BufferSizes()
	fmt.Printf("buffers:  %s\n", sizes)
}

// brushFor wraps a named color as a solid brush.
func brushFor(c color.RGBA) vellobridge.Brush {
	return vellobridge.Brush{Kind: vellobridge.BrushSolid, Solid: color01(c)}
}

// color01 converts an 8-bit RGBA color to normalized channels.
func color01(c color.RGBA) vellobridge.Color {
	return vellobridge.Color{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

// Frame dump tool - runs the particle grid offscreen and writes the last
// frame to a PNG file for inspection.
//
// Usage: go run ./cmd/framedump -frames 120 -drag 640,360 -out grid.png
package main

import (
	"flag"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/particlegrid/config"
	"github.com/pthm-cable/particlegrid/game"
	"github.com/pthm-cable/particlegrid/renderer"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "frame.png", "Output PNG path")
	frames := flag.Int("frames", 60, "Frames to simulate before capture")
	drag := flag.String("drag", "", "Hold the pointer at x,y (pixels) with targeting enabled")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	width, height := cfg.Screen.Width, cfg.Screen.Height

	var dragX, dragY float32
	dragging := *drag != ""
	if dragging {
		if _, err := fmt.Sscanf(*drag, "%f,%f", &dragX, &dragY); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid -drag %q: %v\n", *drag, err)
			os.Exit(1)
		}
	}

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(width), int32(height), "Frame Dump")
	defer rl.CloseWindow()

	r, err := renderer.NewOpenGLRenderer(cfg.Render.AdditiveBlend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Renderer unavailable: %v\n", err)
		os.Exit(1)
	}
	shader, err := renderer.NewParticleShader(float32(cfg.Render.PointSize))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load shader: %v\n", err)
		os.Exit(1)
	}

	opts := game.OptionsFromConfig(cfg)
	opts.Snapshot = nil
	opts.Targeting = opts.Targeting || dragging
	g, err := game.New(game.CameraFromConfig(cfg), r, shader, renderer.NewQuad(), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create game: %v\n", err)
		os.Exit(1)
	}
	defer g.Unload()

	g.Resize(width, height)
	if err := g.LoadScene(cfg.Grid.Size); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load scene: %v\n", err)
		os.Exit(1)
	}
	if dragging {
		g.Interaction().PointerDown()
		g.PointerMove(dragX, dragY)
	}

	target := rl.LoadRenderTexture(int32(width), int32(height))
	defer rl.UnloadRenderTexture(target)

	for i := 0; i < *frames; i++ {
		rl.BeginTextureMode(target)
		err := g.Tick()
		rl.EndTextureMode()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Frame %d failed: %v\n", i, err)
			os.Exit(1)
		}
	}

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Frame %d rendered to: %s (%dx%d, %d instances)\n", g.Frame(), *outPath, width, height, g.Grid().Count())
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}

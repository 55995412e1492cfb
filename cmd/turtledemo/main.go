// Command turtledemo renders turtle pen scenes headlessly and saves the
// final frame as PNG.
//
// Usage:
//
//	turtledemo -scene spiral -output spiral.png
//	turtledemo -script square.toml -screen black -output square.png
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/gogpu/turtle"
	"github.com/gogpu/turtle/render"
	"github.com/gogpu/turtle/script"
)

func main() {
	var (
		width      = flag.Int("width", 800, "canvas width")
		height     = flag.Int("height", 600, "canvas height")
		sceneName  = flag.String("scene", "diagonal", "built-in scene: "+strings.Join(sceneNames(), ", "))
		scriptPath = flag.String("script", "", "pen script (.toml, .yaml) to run instead of a scene")
		screen     = flag.String("screen", "#202020", "frame clear color behind the canvas")
		background = flag.String("background", "", "canvas background (default transparent white)")
		output     = flag.String("output", "turtle.png", "output file")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		turtle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	screenColor, err := script.ParseColor(*screen)
	if err != nil {
		log.Fatalf("-screen: %v", err)
	}

	var opts []turtle.Option
	if *background != "" {
		bg, err := script.ParseColor(*background)
		if err != nil {
			log.Fatalf("-background: %v", err)
		}
		opts = append(opts, turtle.WithBackground(bg))
	}

	w, h := *width, *height
	draw, err := selectDrawing(*sceneName, *scriptPath, &w, &h, &opts)
	if err != nil {
		log.Fatal(err)
	}

	canvas, err := turtle.New(w, h, opts...)
	if err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}
	defer canvas.Destroy()

	frame := render.NewPixmapTarget(w, h)
	present := func() error {
		frame.Clear(screenColor.Color())
		return canvas.Render(frame)
	}
	if err := draw(canvas, present); err != nil {
		log.Fatalf("Failed to draw: %v", err)
	}

	if err := savePNG(*output, frame); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Frame saved to %s (%dx%d)\n", *output, w, h)
}

// selectDrawing returns the script at path when set, otherwise the named
// scene. A script may override the canvas size and background.
func selectDrawing(name, path string, w, h *int, opts *[]turtle.Option) (drawing, error) {
	if path == "" {
		d, ok := scenes[name]
		if !ok {
			return nil, fmt.Errorf("unknown scene %q (have %s)", name, strings.Join(sceneNames(), ", "))
		}
		return d, nil
	}

	s, err := script.Load(path)
	if err != nil {
		return nil, err
	}
	if s.Width > 0 {
		*w = s.Width
	}
	if s.Height > 0 {
		*h = s.Height
	}
	*opts = append(*opts, s.Options()...)
	return func(c *turtle.Canvas, present func() error) error {
		if err := s.Run(c); err != nil {
			return err
		}
		return present()
	}, nil
}

func sceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func savePNG(path string, frame *render.PixmapTarget) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, frame.Image()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

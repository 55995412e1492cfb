package main

import (
	"testing"

	"github.com/gogpu/turtle"
)

func TestSquareSceneYieldsFourSegments(t *testing.T) {
	c := turtle.MustNew(800, 600)
	defer c.Destroy()

	var segments int
	err := drawSquare(c, func() error {
		segments = len(c.Pending()) / 2
		return c.Render(nil)
	})
	if err != nil {
		t.Fatalf("drawSquare: %v", err)
	}
	if segments != 4 {
		t.Errorf("segments = %d, want 4", segments)
	}
}

func TestScenesRender(t *testing.T) {
	for _, name := range sceneNames() {
		t.Run(name, func(t *testing.T) {
			c := turtle.MustNew(200, 150)
			defer c.Destroy()

			frames := 0
			err := scenes[name](c, func() error {
				frames++
				return c.Render(nil)
			})
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if frames == 0 {
				t.Error("scene never presented a frame")
			}
			img, err := c.Snapshot()
			if err != nil {
				t.Fatalf("Snapshot: %v", err)
			}
			painted := false
			for i := 3; i < len(img.Pix); i += 4 {
				if img.Pix[i] == 255 {
					painted = true
					break
				}
			}
			if !painted {
				t.Error("scene left the canvas blank")
			}
		})
	}
}

func TestSelectDrawingUnknownScene(t *testing.T) {
	w, h := 10, 10
	var opts []turtle.Option
	if _, err := selectDrawing("nope", "", &w, &h, &opts); err == nil {
		t.Error("expected error for unknown scene")
	}
}

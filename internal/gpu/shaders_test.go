//go:build !nogpu

package gpu

import (
	"strings"
	"testing"
)

func TestShadersCompile(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		entryPoints []string
	}{
		{"line", lineShaderSource, []string{"fn vs_line", "fn vs_wide", "fn fs_main"}},
		{"composite", compositeShaderSource, []string{"fn vs_main", "fn fs_main"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.source == "" {
				t.Fatal("shader source is empty")
			}
			for _, ep := range tt.entryPoints {
				if !strings.Contains(tt.source, ep) {
					t.Errorf("shader missing entry point %q", ep)
				}
			}
			spirv, err := compileSPIRV(tt.source)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			if len(spirv) == 0 {
				t.Fatal("SPIR-V output is empty")
			}
			// SPIR-V magic number.
			if spirv[0] != 0x07230203 {
				t.Errorf("SPIR-V magic = %#x, want 0x07230203", spirv[0])
			}
		})
	}
}

func TestLineShaderFlipsY(t *testing.T) {
	// The shader's to_ndc must match turtle.PixelToNDC, which tests pin.
	want := "1.0 - p.y / u.viewport.y * 2.0"
	if !strings.Contains(lineShaderSource, want) {
		t.Errorf("line shader does not map y with %q", want)
	}
}

func TestCreateShaderRejectsInvalidSource(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	if _, err := createShader(device, "empty", "", newLogSink().logger()); err == nil {
		t.Error("expected error for empty source")
	}
	if _, err := createShader(device, "broken", "fn main( {", newLogSink().logger()); err == nil {
		t.Error("expected error for invalid WGSL")
	}
}

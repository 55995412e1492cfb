//go:build !nogpu

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/line.wgsl
var lineShaderSource string

//go:embed shaders/composite.wgsl
var compositeShaderSource string

// compileSPIRV compiles WGSL source to SPIR-V words.
// SPIR-V is little-endian 32-bit words.
func compileSPIRV(source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("SPIR-V length %d is not a multiple of 4", len(spirvBytes))
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

// createShader validates source with naga and creates the hal module.
// The module is built from WGSL so every backend can lower it natively.
func createShader(device hal.Device, name, source string, log *slog.Logger) (hal.ShaderModule, error) {
	if source == "" {
		return nil, fmt.Errorf("%s shader source is empty", name)
	}
	if _, err := compileSPIRV(source); err != nil {
		return nil, fmt.Errorf("compile %s shader: %w", name, err)
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  name + "_shader",
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s shader module: %w", name, err)
	}
	log.Debug("gpu: shader compiled", "shader", name)
	return module, nil
}

//go:build !nogpu

package wgpu

import (
	_ "embed"
	"sync"

	"github.com/gogpu/naga"

	"github.com/gogpu/canvas"
)

//go:embed shaders/canvas.wgsl
var shaderSource string

var (
	shaderOnce sync.Once
	shaderErr  error
)

// checkShader translates the fill program once per process so a broken
// shader is reported with the compiler's message instead of a device
// error deep inside pipeline creation.
func checkShader() error {
	shaderOnce.Do(func() {
		if _, err := naga.Compile(shaderSource); err != nil {
			shaderErr = canvas.ShaderCompileError(err.Error())
		}
	})
	return shaderErr
}

//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend"
)

func init() {
	backend.Register(backend.NameWGPU, func() (canvas.Renderer, error) {
		return NewHeadless()
	})
}

// NewHeadless opens the first hardware adapter of the registered HAL
// backends and creates a renderer that owns the device. Close releases it.
func NewHeadless(opts ...Option) (*Renderer, error) {
	for _, variant := range hal.AvailableBackends() {
		if variant == gputypes.BackendEmpty {
			continue
		}
		b, ok := hal.GetBackend(variant)
		if !ok {
			continue
		}
		instance, err := b.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
		if err != nil {
			canvas.Logger().Debug("wgpu: instance unavailable", "backend", variant, "err", err)
			continue
		}
		selected := pickAdapter(instance.EnumerateAdapters(nil))
		if selected == nil {
			instance.Destroy()
			continue
		}
		open, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
		if err != nil {
			instance.Destroy()
			canvas.Logger().Debug("wgpu: adapter open failed", "adapter", selected.Info.Name, "err", err)
			continue
		}
		r, err := New(open.Device, open.Queue, opts...)
		if err != nil {
			open.Device.Destroy()
			instance.Destroy()
			return nil, err
		}
		r.release = func() {
			open.Device.Destroy()
			instance.Destroy()
		}
		canvas.Logger().Info("wgpu: device opened", "backend", variant, "adapter", selected.Info.Name)
		return r, nil
	}
	return nil, fmt.Errorf("%w: no GPU adapter", backend.ErrBackendNotAvailable)
}

// pickAdapter prefers discrete and integrated GPUs over other adapters.
func pickAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	for i := range adapters {
		switch adapters[i].Info.DeviceType {
		case gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU:
			return &adapters[i]
		}
	}
	if len(adapters) > 0 {
		return &adapters[0]
	}
	return nil
}

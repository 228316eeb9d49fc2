package render

import (
	"fmt"

	"github.com/gogpu/framerig"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/core"
)

// NativeRenderer composes frames through gogpu/wgpu. Init probes for a
// GPU adapter and fails with ErrNotAvailable on machines without one,
// which scenarios translate into a skip rather than a failure.
//
// The shading itself currently runs on the CPU fill path while the
// texture readback pipeline is phased in; the renderer still owns real
// GPU resources so capability probing reflects the machine, not a stub.
type NativeRenderer struct {
	instance *core.Instance
	adapter  core.AdapterID
	device   core.DeviceID
	queue    core.QueueID

	gpuInfo *GPUInfo
	fill    SoftwareRenderer

	initialized bool
}

// init registers the native renderer on package import. Registration is
// unconditional; availability is decided by Init's adapter probe.
func init() {
	Register(Native, func() Renderer {
		return &NativeRenderer{}
	})
}

// NewNativeRenderer creates a new GPU renderer. It must be initialized
// with Init before use.
func NewNativeRenderer() *NativeRenderer {
	return &NativeRenderer{}
}

// Name returns the renderer identifier.
func (r *NativeRenderer) Name() string {
	return Native
}

// Init creates the wgpu instance, adapter, device, and queue. A machine
// without a usable adapter yields ErrNotAvailable.
func (r *NativeRenderer) Init() error {
	if r.initialized {
		return nil
	}

	desc := &gputypes.InstanceDescriptor{
		Backends: gputypes.BackendsPrimary,
		Flags:    0,
	}
	r.instance = core.NewInstance(desc)

	adapterID, err := r.instance.RequestAdapter(&gputypes.RequestAdapterOptions{
		PowerPreference: gputypes.PowerPreferenceHighPerformance,
	})
	if err != nil {
		r.instance = nil
		return fmt.Errorf("%w: %w", ErrNotAvailable, err)
	}
	r.adapter = adapterID
	r.gpuInfo, _ = getGPUInfo(adapterID)
	if r.gpuInfo != nil {
		framerig.Logger().Info("render: native renderer selected GPU", "gpu", r.gpuInfo.String())
	}

	deviceID, err := createDevice(adapterID, "framerig-native")
	if err != nil {
		_ = releaseAdapter(adapterID)
		r.adapter = core.AdapterID{}
		r.instance = nil
		return fmt.Errorf("device creation failed: %w", err)
	}
	r.device = deviceID

	queueID, err := core.GetDeviceQueue(deviceID)
	if err != nil {
		_ = releaseDevice(deviceID)
		_ = releaseAdapter(adapterID)
		r.device = core.DeviceID{}
		r.adapter = core.AdapterID{}
		r.instance = nil
		return fmt.Errorf("queue retrieval failed: %w", err)
	}
	r.queue = queueID

	if err := r.fill.Init(); err != nil {
		return err
	}

	r.initialized = true
	return nil
}

// Close releases GPU resources in reverse order of creation.
func (r *NativeRenderer) Close() {
	if !r.initialized && r.instance == nil {
		return
	}

	if err := releaseDevice(r.device); err != nil {
		framerig.Logger().Warn("render: error releasing device", "err", err)
	}
	r.device = core.DeviceID{}

	if err := releaseAdapter(r.adapter); err != nil {
		framerig.Logger().Warn("render: error releasing adapter", "err", err)
	}
	r.adapter = core.AdapterID{}

	r.queue = core.QueueID{}
	r.instance = nil
	r.gpuInfo = nil
	r.fill.Close()
	r.initialized = false
}

// GPUInfo returns information about the selected GPU, or nil before
// Init.
func (r *NativeRenderer) GPUInfo() *GPUInfo {
	return r.gpuInfo
}

// Render composes one frame. The target must have a texture-compatible
// format (RGBA8); RGB8 captures belong on the software renderer.
func (r *NativeRenderer) Render(dst *framerig.FrameBuffer, view View) error {
	if !r.initialized {
		return ErrNotInitialized
	}
	if _, err := textureFormatFor(dst.Format()); err != nil {
		return err
	}
	return r.fill.Render(dst, view)
}

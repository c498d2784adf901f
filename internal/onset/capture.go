package onset

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gen2brain/malgo"
)

// micSource captures mono float32 samples from the platform default input
// device via miniaudio. Device enumeration and permission prompts stay with
// the OS; we only ever open the default device.
type micSource struct {
	ctx *malgo.AllocatedContext
	dev *malgo.Device
	buf []float32
}

func (m *micSource) start(onSamples func([]float32)) error {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("%w: init context: %v", ErrDeviceAccess, err)
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Capture)
	cfg.Capture.Format = malgo.FormatF32
	cfg.Capture.Channels = 1
	cfg.SampleRate = SampleRate
	cfg.Alsa.NoMMap = 1

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, frames uint32) {
			// Audio thread: decode in place into a reused buffer, no allocs
			// after warm-up.
			n := int(frames)
			if cap(m.buf) < n {
				m.buf = make([]float32, n)
			}
			m.buf = m.buf[:n]
			for i := 0; i < n; i++ {
				bits := binary.LittleEndian.Uint32(input[i*4:])
				m.buf[i] = math.Float32frombits(bits)
			}
			onSamples(m.buf)
		},
	}

	dev, err := malgo.InitDevice(ctx.Context, cfg, callbacks)
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("%w: init device: %v", ErrDeviceAccess, err)
	}
	if err := dev.Start(); err != nil {
		dev.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("%w: start device: %v", ErrDeviceAccess, err)
	}

	m.ctx = ctx
	m.dev = dev
	return nil
}

func (m *micSource) stop() {
	if m.dev != nil {
		m.dev.Uninit()
		m.dev = nil
	}
	if m.ctx != nil {
		_ = m.ctx.Uninit()
		m.ctx.Free()
		m.ctx = nil
	}
}

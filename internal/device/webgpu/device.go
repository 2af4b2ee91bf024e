//go:build windows

package webgpu

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/born-ml/ndarray/internal/tensor"
)

// ErrSizeMismatch is returned when a download target has a different size
// than the device buffer.
var ErrSizeMismatch = errors.New("webgpu: buffer size mismatch")

// Device is an opened GPU device with its submission queue.
type Device struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	info     wgpu.AdapterInfo
}

// Buffer is array storage resident on a device.
type Buffer struct {
	buf   *wgpu.Buffer
	size  uint64 // Payload size in bytes
	shape tensor.Shape
}

// Open requests the high-performance adapter and its device.
// Returns an error if WebGPU is not available or initialization fails.
func Open() (d *Device, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			d = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", err)
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", err)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Device{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    queue,
		info:     adapter.GetInfo(),
	}, nil
}

// IsAvailable checks if a WebGPU adapter can be opened on this system.
func IsAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()
	return true
}

// Name returns the adapter description.
func (d *Device) Name() string {
	return d.info.Description
}

// Release frees the device and everything it was created from.
func (d *Device) Release() {
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.device != nil {
		d.device.Release()
		d.device = nil
	}
	if d.adapter != nil {
		d.adapter.Release()
		d.adapter = nil
	}
	if d.instance != nil {
		d.instance.Release()
		d.instance = nil
	}
}

// alignedSize rounds n up to the 4-byte granularity of buffer mapping.
func alignedSize(n int) uint64 {
	return (uint64(n) + 3) &^ 3
}

// Upload copies the storage of src into a new storage buffer.
func (d *Device) Upload(src tensor.RawBuffer) (*Buffer, error) {
	data := src.RawBytes()
	size := alignedSize(len(data))
	if size == 0 {
		size = 4
	}

	buffer := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})
	if buffer == nil {
		return nil, fmt.Errorf("webgpu: failed to create buffer of %d bytes", size)
	}

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mapped := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mapped, data)
	buffer.Unmap()

	return &Buffer{
		buf:   buffer,
		size:  uint64(len(data)),
		shape: src.Shape().Clone(),
	}, nil
}

// Download copies a device buffer back to host memory.
// Uses a staging buffer since storage buffers can't be mapped directly.
func (d *Device) Download(b *Buffer) ([]byte, error) {
	if b.size == 0 {
		return []byte{}, nil
	}
	size := alignedSize(int(b.size))

	staging := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer staging.Release()

	encoder := d.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(b.buf, 0, staging, 0, size)
	cmd := encoder.Finish(nil)
	d.queue.Submit(cmd)

	if err := staging.MapAsync(d.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("webgpu: failed to map staging buffer: %w", err)
	}
	mappedPtr := staging.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mapped := unsafe.Slice((*byte)(mappedPtr), size)
	out := make([]byte, b.size)
	copy(out, mapped)
	staging.Unmap()

	return out, nil
}

// DownloadInto copies a device buffer into the storage of dst, which must
// have the same byte size.
func (d *Device) DownloadInto(b *Buffer, dst tensor.RawBufferMut) error {
	if uint64(dst.ByteSize()) != b.size {
		return fmt.Errorf("%w: device %d bytes, host %d bytes", ErrSizeMismatch, b.size, dst.ByteSize())
	}
	data, err := d.Download(b)
	if err != nil {
		return err
	}
	copy(dst.RawBytesMut(), data)
	return nil
}

// Size returns the payload size in bytes.
func (b *Buffer) Size() uint64 {
	return b.size
}

// Shape returns the shape of the uploaded array.
func (b *Buffer) Shape() tensor.Shape {
	return b.shape
}

// Release frees the device memory.
func (b *Buffer) Release() {
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
}

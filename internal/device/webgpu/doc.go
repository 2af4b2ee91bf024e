// Package webgpu hands array storage to a GPU device and back.
//
// Arrays expose their storage through tensor.RawBuffer; Upload copies those
// bytes into a device buffer and Download copies them back into host memory.
// The package does not compile or run shaders.
//
// The implementation uses go-webgpu (github.com/go-webgpu/webgpu) and is only
// built on Windows, where the native wgpu library is distributed.
package webgpu

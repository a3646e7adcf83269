// Package imaging provides the pixel-level building blocks of an image import:
// decoding compressed image bytes into a flat RGBA buffer, bounds-checked
// access to that buffer, color model conversion, region cropping and a
// preview renderer that paints merged blocks back into an image.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Pixel Buffers
//
// A PixelBuffer holds non-premultiplied RGBA bytes in row-major order, four
// bytes per pixel. Callers read it through At, which reports whether the
// coordinate lies inside the image instead of indexing the slice directly.
// Buffers are never mutated after construction and may be read from any
// goroutine, but an import worker is expected to own its buffer exclusively.
//
// # Color Representation
//
//   - RGB / RGBA: 8-bit components (0-255)
//   - HSV: Hue (0-360, exclusive), Saturation (0-1), Value (0-1)
//
// # Thread Safety
//
// The InfoCache type is safe for concurrent use. All other functions are
// stateless.
package imaging

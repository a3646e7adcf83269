package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// ErrEmptyInput is returned by Decode when there are no bytes to decode.
var ErrEmptyInput = errors.New("no image data")

// Decoder turns compressed image bytes into a PixelBuffer.
type Decoder interface {
	Decode(data []byte) (*PixelBuffer, error)
}

// DecoderFunc adapts a plain function to the Decoder interface.
type DecoderFunc func(data []byte) (*PixelBuffer, error)

// Decode calls f(data).
func (f DecoderFunc) Decode(data []byte) (*PixelBuffer, error) {
	return f(data)
}

// DefaultDecoder decodes PNG, JPEG, GIF, BMP, TIFF and WebP data.
var DefaultDecoder Decoder = DecoderFunc(Decode)

// Decode decodes an image held in memory into a PixelBuffer.
//
// JPEG EXIF orientation is applied so the buffer matches what an image viewer
// shows. Animated GIFs contribute their first frame only.
func Decode(data []byte) (*PixelBuffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

// DecodeFile reads and decodes the image at path.
func DecodeFile(path string) (*PixelBuffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return Decode(data)
}

// ImageInfo contains header metadata about an image file.
//
// It is read without decoding pixel data, so probing a large image is cheap
// enough to run on every settings change.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format name reported by the registered decoder
	// ("png", "jpeg", "gif", "bmp", "tiff", "webp").
	Format string `json:"format"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Probe reads the image header at path.
func Probe(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &ImageInfo{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}

// InfoCache memoizes Probe results by path.
//
// InfoCache is safe for concurrent use by multiple goroutines. Entries are
// keyed by the exact path string, so relative and absolute paths to the same
// file are cached separately. A cached entry goes stale if the file changes
// on disk; call Evict to force a re-read.
type InfoCache struct {
	mu    sync.RWMutex
	infos map[string]*ImageInfo
}

// NewInfoCache creates an empty cache.
func NewInfoCache() *InfoCache {
	return &InfoCache{
		infos: make(map[string]*ImageInfo),
	}
}

// Load returns the cached header for path, probing the file on a miss.
func (c *InfoCache) Load(path string) (*ImageInfo, error) {
	c.mu.RLock()
	if info, ok := c.infos[path]; ok {
		c.mu.RUnlock()
		return info, nil
	}
	c.mu.RUnlock()

	info, err := Probe(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.infos[path] = info
	c.mu.Unlock()

	return info, nil
}

// Evict removes a path from the cache. Unknown paths are ignored.
func (c *InfoCache) Evict(path string) {
	c.mu.Lock()
	delete(c.infos, path)
	c.mu.Unlock()
}

// Clear removes every entry.
func (c *InfoCache) Clear() {
	c.mu.Lock()
	c.infos = make(map[string]*ImageInfo)
	c.mu.Unlock()
}

// Package screenshot writes captured frames to PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Capture names and writes screenshots into a directory.
type Capture struct {
	dir    string
	prefix string
	now    func() time.Time
	last   string
	seq    int
}

// New returns a Capture writing <prefix>_<timestamp>.png files into dir.
// An empty dir means the working directory.
func New(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// FromPixels converts bottom-up RGBA rows, as read back from OpenGL, to a
// top-down image.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := range height {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}

// Save writes bottom-up RGBA pixels and returns the file name.
func (c *Capture) Save(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.SaveImage(img)
}

// SaveImage writes img and returns the file name.
func (c *Capture) SaveImage(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	name := c.nextName()

	file, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", name, err)
	}
	return name, nil
}

// nextName appends a counter when two captures land in the same second.
func (c *Capture) nextName() string {
	stamp := c.now().Format("2006-01-02_15-04-05")
	if stamp == c.last {
		c.seq++
	} else {
		c.last, c.seq = stamp, 0
	}
	name := fmt.Sprintf("%s_%s.png", c.prefix, stamp)
	if c.seq > 0 {
		name = fmt.Sprintf("%s_%s_%d.png", c.prefix, stamp, c.seq)
	}
	return filepath.Join(c.dir, name)
}

package splat

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	gomath "math"
	"os"

	"github.com/aquilax/go-perlin"
	_ "golang.org/x/image/bmp"  // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder

	"github.com/Faultbox/splatfx/pkg/math"
)

// ErrNoImage is returned when an image has no pixels.
var ErrNoImage = errors.New("splat: image has no pixels")

// ImageOptions controls FromImage.
type ImageOptions struct {
	MaxPoints int     // downsample so that width*height <= MaxPoints; 0 keeps full size
	Depth     float32 // pseudo-depth amplitude from luminance and noise
	Seed      int64
}

// DefaultImageOptions returns the options used by the viewer.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{MaxPoints: 200_000, Depth: 0.3, Seed: 1}
}

// LoadImage decodes a png, jpeg, gif, bmp or webp file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// FromImage builds an image-plane field: one splat per (downsampled) pixel,
// placed on the XY plane with its longer side spanning [-1,1] and pushed along
// Z by luminance plus Perlin noise. Fully transparent pixels are skipped.
func FromImage(img image.Image, opts ImageOptions) (*Field, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrNoImage
	}

	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if opts.MaxPoints > 0 && w*h > opts.MaxPoints {
		k := gomath.Sqrt(float64(opts.MaxPoints) / float64(w*h))
		w = max(1, int(float64(w)*k))
		h = max(1, int(float64(h)*k))
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == src.Dx() && h == src.Dy() {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	}

	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, opts.Seed)
	spacing := 2 / float32(max(w, h))
	extent := spacing * 0.6

	splats := make([]Splat, 0, w*h)
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			c := dst.NRGBAAt(px, py)
			if c.A == 0 {
				continue
			}
			x := (float32(px) - float32(w-1)/2) * spacing
			y := (float32(h-1)/2 - float32(py)) * spacing
			lum := luminance(c)
			nv := float32(noise.Noise2D(float64(x)*3, float64(y)*3))
			splats = append(splats, Splat{
				Center:   math.Vec3{X: x, Y: y, Z: opts.Depth * ((lum - 0.5) + 0.25*nv)},
				Scale:    math.Vec3{X: extent, Y: extent, Z: extent * 0.3},
				Rotation: math.QuatIdentity(),
				Color: math.Vec4{
					X: float32(c.R) / 255,
					Y: float32(c.G) / 255,
					Z: float32(c.B) / 255,
					W: float32(c.A) / 255,
				},
			})
		}
	}
	if len(splats) == 0 {
		return nil, fmt.Errorf("all %d pixels transparent: %w", w*h, ErrEmptyField)
	}
	return NewField(splats), nil
}

func luminance(c color.NRGBA) float32 {
	return (0.2126*float32(c.R) + 0.7152*float32(c.G) + 0.0722*float32(c.B)) / 255
}

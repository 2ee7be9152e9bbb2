package config

import (
	"fmt"

	"github.com/Faultbox/splatfx/internal/splat"
)

// Build constructs the field selected by Source.
func (c FieldConfig) Build() (*splat.Field, error) {
	gen := splat.GenOptions{Seed: c.Seed, Relief: c.Relief}
	switch c.Source {
	case SourceSphere:
		return splat.Sphere(c.Count, c.Radius, gen)
	case SourcePlane:
		return splat.Plane(c.Width, c.Height, gen)
	case SourceImage:
		return c.BuildImage(c.Image)
	default:
		return nil, fmt.Errorf("unknown field source %q", c.Source)
	}
}

// BuildImage builds an image-plane field from path using the image settings.
func (c FieldConfig) BuildImage(path string) (*splat.Field, error) {
	img, err := splat.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("load image field: %w", err)
	}
	f, err := splat.FromImage(img, splat.ImageOptions{
		MaxPoints: c.MaxPoints,
		Depth:     c.Depth,
		Seed:      c.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("build image field %s: %w", path, err)
	}
	return f, nil
}

package scene

import (
	"fmt"
	"sort"

	"github.com/spectralpt/go-spectral-raytracer/pkg/rgb2spec"
)

// Builder constructs a built-in scene from the RGB-to-spectrum table
type Builder func(table *rgb2spec.Table) *Scene

var builders = map[string]Builder{
	"cornell":      NewCornellScene,
	"default":      NewDefaultScene,
	"sphere-light": NewSphereLightScene,
}

// Names returns the available built-in scene names, sorted
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build creates the named built-in scene
func Build(name string, table *rgb2spec.Table) (*Scene, error) {
	builder, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	return builder(table), nil
}

// Package scenes holds the animated scenes the stage rotates through.
// Every scene draws onto its own display surface and owns nothing else.
package scenes

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/stage"
)

// ErrUnknownScene is returned when a playlist names a scene that does not exist.
var ErrUnknownScene = errors.New("scenes: unknown scene")

type builder func(s *display.Surface, rng *rand.Rand) stage.Driver

var builders = []struct {
	name  string
	build builder
}{
	{"Starfield", newStarfield},
	{"Rain on Window", newRain},
	{"Fireflies", newFireflies},
	{"Aurora Borealis", newAurora},
	{"Ocean Waves", newOcean},
	{"Lantern Festival", newLanterns},
	{"Pendulum Wave", newPendulumWave},
	{"Neon City", newNeonCity},
}

// Names lists every scene in registry order.
func Names() []string {
	names := make([]string, len(builders))
	for i, b := range builders {
		names[i] = b.name
	}
	return names
}

// Catalog produces stage scenes. Each driver gets its own random source
// drawn from the catalog seed, and runs behind a panic guard.
type Catalog struct {
	rng *rand.Rand
	log zerolog.Logger
}

func NewCatalog(seed int64, log zerolog.Logger) *Catalog {
	return &Catalog{rng: rand.New(rand.NewSource(seed)), log: log}
}

// All returns every scene in registry order.
func (c *Catalog) All() []stage.Scene {
	out := make([]stage.Scene, len(builders))
	for i, b := range builders {
		out[i] = c.scene(b.name, b.build)
	}
	return out
}

// Select returns the named scenes in the order given. Matching ignores case.
func (c *Catalog) Select(names []string) ([]stage.Scene, error) {
	if len(names) == 0 {
		return c.All(), nil
	}
	out := make([]stage.Scene, 0, len(names))
	for _, name := range names {
		i := lookup(name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
		}
		out = append(out, c.scene(builders[i].name, builders[i].build))
	}
	return out, nil
}

func (c *Catalog) scene(name string, build builder) stage.Scene {
	return stage.Scene{
		Name: name,
		New: func(s *display.Surface) stage.Driver {
			rng := rand.New(rand.NewSource(c.rng.Int63()))
			return guard(build(s, rng), name, c.log)
		},
	}
}

func lookup(name string) int {
	for i, b := range builders {
		if strings.EqualFold(b.name, name) || strings.EqualFold(slug(b.name), name) {
			return i
		}
	}
	return -1
}

// slug turns a display name into a config-friendly key: "Rain on Window"
// becomes "rain-on-window".
func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// Slugs lists every scene key in registry order.
func Slugs() []string {
	out := make([]string, len(builders))
	for i, b := range builders {
		out[i] = slug(b.name)
	}
	return out
}

package scenes

import (
	"github.com/rs/zerolog"

	"github.com/san-kum/nocturne/internal/stage"
)

// guarded keeps one bad frame from halting the display: a panic inside
// Animate is logged and the frame dropped.
type guarded struct {
	stage.Driver
	name   string
	log    zerolog.Logger
	faults int
}

func guard(d stage.Driver, name string, log zerolog.Logger) stage.Driver {
	return &guarded{Driver: d, name: name, log: log}
}

func (g *guarded) Animate(dt, elapsed float64) {
	defer func() {
		if r := recover(); r != nil {
			g.faults++
			g.log.Warn().Str("scene", g.name).Int("faults", g.faults).Interface("panic", r).Msg("frame dropped")
		}
	}()
	g.Driver.Animate(dt, elapsed)
}

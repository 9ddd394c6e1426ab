package explore

import (
	"io"

	"github.com/charmbracelet/log"
)

// Options configures an [Explorer].
type Options struct {
	// BaseRadius is the base edge length handed to [Seed]. Zero or negative
	// means DefaultBaseRadius.
	BaseRadius float64

	// Origin is the seed node's position. Nil means DefaultOrigin.
	Origin *Point

	// ExpandSeed expands the seed node as part of New.
	ExpandSeed bool

	// Logger receives debug output for expansions and a warning for every
	// skipped pointer. Nil discards.
	Logger *log.Logger
}

// WithDefaults returns a copy of o with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.BaseRadius <= 0 {
		o.BaseRadius = DefaultBaseRadius
	}
	if o.Origin == nil {
		origin := DefaultOrigin
		o.Origin = &origin
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

package circuit

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/rs/zerolog"
)

// Option configures a Builder at construction time.
type Option func(*Builder)

// WithLogger attaches a zerolog.Logger the builder uses for the warn-level
// diagnostics the original emitted via Python's logging module (e.g. a
// boolean gate fed a non-{0,1} input). The default is a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithKnownCurve tags the builder with the name of a recognized curve
// scalar field, purely for diagnostic logging: it does not change any
// arithmetic. Call it with any gnark-crypto ecc.ID whose scalar field
// happens to match the builder's modulus; the match is not checked.
func WithKnownCurve(id ecc.ID) Option {
	return func(b *Builder) {
		name := id.String()
		b.knownCurveName = name
		b.logger.Info().Str("curve", name).Msg("circuit modulus matches a recognized curve scalar field")
	}
}

// WithProfiling turns on constraint-cost tagging (MarkTag/AddCounter/
// WriteProfile). Profiling is off by default since it retains a snapshot
// of the counters at every call to MarkTag.
func WithProfiling() Option {
	return func(b *Builder) {
		b.profiling = true
		b.tags = make(map[Tag]tagSnapshot)
	}
}

// KnownCurveName returns the name supplied to WithKnownCurve, or "" if none
// was configured.
func (b *Builder) KnownCurveName() string { return b.knownCurveName }

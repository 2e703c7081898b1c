// Package kryvos is the prime-field arithmetic-circuit gate library for
// zero-knowledge voting protocols: field and wire algebra, primitive gates,
// Montgomery-curve point operations, Pedersen commitments, and the ballot,
// evaluation and instant-runoff-voting gates built on top of them.
package kryvos

import "github.com/blang/semver/v4"

// Version identifies this module's release, matching the teacher's own
// direct dependency on blang/semver for this purpose.
var Version = semver.MustParse("0.1.0")

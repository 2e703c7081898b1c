package circuit

import (
	"io"

	"github.com/google/pprof/profile"
)

// Tag names a point in circuit construction, so the constraint cost of the
// region between two tags can be measured after the fact. This mirrors
// isabella232-gnark's frontend.API.Tag/AddCounter shape, adapted from a
// compiler-internal region counter to an explicit builder-side one.
type Tag string

type tagSnapshot struct {
	nMul   uint64
	nWires uint64
}

type counterDelta struct {
	from, to Tag
	nMul     uint64
	nWires   uint64
}

// MarkTag records the builder's current counters under name, so a later
// AddCounter(name, ...) call can measure the constraints added since.
// It is a no-op unless the builder was constructed with WithProfiling.
func (b *Builder) MarkTag(name Tag) {
	if !b.profiling {
		return
	}
	b.tags[name] = tagSnapshot{nMul: b.nMul, nWires: b.nWires}
}

// AddCounter records the constraint/wire cost incurred between a tag
// previously recorded with MarkTag(from) and the builder's current state,
// labels it to, and returns the observed deltas. It is a no-op (returning
// zero deltas) unless the builder was constructed with WithProfiling, or if
// from was never marked.
func (b *Builder) AddCounter(from, to Tag) (mulDelta, wireDelta uint64) {
	if !b.profiling {
		return 0, 0
	}
	snap, ok := b.tags[from]
	if !ok {
		return 0, 0
	}
	mulDelta = b.nMul - snap.nMul
	wireDelta = b.nWires - snap.nWires
	b.deltas = append(b.deltas, counterDelta{from: from, to: to, nMul: mulDelta, nWires: wireDelta})
	return mulDelta, wireDelta
}

// WriteProfile renders every region recorded via AddCounter as a pprof
// profile, with "constraints" and "wires" as sample value types and each
// region's `to` tag as a stack-trace-free named sample. This is
// constraint-cost introspection, not a proof-system export: it carries no
// proving/verification data.
func (b *Builder) WriteProfile(w io.Writer) error {
	p := &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "constraints", Unit: "count"},
			{Type: "wires", Unit: "count"},
		},
		PeriodType: &profile.ValueType{Type: "region", Unit: "count"},
		Period:     1,
	}

	funcByName := map[string]*profile.Function{}
	var nextID uint64 = 1

	for _, d := range b.deltas {
		name := string(d.to)
		fn, ok := funcByName[name]
		if !ok {
			fn = &profile.Function{ID: nextID, Name: name, SystemName: name}
			nextID++
			funcByName[name] = fn
			p.Function = append(p.Function, fn)
		}
		loc := &profile.Location{
			ID:   nextID,
			Line: []profile.Line{{Function: fn}},
		}
		nextID++
		p.Location = append(p.Location, loc)
		p.Sample = append(p.Sample, &profile.Sample{
			Location: []*profile.Location{loc},
			Value:    []int64{int64(d.nMul), int64(d.nWires)},
			Label:    map[string][]string{"region": {string(d.from) + "->" + string(d.to)}},
		})
	}

	return p.Write(w)
}

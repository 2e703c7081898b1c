// Package irv implements Instant-Runoff Voting evaluation as
// arithmetic-circuit gates: a ballot manager that tracks, per ranked
// ordering of choices, the (possibly redistributed) vote count behind it,
// and the round-by-round elimination loop that drives the runoff.
package irv

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/exp/slices"

	"github.com/julianliedtke/kryvos-go/circuit"
)

const choiceSeparator = "-"

// BallotManager accumulates votes for ranked-choice orderings and
// redistributes them across elimination rounds. Every possible ordering of
// length 1..n_choices (plus the empty ordering) is pre-allocated with a
// zero vote count, so lookups never miss.
type BallotManager struct {
	b        *circuit.Builder
	nChoices int
	mapping  map[string]circuit.Wire
	// order lists mapping's keys longest-ordering-first: update propagates
	// votes from longer orderings to the shorter ones obtained by
	// dropping their first (now-eliminated) choice, so processing must
	// visit longer keys before the shorter keys that depend on them.
	order []string
}

// NewBallotManager builds a BallotManager for an election among nChoices
// choices, with every ballot ordering initialized to zero votes.
func NewBallotManager(b *circuit.Builder, nChoices int) *BallotManager {
	m := &BallotManager{
		b:        b,
		nChoices: nChoices,
		mapping:  make(map[string]circuit.Wire),
	}
	for length := nChoices; length >= 1; length-- {
		for _, ordering := range permutations(nChoices, length) {
			key := mapBallotToStr(ordering)
			m.mapping[key] = b.Secret(0)
			m.order = append(m.order, key)
		}
	}
	emptyKey := mapBallotToStr(nil)
	m.mapping[emptyKey] = b.Secret(0)
	m.order = append(m.order, emptyKey)
	return m
}

func mapBallotToStr(ordering []int) string {
	parts := make([]string, len(ordering))
	for i, v := range ordering {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, choiceSeparator)
}

func mapStrToBallot(key string) []int {
	if key == "" {
		return nil
	}
	parts := strings.Split(key, choiceSeparator)
	ordering := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			panic(fmt.Sprintf("irv: malformed ballot key %q", key))
		}
		ordering[i] = v
	}
	return ordering
}

// permutations returns every length-element ordering of distinct values
// drawn from 0..n-1, in lexicographic order.
func permutations(n, length int) [][]int {
	if length == 0 {
		return [][]int{{}}
	}
	var result [][]int
	used := make([]bool, n)
	cur := make([]int, 0, length)
	var rec func()
	rec = func() {
		if len(cur) == length {
			out := make([]int, length)
			copy(out, cur)
			result = append(result, out)
			return
		}
		for v := 0; v < n; v++ {
			if used[v] {
				continue
			}
			used[v] = true
			cur = append(cur, v)
			rec()
			cur = cur[:len(cur)-1]
			used[v] = false
		}
	}
	rec()
	// Recursive construction already yields lexicographic order by
	// construction; sort explicitly so that invariant doesn't depend on
	// nobody ever reordering the loop above.
	slices.SortFunc(result, func(a, b []int) bool {
		for i := range a {
			if a[i] != b[i] {
				return a[i] < b[i]
			}
		}
		return false
	})
	return result
}

// AddVotesForOrdering accumulates nVotes into the bucket for ordering. The
// ordering must have length between 1 and nChoices, with no choice
// repeated.
func (m *BallotManager) AddVotesForOrdering(ordering []int, nVotes circuit.Wire) error {
	key := mapBallotToStr(ordering)
	cur, ok := m.mapping[key]
	if !ok {
		return circuit.Invalidf("ordering %v is not a valid ballot for %d choices", ordering, m.nChoices)
	}
	m.mapping[key] = m.b.Add(cur, nVotes)
	return nil
}

// GetVotesPerChoice returns, for every choice, the total number of votes
// currently backing it as a first preference — the sum over every ballot
// ordering that currently ranks that choice first.
func (m *BallotManager) GetVotesPerChoice() []circuit.Wire {
	votes := make([]circuit.Wire, m.nChoices)
	for i := range votes {
		votes[i] = m.b.Zero()
	}
	for _, key := range m.order {
		ordering := mapStrToBallot(key)
		if len(ordering) == 0 {
			continue
		}
		firstChoice := ordering[0]
		votes[firstChoice] = m.b.Add(votes[firstChoice], m.mapping[key])
	}
	return votes
}

// UpdateVotesOnElimination redistributes votes away from eliminated
// choices: indsElim holds, per choice, an indicator that is 1 when that
// choice was eliminated this round. For every ordering that does not yet
// rank an eliminated choice, the votes of the ordering obtained by
// prepending that choice are folded in (weighted by the indicator),
// simulating that choice's ballots falling through to their next
// preference.
func (m *BallotManager) UpdateVotesOnElimination(indsElim []circuit.Wire) {
	for _, key := range m.order {
		ballot := mapStrToBallot(key)
		for posChoice := 0; posChoice < m.nChoices; posChoice++ {
			if slices.Contains(ballot, posChoice) {
				continue
			}
			previous := append([]int{posChoice}, ballot...)
			previousKey := mapBallotToStr(previous)
			previousVotes, ok := m.mapping[previousKey]
			if !ok {
				continue
			}
			m.mapping[key] = m.b.Add(m.mapping[key], m.b.Mul(indsElim[posChoice], previousVotes))
		}
	}
}

// ballotSnapshot is the CBOR wire format for BallotManager.MarshalCBOR: the
// mapping's witnessed vote counts, keyed the same way as mapping itself.
type ballotSnapshot struct {
	NChoices int               `cbor:"n_choices"`
	Votes    map[string]string `cbor:"votes"`
}

// MarshalCBOR snapshots the manager's witnessed vote counts (not the
// circuit wiring, which is tied to a single Builder) so they can be
// persisted or shipped between processes.
func (m *BallotManager) MarshalCBOR() ([]byte, error) {
	snap := ballotSnapshot{
		NChoices: m.nChoices,
		Votes:    make(map[string]string, len(m.mapping)),
	}
	for key, w := range m.mapping {
		snap.Votes[key] = w.Int().String()
	}
	return cbor.Marshal(snap)
}

// UnmarshalVotesCBOR restores vote counts previously produced by
// MarshalCBOR as witness (non-constant) wires on m's builder. m must already be
// initialized (via NewBallotManager) for the same n_choices as the
// snapshot.
func (m *BallotManager) UnmarshalVotesCBOR(data []byte) error {
	var snap ballotSnapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return err
	}
	if snap.NChoices != m.nChoices {
		return circuit.Invalidf("ballot snapshot is for %d choices, manager has %d", snap.NChoices, m.nChoices)
	}
	for key, decimal := range snap.Votes {
		if _, ok := m.mapping[key]; !ok {
			continue
		}
		v, ok := new(big.Int).SetString(decimal, 10)
		if !ok {
			return circuit.Invalidf("ballot snapshot entry %q is not a decimal integer", decimal)
		}
		m.mapping[key] = m.b.Secret(v)
	}
	return nil
}

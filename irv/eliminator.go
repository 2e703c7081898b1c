package irv

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/blake2b"

	"github.com/julianliedtke/kryvos-go/circuit"
	"github.com/julianliedtke/kryvos-go/gates"
)

// ChoiceEliminator decides, each IRV round, which choice(s) among those
// still in the running are eliminated next.
type ChoiceEliminator interface {
	// EliminateChoice returns, for every choice, an indicator that is 1
	// when that choice is eliminated this round. indElim holds the
	// cumulative eliminated-so-far indicators, and votesPerChoice the
	// current vote count backing each choice.
	EliminateChoice(round int, indElim, votesPerChoice []circuit.Wire) ([]circuit.Wire, error)
}

// computeMin returns, for every choice, the vote count that should be
// compared against the others to find this round's loser: already
// eliminated choices are pushed to -1, which wraps to the field's largest
// representable value, so they never tie for the new minimum again.
func computeMin(b *circuit.Builder, bits int, indElim, votesPerChoice []circuit.Wire) ([]circuit.Wire, error) {
	votes := make([]circuit.Wire, len(votesPerChoice))
	for i, nVotes := range votesPerChoice {
		elim := indElim[i]
		votes[i] = b.Sub(b.Mul(nVotes, b.Sub(1, elim)), elim)
	}
	return gates.Minimum(b, votes, bits)
}

// EliminateFirstPossibilityEliminator eliminates the first (lowest-index)
// choice among those tied for fewest votes.
type EliminateFirstPossibilityEliminator struct {
	b    *circuit.Builder
	bits int
}

// NewEliminateFirstPossibilityEliminator builds an
// EliminateFirstPossibilityEliminator; bits bounds the vote-count
// comparisons it performs.
func NewEliminateFirstPossibilityEliminator(b *circuit.Builder, bits int) *EliminateFirstPossibilityEliminator {
	return &EliminateFirstPossibilityEliminator{b: b, bits: bits}
}

// EliminateChoice implements ChoiceEliminator.
func (e *EliminateFirstPossibilityEliminator) EliminateChoice(round int, indElim, votesPerChoice []circuit.Wire) ([]circuit.Wire, error) {
	indMin, err := computeMin(e.b, e.bits, indElim, votesPerChoice)
	if err != nil {
		return nil, err
	}
	return gates.FindFirstIndicator(e.b, indMin), nil
}

// NSWEliminator breaks ties among the lowest-voted choices with a chain of
// deterministic randomness: earlier rounds' real vote counts (most recent
// first) are tried as tiebreakers before falling back to this round's
// pre-supplied randomness, so a tie is resolved by the most
// election-specific source available.
type NSWEliminator struct {
	b                  *circuit.Builder
	bits               int
	randomnessPerRound [][]circuit.Wire
	votesPerRound      [][]circuit.Wire
}

// NewNSWEliminator builds an NSWEliminator. randomnessPerRound must supply
// one slice of n_choices field elements per round the eliminator will be
// asked to adjudicate, used as the final tiebreaker for that round.
func NewNSWEliminator(b *circuit.Builder, bits int, randomnessPerRound [][]circuit.Wire) *NSWEliminator {
	return &NSWEliminator{b: b, bits: bits, randomnessPerRound: randomnessPerRound}
}

// EliminateChoice implements ChoiceEliminator.
func (e *NSWEliminator) EliminateChoice(round int, indElim, votesPerChoice []circuit.Wire) ([]circuit.Wire, error) {
	indMin, err := computeMin(e.b, e.bits, indElim, votesPerChoice)
	if err != nil {
		return nil, err
	}
	res, err := e.breakTies(round, indMin, votesPerChoice)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (e *NSWEliminator) breakTies(round int, indMin, votesPerChoice []circuit.Wire) ([]circuit.Wire, error) {
	done := e.b.Secret(0)
	res := make([]circuit.Wire, len(indMin))
	for i := range res {
		res[i] = e.b.Secret(0)
	}

	chain := make([][]circuit.Wire, 0, len(e.votesPerRound)+1)
	for i := len(e.votesPerRound) - 1; i >= 0; i-- {
		chain = append(chain, e.votesPerRound[i])
	}
	chain = append(chain, e.randomnessPerRound[round])

	for _, votes := range chain {
		minInd, nMins, err := gates.FindAndCountMinOfSetInds(e.b, votes, indMin, e.bits)
		if err != nil {
			return nil, err
		}
		indOneMin := gates.EqZero(e.b, e.b.Sub(nMins, 1))
		indSetRes := gates.AndGate(e.b, []circuit.Wire{indOneMin, e.b.Sub(1, done)})
		done = e.b.Add(done, indSetRes)
		for i := range res {
			res[i] = gates.IfThenElse(e.b, indSetRes, minInd[i], res[i])
		}
	}

	e.votesPerRound = append(e.votesPerRound, votesPerChoice)
	return res, nil
}

// DeriveRoundRandomness expands seed into n_choices pairwise-independent
// field elements for use as one round's NSWEliminator tiebreaker,
// deterministically and reproducibly (so both parties in a circuit
// evaluation agree on the same values from the same seed).
func DeriveRoundRandomness(b *circuit.Builder, seed []byte, round, nChoices int) ([]circuit.Wire, error) {
	modulus := b.Field().Modulus()
	out := make([]circuit.Wire, nChoices)
	for i := 0; i < nChoices; i++ {
		h, err := blake2b.New256(nil)
		if err != nil {
			return nil, err
		}
		h.Write(seed)
		var counter [16]byte
		binary.BigEndian.PutUint64(counter[:8], uint64(round))
		binary.BigEndian.PutUint64(counter[8:], uint64(i))
		h.Write(counter[:])
		digest := h.Sum(nil)
		v := new(big.Int).Mod(new(big.Int).SetBytes(digest), modulus)
		out[i] = b.Const(v)
	}
	return out, nil
}

// NewRoundSeed draws a fresh random seed suitable for DeriveRoundRandomness.
func NewRoundSeed() ([]byte, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return seed, nil
}

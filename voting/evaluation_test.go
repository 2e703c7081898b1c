package voting_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianliedtke/kryvos-go/circuit"
	"github.com/julianliedtke/kryvos-go/voting"
)

func assertWiresEqual(t *testing.T, wires []circuit.Wire, expected []int64) {
	t.Helper()
	require.Len(t, wires, len(expected))
	for i, exp := range expected {
		assert.Equal(t, big.NewInt(exp).String(), wires[i].String())
	}
}

func TestComputeMostVotes(t *testing.T) {
	b := newBallotBuilder()
	tally := constWires(b, 0, 1, 2, 1, 0, 2)
	res, err := voting.ComputeMostVotes(b, tally, 2)
	require.NoError(t, err)
	assertWiresEqual(t, res, []int64{0, 0, 1, 0, 0, 1})
}

func TestComputeThreshold(t *testing.T) {
	b := newBallotBuilder()
	tally := constWires(b, 0, 1, 2, 1, 0, 2)
	res, err := voting.ComputeThreshold(b, tally, b.Const(1), 2)
	require.NoError(t, err)
	assertWiresEqual(t, res, []int64{0, 1, 1, 1, 0, 1})
}

func TestComputeBestN(t *testing.T) {
	cases := []struct {
		bestN    int64
		expected []int64
	}{
		{1, []int64{0, 0, 1, 0, 0, 1}},
		{2, []int64{0, 0, 1, 0, 0, 1}},
		{3, []int64{0, 1, 1, 1, 0, 1}},
		{4, []int64{0, 1, 1, 1, 0, 1}},
		{5, []int64{1, 1, 1, 1, 1, 1}},
		{6, []int64{1, 1, 1, 1, 1, 1}},
	}
	for _, c := range cases {
		b := newBallotBuilder()
		tally := constWires(b, 0, 1, 2, 1, 0, 2)
		res, err := voting.ComputeBestN(b, tally, b.Const(c.bestN), 2)
		require.NoError(t, err)
		assertWiresEqual(t, res, c.expected)
	}
}

func TestSmithSetTieAmongThree(t *testing.T) {
	b := newTournamentBuilder()
	tally := [][]circuit.Wire{
		constWires(b, 5, 2, 0, 3),
		constWires(b, 1, 5, 2, 1),
		constWires(b, 3, 2, 5, 3),
		constWires(b, 0, 0, 0, 5),
	}
	res, err := voting.SmithSet(b, tally, 3)
	require.NoError(t, err)
	assertWiresEqual(t, res, []int64{1, 1, 1, 0})
}

func TestComputeMajorityJudgementThreeChoices(t *testing.T) {
	b := newTournamentBuilder()
	tally := [][]circuit.Wire{
		constWires(b, 1, 2, 2, 1),
		constWires(b, 2, 1, 3, 0),
		constWires(b, 0, 6, 0, 0),
	}
	res, err := voting.ComputeMajorityJudgement(b, tally, 6, 3)
	require.NoError(t, err)
	assertWiresEqual(t, res, []int64{0, 0, 1})
}

func TestComputeMajorityJudgementTwoChoices(t *testing.T) {
	b := newTournamentBuilder()
	tally := [][]circuit.Wire{
		constWires(b, 1, 2, 2, 1),
		constWires(b, 2, 1, 3, 0),
	}
	res, err := voting.ComputeMajorityJudgement(b, tally, 6, 3)
	require.NoError(t, err)
	assertWiresEqual(t, res, []int64{0, 1})
}

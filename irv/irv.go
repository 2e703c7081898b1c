package irv

import "github.com/julianliedtke/kryvos-go/circuit"

// IRV drives an Instant-Runoff Voting election to completion: each round
// it asks its ChoiceEliminator which choice(s) lose, accumulates the
// eliminated indicators, and folds eliminated ballots' votes through to
// their next surviving preference.
type IRV struct {
	b                *circuit.Builder
	nChoices         int
	choiceEliminator ChoiceEliminator

	round         int
	indEliminated []circuit.Wire
	ballotManager *BallotManager
}

// NewIRV builds an IRV election among nChoices choices, settling ties per
// round with choiceEliminator.
func NewIRV(b *circuit.Builder, nChoices int, choiceEliminator ChoiceEliminator) *IRV {
	return &IRV{b: b, nChoices: nChoices, choiceEliminator: choiceEliminator}
}

// GetEmptyBallots returns a fresh BallotManager sized for this election.
func (v *IRV) GetEmptyBallots() *BallotManager {
	return NewBallotManager(v.b, v.nChoices)
}

// EvaluateElection runs the runoff to completion over ballotManager's
// accumulated votes. nRounds defaults to n_choices-1 (every choice but one
// eliminated) when negative. It returns, for every choice, an indicator
// that is 1 once that choice has been eliminated.
func (v *IRV) EvaluateElection(ballotManager *BallotManager, nRounds int) ([]circuit.Wire, error) {
	v.round = 0
	v.ballotManager = ballotManager
	v.indEliminated = make([]circuit.Wire, v.nChoices)
	for i := range v.indEliminated {
		v.indEliminated[i] = v.b.Secret(0)
	}

	if nRounds < 0 {
		nRounds = v.nChoices - 1
	}

	for i := 0; i < nRounds; i++ {
		if err := v.evaluateRound(); err != nil {
			return nil, err
		}
		v.round++
	}
	return v.indEliminated, nil
}

func (v *IRV) evaluateRound() error {
	votesPerChoice := v.ballotManager.GetVotesPerChoice()
	indsElim, err := v.choiceEliminator.EliminateChoice(v.round, v.indEliminated, votesPerChoice)
	if err != nil {
		return err
	}
	for i := range v.indEliminated {
		v.indEliminated[i] = v.b.Add(v.indEliminated[i], indsElim[i])
	}
	v.ballotManager.UpdateVotesOnElimination(indsElim)
	return nil
}

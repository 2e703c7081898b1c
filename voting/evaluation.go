package voting

import (
	"github.com/julianliedtke/kryvos-go/circuit"
	"github.com/julianliedtke/kryvos-go/gates"
)

// ComputeMostVotes returns, for every choice, an indicator that is 1
// when that choice received the most votes in tally.
func ComputeMostVotes(b *circuit.Builder, tally []circuit.Wire, bits int) ([]circuit.Wire, error) {
	return gates.Maximum(b, tally, bits)
}

// ComputeThreshold returns, for every choice, an indicator that is 1
// when that choice received at least threshold votes.
func ComputeThreshold(b *circuit.Builder, tally []circuit.Wire, threshold circuit.Operand, bits int) ([]circuit.Wire, error) {
	out := make([]circuit.Wire, len(tally))
	for i, votes := range tally {
		ind, err := gates.GT(b, votes, threshold, bits)
		if err != nil {
			return nil, err
		}
		out[i] = ind
	}
	return out, nil
}

// ComputeBestN returns, for every choice, an indicator that is 1 when
// that choice is among the nBest choices with the most votes, by
// witnessing the highest vote-count threshold that at least nBest choices
// reach and binding it with two AssertGT calls. Choices tied at that
// threshold are all admitted, so more than nBest indicators can be 1.
func ComputeBestN(b *circuit.Builder, tally []circuit.Wire, nBest circuit.Operand, bits int) ([]circuit.Wire, error) {
	nBestInt := b.ToWire(nBest).Int().Int64()

	maxThreshold := int64(0)
	for _, votes := range tally {
		votesInt := votes.Int().Int64()
		nChoices := int64(0)
		for _, other := range tally {
			if other.Int().Int64() >= votesInt {
				nChoices++
			}
		}
		if nChoices >= nBestInt && votesInt > maxThreshold {
			maxThreshold = votesInt
		}
	}

	threshold := b.Secret(maxThreshold)
	thresholdPlusOne := b.Secret(maxThreshold + 1)

	indBestNChoices, err := ComputeThreshold(b, tally, threshold, bits)
	if err != nil {
		return nil, err
	}
	indBestNChoicesPlusOne, err := ComputeThreshold(b, tally, thresholdPlusOne, bits)
	if err != nil {
		return nil, err
	}

	if err := gates.AssertGT(b, sumWires(b, indBestNChoices), nBest, bits); err != nil {
		return nil, err
	}
	if err := gates.AssertGT(b, nBest, b.Add(sumWires(b, indBestNChoicesPlusOne), 1), bits); err != nil {
		return nil, err
	}

	return indBestNChoices, nil
}

// SmithSet computes, for every choice, an indicator that is 1 when that
// choice is in the Smith set of a pairwise-duel tally: the smallest
// non-empty set of choices that pairwise-beat every choice outside it.
func SmithSet(b *circuit.Builder, tally [][]circuit.Wire, bits int) ([]circuit.Wire, error) {
	n := len(tally)
	cacheComparisons := make([][]circuit.Wire, n)
	for i := range cacheComparisons {
		cacheComparisons[i] = make([]circuit.Wire, n)
	}

	wonDuels := make([]circuit.Wire, n)
	for choice := 0; choice < n; choice++ {
		nWonDuels := b.Secret(0)
		for other := 0; other < n; other++ {
			if other == choice {
				continue
			}
			indWon, err := gates.GT(b, tally[choice][other], tally[other][choice], bits)
			if err != nil {
				return nil, err
			}
			cacheComparisons[choice][other] = indWon
			nWonDuels = gates.IfThenElse(b, indWon, b.Add(nWonDuels, 1), nWonDuels)
		}
		wonDuels[choice] = nWonDuels
	}

	indSmithSet, err := ComputeMostVotes(b, wonDuels, n)
	if err != nil {
		return nil, err
	}

	for round := 0; round < n-1; round++ {
		for choice := 0; choice < n; choice++ {
			for other := 0; other < n; other++ {
				if other == choice {
					continue
				}
				indWon := cacheComparisons[choice][other]
				newIndSmithChoice := gates.AndGate(b, []circuit.Wire{indSmithSet[other], indWon})
				indSmithSet[choice] = gates.IfThenElse(b, newIndSmithChoice, b.Secret(1), indSmithSet[choice])
			}
		}
	}

	return indSmithSet, nil
}

// ComputeMajorityJudgement computes the winner(s) of a Majority
// Judgement election from the per-choice aggregated grade tallies,
// resolving ties by repeatedly stripping one median grade's worth of
// votes from the leading/trailing side until a single winner remains (or
// every round's candidates tie exactly).
func ComputeMajorityJudgement(b *circuit.Builder, tally [][]circuit.Wire, nVotes, bits int) ([]circuit.Wire, error) {
	nChoices := len(tally)
	nVotesHalved := b.Secret(int64(nVotes / 2))

	medianGrades := make([]circuit.Wire, nChoices)
	for i, aggGrades := range tally {
		m, err := gates.GetMedian(b, aggGrades, bits)
		if err != nil {
			return nil, err
		}
		medianGrades[i] = m
	}

	bestMedian, err := gates.GetMinimumValue(b, medianGrades, bits)
	if err != nil {
		return nil, err
	}

	indWinner := make([]circuit.Wire, nChoices)
	for i, medGrade := range medianGrades {
		indWinner[i] = gates.Eq(b, medGrade, bestMedian)
	}

	iPlus := b.Secret(1)
	iMinus := b.Secret(1)

	nGrades := len(tally[0])
	indBetterThanMedianGrade, err := gates.GetListWithUpToIndexSet(b, b.Sub(bestMedian, 1), nGrades, bits)
	if err != nil {
		return nil, err
	}
	indWorstThanMedianGradeRaw, err := gates.GetListWithUpToIndexSet(b, bestMedian, nGrades, bits)
	if err != nil {
		return nil, err
	}
	indWorstThanMedianGrade := make([]circuit.Wire, len(indWorstThanMedianGradeRaw))
	for i, w := range indWorstThanMedianGradeRaw {
		indWorstThanMedianGrade[i] = b.Sub(1, w)
	}

	ps := make([]circuit.Wire, nChoices)
	qs := make([]circuit.Wire, nChoices)
	msMinus := make([]circuit.Wire, nChoices)
	msPlus := make([]circuit.Wire, nChoices)
	for idx, aggGrades := range tally {
		p := b.Zero()
		q := b.Zero()
		for i, v := range aggGrades {
			p = b.Add(p, b.Mul(indBetterThanMedianGrade[i], v))
			q = b.Add(q, b.Mul(indWorstThanMedianGrade[i], v))
		}
		ps[idx] = p
		qs[idx] = q
		msMinus[idx] = b.Sub(nVotesHalved, p)
		msPlus[idx] = b.Sub(nVotesHalved, q)
	}

	for round := 0; round < nChoices; round++ {
		sis := make([]circuit.Wire, nChoices)
		for i := 0; i < nChoices; i++ {
			comp, err := gates.LT(b, msMinus[i], msPlus[i], bits)
			if err != nil {
				return nil, err
			}
			inner := gates.IfThenElse(b, comp, ps[i], b.Neg(qs[i]))
			sis[i] = b.Mul(indWinner[i], b.Add(inner, nVotesHalved))
		}

		sMax, err := gates.GetMaximumValue(b, sis, bits)
		if err != nil {
			return nil, err
		}

		for i, ind := range indWinner {
			indWinner[i] = gates.IfThenElse(b, ind, gates.Eq(b, sis[i], sMax), ind)
		}

		indSMaxGTZero, err := gates.GT(b, sMax, nVotesHalved, bits)
		if err != nil {
			return nil, err
		}

		msPlusSGTZero := make([]circuit.Wire, nChoices)
		msMinusSGTZero := make([]circuit.Wire, nChoices)
		psSGTZero := make([]circuit.Wire, nChoices)
		iMinusSGTZero := b.Add(iMinus, 1)

		msMinusSLZero := make([]circuit.Wire, nChoices)
		msPlusSLZero := make([]circuit.Wire, nChoices)
		qsSLZero := make([]circuit.Wire, nChoices)
		iPlusSGTZero := b.Add(iPlus, 1)

		for i := 0; i < nChoices; i++ {
			msPlusSGTZero[i] = b.Sub(msPlus[i], msMinus[i])
			msMinusSGTZero[i] = gates.GetIndexAt(b, tally[i], b.Sub(bestMedian, iMinus))
			psSGTZero[i] = b.Sub(ps[i], msMinusSGTZero[i])

			msMinusSLZero[i] = b.Sub(msMinus[i], msPlus[i])
			msPlusSLZero[i] = gates.GetIndexAt(b, tally[i], b.Add(bestMedian, iPlus))
			qsSLZero[i] = b.Sub(qs[i], msPlusSLZero[i])
		}

		for i := 0; i < nChoices; i++ {
			msPlus[i] = gates.IfThenElse(b, indSMaxGTZero, msPlusSGTZero[i], msPlusSLZero[i])
			msMinus[i] = gates.IfThenElse(b, indSMaxGTZero, msMinusSGTZero[i], msMinusSLZero[i])
			ps[i] = gates.IfThenElse(b, indSMaxGTZero, psSGTZero[i], ps[i])
			qs[i] = gates.IfThenElse(b, indSMaxGTZero, qs[i], qsSLZero[i])
		}
		iMinus = gates.IfThenElse(b, indSMaxGTZero, iMinusSGTZero, iMinus)
		iPlus = gates.IfThenElse(b, indSMaxGTZero, iPlus, iPlusSGTZero)
	}

	return indWinner, nil
}

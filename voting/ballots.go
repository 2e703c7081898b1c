// Package voting implements ballot-shape assertions and election
// evaluation rules (Single/Multiple Choice, Borda, Majority Judgement,
// Condorcet) as arithmetic-circuit gates built on top of package gates.
package voting

import (
	"github.com/julianliedtke/kryvos-go/circuit"
	"github.com/julianliedtke/kryvos-go/gates"
)

func sumWires(b *circuit.Builder, wires []circuit.Wire) circuit.Wire {
	sum := b.Zero()
	for _, w := range wires {
		sum = b.Add(sum, w)
	}
	return sum
}

// AssertSingleChoice asserts that every entry of ballot is binary and
// that exactly one entry is 1.
func AssertSingleChoice(b *circuit.Builder, ballot []circuit.Wire) error {
	for _, w := range ballot {
		if err := gates.AssertBit(b, w); err != nil {
			return err
		}
	}
	return gates.AssertEqual(b, operandsOf(ballot), []circuit.Operand{1})
}

// VerifySingleChoice is the non-asserting counterpart of
// AssertSingleChoice: it returns an indicator that is 1 when ballot is a
// valid single-choice ballot.
func VerifySingleChoice(b *circuit.Builder, ballot []circuit.Wire) circuit.Wire {
	wiresValid := make([]circuit.Wire, 0, len(ballot)+1)
	for _, w := range ballot {
		wiresValid = append(wiresValid, gates.VerifyBit(b, w))
	}
	wiresValid = append(wiresValid, gates.Eq(b, sumWires(b, ballot), 1))
	return gates.AndGate(b, wiresValid)
}

// AssertMultipleChoice asserts that every entry of ballot is binary, and
// — when maxChoices is non-nil — that the number of selected entries is
// at most maxChoices (bits bounds the comparison, required whenever
// maxChoices is set).
func AssertMultipleChoice(b *circuit.Builder, ballot []circuit.Wire, maxChoices circuit.Operand, bits int) error {
	for _, w := range ballot {
		if err := gates.AssertBit(b, w); err != nil {
			return err
		}
	}
	if maxChoices != nil {
		nChoices := sumWires(b, ballot)
		if err := gates.AssertGT(b, maxChoices, nChoices, bits); err != nil {
			return err
		}
	}
	return nil
}

// VerifyMultipleChoice is the non-asserting counterpart of
// AssertMultipleChoice.
func VerifyMultipleChoice(b *circuit.Builder, ballot []circuit.Wire, maxChoices circuit.Operand, bits int) (circuit.Wire, error) {
	wiresValid := make([]circuit.Wire, 0, len(ballot)+1)
	for _, w := range ballot {
		wiresValid = append(wiresValid, gates.VerifyBit(b, w))
	}
	if maxChoices != nil {
		nChoices := sumWires(b, ballot)
		indGT, err := gates.GT(b, maxChoices, nChoices, bits)
		if err != nil {
			return circuit.Wire{}, err
		}
		wiresValid = append(wiresValid, indGT)
	}
	return gates.AndGate(b, wiresValid), nil
}

// AssertBordaBallot asserts a Borda ballot against orderedPoints: if the
// same number of points is assigned to more than one choice (n many),
// the next n-1 points in the point list cannot be assigned.
func AssertBordaBallot(b *circuit.Builder, ballot, orderedPoints []circuit.Wire) error {
	fuel := b.Zero()
	for _, point := range orderedPoints {
		nOcc := gates.GetNOccurences(b, ballot, point)
		indFuelZero := gates.EqZero(b, fuel)
		indNOccZero := gates.EqZero(b, nOcc)
		xorVal := gates.XorGateTwoInputs(b, indFuelZero, indNOccZero)
		if err := gates.AssertEqual(b, []circuit.Operand{xorVal}, []circuit.Operand{1}); err != nil {
			return err
		}
		fuel = gates.IfThenElse(b, indFuelZero, fuel, b.Sub(fuel, 1))
		fuel = gates.IfThenElse(b, indNOccZero, fuel, b.Add(b.Sub(fuel, 1), nOcc))
	}
	return nil
}

// VerifyBordaBallot is the non-asserting counterpart of
// AssertBordaBallot.
func VerifyBordaBallot(b *circuit.Builder, ballot, orderedPoints []circuit.Wire) circuit.Wire {
	wiresValid := make([]circuit.Wire, 0, len(orderedPoints))
	fuel := b.Zero()
	for _, point := range orderedPoints {
		nOcc := gates.GetNOccurences(b, ballot, point)
		indFuelZero := gates.EqZero(b, fuel)
		indNOccZero := gates.EqZero(b, nOcc)
		xorVal := gates.XorGateTwoInputs(b, indFuelZero, indNOccZero)
		wiresValid = append(wiresValid, gates.Eq(b, xorVal, 1))
		fuel = gates.IfThenElse(b, indFuelZero, fuel, b.Sub(fuel, 1))
		fuel = gates.IfThenElse(b, indNOccZero, fuel, b.Add(b.Sub(fuel, 1), nOcc))
	}
	return gates.AndGate(b, wiresValid)
}

// AssertMajorityJudgementBallot asserts that every entry of ballot is one
// of the permitted grades.
func AssertMajorityJudgementBallot(b *circuit.Builder, ballot, grades []circuit.Wire) error {
	for _, choice := range ballot {
		indPossGrade := gates.IsValueInList(b, choice, grades)
		if err := gates.AssertEqual(b, []circuit.Operand{indPossGrade}, []circuit.Operand{1}); err != nil {
			return err
		}
	}
	return nil
}

// VerifyMajorityJudgementBallot is the non-asserting counterpart of
// AssertMajorityJudgementBallot.
func VerifyMajorityJudgementBallot(b *circuit.Builder, ballot, grades []circuit.Wire) circuit.Wire {
	wiresValid := make([]circuit.Wire, len(ballot))
	for i, choice := range ballot {
		wiresValid[i] = gates.IsValueInList(b, choice, grades)
	}
	return gates.AndGate(b, wiresValid)
}

// AssertCondorcetBallot asserts that ballot is an antisymmetric,
// transitive pairwise-preference matrix: every off-diagonal entry is
// binary, ballot[i][j] + ballot[j][i] == 1, and ballot[i][j] ==
// ballot[j][k] == 1 implies ballot[i][k] == 1.
func AssertCondorcetBallot(b *circuit.Builder, ballot [][]circuit.Wire) error {
	n := len(ballot)
	for i, row := range ballot {
		for j, entry := range row {
			if i == j {
				continue
			}
			if err := gates.AssertBit(b, entry); err != nil {
				return err
			}
			if i < j {
				if err := gates.AssertEqual(b, []circuit.Operand{entry, ballot[j][i]}, []circuit.Operand{1}); err != nil {
					return err
				}
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				if i == j || i == k || j == k {
					continue
				}
				valueIJ := ballot[i][j]
				valueIK := ballot[i][k]
				valueJK := ballot[j][k]
				indFalse := gates.AndGate(b, []circuit.Wire{valueIJ, valueJK, b.Sub(1, valueIK)})
				if err := gates.AssertEqual(b, []circuit.Operand{indFalse}, []circuit.Operand{0}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// VerifyCondorcetBallot is the non-asserting counterpart of
// AssertCondorcetBallot.
func VerifyCondorcetBallot(b *circuit.Builder, ballot [][]circuit.Wire) circuit.Wire {
	n := len(ballot)
	var wiresValid []circuit.Wire

	for i, row := range ballot {
		for j, entry := range row {
			if i == j {
				continue
			}
			wiresValid = append(wiresValid, gates.VerifyBit(b, entry))
			if i < j {
				wiresValid = append(wiresValid, gates.Eq(b, b.Add(entry, ballot[j][i]), 1))
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				if i == j || i == k || j == k {
					continue
				}
				valueIJ := ballot[i][j]
				valueIK := ballot[i][k]
				valueJK := ballot[j][k]
				indFalse := gates.AndGate(b, []circuit.Wire{valueIJ, valueJK, b.Sub(1, valueIK)})
				indTransitivity := gates.EqZero(b, indFalse)
				wiresValid = append(wiresValid, indTransitivity)
			}
		}
	}
	return gates.AndGate(b, wiresValid)
}

// ComputeBordaTournamentStyleBallot computes the tournament-style Borda
// points of each choice given its ranking: each choice scores twice the
// number of choices it strictly outranks, plus 1 if it ties with at
// least one other choice. Per spec.md's GLOSSARY, zero is the lowest
// rank (see DESIGN.md's Open Question resolutions for the discrepancy
// with this package's original docstring).
func ComputeBordaTournamentStyleBallot(b *circuit.Builder, ranking []circuit.Wire, bits int) ([]circuit.Wire, error) {
	points := make([]circuit.Wire, len(ranking))
	for i, rankingVal := range ranking {
		nTruelyGreater := b.Zero()
		nEq := b.Zero()
		for j, compVal := range ranking {
			if j == i {
				continue
			}
			gt, err := gates.GT(b, rankingVal, b.Add(compVal, 1), bits)
			if err != nil {
				return nil, err
			}
			nTruelyGreater = b.Add(nTruelyGreater, gt)
			nEq = b.Add(nEq, gates.Eq(b, rankingVal, compVal))
		}
		tieBonus, err := gates.GT(b, nEq, 1, bits)
		if err != nil {
			return nil, err
		}
		points[i] = b.Add(b.Mul(2, nTruelyGreater), tieBonus)
	}
	return points, nil
}

func operandsOf(wires []circuit.Wire) []circuit.Operand {
	ops := make([]circuit.Operand, len(wires))
	for i, w := range wires {
		ops[i] = w
	}
	return ops
}

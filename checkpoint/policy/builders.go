package policy

import (
	"sort"

	"nottingham-lite/checkpoint"
	"nottingham-lite/goods"
)

// Strategy names used across the policy package.
const (
	StrategyHonest         = "honest"
	StrategyLegalLie       = "legal_lie"
	StrategyMixed          = "mixed"
	StrategyContrabandLow  = "contraband_low"
	StrategyContrabandHigh = "contraband_high"
)

func legalByValue() []goods.Good {
	out := make([]goods.Good, len(goods.AllLegal))
	copy(out, goods.AllLegal)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

func contrabandByValue() []goods.Good {
	out := make([]goods.Good, len(goods.AllContraband))
	copy(out, goods.AllContraband)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

func pick(d checkpoint.Dice, from []goods.Good) goods.Good {
	return from[d.Intn(len(from))]
}

func repeat(g goods.Good, n int) []goods.Good {
	out := make([]goods.Good, n)
	for i := range out {
		out[i] = g
	}
	return out
}

// BuildDeclaration dispatches to the builder for the named strategy. An
// unknown name falls back to the honest builder.
func BuildDeclaration(d checkpoint.Dice, strategy string, hand *goods.HandAnalysis, riskTolerance int) checkpoint.DeclarationPlan {
	switch strategy {
	case StrategyLegalLie:
		return buildLegalLie(d, hand, riskTolerance)
	case StrategyMixed:
		return buildMixed(d, hand)
	case StrategyContrabandLow:
		return buildContrabandLow(d)
	case StrategyContrabandHigh:
		return buildContrabandHigh(d)
	}
	return buildHonest(d, hand)
}

// buildHonest declares and carries the same legal goods. With a hand it
// declares the most common legal good it actually holds.
func buildHonest(d checkpoint.Dice, hand *goods.HandAnalysis) checkpoint.DeclarationPlan {
	if hand != nil && len(hand.Legal) > 0 {
		if id, count, ok := hand.MostCommon(hand.Legal); ok {
			n := minInt(count, checkpoint.BagLimit)
			g := goods.MustByID(id)
			return checkpoint.DeclarationPlan{
				Declaration: checkpoint.Declaration{GoodID: id, Count: n},
				Actual:      repeat(g, n),
				Strategy:    StrategyHonest,
			}
		}
	}
	g := pick(d, goods.AllLegal)
	n := minInt(2+d.Intn(3), checkpoint.BagLimit)
	return checkpoint.DeclarationPlan{
		Declaration: checkpoint.Declaration{GoodID: g.ID, Count: n},
		Actual:      repeat(g, n),
		Strategy:    StrategyHonest,
	}
}

// buildLegalLie declares one legal good but carries a different legal mix.
// Risk tolerance decides whether the hidden goods run cheaper or pricier
// than the declaration.
func buildLegalLie(d checkpoint.Dice, hand *goods.HandAnalysis, riskTolerance int) checkpoint.DeclarationPlan {
	if hand != nil && len(hand.Legal) > 0 {
		if id, count, ok := hand.MostCommon(hand.Legal); ok {
			declareCount := minInt(minInt(2+d.Intn(3), count+1), checkpoint.BagLimit)

			carried := make([]goods.Good, len(hand.Legal))
			copy(carried, hand.Legal)
			switch {
			case riskTolerance <= 3:
				sort.SliceStable(carried, func(i, j int) bool { return carried[i].Value < carried[j].Value })
			case riskTolerance >= 7:
				sort.SliceStable(carried, func(i, j int) bool { return carried[i].Value > carried[j].Value })
			default:
				sort.SliceStable(carried, func(i, j int) bool { return carried[i].Value < carried[j].Value })
				carried = carried[len(carried)/3:]
			}
			actual := carried[:minInt(declareCount, len(carried))]

			return checkpoint.DeclarationPlan{
				Declaration: checkpoint.Declaration{GoodID: id, Count: declareCount},
				Actual:      actual,
				Lie:         true,
				Strategy:    StrategyLegalLie,
			}
		}
	}

	legal := legalByValue()
	declared := pick(d, legal[:len(legal)/2])
	n := minInt(2+d.Intn(3), checkpoint.BagLimit)
	hidden := pick(d, legal[len(legal)/2:])
	return checkpoint.DeclarationPlan{
		Declaration: checkpoint.Declaration{GoodID: declared.ID, Count: n},
		Actual:      repeat(hidden, n),
		Lie:         true,
		Strategy:    StrategyLegalLie,
	}
}

// buildMixed declares the most common legal good and carries mostly legal
// goods plus one low-value contraband.
func buildMixed(d checkpoint.Dice, hand *goods.HandAnalysis) checkpoint.DeclarationPlan {
	if hand != nil && len(hand.Legal) > 0 && len(hand.Contraband) > 0 {
		if id, count, ok := hand.MostCommon(hand.Legal); ok && count >= 2 {
			declareCount := minInt(minInt(3+d.Intn(2), count+1), checkpoint.BagLimit)

			cheap := hand.Contraband[0]
			for _, g := range hand.Contraband[1:] {
				if g.Value < cheap.Value {
					cheap = g
				}
			}

			carried := make([]goods.Good, len(hand.Legal))
			copy(carried, hand.Legal)
			sort.SliceStable(carried, func(i, j int) bool { return carried[i].Value > carried[j].Value })
			actual := append(carried[:minInt(declareCount-1, len(carried))], cheap)

			return checkpoint.DeclarationPlan{
				Declaration: checkpoint.Declaration{GoodID: id, Count: declareCount},
				Actual:      actual,
				Lie:         true,
				Strategy:    StrategyMixed,
			}
		}
	}

	legal := legalByValue()
	contraband := contrabandByValue()
	declared := pick(d, legal)
	n := minInt(3+d.Intn(2), checkpoint.BagLimit)
	filler := pick(d, legal)
	cheapContraband := pick(d, contraband[:maxInt(1, len(contraband)/2)])
	actual := append(repeat(filler, n-1), cheapContraband)
	return checkpoint.DeclarationPlan{
		Declaration: checkpoint.Declaration{GoodID: declared.ID, Count: n},
		Actual:      actual,
		Lie:         true,
		Strategy:    StrategyMixed,
	}
}

// buildContrabandLow declares legal goods while carrying a couple of
// mid-value contraband items.
func buildContrabandLow(d checkpoint.Dice) checkpoint.DeclarationPlan {
	legal := legalByValue()
	contraband := contrabandByValue()

	declared := pick(d, legal)
	n := minInt(2+d.Intn(2), checkpoint.BagLimit)
	carried := pick(d, contraband[len(contraband)/3:])
	return checkpoint.DeclarationPlan{
		Declaration: checkpoint.Declaration{GoodID: declared.ID, Count: n},
		Actual:      repeat(carried, n),
		Lie:         true,
		Strategy:    StrategyContrabandLow,
	}
}

// buildContrabandHigh is the all-in move: a cheap legal declaration hiding a
// stack of high-value contraband.
func buildContrabandHigh(d checkpoint.Dice) checkpoint.DeclarationPlan {
	legal := legalByValue()
	contraband := contrabandByValue()

	declared := pick(d, legal[:len(legal)/2])
	n := minInt(3+d.Intn(3), checkpoint.BagLimit)
	carried := pick(d, contraband[len(contraband)/2:])
	return checkpoint.DeclarationPlan{
		Declaration: checkpoint.Declaration{GoodID: declared.ID, Count: n},
		Actual:      repeat(carried, n),
		Lie:         true,
		Strategy:    StrategyContrabandHigh,
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

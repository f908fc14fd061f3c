package policy

import (
	"nottingham-lite/checkpoint"
	"nottingham-lite/goods"
)

// DefaultPolicy is the simple merchant brain: a quick read of the sheriff's
// catch rate, a chance at the legal-goods lie, straight contraband for the
// bold and dishonest, honest otherwise. No hand draw, no tier tables.
type DefaultPolicy struct{}

func (DefaultPolicy) BuildDeclaration(d checkpoint.Dice, ctx checkpoint.DeclarationContext) checkpoint.DeclarationPlan {
	m := ctx.Merchant
	catchRate := CatchRate(ctx.History)

	if shouldUseLegalGoodsLie(d, m, catchRate) {
		return chooseLegalGoodsLie(d)
	}

	if m.HonestyBias < 5 && m.RiskTolerance > 5 && catchRate < 0.6 {
		declared := pick(d, goods.AllLegal)
		n := minInt(1+d.Intn(3), checkpoint.BagLimit)
		actual := make([]goods.Good, n)
		for i := range actual {
			actual[i] = pick(d, goods.AllContraband)
		}
		return checkpoint.DeclarationPlan{
			Declaration: checkpoint.Declaration{GoodID: declared.ID, Count: n},
			Actual:      actual,
			Lie:         true,
			Strategy:    StrategyContrabandLow,
		}
	}

	declared := pick(d, goods.AllLegal)
	n := minInt(2+d.Intn(3), checkpoint.BagLimit)
	return checkpoint.DeclarationPlan{
		Declaration: checkpoint.Declaration{GoodID: declared.ID, Count: n},
		Actual:      repeat(declared, n),
		Strategy:    StrategyHonest,
	}
}

// shouldUseLegalGoodsLie gates the legal-lie play. It thrives in the middle
// of the catch-rate range: a lenient sheriff makes contraband the better
// bet, an aggressive one makes any lie too dear.
func shouldUseLegalGoodsLie(d checkpoint.Dice, m *checkpoint.Merchant, catchRate float64) bool {
	if m.HonestyBias > 7 {
		return d.Float64() < 0.1
	}
	if catchRate < 0.3 {
		return false
	}
	if catchRate > 0.7 {
		return d.Float64() < 0.2
	}
	if m.RiskTolerance < 4 {
		return d.Float64() < 0.7
	}
	if m.Greed > 7 {
		return d.Float64() < 0.6
	}
	return d.Float64() < 0.4
}

// chooseLegalGoodsLie declares a homogeneous mid-value legal bag while
// sneaking one or two pricier legal items inside. Never more than half the
// bag is substituted.
func chooseLegalGoodsLie(d checkpoint.Dice) checkpoint.DeclarationPlan {
	legal := legalByValue()

	midStart := len(legal) / 5
	midEnd := len(legal) * 4 / 5
	band := legal
	if midEnd > midStart {
		band = legal[midStart:midEnd]
	}
	declared := pick(d, band)

	total := minInt(3+d.Intn(2), checkpoint.BagLimit)

	var pricier []goods.Good
	for _, g := range legal {
		if g.Value > declared.Value {
			pricier = append(pricier, g)
		}
	}
	if len(pricier) == 0 {
		return checkpoint.DeclarationPlan{
			Declaration: checkpoint.Declaration{GoodID: declared.ID, Count: total},
			Actual:      repeat(declared, total),
			Strategy:    StrategyHonest,
		}
	}

	snuck := minInt(2, 1+d.Intn(maxInt(1, total/2)))
	top := pricier
	if len(top) > 2 {
		top = pricier[len(pricier)-2:]
	}
	hidden := pick(d, top)

	actual := append(repeat(declared, total-snuck), repeat(hidden, snuck)...)
	return checkpoint.DeclarationPlan{
		Declaration: checkpoint.Declaration{GoodID: declared.ID, Count: total},
		Actual:      actual,
		Lie:         true,
		Strategy:    StrategyLegalLie,
	}
}

package policy

import (
	"nottingham-lite/checkpoint"
	"nottingham-lite/goods"
)

var strategyNames = []string{
	StrategyHonest,
	StrategyLegalLie,
	StrategyMixed,
	StrategyContrabandLow,
	StrategyContrabandHigh,
}

// TieredPolicy is the standard AI merchant: it draws a hand, studies
// whatever slice of sheriff history its tier is allowed, scores its appetite
// for risk, and rolls a strategy from tier-specific weight tables.
type TieredPolicy struct{}

func (TieredPolicy) BuildDeclaration(d checkpoint.Dice, ctx checkpoint.DeclarationContext) checkpoint.DeclarationPlan {
	m := ctx.Merchant
	hand := drawMerchantHand(d, m)
	analysis := goods.AnalyzeHand(hand)

	strategy := selectStrategy(d, m, ctx)
	plan := BuildDeclaration(d, strategy, &analysis, m.RiskTolerance)
	plan.BribeOffer = CalculateScaledBribe(d, plan, m, ctx.Stats)
	return plan
}

// AdviseCounter routes negotiation acceptance through the tier-aware test.
func (TieredPolicy) AdviseCounter(d checkpoint.Dice, demand int, plan checkpoint.DeclarationPlan, m *checkpoint.Merchant) bool {
	return ShouldAcceptCounterOffer(d, demand, plan, m)
}

func drawMerchantHand(d checkpoint.Dice, m *checkpoint.Merchant) []goods.Good {
	hand := goods.DrawHand(d, goods.HandSize)

	if redraw, n, _ := checkpoint.ShouldRedrawForSet(hand, m.RiskTolerance, m.Greed); redraw && n > 0 {
		pref := goods.PreferHighValue
		switch {
		case m.HonestyBias >= 7 && m.RiskTolerance <= 4:
			pref = goods.PreferLegal
		case m.RiskTolerance >= 7 && m.HonestyBias <= 4:
			pref = goods.PreferContraband
		}
		hand = goods.Redraw(d, hand, n, pref)
	}
	return hand
}

func selectStrategy(d checkpoint.Dice, m *checkpoint.Merchant, ctx checkpoint.DeclarationContext) string {
	honesty := m.HonestyBias
	stats := ctx.Stats

	// Conscience check: the most honest merchants sometimes refuse to lie
	// before any odds are weighed.
	if honesty >= 8 {
		if d.Float64() < float64(honesty-7)*0.1 {
			return StrategyHonest
		}
	}

	// Against a sheriff who catches nearly everything, hard merchants
	// occasionally go honest on purpose to bait a wasted inspection.
	if m.Tier == checkpoint.TierHard && stats.CatchRate > 0.7 && d.Float64() < 0.25 {
		return StrategyHonest
	}

	score := riskScore(m, stats, ctx.History)
	weights := strategyWeights(score, m.Tier)
	strategy := strategyNames[weightedIndex(d, weights)]

	// Second conscience check: an honest merchant who rolled a smuggling
	// strategy may still back out.
	if honesty >= 7 && (strategy == StrategyContrabandLow || strategy == StrategyContrabandHigh) {
		if d.Float64() < float64(honesty-6)*0.05 {
			return StrategyHonest
		}
	}
	return strategy
}

// riskScore folds personality and observed sheriff behavior into a 0..10
// appetite for smuggling, with the hard tier layering pattern analysis on
// top.
func riskScore(m *checkpoint.Merchant, stats checkpoint.SheriffStats, history []checkpoint.InspectionEvent) float64 {
	honesty := float64(m.HonestyBias)
	risk := float64(m.RiskTolerance)
	greed := float64(m.Greed)

	var score float64
	if m.Tier == checkpoint.TierEasy {
		score = risk - (honesty-5)*0.5
	} else {
		score = risk + (greed-5)*0.3 - (honesty-5)*0.5
	}

	if stats.InspectionRate > 0.6 {
		if m.Tier == checkpoint.TierEasy {
			score -= 3
		} else {
			score -= 2.5
		}
	} else if stats.InspectionRate < 0.3 {
		if m.Tier == checkpoint.TierEasy {
			score += 2
		} else {
			score += 2.5
		}
	}

	if m.Tier != checkpoint.TierEasy {
		if stats.CatchRate > 0.7 {
			score -= 2
		} else if stats.CatchRate < 0.3 {
			score += 1.5
		}
	}

	if m.Tier == checkpoint.TierHard && len(history) >= 3 {
		recent := history
		if len(recent) > 5 {
			recent = recent[len(recent)-5:]
		}
		passes, bribesTaken := 0, 0
		for _, e := range recent {
			if !e.Opened {
				passes++
			}
			if e.BribeAccept {
				bribesTaken++
			}
		}
		if passes >= 4 {
			score += 4
		}
		if stats.CatchRate > 0.7 {
			score -= 3
		}
		if bribesTaken >= 2 {
			score += 2
		}
		danger := stats.InspectionRate*0.6 + stats.CatchRate*0.4
		score -= danger * 4
	}

	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// strategyWeights maps a risk score band to weights over
// [honest, legal_lie, mixed, contraband_low, contraband_high].
func strategyWeights(score float64, tier checkpoint.MerchantTier) []float64 {
	switch tier {
	case checkpoint.TierEasy:
		switch {
		case score <= 0:
			return []float64{0.95, 0.04, 0.01, 0, 0}
		case score <= 2:
			return []float64{0.75, 0.20, 0.04, 0.01, 0}
		case score <= 4:
			return []float64{0.50, 0.35, 0.12, 0.03, 0}
		case score <= 6:
			return []float64{0.35, 0.35, 0.20, 0.08, 0.02}
		case score <= 8:
			return []float64{0.20, 0.30, 0.30, 0.15, 0.05}
		}
		return []float64{0.05, 0.15, 0.25, 0.35, 0.20}

	case checkpoint.TierMedium:
		switch {
		case score <= 0:
			return []float64{0.90, 0.08, 0.02, 0, 0}
		case score <= 2:
			return []float64{0.65, 0.25, 0.08, 0.02, 0}
		case score <= 4:
			return []float64{0.40, 0.30, 0.22, 0.06, 0.02}
		case score <= 6:
			return []float64{0.25, 0.25, 0.30, 0.15, 0.05}
		case score <= 8:
			return []float64{0.12, 0.18, 0.30, 0.28, 0.12}
		}
		return []float64{0.05, 0.10, 0.25, 0.40, 0.20}
	}

	switch {
	case score <= 2:
		return []float64{0.40, 0.30, 0.20, 0.08, 0.02}
	case score <= 4:
		return []float64{0.25, 0.25, 0.30, 0.15, 0.05}
	case score <= 6:
		return []float64{0.15, 0.20, 0.30, 0.25, 0.10}
	case score <= 8:
		return []float64{0.08, 0.15, 0.27, 0.35, 0.15}
	}
	return []float64{0.05, 0.10, 0.25, 0.40, 0.20}
}

func weightedIndex(d checkpoint.Dice, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	roll := d.Float64() * total
	for i, w := range weights {
		roll -= w
		if roll < 0 {
			return i
		}
	}
	return len(weights) - 1
}

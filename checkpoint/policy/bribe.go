package policy

import (
	"nottingham-lite/checkpoint"
	"nottingham-lite/goods"
)

// CalculateScaledBribe sizes a bribe proportional to the DECLARED value, not
// the hidden cargo. A tiny declaration with a huge bribe reads as a
// confession; a bribe near the declared value reads as a sensible deal for
// the sheriff. Returns 0 when the merchant should not bribe at all.
func CalculateScaledBribe(d checkpoint.Dice, plan checkpoint.DeclarationPlan, m *checkpoint.Merchant, stats checkpoint.SheriffStats) int {
	declaredValue, err := plan.Declaration.DeclaredValue()
	if err != nil {
		return 0
	}
	actualValue := goods.TotalValue(plan.Actual)
	contrabandValue := goods.ContrabandValue(plan.Actual)

	if !shouldOfferBribe(d, plan.Lie, contrabandValue, stats, m.Tier) {
		return 0
	}

	var base float64
	switch {
	case plan.Lie && contrabandValue > 0:
		base = contrabandBribe(d, declaredValue, contrabandValue, m.Greed, m.RiskTolerance)
	case plan.Lie:
		base = legalLieBribe(d, declaredValue, actualValue, m.Greed)
	default:
		// Goodwill bribe on a perfectly honest bag: pure expectation
		// management, hard tier only.
		if m.Tier == checkpoint.TierHard && d.Float64() < 0.15 {
			base = advancedBluffBribe(d, declaredValue)
		} else {
			return 0
		}
	}

	if stats.InspectionRate > 0.7 {
		base *= 1.3
	} else if stats.InspectionRate < 0.3 {
		base *= 0.7
	}

	variance := 0.85 + 0.3*d.Float64()
	return maxInt(1, int(base*variance))
}

func shouldOfferBribe(d checkpoint.Dice, lying bool, contrabandValue int, stats checkpoint.SheriffStats, tier checkpoint.MerchantTier) bool {
	switch tier {
	case checkpoint.TierEasy:
		if contrabandValue > 0 && stats.InspectionRate > 0.6 {
			return d.Float64() < 0.3
		}
		return false

	case checkpoint.TierMedium:
		if contrabandValue > 0 {
			if stats.InspectionRate > 0.5 {
				return d.Float64() < 0.6
			}
			return d.Float64() < 0.3
		}
		if lying {
			return stats.InspectionRate > 0.7 && d.Float64() < 0.4
		}
		return false
	}

	// Hard tier
	if contrabandValue > 0 {
		chance := 0.7
		if stats.BribeAcceptRate > 0.5 {
			chance += 0.2
		}
		if stats.InspectionRate > 0.6 {
			chance += 0.1
		}
		if chance > 0.95 {
			chance = 0.95
		}
		return d.Float64() < chance
	}
	if lying {
		return stats.InspectionRate > 0.6 && d.Float64() < 0.5
	}
	return d.Float64() < 0.15
}

func contrabandBribe(d checkpoint.Dice, declaredValue, contrabandValue, greed, riskTolerance int) float64 {
	// 70-110% of the declared value, but never more than the merchant can
	// still profit from.
	base := float64(declaredValue) * (0.7 + 0.4*d.Float64())
	if maxRational := float64(contrabandValue) * 0.8; base > maxRational {
		base = maxRational
	}

	base *= 1.0 - float64(greed)/30.0
	base *= 1.0 - float64(riskTolerance)/40.0

	lo := float64(maxInt(1, contrabandValue/5))
	hi := float64(contrabandValue) * 0.8
	if base < lo {
		base = lo
	}
	if base > hi {
		base = hi
	}
	return base
}

func legalLieBribe(d checkpoint.Dice, declaredValue, actualValue, greed int) float64 {
	diff := actualValue - declaredValue
	if diff < 0 {
		diff = -diff
	}
	base := float64(diff) * (0.2 + 0.1*d.Float64())
	base *= 1.0 + float64(declaredValue)/150.0
	base *= 1.0 - float64(greed)/25.0
	if base < 2 {
		base = 2
	}
	return base
}

func advancedBluffBribe(d checkpoint.Dice, declaredValue int) float64 {
	base := float64(declaredValue) * (0.15 + 0.1*d.Float64())
	if base < 2 {
		base = 2
	}
	if base > 5 {
		base = 5
	}
	return base
}

// ShouldAcceptCounterOffer is the tier-aware counterpart to the merchant's
// base acceptance test, used when a policy drives the whole negotiation.
func ShouldAcceptCounterOffer(d checkpoint.Dice, sheriffDemand int, plan checkpoint.DeclarationPlan, m *checkpoint.Merchant) bool {
	actualValue := goods.TotalValue(plan.Actual)
	contrabandValue := goods.ContrabandValue(plan.Actual)

	// On an honest bag a hard merchant calls the sheriff's bluff rather
	// than fund an inspection that cannot hurt it.
	if !plan.Lie && m.Tier == checkpoint.TierHard && float64(sheriffDemand) > float64(actualValue)*0.5 {
		return false
	}

	var maxAcceptable float64
	if contrabandValue > 0 {
		maxAcceptable = float64(contrabandValue) * 0.8
	} else {
		maxAcceptable = float64(actualValue) * 0.6
	}
	if float64(sheriffDemand) > maxAcceptable {
		return false
	}

	greedThreshold := 0.5 + float64(m.Greed)/20.0
	riskThreshold := 0.7 - float64(m.RiskTolerance)/20.0
	ratio := 1.0
	if maxAcceptable > 0 {
		ratio = float64(sheriffDemand) / maxAcceptable
	}
	threshold := greedThreshold
	if riskThreshold < threshold {
		threshold = riskThreshold
	}
	if ratio < threshold {
		return true
	}

	switch m.Tier {
	case checkpoint.TierEasy:
		return d.Float64() < 0.6
	case checkpoint.TierMedium:
		return d.Float64() < 0.4
	}
	return d.Float64() < 0.2
}

package policy

import (
	"nottingham-lite/checkpoint"
	"nottingham-lite/goods"
)

// BrokerPolicy is the information broker: a merchant that treats the
// checkpoint as a market to be analyzed. It profiles the sheriff from the
// full history, prices the honest and smuggling lines against each other,
// and only runs contraband when the numbers say it pays.
type BrokerPolicy struct{}

func (BrokerPolicy) BuildDeclaration(d checkpoint.Dice, ctx checkpoint.DeclarationContext) checkpoint.DeclarationPlan {
	profile := AnalyzeSheriff(ctx.History)

	if brokerTellsTruth(d, profile, ctx.History) {
		return buildHonest(d, nil)
	}

	count, carried := brokerContrabandPick(d, profile)
	declared := pick(d, legalByValue()[:len(goods.AllLegal)/2])
	return checkpoint.DeclarationPlan{
		Declaration: checkpoint.Declaration{GoodID: declared.ID, Count: count},
		Actual:      repeat(carried, count),
		Lie:         true,
		Strategy:    StrategyContrabandLow,
	}
}

func brokerTellsTruth(d checkpoint.Dice, profile SheriffProfile, history []checkpoint.InspectionEvent) bool {
	// A sheriff who takes every bribe makes smuggling a treadmill of
	// payments; staying honest is usually the cheaper line.
	if DetectCorruptSheriff(history) {
		return d.Float64() < 0.7
	}

	if DetectAdaptiveSheriff(history) {
		// Frequent smuggling is what trains an adaptive sheriff. Smuggle
		// rarely, and only while the heat is off.
		switch {
		case profile.InspectionRate > 0.6:
			return d.Float64() < 0.85
		case profile.InspectionRate > 0.4:
			return d.Float64() < 0.6
		case profile.InspectionRate > 0.3:
			return d.Float64() < 0.45
		}
		return d.Float64() < 0.35
	}

	if profile.CatchRate > 0.6 {
		return true
	}
	if profile.InspectionRate > 0.7 {
		return true
	}
	return false
}

// brokerContrabandPick scales the load to the danger: small and cheap under
// a sharp sheriff, bigger and richer under a sleepy one.
func brokerContrabandPick(d checkpoint.Dice, profile SheriffProfile) (int, goods.Good) {
	contraband := contrabandByValue()
	danger := profile.InspectionRate*0.6 + profile.CatchRate*0.4

	switch {
	case danger > 0.6:
		return 1, contraband[0]
	case danger > 0.4:
		return 1 + d.Intn(2), pick(d, contraband[:maxInt(1, len(contraband)/2)])
	}
	return 2 + d.Intn(2), pick(d, contraband[len(contraband)/2:])
}

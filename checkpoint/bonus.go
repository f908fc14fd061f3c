package checkpoint

import "nottingham-lite/goods"

// Set bonus multipliers for smuggling several of the same contraband type.
var contrabandBonusMultipliers = map[int]float64{
	1: 1.0,
	2: 1.5,
	3: 2.0,
	4: 2.5,
	5: 3.0,
}

// ContrabandSet is one bonus-eligible group of identical contraband.
type ContrabandSet struct {
	Count      int
	Multiplier float64
	BaseValue  int
	BonusValue int
}

// BonusBreakdown is the market payout for a bag of goods, with set bonuses
// applied to matched contraband.
type BonusBreakdown struct {
	BaseValue  int
	BonusValue int
	LegalValue int
	Sets       map[string]ContrabandSet
}

// BonusAmount is the extra gold earned purely from set bonuses.
func (b BonusBreakdown) BonusAmount() int { return b.BonusValue - b.BaseValue }

// CalculateContrabandBonus prices a bag at market. Legal goods pay face
// value; contraband pays face value times the set multiplier for its count.
func CalculateContrabandBonus(bag []goods.Good) BonusBreakdown {
	a := goods.AnalyzeHand(bag)

	out := BonusBreakdown{
		LegalValue: goods.TotalValue(a.Legal),
		Sets:       make(map[string]ContrabandSet),
	}

	counts := map[string]int{}
	values := map[string]int{}
	for _, g := range a.Contraband {
		counts[g.ID]++
		values[g.ID] = g.Value
	}

	contrabandBase := 0
	contrabandBonus := 0
	for id, count := range counts {
		base := values[id] * count
		mult, ok := contrabandBonusMultipliers[count]
		if !ok {
			mult = 1.0
		}
		bonus := int(float64(base) * mult)
		contrabandBase += base
		contrabandBonus += bonus
		out.Sets[id] = ContrabandSet{
			Count:      count,
			Multiplier: mult,
			BaseValue:  base,
			BonusValue: bonus,
		}
	}

	out.BaseValue = out.LegalValue + contrabandBase
	out.BonusValue = out.LegalValue + contrabandBonus
	return out
}

// BestContrabandForSet picks the contraband type worth collecting more of:
// most common first, highest value breaking ties.
func BestContrabandForSet(contraband []goods.Good) (id string, count int, ok bool) {
	counts := map[string]int{}
	values := map[string]int{}
	for _, g := range contraband {
		counts[g.ID]++
		values[g.ID] = g.Value
	}
	best := ""
	for cid := range counts {
		if best == "" {
			best = cid
			continue
		}
		if counts[cid] > counts[best] ||
			(counts[cid] == counts[best] && values[cid] > values[best]) {
			best = cid
		}
	}
	if best == "" {
		return "", 0, false
	}
	return best, counts[best], true
}

// ShouldRedrawForSet decides whether a merchant swaps legal goods hoping to
// extend a contraband set. Only greedy merchants bother, and the greed and
// risk bars rise with each card already held.
func ShouldRedrawForSet(hand []goods.Good, riskTolerance, greed int) (redraw bool, n int, targetID string) {
	if greed < 6 {
		return false, 0, ""
	}
	a := goods.AnalyzeHand(hand)
	if len(a.Contraband) == 0 {
		return false, 0, ""
	}
	id, count, ok := BestContrabandForSet(a.Contraband)
	if !ok {
		return false, 0, ""
	}

	switch count {
	case 1:
		if greed >= 8 && riskTolerance >= 7 {
			return true, minInt(len(a.Legal), 3), id
		}
	case 2:
		if greed >= 7 && riskTolerance >= 6 {
			return true, minInt(len(a.Legal), 2), id
		}
	case 3:
		if greed >= 9 && riskTolerance >= 8 {
			return true, minInt(len(a.Legal), 1), id
		}
	}
	return false, 0, ""
}

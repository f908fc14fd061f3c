package checkpoint

import (
	"fmt"
	"math"

	"nottingham-lite/goods"
)

// Merchant is the smuggling side of the checkpoint. Personality sliders are
// all on a 0..10 scale and drive every policy decision.
type Merchant struct {
	ID   string
	Name string
	Role string

	Intro       string
	TellsHonest []string
	TellsLying  []string

	BluffSkill    int // 1..10, bonus to inspection rolls
	RiskTolerance int // willingness to gamble
	Greed         int // desire for profit
	HonestyBias   int // 10 = very honest

	Gold int
	Tier MerchantTier

	// Aggregates visible to the sheriff at game end. Only counts and
	// totals, never specific good ids.
	PastSmugglesCount  int
	PastSmugglesValue  int
	PastLegalSoldCount int
	PastLegalSoldValue int
}

// NewMerchant validates the personality sliders before anything can act on
// them.
func NewMerchant(id, name string, bluffSkill, riskTolerance, greed, honestyBias int) (*Merchant, error) {
	m := &Merchant{
		ID:            id,
		Name:          name,
		BluffSkill:    bluffSkill,
		RiskTolerance: riskTolerance,
		Greed:         greed,
		HonestyBias:   honestyBias,
		Gold:          StartingGold,
	}
	if err := m.ValidatePersonality(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Merchant) ValidatePersonality() error {
	if m.BluffSkill < 1 || m.BluffSkill > 10 {
		return ErrInvalidPersonality(fmt.Sprintf("%s: bluff_skill %d out of range 1..10", m.Name, m.BluffSkill))
	}
	for _, v := range []struct {
		name string
		val  int
	}{
		{"risk_tolerance", m.RiskTolerance},
		{"greed", m.Greed},
		{"honesty_bias", m.HonestyBias},
	} {
		if v.val < 0 || v.val > 10 {
			return ErrInvalidPersonality(fmt.Sprintf("%s: %s %d out of range 0..10", m.Name, v.name, v.val))
		}
	}
	return nil
}

// RollBluff rolls d10 + bluff skill.
func (m *Merchant) RollBluff(d Dice) int {
	return D10(d) + m.BluffSkill
}

// ShouldOfferProactiveBribe decides whether the merchant slips the sheriff
// gold before any threat is made. Honesty weighs twice as heavily as the
// other sliders, and very honest merchants are hard-capped regardless of how
// bold or greedy they are.
func (m *Merchant) ShouldOfferProactiveBribe(d Dice, actual, declared []goods.Good) bool {
	risk := float64(m.RiskTolerance)
	greed := float64(m.Greed)
	honesty := float64(m.HonestyBias) * 2

	var chance float64
	switch {
	case goods.HasContraband(actual):
		chance = 0.35 + risk*0.04 + greed*0.03 - honesty*0.04
	case isMismatch(actual, declared):
		chance = 0.20 + risk*0.03 + greed*0.03 - honesty*0.035
	default:
		// Honest bag: a bribe here is reverse psychology, baiting a
		// wasted inspection.
		chance = 0.05 + risk*0.02 + greed*0.01 - honesty*0.02
	}

	cap := 0.95
	if m.HonestyBias >= 9 {
		cap = 0.10
	} else if m.HonestyBias >= 8 {
		cap = 0.25
	}
	chance = math.Min(chance, cap)
	if chance <= 0 {
		return false
	}
	return d.Float64() < chance
}

// CalculateProactiveBribe sizes the unsolicited bribe. Cautious merchants
// (low risk tolerance) pay more; the boldest may offer nothing at all.
func (m *Merchant) CalculateProactiveBribe(d Dice, actual, declared []goods.Good, sheriffAuthority int) int {
	caution := float64(10 - m.RiskTolerance)
	totalValue := goods.TotalValue(actual)
	contrabandValue := goods.ContrabandValue(actual)

	var offer int
	switch {
	case contrabandValue > 0:
		frac := caution / 10 * (0.3 + 0.3*d.Float64())
		offer = int(float64(contrabandValue) * frac)
	case isMismatch(actual, declared):
		delta := goods.TotalValue(actual) - goods.TotalValue(declared)
		if delta < 0 {
			delta = -delta
		}
		offer = int(float64(delta) * (0.8 + 0.4*d.Float64()))
	default:
		offer = int(float64(totalValue) * (0.1 + 0.3*d.Float64()))
		offer = minInt(offer, maxInt(0, totalValue/2-1))
	}

	offer = int(float64(offer) * (1.0 + float64(sheriffAuthority)*0.05))

	if contrabandValue > 0 {
		offer = minInt(offer, contrabandValue-1)
	} else {
		offer = maxInt(1, offer)
	}
	return clampInt(offer, 0, m.Gold)
}

// ShouldNegotiate decides whether to engage when threatened. Willingness
// decays each negotiation round as the merchant tires.
func (m *Merchant) ShouldNegotiate(d Dice, threatLevel, goodsValue, roundNumber int) bool {
	willingness := threatLevel*10 - m.RiskTolerance*5
	willingness -= (roundNumber - 1) * 10
	willingness += RollRange(d, -10, 10)
	return willingness > 30
}

// CalculateBribeOffer sizes the opening bribe once the merchant has decided
// to negotiate.
func (m *Merchant) CalculateBribeOffer(d Dice, goodsValue, threatLevel int) int {
	basePercentage := 0.3 + float64(threatLevel)/20
	greedFactor := 1.0 - float64(m.Greed)/20
	riskFactor := 1.0 - float64(m.RiskTolerance)/30

	offer := int(float64(goodsValue) * basePercentage * greedFactor * riskFactor)
	return clampInt(maxInt(1, offer), 1, maxInt(1, m.Gold))
}

// ShouldAcceptCounter decides whether to pay the sheriff's counter-demand or
// keep haggling.
func (m *Merchant) ShouldAcceptCounter(d Dice, sheriffDemand, originalOffer, goodsValue int) bool {
	if sheriffDemand > m.Gold {
		return false
	}

	demandRatio := 1.0
	if goodsValue > 0 {
		demandRatio = float64(sheriffDemand) / float64(goodsValue)
	}
	greedThreshold := 0.5 + float64(m.Greed)/20
	riskThreshold := 0.7 - float64(m.RiskTolerance)/20
	if demandRatio < math.Min(greedThreshold, riskThreshold) {
		return true
	}

	// Stubborn fallback. Reckless merchants still fold to a hard demand
	// more often than careful ones keep paying.
	var chance float64
	switch {
	case m.RiskTolerance >= 8:
		chance = 0.5
	case m.RiskTolerance >= 6:
		chance = 0.3
	default:
		chance = 0.15
	}
	return d.Float64() < chance
}

// RaiseOffer computes the merchant's counter-counter-offer, strictly between
// its last offer and the sheriff's demand, weighted toward the demand by
// greed.
func (m *Merchant) RaiseOffer(sheriffDemand, lastOffer int) int {
	greedFactor := float64(m.Greed) / 10
	increment := int(float64(sheriffDemand-lastOffer) * (0.3 + greedFactor*0.3))
	return minInt(sheriffDemand-1, lastOffer+maxInt(1, increment))
}

// RecordRoundResult folds a finished round into the aggregate summary. Legal
// goods only count as sold when the bag was never opened.
func (m *Merchant) RecordRoundResult(res InspectionResult, bag []goods.Good) {
	if !res.Inspected {
		passed := goods.AnalyzeHand(bag)
		m.PastSmugglesCount += len(passed.Contraband)
		m.PastSmugglesValue += goods.TotalValue(passed.Contraband)
		m.PastLegalSoldCount += len(passed.Legal)
		m.PastLegalSoldValue += goods.TotalValue(passed.Legal)
		return
	}
	for _, g := range res.Passed {
		if g.IsContraband() {
			m.PastSmugglesCount++
			m.PastSmugglesValue += g.Value
		}
	}
}

// SmuggleSummary is what an inspector may query mid-game: totals only.
type SmuggleSummary struct {
	ContrabandPassedCount int `json:"contraband_passed_count"`
	ContrabandPassedValue int `json:"contraband_passed_value"`
	LegalSoldCount        int `json:"legal_sold_count"`
	LegalSoldValue        int `json:"legal_sold_value"`
}

func (m *Merchant) SmuggleSummary() SmuggleSummary {
	return SmuggleSummary{
		ContrabandPassedCount: m.PastSmugglesCount,
		ContrabandPassedValue: m.PastSmugglesValue,
		LegalSoldCount:        m.PastLegalSoldCount,
		LegalSoldValue:        m.PastLegalSoldValue,
	}
}

func isMismatch(actual, declared []goods.Good) bool {
	if len(actual) != len(declared) {
		return true
	}
	for i := range actual {
		if actual[i].ID != declared[i].ID {
			return true
		}
	}
	return false
}

package checkpoint

import "nottingham-lite/goods"

// InspectionResult is the full account of a bag crossing the checkpoint.
type InspectionResult struct {
	Inspected bool
	WasHonest bool
	CaughtLie bool

	Passed      []goods.Good
	Confiscated []goods.Good

	Penalty int // gold paid by the merchant to the sheriff

	// Rolls are zero when no detection contest happened.
	SheriffScore  int
	MerchantScore int
}

// ResolveInspection opens the bag. An exact-match honest declaration passes
// untouched with no roll. A deception triggers a contested roll; ties favor
// the sheriff. A caught lie passes only the truthfully declared subset,
// confiscates the rest, and fines the merchant half the confiscated value,
// paid to the sheriff but never below zero gold.
func ResolveInspection(d Dice, sheriff *Sheriff, merchant *Merchant, decl Declaration, bag []goods.Good) InspectionResult {
	if IsHonest(bag, decl) {
		return InspectionResult{
			Inspected: true,
			WasHonest: true,
			Passed:    bag,
		}
	}

	sheriffScore := D10(d) + sheriff.Perception
	merchantScore := merchant.RollBluff(d)
	if sheriffScore < merchantScore {
		// Bluff held. Everything slips through, contraband included.
		return InspectionResult{
			Inspected:     true,
			Passed:        bag,
			SheriffScore:  sheriffScore,
			MerchantScore: merchantScore,
		}
	}

	declared, undeclared := SeparateDeclared(bag, decl)
	penalty := int(float64(goods.TotalValue(undeclared)) * ConfiscationPenaltyRate)
	penalty = minInt(penalty, merchant.Gold)
	merchant.Gold -= penalty
	sheriff.Gold += penalty

	return InspectionResult{
		Inspected:     true,
		CaughtLie:     true,
		Passed:        declared,
		Confiscated:   undeclared,
		Penalty:       penalty,
		SheriffScore:  sheriffScore,
		MerchantScore: merchantScore,
	}
}

// ResolvePass waves the bag through unopened. Honesty is still recorded for
// the reputation update, but no lie can be caught without an inspection.
func ResolvePass(merchant *Merchant, decl Declaration, bag []goods.Good) InspectionResult {
	return InspectionResult{
		WasHonest: IsHonest(bag, decl),
		Passed:    bag,
	}
}

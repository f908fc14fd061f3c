package checkpoint

// NegotiationOutcome 谈判结果
type NegotiationOutcome byte

const (
	OutcomePending        NegotiationOutcome = 0
	OutcomeBribeAccepted  NegotiationOutcome = 1
	OutcomeBribeRejected  NegotiationOutcome = 2
	OutcomeNoBribeOffered NegotiationOutcome = 3
	OutcomeMerchantGaveUp NegotiationOutcome = 4
)

var NegotiationOutcomeDictionary = map[NegotiationOutcome]string{
	OutcomePending:        "pending",
	OutcomeBribeAccepted:  "bribe_accepted",
	OutcomeBribeRejected:  "bribe_rejected",
	OutcomeNoBribeOffered: "no_bribe_offered",
	OutcomeMerchantGaveUp: "merchant_gave_up",
}

// MerchantTier controls how much inspection history a merchant remembers.
type MerchantTier byte

const (
	TierEasy   MerchantTier = 0
	TierMedium MerchantTier = 1
	TierHard   MerchantTier = 2
)

var MerchantTierDictionary = map[MerchantTier]string{
	TierEasy:   "easy",
	TierMedium: "medium",
	TierHard:   "hard",
}

const (
	StartingGold       = 50
	StartingReputation = 5
	StartingPerception = 1
	StartingAuthority  = 1

	MaxAttribute  = 10
	MaxReputation = 10

	BagLimit = 6

	// Half of undeclared value, floored, is forfeited on a caught lie.
	ConfiscationPenaltyRate = 0.5

	// Every third experience point sharpens perception.
	PerceptionLevelStep = 3
)

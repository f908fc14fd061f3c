package checkpoint

import "nottingham-lite/goods"

// BribeAction 警长对贿赂的回应
type BribeAction byte

const (
	BribeAccept  BribeAction = 1
	BribeReject  BribeAction = 2
	BribeCounter BribeAction = 3
)

var BribeActionDictionary = map[BribeAction]string{
	BribeAccept:  "accept",
	BribeReject:  "reject",
	BribeCounter: "counter",
}

// BribeResponse is a sheriff's reply to an offer. Demand is only meaningful
// for BribeCounter and must exceed the merchant's last offer.
type BribeResponse struct {
	Action BribeAction
	Demand int
}

// NegotiationView is what the sheriff side sees when deciding. The actual
// bag contents are never exposed here.
type NegotiationView struct {
	Offer        int
	Round        int
	ThreatLevel  int
	Declaration  Declaration
	MerchantName string
}

// SheriffResponder supplies the sheriff's choice at each decision point:
// a human player, an AI strategy, or a scripted test double.
type SheriffResponder interface {
	RespondToBribe(d Dice, view NegotiationView) BribeResponse
}

// CounterAdviser lets a declaration policy second-guess the merchant's own
// counter-offer acceptance with tier-aware reasoning. Policies that do not
// implement it fall back to Merchant.ShouldAcceptCounter.
type CounterAdviser interface {
	AdviseCounter(d Dice, demand int, plan DeclarationPlan, m *Merchant) bool
}

// NegotiationState tracks one threat-and-haggle exchange.
type NegotiationState struct {
	Merchant    *Merchant
	Sheriff     *Sheriff
	GoodsValue  int // contraband value at stake
	ThreatLevel int
	Plan        DeclarationPlan
	Adviser     CounterAdviser

	MerchantOffers []int
	SheriffDemands []int
	Round          int
	Outcome        NegotiationOutcome
	FinalBribe     int
}

// InitiateThreat starts a negotiation: the sheriff announces an inspection
// unless the merchant makes it worth skipping.
func InitiateThreat(sheriff *Sheriff, merchant *Merchant, goodsValue int) *NegotiationState {
	return &NegotiationState{
		Merchant:    merchant,
		Sheriff:     sheriff,
		GoodsValue:  goodsValue,
		ThreatLevel: sheriff.ThreatLevel(),
		Round:       1,
		Outcome:     OutcomePending,
	}
}

// MerchantRespondToThreat decides whether to open with a bribe. Returns the
// offer when the merchant engages; otherwise the outcome is final.
func (n *NegotiationState) MerchantRespondToThreat(d Dice) (bool, int) {
	if !n.Merchant.ShouldNegotiate(d, n.ThreatLevel, n.GoodsValue, n.Round) {
		n.Outcome = OutcomeNoBribeOffered
		return false, 0
	}
	offer := n.Merchant.CalculateBribeOffer(d, n.GoodsValue, n.ThreatLevel)
	n.MerchantOffers = append(n.MerchantOffers, offer)
	return true, offer
}

// SheriffRespond applies the sheriff's choice. A counter that fails to beat
// the last offer returns InvalidCounterOfferError and leaves the state
// untouched: same round, same offer, sheriff chooses again. The bool is true
// while the negotiation continues.
func (n *NegotiationState) SheriffRespond(action BribeAction, demand int) (bool, error) {
	if len(n.MerchantOffers) == 0 {
		return false, ErrNoNegotiation
	}
	last := n.MerchantOffers[len(n.MerchantOffers)-1]

	switch action {
	case BribeAccept:
		n.Outcome = OutcomeBribeAccepted
		n.FinalBribe = last
		return false, nil
	case BribeReject:
		n.Outcome = OutcomeBribeRejected
		return false, nil
	case BribeCounter:
		if demand <= last {
			return true, InvalidCounterOfferError{Offer: demand, LastOffer: last}
		}
		n.SheriffDemands = append(n.SheriffDemands, demand)
		n.Round++
		return true, nil
	}
	return false, ErrInvalidState("unknown bribe action")
}

// MerchantRespondToCounter answers the sheriff's counter-demand: pay it,
// raise the offer, or walk away and take the inspection.
func (n *NegotiationState) MerchantRespondToCounter(d Dice) (bool, int) {
	if len(n.SheriffDemands) == 0 {
		n.Outcome = OutcomeMerchantGaveUp
		return false, 0
	}
	demand := n.SheriffDemands[len(n.SheriffDemands)-1]
	originalOffer := n.MerchantOffers[0]
	lastOffer := n.MerchantOffers[len(n.MerchantOffers)-1]

	// Willingness decays with rounds; the merchant may abandon the haggle
	// outright.
	if !n.Merchant.ShouldNegotiate(d, n.ThreatLevel, n.GoodsValue, n.Round) {
		n.Outcome = OutcomeMerchantGaveUp
		return false, 0
	}

	accepted := false
	if n.Adviser != nil {
		accepted = n.Adviser.AdviseCounter(d, demand, n.Plan, n.Merchant)
	} else {
		accepted = n.Merchant.ShouldAcceptCounter(d, demand, originalOffer, n.GoodsValue)
	}
	if accepted {
		n.Outcome = OutcomeBribeAccepted
		n.FinalBribe = demand
		return true, demand
	}

	newOffer := n.Merchant.RaiseOffer(demand, lastOffer)
	newOffer = minInt(newOffer, n.Merchant.Gold)
	if newOffer <= lastOffer {
		n.Outcome = OutcomeMerchantGaveUp
		return false, 0
	}
	n.MerchantOffers = append(n.MerchantOffers, newOffer)
	return true, newOffer
}

// SheriffInspects reports whether the resolved negotiation ends in an
// inspection.
func (n *NegotiationState) SheriffInspects() bool {
	switch n.Outcome {
	case OutcomeBribeRejected, OutcomeNoBribeOffered, OutcomeMerchantGaveUp:
		return true
	}
	return false
}

// invalidCounterRetries bounds how often a responder may repeat an invalid
// counter before it is treated as a rejection.
const invalidCounterRetries = 3

// RunNegotiation drives the state machine end to end. The responder is
// called at every sheriff decision point. Returns the final state and
// whether the sheriff must inspect. An accepted bribe is paid immediately.
func RunNegotiation(d Dice, sheriff *Sheriff, merchant *Merchant, plan DeclarationPlan, responder SheriffResponder, adviser CounterAdviser, maxRounds int) (*NegotiationState, bool) {
	if maxRounds <= 0 {
		maxRounds = DefaultConfig().MaxNegotiationRounds
	}

	st := InitiateThreat(sheriff, merchant, goods.ContrabandValue(plan.Actual))
	st.Plan = plan
	st.Adviser = adviser
	engaged, offer := st.MerchantRespondToThreat(d)
	if !engaged {
		return st, true
	}

	for {
		view := NegotiationView{
			Offer:        offer,
			Round:        st.Round,
			ThreatLevel:  st.ThreatLevel,
			Declaration:  plan.Declaration,
			MerchantName: merchant.Name,
		}

		var resp BribeResponse
		cont := false
		for try := 0; ; try++ {
			resp = responder.RespondToBribe(d, view)
			var err error
			cont, err = st.SheriffRespond(resp.Action, resp.Demand)
			if err == nil {
				break
			}
			if try+1 >= invalidCounterRetries {
				cont, _ = st.SheriffRespond(BribeReject, 0)
				break
			}
		}
		if !cont {
			break
		}

		if st.Round > maxRounds {
			st.Outcome = OutcomeMerchantGaveUp
			break
		}

		cont, offer = st.MerchantRespondToCounter(d)
		if !cont || st.Outcome == OutcomeBribeAccepted {
			break
		}
	}

	if st.Outcome == OutcomeBribeAccepted {
		paid := minInt(st.FinalBribe, merchant.Gold)
		st.FinalBribe = paid
		merchant.Gold -= paid
		sheriff.Gold += paid
	}
	return st, st.SheriffInspects()
}

package checkpoint

import (
	"nottingham-lite/goods"
)

// InspectionEvent is the recorded history of one merchant encounter.
type InspectionEvent struct {
	Round        int      `json:"round"`
	MerchantName string   `json:"merchant_name"`
	DeclaredGood string   `json:"declared_good"`
	DeclaredCnt  int      `json:"declared_count"`
	ActualIDs    []string `json:"actual_ids"`
	Opened       bool     `json:"opened"`
	CaughtLie    bool     `json:"caught_lie"`
	BribeOffered int      `json:"bribe_offered"`
	BribeAccept  bool     `json:"bribe_accepted"`
	Proactive    bool     `json:"proactive_bribe"`
}

// EncounterView is everything a sheriff strategy may look at when deciding.
// The actual bag contents are deliberately absent.
type EncounterView struct {
	MerchantName  string
	Declaration   Declaration
	DeclaredValue int
	BribeOffered  int
	Proactive     bool
	Round         int
	History       []InspectionEvent
	Stats         SheriffStats
}

// EncounterChoice is the sheriff's decision at the checkpoint: wave through,
// open the bag, take the offered gold, or threaten and haggle.
type EncounterChoice struct {
	Inspect     bool
	AcceptBribe bool
	Threaten    bool
}

// SheriffAgent supplies sheriff-side decisions for a whole encounter.
type SheriffAgent interface {
	SheriffResponder
	Decide(d Dice, view EncounterView) EncounterChoice
}

// RoundResult is the resolved record of one merchant crossing.
type RoundResult struct {
	Merchant     string
	Plan         DeclarationPlan
	Choice       EncounterChoice
	Negotiation  *NegotiationState
	Inspection   InspectionResult
	Outcome      NegotiationOutcome
	BribeOffered int
	BribePaid    int
	Proactive    bool
	Earned       int // merchant's market take for goods that passed
}

// GameSession owns everything shared across rounds: the dice, the sheriff,
// the event history, and the running statistics. One session is one shift at
// the gate.
type GameSession struct {
	cfg     Config
	dice    Dice
	Sheriff *Sheriff
	Stats   GameStats
	Events  []InspectionEvent

	round int
	ended bool
}

func NewSession(cfg Config, sheriff *Sheriff) (*GameSession, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if sheriff == nil {
		sheriff = NewSheriff("sheriff")
	}
	return &GameSession{
		cfg:     cfg,
		dice:    NewDice(cfg.Seed),
		Sheriff: sheriff,
	}, nil
}

func (s *GameSession) Dice() Dice     { return s.dice }
func (s *GameSession) Round() int     { return s.round }
func (s *GameSession) Ended() bool    { return s.ended }
func (s *GameSession) Config() Config { return s.cfg }

// HistoryForTier returns the slice of recent events a merchant of the given
// tier is allowed to remember: easy sees the last 2, medium the last 4, hard
// sees everything.
func (s *GameSession) HistoryForTier(tier MerchantTier) []InspectionEvent {
	n := len(s.Events)
	var size int
	switch tier {
	case TierEasy:
		size = minInt(2, n)
	case TierMedium:
		size = minInt(4, n)
	default:
		size = n
	}
	return s.Events[n-size:]
}

// SheriffBehavior aggregates observed sheriff tendencies. Priors of
// 0.5/0.5/0.3 hold until there is evidence.
func (s *GameSession) SheriffBehavior() SheriffStats {
	out := SheriffStats{InspectionRate: 0.5, CatchRate: 0.5, BribeAcceptRate: 0.3}
	if len(s.Events) == 0 {
		return out
	}

	total := len(s.Events)
	inspections, catches, offered, accepted := 0, 0, 0, 0
	for _, e := range s.Events {
		if e.Opened {
			inspections++
		}
		if e.CaughtLie {
			catches++
		}
		if e.BribeOffered > 0 {
			offered++
		}
		if e.BribeAccept {
			accepted++
		}
	}

	out.ObservedRounds = total
	out.InspectionRate = float64(inspections) / float64(total)
	if inspections > 0 {
		out.CatchRate = float64(catches) / float64(inspections)
	}
	if offered > 0 {
		out.BribeAcceptRate = float64(accepted) / float64(offered)
	}
	return out
}

// RecentInspectionPattern labels the sheriff's recent posture from the last
// n events: aggressive above 70% inspections, lenient below 30%.
func (s *GameSession) RecentInspectionPattern(lastN int) string {
	if len(s.Events) == 0 {
		return "moderate"
	}
	if lastN <= 0 || lastN > len(s.Events) {
		lastN = len(s.Events)
	}
	recent := s.Events[len(s.Events)-lastN:]
	opened := 0
	for _, e := range recent {
		if e.Opened {
			opened++
		}
	}
	rate := float64(opened) / float64(len(recent))
	switch {
	case rate > 0.7:
		return "aggressive"
	case rate < 0.3:
		return "lenient"
	}
	return "moderate"
}

// BuildRound asks the merchant's policy for a round scenario against the
// history slice its tier may see.
func (s *GameSession) BuildRound(m *Merchant, policy DeclarationPolicy) (DeclarationPlan, error) {
	if s.ended {
		return DeclarationPlan{}, ErrSessionEnded
	}
	ctx := DeclarationContext{
		Merchant: m,
		History:  s.HistoryForTier(m.Tier),
		Stats:    s.SheriffBehavior(),
		Round:    s.round,
	}
	plan := policy.BuildDeclaration(s.dice, ctx)
	if err := ValidatePlan(plan); err != nil {
		return DeclarationPlan{}, err
	}
	return plan, nil
}

// ProcessEncounter runs one merchant through the full round: declaration,
// optional proactive bribe, the sheriff's decision, negotiation if
// threatened, inspection or pass, then reputation, stats, market payout and
// history updates.
func (s *GameSession) ProcessEncounter(m *Merchant, policy DeclarationPolicy, agent SheriffAgent) (RoundResult, error) {
	plan, err := s.BuildRound(m, policy)
	if err != nil {
		return RoundResult{}, err
	}

	declared := declarationStack(plan.Declaration)
	declValue := goods.TotalValue(declared)

	bribeOffered := plan.BribeOffer
	if bribeOffered <= 0 && m.ShouldOfferProactiveBribe(s.dice, plan.Actual, declared) {
		bribeOffered = m.CalculateProactiveBribe(s.dice, plan.Actual, declared, s.Sheriff.Authority)
	}
	bribeOffered = minInt(bribeOffered, m.Gold)
	proactive := bribeOffered > 0

	choice := agent.Decide(s.dice, EncounterView{
		MerchantName:  m.Name,
		Declaration:   plan.Declaration,
		DeclaredValue: declValue,
		BribeOffered:  bribeOffered,
		Proactive:     proactive,
		Round:         s.round,
		History:       s.Events,
		Stats:         s.SheriffBehavior(),
	})

	res := RoundResult{
		Merchant:     m.Name,
		Plan:         plan,
		Choice:       choice,
		Outcome:      OutcomePending,
		BribeOffered: bribeOffered,
		Proactive:    proactive,
	}

	switch {
	case proactive && choice.AcceptBribe && !choice.Inspect:
		paid := minInt(bribeOffered, m.Gold)
		m.Gold -= paid
		s.Sheriff.Gold += paid
		s.Stats.RecordBribe(paid)
		res.BribePaid = paid
		res.Outcome = OutcomeBribeAccepted
		res.Inspection = ResolvePass(m, plan.Declaration, plan.Actual)

	case choice.Threaten:
		adviser, _ := policy.(CounterAdviser)
		st, mustInspect := RunNegotiation(s.dice, s.Sheriff, m, plan, agent, adviser, s.cfg.MaxNegotiationRounds)
		res.Negotiation = st
		res.Outcome = st.Outcome
		res.BribePaid = st.FinalBribe
		if mustInspect {
			res.Inspection = ResolveInspection(s.dice, s.Sheriff, m, plan.Declaration, plan.Actual)
		} else {
			s.Stats.RecordBribe(st.FinalBribe)
			res.Inspection = ResolvePass(m, plan.Declaration, plan.Actual)
		}

	case choice.Inspect:
		if proactive {
			res.Outcome = OutcomeBribeRejected
		}
		res.Inspection = ResolveInspection(s.dice, s.Sheriff, m, plan.Declaration, plan.Actual)

	default:
		res.Inspection = ResolvePass(m, plan.Declaration, plan.Actual)
	}

	UpdateReputation(s.Sheriff, res.Inspection.Inspected, res.Inspection.WasHonest, plan.Actual)
	if res.Inspection.Inspected {
		s.Stats.RecordInspection(res.Inspection.WasHonest, res.Inspection.CaughtLie)
	} else {
		s.Stats.RecordPass(res.Inspection.WasHonest)
	}
	s.Stats.MerchantsProcessed++

	// Goods that made it through sell at market, set bonuses included.
	res.Earned = CalculateContrabandBonus(res.Inspection.Passed).BonusValue
	m.Gold += res.Earned
	m.RecordRoundResult(res.Inspection, plan.Actual)

	// Event rounds are one-based, matching replay tape records.
	s.Events = append(s.Events, InspectionEvent{
		Round:        s.round + 1,
		MerchantName: m.Name,
		DeclaredGood: plan.Declaration.GoodID,
		DeclaredCnt:  plan.Declaration.Count,
		ActualIDs:    goods.IDs(plan.Actual),
		Opened:       res.Inspection.Inspected,
		CaughtLie:    res.Inspection.CaughtLie,
		BribeOffered: maxInt(bribeOffered, res.BribePaid),
		BribeAccept:  res.Outcome == OutcomeBribeAccepted,
		Proactive:    proactive,
	})
	s.round++
	if s.round >= s.cfg.Rounds {
		s.ended = true
	}
	return res, nil
}

// Finish closes the shift and returns the final rating.
func (s *GameSession) Finish() EndGameResult {
	s.ended = true
	return DetermineEndGameState(s.Sheriff, &s.Stats)
}

func declarationStack(decl Declaration) []goods.Good {
	g, err := goods.ByID(decl.GoodID)
	if err != nil {
		return nil
	}
	stack := make([]goods.Good, decl.Count)
	for i := range stack {
		stack[i] = g
	}
	return stack
}

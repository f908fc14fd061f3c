package replay

import (
	"nottingham-lite/checkpoint"
	"nottingham-lite/goods"
)

const defaultSessionID = "replay_local"

// GenerateSessionTape runs one full shift through the engine and records
// every round as a tape event. With a fixed seed the tape is reproducible
// byte for byte.
func GenerateSessionTape(spec SessionSpec) (*SessionTape, error) {
	ns, err := normalizeSpec(spec)
	if err != nil {
		return nil, err
	}

	session, err := checkpoint.NewSession(ns.cfg, ns.sheriff)
	if err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "engine_init_failed", Message: err.Error()}
	}

	builder := newTapeBuilder(defaultSessionID)
	builder.addStart(&SessionStart{
		Rounds:          ns.cfg.Rounds,
		Seed:            ns.cfg.Seed,
		SheriffName:     ns.sheriff.Name,
		SheriffStrategy: ns.strategy,
		Merchants:       ns.names,
	})

	for step := 0; !session.Ended(); step++ {
		nm := ns.merchants[step%len(ns.merchants)]
		res, err := session.ProcessEncounter(nm.merchant, nm.policy, ns.agent)
		if err != nil {
			return nil, &ReplayError{StepIndex: int32(step), Reason: "encounter_failed", Message: err.Error()}
		}
		builder.addRound(buildRoundRecord(step, nm.merchant, ns.sheriff, res))
	}

	end := session.Finish()
	builder.addEnd(&SessionEnd{
		Rating:       checkpoint.RatingDictionary[end.Rating],
		Title:        end.Title,
		SheriffGold:  ns.sheriff.Gold,
		Reputation:   ns.sheriff.Reputation,
		Inspections:  session.Stats.TotalInspections,
		LiesCaught:   session.Stats.SmugglersCaught,
		BribesTaken:  session.Stats.BribesAccepted,
		BribeIncome:  session.Stats.GoldEarned,
		AccuracyPct:  int(session.Stats.AccuracyPercentage() + 0.5),
		FinalPattern: session.RecentInspectionPattern(5),
	})

	return &SessionTape{
		TapeVersion: 1,
		SessionID:   builder.sessionID,
		Events:      builder.events,
	}, nil
}

func buildRoundRecord(step int, m *checkpoint.Merchant, sheriff *checkpoint.Sheriff, res checkpoint.RoundResult) *RoundRecord {
	return &RoundRecord{
		Round:         step + 1,
		Merchant:      m.Name,
		Strategy:      res.Plan.Strategy,
		DeclaredGood:  res.Plan.Declaration.GoodID,
		DeclaredCount: res.Plan.Declaration.Count,
		ActualIDs:     goods.IDs(res.Plan.Actual),
		Lie:           res.Plan.Lie,

		BribeOffered: res.BribeOffered,
		BribePaid:    res.BribePaid,
		Proactive:    res.Proactive,
		Outcome:      checkpoint.NegotiationOutcomeDictionary[res.Outcome],

		Opened:         res.Inspection.Inspected,
		CaughtLie:      res.Inspection.CaughtLie,
		ConfiscatedIDs: goods.IDs(res.Inspection.Confiscated),
		Penalty:        res.Inspection.Penalty,
		Earned:         res.Earned,

		MerchantGold: m.Gold,
		SheriffGold:  sheriff.Gold,
		Reputation:   sheriff.Reputation,
	}
}

type tapeBuilder struct {
	sessionID string
	seq       uint64
	events    []TapeEvent
}

func newTapeBuilder(sessionID string) *tapeBuilder {
	return &tapeBuilder{
		sessionID: sessionID,
		events:    make([]TapeEvent, 0, 64),
	}
}

func (b *tapeBuilder) addStart(s *SessionStart) {
	b.push(TapeEvent{Type: "sessionStart", Start: s})
}

func (b *tapeBuilder) addRound(r *RoundRecord) {
	b.push(TapeEvent{Type: "round", Round: r})
}

func (b *tapeBuilder) addEnd(e *SessionEnd) {
	b.push(TapeEvent{Type: "sessionEnd", End: e})
}

func (b *tapeBuilder) push(e TapeEvent) {
	b.seq++
	e.Seq = b.seq
	b.events = append(b.events, e)
}

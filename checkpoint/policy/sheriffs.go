package policy

import (
	"sort"

	"nottingham-lite/checkpoint"
)

// TriggerHappySheriff inspects anyone who offers gold and waves everyone
// else through. The honest-bribe trick beats it every time.
type TriggerHappySheriff struct{}

func (TriggerHappySheriff) Decide(d checkpoint.Dice, view checkpoint.EncounterView) checkpoint.EncounterChoice {
	if view.BribeOffered > 0 {
		return checkpoint.EncounterChoice{Inspect: true}
	}
	return checkpoint.EncounterChoice{}
}

func (TriggerHappySheriff) RespondToBribe(d checkpoint.Dice, view checkpoint.NegotiationView) checkpoint.BribeResponse {
	return checkpoint.BribeResponse{Action: checkpoint.BribeReject}
}

// StrictInspectorSheriff opens every bag and pockets nothing.
type StrictInspectorSheriff struct{}

func (StrictInspectorSheriff) Decide(d checkpoint.Dice, view checkpoint.EncounterView) checkpoint.EncounterChoice {
	return checkpoint.EncounterChoice{Inspect: true}
}

func (StrictInspectorSheriff) RespondToBribe(d checkpoint.Dice, view checkpoint.NegotiationView) checkpoint.BribeResponse {
	return checkpoint.BribeResponse{Action: checkpoint.BribeReject}
}

// CorruptSheriff takes every bribe offered and inspects nobody.
type CorruptSheriff struct{}

func (CorruptSheriff) Decide(d checkpoint.Dice, view checkpoint.EncounterView) checkpoint.EncounterChoice {
	if view.BribeOffered > 0 {
		return checkpoint.EncounterChoice{AcceptBribe: true}
	}
	return checkpoint.EncounterChoice{}
}

func (CorruptSheriff) RespondToBribe(d checkpoint.Dice, view checkpoint.NegotiationView) checkpoint.BribeResponse {
	return checkpoint.BribeResponse{Action: checkpoint.BribeAccept}
}

// GreedySheriff squeezes merchants for substantial bribes: half the declared
// value or the bag gets opened. Without an offer on the table it threatens
// often enough to keep the gold flowing.
type GreedySheriff struct{}

func (GreedySheriff) Decide(d checkpoint.Dice, view checkpoint.EncounterView) checkpoint.EncounterChoice {
	if view.BribeOffered > 0 {
		ratio := float64(view.BribeOffered) / float64(maxInt(view.DeclaredValue, 1))
		switch {
		case ratio >= 0.5:
			return checkpoint.EncounterChoice{AcceptBribe: true}
		case ratio >= 0.4:
			if d.Float64() < 0.7 {
				return checkpoint.EncounterChoice{AcceptBribe: true}
			}
			return checkpoint.EncounterChoice{Inspect: true}
		}
		return checkpoint.EncounterChoice{Inspect: true}
	}
	if d.Float64() < 0.4 {
		return checkpoint.EncounterChoice{Threaten: true}
	}
	return checkpoint.EncounterChoice{}
}

func (GreedySheriff) RespondToBribe(d checkpoint.Dice, view checkpoint.NegotiationView) checkpoint.BribeResponse {
	declaredValue := view.Declaration.Count
	if g, err := view.Declaration.DeclaredValue(); err == nil {
		declaredValue = g
	}
	ratio := float64(view.Offer) / float64(maxInt(declaredValue, 1))
	switch {
	case ratio >= 0.5:
		return checkpoint.BribeResponse{Action: checkpoint.BribeAccept}
	case ratio >= 0.4 && d.Float64() < 0.7:
		return checkpoint.BribeResponse{Action: checkpoint.BribeAccept}
	}
	if view.Round >= 3 {
		return checkpoint.BribeResponse{Action: checkpoint.BribeReject}
	}
	demand := maxInt(view.Offer+1, declaredValue/2)
	return checkpoint.BribeResponse{Action: checkpoint.BribeCounter, Demand: demand}
}

// SmartSheriff adapts: it tracks its own catch rate over the recent window
// and tightens or relaxes inspections to match, with extra suspicion for
// high-value declarations and outsized bribes.
type SmartSheriff struct{}

func (SmartSheriff) Decide(d checkpoint.Dice, view checkpoint.EncounterView) checkpoint.EncounterChoice {
	recent := view.History
	if len(recent) > 20 {
		recent = recent[len(recent)-20:]
	}

	catchRate := 0.5
	inspections, catches := 0, 0
	for _, e := range recent {
		if e.Opened {
			inspections++
			if e.CaughtLie {
				catches++
			}
		}
	}
	if inspections > 0 {
		catchRate = float64(catches) / float64(inspections)
	}

	smugglingRate := 0.0
	if len(recent) >= 5 {
		caught := 0
		for _, e := range recent {
			if e.CaughtLie {
				caught++
			}
		}
		smugglingRate = float64(caught) / float64(len(recent))
	}

	inspectionRate := 0.45
	if catchRate > 0.6 {
		inspectionRate = 0.6
	} else if catchRate < 0.3 {
		inspectionRate = 0.3
	}
	if smugglingRate > 0.30 {
		inspectionRate += 0.15
	} else if smugglingRate > 0.20 {
		inspectionRate += 0.10
	}
	if view.DeclaredValue > 15 {
		inspectionRate += 0.15
	}

	if view.BribeOffered > 0 {
		ratio := float64(view.BribeOffered) / float64(maxInt(view.DeclaredValue, 1))
		switch {
		case ratio > 0.4:
			// A bribe that dwarfs the declaration is a confession.
			return checkpoint.EncounterChoice{Inspect: true}
		case ratio < 0.2:
			if d.Float64() < 0.6 {
				return checkpoint.EncounterChoice{AcceptBribe: true}
			}
			return checkpoint.EncounterChoice{Inspect: true}
		}
		if d.Float64() < 0.5 {
			return checkpoint.EncounterChoice{AcceptBribe: true}
		}
		return checkpoint.EncounterChoice{Inspect: true}
	}
	return checkpoint.EncounterChoice{Inspect: d.Float64() < inspectionRate}
}

func (SmartSheriff) RespondToBribe(d checkpoint.Dice, view checkpoint.NegotiationView) checkpoint.BribeResponse {
	declaredValue := view.Declaration.Count
	if v, err := view.Declaration.DeclaredValue(); err == nil {
		declaredValue = v
	}
	ratio := float64(view.Offer) / float64(maxInt(declaredValue, 1))
	switch {
	case ratio > 0.4:
		return checkpoint.BribeResponse{Action: checkpoint.BribeReject}
	case ratio < 0.2 && view.Round < 3:
		return checkpoint.BribeResponse{Action: checkpoint.BribeCounter, Demand: view.Offer + maxInt(1, declaredValue/4)}
	}
	if d.Float64() < 0.5 {
		return checkpoint.BribeResponse{Action: checkpoint.BribeAccept}
	}
	return checkpoint.BribeResponse{Action: checkpoint.BribeReject}
}

// VengefulSheriff keeps a ledger on every merchant. Known liars get opened
// constantly and only enormous bribes buy them passage; clean records buy
// leniency.
type VengefulSheriff struct{}

func (VengefulSheriff) Decide(d checkpoint.Dice, view checkpoint.EncounterView) checkpoint.EncounterChoice {
	inspectionRate, bribeThreshold := vengefulPosture(view.History, view.MerchantName)

	if view.BribeOffered > 0 {
		ratio := float64(view.BribeOffered) / float64(maxInt(view.DeclaredValue, 1))
		if ratio >= bribeThreshold {
			return checkpoint.EncounterChoice{AcceptBribe: true}
		}
		return checkpoint.EncounterChoice{Inspect: true}
	}
	return checkpoint.EncounterChoice{Inspect: d.Float64() < inspectionRate}
}

func (VengefulSheriff) RespondToBribe(d checkpoint.Dice, view checkpoint.NegotiationView) checkpoint.BribeResponse {
	return checkpoint.BribeResponse{Action: checkpoint.BribeReject}
}

func vengefulPosture(history []checkpoint.InspectionEvent, merchant string) (inspectionRate, bribeThreshold float64) {
	var mine []checkpoint.InspectionEvent
	for _, e := range history {
		if e.MerchantName == merchant {
			mine = append(mine, e)
		}
	}
	if len(mine) < 3 {
		return 0.4, 0.4
	}

	inspected := 0
	caught := 0
	for _, e := range mine {
		if e.Opened {
			inspected++
			if e.CaughtLie {
				caught++
			}
		}
	}
	lieRate := 0.3
	if inspected >= 3 {
		lieRate = float64(caught) / float64(inspected)
	}

	switch {
	case lieRate > 0.5:
		return 0.8, 0.8
	case lieRate > 0.3:
		return 0.5, 0.6
	}
	return 0.2, 0.3
}

// SheriffStrategies maps strategy names to constructors.
var SheriffStrategies = map[string]func() checkpoint.SheriffAgent{
	"trigger_happy":    func() checkpoint.SheriffAgent { return TriggerHappySheriff{} },
	"strict_inspector": func() checkpoint.SheriffAgent { return StrictInspectorSheriff{} },
	"corrupt":          func() checkpoint.SheriffAgent { return CorruptSheriff{} },
	"greedy":           func() checkpoint.SheriffAgent { return GreedySheriff{} },
	"smart":            func() checkpoint.SheriffAgent { return SmartSheriff{} },
	"vengeful":         func() checkpoint.SheriffAgent { return VengefulSheriff{} },
}

// SheriffAgentByName builds the named strategy, or false when unknown.
func SheriffAgentByName(name string) (checkpoint.SheriffAgent, bool) {
	ctor, ok := SheriffStrategies[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// SheriffStrategyNames lists the registered strategies in stable order.
func SheriffStrategyNames() []string {
	names := make([]string, 0, len(SheriffStrategies))
	for name := range SheriffStrategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

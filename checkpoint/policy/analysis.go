package policy

import "nottingham-lite/checkpoint"

func eventWasLie(e checkpoint.InspectionEvent) bool {
	if len(e.ActualIDs) != e.DeclaredCnt {
		return true
	}
	for _, id := range e.ActualIDs {
		if id != e.DeclaredGood {
			return true
		}
	}
	return false
}

// CatchRate is the share of observed lies the sheriff caught. With no lies
// observed it assumes 0.5.
func CatchRate(history []checkpoint.InspectionEvent) float64 {
	lies, caught := 0, 0
	for _, e := range history {
		if eventWasLie(e) {
			lies++
			if e.CaughtLie {
				caught++
			}
		}
	}
	if lies == 0 {
		return 0.5
	}
	return float64(caught) / float64(lies)
}

// SheriffProfile is the detailed behavior readout used by the sharper
// merchant policies.
type SheriffProfile struct {
	InspectionRate  float64
	CatchRate       float64
	TotalRounds     int
	LiesCaught      int
	LiesSuccessful  int
	TruthsInspected int
}

// AnalyzeSheriff reconstructs inspection and catch rates from history,
// defaulting both to 0.5 when there is nothing to go on.
func AnalyzeSheriff(history []checkpoint.InspectionEvent) SheriffProfile {
	p := SheriffProfile{InspectionRate: 0.5, CatchRate: 0.5}
	if len(history) == 0 {
		return p
	}
	p.TotalRounds = len(history)

	for _, e := range history {
		if eventWasLie(e) {
			if e.CaughtLie {
				p.LiesCaught++
			} else {
				p.LiesSuccessful++
			}
		} else if e.Opened {
			p.TruthsInspected++
		}
	}

	p.InspectionRate = float64(p.LiesCaught+p.TruthsInspected) / float64(p.TotalRounds)
	if lies := p.LiesCaught + p.LiesSuccessful; lies > 0 {
		p.CatchRate = float64(p.LiesCaught) / float64(lies)
	}
	return p
}

// DetectCorruptSheriff reports whether the sheriff takes essentially every
// bribe offered. Needs at least three bribed encounters of evidence.
func DetectCorruptSheriff(history []checkpoint.InspectionEvent) bool {
	if len(history) < 5 {
		return false
	}
	recent := history
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	bribed, accepted := 0, 0
	for _, e := range recent {
		if e.BribeOffered > 0 {
			bribed++
			if e.BribeAccept {
				accepted++
			}
		}
	}
	if bribed < 3 {
		return false
	}
	return float64(accepted)/float64(bribed) >= 0.9
}

// DetectAdaptiveSheriff reports whether the inspection rate shifted sharply
// between the first and second half of the history.
func DetectAdaptiveSheriff(history []checkpoint.InspectionEvent) bool {
	if len(history) < 10 {
		return false
	}
	mid := len(history) / 2
	rate := func(events []checkpoint.InspectionEvent) float64 {
		opened := 0
		for _, e := range events {
			if e.Opened {
				opened++
			}
		}
		return float64(opened) / float64(len(events))
	}
	first := rate(history[:mid])
	second := rate(history[mid:])
	diff := first - second
	if diff < 0 {
		diff = -diff
	}
	return diff > 0.25
}

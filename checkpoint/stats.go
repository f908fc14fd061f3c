package checkpoint

// GameStats accumulates shift-wide counters for the end-of-session summary.
type GameStats struct {
	MerchantsProcessed int `json:"merchants_processed"`
	SmugglersCaught    int `json:"smugglers_caught"`
	HonestInspected    int `json:"honest_inspected"`
	BribesAccepted     int `json:"bribes_accepted"`
	GoldEarned         int `json:"gold_earned"`

	TotalInspections   int `json:"total_inspections"`
	CorrectInspections int `json:"correct_inspections"`

	MissedSmugglers int `json:"missed_smugglers"`
}

// RecordInspection tallies an opened bag. Catching a liar is the only
// correct inspection; opening an honest bag is a false accusation.
func (s *GameStats) RecordInspection(wasHonest, caughtLie bool) {
	s.TotalInspections++
	if !wasHonest {
		if caughtLie {
			s.SmugglersCaught++
			s.CorrectInspections++
		}
		return
	}
	s.HonestInspected++
}

// RecordPass tallies a bag waved through unopened.
func (s *GameStats) RecordPass(wasHonest bool) {
	if wasHonest {
		s.CorrectInspections++
	} else {
		s.MissedSmugglers++
	}
}

// RecordBribe tallies an accepted bribe.
func (s *GameStats) RecordBribe(amount int) {
	s.BribesAccepted++
	s.GoldEarned += amount
}

// AccuracyPercentage is correct decisions over all inspect-or-miss
// decisions, as a percentage.
func (s *GameStats) AccuracyPercentage() float64 {
	total := s.TotalInspections + s.MissedSmugglers
	if total == 0 {
		return 0
	}
	return float64(s.CorrectInspections) / float64(total) * 100
}

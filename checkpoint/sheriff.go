package checkpoint

// Sheriff is the inspecting side of the checkpoint.
type Sheriff struct {
	Name       string
	Perception int // 1..10, bonus to inspection rolls
	Authority  int // 1..10, scales threat and bribe demands
	Reputation int // 0..10
	Experience int
	Gold       int
}

func NewSheriff(name string) *Sheriff {
	return &Sheriff{
		Name:       name,
		Perception: StartingPerception,
		Authority:  StartingAuthority,
		Reputation: StartingReputation,
		Experience: 0,
		Gold:       0,
	}
}

// GainExperience raises experience and sharpens perception once per crossed
// multiple of PerceptionLevelStep, capped at MaxAttribute.
func (s *Sheriff) GainExperience(amount int) {
	if amount <= 0 {
		return
	}
	before := s.Experience
	s.Experience += amount
	levels := s.Experience/PerceptionLevelStep - before/PerceptionLevelStep
	for i := 0; i < levels && s.Perception < MaxAttribute; i++ {
		s.Perception++
	}
}

// ThreatLevel derives how intimidating the sheriff currently is.
func (s *Sheriff) ThreatLevel() int {
	return clampInt((s.Authority+s.Reputation)/2, 1, 10)
}

func (s *Sheriff) AdjustReputation(delta int) {
	s.Reputation = clampInt(s.Reputation+delta, 0, MaxReputation)
}

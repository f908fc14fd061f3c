package policy

import (
	"sort"
	"testing"

	"nottingham-lite/checkpoint"
)

func TestLoadDefaults(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadDefaults(); err != nil {
		t.Fatalf("LoadDefaults failed: %v", err)
	}
	if r.Count() < 6 {
		t.Fatalf("embedded roster has %d personas", r.Count())
	}

	p := r.Get("alys")
	if p == nil {
		t.Fatalf("alys missing from the roster")
	}
	m, err := p.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if m.Name != p.Name || m.Tier != checkpoint.TierEasy || m.Gold != checkpoint.StartingGold {
		t.Fatalf("built merchant wrong: %+v", m)
	}

	all := r.All()
	if !sort.SliceIsSorted(all, func(i, j int) bool { return all[i].ID < all[j].ID }) {
		t.Fatalf("All must sort by id")
	}
	if len(r.ByTier(checkpoint.TierHard)) == 0 {
		t.Fatalf("roster needs at least one hard persona")
	}

	merchants, err := r.BuildAll()
	if err != nil || len(merchants) != r.Count() {
		t.Fatalf("BuildAll: %d merchants, err=%v", len(merchants), err)
	}
}

func TestLoadFromJSONValidatesSchema(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not an array", `{"id": "solo"}`},
		{"missing sliders", `[{"id": "x", "name": "X"}]`},
		{"slider out of range", `[{"id": "x", "name": "X", "bluff_skill": 0, "risk_tolerance": 5, "greed": 5, "honesty_bias": 5}]`},
		{"unknown tier", `[{"id": "x", "name": "X", "tier": "nightmare", "bluff_skill": 5, "risk_tolerance": 5, "greed": 5, "honesty_bias": 5}]`},
		{"unknown field", `[{"id": "x", "name": "X", "luck": 7, "bluff_skill": 5, "risk_tolerance": 5, "greed": 5, "honesty_bias": 5}]`},
		{"malformed", `[{`},
	}
	for _, tc := range cases {
		r := NewRegistry()
		if err := r.LoadFromJSON([]byte(tc.doc)); err == nil {
			t.Errorf("%s: bad roster accepted", tc.name)
		}
		if r.Count() != 0 {
			t.Errorf("%s: rejected roster half-loaded %d personas", tc.name, r.Count())
		}
	}

	r := NewRegistry()
	good := `[{"id": "odo", "name": "Odo", "role": "broker", "tier": "hard",
		"bluff_skill": 6, "risk_tolerance": 4, "greed": 5, "honesty_bias": 5}]`
	if err := r.LoadFromJSON([]byte(good)); err != nil {
		t.Fatalf("valid roster rejected: %v", err)
	}
	if r.Get("odo") == nil {
		t.Fatalf("odo not registered")
	}
}

func TestForRole(t *testing.T) {
	if _, ok := ForRole("broker").(BrokerPolicy); !ok {
		t.Fatalf("broker role must map to BrokerPolicy")
	}
	if _, ok := ForRole("simple").(DefaultPolicy); !ok {
		t.Fatalf("simple role must map to DefaultPolicy")
	}
	if _, ok := ForRole("").(TieredPolicy); !ok {
		t.Fatalf("empty role must map to TieredPolicy")
	}
	if _, ok := ForRole("standard").(TieredPolicy); !ok {
		t.Fatalf("standard role must map to TieredPolicy")
	}
}

func TestSheriffAgentByName(t *testing.T) {
	names := SheriffStrategyNames()
	if len(names) != len(SheriffStrategies) {
		t.Fatalf("%d names for %d strategies", len(names), len(SheriffStrategies))
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("names must be sorted: %v", names)
	}
	for _, name := range names {
		if _, ok := SheriffAgentByName(name); !ok {
			t.Fatalf("strategy %q did not build", name)
		}
	}
	if _, ok := SheriffAgentByName("bribeable"); ok {
		t.Fatalf("unknown strategy must not build")
	}
}

package replay

import (
	"fmt"
	"strings"

	"nottingham-lite/checkpoint"
	"nottingham-lite/checkpoint/policy"
)

type normalizedMerchant struct {
	merchant *checkpoint.Merchant
	policy   checkpoint.DeclarationPolicy
}

type normalizedSpec struct {
	cfg       checkpoint.Config
	sheriff   *checkpoint.Sheriff
	agent     checkpoint.SheriffAgent
	strategy  string
	merchants []normalizedMerchant
	names     []string
}

func normalizeSpec(spec SessionSpec) (normalizedSpec, error) {
	var out normalizedSpec

	cfg := checkpoint.DefaultConfig()
	if spec.Rounds > 0 {
		cfg.Rounds = spec.Rounds
	}
	if spec.MaxHaggleRounds > 0 {
		cfg.MaxNegotiationRounds = spec.MaxHaggleRounds
	}
	cfg.Seed = seedFromSpec(spec.RNG)

	if len(spec.Merchants) == 0 {
		return out, &ReplayError{StepIndex: -1, Reason: "invalid_merchants", Message: "at least 1 merchant is required"}
	}
	cfg.MerchantCount = len(spec.Merchants)

	out.strategy = strings.TrimSpace(spec.Sheriff.Strategy)
	if out.strategy == "" {
		out.strategy = "smart"
	}
	agent, ok := policy.SheriffAgentByName(out.strategy)
	if !ok {
		return out, &ReplayError{
			StepIndex: -1,
			Reason:    "unknown_strategy",
			Message:   fmt.Sprintf("unknown sheriff strategy %q", out.strategy),
		}
	}
	out.agent = agent

	name := strings.TrimSpace(spec.Sheriff.Name)
	if name == "" {
		name = "sheriff"
	}
	out.sheriff = checkpoint.NewSheriff(name)

	registry := policy.NewRegistry()
	if err := registry.LoadDefaults(); err != nil {
		return out, &ReplayError{StepIndex: -1, Reason: "roster_load_failed", Message: err.Error()}
	}
	if len(spec.Roster) > 0 {
		if err := registry.LoadFromJSON(spec.Roster); err != nil {
			return out, &ReplayError{StepIndex: -1, Reason: "invalid_roster", Message: err.Error()}
		}
	}

	// The same persona may appear more than once in the schedule; each entry
	// gets its own merchant instance with its own gold and history.
	for i, ms := range spec.Merchants {
		id := strings.TrimSpace(ms.Persona)
		persona := registry.Get(id)
		if persona == nil {
			return out, &ReplayError{
				StepIndex: int32(i),
				Reason:    "unknown_persona",
				Message:   fmt.Sprintf("persona %q not in roster", id),
			}
		}
		m, err := persona.Build()
		if err != nil {
			return out, &ReplayError{StepIndex: int32(i), Reason: "persona_build_failed", Message: err.Error()}
		}
		out.merchants = append(out.merchants, normalizedMerchant{merchant: m, policy: persona.Policy()})
		out.names = append(out.names, m.Name)
	}

	out.cfg = cfg
	return out, nil
}

func seedFromSpec(rng *RNGSpec) int64 {
	if rng == nil {
		return 0
	}
	return rng.Seed
}

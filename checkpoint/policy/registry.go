package policy

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"nottingham-lite/checkpoint"
)

//go:embed personas.json
var defaultPersonas []byte

//go:embed persona_schema.json
var personaSchema string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
)

func personaJSONSchema() *jsonschema.Schema {
	schemaOnce.Do(func() {
		compiledSchema = jsonschema.MustCompileString("persona_schema.json", personaSchema)
	})
	return compiledSchema
}

// MerchantPersona is one roster entry. Personality sliders use the same
// 0..10 scale as the engine.
type MerchantPersona struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Tier        string   `json:"tier"`
	Intro       string   `json:"intro"`
	TellsHonest []string `json:"tells_honest"`
	TellsLying  []string `json:"tells_lying"`

	BluffSkill    int `json:"bluff_skill"`
	RiskTolerance int `json:"risk_tolerance"`
	Greed         int `json:"greed"`
	HonestyBias   int `json:"honesty_bias"`
}

// Build constructs a validated engine merchant from the persona.
func (p *MerchantPersona) Build() (*checkpoint.Merchant, error) {
	m, err := checkpoint.NewMerchant(p.ID, p.Name, p.BluffSkill, p.RiskTolerance, p.Greed, p.HonestyBias)
	if err != nil {
		return nil, err
	}
	m.Role = p.Role
	m.Tier = tierByName(p.Tier)
	m.Intro = p.Intro
	m.TellsHonest = p.TellsHonest
	m.TellsLying = p.TellsLying
	return m, nil
}

// Policy returns the declaration policy matching the persona's role.
func (p *MerchantPersona) Policy() checkpoint.DeclarationPolicy {
	return ForRole(p.Role)
}

// ForRole maps a roster role tag to a declaration policy. Unknown roles get
// the tiered default.
func ForRole(role string) checkpoint.DeclarationPolicy {
	switch role {
	case "broker":
		return BrokerPolicy{}
	case "simple":
		return DefaultPolicy{}
	}
	return TieredPolicy{}
}

func tierByName(name string) checkpoint.MerchantTier {
	switch name {
	case "medium":
		return checkpoint.TierMedium
	case "hard":
		return checkpoint.TierHard
	}
	return checkpoint.TierEasy
}

// PersonaRegistry holds the merchant roster.
type PersonaRegistry struct {
	mu       sync.RWMutex
	personas map[string]*MerchantPersona
}

func NewRegistry() *PersonaRegistry {
	return &PersonaRegistry{personas: make(map[string]*MerchantPersona)}
}

// LoadDefaults loads the embedded roster.
func (r *PersonaRegistry) LoadDefaults() error {
	return r.LoadFromJSON(defaultPersonas)
}

// LoadFromFile loads personas from a JSON file.
func (r *PersonaRegistry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read personas file: %w", err)
	}
	return r.LoadFromJSON(data)
}

// LoadFromJSON loads personas from raw JSON bytes. The document is checked
// against the roster schema before anything is registered, so a bad file
// never half-loads.
func (r *PersonaRegistry) LoadFromJSON(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse personas JSON: %w", err)
	}
	if err := personaJSONSchema().Validate(doc); err != nil {
		return fmt.Errorf("validate personas: %w", err)
	}

	var list []*MerchantPersona
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse personas JSON: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range list {
		if p.ID == "" {
			continue
		}
		r.personas[p.ID] = p
	}
	return nil
}

// Get returns a persona by ID.
func (r *PersonaRegistry) Get(id string) *MerchantPersona {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.personas[id]
}

// All returns the roster sorted by ID.
func (r *PersonaRegistry) All() []*MerchantPersona {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*MerchantPersona, 0, len(r.personas))
	for _, p := range r.personas {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByTier returns all personas of the given tier, sorted by ID.
func (r *PersonaRegistry) ByTier(tier checkpoint.MerchantTier) []*MerchantPersona {
	var out []*MerchantPersona
	for _, p := range r.All() {
		if tierByName(p.Tier) == tier {
			out = append(out, p)
		}
	}
	return out
}

// Count returns the number of registered personas.
func (r *PersonaRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.personas)
}

// BuildAll constructs merchants for the whole roster.
func (r *PersonaRegistry) BuildAll() ([]*checkpoint.Merchant, error) {
	var out []*checkpoint.Merchant
	for _, p := range r.All() {
		m, err := p.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

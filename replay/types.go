package replay

import "encoding/json"

// SessionSpec describes one full checkpoint shift to simulate: the sheriff,
// the merchant roster and its round schedule, and the RNG seed. Equal specs
// produce equal tapes.
type SessionSpec struct {
	Rounds          int            `json:"rounds"`
	MaxHaggleRounds int            `json:"max_haggle_rounds,omitempty"`
	Sheriff         SheriffSpec    `json:"sheriff"`
	Merchants       []MerchantSpec `json:"merchants"`

	// Roster, when present, is a persona document in the registry's JSON
	// format. Its entries are layered on top of the built-in roster before
	// merchant ids are resolved.
	Roster json.RawMessage `json:"roster,omitempty"`

	RNG *RNGSpec `json:"rng,omitempty"`
}

type SheriffSpec struct {
	Name     string `json:"name,omitempty"`
	Strategy string `json:"strategy"`
}

// MerchantSpec names a persona from the registry. Merchants cross the gate
// in spec order, wrapping around when there are more rounds than merchants.
type MerchantSpec struct {
	Persona string `json:"persona"`
}

type RNGSpec struct {
	Seed int64 `json:"seed"`
}

type SessionTape struct {
	TapeVersion int         `json:"tape_version"`
	SessionID   string      `json:"session_id"`
	Events      []TapeEvent `json:"events"`
}

type TapeEvent struct {
	Type  string        `json:"type"`
	Seq   uint64        `json:"seq"`
	Start *SessionStart `json:"session_start,omitempty"`
	Round *RoundRecord  `json:"round,omitempty"`
	End   *SessionEnd   `json:"session_end,omitempty"`
}

type SessionStart struct {
	Rounds          int      `json:"rounds"`
	Seed            int64    `json:"seed"`
	SheriffName     string   `json:"sheriff_name"`
	SheriffStrategy string   `json:"sheriff_strategy"`
	Merchants       []string `json:"merchants"`
}

// RoundRecord is the resolved outcome of one merchant crossing, with enough
// state echoed back that a viewer can render the round without the engine.
type RoundRecord struct {
	Round         int      `json:"round"`
	Merchant      string   `json:"merchant"`
	Strategy      string   `json:"strategy"`
	DeclaredGood  string   `json:"declared_good"`
	DeclaredCount int      `json:"declared_count"`
	ActualIDs     []string `json:"actual_ids"`
	Lie           bool     `json:"lie"`

	BribeOffered int    `json:"bribe_offered,omitempty"`
	BribePaid    int    `json:"bribe_paid,omitempty"`
	Proactive    bool   `json:"proactive,omitempty"`
	Outcome      string `json:"outcome"`

	Opened         bool     `json:"opened"`
	CaughtLie      bool     `json:"caught_lie"`
	ConfiscatedIDs []string `json:"confiscated_ids,omitempty"`
	Penalty        int      `json:"penalty,omitempty"`
	Earned         int      `json:"earned"`

	MerchantGold int `json:"merchant_gold"`
	SheriffGold  int `json:"sheriff_gold"`
	Reputation   int `json:"reputation"`
}

type SessionEnd struct {
	Rating       string `json:"rating"`
	Title        string `json:"title"`
	SheriffGold  int    `json:"sheriff_gold"`
	Reputation   int    `json:"reputation"`
	Inspections  int    `json:"inspections"`
	LiesCaught   int    `json:"lies_caught"`
	BribesTaken  int    `json:"bribes_taken"`
	BribeIncome  int    `json:"bribe_income"`
	AccuracyPct  int    `json:"accuracy_pct"`
	FinalPattern string `json:"final_pattern"`
}

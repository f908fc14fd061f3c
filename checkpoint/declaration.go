package checkpoint

import (
	"fmt"

	"nottingham-lite/goods"
)

// Declaration is what a merchant claims to carry: a single good type and a
// count. Only legal goods may be declared.
type Declaration struct {
	GoodID string `json:"good_id"`
	Count  int    `json:"count"`
}

func (d Declaration) String() string {
	return fmt.Sprintf("%d x %s", d.Count, d.GoodID)
}

// DeclaredValue returns the market value of the declaration if it were true.
func (d Declaration) DeclaredValue() (int, error) {
	g, err := goods.ByID(d.GoodID)
	if err != nil {
		return 0, err
	}
	return g.Value * d.Count, nil
}

// IsHonest reports whether the bag exactly matches the declaration: the
// count is right and every item is the declared good. Anything else is a
// lie, however partial.
func IsHonest(bag []goods.Good, decl Declaration) bool {
	if len(bag) != decl.Count {
		return false
	}
	for _, g := range bag {
		if g.ID != decl.GoodID {
			return false
		}
	}
	return true
}

// SeparateDeclared splits the bag into the truthfully declared subset and
// everything else. The first Count items matching the declared id count as
// declared; surplus matching items beyond Count are undeclared too.
func SeparateDeclared(bag []goods.Good, decl Declaration) (declared, undeclared []goods.Good) {
	remaining := decl.Count
	for _, g := range bag {
		if g.ID == decl.GoodID && remaining > 0 {
			declared = append(declared, g)
			remaining--
		} else {
			undeclared = append(undeclared, g)
		}
	}
	return declared, undeclared
}

// DeclarationPlan is a full round scenario: what the merchant claims and
// what it actually carries.
type DeclarationPlan struct {
	Declaration Declaration
	Actual      []goods.Good
	Lie         bool
	Strategy    string

	// BribeOffer, when positive, is a policy-computed proactive bribe that
	// overrides the merchant's own sizing.
	BribeOffer int
}

// SheriffStats summarizes observed sheriff behavior for merchant policies.
type SheriffStats struct {
	InspectionRate  float64
	CatchRate       float64
	BribeAcceptRate float64
	ObservedRounds  int
}

// DeclarationContext carries everything a declaration policy may consult.
type DeclarationContext struct {
	Merchant *Merchant
	History  []InspectionEvent
	Stats    SheriffStats
	Round    int
}

// DeclarationPolicy builds a round scenario for a merchant. Implementations
// live in the policy package.
type DeclarationPolicy interface {
	BuildDeclaration(d Dice, ctx DeclarationContext) DeclarationPlan
}

// ValidatePlan rejects plans that break the table rules before they reach
// the inspection step.
func ValidatePlan(p DeclarationPlan) error {
	g, err := goods.ByID(p.Declaration.GoodID)
	if err != nil {
		return err
	}
	if g.IsContraband() {
		return ErrInvalidState(fmt.Sprintf("cannot declare contraband %q", g.ID))
	}
	if p.Declaration.Count <= 0 || p.Declaration.Count > BagLimit {
		return ErrInvalidState(fmt.Sprintf("declared count %d outside 1..%d", p.Declaration.Count, BagLimit))
	}
	if len(p.Actual) == 0 {
		return ErrEmptyBag
	}
	if len(p.Actual) > BagLimit {
		return ErrInvalidState(fmt.Sprintf("bag of %d exceeds limit %d", len(p.Actual), BagLimit))
	}
	for _, item := range p.Actual {
		if _, err := goods.ByID(item.ID); err != nil {
			return err
		}
	}
	return nil
}

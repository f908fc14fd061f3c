package goods

import "fmt"

// Kind 分类: legal or contraband.
type Kind byte

const (
	KindLegal      Kind = 0
	KindContraband Kind = 1
)

var KindDictionary = map[Kind]string{
	KindLegal:      "legal",
	KindContraband: "contraband",
}

func (k Kind) String() string { return KindDictionary[k] }

// Good is a single tradeable good type (e.g. apple, silk).
// Immutable; the catalog below is the only source of instances.
type Good struct {
	ID    string
	Name  string
	Kind  Kind
	Value int // base gold value when delivered
}

func (g Good) IsLegal() bool      { return g.Kind == KindLegal }
func (g Good) IsContraband() bool { return g.Kind == KindContraband }

func (g Good) String() string { return g.ID }

// Base values per good type.
const (
	AppleValue    = 2
	CheeseValue   = 3
	BreadValue    = 3
	ChickenValue  = 4
	SilkValue     = 8
	PepperValue   = 8
	MeadValue     = 10
	CrossbowValue = 15
)

var (
	Apple   = Good{ID: "apple", Name: "Apple", Kind: KindLegal, Value: AppleValue}
	Cheese  = Good{ID: "cheese", Name: "Cheese", Kind: KindLegal, Value: CheeseValue}
	Bread   = Good{ID: "bread", Name: "Bread", Kind: KindLegal, Value: BreadValue}
	Chicken = Good{ID: "chicken", Name: "Chicken", Kind: KindLegal, Value: ChickenValue}

	Silk     = Good{ID: "silk", Name: "Silk", Kind: KindContraband, Value: SilkValue}
	Pepper   = Good{ID: "pepper", Name: "Pepper", Kind: KindContraband, Value: PepperValue}
	Mead     = Good{ID: "mead", Name: "Mead", Kind: KindContraband, Value: MeadValue}
	Crossbow = Good{ID: "crossbow", Name: "Crossbow", Kind: KindContraband, Value: CrossbowValue}
)

var AllLegal = []Good{Apple, Cheese, Bread, Chicken}

var AllContraband = []Good{Silk, Pepper, Mead, Crossbow}

var AllGoods = []Good{Apple, Cheese, Bread, Chicken, Silk, Pepper, Mead, Crossbow}

var byID = func() map[string]Good {
	m := make(map[string]Good, len(AllGoods))
	for _, g := range AllGoods {
		m[g.ID] = g
	}
	return m
}()

// UnknownGoodError reports a good id absent from the catalog.
type UnknownGoodError struct {
	ID string
}

func (e *UnknownGoodError) Error() string {
	return fmt.Sprintf("unknown good %q", e.ID)
}

// ByID looks up a good in the catalog. Lookups never fail for valid ids.
func ByID(id string) (Good, error) {
	g, ok := byID[id]
	if !ok {
		return Good{}, &UnknownGoodError{ID: id}
	}
	return g, nil
}

// MustByID is for catalog-constant ids known at compile time.
func MustByID(id string) Good {
	g, err := ByID(id)
	if err != nil {
		panic(err)
	}
	return g
}

// FromIDs resolves a slice of ids against the catalog.
func FromIDs(ids []string) ([]Good, error) {
	out := make([]Good, 0, len(ids))
	for _, id := range ids {
		g, err := ByID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// IDs projects a bag to its good ids, preserving order. An empty bag maps
// to nil so records carrying the ids survive a JSON round trip unchanged.
func IDs(bag []Good) []string {
	if len(bag) == 0 {
		return nil
	}
	out := make([]string, len(bag))
	for i, g := range bag {
		out[i] = g.ID
	}
	return out
}

// TotalValue sums base values over a bag.
func TotalValue(bag []Good) int {
	total := 0
	for _, g := range bag {
		total += g.Value
	}
	return total
}

// ContrabandValue sums base values of contraband items only.
func ContrabandValue(bag []Good) int {
	total := 0
	for _, g := range bag {
		if g.IsContraband() {
			total += g.Value
		}
	}
	return total
}

// HasContraband reports whether any item in the bag is contraband.
func HasContraband(bag []Good) bool {
	for _, g := range bag {
		if g.IsContraband() {
			return true
		}
	}
	return false
}

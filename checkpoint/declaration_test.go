package checkpoint

import (
	"errors"
	"testing"

	"nottingham-lite/goods"
)

func TestIsHonest(t *testing.T) {
	cases := []struct {
		name string
		bag  []string
		decl Declaration
		want bool
	}{
		{"exact match", []string{"apple", "apple"}, Declaration{GoodID: "apple", Count: 2}, true},
		{"count short", []string{"apple"}, Declaration{GoodID: "apple", Count: 2}, false},
		{"count over", []string{"apple", "apple", "apple"}, Declaration{GoodID: "apple", Count: 2}, false},
		{"wrong good", []string{"cheese", "cheese"}, Declaration{GoodID: "apple", Count: 2}, false},
		{"hidden contraband", []string{"apple", "silk"}, Declaration{GoodID: "apple", Count: 2}, false},
	}
	for _, tc := range cases {
		bag := bagOf(t, tc.bag...)
		if got := IsHonest(bag, tc.decl); got != tc.want {
			t.Errorf("%s: IsHonest=%v want %v", tc.name, got, tc.want)
		}
	}
}

func TestSeparateDeclaredSurplus(t *testing.T) {
	bag := bagOf(t, "apple", "silk", "apple", "apple")
	declared, undeclared := SeparateDeclared(bag, Declaration{GoodID: "apple", Count: 2})

	if len(declared) != 2 {
		t.Fatalf("want 2 declared apples, got %v", declared)
	}
	if len(undeclared) != 2 {
		t.Fatalf("want silk plus the surplus apple undeclared, got %v", undeclared)
	}
	if undeclared[0].ID != "silk" || undeclared[1].ID != "apple" {
		t.Fatalf("undeclared order must follow the bag: %v", undeclared)
	}
}

func TestValidatePlan(t *testing.T) {
	legal := func(n int) []goods.Good {
		bag := make([]goods.Good, n)
		for i := range bag {
			bag[i] = goods.Apple
		}
		return bag
	}

	valid := DeclarationPlan{
		Declaration: Declaration{GoodID: "apple", Count: 3},
		Actual:      legal(3),
	}
	if err := ValidatePlan(valid); err != nil {
		t.Fatalf("valid plan rejected: %v", err)
	}

	cases := []struct {
		name string
		plan DeclarationPlan
		ok   func(error) bool
	}{
		{
			"unknown declared good",
			DeclarationPlan{Declaration: Declaration{GoodID: "rubies", Count: 1}, Actual: legal(1)},
			func(err error) bool { var ug *goods.UnknownGoodError; return errors.As(err, &ug) },
		},
		{
			"declared contraband",
			DeclarationPlan{Declaration: Declaration{GoodID: "silk", Count: 1}, Actual: legal(1)},
			func(err error) bool { var is InvalidStateError; return errors.As(err, &is) },
		},
		{
			"zero count",
			DeclarationPlan{Declaration: Declaration{GoodID: "apple", Count: 0}, Actual: legal(1)},
			func(err error) bool { var is InvalidStateError; return errors.As(err, &is) },
		},
		{
			"count over bag limit",
			DeclarationPlan{Declaration: Declaration{GoodID: "apple", Count: BagLimit + 1}, Actual: legal(1)},
			func(err error) bool { var is InvalidStateError; return errors.As(err, &is) },
		},
		{
			"empty bag",
			DeclarationPlan{Declaration: Declaration{GoodID: "apple", Count: 1}},
			func(err error) bool { return errors.Is(err, ErrEmptyBag) },
		},
		{
			"bag over limit",
			DeclarationPlan{Declaration: Declaration{GoodID: "apple", Count: 1}, Actual: legal(BagLimit + 1)},
			func(err error) bool { var is InvalidStateError; return errors.As(err, &is) },
		},
		{
			"unknown item in bag",
			DeclarationPlan{Declaration: Declaration{GoodID: "apple", Count: 1}, Actual: []goods.Good{{ID: "rubies"}}},
			func(err error) bool { var ug *goods.UnknownGoodError; return errors.As(err, &ug) },
		},
	}
	for _, tc := range cases {
		err := ValidatePlan(tc.plan)
		if err == nil {
			t.Errorf("%s: expected an error", tc.name)
			continue
		}
		if !tc.ok(err) {
			t.Errorf("%s: wrong error type: %v", tc.name, err)
		}
	}
}

func TestDeclaredValue(t *testing.T) {
	v, err := Declaration{GoodID: "cheese", Count: 4}.DeclaredValue()
	if err != nil {
		t.Fatalf("DeclaredValue failed: %v", err)
	}
	if v != 4*goods.CheeseValue {
		t.Fatalf("want %d, got %d", 4*goods.CheeseValue, v)
	}
	if _, err := (Declaration{GoodID: "rubies", Count: 1}).DeclaredValue(); err == nil {
		t.Fatalf("unknown good must error")
	}
}

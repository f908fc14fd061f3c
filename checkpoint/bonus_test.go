package checkpoint

import (
	"testing"

	"nottingham-lite/goods"
)

func TestCalculateContrabandBonus(t *testing.T) {
	bag := bagOf(t, "apple", "cheese", "silk", "silk", "silk", "mead")
	b := CalculateContrabandBonus(bag)

	if b.LegalValue != goods.AppleValue+goods.CheeseValue {
		t.Fatalf("legal value = %d", b.LegalValue)
	}

	silk := b.Sets["silk"]
	if silk.Count != 3 || silk.Multiplier != 2.0 {
		t.Fatalf("silk set %+v, want count 3 x2.0", silk)
	}
	if silk.BaseValue != 3*goods.SilkValue || silk.BonusValue != 2*3*goods.SilkValue {
		t.Fatalf("silk payout %+v", silk)
	}

	mead := b.Sets["mead"]
	if mead.Count != 1 || mead.Multiplier != 1.0 || mead.BonusValue != goods.MeadValue {
		t.Fatalf("single mead must pay face value: %+v", mead)
	}

	wantBase := b.LegalValue + 3*goods.SilkValue + goods.MeadValue
	wantBonus := b.LegalValue + 6*goods.SilkValue + goods.MeadValue
	if b.BaseValue != wantBase || b.BonusValue != wantBonus {
		t.Fatalf("totals base=%d bonus=%d, want %d/%d", b.BaseValue, b.BonusValue, wantBase, wantBonus)
	}
	if b.BonusAmount() != 3*goods.SilkValue {
		t.Fatalf("bonus amount = %d", b.BonusAmount())
	}
}

func TestCalculateContrabandBonusLegalOnly(t *testing.T) {
	bag := bagOf(t, "apple", "bread")
	b := CalculateContrabandBonus(bag)
	if b.BonusAmount() != 0 || b.BaseValue != b.LegalValue || len(b.Sets) != 0 {
		t.Fatalf("legal bag must carry no bonus: %+v", b)
	}
}

func TestBestContrabandForSet(t *testing.T) {
	if _, _, ok := BestContrabandForSet(nil); ok {
		t.Fatalf("empty contraband has no best set")
	}

	// Count wins over value.
	id, count, ok := BestContrabandForSet(bagOf(t, "silk", "silk", "crossbow"))
	if !ok || id != "silk" || count != 2 {
		t.Fatalf("got %s x%d", id, count)
	}

	// Equal counts: value breaks the tie.
	id, count, ok = BestContrabandForSet(bagOf(t, "silk", "crossbow"))
	if !ok || id != "crossbow" || count != 1 {
		t.Fatalf("tie must go to the crossbow, got %s x%d", id, count)
	}
}

func TestShouldRedrawForSet(t *testing.T) {
	oneSilk := bagOf(t, "silk", "apple", "apple", "apple", "apple")
	twoSilk := bagOf(t, "silk", "silk", "apple", "apple", "apple")
	threeSilk := bagOf(t, "silk", "silk", "silk", "apple", "apple")

	cases := []struct {
		name        string
		hand        []goods.Good
		risk, greed int
		want        bool
		wantN       int
	}{
		{"timid greed never redraws", twoSilk, 10, 5, false, 0},
		{"single needs high greed and risk", oneSilk, 7, 8, true, 3},
		{"single refused at lower risk", oneSilk, 6, 8, false, 0},
		{"pair has a lower bar", twoSilk, 6, 7, true, 2},
		{"triple needs near-maximal sliders", threeSilk, 8, 9, true, 1},
		{"triple refused below the bar", threeSilk, 7, 9, false, 0},
		{"no contraband", bagOf(t, "apple", "cheese"), 10, 10, false, 0},
	}
	for _, tc := range cases {
		redraw, n, id := ShouldRedrawForSet(tc.hand, tc.risk, tc.greed)
		if redraw != tc.want || n != tc.wantN {
			t.Errorf("%s: redraw=%v n=%d", tc.name, redraw, n)
			continue
		}
		if redraw && id != "silk" {
			t.Errorf("%s: target %q, want silk", tc.name, id)
		}
	}

	// The swap count never exceeds the legal goods on hand.
	redraw, n, _ := ShouldRedrawForSet(bagOf(t, "silk", "apple"), 8, 9)
	if !redraw || n != 1 {
		t.Fatalf("swap count must clamp to legal goods: redraw=%v n=%d", redraw, n)
	}
}

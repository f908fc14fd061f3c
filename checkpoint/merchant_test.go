package checkpoint

import (
	"errors"
	"strings"
	"testing"

	"nottingham-lite/goods"
)

func TestNewMerchantValidatesPersonality(t *testing.T) {
	cases := []struct {
		name                       string
		bluff, risk, greed, honest int
		wantErr                    string
	}{
		{"bluff zero", 0, 5, 5, 5, "bluff_skill"},
		{"bluff over", 11, 5, 5, 5, "bluff_skill"},
		{"risk negative", 5, -1, 5, 5, "risk_tolerance"},
		{"greed over", 5, 5, 11, 5, "greed"},
		{"honesty over", 5, 5, 5, 11, "honesty_bias"},
	}
	for _, tc := range cases {
		_, err := NewMerchant("m", "Testa", tc.bluff, tc.risk, tc.greed, tc.honest)
		var ip InvalidPersonalityError
		if !errors.As(err, &ip) {
			t.Errorf("%s: expected InvalidPersonalityError, got %v", tc.name, err)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("%s: error %q does not name the slider", tc.name, err)
		}
	}

	if _, err := NewMerchant("m", "Testa", 1, 0, 0, 0); err != nil {
		t.Fatalf("boundary personality rejected: %v", err)
	}
	if _, err := NewMerchant("m", "Testa", 10, 10, 10, 10); err != nil {
		t.Fatalf("boundary personality rejected: %v", err)
	}
}

func TestProactiveBribeHardCapForHonestMerchants(t *testing.T) {
	// Maximal boldness and greed cannot push a very honest merchant past a
	// 10% bribe rate.
	m := mustMerchant(t, 5, 10, 10, 9)
	contraband := bagOf(t, "silk", "apple")
	declared := bagOf(t, "apple", "apple")

	d := NewDice(7)
	offered := 0
	const trials = 2000
	for i := 0; i < trials; i++ {
		if m.ShouldOfferProactiveBribe(d, contraband, declared) {
			offered++
		}
	}
	rate := float64(offered) / trials
	if rate > 0.13 {
		t.Fatalf("honest merchant bribed %.1f%% of the time, cap is 10%%", rate*100)
	}
	if offered == 0 {
		t.Fatalf("cap should not silence the merchant entirely")
	}
}

func TestProactiveBribeContrabandBeatsHonestBag(t *testing.T) {
	m := mustMerchant(t, 5, 5, 5, 2)
	contraband := bagOf(t, "silk", "apple")
	honest := bagOf(t, "apple", "apple")
	declared := bagOf(t, "apple", "apple")

	const trials = 3000
	d := NewDice(11)
	withContraband := 0
	for i := 0; i < trials; i++ {
		if m.ShouldOfferProactiveBribe(d, contraband, declared) {
			withContraband++
		}
	}
	d = NewDice(11)
	withHonest := 0
	for i := 0; i < trials; i++ {
		if m.ShouldOfferProactiveBribe(d, honest, declared) {
			withHonest++
		}
	}
	if withContraband <= withHonest {
		t.Fatalf("contraband must raise the bribe rate: contraband=%d honest=%d", withContraband, withHonest)
	}
}

func TestCalculateProactiveBribeStaysUnderContrabandValue(t *testing.T) {
	m := mustMerchant(t, 5, 2, 5, 5)
	bag := bagOf(t, "silk", "mead", "apple")
	declared := bagOf(t, "apple", "apple", "apple")
	cv := goods.ContrabandValue(bag)

	d := NewDice(3)
	for i := 0; i < 500; i++ {
		offer := m.CalculateProactiveBribe(d, bag, declared, 5)
		if offer < 0 || offer > cv-1 {
			t.Fatalf("contraband bribe %d outside 0..%d", offer, cv-1)
		}
		if offer > m.Gold {
			t.Fatalf("bribe %d exceeds merchant gold %d", offer, m.Gold)
		}
	}
}

func TestCalculateProactiveBribeLegalBagFloorsAtOne(t *testing.T) {
	m := mustMerchant(t, 5, 9, 5, 5)
	bag := bagOf(t, "apple", "cheese")
	declared := bagOf(t, "apple", "apple")

	d := NewDice(9)
	for i := 0; i < 500; i++ {
		offer := m.CalculateProactiveBribe(d, bag, declared, 1)
		if offer < 1 {
			t.Fatalf("legal-bag bribe must be at least 1, got %d", offer)
		}
	}
}

func TestCalculateBribeOfferBounds(t *testing.T) {
	d := NewDice(1)
	for _, greed := range []int{0, 5, 10} {
		for _, risk := range []int{0, 5, 10} {
			m := mustMerchant(t, 5, risk, greed, 5)
			for _, gv := range []int{1, 8, 30} {
				offer := m.CalculateBribeOffer(d, gv, 5)
				if offer < 1 || offer > m.Gold {
					t.Fatalf("offer %d outside 1..%d (greed=%d risk=%d gv=%d)", offer, m.Gold, greed, risk, gv)
				}
				if offer > gv {
					t.Fatalf("offer %d exceeds the value at stake %d", offer, gv)
				}
			}
		}
	}
}

func TestShouldAcceptCounter(t *testing.T) {
	m := mustMerchant(t, 5, 0, 0, 5)

	if m.ShouldAcceptCounter(&scriptDice{}, m.Gold+1, 5, 100) {
		t.Fatalf("cannot accept a demand beyond available gold")
	}

	// Ratio 0.2 sits under both thresholds.
	if !m.ShouldAcceptCounter(&scriptDice{floats: []float64{0.99}}, 4, 2, 20) {
		t.Fatalf("cheap demand relative to the goods must be accepted outright")
	}

	// Ratio 0.9 forces the stubborn fallback; careful merchants fold 15% of
	// the time.
	if m.ShouldAcceptCounter(&scriptDice{floats: []float64{0.2}}, 18, 5, 20) {
		t.Fatalf("draw above the fallback chance must refuse")
	}
	if !m.ShouldAcceptCounter(&scriptDice{floats: []float64{0.1}}, 18, 5, 20) {
		t.Fatalf("draw under the fallback chance must accept")
	}

	reckless := mustMerchant(t, 5, 9, 0, 5)
	if !reckless.ShouldAcceptCounter(&scriptDice{floats: []float64{0.45}}, 18, 5, 20) {
		t.Fatalf("reckless fallback chance is 50%%")
	}
}

func TestRaiseOfferStaysStrictlyBetween(t *testing.T) {
	for _, greed := range []int{0, 3, 7, 10} {
		m := mustMerchant(t, 5, 5, greed, 5)
		for demand := 3; demand <= 40; demand += 7 {
			last := demand / 2
			raised := m.RaiseOffer(demand, last)
			if raised <= last || raised >= demand {
				t.Fatalf("greed=%d: raise %d not strictly between %d and %d", greed, raised, last, demand)
			}
		}
	}

	// Adjacent values leave no room; the raise caps at demand-1.
	m := mustMerchant(t, 5, 5, 10, 5)
	if got := m.RaiseOffer(6, 5); got != 5 {
		t.Fatalf("no-room raise = %d, want 5", got)
	}
}

func TestRecordRoundResult(t *testing.T) {
	m := mustMerchant(t, 5, 5, 5, 5)
	bag := bagOf(t, "apple", "silk", "cheese")

	// Unopened bag: contraband smuggled, legal goods sold.
	m.RecordRoundResult(InspectionResult{Passed: bag}, bag)
	sum := m.SmuggleSummary()
	if sum.ContrabandPassedCount != 1 || sum.ContrabandPassedValue != goods.SilkValue {
		t.Fatalf("smuggle totals wrong: %+v", sum)
	}
	if sum.LegalSoldCount != 2 || sum.LegalSoldValue != goods.AppleValue+goods.CheeseValue {
		t.Fatalf("legal totals wrong: %+v", sum)
	}

	// Inspected but bluff held: only passed contraband counts, no legal sales.
	m2 := mustMerchant(t, 5, 5, 5, 5)
	m2.RecordRoundResult(InspectionResult{Inspected: true, Passed: bag}, bag)
	sum2 := m2.SmuggleSummary()
	if sum2.ContrabandPassedCount != 1 || sum2.LegalSoldCount != 0 {
		t.Fatalf("inspected round mishandled: %+v", sum2)
	}
}

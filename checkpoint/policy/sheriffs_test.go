package policy

import (
	"testing"

	"nottingham-lite/checkpoint"
)

func viewWithBribe(offered, declaredValue int) checkpoint.EncounterView {
	return checkpoint.EncounterView{
		MerchantName:  "Testa",
		Declaration:   checkpoint.Declaration{GoodID: "apple", Count: 2},
		DeclaredValue: declaredValue,
		BribeOffered:  offered,
		Proactive:     offered > 0,
	}
}

func TestCorruptSheriff(t *testing.T) {
	d := &scriptDice{}
	if got := (CorruptSheriff{}).Decide(d, viewWithBribe(5, 10)); !got.AcceptBribe || got.Inspect {
		t.Fatalf("corrupt sheriff must pocket every bribe: %+v", got)
	}
	if got := (CorruptSheriff{}).Decide(d, viewWithBribe(0, 10)); got.Inspect || got.AcceptBribe || got.Threaten {
		t.Fatalf("corrupt sheriff waves everyone else through: %+v", got)
	}
	if got := (CorruptSheriff{}).RespondToBribe(d, checkpoint.NegotiationView{Offer: 1}); got.Action != checkpoint.BribeAccept {
		t.Fatalf("corrupt sheriff takes any negotiated offer: %+v", got)
	}
}

func TestStrictInspectorSheriff(t *testing.T) {
	d := &scriptDice{}
	if got := (StrictInspectorSheriff{}).Decide(d, viewWithBribe(20, 10)); !got.Inspect || got.AcceptBribe {
		t.Fatalf("strict inspector opens every bag: %+v", got)
	}
	if got := (StrictInspectorSheriff{}).RespondToBribe(d, checkpoint.NegotiationView{Offer: 50}); got.Action != checkpoint.BribeReject {
		t.Fatalf("strict inspector cannot be bought: %+v", got)
	}
}

func TestTriggerHappySheriff(t *testing.T) {
	d := &scriptDice{}
	if got := (TriggerHappySheriff{}).Decide(d, viewWithBribe(1, 10)); !got.Inspect {
		t.Fatalf("any bribe triggers an inspection: %+v", got)
	}
	if got := (TriggerHappySheriff{}).Decide(d, viewWithBribe(0, 10)); got.Inspect {
		t.Fatalf("no bribe, no inspection: %+v", got)
	}
}

func TestGreedySheriffDecide(t *testing.T) {
	// Half the declared value buys passage outright.
	if got := (GreedySheriff{}).Decide(&scriptDice{}, viewWithBribe(5, 10)); !got.AcceptBribe {
		t.Fatalf("50%% bribe refused: %+v", got)
	}
	// A token bribe gets the bag opened.
	if got := (GreedySheriff{}).Decide(&scriptDice{}, viewWithBribe(1, 10)); !got.Inspect {
		t.Fatalf("token bribe must trigger an inspection: %+v", got)
	}
	// The 40-50% band is a coin weighted toward taking the gold.
	if got := (GreedySheriff{}).Decide(&scriptDice{floats: []float64{0.5}}, viewWithBribe(4, 10)); !got.AcceptBribe {
		t.Fatalf("borderline bribe under the 0.7 draw: %+v", got)
	}
	if got := (GreedySheriff{}).Decide(&scriptDice{floats: []float64{0.9}}, viewWithBribe(4, 10)); !got.Inspect {
		t.Fatalf("borderline bribe over the 0.7 draw: %+v", got)
	}
	// No offer on the table: threaten 40% of the time.
	if got := (GreedySheriff{}).Decide(&scriptDice{floats: []float64{0.3}}, viewWithBribe(0, 10)); !got.Threaten {
		t.Fatalf("low draw must threaten: %+v", got)
	}
	if got := (GreedySheriff{}).Decide(&scriptDice{floats: []float64{0.6}}, viewWithBribe(0, 10)); got.Threaten || got.Inspect {
		t.Fatalf("high draw waves through: %+v", got)
	}
}

func TestGreedySheriffRespondToBribe(t *testing.T) {
	// Declared value: 2 apples = 4.
	view := checkpoint.NegotiationView{
		Offer:       1,
		Round:       1,
		Declaration: checkpoint.Declaration{GoodID: "apple", Count: 2},
	}
	got := (GreedySheriff{}).RespondToBribe(&scriptDice{floats: []float64{0.9}}, view)
	if got.Action != checkpoint.BribeCounter || got.Demand != 2 {
		t.Fatalf("low offer must be countered at half the declared value: %+v", got)
	}

	view.Offer = 2
	if got := (GreedySheriff{}).RespondToBribe(&scriptDice{}, view); got.Action != checkpoint.BribeAccept {
		t.Fatalf("half the declared value is enough: %+v", got)
	}

	view.Offer = 1
	view.Round = 3
	if got := (GreedySheriff{}).RespondToBribe(&scriptDice{floats: []float64{0.9}}, view); got.Action != checkpoint.BribeReject {
		t.Fatalf("late rounds end in rejection: %+v", got)
	}
}

func TestSmartSheriffReadsBribeRatios(t *testing.T) {
	// A bribe dwarfing the declaration is a confession.
	if got := (SmartSheriff{}).Decide(&scriptDice{}, viewWithBribe(5, 10)); !got.Inspect {
		t.Fatalf("outsized bribe must be inspected: %+v", got)
	}
	// A modest sweetener is usually pocketed.
	if got := (SmartSheriff{}).Decide(&scriptDice{floats: []float64{0.5}}, viewWithBribe(1, 10)); !got.AcceptBribe {
		t.Fatalf("small bribe under the 0.6 draw: %+v", got)
	}
	if got := (SmartSheriff{}).Decide(&scriptDice{floats: []float64{0.7}}, viewWithBribe(1, 10)); !got.Inspect {
		t.Fatalf("small bribe over the 0.6 draw: %+v", got)
	}
}

func TestSmartSheriffSuspectsRichDeclarations(t *testing.T) {
	// Base rate 0.45; declarations over 15 gold add 0.15.
	cheap := (SmartSheriff{}).Decide(&scriptDice{floats: []float64{0.5}}, viewWithBribe(0, 10))
	rich := (SmartSheriff{}).Decide(&scriptDice{floats: []float64{0.5}}, viewWithBribe(0, 20))
	if cheap.Inspect {
		t.Fatalf("0.5 draw against a 0.45 rate must pass")
	}
	if !rich.Inspect {
		t.Fatalf("0.5 draw against a 0.6 rate must inspect")
	}
}

func TestVengefulSheriffHoldsGrudges(t *testing.T) {
	caughtTwice := []checkpoint.InspectionEvent{
		{MerchantName: "Testa", Opened: true, CaughtLie: true},
		{MerchantName: "Testa", Opened: true, CaughtLie: true},
		{MerchantName: "Testa", Opened: true},
		{MerchantName: "Other", Opened: true, CaughtLie: true},
	}
	view := viewWithBribe(7, 10)
	view.History = caughtTwice

	// Lie rate 2/3: only bribes of 80%+ buy passage.
	if got := (VengefulSheriff{}).Decide(&scriptDice{}, view); !got.Inspect {
		t.Fatalf("a known liar's 70%% bribe is refused: %+v", got)
	}
	view.BribeOffered = 8
	if got := (VengefulSheriff{}).Decide(&scriptDice{}, view); !got.AcceptBribe {
		t.Fatalf("80%% meets a grudge's price: %+v", got)
	}

	clean := []checkpoint.InspectionEvent{
		{MerchantName: "Testa", Opened: true},
		{MerchantName: "Testa", Opened: true},
		{MerchantName: "Testa", Opened: true},
	}
	view = viewWithBribe(4, 10)
	view.History = clean
	if got := (VengefulSheriff{}).Decide(&scriptDice{}, view); !got.AcceptBribe {
		t.Fatalf("a clean record buys leniency: %+v", got)
	}

	// Unknown merchants get the default posture.
	view = viewWithBribe(0, 10)
	if got := (VengefulSheriff{}).Decide(&scriptDice{floats: []float64{0.5}}, view); got.Inspect {
		t.Fatalf("0.5 draw against the 0.4 default must pass: %+v", got)
	}
}

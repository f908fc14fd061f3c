package policy

import (
	"testing"

	"nottingham-lite/checkpoint"
)

func lieEvent(caught bool) checkpoint.InspectionEvent {
	return checkpoint.InspectionEvent{
		DeclaredGood: "apple",
		DeclaredCnt:  2,
		ActualIDs:    []string{"apple", "silk"},
		Opened:       caught,
		CaughtLie:    caught,
	}
}

func honestEvent(opened bool) checkpoint.InspectionEvent {
	return checkpoint.InspectionEvent{
		DeclaredGood: "apple",
		DeclaredCnt:  2,
		ActualIDs:    []string{"apple", "apple"},
		Opened:       opened,
	}
}

func TestCatchRate(t *testing.T) {
	if got := CatchRate(nil); got != 0.5 {
		t.Fatalf("no lies observed must default to 0.5, got %v", got)
	}
	if got := CatchRate([]checkpoint.InspectionEvent{honestEvent(true), honestEvent(false)}); got != 0.5 {
		t.Fatalf("honest-only history must default to 0.5, got %v", got)
	}

	history := []checkpoint.InspectionEvent{lieEvent(true), lieEvent(false), lieEvent(false)}
	got := CatchRate(history)
	if got < 0.33 || got > 0.34 {
		t.Fatalf("one catch in three lies = %v", got)
	}
}

func TestAnalyzeSheriff(t *testing.T) {
	p := AnalyzeSheriff(nil)
	if p.InspectionRate != 0.5 || p.CatchRate != 0.5 || p.TotalRounds != 0 {
		t.Fatalf("empty history must return priors: %+v", p)
	}

	history := []checkpoint.InspectionEvent{
		lieEvent(true),
		lieEvent(false),
		honestEvent(true),
		honestEvent(false),
	}
	p = AnalyzeSheriff(history)
	if p.TotalRounds != 4 || p.LiesCaught != 1 || p.LiesSuccessful != 1 || p.TruthsInspected != 1 {
		t.Fatalf("counters wrong: %+v", p)
	}
	if p.InspectionRate != 0.5 || p.CatchRate != 0.5 {
		t.Fatalf("rates wrong: %+v", p)
	}
}

func TestDetectCorruptSheriff(t *testing.T) {
	bribed := func(accepted bool) checkpoint.InspectionEvent {
		e := honestEvent(false)
		e.BribeOffered = 5
		e.BribeAccept = accepted
		return e
	}

	short := []checkpoint.InspectionEvent{bribed(true), bribed(true), bribed(true)}
	if DetectCorruptSheriff(short) {
		t.Fatalf("three events is not enough evidence")
	}

	taker := []checkpoint.InspectionEvent{
		bribed(true), bribed(true), bribed(true), honestEvent(false), honestEvent(true),
	}
	if !DetectCorruptSheriff(taker) {
		t.Fatalf("three of three bribes taken is corruption")
	}

	refuser := []checkpoint.InspectionEvent{
		bribed(true), bribed(true), bribed(false), honestEvent(false), honestEvent(true),
	}
	if DetectCorruptSheriff(refuser) {
		t.Fatalf("two of three is under the 90%% bar")
	}
}

func TestDetectAdaptiveSheriff(t *testing.T) {
	var flipped []checkpoint.InspectionEvent
	for i := 0; i < 5; i++ {
		flipped = append(flipped, honestEvent(true))
	}
	for i := 0; i < 5; i++ {
		flipped = append(flipped, honestEvent(false))
	}
	if !DetectAdaptiveSheriff(flipped) {
		t.Fatalf("a full posture flip must register")
	}

	var steady []checkpoint.InspectionEvent
	for i := 0; i < 10; i++ {
		steady = append(steady, honestEvent(i%2 == 0))
	}
	if DetectAdaptiveSheriff(steady) {
		t.Fatalf("a steady sheriff is not adaptive")
	}

	if DetectAdaptiveSheriff(flipped[:8]) {
		t.Fatalf("short histories carry no verdict")
	}
}

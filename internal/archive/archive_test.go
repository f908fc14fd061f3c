package archive

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"nottingham-lite/replay"
)

func TestWriteReadTapeRoundTrip(t *testing.T) {
	tape := generateTestTape(t)
	dir := t.TempDir()
	path := TapePath(dir, "session-1")

	if err := WriteTape(path, "session-1", tape); err != nil {
		t.Fatalf("WriteTape failed: %v", err)
	}

	header, loaded, err := ReadTape(path)
	if err != nil {
		t.Fatalf("ReadTape failed: %v", err)
	}
	if header.Version != 1 || header.SessionID != "session-1" {
		t.Fatalf("unexpected header: %+v", header)
	}
	if header.SavedAtMs == 0 {
		t.Fatalf("header missing timestamp")
	}
	if !reflect.DeepEqual(tape, loaded) {
		t.Fatalf("tape did not survive the round trip")
	}
}

func TestReadTapeRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad"+tapeExt)
	if err := writeRawFile(path, []byte("not a zstd stream")); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, _, err := ReadTape(path); err == nil {
		t.Fatalf("expected ReadTape to fail on a corrupt file")
	}
}

func TestListTapes(t *testing.T) {
	tape := generateTestTape(t)
	dir := t.TempDir()

	for _, id := range []string{"alpha", "beta"} {
		if err := WriteTape(TapePath(dir, id), id, tape); err != nil {
			t.Fatalf("WriteTape %s failed: %v", id, err)
		}
	}
	if err := writeRawFile(filepath.Join(dir, "notes.txt"), []byte("ignore me")); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ids, err := ListTapes(dir)
	if err != nil {
		t.Fatalf("ListTapes failed: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"alpha", "beta"}) {
		t.Fatalf("unexpected ids: %v", ids)
	}

	missing, err := ListTapes(filepath.Join(dir, "nope"))
	if err != nil || missing != nil {
		t.Fatalf("expected empty result for missing dir, got %v / %v", missing, err)
	}
}

func generateTestTape(t *testing.T) *replay.SessionTape {
	t.Helper()
	tape, err := replay.GenerateSessionTape(replay.SessionSpec{
		Rounds:  4,
		Sheriff: replay.SheriffSpec{Strategy: "strict_inspector"},
		Merchants: []replay.MerchantSpec{
			{Persona: "tomas"},
			{Persona: "garrick"},
		},
		RNG: &replay.RNGSpec{Seed: 99},
	})
	if err != nil {
		t.Fatalf("GenerateSessionTape failed: %v", err)
	}
	return tape
}

func writeRawFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"

	"nottingham-lite/checkpoint/policy"
	"nottingham-lite/internal/archive"
	"nottingham-lite/internal/ledger"
	"nottingham-lite/internal/tuning"
	"nottingham-lite/replay"
)

var defaultRoster = []string{"alys", "tomas", "mirella", "garrick", "silas_voss", "petra"}

func main() {
	var (
		tuningPath  = flag.String("tuning", "", "path to tuning yaml (flags override it)")
		seed        = flag.Int64("seed", 0, "base RNG seed (0 = time-based, non-reproducible)")
		sessions    = flag.Int("sessions", 1, "number of sessions to run")
		rounds      = flag.Int("rounds", 0, "rounds per session (0 = engine default)")
		strategy    = flag.String("sheriff", "smart", "sheriff strategy")
		sheriffName = flag.String("sheriff-name", "sheriff", "sheriff display name")
		merchants   = flag.String("merchants", "", "comma-separated persona ids (default: built-in roster)")
		rosterPath  = flag.String("roster", "", "path to a persona roster JSON file")
		dbPath      = flag.String("db", "", "sqlite path for the session ledger (empty = no persistence)")
		archiveDir  = flag.String("archive", "", "directory for compressed session tapes (empty = no archive)")
		listAgents  = flag.Bool("list-sheriffs", false, "print available sheriff strategies and exit")
	)
	flag.Parse()
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *listAgents {
		for _, name := range policy.SheriffStrategyNames() {
			fmt.Println(name)
		}
		return
	}

	cfg := tuning.Tuning{}
	if *tuningPath != "" {
		loaded, err := tuning.Load(*tuningPath)
		if err != nil {
			log.Fatalf("[Sim] Failed to load tuning: %v", err)
		}
		cfg = loaded
		log.Printf("[Sim] Tuning loaded from %s", *tuningPath)
	}
	applyFlagOverrides(&cfg, set, *seed, *sessions, *rounds, *strategy, *sheriffName, *merchants, *dbPath, *archiveDir, *rosterPath)

	if cfg.Sessions <= 0 {
		cfg.Sessions = 1
	}
	if len(cfg.Roster) == 0 {
		cfg.Roster = defaultRoster
	}

	var rosterDoc json.RawMessage
	if cfg.Storage.PersonaFile != "" {
		raw, err := os.ReadFile(cfg.Storage.PersonaFile)
		if err != nil {
			log.Fatalf("[Sim] Failed to read roster file: %v", err)
		}
		rosterDoc = raw
		log.Printf("[Sim] Personas layered from %s", cfg.Storage.PersonaFile)
	}

	var store *ledger.Store
	if cfg.Storage.DBPath != "" {
		var err error
		store, err = ledger.Open(cfg.Storage.DBPath)
		if err != nil {
			log.Fatalf("[Sim] Failed to open ledger: %v", err)
		}
		defer store.Close()
		log.Printf("[Sim] Ledger at %s", cfg.Storage.DBPath)
	}

	log.Printf("[Sim] Running %d session(s): sheriff=%s strategy=%s roster=%s seed=%d",
		cfg.Sessions, cfg.Sheriff.Name, cfg.Sheriff.Strategy, strings.Join(cfg.Roster, ","), cfg.Seed)

	ratings := map[string]int{}
	totalGold, totalAccuracy := 0, 0
	for i := 0; i < cfg.Sessions; i++ {
		spec := cfg.SessionSpec(i)
		spec.Roster = rosterDoc

		tape, err := replay.GenerateSessionTape(spec)
		if err != nil {
			log.Fatalf("[Sim] Session %d failed: %v", i+1, err)
		}
		end := sessionEnd(tape)
		if end == nil {
			log.Fatalf("[Sim] Session %d produced no verdict", i+1)
		}

		sessionID := uuid.NewString()
		log.Printf("[Sim] Session %d (%s): rating=%s gold=%d rep=%d accuracy=%d%% bribes=%d",
			i+1, sessionID, end.Rating, end.SheriffGold, end.Reputation, end.AccuracyPct, end.BribesTaken)

		ratings[end.Rating]++
		totalGold += end.SheriffGold
		totalAccuracy += end.AccuracyPct

		if store != nil {
			if err := store.SaveTape(context.Background(), sessionID, tape); err != nil {
				log.Fatalf("[Sim] Failed to persist session %s: %v", sessionID, err)
			}
		}
		if cfg.Storage.ArchiveDir != "" {
			path := archive.TapePath(cfg.Storage.ArchiveDir, sessionID)
			if err := archive.WriteTape(path, sessionID, tape); err != nil {
				log.Fatalf("[Sim] Failed to archive session %s: %v", sessionID, err)
			}
		}
	}

	log.Printf("[Sim] Done: avg_gold=%d avg_accuracy=%d%%", totalGold/cfg.Sessions, totalAccuracy/cfg.Sessions)
	for _, rating := range sortedKeys(ratings) {
		log.Printf("[Sim]   %s: %d", rating, ratings[rating])
	}
}

// applyFlagOverrides layers flag values over the loaded tuning. A flag wins
// whenever it was passed on the command line, even when its value equals the
// flag default; unset flags leave the tuning value alone.
func applyFlagOverrides(cfg *tuning.Tuning, set map[string]bool, seed int64, sessions, rounds int, strategy, sheriffName, merchants, dbPath, archiveDir, rosterPath string) {
	if set["seed"] {
		cfg.Seed = seed
	}
	if set["sessions"] {
		cfg.Sessions = sessions
	}
	if set["rounds"] {
		cfg.Rounds = rounds
	}
	if set["sheriff"] || cfg.Sheriff.Strategy == "" {
		cfg.Sheriff.Strategy = strategy
	}
	if set["sheriff-name"] || cfg.Sheriff.Name == "" {
		cfg.Sheriff.Name = sheriffName
	}
	if set["merchants"] && merchants != "" {
		cfg.Roster = nil
		for _, id := range strings.Split(merchants, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.Roster = append(cfg.Roster, id)
			}
		}
	}
	if set["db"] {
		cfg.Storage.DBPath = dbPath
	}
	if set["archive"] {
		cfg.Storage.ArchiveDir = archiveDir
	}
	if set["roster"] {
		cfg.Storage.PersonaFile = rosterPath
	}
}

func sessionEnd(tape *replay.SessionTape) *replay.SessionEnd {
	for i := len(tape.Events) - 1; i >= 0; i-- {
		if tape.Events[i].End != nil {
			return tape.Events[i].End
		}
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

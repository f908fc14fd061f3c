package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"nottingham-lite/replay"
)

// SessionRecord is the summary row for one finished shift.
type SessionRecord struct {
	SessionID   string `db:"session_id" json:"session_id"`
	SheriffName string `db:"sheriff_name" json:"sheriff_name"`
	Strategy    string `db:"strategy" json:"strategy"`
	Seed        int64  `db:"seed" json:"seed"`
	Rounds      int    `db:"rounds" json:"rounds"`
	Rating      string `db:"rating" json:"rating"`
	Title       string `db:"title" json:"title"`
	SheriffGold int    `db:"sheriff_gold" json:"sheriff_gold"`
	Reputation  int    `db:"reputation" json:"reputation"`
	AccuracyPct int    `db:"accuracy_pct" json:"accuracy_pct"`

	PlayedAtMs  int64 `db:"played_at_ms" json:"played_at_ms"`
	CreatedAtMs int64 `db:"created_at_ms" json:"-"`
	UpdatedAtMs int64 `db:"updated_at_ms" json:"-"`
}

// RoundRecord is one stored merchant crossing. Good id lists are kept as
// JSON text so the row stays flat.
type RoundRecord struct {
	SessionID      string `db:"session_id" json:"session_id"`
	Round          int    `db:"round" json:"round"`
	Merchant       string `db:"merchant" json:"merchant"`
	Strategy       string `db:"strategy" json:"strategy"`
	DeclaredGood   string `db:"declared_good" json:"declared_good"`
	DeclaredCount  int    `db:"declared_count" json:"declared_count"`
	ActualIDs      string `db:"actual_ids" json:"actual_ids"`
	Lie            bool   `db:"lie" json:"lie"`
	BribeOffered   int    `db:"bribe_offered" json:"bribe_offered"`
	BribePaid      int    `db:"bribe_paid" json:"bribe_paid"`
	Proactive      bool   `db:"proactive" json:"proactive"`
	Outcome        string `db:"outcome" json:"outcome"`
	Opened         bool   `db:"opened" json:"opened"`
	CaughtLie      bool   `db:"caught_lie" json:"caught_lie"`
	ConfiscatedIDs string `db:"confiscated_ids" json:"confiscated_ids"`
	Penalty        int    `db:"penalty" json:"penalty"`
	Earned         int    `db:"earned" json:"earned"`
	MerchantGold   int    `db:"merchant_gold" json:"merchant_gold"`
	SheriffGold    int    `db:"sheriff_gold" json:"sheriff_gold"`
	Reputation     int    `db:"reputation" json:"reputation"`
}

// SaveTape writes one session tape under the given id, replacing any
// previous rows for that id. Older unsaved sessions past the recent limit
// are trimmed.
func (s *Store) SaveTape(ctx context.Context, sessionID string, tape *replay.SessionTape) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("empty session id")
	}
	if tape == nil || len(tape.Events) == 0 {
		return fmt.Errorf("empty tape")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var start *replay.SessionStart
	var end *replay.SessionEnd
	rounds := make([]RoundRecord, 0, len(tape.Events))
	for _, e := range tape.Events {
		switch {
		case e.Start != nil:
			start = e.Start
		case e.End != nil:
			end = e.End
		case e.Round != nil:
			rounds = append(rounds, roundToRecord(sessionID, e.Round))
		}
	}
	if start == nil {
		return fmt.Errorf("tape has no session start event")
	}

	nowMs := time.Now().UTC().UnixMilli()
	session := SessionRecord{
		SessionID:   sessionID,
		SheriffName: start.SheriffName,
		Strategy:    start.SheriffStrategy,
		Seed:        start.Seed,
		Rounds:      start.Rounds,
		PlayedAtMs:  nowMs,
		CreatedAtMs: nowMs,
		UpdatedAtMs: nowMs,
	}
	if end != nil {
		session.Rating = end.Rating
		session.Title = end.Title
		session.SheriffGold = end.SheriffGold
		session.Reputation = end.Reputation
		session.AccuracyPct = end.AccuracyPct
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
INSERT INTO checkpoint_sessions (
    session_id, sheriff_name, strategy, seed, rounds, rating, title,
    sheriff_gold, reputation, accuracy_pct, played_at_ms, created_at_ms, updated_at_ms
)
VALUES (
    :session_id, :sheriff_name, :strategy, :seed, :rounds, :rating, :title,
    :sheriff_gold, :reputation, :accuracy_pct, :played_at_ms, :created_at_ms, :updated_at_ms
)
ON CONFLICT (session_id) DO UPDATE
SET
    rating = excluded.rating,
    title = excluded.title,
    sheriff_gold = excluded.sheriff_gold,
    reputation = excluded.reputation,
    accuracy_pct = excluded.accuracy_pct,
    played_at_ms = excluded.played_at_ms,
    updated_at_ms = excluded.updated_at_ms
`, session)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM checkpoint_rounds WHERE session_id = ?`, sessionID); err != nil {
		return err
	}
	for _, r := range rounds {
		_, err := tx.NamedExecContext(ctx, `
INSERT INTO checkpoint_rounds (
    session_id, round, merchant, strategy, declared_good, declared_count,
    actual_ids, lie, bribe_offered, bribe_paid, proactive, outcome,
    opened, caught_lie, confiscated_ids, penalty, earned,
    merchant_gold, sheriff_gold, reputation
)
VALUES (
    :session_id, :round, :merchant, :strategy, :declared_good, :declared_count,
    :actual_ids, :lie, :bribe_offered, :bribe_paid, :proactive, :outcome,
    :opened, :caught_lie, :confiscated_ids, :penalty, :earned,
    :merchant_gold, :sheriff_gold, :reputation
)
`, r)
		if err != nil {
			return err
		}
	}

	if s.recentLimit > 0 {
		_, err = tx.ExecContext(ctx, `
DELETE FROM checkpoint_sessions
WHERE session_id IN (
    SELECT session_id
    FROM checkpoint_sessions
    ORDER BY played_at_ms DESC, session_id DESC
    LIMIT -1 OFFSET ?
)
`, s.recentLimit)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetSession returns the summary row for one session id.
func (s *Store) GetSession(ctx context.Context, sessionID string) (SessionRecord, error) {
	var out SessionRecord
	if strings.TrimSpace(sessionID) == "" {
		return out, ErrNotFound
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.db.GetContext(ctx, &out, `
SELECT session_id, sheriff_name, strategy, seed, rounds, rating, title,
       sheriff_gold, reputation, accuracy_pct, played_at_ms, created_at_ms, updated_at_ms
FROM checkpoint_sessions
WHERE session_id = ?
`, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, ErrNotFound
		}
		return out, err
	}
	return out, nil
}

// ListRecent returns finished sessions, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if ctx == nil {
		ctx = context.Background()
	}
	items := make([]SessionRecord, 0, limit)
	err := s.db.SelectContext(ctx, &items, `
SELECT session_id, sheriff_name, strategy, seed, rounds, rating, title,
       sheriff_gold, reputation, accuracy_pct, played_at_ms, created_at_ms, updated_at_ms
FROM checkpoint_sessions
ORDER BY played_at_ms DESC, session_id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetRounds returns every stored round for a session in order.
func (s *Store) GetRounds(ctx context.Context, sessionID string) ([]RoundRecord, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrNotFound
	}
	if ctx == nil {
		ctx = context.Background()
	}
	rounds := make([]RoundRecord, 0, 16)
	err := s.db.SelectContext(ctx, &rounds, `
SELECT session_id, round, merchant, strategy, declared_good, declared_count,
       actual_ids, lie, bribe_offered, bribe_paid, proactive, outcome,
       opened, caught_lie, confiscated_ids, penalty, earned,
       merchant_gold, sheriff_gold, reputation
FROM checkpoint_rounds
WHERE session_id = ?
ORDER BY round ASC
`, sessionID)
	if err != nil {
		return nil, err
	}
	if len(rounds) == 0 {
		return nil, ErrNotFound
	}
	return rounds, nil
}

func roundToRecord(sessionID string, r *replay.RoundRecord) RoundRecord {
	return RoundRecord{
		SessionID:      sessionID,
		Round:          r.Round,
		Merchant:       r.Merchant,
		Strategy:       r.Strategy,
		DeclaredGood:   r.DeclaredGood,
		DeclaredCount:  r.DeclaredCount,
		ActualIDs:      idsToJSON(r.ActualIDs),
		Lie:            r.Lie,
		BribeOffered:   r.BribeOffered,
		BribePaid:      r.BribePaid,
		Proactive:      r.Proactive,
		Outcome:        r.Outcome,
		Opened:         r.Opened,
		CaughtLie:      r.CaughtLie,
		ConfiscatedIDs: idsToJSON(r.ConfiscatedIDs),
		Penalty:        r.Penalty,
		Earned:         r.Earned,
		MerchantGold:   r.MerchantGold,
		SheriffGold:    r.SheriffGold,
		Reputation:     r.Reputation,
	}
}

func idsToJSON(ids []string) string {
	if len(ids) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

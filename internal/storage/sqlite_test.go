package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, _ := store.StartSession("ada")
	store.SaveRound(RoundResult{SessionID: id, Vitamin: "C", Placed: 2})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	rounds, err := store.RecentRounds(10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Errorf("Expected 1 round after reopen, got %d", len(rounds))
	}
}

func TestSessionLifecycle(t *testing.T) {
	store := openTemp(t)

	id, err := store.StartSession("ada")
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("session ID %q is not a UUID", id)
	}

	sess, err := store.SessionByID(id)
	if err != nil || sess == nil {
		t.Fatalf("SessionByID() = %v, %v", sess, err)
	}
	if sess.Player != "ada" || !sess.FinishedAt.IsZero() {
		t.Errorf("new session = %+v", sess)
	}

	if err := store.FinishSession(id, 7, 3); err != nil {
		t.Fatalf("FinishSession() failed: %v", err)
	}
	sess, _ = store.SessionByID(id)
	if sess.Rounds != 7 || sess.Mistakes != 3 {
		t.Errorf("finished session = %+v, expected 7 rounds, 3 mistakes", sess)
	}
	if sess.FinishedAt.IsZero() {
		t.Error("FinishedAt should be set")
	}
}

func TestFinishUnknownSession(t *testing.T) {
	store := openTemp(t)

	err := store.FinishSession("missing", 1, 0)
	if !errors.Is(err, ErrUnknownSession) {
		t.Errorf("FinishSession() = %v, expected ErrUnknownSession", err)
	}

	sess, err := store.SessionByID("missing")
	if err != nil || sess != nil {
		t.Errorf("SessionByID(missing) = %v, %v; expected nil, nil", sess, err)
	}
}

func TestFindSessionByPrefix(t *testing.T) {
	store := openTemp(t)

	first, _ := store.StartSession("ada")
	second, _ := store.StartSession("grace")
	for _, id := range []string{"feed0001", "feed0002"} {
		if _, err := store.db.Exec(`INSERT INTO sessions (id, player) VALUES (?, 'lin')`, id); err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}

	tests := []struct {
		name     string
		prefix   string
		player   string
		expected error
	}{
		{"full ID", first, "ada", nil},
		{"unique prefix", second[:8], "grace", nil},
		{"no match", "zzzzzzzz", "", ErrUnknownSession},
		{"empty", "", "", ErrUnknownSession},
		{"shared prefix", "feed", "", ErrAmbiguousSession},
		{"longer prefix", "feed0002", "lin", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess, err := store.FindSession(tc.prefix)
			if !errors.Is(err, tc.expected) {
				t.Fatalf("FindSession(%q) error = %v, expected %v", tc.prefix, err, tc.expected)
			}
			if tc.expected == nil && sess.Player != tc.player {
				t.Errorf("FindSession(%q) = %+v, expected player %s", tc.prefix, sess, tc.player)
			}
		})
	}
}

func TestRecentRoundsNewestFirst(t *testing.T) {
	store := openTemp(t)
	id, _ := store.StartSession("ada")

	for i, v := range []string{"A", "B12", "C", "D"} {
		_, err := store.SaveRound(RoundResult{
			SessionID:  id,
			Vitamin:    v,
			RoundIndex: i,
			Placed:     2,
			Mistakes:   i,
			Duration:   time.Duration(i+1) * 1500 * time.Millisecond,
		})
		if err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	rounds, err := store.RecentRounds(3)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(rounds))
	}
	if rounds[0].Vitamin != "D" || rounds[2].Vitamin != "B12" {
		t.Errorf("order = %s, %s, %s; expected D, C, B12", rounds[0].Vitamin, rounds[1].Vitamin, rounds[2].Vitamin)
	}
	if rounds[0].Duration != 6*time.Second {
		t.Errorf("Duration = %v, expected 6s", rounds[0].Duration)
	}
	if rounds[0].SessionID != id || rounds[0].Mistakes != 3 || rounds[0].RoundIndex != 3 {
		t.Errorf("round = %+v", rounds[0])
	}
}

func TestVitaminStats(t *testing.T) {
	store := openTemp(t)
	id, _ := store.StartSession("ada")

	results := []RoundResult{
		{Vitamin: "C", Mistakes: 2, Duration: 4 * time.Second},
		{Vitamin: "C", Mistakes: 0, Duration: 3 * time.Second},
		{Vitamin: "A", Mistakes: 1, Duration: 5 * time.Second},
	}
	for _, r := range results {
		r.SessionID = id
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	stats, err := store.VitaminStats()
	if err != nil {
		t.Fatalf("VitaminStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 vitamins, got %d", len(stats))
	}

	a, c := stats[0], stats[1]
	if a.Vitamin != "A" || c.Vitamin != "C" {
		t.Fatalf("stats should be ordered by vitamin, got %s, %s", a.Vitamin, c.Vitamin)
	}
	if c.Plays != 2 || c.Mistakes != 2 || c.AvgMistakes != 1 {
		t.Errorf("C stats = %+v", c)
	}
	if c.BestDuration != 3*time.Second {
		t.Errorf("BestDuration = %v, expected 3s", c.BestDuration)
	}
	if a.LastPlayed.IsZero() {
		t.Error("LastPlayed should be parsed")
	}
}

func TestVitaminStatsEmpty(t *testing.T) {
	store := openTemp(t)

	stats, err := store.VitaminStats()
	if err != nil {
		t.Fatalf("VitaminStats() failed: %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("Expected no stats, got %d", len(stats))
	}
}

func TestOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.vitamins/history.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".vitamins", "history.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}

func TestParseTime(t *testing.T) {
	ref := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		in       any
		expected time.Time
	}{
		{"time value", ref, ref},
		{"sqlite string", "2024-03-01 10:30:00", ref},
		{"rfc3339", "2024-03-01T10:30:00Z", ref},
		{"garbage", "yesterday", time.Time{}},
		{"nil", nil, time.Time{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseTime(tc.in); !got.Equal(tc.expected) {
				t.Errorf("parseTime(%v) = %v, expected %v", tc.in, got, tc.expected)
			}
		})
	}
}

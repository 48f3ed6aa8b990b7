package storage

import (
	"path/filepath"
	"testing"

	"github.com/haerye/jindo/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s := NewSQLiteStore(filepath.Join(t.TempDir(), "jindo.db"))
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_GetProgress_MissingReturnsDefaults(t *testing.T) {
	s := newTestSQLiteStore(t)

	p, err := s.GetProgress()
	if err != nil {
		t.Fatalf("Expected no error for a missing record, got %v", err)
	}
	if p.Goals["grammar"] != models.DefaultGrammarGoal {
		t.Errorf("Expected default grammar goal, got %d", p.Goals["grammar"])
	}
}

func TestSQLiteStore_ProgressRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)

	p := models.DefaultProgress()
	p.LastStudyDate = "2026-03-02"
	p.CompletedItems = 2
	p.CompletedItemKeys = []string{"hangul:g1", "grammar:u1"}
	p.Streak = 5
	if err := s.SaveProgress(p); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}

	got, err := s.GetProgress()
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if got.Streak != 5 || got.CompletedItems != 2 {
		t.Errorf("Round trip lost fields: %+v", got)
	}
}

func TestSQLiteStore_UpsertOverwritesRecord(t *testing.T) {
	s := newTestSQLiteStore(t)

	p := models.DefaultProgress()
	p.CompletedItems = 1
	if err := s.SaveProgress(p); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}
	p.CompletedItems = 7
	if err := s.SaveProgress(p); err != nil {
		t.Fatalf("Second SaveProgress failed: %v", err)
	}

	got, err := s.GetProgress()
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if got.CompletedItems != 7 {
		t.Errorf("Expected the record overwritten in place, got %d", got.CompletedItems)
	}
}

func TestSQLiteStore_GrammarMasteryRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)

	d := models.DefaultGrammarMastery()
	d.Units["u1"] = models.GrammarUnitEntry{ID: "u1", CategoryID: "particles", TimesStudied: 2}
	d.Categories["particles"] = models.GrammarCategoryAggregate{ID: "particles", Label: "Particles", StudiedUnits: 1, TotalStudies: 2}
	if err := s.SaveGrammarMastery(d); err != nil {
		t.Fatalf("SaveGrammarMastery failed: %v", err)
	}

	got, err := s.GetGrammarMastery()
	if err != nil {
		t.Fatalf("GetGrammarMastery failed: %v", err)
	}
	if got.Categories["particles"].TotalStudies != 2 {
		t.Errorf("Round trip lost aggregates: %+v", got.Categories["particles"])
	}
}

func TestSQLiteStore_WordsTable(t *testing.T) {
	s := newTestSQLiteStore(t)

	w := models.VocabWord{ID: "w1", Text: "사과", Meaning: "apple", Topic: "food"}
	if err := s.PutWord(w); err != nil {
		t.Fatalf("PutWord failed: %v", err)
	}

	// Upsert keeps the row unique.
	w.Meaning = "apple (fruit)"
	if err := s.PutWord(w); err != nil {
		t.Fatalf("PutWord upsert failed: %v", err)
	}

	got, ok, err := s.GetWord("w1")
	if err != nil || !ok {
		t.Fatalf("GetWord failed: ok=%v err=%v", ok, err)
	}
	if got.Meaning != "apple (fruit)" {
		t.Errorf("Expected updated meaning, got %s", got.Meaning)
	}

	all, err := s.GetAllWords()
	if err != nil {
		t.Fatalf("GetAllWords failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 word after upsert, got %d", len(all))
	}
}

func TestSQLiteStore_InitRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jindo.db")
	s := NewSQLiteStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("First Init failed: %v", err)
	}
	defer s.Close()

	other := NewSQLiteStore(path)
	if err := other.Init(); err == nil {
		t.Errorf("Expected Init to refuse an existing database file")
	}
}

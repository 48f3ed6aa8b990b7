package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/haerye/jindo/internal/models"
)

// schemaVersion is stamped into PRAGMA user_version when the schema is
// created. Opening a database with a newer version fails loudly instead of
// guessing.
const schemaVersion = 1

// SQLiteStore keeps the same per-key JSON documents as JSONStore in a
// records table, plus a relational words table for the vocabulary deck.
type SQLiteStore struct {
	path string
	db   *sqlx.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	if err := s.open(); err != nil {
		return err
	}
	return s.SaveProgress(models.DefaultProgress())
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	return s.open()
}

func (s *SQLiteStore) open() error {
	db, err := sqlx.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer; the store is used by one process at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s.db = db
	return s.ensureSchema()
}

func (s *SQLiteStore) ensureSchema() error {
	var version int
	if err := s.db.Get(&version, "PRAGMA user_version"); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, schemaVersion)
	}

	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create records table: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS words (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			meaning TEXT,
			topic TEXT,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create words table: %w", err)
	}

	if version < schemaVersion {
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) getRecord(key string, out any) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("storage not loaded")
	}
	var value string
	err := s.db.Get(&value, "SELECT value FROM records WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read record %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return false, fmt.Errorf("failed to parse record %s: %w", key, err)
	}
	return true, nil
}

func (s *SQLiteStore) setRecord(key string, v any) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize record %s: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) GetProgress() (models.DailyProgress, error) {
	p := models.DefaultProgress()
	loaded := models.DailyProgress{}
	ok, err := s.getRecord(ProgressKey, &loaded)
	if err != nil {
		return p, err
	}
	if ok {
		p = loaded
		p.Normalize()
	}
	return p, nil
}

func (s *SQLiteStore) SaveProgress(p models.DailyProgress) error {
	return s.setRecord(ProgressKey, p)
}

func (s *SQLiteStore) GetWordMastery() (models.WordMasteryData, error) {
	d := models.DefaultWordMastery()
	loaded := models.WordMasteryData{}
	ok, err := s.getRecord(WordMasteryKey, &loaded)
	if err != nil {
		return d, err
	}
	if ok {
		d = loaded
		if d.Words == nil {
			d.Words = map[string]models.WordMasteryEntry{}
		}
	}
	return d, nil
}

func (s *SQLiteStore) SaveWordMastery(d models.WordMasteryData) error {
	return s.setRecord(WordMasteryKey, d)
}

func (s *SQLiteStore) GetGrammarMastery() (models.GrammarMasteryData, error) {
	d := models.DefaultGrammarMastery()
	loaded := models.GrammarMasteryData{}
	ok, err := s.getRecord(GrammarMasteryKey, &loaded)
	if err != nil {
		return d, err
	}
	if ok {
		d = loaded
		if d.Categories == nil {
			d.Categories = map[string]models.GrammarCategoryAggregate{}
		}
		if d.Units == nil {
			d.Units = map[string]models.GrammarUnitEntry{}
		}
	}
	return d, nil
}

func (s *SQLiteStore) SaveGrammarMastery(d models.GrammarMasteryData) error {
	return s.setRecord(GrammarMasteryKey, d)
}

func (s *SQLiteStore) PutWord(w models.VocabWord) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec(`
		INSERT INTO words (id, text, meaning, topic, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET text = excluded.text, meaning = excluded.meaning, topic = excluded.topic
	`, w.ID, w.Text, w.Meaning, w.Topic, w.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save word %s: %w", w.ID, err)
	}
	return nil
}

func (s *SQLiteStore) GetWord(id string) (models.VocabWord, bool, error) {
	if s.db == nil {
		return models.VocabWord{}, false, fmt.Errorf("storage not loaded")
	}
	var row struct {
		ID        string         `db:"id"`
		Text      string         `db:"text"`
		Meaning   sql.NullString `db:"meaning"`
		Topic     sql.NullString `db:"topic"`
		CreatedAt time.Time      `db:"created_at"`
	}
	err := s.db.Get(&row, "SELECT id, text, meaning, topic, created_at FROM words WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.VocabWord{}, false, nil
	}
	if err != nil {
		return models.VocabWord{}, false, fmt.Errorf("failed to read word %s: %w", id, err)
	}
	return models.VocabWord{
		ID:        row.ID,
		Text:      row.Text,
		Meaning:   row.Meaning.String,
		Topic:     row.Topic.String,
		CreatedAt: row.CreatedAt,
	}, true, nil
}

func (s *SQLiteStore) GetAllWords() ([]models.VocabWord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	rows := []struct {
		ID        string         `db:"id"`
		Text      string         `db:"text"`
		Meaning   sql.NullString `db:"meaning"`
		Topic     sql.NullString `db:"topic"`
		CreatedAt time.Time      `db:"created_at"`
	}{}
	if err := s.db.Select(&rows, "SELECT id, text, meaning, topic, created_at FROM words ORDER BY text"); err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	words := make([]models.VocabWord, 0, len(rows))
	for _, row := range rows {
		words = append(words, models.VocabWord{
			ID:        row.ID,
			Text:      row.Text,
			Meaning:   row.Meaning.String,
			Topic:     row.Topic.String,
			CreatedAt: row.CreatedAt,
		})
	}
	return words, nil
}

func (s *SQLiteStore) GetDataPath() string {
	return s.path
}

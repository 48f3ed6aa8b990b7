package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/haerye/jindo/internal/models"
)

// JSONStore keeps one JSON document per record key under a data directory.
// Every Get reads the file fresh and every Save rewrites it whole, matching
// the read-modify-write-per-record persistence model. Records that are
// missing decode to their defaults; records that are corrupt also decode to
// defaults but surface an error so the caller can log it.
//
// JSONStore is not safe for concurrent use by multiple processes sharing
// the same data directory.
type JSONStore struct {
	dir string
}

func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

func (s *JSONStore) Init() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	path := s.recordPath(ProgressKey)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.dir)
	}

	return s.writeRecord(ProgressKey, models.DefaultProgress())
}

func (s *JSONStore) Load() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) recordPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// readRecord decodes the record for key into out. A missing file leaves out
// untouched and returns (false, nil); a corrupt file leaves out untouched
// and returns the decode error.
func (s *JSONStore) readRecord(key string, out any) (bool, error) {
	data, err := os.ReadFile(s.recordPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read record %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to parse record %s: %w", key, err)
	}
	return true, nil
}

func (s *JSONStore) writeRecord(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize record %s: %w", key, err)
	}
	if err := os.WriteFile(s.recordPath(key), data, 0600); err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}
	return nil
}

func (s *JSONStore) GetProgress() (models.DailyProgress, error) {
	p := models.DefaultProgress()
	loaded := models.DailyProgress{}
	ok, err := s.readRecord(ProgressKey, &loaded)
	if err != nil {
		return p, err
	}
	if ok {
		p = loaded
		p.Normalize()
	}
	return p, nil
}

func (s *JSONStore) SaveProgress(p models.DailyProgress) error {
	return s.writeRecord(ProgressKey, p)
}

func (s *JSONStore) GetWordMastery() (models.WordMasteryData, error) {
	d := models.DefaultWordMastery()
	loaded := models.WordMasteryData{}
	ok, err := s.readRecord(WordMasteryKey, &loaded)
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

func (s *JSONStore) SaveWordMastery(d models.WordMasteryData) error {
	return s.writeRecord(WordMasteryKey, d)
}

func (s *JSONStore) GetGrammarMastery() (models.GrammarMasteryData, error) {
	d := models.DefaultGrammarMastery()
	loaded := models.GrammarMasteryData{}
	ok, err := s.readRecord(GrammarMasteryKey, &loaded)
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

func (s *JSONStore) SaveGrammarMastery(d models.GrammarMasteryData) error {
	return s.writeRecord(GrammarMasteryKey, d)
}

func (s *JSONStore) readDeck() (map[string]models.VocabWord, error) {
	deck := map[string]models.VocabWord{}
	if _, err := s.readRecord(VocabDeckKey, &deck); err != nil {
		return map[string]models.VocabWord{}, err
	}
	if deck == nil {
		deck = map[string]models.VocabWord{}
	}
	return deck, nil
}

func (s *JSONStore) PutWord(w models.VocabWord) error {
	deck, err := s.readDeck()
	if err != nil {
		return err
	}
	deck[w.ID] = w
	return s.writeRecord(VocabDeckKey, deck)
}

func (s *JSONStore) GetWord(id string) (models.VocabWord, bool, error) {
	deck, err := s.readDeck()
	if err != nil {
		return models.VocabWord{}, false, err
	}
	w, ok := deck[id]
	return w, ok, nil
}

func (s *JSONStore) GetAllWords() ([]models.VocabWord, error) {
	deck, err := s.readDeck()
	if err != nil {
		return nil, err
	}
	words := make([]models.VocabWord, 0, len(deck))
	for _, w := range deck {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool { return words[i].Text < words[j].Text })
	return words, nil
}

func (s *JSONStore) GetDataPath() string {
	return s.dir
}

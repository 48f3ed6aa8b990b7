package storage

import "github.com/haerye/jindo/internal/models"

// Record keys. Each tracker owns exactly one key; there is no cross-key
// atomicity and none is needed.
const (
	ProgressKey       = "app-progress"
	WordMasteryKey    = "pkc-word-mastery"
	GrammarMasteryKey = "pkc-grammar-mastery"
	VocabDeckKey      = "vocab-words"
)

// Provider is a local per-key document store. Get methods never fail hard
// on missing data: they return the record's default value, with a non-nil
// error only when an existing record could not be decoded (callers log and
// carry on with the defaults).
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Daily progress
	GetProgress() (models.DailyProgress, error)
	SaveProgress(models.DailyProgress) error

	// Word mastery
	GetWordMastery() (models.WordMasteryData, error)
	SaveWordMastery(models.WordMasteryData) error

	// Grammar mastery
	GetGrammarMastery() (models.GrammarMasteryData, error)
	SaveGrammarMastery(models.GrammarMasteryData) error

	// Vocabulary deck
	PutWord(models.VocabWord) error
	GetWord(id string) (models.VocabWord, bool, error)
	GetAllWords() ([]models.VocabWord, error)

	// Utils
	GetDataPath() string
}

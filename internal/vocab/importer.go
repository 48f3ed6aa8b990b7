// Package vocab imports vocabulary words into the local deck from Excel or
// CSV files.
package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/haerye/jindo/internal/models"
	"github.com/haerye/jindo/internal/storage"
)

// ImportConfig defines where word fields live in the source file.
type ImportConfig struct {
	FilePath      string
	TextColumn    string // column with the Korean word
	MeaningColumn string // column with the translation
	TopicColumn   string // column with an optional topic
	SheetName     string
	StartRow      int // 1-based first data row
}

// DefaultImportConfig returns the conventional word/meaning/topic layout.
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:      path,
		TextColumn:    "A",
		MeaningColumn: "B",
		TopicColumn:   "C",
		SheetName:     "Sheet1",
		StartRow:      2, // skip the header row
	}
}

// ImportResult summarizes one import run.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// ImportWords reads the configured file and upserts its words into the
// deck. Words already in the deck (matched case-insensitively on text)
// have their meaning and topic updated in place; new words get fresh IDs.
func ImportWords(store storage.Provider, cfg ImportConfig) (*ImportResult, error) {
	existing, err := store.GetAllWords()
	if err != nil {
		return nil, fmt.Errorf("failed to read existing deck: %w", err)
	}
	byText := make(map[string]models.VocabWord, len(existing))
	for _, w := range existing {
		byText[strings.ToLower(w.Text)] = w
	}

	if strings.ToLower(filepath.Ext(cfg.FilePath)) == ".csv" {
		return importFromCSV(store, cfg, byText)
	}
	return importFromExcel(store, cfg, byText)
}

func importFromExcel(store storage.Provider, cfg ImportConfig, byText map[string]models.VocabWord) (*ImportResult, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{Errors: []string{}}
	for i, row := range rows {
		if i < cfg.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		text := cellValue(row, cfg.TextColumn)
		meaning := cellValue(row, cfg.MeaningColumn)
		topic := cellValue(row, cfg.TopicColumn)

		if err := upsertWord(store, byText, result, text, meaning, topic); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
		}
	}
	return result, nil
}

func importFromCSV(store storage.Provider, cfg ImportConfig, byText map[string]models.VocabWord) (*ImportResult, error) {
	file, err := os.Open(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &ImportResult{Errors: []string{}}
	rowNum := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		rowNum++
		if rowNum < cfg.StartRow {
			continue
		}
		result.TotalProcessed++

		var text, meaning, topic string
		if len(row) > 0 {
			text = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			meaning = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			topic = strings.TrimSpace(row[2])
		}

		if err := upsertWord(store, byText, result, text, meaning, topic); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
		}
	}
	return result, nil
}

func upsertWord(store storage.Provider, byText map[string]models.VocabWord, result *ImportResult, text, meaning, topic string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		result.Skipped++
		return nil
	}
	if strings.TrimSpace(meaning) == "" {
		result.Skipped++
		return fmt.Errorf("word %q has no meaning", text)
	}

	if existing, ok := byText[strings.ToLower(text)]; ok {
		existing.Meaning = meaning
		existing.Topic = topic
		if err := store.PutWord(existing); err != nil {
			return fmt.Errorf("failed to update word: %w", err)
		}
		byText[strings.ToLower(text)] = existing
		result.Updated++
		return nil
	}

	word := models.VocabWord{
		ID:        uuid.New().String(),
		Text:      text,
		Meaning:   meaning,
		Topic:     topic,
		CreatedAt: time.Now(),
	}
	if err := store.PutWord(word); err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}
	byText[strings.ToLower(text)] = word
	result.Created++
	return nil
}

// cellValue resolves an Excel column letter against a row slice.
func cellValue(row []string, column string) string {
	if column == "" {
		return ""
	}
	idx := columnToIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		c := column[i]
		if c < 'A' || c > 'Z' {
			return -1
		}
		index = index*26 + int(c-'A'+1)
	}
	return index - 1
}

package models

import (
	"fmt"
	"strings"
)

// Category is one of the fixed learning domains a completion can count toward.
type Category string

const (
	CategoryHangul     Category = "hangul"
	CategoryVocabulary Category = "vocabulary"
	CategoryFlashcard  Category = "flashcard"
	CategoryGrammar    Category = "grammar"
	// CategoryNone marks completions that count toward the aggregate total
	// only, without touching any per-category bucket.
	CategoryNone Category = ""
)

// Categories lists every known category in score-table order.
func Categories() []Category {
	return []Category{CategoryHangul, CategoryVocabulary, CategoryFlashcard, CategoryGrammar}
}

// GoalCategories lists the categories that carry a daily goal target.
func GoalCategories() []Category {
	return []Category{CategoryHangul, CategoryVocabulary, CategoryGrammar}
}

// Known reports whether c is one of the fixed learning domains.
func (c Category) Known() bool {
	switch c {
	case CategoryHangul, CategoryVocabulary, CategoryFlashcard, CategoryGrammar:
		return true
	}
	return false
}

// Section maps a category to the learning-module identifier used for the
// "resume" affordance.
func (c Category) Section() string {
	switch c {
	case CategoryHangul:
		return "hangul-section"
	case CategoryFlashcard:
		return "flashcard-section"
	case CategoryGrammar:
		return "grammar-section"
	default:
		return "vocabulary-section"
	}
}

// ParseCategory converts a user-supplied name into a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hangul":
		return CategoryHangul, nil
	case "vocabulary", "vocab":
		return CategoryVocabulary, nil
	case "flashcard":
		return CategoryFlashcard, nil
	case "grammar":
		return CategoryGrammar, nil
	case "":
		return CategoryNone, nil
	}
	return CategoryNone, fmt.Errorf("unknown category: %s", s)
}

// ParseItemKey determines the category of an item key from its prefix.
// Keys without a recognized prefix return CategoryNone and still count
// toward the aggregate daily total.
func ParseItemKey(key string) Category {
	switch {
	case strings.HasPrefix(key, "hangul:"):
		return CategoryHangul
	case strings.HasPrefix(key, "vocab:"), strings.HasPrefix(key, "vocabList:"):
		return CategoryVocabulary
	case strings.HasPrefix(key, "grammar:"):
		return CategoryGrammar
	}
	return CategoryNone
}

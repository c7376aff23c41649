// Package dictionary decides whether a string is a recognized word.
//
// Three Checker implementations are provided: Set (in-memory word set),
// SQLite (word table in a SQLite file) and Cached (LRU in front of another
// Checker). Lookups match on the base language of the tag, so en-GB and
// en-US both use the "en" word list.
package dictionary

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/robalobadob/wordscramble/assets"
)

// EmbeddedLanguage is the language of the bundled word list.
var EmbeddedLanguage = language.English

// ErrEmbeddedLanguage is returned when the bundled list is requested for a
// language it does not cover.
var ErrEmbeddedLanguage = errors.New("dictionary: embedded word list is English only")

// Checker reports whether word is recognized in the language of tag.
type Checker interface {
	IsRecognized(word string, tag language.Tag) bool
}

// Counter is implemented by checkers that know their size.
type Counter interface {
	Len() int
}

// langKey reduces a tag to its base language ("en").
func langKey(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// normalizeWord trims, lowercases with lower and composes to NFC, the same
// form a game session looks words up in.
func normalizeWord(lower cases.Caser, w string) string {
	return norm.NFC.String(lower.String(strings.TrimSpace(w)))
}

// CheckEmbedded reports whether the bundled list can serve tag.
func CheckEmbedded(tag language.Tag) error {
	if langKey(tag) != langKey(EmbeddedLanguage) {
		return fmt.Errorf("%w: got %s", ErrEmbeddedLanguage, tag)
	}
	return nil
}

// ParseLanguage parses a BCP 47 tag such as "en" or "en-GB".
func ParseLanguage(s string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return language.Und, fmt.Errorf("parse language %q: %w", s, err)
	}
	return tag, nil
}

// Set is an immutable in-memory dictionary for a single language.
type Set struct {
	lang  string
	words map[string]struct{}
}

// NewSet builds a Set from words, lowercased for tag and composed to NFC.
func NewSet(tag language.Tag, words []string) *Set {
	lower := cases.Lower(tag)
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = normalizeWord(lower, w)
		if w != "" {
			m[w] = struct{}{}
		}
	}
	return &Set{lang: langKey(tag), words: m}
}

// LoadEmbedded returns the bundled word list as a Set for tag.
// Fails with ErrEmbeddedLanguage unless tag is a variant of English.
func LoadEmbedded(tag language.Tag) (*Set, error) {
	if err := CheckEmbedded(tag); err != nil {
		return nil, err
	}
	list, err := assets.DictionaryList()
	if err != nil {
		return nil, fmt.Errorf("load embedded dictionary: %w", err)
	}
	return NewSet(tag, list), nil
}

// LoadFile reads a one-word-per-line file into a Set for tag.
func LoadFile(path string, tag language.Tag) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()
	list, err := assets.ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("read dictionary %s: %w", path, err)
	}
	return NewSet(tag, list), nil
}

// IsRecognized reports whether word is in the set. Words in any other base
// language are never recognized.
func (s *Set) IsRecognized(word string, tag language.Tag) bool {
	if langKey(tag) != s.lang {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Len returns the number of words in the set.
func (s *Set) Len() int { return len(s.words) }

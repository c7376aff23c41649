// internal/game/engine.go
//
// Core game engine for a single Word Scramble session.
// Responsibilities:
//   - Reset a session onto a root word (clears words and score).
//   - Validate submissions in a fixed order and report exactly one reason:
//     empty → too short → equals root → duplicate → letters → dictionary.
//   - Apply accepted words: prepend to the list, add letter count to score.
//   - Notify subscribers after every state change.
//
// Notes:
//   - The engine is synchronous and not safe for concurrent use; callers
//     (see internal/store) serialize access.
//   - Lowercasing is locale-aware via golang.org/x/text/cases, and words are
//     composed to NFC so "e\u0301" and "é" are one letter.
package game

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Session holds the root word, accepted words and score for one game.
type Session struct {
	ID string

	root    string
	lang    language.Tag
	dict    Dictionary
	words   []AcceptedWord      // most recent first
	used    map[string]struct{} // normalized forms of words
	score   int
	started bool

	subs []func(Event)
}

// NewSession constructs an unstarted session that checks words against dict
// in language lang. Reset must be called before Submit.
func NewSession(dict Dictionary, lang language.Tag) *Session {
	return &Session{
		ID:   uuid.NewString(),
		lang: lang,
		dict: dict,
		used: make(map[string]struct{}),
	}
}

// Subscribe registers fn to be called after Reset and after every accepted word.
func (s *Session) Subscribe(fn func(Event)) {
	s.subs = append(s.subs, fn)
}

// Reset starts the session over on root. The caller guarantees root is non-empty.
func (s *Session) Reset(root string) {
	s.root = s.normalize(root)
	s.words = nil
	s.used = make(map[string]struct{})
	s.score = 0
	s.started = true
	s.publish(Event{Kind: EventReset})
}

// Submit validates raw and, if it passes, adds it to the session.
// Returns the accepted word and the new score, a *RejectionError, or
// ErrNotStarted if Reset was never called.
func (s *Session) Submit(raw string) (AcceptedWord, int, error) {
	if !s.started {
		return AcceptedWord{}, s.score, ErrNotStarted
	}
	word := s.normalize(raw)
	if reason, ok := s.check(word); !ok {
		return AcceptedWord{}, s.score, &RejectionError{Reason: reason, Word: word}
	}

	aw := AcceptedWord{
		Word:       strings.TrimSpace(raw),
		Normalized: word,
		Letters:    utf8.RuneCountInString(word),
	}
	s.words = append([]AcceptedWord{aw}, s.words...)
	s.used[word] = struct{}{}
	s.score += aw.Letters
	s.publish(Event{Kind: EventAccepted, Accepted: &aw})
	return aw, s.score, nil
}

// check runs the validation pipeline on a normalized word.
// Length is checked before anything else touches the dictionary.
func (s *Session) check(word string) (Reason, bool) {
	switch {
	case word == "":
		return ReasonEmpty, false
	case utf8.RuneCountInString(word) < MinWordLength:
		return ReasonTooShort, false
	case strings.EqualFold(word, s.root):
		return ReasonEqualsRoot, false
	case s.isDuplicate(word):
		return ReasonDuplicate, false
	case !isPossible(word, s.root):
		return ReasonNotPossible, false
	case !s.dict.IsRecognized(word, s.lang):
		return ReasonNotReal, false
	}
	return "", true
}

func (s *Session) isDuplicate(word string) bool {
	_, ok := s.used[word]
	return ok
}

// isPossible reports whether every letter of word can be taken from root,
// each letter of root used at most once.
func isPossible(word, root string) bool {
	pool := make(map[rune]int, len(root))
	for _, r := range root {
		pool[r]++
	}
	for _, r := range word {
		if pool[r] == 0 {
			return false
		}
		pool[r]--
	}
	return true
}

// normalize trims surrounding whitespace, lowercases for the session language
// and composes to NFC so letter counts and comparisons work on characters.
func (s *Session) normalize(raw string) string {
	return norm.NFC.String(cases.Lower(s.lang).String(strings.TrimSpace(raw)))
}

// RootWord returns the current root word ("" before the first Reset).
func (s *Session) RootWord() string { return s.root }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Started reports whether Reset has been called.
func (s *Session) Started() bool { return s.started }

// Language returns the dictionary language of the session.
func (s *Session) Language() language.Tag { return s.lang }

// Words returns a copy of the accepted words, most recent first.
func (s *Session) Words() []AcceptedWord {
	out := make([]AcceptedWord, len(s.words))
	copy(out, s.words)
	return out
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{ID: s.ID, Root: s.root, Words: s.Words(), Score: s.score}
}

func (s *Session) publish(ev Event) {
	if len(s.subs) == 0 {
		return
	}
	ev.Snapshot = s.Snapshot()
	for _, fn := range s.subs {
		fn(ev)
	}
}

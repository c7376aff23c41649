// internal/game/types.go
//
// Core type definitions for the Word Scramble game session.
// Defines:
//   - Reason: why a submission was rejected.
//   - RejectionError: typed error carrying a Reason.
//   - AcceptedWord: a word that passed the validation pipeline.
//   - Event/Snapshot: what subscribers observe.

package game

import (
	"errors"

	"golang.org/x/text/language"
)

// Reason identifies the validation step that rejected a submission.
// Values are stable strings so they can go straight onto the wire.
type Reason string

const (
	ReasonEmpty       Reason = "empty"
	ReasonTooShort    Reason = "too_short"
	ReasonEqualsRoot  Reason = "equals_root"
	ReasonDuplicate   Reason = "duplicate"
	ReasonNotPossible Reason = "not_possible"
	ReasonNotReal     Reason = "not_real"
)

// MinWordLength is the shortest submission that is sent to the dictionary.
const MinWordLength = 3

// ErrNotStarted is returned by Submit when Reset has never been called.
var ErrNotStarted = errors.New("game: session not started")

// RejectionError reports a submission that failed validation.
type RejectionError struct {
	Reason Reason
	Word   string // normalized submission
}

func (e *RejectionError) Error() string {
	return "game: rejected " + string(e.Reason) + ": " + e.Word
}

// ReasonOf extracts the rejection reason from err, if any.
func ReasonOf(err error) (Reason, bool) {
	var re *RejectionError
	if errors.As(err, &re) {
		return re.Reason, true
	}
	return "", false
}

// Dictionary answers whether a word is recognized in a language.
// Implementations must not have side effects visible to the session.
type Dictionary interface {
	IsRecognized(word string, tag language.Tag) bool
}

// AcceptedWord is an entry in the session's word list.
type AcceptedWord struct {
	Word       string `json:"word"`    // trimmed, case as submitted
	Normalized string `json:"-"`       // trimmed + lowercased
	Letters    int    `json:"letters"` // rune count of Normalized
}

// EventKind tells subscribers what changed.
type EventKind string

const (
	EventReset    EventKind = "reset"
	EventAccepted EventKind = "accepted"
)

// Event is delivered to subscribers after a state change.
type Event struct {
	Kind     EventKind
	Accepted *AcceptedWord // set for EventAccepted
	Snapshot Snapshot
}

// Snapshot is a read-only copy of session state.
type Snapshot struct {
	ID    string         `json:"gameId"`
	Root  string         `json:"root"`
	Words []AcceptedWord `json:"words"`
	Score int            `json:"score"`
}

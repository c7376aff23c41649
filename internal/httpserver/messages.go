package httpserver

import "github.com/robalobadob/wordscramble/internal/game"

// alert is the human-readable title/message pair shown for a rejection.
type alert struct {
	Title   string
	Message string
}

// alertFor maps a rejection reason to the text a client should display.
func alertFor(reason game.Reason, root string) alert {
	switch reason {
	case game.ReasonEmpty:
		return alert{"No word entered", "Type a word before submitting"}
	case game.ReasonTooShort:
		return alert{"Word too short", "Words must be at least three letters long"}
	case game.ReasonEqualsRoot:
		return alert{"Can't use the root word", "Be more original"}
	case game.ReasonDuplicate:
		return alert{"Word used already", "Be more original"}
	case game.ReasonNotPossible:
		return alert{"Word not possible", "You can't spell that word from '" + root + "'!"}
	case game.ReasonNotReal:
		return alert{"Word not recognized", "You can't just make them up, you know!"}
	}
	return alert{"Word rejected", "Try another word"}
}

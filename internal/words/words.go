// internal/words/words.go
//
// Root word source for the game engine.
//
// Responsibilities:
//   - Load the list of root word candidates from a file or fall back to the
//     embedded assets/start.txt.
//   - Supply RandomRoot (uniform pick), RootAt (used by DailyRoot) and Stats.
//
// Initialization behavior (Init):
//   1. If path is non-empty, read root words from that file.
//   2. Otherwise use the embedded list.
//   Either way an empty result is an error: the server must not start
//   without a root word to offer.
//
// Constraints:
//   • Words are lowercased and must consist of letters only.
//   • Initialization is run once (sync.Once).

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sync"
	"unicode"

	"github.com/robalobadob/wordscramble/assets"
)

// FallbackRoot is returned by RandomRoot when no list is loaded.
const FallbackRoot = "silkworm"

// ErrEmptyList is returned when a root word list has no usable entries.
var ErrEmptyList = errors.New("words: root word list is empty")

var (
	initOnce   sync.Once
	roots      []string
	initialErr error
)

// Init loads the root word list exactly once.
func Init(path string) error {
	initOnce.Do(func() {
		roots, initialErr = Load(path)
	})
	return initialErr
}

// Load reads a root word list from path, or the embedded list if path is empty.
func Load(path string) ([]string, error) {
	var (
		list []string
		err  error
	)
	if path == "" {
		list, err = assets.StartList()
	} else {
		list, err = readWordFile(path)
	}
	if err != nil {
		return nil, err
	}
	list = filterWords(list)
	if len(list) == 0 {
		return nil, ErrEmptyList
	}
	return list, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open root words: %w", err)
	}
	defer f.Close()
	return assets.ReadWords(f)
}

// filterWords keeps letter-only words.
func filterWords(in []string) []string {
	out := in[:0]
	for _, w := range in {
		if isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

// isAlpha reports whether s is non-empty and made only of letters.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// RandomRoot returns a cryptographically random root word.
// If the list is not loaded, falls back to "silkworm".
func RandomRoot() string {
	return pick(roots)
}

func pick(list []string) string {
	if len(list) == 0 {
		return FallbackRoot
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return list[0]
	}
	return list[nBig.Int64()]
}

// RootAt returns the i-th root word (wrapping), or the fallback if none are loaded.
func RootAt(i int) string {
	if len(roots) == 0 {
		return FallbackRoot
	}
	if i < 0 {
		i = -i
	}
	return roots[i%len(roots)]
}

// Stats returns the number of loaded root words.
func Stats() int {
	return len(roots)
}

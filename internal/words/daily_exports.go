// internal/words/daily_exports.go
//
// Daily mode helpers: every player asking for the daily game on the same
// UTC date gets the same root word.

package words

import (
	"time"

	"github.com/robalobadob/wordscramble/internal/daily"
)

// DailyRoot returns the root word for the date of t.
func DailyRoot(t time.Time, salt string) (date string, root string) {
	date = daily.DateKey(t)
	if len(roots) == 0 {
		return date, FallbackRoot
	}
	return date, RootAt(daily.WordIndex(t, salt, len(roots)))
}

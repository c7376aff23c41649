// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily" mode.
// Exposes two endpoints under /daily:
//   - GET  /daily     → today's date key and root word
//   - POST /daily/new → start a game on today's root word
//
// Every client gets the same root word on the same UTC date
// (HMAC of date + salt, see internal/daily). Games started here are ordinary
// sessions: same store, same token, same /game/* endpoints afterwards.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordscramble/internal/words"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDailyInfo)
		r.Post("/new", s.handleDailyNew)
	})
}

// dailyRes is returned by GET /daily.
type dailyRes struct {
	Date string `json:"date"`
	Root string `json:"root"`
}

func (s *Server) dailyRoot() (date, root string) {
	return words.DailyRoot(s.now(), s.opts.DailySalt)
}

// handleDailyInfo reports today's root word without starting a game.
func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	date, root := s.dailyRoot()
	writeJSON(w, http.StatusOK, dailyRes{Date: date, Root: root})
}

// handleDailyNew starts a game on today's root word.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	_, root := s.dailyRoot()
	s.startGame(w, r, root)
}

// internal/httpserver/server.go
//
// HTTP server wiring for the Word Scramble backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: POST /game/new, POST /game/word, POST /game/restart, GET /game/{id}.
//   - Daily endpoints: mounted under /daily.
//   - Session tokens: each new game hands out a signed token; later calls must
//     present it so a game is only driven by the client that started it.
//
// Notes:
//   - Rejected words are not errors from the server's point of view: they
//     come back as 422 with a reason and a title/message pair.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/internal/dictionary"
	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

// Options configures a Server. Zero values fall back to sensible defaults.
type Options struct {
	Language     language.Tag
	JWTSecret    string
	SessionTTL   time.Duration
	ClientOrigin string
	DailySalt    string
	Secure       bool          // mark cookies Secure (production)
	PickRoot     func() string // defaults to words.RandomRoot
}

// Server bundles router, session store and dictionary.
type Server struct {
	r     *chi.Mux
	store store.Store
	dict  dictionary.Checker
	opts  Options
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, dict dictionary.Checker, opts Options) *Server {
	if opts.Language == language.Und {
		opts.Language = language.English
	}
	if opts.JWTSecret == "" {
		opts.JWTSecret = "dev_secret_change_me"
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 2 * time.Hour
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.PickRoot == nil {
		opts.PickRoot = words.RandomRoot
	}
	s := &Server{r: chi.NewRouter(), store: st, dict: dict, opts: opts, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordscramble-go","endpoints":["/health","POST /game/new","POST /game/word","POST /game/restart","GET /game/{id}","/daily/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", s.handleWordStats)

	// --- game ---
	s.r.Post("/game/new", s.handleNewGame)
	s.r.Group(func(r chi.Router) {
		r.Use(s.requireGameToken)
		r.Post("/game/word", s.handleWord)
		r.Post("/game/restart", s.handleRestart)
		r.Get("/game/{id}", s.handleGetGame)
	})

	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go s.pruneLoop(ctx, time.Minute)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// pruneLoop drops idle sessions every interval until ctx is done.
func (s *Server) pruneLoop(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.store.Prune(s.now().Add(-s.opts.SessionTTL)); n > 0 {
				log.Info().Int("pruned", n).Int("live", s.store.Len()).Msg("pruned idle sessions")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one structured line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("reqId", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// cors enables credentialed CORS for a single origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/gameRes payloads for POST /game/new.
type newGameReq struct {
	Root string `json:"root"` // optional fixed root word (testing)
}
type gameRes struct {
	game.Snapshot
	Token string `json:"token,omitempty"`
}

// handleNewGame creates a session on a fresh root word and hands out its token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if !s.decodeBody(w, r, &req, true) {
		return
	}

	root := strings.TrimSpace(req.Root)
	if root == "" {
		root = s.opts.PickRoot()
	}
	s.startGame(w, r, root)
}

// startGame creates, resets and registers a session, then writes gameRes.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, root string) {
	sess := game.NewSession(s.dict, s.opts.Language)
	sess.Subscribe(logEvents(log.With().Str("gameId", sess.ID).Logger()))
	sess.Reset(root)

	if err := s.store.Save(r.Context(), sess); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, exp, err := s.signGameToken(sess.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setGameCookie(w, tok, exp)
	writeJSON(w, http.StatusOK, gameRes{Snapshot: sess.Snapshot(), Token: tok})
}

// wordReq/wordRes payloads for POST /game/word.
type wordReq struct {
	GameID string `json:"gameId"`
	Word   string `json:"word"`
}
type wordRes struct {
	Accepted game.AcceptedWord `json:"accepted"`
	game.Snapshot
}
type rejectRes struct {
	Error   string      `json:"error"`
	Reason  game.Reason `json:"reason"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Score   int         `json:"score"`
}

// handleWord runs a submission through the session's validation pipeline.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if !s.decodeBody(w, r, &req, false) {
		return
	}
	if !s.ownsGame(r, req.GameID) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	var (
		accepted game.AcceptedWord
		snap     game.Snapshot
	)
	err := s.store.Update(r.Context(), req.GameID, func(sess *game.Session) error {
		aw, _, err := sess.Submit(req.Word)
		accepted = aw
		snap = sess.Snapshot()
		return err
	})

	var rej *game.RejectionError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, wordRes{Accepted: accepted, Snapshot: snap})
	case errors.As(err, &rej):
		a := alertFor(rej.Reason, snap.Root)
		hlog.FromRequest(r).Debug().Str("gameId", req.GameID).Str("reason", string(rej.Reason)).Msg("word rejected")
		writeJSON(w, http.StatusUnprocessableEntity, rejectRes{
			Error: "rejected", Reason: rej.Reason, Title: a.Title, Message: a.Message, Score: snap.Score,
		})
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrNotStarted):
		writeError(w, http.StatusConflict, "not_started")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("submit word")
		writeError(w, http.StatusInternalServerError, "submit_failed")
	}
}

// restartReq is the payload for POST /game/restart.
type restartReq struct {
	GameID string `json:"gameId"`
}

// handleRestart starts the same session over on a new root word.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req restartReq
	if !s.decodeBody(w, r, &req, false) {
		return
	}
	if !s.ownsGame(r, req.GameID) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	var snap game.Snapshot
	err := s.store.Update(r.Context(), req.GameID, func(sess *game.Session) error {
		sess.Reset(s.opts.PickRoot())
		snap = sess.Snapshot()
		return nil
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, gameRes{Snapshot: snap})
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		hlog.FromRequest(r).Error().Err(err).Str("gameId", req.GameID).Msg("restart game")
		writeError(w, http.StatusInternalServerError, "restart_failed")
	}
}

// handleGetGame returns the current state of a session.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.ownsGame(r, id) {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	snap, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, gameRes{Snapshot: snap})
}

// handleWordStats reports how many root and dictionary words are loaded.
func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	dict := 0
	if c, ok := s.dict.(dictionary.Counter); ok {
		dict = c.Len()
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"roots":      words.Stats(),
		"dictionary": dict,
		"sessions":   s.store.Len(),
	})
}

// logEvents returns a session subscriber that logs state changes.
func logEvents(l zerolog.Logger) func(game.Event) {
	return func(ev game.Event) {
		e := l.Debug().Str("event", string(ev.Kind)).Str("root", ev.Snapshot.Root).Int("score", ev.Snapshot.Score)
		if ev.Accepted != nil {
			e = e.Str("word", ev.Accepted.Word)
		}
		e.Msg("session changed")
	}
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// maxBodyBytes caps request bodies; every payload here is a few short strings.
const maxBodyBytes = 4 << 10

// decodeBody reads a JSON request body into v, writing the error response
// itself when it fails. An empty body is accepted only when allowEmpty is set.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)

	var tooBig *http.MaxBytesError
	switch {
	case err == nil:
		return true
	case errors.Is(err, io.EOF) && allowEmpty:
		return true
	case errors.As(err, &tooBig):
		writeError(w, http.StatusRequestEntityTooLarge, "body_too_large")
	default:
		writeError(w, http.StatusBadRequest, "bad_json")
	}
	return false
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

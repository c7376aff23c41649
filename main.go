package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/assets"
	"github.com/robalobadob/wordscramble/internal/config"
	"github.com/robalobadob/wordscramble/internal/dictionary"
	"github.com/robalobadob/wordscramble/internal/httpserver"
	"github.com/robalobadob/wordscramble/internal/store"
	"github.com/robalobadob/wordscramble/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	setupLogging(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := words.Init(cfg.Game.StartWordsFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load root words")
	}

	lang, err := dictionary.ParseLanguage(cfg.Dictionary.Language)
	if err != nil {
		log.Fatal().Err(err).Msg("bad dictionary language")
	}
	dict, closeDict, err := openDictionary(ctx, cfg.Dictionary, lang)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}
	defer closeDict()

	srv := httpserver.New(store.NewMemoryStore(), dict, httpserver.Options{
		Language:     lang,
		JWTSecret:    cfg.Server.JWTSecret,
		SessionTTL:   cfg.Game.SessionTTL,
		ClientOrigin: cfg.Server.ClientOrigin,
		DailySalt:    cfg.Game.DailySalt,
		Secure:       cfg.IsProduction(),
	})
	log.Info().
		Str("addr", cfg.GetAddr()).
		Int("roots", words.Stats()).
		Str("lang", lang.String()).
		Msg("starting wordscramble server")
	if err := srv.Start(ctx, cfg.GetAddr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func setupLogging(c config.LoggingConfig) {
	if lvl, err := zerolog.ParseLevel(c.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.Format == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// openDictionary picks the checker: SQLite when a DB path is configured
// (seeded from the file or embedded list on first use), otherwise an
// in-memory set. Either way an LRU sits in front when a cache size is set.
func openDictionary(ctx context.Context, c config.DictionaryConfig, lang language.Tag) (dictionary.Checker, func(), error) {
	var (
		checker dictionary.Checker
		closeFn = func() {}
	)

	switch {
	case c.DBPath != "":
		db, err := dictionary.OpenSQLite(ctx, c.DBPath)
		if err != nil {
			return nil, nil, err
		}
		source, list, err := seedWords(c.File, lang)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		n, err := db.SeedIfEmpty(ctx, lang, source, list)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		if n > 0 {
			log.Info().Int("words", n).Str("source", source).Msg("seeded dictionary")
		}
		checker, closeFn = db, func() { _ = db.Close() }

	case c.File != "":
		set, err := dictionary.LoadFile(c.File, lang)
		if err != nil {
			return nil, nil, err
		}
		checker = set

	default:
		set, err := dictionary.LoadEmbedded(lang)
		if err != nil {
			return nil, nil, err
		}
		checker = set
	}

	if c.CacheSize > 0 {
		cached, err := dictionary.NewCached(checker, c.CacheSize)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		checker = cached
	}
	return checker, closeFn, nil
}

// seedWords returns the word list used to fill an empty SQLite dictionary.
// The embedded list is only offered for English.
func seedWords(path string, lang language.Tag) (string, []string, error) {
	if path == "" {
		if err := dictionary.CheckEmbedded(lang); err != nil {
			return "", nil, err
		}
		list, err := assets.DictionaryList()
		return "embedded", list, err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	list, err := assets.ReadWords(f)
	return path, list, err
}

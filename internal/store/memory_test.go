package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/robalobadob/wordscramble/internal/game"
)

type allWords struct{}

func (allWords) IsRecognized(string, language.Tag) bool { return true }

func newSession(root string) *game.Session {
	s := game.NewSession(allWords{}, language.English)
	s.Reset(root)
	return s
}

func TestSaveGetUpdate(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession("silkworm")
	require.NoError(t, st.Save(ctx, s))

	err := st.Update(ctx, s.ID, func(s *game.Session) error {
		_, _, err := s.Submit("silk")
		return err
	})
	require.NoError(t, err)

	snap, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "silkworm", snap.Root)
	assert.Equal(t, 4, snap.Score)
	require.Len(t, snap.Words, 1)
	assert.Equal(t, "silk", snap.Words[0].Word)
}

func TestUpdatePassesErrorThrough(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession("silkworm")
	require.NoError(t, st.Save(ctx, s))

	err := st.Update(ctx, s.ID, func(s *game.Session) error {
		_, _, err := s.Submit("sw")
		return err
	})
	reason, ok := game.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, game.ReasonTooShort, reason)
}

func TestMissingSession(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	_, err := st.Get(ctx, "nope")
	assert.True(t, errors.Is(err, ErrNotFound))

	called := false
	err = st.Update(ctx, "nope", func(*game.Session) error { called = true; return nil })
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, called)

	assert.NoError(t, st.Delete(ctx, "nope"))
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	st := &memory{sessions: make(map[string]*entry), now: func() time.Time { return clock }}

	old := newSession("silkworm")
	require.NoError(t, st.Save(ctx, old))

	clock = clock.Add(time.Hour)
	fresh := newSession("kangaroo")
	require.NoError(t, st.Save(ctx, fresh))

	n := st.Prune(clock.Add(-30 * time.Minute))
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, st.Len())

	_, err := st.Get(ctx, old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// stubDict recognizes a fixed set of words and counts lookups.
type stubDict struct {
	known map[string]bool
	calls int
}

func newStubDict(words ...string) *stubDict {
	d := &stubDict{known: map[string]bool{}}
	for _, w := range words {
		d.known[w] = true
	}
	return d
}

func (d *stubDict) IsRecognized(word string, _ language.Tag) bool {
	d.calls++
	return d.known[word]
}

func newStarted(t *testing.T, root string, dict Dictionary) *Session {
	t.Helper()
	s := NewSession(dict, language.English)
	s.Reset(root)
	return s
}

func TestSubmitRejections(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		reason Reason
	}{
		{name: "empty", input: "", reason: ReasonEmpty},
		{name: "whitespace only", input: "  \t\n", reason: ReasonEmpty},
		{name: "too short", input: "sw", reason: ReasonTooShort},
		{name: "equals root", input: "silkworm", reason: ReasonEqualsRoot},
		{name: "equals root any case", input: "  SilkWorm ", reason: ReasonEqualsRoot},
		{name: "letter missing from root", input: "silky", reason: ReasonNotPossible},
		{name: "letter used too often", input: "sills", reason: ReasonNotPossible},
		{name: "not a dictionary word", input: "wrom", reason: ReasonNotReal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dict := newStubDict("silk", "worm", "sw", "silky", "sills")
			s := newStarted(t, "silkworm", dict)

			_, score, err := s.Submit(tc.input)
			require.Error(t, err)
			reason, ok := ReasonOf(err)
			require.True(t, ok, "expected a rejection, got %v", err)
			assert.Equal(t, tc.reason, reason)
			assert.Zero(t, score)
			assert.Empty(t, s.Words())
		})
	}
}

func TestShortWordsSkipDictionary(t *testing.T) {
	dict := newStubDict("sw", "ok")
	s := newStarted(t, "silkworm", dict)

	_, _, err := s.Submit("sw")
	reason, _ := ReasonOf(err)
	assert.Equal(t, ReasonTooShort, reason)
	assert.Zero(t, dict.calls)
}

func TestSubmitAccepts(t *testing.T) {
	s := newStarted(t, "silkworm", newStubDict("silk"))

	aw, score, err := s.Submit("silk")
	require.NoError(t, err)
	assert.Equal(t, "silk", aw.Word)
	assert.Equal(t, 4, aw.Letters)
	assert.Equal(t, 4, score)
	assert.Equal(t, []AcceptedWord{aw}, s.Words())
}

func TestAcceptedWordKeepsCase(t *testing.T) {
	s := newStarted(t, "silkworm", newStubDict("silk"))

	aw, _, err := s.Submit("  Silk ")
	require.NoError(t, err)
	assert.Equal(t, "Silk", aw.Word)
	assert.Equal(t, "silk", aw.Normalized)

	// the stored form is matched case-insensitively
	_, _, err = s.Submit("SILK")
	reason, _ := ReasonOf(err)
	assert.Equal(t, ReasonDuplicate, reason)
}

func TestDuplicateLeavesStateUnchanged(t *testing.T) {
	s := newStarted(t, "silkworm", newStubDict("silk", "worm"))
	_, _, err := s.Submit("silk")
	require.NoError(t, err)
	before := s.Snapshot()

	_, score, err := s.Submit("silk")
	reason, ok := ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, ReasonDuplicate, reason)
	assert.Equal(t, 4, score)
	assert.Equal(t, before, s.Snapshot())
}

func TestScoreAccumulatesNewestFirst(t *testing.T) {
	s := newStarted(t, "silkworm", newStubDict("silk", "works"))
	s.Reset("silkworms")

	_, _, err := s.Submit("silk")
	require.NoError(t, err)
	_, score, err := s.Submit("works")
	require.NoError(t, err)

	assert.Equal(t, 9, score)
	words := s.Words()
	require.Len(t, words, 2)
	assert.Equal(t, "works", words[0].Word)
	assert.Equal(t, "silk", words[1].Word)
}

func TestScoreCountsRunesNotBytes(t *testing.T) {
	s := NewSession(newStubDict("été"), language.French)
	s.Reset("ÉTÉS")

	aw, score, err := s.Submit("Été")
	require.NoError(t, err)
	assert.Equal(t, 3, aw.Letters)
	assert.Equal(t, 3, score)
}

func TestDecomposedLettersCountAsOne(t *testing.T) {
	const composed = "\u00e9t\u00e9"     // été
	const decomposed = "e\u0301te\u0301" // été, combining accents

	cases := []struct {
		name string
		root string
	}{
		{"composed root", "\u00e9t\u00e9s"},
		{"decomposed root", "e\u0301te\u0301s"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSession(newStubDict(composed), language.French)
			s.Reset(tc.root)

			aw, score, err := s.Submit(decomposed)
			require.NoError(t, err)
			assert.Equal(t, 3, aw.Letters)
			assert.Equal(t, 3, score)
			assert.Equal(t, composed, aw.Normalized)

			_, _, err = s.Submit(composed)
			reason, ok := ReasonOf(err)
			require.True(t, ok)
			assert.Equal(t, ReasonDuplicate, reason)
		})
	}
}

func TestResetIsIdempotent(t *testing.T) {
	s := newStarted(t, "silkworm", newStubDict("silk"))
	_, _, err := s.Submit("silk")
	require.NoError(t, err)

	s.Reset("silkworm")
	assert.Empty(t, s.Words())
	assert.Zero(t, s.Score())

	s.Reset("silkworm")
	assert.Empty(t, s.Words())
	assert.Zero(t, s.Score())

	// previously accepted words are available again after a reset
	_, score, err := s.Submit("silk")
	require.NoError(t, err)
	assert.Equal(t, 4, score)
}

func TestResetLowercasesRoot(t *testing.T) {
	s := newStarted(t, "  SilkWorm", newStubDict())
	assert.Equal(t, "silkworm", s.RootWord())
}

func TestSubmitBeforeReset(t *testing.T) {
	s := NewSession(newStubDict("silk"), language.English)
	assert.False(t, s.Started())

	_, _, err := s.Submit("silk")
	assert.ErrorIs(t, err, ErrNotStarted)
	_, ok := ReasonOf(err)
	assert.False(t, ok)
}

func TestSubscribersSeeChanges(t *testing.T) {
	s := NewSession(newStubDict("silk"), language.English)
	var got []Event
	s.Subscribe(func(ev Event) { got = append(got, ev) })

	s.Reset("silkworm")
	_, _, err := s.Submit("silk")
	require.NoError(t, err)
	_, _, err = s.Submit("silk")
	require.Error(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, EventReset, got[0].Kind)
	assert.Equal(t, "silkworm", got[0].Snapshot.Root)
	assert.Equal(t, EventAccepted, got[1].Kind)
	require.NotNil(t, got[1].Accepted)
	assert.Equal(t, "silk", got[1].Accepted.Word)
	assert.Equal(t, 4, got[1].Snapshot.Score)
}

func TestIsPossible(t *testing.T) {
	cases := []struct {
		word, root string
		want       bool
	}{
		{"silk", "silkworm", true},
		{"mows", "silkworm", true},
		{"silky", "silkworm", false},
		{"roomy", "silkworm", false},
		{"moor", "silkworm", false},
		{"moor", "moorland", true},
	}
	for _, tc := range cases {
		t.Run(tc.word+"/"+tc.root, func(t *testing.T) {
			assert.Equal(t, tc.want, isPossible(tc.word, tc.root))
		})
	}
}

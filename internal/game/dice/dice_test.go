package dice_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// TestCryptoSource_Intn_InRange verifies the postcondition:
// every value returned by Intn(6) is in [0, 6).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

// TestCryptoSource_Intn_PanicsOnZero verifies the precondition:
// Intn panics when called with n <= 0.
func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestSeededSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewSeededSource(7)
	assert.Panics(t, func() { src.Intn(-1) })
}

// TestSeededSource_Reproducible verifies two sources with the same seed yield
// the same sequence.
func TestSeededSource_Reproducible(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		n := rapid.IntRange(1, 1000).Draw(rt, "n")
		a := dice.NewSeededSource(seed)
		b := dice.NewSeededSource(seed)
		for i := 0; i < 50; i++ {
			va, vb := a.Intn(n), b.Intn(n)
			assert.Equal(rt, va, vb)
			assert.GreaterOrEqual(rt, va, 0)
			assert.Less(rt, va, n)
		}
	})
}

// TestShuffle_IsPermutation verifies Shuffle never loses or duplicates elements.
func TestShuffle_IsPermutation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		in := rapid.SliceOf(rapid.Int()).Draw(rt, "in")
		seed := rapid.Uint64().Draw(rt, "seed")

		out := make([]int, len(in))
		copy(out, in)
		dice.Shuffle(dice.NewSeededSource(seed), len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})

		want := append([]int(nil), in...)
		got := append([]int(nil), out...)
		sort.Ints(want)
		sort.Ints(got)
		assert.Equal(rt, want, got)
	})
}

func TestShuffle_EmptyAndSingle(t *testing.T) {
	calls := 0
	swap := func(i, j int) { calls++ }
	dice.Shuffle(dice.NewSeededSource(1), 0, swap)
	dice.Shuffle(dice.NewSeededSource(1), 1, swap)
	assert.Equal(t, 0, calls)
	assert.Panics(t, func() { dice.Shuffle(dice.NewSeededSource(1), -1, swap) })
}

// TestLoggedSource_LogsEveryDraw verifies each draw is logged at debug level
// and the wrapped value is returned unchanged.
func TestLoggedSource_LogsEveryDraw(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logged := dice.NewLoggedSource(dice.NewSeededSource(42), zap.New(core))
	plain := dice.NewSeededSource(42)

	for i := 0; i < 5; i++ {
		require.Equal(t, plain.Intn(10), logged.Intn(10))
	}
	entries := logs.FilterMessage("random draw").All()
	require.Len(t, entries, 5)
	assert.Equal(t, int64(10), entries[0].ContextMap()["n"])
}

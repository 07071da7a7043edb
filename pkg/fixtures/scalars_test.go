package fixtures

import (
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

func newTestGenerator(seed uint64) *Generator {
	return New(WithSource(SeededSource(seed)), WithClock(func() time.Time { return fixedNow }))
}

func TestIntStaysInBounds(t *testing.T) {
	g := newTestGenerator(1)
	tests := []struct {
		name     string
		min, max int
	}{
		{name: "single value", min: 4, max: 4},
		{name: "small range", min: 2, max: 6},
		{name: "zero based", min: 0, max: 60},
		{name: "swapped", min: 10, max: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := min(tt.min, tt.max), max(tt.min, tt.max)
			for range 500 {
				n := g.Int(tt.min, tt.max)
				require.GreaterOrEqual(t, n, lo)
				require.LessOrEqual(t, n, hi)
			}
		})
	}
}

func TestIntReachesBothEnds(t *testing.T) {
	g := newTestGenerator(2)
	seen := map[int]bool{}
	for range 1000 {
		seen[g.Int(2, 6)] = true
	}
	for n := 2; n <= 6; n++ {
		assert.True(t, seen[n], "value %d never drawn", n)
	}
}

func TestStatusPickersUseTheirSets(t *testing.T) {
	g := newTestGenerator(3)
	builds := BuildStatuses()
	runs := RunStatuses()
	for range 500 {
		assert.Contains(t, builds, g.BuildStatus())
		assert.Contains(t, runs, g.RunStatus())
		assert.Contains(t, HostTags(), g.HostTag())
	}
	assert.NotContains(t, builds, StatusCancelling)
	assert.Contains(t, runs, StatusCancelling)
}

func TestRunningIsWeightedTwice(t *testing.T) {
	count := 0
	for _, s := range BuildStatuses() {
		if s == StatusRunning {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestWords(t *testing.T) {
	g := newTestGenerator(4)
	word := regexp.MustCompile(`^[a-z]+$`)
	assert.Regexp(t, word, g.Word())

	parts := strings.Split(g.Words(3), "-")
	require.Len(t, parts, 3)
	for _, p := range parts {
		assert.Regexp(t, word, p)
	}
	assert.Len(t, strings.Fields(g.Phrase(2)), 2)
}

func TestHashShape(t *testing.T) {
	g := newTestGenerator(5)
	valid := regexp.MustCompile(`^[0-9a-z]{64}$`)
	for range 100 {
		h := g.OstreeHash()
		assert.Len(t, h, 64)
		assert.Regexp(t, valid, h)
	}

	hex := g.Hash(3, 5, HexAlphabet)
	assert.Regexp(t, `^[0-9a-f]{15}$`, hex)
	assert.Empty(t, g.Hash(0, 32, OstreeAlphabet))
}

func TestDatesAreOffsetFromNow(t *testing.T) {
	g := newTestGenerator(6)
	for range 200 {
		recent := g.RecentDate(30)
		assert.False(t, recent.After(fixedNow))
		assert.False(t, recent.Before(fixedNow.Add(-30*24*time.Hour)))

		past := g.PastDate()
		assert.False(t, past.After(fixedNow))
		assert.False(t, past.Before(fixedNow.AddDate(-1, 0, 0).Add(-24*time.Hour)))

		future := g.FutureDate()
		assert.False(t, future.Before(fixedNow))
	}
	assert.Equal(t, fixedNow, g.RecentDate(0))
}

func TestNetworkScalars(t *testing.T) {
	g := newTestGenerator(7)
	assert.Regexp(t, `^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`, g.IPv4())
	assert.Regexp(t, `^([0-9a-f]{2}:){5}[0-9a-f]{2}$`, g.MAC())
	assert.Regexp(t, `^https://[a-z]+\.[a-z]+$`, g.URL())

	id, err := uuid.Parse(g.UUID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), id.Version())
	assert.Equal(t, uuid.RFC4122, id.Variant())
}

func TestSentences(t *testing.T) {
	g := newTestGenerator(8)
	s := g.Sentence()
	assert.True(t, strings.HasSuffix(s, "."))
	assert.Equal(t, strings.ToUpper(s[:1]), s[:1])

	assert.Len(t, strings.Split(g.Lines(4), "\n"), 4)
	assert.Empty(t, g.Lines(0))
}

func TestSeededSourcesRepeat(t *testing.T) {
	a := newTestGenerator(99)
	b := newTestGenerator(99)
	assert.Equal(t, a.Words(5), b.Words(5))
	assert.Equal(t, a.OstreeHash(), b.OstreeHash())
}

func TestSeededSourceIsSafeForConcurrentUse(t *testing.T) {
	src := SeededSource(5)

	var wg sync.WaitGroup
	results := make([][]int, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			draws := make([]int, 200)
			for j := range draws {
				draws[j] = src.IntN(10)
			}
			results[i] = draws
		}()
	}
	wg.Wait()

	for _, draws := range results {
		for _, n := range draws {
			assert.GreaterOrEqual(t, n, 0)
			assert.Less(t, n, 10)
		}
	}
}

package fixtures

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Status is a build, run or test state.
type Status string

const (
	StatusFailed              Status = "FAILED"
	StatusQueued              Status = "QUEUED"
	StatusPassed              Status = "PASSED"
	StatusPromoted            Status = "PROMOTED"
	StatusRunningWithFailures Status = "RUNNING_WITH_FAILURES"
	StatusRunning             Status = "RUNNING"
	StatusCancelling          Status = "CANCELLING"
)

const (
	// MaxNumber is the upper bound of Number.
	MaxNumber = 99999

	// OstreeAlphabet is the character set of ostree hash blocks.
	OstreeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	// HexAlphabet is the character set of sha-like digests.
	HexAlphabet = "0123456789abcdef"

	alphaNumeric = "abcdefghijklmnopqrstuvwxyz0123456789"
	daysPerYear  = 365
)

// RUNNING appears twice so it is drawn twice as often.
var buildStatuses = []Status{
	StatusFailed,
	StatusQueued,
	StatusPassed,
	StatusPromoted,
	StatusRunningWithFailures,
	StatusRunning,
	StatusRunning,
}

var runStatuses = []Status{
	StatusFailed,
	StatusQueued,
	StatusPassed,
	StatusPromoted,
	StatusRunningWithFailures,
	StatusRunning,
	StatusRunning,
	StatusCancelling,
}

var hostTags = []string{"arm32", "arm64", "amd64"}

// BuildStatuses returns the weighted build status set.
func BuildStatuses() []Status { return append([]Status(nil), buildStatuses...) }

// RunStatuses returns the weighted run status set.
func RunStatuses() []Status { return append([]Status(nil), runStatuses...) }

// HostTags returns the host tag set.
func HostTags() []string { return append([]string(nil), hostTags...) }

func pick[T any](g *Generator, set []T) T {
	return set[g.src.IntN(len(set))]
}

// Int returns a uniform integer in [min, max].
func (g *Generator) Int(min, max int) int {
	if min > max {
		min, max = max, min
	}
	return min + g.src.IntN(max-min+1)
}

// IntIn returns a uniform integer within r.
func (g *Generator) IntIn(r Range) int {
	return g.Int(r.Min, r.Max)
}

// Number returns a uniform integer in [0, MaxNumber].
func (g *Generator) Number() int {
	return g.Int(0, MaxNumber)
}

// Bool flips a fair coin.
func (g *Generator) Bool() bool {
	return g.src.IntN(2) == 1
}

// BuildStatus draws a weighted build status.
func (g *Generator) BuildStatus() Status { return pick(g, buildStatuses) }

// RunStatus draws a weighted run status, which may be CANCELLING.
func (g *Generator) RunStatus() Status { return pick(g, runStatuses) }

// HostTag draws a host architecture tag.
func (g *Generator) HostTag() string { return pick(g, hostTags) }

// Word returns one lower-case lexicon word.
func (g *Generator) Word() string {
	return pick(g, lexicon)
}

// Words returns n lexicon words joined with hyphens.
func (g *Generator) Words(n int) string {
	if n < 1 {
		n = 1
	}
	words := make([]string, n)
	for i := range words {
		words[i] = g.Word()
	}
	return strings.Join(words, "-")
}

// Phrase returns n lexicon words joined with spaces.
func (g *Generator) Phrase(n int) string {
	return strings.ReplaceAll(g.Words(n), "-", " ")
}

// NullableWord returns nil or a word with equal probability.
func (g *Generator) NullableWord() *string {
	if g.Bool() {
		return nil
	}
	w := g.Word()
	return &w
}

// RecentDate returns a time between maxDaysAgo days ago and now.
func (g *Generator) RecentDate(maxDaysAgo int) time.Time {
	return g.now().UTC().Add(-g.offset(maxDaysAgo))
}

// PastDate returns a time up to one year ago.
func (g *Generator) PastDate() time.Time {
	return g.RecentDate(daysPerYear)
}

// FutureDate returns a time up to one year ahead.
func (g *Generator) FutureDate() time.Time {
	return g.now().UTC().Add(g.offset(daysPerYear))
}

func (g *Generator) offset(days int) time.Duration {
	if days < 0 {
		days = 0
	}
	span := int(time.Duration(days) * 24 * time.Hour / time.Millisecond)
	return time.Duration(g.src.IntN(span+1)) * time.Millisecond
}

// Hash concatenates blockCount independently drawn strings of blockLen
// characters from alphabet.
func (g *Generator) Hash(blockCount, blockLen int, alphabet string) string {
	if alphabet == "" {
		alphabet = alphaNumeric
	}
	var b strings.Builder
	b.Grow(blockCount * blockLen)
	for range blockCount {
		b.WriteString(g.block(blockLen, alphabet))
	}
	return b.String()
}

func (g *Generator) block(n int, alphabet string) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[g.src.IntN(len(alphabet))]
	}
	return string(buf)
}

// OstreeHash returns a 64 character commit-like hash built from two 32
// character blocks.
func (g *Generator) OstreeHash() string {
	return g.Hash(2, 32, OstreeAlphabet)
}

// AlphaNumeric returns n random lower-case alphanumeric characters.
func (g *Generator) AlphaNumeric(n int) string {
	return g.Hash(1, n, alphaNumeric)
}

// Sentence returns a capitalised lorem sentence of 3 to 10 words.
func (g *Generator) Sentence() string {
	words := make([]string, g.Int(3, 10))
	for i := range words {
		words[i] = pick(g, lorem)
	}
	s := strings.Join(words, " ")
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r) + "."
}

// Sentences returns n lorem sentences separated by spaces.
func (g *Generator) Sentences(n int) string {
	return g.joinSentences(n, " ")
}

// Lines returns n lorem sentences separated by newlines.
func (g *Generator) Lines(n int) string {
	return g.joinSentences(n, "\n")
}

func (g *Generator) joinSentences(n int, sep string) string {
	if n <= 0 {
		return ""
	}
	out := make([]string, n)
	for i := range out {
		out[i] = g.Sentence()
	}
	return strings.Join(out, sep)
}

// IPv4 returns a dotted-quad address.
func (g *Generator) IPv4() string {
	return fmt.Sprintf("%d.%d.%d.%d", g.Int(0, 255), g.Int(0, 255), g.Int(0, 255), g.Int(0, 255))
}

// MAC returns a colon separated hardware address.
func (g *Generator) MAC() string {
	parts := make([]string, 6)
	for i := range parts {
		parts[i] = g.Hash(1, 2, HexAlphabet)
	}
	return strings.Join(parts, ":")
}

// URL returns an https URL on a random domain.
func (g *Generator) URL() string {
	return fmt.Sprintf("https://%s.%s", g.Word(), pick(g, topLevelDomains))
}

// UUID returns a version 4 UUID drawn from the generator's source.
func (g *Generator) UUID() string {
	var id uuid.UUID
	for i := range id {
		id[i] = byte(g.src.IntN(256))
	}
	id[6] = (id[6] & 0x0f) | 0x40
	id[8] = (id[8] & 0x3f) | 0x80
	return id.String()
}

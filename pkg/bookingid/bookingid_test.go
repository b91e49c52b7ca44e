package bookingid

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same index, producing a predictable suffix.
type fixedRand struct{ n int }

func (r fixedRand) IntN(int) int { return r.n }

// seqRand returns 0, 1, 2, ... modulo the requested bound.
type seqRand struct{ i int }

func (r *seqRand) IntN(n int) int {
	v := r.i % n
	r.i++
	return v
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func TestGenerator_Next_Format(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	gen := NewWithSource(fixedClock(at), fixedRand{n: 0})

	id := gen.Next()

	require.True(t, strings.HasPrefix(id, "TCM"))
	assert.Equal(t, "00000", id[len(id)-5:])

	// Timestamp component: milliseconds in base36, upper-cased
	wantTS := strings.ToUpper(strconvBase36(at.UnixMilli()))
	assert.Equal(t, "TCM"+wantTS+"00000", id)

	for _, c := range id {
		assert.True(t, (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z'), "unexpected character %q in %s", c, id)
	}
}

func TestGenerator_Next_UniqueWithinMillisecond(t *testing.T) {
	at := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	gen := NewWithSource(fixedClock(at), &seqRand{})

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := gen.Next()
		_, dup := seen[id]
		require.False(t, dup, "duplicate identifier %s", id)
		seen[id] = struct{}{}
	}
}

func TestGenerator_Next_LexicalOrderFollowsTime(t *testing.T) {
	base := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 10; i++ {
		gen := NewWithSource(fixedClock(base.Add(time.Duration(i)*time.Millisecond)), fixedRand{n: 0})
		ids = append(ids, gen.Next())
	}

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	assert.Equal(t, sorted, ids, "identifiers must sort lexically in creation order")
}

func TestNew_ProducesWellFormedIdentifiers(t *testing.T) {
	gen := New()

	a := gen.Next()
	b := gen.Next()

	assert.True(t, strings.HasPrefix(a, "TCM"))
	assert.True(t, strings.HasPrefix(b, "TCM"))
	assert.NotEqual(t, a, b)
	// 8 base36 digits cover millisecond timestamps until 2059
	assert.Len(t, a, len("TCM")+8+5)
}

func strconvBase36(v int64) string {
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	if v == 0 {
		return "0"
	}
	var out []byte
	for v > 0 {
		out = append([]byte{digits[v%36]}, out...)
		v /= 36
	}
	return string(out)
}

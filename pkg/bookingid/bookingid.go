// Package bookingid mints public booking identifiers of the form
//
//	TCM<millisecond timestamp, base36><5 random base36 chars>
//
// for example "TCMMF3Q8H2K07XQ2R". Identifiers never touch external I/O,
// sort lexically in creation order (the base36 timestamp keeps a constant
// width until the year 5188) and are unique with overwhelming probability:
// within a single millisecond two identifiers collide with probability
// 1/36^5 (≈1.7e-8), so across the expected booking volume collisions are
// negligible and no uniqueness round-trip against the store is performed.
package bookingid

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	mrand "math/rand/v2"
)

const (
	prefix        = "TCM"
	suffixLength  = 5
	suffixCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Clock supplies the timestamp component. Injected so tests can assert the
// format and ordering without flakiness.
type Clock func() time.Time

// Rand supplies the randomized suffix.
type Rand interface {
	IntN(n int) int
}

// Generator mints booking identifiers.
type Generator struct {
	clock Clock
	rnd   Rand
}

// New creates a production generator using the wall clock and a ChaCha8
// source seeded from crypto/rand.
func New() *Generator {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		// crypto/rand is documented to never fail on supported platforms;
		// fall back to a time-derived seed rather than panicking.
		binary.LittleEndian.PutUint64(seed[:8], uint64(time.Now().UnixNano()))
	}
	return NewWithSource(time.Now, mrand.New(mrand.NewChaCha8(seed)))
}

// NewWithSource creates a generator with an injected clock and randomness
// source. Used in tests.
func NewWithSource(clock Clock, rnd Rand) *Generator {
	return &Generator{clock: clock, rnd: rnd}
}

// Next mints a new booking identifier.
func (g *Generator) Next() string {
	var b strings.Builder
	b.Grow(len(prefix) + 9 + suffixLength)

	b.WriteString(prefix)
	b.WriteString(strings.ToUpper(strconv.FormatInt(g.clock().UnixMilli(), 36)))
	for i := 0; i < suffixLength; i++ {
		b.WriteByte(suffixCharset[g.rnd.IntN(len(suffixCharset))])
	}

	return b.String()
}

// Package folio issues the human-readable codes printed on vouchers.
package folio

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"
)

const (
	prefix = "HV"
	width  = 7
	modulo = 10_000_000
)

// Generator hands out folios in the HV####### format. A single atomic
// counter is seeded once from the clock plus a small random perturbation
// and every call takes the next value, so codes repeat only after 10^7
// issues within one process.
type Generator struct {
	counter atomic.Int64
}

// NewGenerator seeds a fresh generator.
func NewGenerator() *Generator {
	g := &Generator{}
	g.counter.Store(time.Now().UnixMilli() + rand.Int63n(1000))
	return g
}

// Next returns the next folio, e.g. "HV0034921".
func (g *Generator) Next() string {
	n := g.counter.Add(1)
	return fmt.Sprintf("%s%0*d", prefix, width, n%modulo)
}

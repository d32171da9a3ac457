package testutil

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/bzaczynski/microanalyst/internal/record"
	"github.com/bzaczynski/microanalyst/internal/welladdr"
)

// DeterministicValues produces pseudo-random well readings in [0, 1)
// from a fixed seed. Two sources with the same seed yield the same
// sequence, so fixtures built from them are reproducible.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicValues struct {
	mu   sync.Mutex
	seed uint64
	rng  *rand.Rand
}

// NewDeterministicValues creates a source seeded with seed.
func NewDeterministicValues(seed uint64) *DeterministicValues {
	return &DeterministicValues{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed)),
	}
}

// Next returns the next reading, rounded to four decimal places like an
// absorbance reader would report it.
func (d *DeterministicValues) Next() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return math.Round(d.rng.Float64()*10000) / 10000
}

// Plate returns the readings of a full microplate.
func (d *DeterministicValues) Plate() record.Values {
	values := make(record.Values, welladdr.Count)
	for i := range values {
		values[i] = d.Next()
	}
	return values
}

// Reset restarts the sequence from the seed.
func (d *DeterministicValues) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rng = rand.New(rand.NewPCG(d.seed, d.seed))
}

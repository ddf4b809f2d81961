package glauber

import (
	"math/rand"

	"github.com/san-kum/isinglab/internal/lattice"
)

// Dynamics applies single-spin-flip Glauber updates to one lattice. It
// owns the random source, so a fixed seed makes lattice initialization and
// every update decision reproducible. Not safe for concurrent use; updates
// are sequential by construction since each depends on the previous state.
type Dynamics struct {
	lat      *lattice.Lattice
	rng      *rand.Rand
	attempts uint64
	accepted uint64
}

// New wraps lat with a dynamics engine seeded from seed.
func New(lat *lattice.Lattice, seed int64) *Dynamics {
	return &Dynamics{lat: lat, rng: rand.New(rand.NewSource(seed))}
}

// Lattice exposes the underlying lattice.
func (d *Dynamics) Lattice() *lattice.Lattice { return d.lat }

// Reset fills the lattice with a fresh uniform-random configuration using
// the owned random source.
func (d *Dynamics) Reset() {
	d.lat.Init(d.rng)
}

// Attempt performs one single-site update at temperature temp: pick a
// random site, evaluate the flip energy, and flip iff the Glauber rule
// accepts.
func (d *Dynamics) Attempt(temp float64) {
	n := d.lat.Size()
	row := d.rng.Intn(n)
	col := d.rng.Intn(n)

	dE := d.lat.FlipEnergy(row, col)
	d.attempts++
	if (Rule{Temperature: temp}).Accept(dE, d.rng.Float64()) {
		d.lat.Flip(row, col)
		d.accepted++
	}
}

// Sweep performs exactly N^2 update attempts at temperature temp. Sites
// are re-sampled independently each attempt (with replacement), so a
// single sweep may touch a site several times or not at all.
func (d *Dynamics) Sweep(temp float64) {
	sites := d.lat.Sites()
	for i := 0; i < sites; i++ {
		d.Attempt(temp)
	}
}

// AdvanceFrame runs one sweep at temp and returns a snapshot of the grid
// for a renderer. This is the whole visual-mode contract: the caller loop
// decides timing and termination.
func (d *Dynamics) AdvanceFrame(temp float64) [][]int8 {
	d.Sweep(temp)
	return d.lat.Snapshot()
}

// Counters returns the number of update attempts and accepted flips since
// construction.
func (d *Dynamics) Counters() (attempts, accepted uint64) {
	return d.attempts, d.accepted
}

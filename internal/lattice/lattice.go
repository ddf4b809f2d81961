package lattice

import (
	"errors"
	"math/rand"
)

// J is the ferromagnetic coupling constant. Aligned neighbors lower the
// energy; the whole package assumes J = 1.
const J = 1

// ErrInvalidDimensions indicates a non-positive lattice size.
var ErrInvalidDimensions = errors.New("lattice: dimensions must be positive")

// Lattice is an N x N grid of spins (+1 or -1) with periodic boundaries,
// stored row-major.
type Lattice struct {
	n     int
	spins []int8
}

// New allocates an n x n lattice with every spin set to +1.
func New(n int) (*Lattice, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}
	spins := make([]int8, n*n)
	for i := range spins {
		spins[i] = 1
	}
	return &Lattice{n: n, spins: spins}, nil
}

// Size returns the edge length N.
func (l *Lattice) Size() int { return l.n }

// Sites returns the total number of sites, N^2.
func (l *Lattice) Sites() int { return l.n * l.n }

// Init overwrites every spin independently and uniformly at random
// with +1 or -1.
func (l *Lattice) Init(rng *rand.Rand) {
	for i := range l.spins {
		if rng.Intn(2) == 0 {
			l.spins[i] = 1
		} else {
			l.spins[i] = -1
		}
	}
}

func (l *Lattice) index(row, col int) int { return row*l.n + col }

// Spin returns the spin at (row, col).
func (l *Lattice) Spin(row, col int) int8 { return l.spins[l.index(row, col)] }

// SetSpin writes the spin at (row, col). Callers must pass +1 or -1.
func (l *Lattice) SetSpin(row, col int, s int8) { l.spins[l.index(row, col)] = s }

// Flip negates the spin at (row, col).
func (l *Lattice) Flip(row, col int) { l.spins[l.index(row, col)] *= -1 }

// Neighbors returns the four nearest-neighbor spins in order
// up, down, left, right, wrapping toroidally.
func (l *Lattice) Neighbors(row, col int) [4]int8 {
	n := l.n
	up := (row - 1 + n) % n
	down := (row + 1) % n
	left := (col - 1 + n) % n
	right := (col + 1) % n
	return [4]int8{
		l.spins[l.index(up, col)],
		l.spins[l.index(down, col)],
		l.spins[l.index(row, left)],
		l.spins[l.index(row, right)],
	}
}

// LocalField returns the sum of the four neighbor spins, an integer in
// {-4, -2, 0, 2, 4}.
func (l *Lattice) LocalField(row, col int) int {
	nb := l.Neighbors(row, col)
	return int(nb[0]) + int(nb[1]) + int(nb[2]) + int(nb[3])
}

// FlipEnergy returns the energy change dE = 2*J*s*LocalField for flipping
// the spin at (row, col). Positive means the flip is unfavorable.
func (l *Lattice) FlipEnergy(row, col int) int {
	return 2 * J * int(l.Spin(row, col)) * l.LocalField(row, col)
}

// TotalEnergy returns -J times the sum of spin products over all
// undirected nearest-neighbor bonds, each bond counted once (right and
// down neighbor per site, with wrap).
func (l *Lattice) TotalEnergy() int {
	n := l.n
	e := 0
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			s := int(l.spins[l.index(row, col)])
			right := int(l.spins[l.index(row, (col+1)%n)])
			down := int(l.spins[l.index((row+1)%n, col)])
			e -= J * s * (right + down)
		}
	}
	return e
}

// TotalMagnetization returns the sum of all spins.
func (l *Lattice) TotalMagnetization() int {
	m := 0
	for _, s := range l.spins {
		m += int(s)
	}
	return m
}

// Snapshot returns a copy of the grid as rows of spins, safe to hand to
// renderers while the simulation keeps mutating the lattice.
func (l *Lattice) Snapshot() [][]int8 {
	grid := make([][]int8, l.n)
	for row := 0; row < l.n; row++ {
		grid[row] = make([]int8, l.n)
		copy(grid[row], l.spins[row*l.n:(row+1)*l.n])
	}
	return grid
}

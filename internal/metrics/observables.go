package metrics

import (
	"math"

	"github.com/san-kum/isinglab/internal/sim"
)

// EnergyPerSite averages the sampled total energy over N^2 sites.
type EnergyPerSite struct {
	sites   float64
	samples int
	total   float64
}

func NewEnergyPerSite(n int) *EnergyPerSite {
	return &EnergyPerSite{sites: float64(n * n)}
}

func (e *EnergyPerSite) Name() string { return "energy_per_site" }

func (e *EnergyPerSite) Observe(s sim.Sample) {
	e.total += s.Energy / e.sites
	e.samples++
}

func (e *EnergyPerSite) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *EnergyPerSite) Reset() {
	e.total = 0
	e.samples = 0
}

// AbsMagnetizationPerSite averages |M|/N^2, the order parameter of the
// ferromagnetic transition.
type AbsMagnetizationPerSite struct {
	sites   float64
	samples int
	total   float64
}

func NewAbsMagnetizationPerSite(n int) *AbsMagnetizationPerSite {
	return &AbsMagnetizationPerSite{sites: float64(n * n)}
}

func (m *AbsMagnetizationPerSite) Name() string { return "abs_magnetization_per_site" }

func (m *AbsMagnetizationPerSite) Observe(s sim.Sample) {
	m.total += math.Abs(s.Magnetization) / m.sites
	m.samples++
}

func (m *AbsMagnetizationPerSite) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *AbsMagnetizationPerSite) Reset() {
	m.total = 0
	m.samples = 0
}

package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/isinglab/internal/glauber"
	"github.com/san-kum/isinglab/internal/lattice"
)

// Sampling policy for batch runs: the first sampleStart sweeps of each
// temperature block are discarded as thermalization, then every
// sampleEvery-th sweep is recorded.
const (
	sampleStart = 99
	sampleEvery = 10
)

// Config holds the batch-run parameters.
type Config struct {
	// Dimensions is the lattice edge length N.
	Dimensions int
	// Sweeps is the number of Monte Carlo sweeps per temperature.
	Sweeps int
	// Seed initializes the shared random source.
	Seed int64
	// Schedule is the ordered temperature sequence. Empty means
	// DefaultSchedule.
	Schedule Schedule
}

func (c Config) validate() error {
	if c.Sweeps <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidSweeps, c.Sweeps)
	}
	for _, t := range c.Schedule {
		if t <= 0 {
			return fmt.Errorf("%w, got %g", ErrNonPositiveTemperature, t)
		}
	}
	return nil
}

// Result is the outcome of one batch run.
type Result struct {
	// Samples are the recorded observables in temperature-then-sweep order.
	Samples []Sample
	// Metrics holds the final value of every registered metric.
	Metrics map[string]float64
	// Warnings collects non-fatal run diagnostics.
	Warnings []string
	// Attempts and Accepted count single-site updates across the whole run.
	Attempts uint64
	Accepted uint64
}

// Runner drives the full temperature sweep: for each temperature it
// re-initializes the lattice, runs the configured number of sweeps, and
// samples observables past the thermalization cutoff.
type Runner struct {
	cfg       Config
	dyn       *glauber.Dynamics
	metrics   []Metric
	observers []Observer
}

// NewRunner validates cfg and builds the lattice and dynamics engine.
func NewRunner(cfg Config) (*Runner, error) {
	if len(cfg.Schedule) == 0 {
		cfg.Schedule = DefaultSchedule()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	lat, err := lattice.New(cfg.Dimensions)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, dyn: glauber.New(lat, cfg.Seed)}, nil
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Config returns the validated configuration, schedule included.
func (r *Runner) Config() Config { return r.cfg }

// Run executes the full schedule. A canceled context returns the partial
// result with ctx.Err(); the batch CLI passes context.Background(), so a
// batch run always completes its schedule.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Samples: make([]Sample, 0),
		Metrics: make(map[string]float64),
	}

	if r.cfg.Sweeps <= sampleStart {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"sweeps=%d never reaches the sampling cutoff (%d); no observables will be recorded",
			r.cfg.Sweeps, sampleStart+1))
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	lat := r.dyn.Lattice()
	for _, temp := range r.cfg.Schedule {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.dyn.Reset()
		for _, o := range r.observers {
			o.OnTemperature(temp)
		}

		for i := 0; i < r.cfg.Sweeps; i++ {
			if i%sampleEvery == 0 {
				for _, o := range r.observers {
					o.OnSweep(temp, i, r.cfg.Sweeps)
				}
			}

			r.dyn.Sweep(temp)

			if i >= sampleStart && (i-sampleStart)%sampleEvery == 0 {
				s := Sample{
					Temperature:   temp,
					Energy:        float64(lat.TotalEnergy()),
					Magnetization: float64(lat.TotalMagnetization()),
				}
				result.Samples = append(result.Samples, s)
				for _, m := range r.metrics {
					m.Observe(s)
				}
			}
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Attempts, result.Accepted = r.dyn.Counters()

	return result, nil
}

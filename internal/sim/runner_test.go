package sim

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestDefaultSchedule(t *testing.T) {
	s := DefaultSchedule()

	if len(s) != 20 {
		t.Fatalf("expected 20 temperatures, got %d", len(s))
	}
	if s[0] != 1.0 {
		t.Errorf("first temperature = %g, want 1.0", s[0])
	}
	if math.Abs(s[19]-2.9) > 1e-9 {
		t.Errorf("last temperature = %g, want 2.9", s[19])
	}
	for i := 1; i < len(s); i++ {
		if s[i] <= s[i-1] {
			t.Errorf("schedule not increasing at %d: %g <= %g", i, s[i], s[i-1])
		}
	}
}

func TestRangeSchedule(t *testing.T) {
	tests := []struct {
		name    string
		start   float64
		stop    float64
		step    float64
		wantLen int
		wantErr bool
	}{
		{"standard", 1.0, 3.0, 0.1, 20, false},
		{"single value", 2.2, 2.3, 0.1, 1, false},
		{"coarse", 1.0, 3.0, 0.5, 4, false},
		{"empty range", 3.0, 1.0, 0.1, 0, true},
		{"zero step", 1.0, 3.0, 0, 0, true},
		{"negative step", 1.0, 3.0, -0.1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := RangeSchedule(tt.start, tt.stop, tt.step)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrInvalidSchedule) {
					t.Errorf("error = %v, want ErrInvalidSchedule", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(s) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(s), tt.wantLen)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"full", ModeFull, false},
		{"Full", ModeFull, false},
		{"visual", ModeVisual, false},
		{"VISUAL", ModeVisual, false},
		{"batch", ModeFull, true},
		{"", ModeFull, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMode(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMode(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewRunnerValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dimensions", Config{Dimensions: 0, Sweeps: 100}},
		{"negative dimensions", Config{Dimensions: -5, Sweeps: 100}},
		{"zero sweeps", Config{Dimensions: 10, Sweeps: 0}},
		{"negative sweeps", Config{Dimensions: 10, Sweeps: -1}},
		{"non-positive temperature", Config{Dimensions: 10, Sweeps: 100, Schedule: Schedule{1.0, -2.0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRunner(tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

type countingObserver struct {
	temps  []float64
	sweeps int
}

func (c *countingObserver) OnTemperature(temp float64)         { c.temps = append(c.temps, temp) }
func (c *countingObserver) OnSweep(temp float64, sweep, _ int) { c.sweeps++ }

func TestSamplingSchedule(t *testing.T) {
	tests := []struct {
		name        string
		sweeps      int
		wantSamples int
		wantWarning bool
	}{
		{"150 sweeps", 150, 6, false}, // indices 99,109,...,149
		{"110 sweeps", 110, 2, false}, // indices 99,109
		{"100 sweeps", 100, 1, false}, // index 99 only
		{"99 sweeps", 99, 0, true},
		{"50 sweeps", 50, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRunner(Config{
				Dimensions: 4,
				Sweeps:     tt.sweeps,
				Seed:       7,
				Schedule:   Schedule{1.5},
			})
			if err != nil {
				t.Fatalf("new runner: %v", err)
			}

			result, err := r.Run(context.Background())
			if err != nil {
				t.Fatalf("run: %v", err)
			}

			if len(result.Samples) != tt.wantSamples {
				t.Errorf("samples = %d, want %d", len(result.Samples), tt.wantSamples)
			}
			if tt.wantWarning != (len(result.Warnings) > 0) {
				t.Errorf("warnings = %v, wantWarning = %v", result.Warnings, tt.wantWarning)
			}
		})
	}
}

func TestRunObserversAndAttempts(t *testing.T) {
	r, err := NewRunner(Config{
		Dimensions: 3,
		Sweeps:     30,
		Seed:       1,
		Schedule:   Schedule{1.0, 2.0},
	})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	obs := &countingObserver{}
	r.AddObserver(obs)

	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if !reflect.DeepEqual(obs.temps, []float64{1.0, 2.0}) {
		t.Errorf("temperature notifications = %v", obs.temps)
	}
	// One OnSweep per 10 sweeps per temperature: 3 * 2.
	if obs.sweeps != 6 {
		t.Errorf("sweep notifications = %d, want 6", obs.sweeps)
	}
	// Every sweep issues exactly N^2 attempts.
	wantAttempts := uint64(2 * 30 * 9)
	if result.Attempts != wantAttempts {
		t.Errorf("attempts = %d, want %d", result.Attempts, wantAttempts)
	}
}

func TestRunDeterminism(t *testing.T) {
	run := func() *Result {
		r, err := NewRunner(Config{
			Dimensions: 8,
			Sweeps:     120,
			Seed:       42,
			Schedule:   Schedule{1.0, 2.0, 2.9},
		})
		if err != nil {
			t.Fatalf("new runner: %v", err)
		}
		result, err := r.Run(context.Background())
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		return result
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a.Samples, b.Samples) {
		t.Error("identical seeds produced different sample sequences")
	}
	if a.Accepted != b.Accepted {
		t.Errorf("accepted counts differ: %d vs %d", a.Accepted, b.Accepted)
	}
}

func TestRunTwoByTwoScenario(t *testing.T) {
	r, err := NewRunner(Config{
		Dimensions: 2,
		Sweeps:     100,
		Seed:       42,
		Schedule:   Schedule{1.0},
	})
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(result.Samples) != 1 {
		t.Fatalf("samples = %d, want 1", len(result.Samples))
	}

	s := result.Samples[0]
	mag := int(s.Magnetization)
	if mag < -4 || mag > 4 || mag%2 != 0 {
		t.Errorf("magnetization = %d, want even in [-4,4]", mag)
	}

	// On the 2x2 torus each site's two row neighbors coincide, so total
	// energy is restricted to multiples of 4 in [-8, 8].
	energy := int(s.Energy)
	valid := map[int]bool{-8: true, -4: true, 0: true, 4: true, 8: true}
	if !valid[energy] {
		t.Errorf("energy = %d, want one of {-8,-4,0,4,8}", energy)
	}
}

func TestMagnetizationTrendAcrossTemperatures(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical trend test")
	}

	meanAbsM := func(seed int64, temp float64) float64 {
		r, err := NewRunner(Config{
			Dimensions: 20,
			Sweeps:     150,
			Seed:       seed,
			Schedule:   Schedule{temp},
		})
		if err != nil {
			t.Fatalf("new runner: %v", err)
		}
		result, err := r.Run(context.Background())
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		sum := 0.0
		for _, s := range result.Samples {
			sum += math.Abs(s.Magnetization) / 400.0
		}
		return sum / float64(len(result.Samples))
	}

	var low, high float64
	seeds := []int64{1, 2, 3}
	for _, seed := range seeds {
		low += meanAbsM(seed, 1.0)
		high += meanAbsM(seed, 2.9)
	}
	low /= float64(len(seeds))
	high /= float64(len(seeds))

	if low <= high+0.2 {
		t.Errorf("expected ordered phase at T=1.0: |m| low=%.3f high=%.3f", low, high)
	}
}

package analysis

import (
	"sort"

	"github.com/san-kum/isinglab/internal/sim"
)

// SusceptibilityPoint is the magnetic susceptibility estimate at one
// schedule temperature.
type SusceptibilityPoint struct {
	Temperature    float64
	Susceptibility float64
}

// Susceptibility groups samples by temperature and computes the per-site
// susceptibility chi = N^2 (<m^2> - <|m|>^2) / T from the per-site
// magnetization m. Temperatures with fewer than two samples are skipped
// since they carry no fluctuation information.
func Susceptibility(samples []sim.Sample, sites int) []SusceptibilityPoint {
	type acc struct {
		sumAbs float64
		sumSq  float64
		count  int
	}

	byTemp := make(map[float64]*acc)
	for _, s := range samples {
		m := s.Magnetization / float64(sites)
		a, ok := byTemp[s.Temperature]
		if !ok {
			a = &acc{}
			byTemp[s.Temperature] = a
		}
		if m < 0 {
			m = -m
		}
		a.sumAbs += m
		a.sumSq += m * m
		a.count++
	}

	points := make([]SusceptibilityPoint, 0, len(byTemp))
	for temp, a := range byTemp {
		if a.count < 2 {
			continue
		}
		meanAbs := a.sumAbs / float64(a.count)
		meanSq := a.sumSq / float64(a.count)
		chi := float64(sites) * (meanSq - meanAbs*meanAbs) / temp
		points = append(points, SusceptibilityPoint{Temperature: temp, Susceptibility: chi})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Temperature < points[j].Temperature })
	return points
}

// Curie returns the temperature with the largest susceptibility, a crude
// critical-point estimate from one batch run. The second return is false
// when no temperature has enough samples.
func Curie(samples []sim.Sample, sites int) (float64, bool) {
	points := Susceptibility(samples, sites)
	if len(points) == 0 {
		return 0, false
	}

	best := points[0]
	for _, p := range points[1:] {
		if p.Susceptibility > best.Susceptibility {
			best = p
		}
	}
	return best.Temperature, true
}

package analysis

// Autocorrelation returns the normalized autocorrelation of the series at
// lags 0..maxLag. Lag 0 is always 1 unless the series has zero variance,
// in which case every lag is 0.
func Autocorrelation(series []float64, maxLag int) []float64 {
	n := len(series)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range series {
		d := v - mean
		variance += d * d
	}

	rho := make([]float64, maxLag+1)
	if variance == 0 {
		return rho
	}

	for lag := 0; lag <= maxLag; lag++ {
		sum := 0.0
		for i := 0; i+lag < n; i++ {
			sum += (series[i] - mean) * (series[i+lag] - mean)
		}
		rho[lag] = sum / variance
	}

	return rho
}

// IntegratedTime estimates the integrated autocorrelation time
// 1 + 2*sum(rho_k), truncating the sum at the first non-positive lag.
// Values near 1 mean successive samples are effectively independent.
func IntegratedTime(series []float64) float64 {
	rho := Autocorrelation(series, len(series)/2)
	if len(rho) == 0 {
		return 0
	}

	tau := 1.0
	for _, r := range rho[1:] {
		if r <= 0 {
			break
		}
		tau += 2 * r
	}
	return tau
}

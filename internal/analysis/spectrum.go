package analysis

import (
	"math"
	"math/cmplx"
)

// PowerSpectrum returns the magnitudes of the positive-frequency half of
// the series' discrete Fourier transform. The series is zero-padded to a
// power-of-2 length first, so any length works. Series shorter than two
// points carry no frequency content and yield nil.
func PowerSpectrum(series []float64) []float64 {
	if len(series) < 2 {
		return nil
	}

	n := 1
	for n < len(series) {
		n *= 2
	}
	buf := make([]complex128, n)
	for i, v := range series {
		buf[i] = complex(v, 0)
	}

	fft(buf)

	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(buf[i])
	}
	return ps
}

// fft transforms buf in place, radix-2 Cooley-Tukey; len(buf) must be a
// power of 2.
func fft(buf []complex128) {
	n := len(buf)
	if n <= 1 {
		return
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = buf[2*i]
		odd[i] = buf[2*i+1]
	}

	fft(even)
	fft(odd)

	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		buf[k] = even[k] + w*odd[k]
		buf[k+n/2] = even[k] - w*odd[k]
	}
}

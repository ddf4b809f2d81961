package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/isinglab/internal/sim"
)

type ExportData struct {
	ID         string             `json:"id"`
	Algorithm  string             `json:"algorithm"`
	Dimensions int                `json:"dimensions"`
	Sweeps     int                `json:"sweeps"`
	Seed       int64              `json:"seed"`
	Schedule   []float64          `json:"schedule"`
	Samples    []sim.Sample       `json:"samples"`
	Metrics    map[string]float64 `json:"metrics"`
}

func exportJSON(w io.Writer, meta *RunMetadata, samples []sim.Sample) error {
	data := ExportData{
		ID:         meta.ID,
		Algorithm:  meta.Algorithm,
		Dimensions: meta.Dimensions,
		Sweeps:     meta.Sweeps,
		Seed:       meta.Seed,
		Schedule:   meta.Schedule,
		Samples:    samples,
		Metrics:    meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, meta *RunMetadata, samples []sim.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return exportJSON(file, meta, samples)
}

func ExportJSONStdout(meta *RunMetadata, samples []sim.Sample) error {
	return exportJSON(os.Stdout, meta, samples)
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/isinglab/internal/sim"
)

const Algorithm = "glauber"

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Algorithm  string             `json:"algorithm"`
	Timestamp  time.Time          `json:"timestamp"`
	Dimensions int                `json:"dimensions"`
	Sweeps     int                `json:"sweeps"`
	Seed       int64              `json:"seed"`
	Schedule   []float64          `json:"schedule"`
	Samples    int                `json:"samples"`
	Attempts   uint64             `json:"attempts"`
	Accepted   uint64             `json:"accepted"`
	Metrics    map[string]float64 `json:"metrics"`
	Warnings   []string           `json:"warnings,omitempty"`
}

// The run id is derived from the algorithm name, lattice size, and sweep
// count.
func (s *Store) Save(cfg sim.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%dx%d_%d_%d",
		Algorithm, cfg.Dimensions, cfg.Dimensions, cfg.Sweeps, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Algorithm:  Algorithm,
		Timestamp:  time.Now(),
		Dimensions: cfg.Dimensions,
		Sweeps:     cfg.Sweeps,
		Seed:       cfg.Seed,
		Schedule:   cfg.Schedule,
		Samples:    len(result.Samples),
		Attempts:   result.Attempts,
		Accepted:   result.Accepted,
		Metrics:    result.Metrics,
		Warnings:   result.Warnings,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "samples.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	// Two-line header, then one line per sample.
	title := fmt.Sprintf("Glauber Simulation of %d Cells and %d TimeSteps",
		cfg.Dimensions*cfg.Dimensions, cfg.Sweeps)
	if err := w.Write([]string{title}); err != nil {
		return "", err
	}
	if err := w.Write([]string{"temp", "avgEnergy", "avgMag"}); err != nil {
		return "", err
	}

	for _, sample := range result.Samples {
		row := []string{
			strconv.FormatFloat(sample.Temperature, 'g', -1, 64),
			strconv.FormatFloat(sample.Energy, 'g', -1, 64),
			strconv.FormatFloat(sample.Magnetization, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	csvPath := filepath.Join(s.baseDir, runID, "samples.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1 // header lines have fewer fields than data rows

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("storage: %s: malformed samples file", runID)
	}

	samples := make([]sim.Sample, 0, len(records)-2)
	for _, rec := range records[2:] {
		if len(rec) != 3 {
			return nil, fmt.Errorf("storage: %s: expected 3 fields, got %d", runID, len(rec))
		}
		temp, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, err
		}
		energy, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, err
		}
		mag, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sim.Sample{Temperature: temp, Energy: energy, Magnetization: mag})
	}

	return samples, nil
}

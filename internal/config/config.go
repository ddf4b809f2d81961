package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/isinglab/internal/sim"
)

const (
	DefaultDimensions  = 50
	DefaultSweeps      = 150
	DefaultTemperature = 2.0
	DefaultTMin        = 1.0
	DefaultTMax        = 3.0
	DefaultTStep       = 0.1
)

type Config struct {
	Dimensions int    `yaml:"dimensions"`
	Sweeps     int    `yaml:"sweeps"`
	Seed       int64  `yaml:"seed"`
	Mode       string `yaml:"mode"`
	// Temperature is the fixed scalar used by visual mode only; batch runs
	// follow Schedule.
	Temperature float64        `yaml:"temperature"`
	Schedule    ScheduleConfig `yaml:"schedule"`
}

type ScheduleConfig struct {
	TMin  float64 `yaml:"tmin"`
	TMax  float64 `yaml:"tmax"`
	TStep float64 `yaml:"tstep"`
}

func DefaultConfig() *Config {
	return &Config{
		Dimensions:  DefaultDimensions,
		Sweeps:      DefaultSweeps,
		Seed:        0,
		Mode:        sim.ModeFull.String(),
		Temperature: DefaultTemperature,
		Schedule: ScheduleConfig{
			TMin:  DefaultTMin,
			TMax:  DefaultTMax,
			TStep: DefaultTStep,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Dimensions <= 0 {
		return fmt.Errorf("config: dimensions must be positive, got %d", c.Dimensions)
	}
	if c.Sweeps <= 0 {
		return fmt.Errorf("config: sweeps must be positive, got %d", c.Sweeps)
	}
	if _, err := sim.ParseMode(c.Mode); err != nil {
		return err
	}
	return nil
}

func (c *Config) BuildSchedule() (sim.Schedule, error) {
	return sim.RangeSchedule(c.Schedule.TMin, c.Schedule.TMax, c.Schedule.TStep)
}

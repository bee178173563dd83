package loadgen

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	directoryPermission = 0o750
	reportPermission    = 0o600
)

// Report is the YAML document written after a run.
type Report struct {
	BaseURL           string  `yaml:"base_url"`
	Workers           int     `yaml:"workers"`
	Stats             Stats   `yaml:"stats"`
	SuccessRate       float64 `yaml:"success_rate"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

func newReport(cfg *Config, stats *Stats) Report {
	r := Report{BaseURL: cfg.BaseURL, Workers: cfg.Workers, Stats: *stats}
	if stats.Submitted > 0 {
		r.SuccessRate = float64(stats.Successful) / float64(stats.Submitted) * 100
	}
	if stats.Duration > 0 {
		r.RequestsPerSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}
	return r
}

// writeReport marshals r to path, creating parent directories.
func writeReport(path string, r Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, reportPermission); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

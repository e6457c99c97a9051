package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds execute latencies for the three functional-unit
// classes selected by an instruction's op type.
type TimingConfig struct {
	// FU0Latency is the execute latency for op type 0 instructions.
	// Default: 1 cycle.
	FU0Latency int `json:"fu0_latency"`

	// FU1Latency is the execute latency for op type 1 instructions.
	// Default: 2 cycles.
	FU1Latency int `json:"fu1_latency"`

	// FU2Latency is the execute latency for op type 2 instructions.
	// Default: 5 cycles.
	FU2Latency int `json:"fu2_latency"`
}

// DefaultTimingConfig returns a TimingConfig with the reference latencies.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		FU0Latency: 1,
		FU1Latency: 2,
		FU2Latency: 5,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that all latency values are valid (> 0).
func (c *TimingConfig) Validate() error {
	if c.FU0Latency <= 0 {
		return fmt.Errorf("fu0_latency must be > 0")
	}
	if c.FU1Latency <= 0 {
		return fmt.Errorf("fu1_latency must be > 0")
	}
	if c.FU2Latency <= 0 {
		return fmt.Errorf("fu2_latency must be > 0")
	}
	return nil
}

// Clone returns a deep copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	return &TimingConfig{
		FU0Latency: c.FU0Latency,
		FU1Latency: c.FU1Latency,
		FU2Latency: c.FU2Latency,
	}
}

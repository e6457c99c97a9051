// Package latency provides execute-stage latency modeling for the
// functional-unit classes of the out-of-order back end.
package latency

// Table answers per-instruction execute latencies from a TimingConfig.
type Table struct {
	config *TimingConfig
}

// NewTable creates a latency Table with the reference latencies.
func NewTable() *Table {
	return NewTableWithConfig(DefaultTimingConfig())
}

// NewTableWithConfig creates a latency Table from the given configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config.Clone(),
	}
}

// Config returns the configuration backing the table.
func (t *Table) Config() *TimingConfig {
	return t.config
}

// Latency returns the execute latency in cycles for the given op type.
// Unknown op types use the op type 0 latency.
func (t *Table) Latency(opType int) int {
	switch opType {
	case 1:
		return t.config.FU1Latency
	case 2:
		return t.config.FU2Latency
	default:
		return t.config.FU0Latency
	}
}

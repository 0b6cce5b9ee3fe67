package process

// ProcessDetails is one ranked process in a memory sample
type ProcessDetails struct {
	PID           int32   `json:"pid" yaml:"pid"`
	Name          string  `json:"name" yaml:"name"`
	MemoryBytes   uint64  `json:"memory_usage_bytes" yaml:"memory_usage_bytes"`
	MemoryPercent float64 `json:"memory_usage_percentage" yaml:"memory_usage_percentage"`
}

// Sample is the raw per-process data read from the OS before ranking
type Sample struct {
	PID           int32
	ResidentBytes uint64
	ExePath       string
	Comm          string
}

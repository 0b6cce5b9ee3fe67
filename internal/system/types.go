package system

// VMCounters holds raw virtual memory page counts as reported by the kernel
type VMCounters struct {
	ActivePages     uint64
	InactivePages   uint64
	WiredPages      uint64
	CompressedPages uint64
	PageSize        uint64
}

// MemoryBreakdown contains system-wide memory usage derived from VMCounters
type MemoryBreakdown struct {
	TotalBytes      uint64  `json:"total_bytes" yaml:"total_bytes"`
	ActiveBytes     uint64  `json:"active_bytes" yaml:"active_bytes"`
	WiredBytes      uint64  `json:"wired_bytes" yaml:"wired_bytes"`
	InactiveBytes   uint64  `json:"inactive_bytes" yaml:"inactive_bytes"`
	CompressedBytes uint64  `json:"compressed_bytes" yaml:"compressed_bytes"`
	UsedBytes       uint64  `json:"used_bytes" yaml:"used_bytes"`
	FreeBytes       uint64  `json:"free_bytes" yaml:"free_bytes"`
	UsagePercent    float64 `json:"usage_percentage" yaml:"usage_percentage"`
}

// HostInfo contains system identification information
type HostInfo struct {
	Hostname        string `json:"hostname" yaml:"hostname"`
	Platform        string `json:"platform" yaml:"platform"`
	PlatformVersion string `json:"platform_version" yaml:"platform_version"`
	KernelArch      string `json:"kernel_arch" yaml:"kernel_arch"`
	Uptime          uint64 `json:"uptime" yaml:"uptime"`
	UptimeHuman     string `json:"uptime_human" yaml:"uptime_human"`
}

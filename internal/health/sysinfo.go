package health

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/process"
)

// MemoryReport breaks down process memory usage in bytes.
type MemoryReport struct {
	RSS             uint64  `json:"rss"`
	HeapTotal       uint64  `json:"heapTotal"`
	HeapUsed        uint64  `json:"heapUsed"`
	External        uint64  `json:"external"`
	HeapUsedPercent float64 `json:"heapUsedPercent"`
}

// CPUReport carries cumulative CPU time split by mode.
type CPUReport struct {
	UserSeconds   float64 `json:"userSeconds"`
	SystemSeconds float64 `json:"systemSeconds"`
}

// processInfo reads figures for the current process. The gopsutil handle is
// resolved once; reads stay per-call.
type processInfo struct {
	pid  int
	proc *process.Process
}

func newProcessInfo() *processInfo {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		proc = nil
	}
	return &processInfo{pid: pid, proc: proc}
}

func (p *processInfo) memory() MemoryReport {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	report := MemoryReport{
		HeapTotal: ms.HeapSys,
		HeapUsed:  ms.HeapAlloc,
		External:  ms.Sys - ms.HeapSys,
	}
	if ms.HeapSys > 0 {
		report.HeapUsedPercent = float64(ms.HeapAlloc) / float64(ms.HeapSys) * 100
	}
	if p.proc != nil {
		if mi, err := p.proc.MemoryInfo(); err == nil {
			report.RSS = mi.RSS
		}
	}
	return report
}

func (p *processInfo) metrics() MetricsReport {
	report := MetricsReport{
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS,
		Arch:       runtime.GOARCH,
		PID:        p.pid,
		Memory:     p.memory(),
		Goroutines: runtime.NumGoroutine(),
	}
	if p.proc == nil {
		report.Error = "process introspection unavailable"
		return report
	}
	times, err := p.proc.Times()
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.CPU = CPUReport{
		UserSeconds:   times.User,
		SystemSeconds: times.System,
	}
	return report
}

package system

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/gahane31/my-animation-sub000/internal/source"
)

// Directories the CLI creates on first run.
var WorkDirs = []string{"input/scenes", "output"}

func EnsureWorkDirs() error {
	for _, d := range WorkDirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// FindLatestDocument returns the most recently modified scene document in dir.
func FindLatestDocument(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !source.IsDocument(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no scene documents found in %s", dir)
	}

	return latestFile, nil
}

// Stats is a snapshot of the compiler process.
type Stats struct {
	Elapsed    time.Duration
	RSS        uint64
	CPUPercent float64
	Threads    int32
	SystemUsed float64 // percent of system memory in use
}

func (s Stats) String() string {
	return fmt.Sprintf("elapsed %s, rss %.1f MiB, cpu %.1f%%, threads %d, system memory %.1f%%",
		s.Elapsed.Round(time.Millisecond), float64(s.RSS)/(1<<20), s.CPUPercent, s.Threads, s.SystemUsed)
}

// CollectStats samples the current process. Fields the platform cannot
// report are left zero.
func CollectStats(started time.Time) (Stats, error) {
	st := Stats{Elapsed: time.Since(started)}

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return st, err
	}
	if mi, err := p.MemoryInfo(); err == nil {
		st.RSS = mi.RSS
	}
	if cpu, err := p.CPUPercent(); err == nil {
		st.CPUPercent = cpu
	}
	if n, err := p.NumThreads(); err == nil {
		st.Threads = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		st.SystemUsed = vm.UsedPercent
	}
	return st, nil
}

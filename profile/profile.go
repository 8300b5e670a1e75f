package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"go.uber.org/multierr"
)

// ErrNotStarted is returned by [Profiler.Stop] when [Profiler.Start] was not
// called first.
var ErrNotStarted = errors.New("profiler not started")

// Profiler controls one profiling session around a command run.
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cpuFile *os.File
	Config

	started bool
}

// Start applies the sampling rate and begins CPU profiling when enabled.
func (p *Profiler) Start() error {
	if p.MemProfileRate > 0 {
		runtime.MemProfileRate = p.MemProfileRate
	}

	p.started = true

	if p.CPUProfile == "" {
		return nil
	}

	f, err := os.Create(p.CPUProfile) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("creating CPU profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return multierr.Append(fmt.Errorf("starting CPU profile: %w", err), f.Close())
	}

	p.cpuFile = f

	return nil
}

// Stop ends CPU profiling and writes every enabled snapshot profile. All
// snapshots are attempted; failures are combined into one error.
func (p *Profiler) Stop() error {
	if !p.started {
		return ErrNotStarted
	}

	p.started = false

	var err error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		if closeErr := p.cpuFile.Close(); closeErr != nil {
			err = fmt.Errorf("closing CPU profile: %w", closeErr)
		}

		p.cpuFile = nil
	}

	if p.HeapProfile != "" {
		runtime.GC()
	}

	snapshots := []struct {
		name string
		path string
	}{
		{"heap", p.HeapProfile},
		{"allocs", p.AllocsProfile},
		{"goroutine", p.GoroutineProfile},
	}

	for _, s := range snapshots {
		if s.path == "" {
			continue
		}

		err = multierr.Append(err, writeProfile(s.name, s.path))
	}

	return err
}

func writeProfile(name, path string) (err error) {
	prof := pprof.Lookup(name)
	if prof == nil {
		return fmt.Errorf("unknown profile %q", name)
	}

	f, err := os.Create(path) //nolint:gosec // Profile path from CLI flag is expected.
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	defer multierr.AppendInvoke(&err, multierr.Close(f))

	if err := prof.WriteTo(f, 0); err != nil {
		return fmt.Errorf("write %s profile: %w", name, err)
	}

	return nil
}

package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Profiler runs the profiles selected by a [Config].
//
// Create instances with [Config.NewProfiler].
type Profiler struct {
	cfg     *Config
	cpuFile *os.File
	started bool
}

// Start begins CPU profiling and sets the heap sampling rate when the
// corresponding profiles are enabled.
func (p *Profiler) Start() error {
	if p.started {
		return nil
	}

	p.started = true

	rate := p.cfg.MemProfileRate
	if (p.cfg.HeapProfile != "" || p.cfg.AllocsProfile != "") && rate > 0 && runtime.MemProfileRate != rate {
		runtime.MemProfileRate = rate
	}

	if p.cfg.CPUProfile == "" {
		return nil
	}

	f, err := os.Create(p.cfg.CPUProfile)
	if err != nil {
		return fmt.Errorf("create cpu profile: %w", err)
	}

	err = pprof.StartCPUProfile(f)
	if err != nil {
		return errors.Join(fmt.Errorf("start cpu profile: %w", err), f.Close())
	}

	p.cpuFile = f

	return nil
}

// Stop ends CPU profiling and writes the snapshot profiles. Stop is a no-op
// if [Profiler.Start] was never called.
func (p *Profiler) Stop() error {
	if !p.started {
		return nil
	}

	p.started = false

	var errs []error

	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("close cpu profile: %w", err))
		}

		p.cpuFile = nil
	}

	if p.cfg.HeapProfile != "" {
		runtime.GC()

		errs = append(errs, writeProfile("heap", p.cfg.HeapProfile))
	}

	if p.cfg.AllocsProfile != "" {
		errs = append(errs, writeProfile("allocs", p.cfg.AllocsProfile))
	}

	return errors.Join(errs...)
}

func writeProfile(name, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	err = pprof.Lookup(name).WriteTo(f, 0)
	if err != nil {
		return errors.Join(fmt.Errorf("write %s profile: %w", name, err), f.Close())
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("close %s profile: %w", name, err)
	}

	return nil
}

// Package profile writes pprof profiles for a single CLI invocation.
//
// Each profile kind is off until its flag names an output file. The CPU
// profile covers the span between [Profiler.Start] and [Profiler.Stop];
// heap, allocs, and goroutine profiles are snapshots taken at Stop.
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(cmd.PersistentFlags())
//
//	if cfg.Enabled() {
//		p := cfg.NewProfiler()
//		if err := p.Start(); err != nil {
//			return err
//		}
//		defer p.Stop()
//	}
//
// For example, elevconf fmt --cpu-profile=cpu.prof --heap-profile=heap.prof
// settings.yml profiles formatting a large file.
package profile

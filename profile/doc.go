// Package profile writes pprof profiles for a single yamlsort run.
//
// Register the flags on the root command, call [Profiler.Start] before the
// command runs and [Profiler.Stop] once it returns:
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	p := cfg.NewProfiler()
//
// Profiling a large batch of files is then a matter of passing
// --cpu-profile=cpu.prof or --heap-profile=heap.prof.
package profile

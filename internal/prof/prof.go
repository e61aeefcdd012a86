// Package prof wraps the runtime profilers behind start/stop pairs the CLI
// hangs off its persistent flags. Event tracing lives in internal/trace;
// this package covers the Go runtime's own profilers only.
package prof

import (
	"os"
	"runtime"
	"runtime/pprof"
)

var cpuFile *os.File

// StartCPU enables CPU profiling and writes samples to the provided path.
func StartCPU(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	cpuFile = f
	return nil
}

// StopCPU stops an active CPU profile and closes the underlying file.
func StopCPU() {
	pprof.StopCPUProfile()
	if cpuFile != nil {
		_ = cpuFile.Close()
		cpuFile = nil
	}
}

// WriteMem captures a heap profile to the supplied file path.
func WriteMem(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}

package dispatch

import (
	"github.com/conn-castle/gradle-wrapper/internal/config"
)

// System abstracts OS operations needed by the wrapper pipeline.
// It extends config.System with launching the distribution's binary so
// tests can replace the child process without touching the real OS.
type System interface {
	config.System
	RunBinary(path string, args []string) (int, error)
}

// RealSystem implements System using the OS.
type RealSystem struct {
	config.RealSystem
}

// RunBinary runs path with args, inheriting the standard streams, and returns its exit code.
func (RealSystem) RunBinary(path string, args []string) (int, error) {
	return runBinary(path, args)
}

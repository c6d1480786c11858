package dispatch

import (
	"errors"
	"fmt"
)

// errNotMocked is returned when a testSystem method is called without a mock function set.
var errNotMocked = errors.New("testSystem: method not mocked")

// testSystem provides a mock System for unit tests.
//
// Fallback behavior:
//   - Executable, HomeDir, RunBinary: return errNotMocked. The real values point at the
//     test binary, the developer's home, or spawn processes.
//   - ReadFile, Getenv: fall back to RealSystem so fixtures in t.TempDir and t.Setenv work.
type testSystem struct {
	RealSystem

	ExecutableFunc func() (string, error)
	ReadFileFunc   func(name string) ([]byte, error)
	GetenvFunc     func(key string) string
	HomeDirFunc    func() (string, error)
	RunBinaryFunc  func(path string, args []string) (int, error)
}

func (s *testSystem) Executable() (string, error) {
	if s.ExecutableFunc != nil {
		return s.ExecutableFunc()
	}
	return "", fmt.Errorf("%w: Executable", errNotMocked)
}

func (s *testSystem) ReadFile(name string) ([]byte, error) {
	if s.ReadFileFunc != nil {
		return s.ReadFileFunc(name)
	}
	return s.RealSystem.ReadFile(name)
}

func (s *testSystem) Getenv(key string) string {
	if s.GetenvFunc != nil {
		return s.GetenvFunc(key)
	}
	return s.RealSystem.Getenv(key)
}

func (s *testSystem) HomeDir() (string, error) {
	if s.HomeDirFunc != nil {
		return s.HomeDirFunc()
	}
	return "", fmt.Errorf("%w: HomeDir", errNotMocked)
}

func (s *testSystem) RunBinary(path string, args []string) (int, error) {
	if s.RunBinaryFunc != nil {
		return s.RunBinaryFunc(path, args)
	}
	return 0, fmt.Errorf("%w: RunBinary", errNotMocked)
}

package config

import (
	"errors"
	"fmt"
)

var errNotMocked = errors.New("testSystem: method not mocked")

// testSystem provides a mock System for unit tests.
// Executable and HomeDir fail fast when unset; ReadFile and Getenv fall back to
// RealSystem so tests can use t.TempDir and t.Setenv fixtures directly.
type testSystem struct {
	RealSystem

	ExecutableFunc func() (string, error)
	ReadFileFunc   func(name string) ([]byte, error)
	GetenvFunc     func(key string) string
	HomeDirFunc    func() (string, error)
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

// envMap returns a Getenv func backed by vars.
func envMap(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// System abstracts OS operations needed to locate and resolve wrapper configuration.
type System interface {
	Executable() (string, error)
	ReadFile(name string) ([]byte, error)
	Getenv(key string) string
	HomeDir() (string, error)
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// Executable returns the path of the running binary with symlinks resolved.
func (RealSystem) Executable() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(path)
}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// HomeDir returns the current user's home directory.
func (RealSystem) HomeDir() (string, error) {
	return homedir.Dir()
}

package config

import (
	"fmt"
	"path/filepath"

	"github.com/conn-castle/gradle-wrapper/internal/messages"
)

// LocateWrapperDir returns the directory holding the running wrapper binary.
// gradle-wrapper.properties is expected to live beside it.
func LocateWrapperDir(sys System) (string, error) {
	if sys == nil {
		return "", fmt.Errorf(messages.ConfigSystemRequired)
	}
	exe, err := sys.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: "+messages.ConfigResolveExecutableFmt, ErrInvalidConfig, err)
	}
	abs, err := filepath.Abs(exe)
	if err != nil {
		return "", fmt.Errorf("%w: "+messages.ConfigResolveExecutableFmt, ErrInvalidConfig, err)
	}
	return filepath.Dir(abs), nil
}

// PropertiesPath returns the properties file path inside wrapperDir.
func PropertiesPath(wrapperDir string) string {
	return filepath.Join(wrapperDir, PropertiesFileName)
}

// ProjectDir returns the project directory for a wrapper directory (gradle/wrapper → gradle).
func ProjectDir(wrapperDir string) string {
	return filepath.Dir(wrapperDir)
}

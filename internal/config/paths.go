package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/gradle-wrapper/internal/messages"
)

const archiveExtension = ".zip"

// distributionSuffixes are stripped from the archive name to get the directory the archive unpacks to.
var distributionSuffixes = []string{"-bin", "-all"}

// Paths holds the cache locations derived from a Config.
type Paths struct {
	ProjectDir      string
	BaseDir         string
	DistributionDir string
	ZipStoreDir     string
	ArchiveName     string
	ArchivePath     string
	// ExtractDir receives the archive contents.
	ExtractDir string
	// DistributionHome is the top-level directory inside the archive (gradle-X.Y).
	DistributionHome string
}

// ResolvePaths computes every cache location for cfg.
// projectDir anchors PROJECT-relative bases.
func ResolvePaths(sys System, cfg *Config, projectDir string) (Paths, error) {
	if sys == nil {
		return Paths{}, fmt.Errorf(messages.ConfigSystemRequired)
	}
	baseDir := ResolveBaseDir(sys, cfg.DistributionBase, projectDir)
	zipBaseDir := ResolveBaseDir(sys, cfg.ZipStoreBase, projectDir)

	distributionDir, err := absPath(resolveUnder(baseDir, cfg.DistributionPath))
	if err != nil {
		return Paths{}, err
	}
	zipStoreDir, err := absPath(resolveUnder(zipBaseDir, cfg.ZipStorePath))
	if err != nil {
		return Paths{}, err
	}

	archiveName := cfg.ArchiveName()
	extractedName := strings.TrimSuffix(archiveName, archiveExtension)
	extractDir := filepath.Join(distributionDir, extractedName)

	return Paths{
		ProjectDir:       projectDir,
		BaseDir:          baseDir,
		DistributionDir:  distributionDir,
		ZipStoreDir:      zipStoreDir,
		ArchiveName:      archiveName,
		ArchivePath:      filepath.Join(zipStoreDir, archiveName),
		ExtractDir:       extractDir,
		DistributionHome: filepath.Join(extractDir, DistributionFolder(archiveName)),
	}, nil
}

// DistributionFolder returns the directory name a Gradle archive unpacks to:
// gradle-8.5-bin.zip → gradle-8.5.
func DistributionFolder(archiveName string) string {
	name := strings.TrimSuffix(archiveName, archiveExtension)
	for _, suffix := range distributionSuffixes {
		name = strings.TrimSuffix(name, suffix)
	}
	return name
}

// ResolveBaseDir maps a base selector to a directory.
// PROJECT selects projectDir; anything else selects the Gradle user home.
// It never fails: a missing home directory falls back to projectDir/.gradle.
func ResolveBaseDir(sys System, base string, projectDir string) string {
	if base == BaseProject {
		return projectDir
	}
	return GradleUserHome(sys, projectDir)
}

// GradleUserHome returns $GRADLE_USER_HOME, or ~/.gradle when unset.
func GradleUserHome(sys System, projectDir string) string {
	if override := strings.TrimSpace(sys.Getenv(EnvGradleUserHome)); override != "" {
		expanded, err := homedir.Expand(override)
		if err != nil {
			expanded = override
		}
		if abs, err := filepath.Abs(expanded); err == nil {
			return abs
		}
		return expanded
	}
	home, err := sys.HomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return filepath.Join(projectDir, userHomeDirName)
	}
	return filepath.Join(home, userHomeDirName)
}

// resolveUnder joins rel onto base unless rel is already absolute.
func resolveUnder(base string, rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(base, filepath.FromSlash(rel))
}

func absPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("%w: "+messages.ConfigResolveAbsPathFmt, ErrInvalidConfig, p, err)
	}
	return abs, nil
}

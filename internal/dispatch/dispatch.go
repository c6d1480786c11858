// Package dispatch runs the wrapper pipeline: load the wrapper properties, make sure the
// configured Gradle distribution is downloaded and extracted in the local cache, then
// hand the command line to the distribution's launcher.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/conn-castle/gradle-wrapper/internal/config"
	"github.com/conn-castle/gradle-wrapper/internal/messages"
)

// ErrLock wraps failures to acquire a cache lock.
var ErrLock = errors.New("cache lock failed")

// Result describes what a pipeline run had to do before launching.
type Result struct {
	Paths      config.Paths
	Downloaded bool
	Extracted  bool
	ExitCode   int
}

// Run executes the pipeline with the real OS and returns the launcher's exit code.
// args are passed to bin/gradle unmodified; progress lines go to progressOut.
func Run(ctx context.Context, args []string, progressOut io.Writer) (int, error) {
	result, err := RunWithSystem(ctx, RealSystem{}, args, progressOut)
	if err != nil {
		return 0, err
	}
	return result.ExitCode, nil
}

// RunWithSystem executes the pipeline against sys.
func RunWithSystem(ctx context.Context, sys System, args []string, progressOut io.Writer) (Result, error) {
	if sys == nil {
		return Result{}, fmt.Errorf(messages.DispatchSystemRequired)
	}
	if progressOut == nil {
		progressOut = io.Discard
	}

	wrapperDir, err := config.LocateWrapperDir(sys)
	if err != nil {
		return Result{}, err
	}
	cfg, err := config.Load(sys, wrapperDir)
	if err != nil {
		return Result{}, err
	}
	paths, err := config.ResolvePaths(sys, cfg, config.ProjectDir(wrapperDir))
	if err != nil {
		return Result{}, err
	}

	result := Result{Paths: paths}
	result.Downloaded, err = ensureArchive(ctx, cfg, paths, progressOut)
	if err != nil {
		return result, err
	}
	result.Extracted, err = ensureExtracted(paths, progressOut)
	if err != nil {
		return result, err
	}
	result.ExitCode, err = launch(sys, paths.DistributionHome, args)
	return result, err
}

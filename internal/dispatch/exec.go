package dispatch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/conn-castle/gradle-wrapper/internal/messages"
)

// ErrLaunch wraps failures to start the distribution's launcher script.
var ErrLaunch = errors.New("gradle launch failed")

// launcherRelPath is the launcher script inside an extracted distribution.
var launcherRelPath = filepath.Join("bin", "gradle")

var osChmod = os.Chmod

// launch runs the distribution launcher with args and returns its exit code.
func launch(sys System, distributionHome string, args []string) (int, error) {
	path := filepath.Join(distributionHome, launcherRelPath)
	if err := ensureExecutable(path); err != nil {
		return 0, err
	}
	return sys.RunBinary(path, args)
}

// ensureExecutable makes sure path is a file with execute permission, adding the bits if missing.
func ensureExecutable(path string) error {
	info, err := osStat(path)
	if err != nil {
		return fmt.Errorf("%w: "+messages.DispatchLauncherMissingFmt, ErrLaunch, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: "+messages.DispatchLauncherIsDirFmt, ErrLaunch, path)
	}
	if info.Mode().Perm()&0o111 != 0 {
		return nil
	}
	if err := osChmod(path, info.Mode().Perm()|0o111); err != nil {
		return fmt.Errorf("%w: "+messages.DispatchChmodLauncherFmt, ErrLaunch, path, err)
	}
	return nil
}

// runBinary starts path as a child process sharing this process's standard streams
// and waits for it. SIGINT is left to the child (the terminal delivers it to the whole
// process group); SIGTERM is forwarded.
func runBinary(path string, args []string) (int, error) {
	cmd := exec.Command(path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("%w: "+messages.DispatchStartLauncherFmt, ErrLaunch, path, err)
	}

	done := make(chan struct{})
	defer close(done)
	go forwardSignals(cmd.Process, signals, done)

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitStatus(exitErr), nil
		}
		return 0, fmt.Errorf("%w: "+messages.DispatchWaitLauncherFmt, ErrLaunch, path, err)
	}
	return 0, nil
}

// exitStatus returns the child's exit code, or 128 plus the signal number when a
// signal ended it, as a shell reports it.
func exitStatus(exitErr *exec.ExitError) int {
	if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return exitErr.ExitCode()
}

// forwardSignals relays SIGTERM to the child until done is closed.
func forwardSignals(proc *os.Process, signals <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case sig := <-signals:
			if sig == syscall.SIGTERM {
				_ = proc.Signal(sig)
			}
		case <-done:
			return
		}
	}
}

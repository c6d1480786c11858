package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/conn-castle/gradle-wrapper/internal/messages"
	"github.com/conn-castle/gradle-wrapper/internal/terminal"
)

var executeFunc = execute

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// SilentExitError reports an exit code without emitting error output.
type SilentExitError struct {
	Code int
}

func (e *SilentExitError) Error() string {
	return fmt.Sprintf(messages.ExitFmt, e.Code)
}

// execute runs the root command with the provided args and output writers.
func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	forwarded := []string{}
	if len(args) > 1 {
		forwarded = args[1:]
	}
	// Cobra intercepts its completion commands before flag handling; Gradle owns them here.
	if isCompletionRequest(forwarded) {
		return dispatchArgs(context.Background(), forwarded, stdout)
	}
	cmd := newRootCmd(stdout)
	cmd.SetArgs(forwarded)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

// runMain executes the wrapper and exits with the launcher's status or 1 on internal failure.
// A zero status returns without calling exit.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	err := executeFunc(args, stdout, stderr)
	if err == nil {
		return
	}
	var silent *SilentExitError
	if errors.As(err, &silent) {
		exit(silent.Code)
		return
	}
	printer := color.New(color.FgRed)
	if !terminal.IsTerminal(stderr) {
		printer.DisableColor()
	}
	_, _ = printer.Fprintln(stderr, err)
	exit(1)
}

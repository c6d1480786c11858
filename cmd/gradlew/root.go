package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/gradle-wrapper/internal/dispatch"
	"github.com/conn-castle/gradle-wrapper/internal/messages"
)

var runDispatch = dispatch.Run

// newRootCmd builds the only command. Flag parsing is disabled so every argument,
// including --help and --version, reaches Gradle untouched.
func newRootCmd(progressOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:                messages.RootUse,
		Short:              messages.RootShort,
		Long:               messages.RootLong,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return dispatchArgs(ctx, args, progressOut)
		},
	}
	return cmd
}

// dispatchArgs hands args to Gradle and turns a non-zero launcher status into a SilentExitError.
func dispatchArgs(ctx context.Context, args []string, progressOut io.Writer) error {
	code, err := runDispatch(ctx, args, progressOut)
	if err != nil {
		return err
	}
	if code != 0 {
		return &SilentExitError{Code: code}
	}
	return nil
}

// isCompletionRequest reports whether cobra would treat args as its hidden shell completion command.
func isCompletionRequest(args []string) bool {
	if len(args) == 0 {
		return false
	}
	return args[0] == cobra.ShellCompRequestCmd || args[0] == cobra.ShellCompNoDescRequestCmd
}

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/conn-castle/gradle-wrapper/internal/dispatch"
)

func stubDispatch(t *testing.T, fn func(ctx context.Context, args []string, progressOut io.Writer) (int, error)) {
	t.Helper()
	orig := runDispatch
	runDispatch = fn
	t.Cleanup(func() { runDispatch = orig })
}

func TestRunMainSuccess(t *testing.T) {
	stubDispatch(t, func(context.Context, []string, io.Writer) (int, error) { return 0, nil })
	var out bytes.Buffer
	called := false
	runMain([]string{"gradlew", "build"}, &out, &out, func(int) {
		called = true
	})
	if called {
		t.Fatalf("unexpected exit")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestRunMainPropagatesExitCode(t *testing.T) {
	stubDispatch(t, func(context.Context, []string, io.Writer) (int, error) { return 7, nil })
	var stdout, stderr bytes.Buffer
	code := -1
	runMain([]string{"gradlew", "test"}, &stdout, &stderr, func(c int) { code = c })

	if code != 7 {
		t.Fatalf("expected exit code 7, got %d", code)
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected silent exit, got %q", stderr.String())
	}
}

func TestRunMainError(t *testing.T) {
	stubDispatch(t, func(context.Context, []string, io.Writer) (int, error) {
		return 0, fmt.Errorf("%w: download https://example.com/gradle-8.5-bin.zip: unexpected status 500", dispatch.ErrDownload)
	})
	var stdout, stderr bytes.Buffer
	code := 0
	runMain([]string{"gradlew"}, &stdout, &stderr, func(c int) { code = c })

	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "unexpected status 500") {
		t.Fatalf("expected error output, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected nothing on stdout, got %q", stdout.String())
	}
}

func TestRunMainInternalErrorWithZeroCode(t *testing.T) {
	executeOrig := executeFunc
	executeFunc = func([]string, io.Writer, io.Writer) error { return errors.New("boom") }
	t.Cleanup(func() { executeFunc = executeOrig })

	var out bytes.Buffer
	code := 0
	runMain([]string{"gradlew"}, &out, &out, func(c int) { code = c })
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestExecuteForwardsArgsUntouched(t *testing.T) {
	var got []string
	stubDispatch(t, func(_ context.Context, args []string, _ io.Writer) (int, error) {
		got = append([]string(nil), args...)
		return 0, nil
	})

	args := []string{"--help", "-v", "--version", "help", "completion", "build", "--", "-x"}
	var out bytes.Buffer
	if err := execute(append([]string{"gradlew"}, args...), &out, &out); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !reflect.DeepEqual(got, args) {
		t.Fatalf("expected %v, got %v", args, got)
	}
	if out.Len() != 0 {
		t.Fatalf("cobra must not print help or usage, got %q", out.String())
	}
}

func TestExecuteForwardsCompletionCommands(t *testing.T) {
	for _, first := range []string{"__complete", "__completeNoDesc"} {
		var got []string
		stubDispatch(t, func(_ context.Context, args []string, _ io.Writer) (int, error) {
			got = args
			return 3, nil
		})

		args := []string{first, "build", ""}
		var out bytes.Buffer
		err := execute(append([]string{"gradlew"}, args...), &out, &out)
		var silent *SilentExitError
		if !errors.As(err, &silent) || silent.Code != 3 {
			t.Fatalf("%s: expected silent exit 3, got %v", first, err)
		}
		if !reflect.DeepEqual(got, args) {
			t.Fatalf("%s: expected %v, got %v", first, args, got)
		}
		if out.Len() != 0 {
			t.Fatalf("%s: cobra must not answer completion, got %q", first, out.String())
		}
	}
}

func TestExecuteWithoutArgs(t *testing.T) {
	var got []string
	calls := 0
	stubDispatch(t, func(_ context.Context, args []string, _ io.Writer) (int, error) {
		calls++
		got = args
		return 0, nil
	})

	var out bytes.Buffer
	if err := execute([]string{"gradlew"}, &out, &out); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if calls != 1 || len(got) != 0 {
		t.Fatalf("expected one call with no args, got %d calls and %v", calls, got)
	}
}

func TestExecuteWritesProgressToStdout(t *testing.T) {
	stubDispatch(t, func(_ context.Context, _ []string, progressOut io.Writer) (int, error) {
		_, _ = io.WriteString(progressOut, "Downloading Gradle from https://example.com/gradle-8.5-bin.zip\n")
		return 0, nil
	})

	var stdout, stderr bytes.Buffer
	if err := execute([]string{"gradlew"}, &stdout, &stderr); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(stdout.String(), "Downloading Gradle from") {
		t.Fatalf("expected progress on stdout, got %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected empty stderr, got %q", stderr.String())
	}
}

func TestSilentExitErrorMessage(t *testing.T) {
	err := &SilentExitError{Code: 3}
	if err.Error() != "exit 3" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestMainCallsExecute(t *testing.T) {
	stubDispatch(t, func(context.Context, []string, io.Writer) (int, error) { return 0, nil })
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Args = []string{"gradlew", "tasks"}
	main()
}

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
)

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) string {
	t.Helper()
	return WriteScript(t, dir, name, fmt.Sprintf("exit %d", exitCode), 0o755)
}

// WriteArgsRecorder writes a shell stub that records one argument per line to argsFile
// and then exits with exitCode.
func WriteArgsRecorder(t *testing.T, dir string, name string, argsFile string, exitCode int) string {
	t.Helper()
	body := fmt.Sprintf("for arg in \"$@\"; do\n  printf '%%s\\n' \"$arg\" >> %q\ndone\nexit %d", argsFile, exitCode)
	return WriteScript(t, dir, name, body, 0o755)
}

// WriteScript writes a /bin/sh script with body and perm, creating dir when needed.
func WriteScript(t *testing.T, dir string, name string, body string, perm os.FileMode) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	content := []byte("#!/bin/sh\n" + body + "\n")
	if err := os.WriteFile(path, content, perm); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	if err := os.Chmod(path, perm); err != nil {
		t.Fatalf("chmod stub: %v", err)
	}
	return path
}

// ZipEntry describes one entry for WriteZip. Names ending in "/" become directories.
type ZipEntry struct {
	Name string
	Body string
	Mode os.FileMode
}

// WriteZip writes a ZIP archive at path containing entries in order.
func WriteZip(t *testing.T, path string, entries []ZipEntry) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	defer func() { _ = file.Close() }()

	writer := zip.NewWriter(file)
	for _, entry := range entries {
		header := &zip.FileHeader{Name: entry.Name, Method: zip.Deflate}
		switch {
		case strings.HasSuffix(entry.Name, "/"):
			header.Method = zip.Store
			header.SetMode(os.ModeDir | 0o755)
		case entry.Mode != 0:
			header.SetMode(entry.Mode)
		default:
			header.SetMode(0o644)
		}
		w, err := writer.CreateHeader(header)
		if err != nil {
			t.Fatalf("zip header %s: %v", entry.Name, err)
		}
		if entry.Body != "" {
			if _, err := w.Write([]byte(entry.Body)); err != nil {
				t.Fatalf("zip write %s: %v", entry.Name, err)
			}
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
}

// DistributionEntries returns the entries of a minimal Gradle distribution whose
// bin/gradle is launcherBody (a /bin/sh script body).
func DistributionEntries(home string, launcherBody string) []ZipEntry {
	return []ZipEntry{
		{Name: home + "/"},
		{Name: home + "/bin/"},
		{Name: home + "/bin/gradle", Body: "#!/bin/sh\n" + launcherBody + "\n", Mode: 0o755},
		{Name: home + "/lib/"},
		{Name: home + "/lib/gradle-launcher.jar", Body: "not really a jar"},
		{Name: home + "/LICENSE", Body: "Apache License 2.0\n"},
	}
}

// WriteWrapperProperties creates <project>/gradle/wrapper/gradle-wrapper.properties with
// content and returns the wrapper directory.
func WriteWrapperProperties(t *testing.T, project string, content string) string {
	t.Helper()
	wrapperDir := filepath.Join(project, "gradle", "wrapper")
	if err := os.MkdirAll(wrapperDir, 0o755); err != nil {
		t.Fatalf("mkdir wrapper dir: %v", err)
	}
	path := filepath.Join(wrapperDir, "gradle-wrapper.properties")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write properties: %v", err)
	}
	return wrapperDir
}

// Tree walks root and returns every relative path mapped to file content.
// Directories map to "/".
func Tree(t *testing.T, root string) map[string]string {
	t.Helper()
	tree := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			tree[rel] = "/"
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return tree
}

// SortedKeys returns the keys of m in order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
// t is the active test; dir is the temporary working directory for fn.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}

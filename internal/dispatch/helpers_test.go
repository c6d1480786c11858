package dispatch

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/conn-castle/gradle-wrapper/internal/config"
	"github.com/conn-castle/gradle-wrapper/internal/testutil"
)

const (
	testArchiveName = "gradle-8.5-bin.zip"
	testHomeName    = "gradle-8.5"
	testArchivePath = "/distributions/" + testArchiveName
)

// fixture is a project with a wrapper directory, an isolated Gradle user home,
// and an HTTP server hosting a distribution archive.
type fixture struct {
	project    string
	wrapperDir string
	userHome   string
	archive    []byte
	hits       atomic.Int32
	server     *httptest.Server
	sys        *testSystem
}

func newFixture(t *testing.T, launcherBody string) *fixture {
	t.Helper()
	f := &fixture{
		project:  t.TempDir(),
		userHome: t.TempDir(),
		archive:  zipBytes(t, testutil.DistributionEntries(testHomeName, launcherBody)),
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case testArchivePath:
			f.hits.Add(1)
			_, _ = w.Write(f.archive)
		case "/redirect/" + testArchiveName:
			http.Redirect(w, r, testArchivePath, http.StatusFound)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(f.server.Close)

	f.writeProperties(t, "")
	f.sys = &testSystem{
		ExecutableFunc: func() (string, error) {
			return filepath.Join(f.wrapperDir, "gradle-wrapper"), nil
		},
		GetenvFunc: func(key string) string {
			if key == config.EnvGradleUserHome {
				return f.userHome
			}
			return ""
		},
	}
	return f
}

// distributionURL returns the server URL of the test archive.
func (f *fixture) distributionURL() string {
	return f.server.URL + testArchivePath
}

// writeProperties rewrites gradle-wrapper.properties with the server URL and extra lines.
func (f *fixture) writeProperties(t *testing.T, extra string) {
	t.Helper()
	f.writePropertiesWithURL(t, f.distributionURL(), extra)
}

// writePropertiesWithURL rewrites gradle-wrapper.properties with rawURL and extra lines.
func (f *fixture) writePropertiesWithURL(t *testing.T, rawURL string, extra string) {
	t.Helper()
	content := "distributionUrl=" + strings.ReplaceAll(rawURL, ":", `\:`) + "\n" + extra
	f.wrapperDir = testutil.WriteWrapperProperties(t, f.project, content)
}

// dists is the default distribution directory inside the fixture's user home.
func (f *fixture) dists() string {
	return filepath.Join(f.userHome, "wrapper", "dists")
}

// zipBytes returns the bytes of a ZIP archive holding entries.
func zipBytes(t *testing.T, entries []testutil.ZipEntry) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.zip")
	testutil.WriteZip(t, path, entries)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read zip: %v", err)
	}
	return data
}

// testPaths builds config.Paths rooted at dir for the default archive name.
func testPaths(dir string) config.Paths {
	dists := filepath.Join(dir, "wrapper", "dists")
	extract := filepath.Join(dists, "gradle-8.5-bin")
	return config.Paths{
		ProjectDir:       dir,
		BaseDir:          dir,
		DistributionDir:  dists,
		ZipStoreDir:      dists,
		ArchiveName:      testArchiveName,
		ArchivePath:      filepath.Join(dists, testArchiveName),
		ExtractDir:       extract,
		DistributionHome: filepath.Join(extract, testHomeName),
	}
}

// leftovers lists temp and partial entries in dir.
func leftovers(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read dir %s: %v", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			names = append(names, entry.Name())
		}
	}
	return names
}

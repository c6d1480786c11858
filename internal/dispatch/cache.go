package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"time"

	"github.com/conn-castle/gradle-wrapper/internal/config"
	"github.com/conn-castle/gradle-wrapper/internal/messages"
)

// ErrDownload wraps failures to fetch the distribution archive.
var ErrDownload = errors.New("distribution download failed")

var (
	osStat        = os.Stat
	osRename      = os.Rename
	osCreateTemp  = os.CreateTemp
	newHTTPClient = defaultHTTPClient
)

const (
	copyBufferSize = 8 * 1024
	maxRedirects   = 10
)

var userAgent = fmt.Sprintf("gradlew (%s;%s)", runtime.GOOS, runtime.GOARCH)

// ensureArchive downloads the distribution archive unless it is already cached.
// It reports whether a download happened. The archive only appears at its final
// path once fully written, so an interrupted run never leaves a truncated cache entry.
func ensureArchive(ctx context.Context, cfg *config.Config, paths config.Paths, progressOut io.Writer) (bool, error) {
	present, err := archivePresent(paths.ArchivePath)
	if err != nil || present {
		return false, err
	}
	if err := os.MkdirAll(paths.ZipStoreDir, 0o755); err != nil {
		return false, fmt.Errorf("%w: "+messages.DispatchCreateStoreDirFmt, ErrDownload, paths.ZipStoreDir, err)
	}

	downloaded := false
	err = withCacheLock(paths.ArchivePath, func() error {
		present, err := archivePresent(paths.ArchivePath)
		if err != nil || present {
			return err
		}

		tmp, err := osCreateTemp(paths.ZipStoreDir, paths.ArchiveName+".tmp-*")
		if err != nil {
			return fmt.Errorf("%w: "+messages.DispatchCreateTempFileFmt, ErrDownload, err)
		}
		tmpName := tmp.Name()
		committed := false
		defer func() {
			if !committed {
				_ = os.Remove(tmpName)
			}
		}()

		_, _ = fmt.Fprintf(progressOut, messages.DispatchDownloadingFmt, redactURL(cfg.DistributionURL))
		if err := downloadToFile(ctx, cfg, tmp); err != nil {
			_ = tmp.Close()
			return err
		}
		if err := tmp.Sync(); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("%w: "+messages.DispatchSyncTempFileFmt, ErrDownload, err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("%w: "+messages.DispatchCloseTempFileFmt, ErrDownload, err)
		}
		if err := osRename(tmpName, paths.ArchivePath); err != nil {
			return fmt.Errorf("%w: "+messages.DispatchMoveArchiveFmt, ErrDownload, err)
		}
		committed = true
		downloaded = true
		return nil
	})
	return downloaded, err
}

// archivePresent reports whether a regular file already sits at path.
func archivePresent(path string) (bool, error) {
	info, err := osStat(path)
	if err == nil {
		return !info.IsDir(), nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("%w: "+messages.DispatchCheckArchiveFmt, ErrDownload, path, err)
}

// downloadToFile performs a single GET of the distribution URL and streams the body into dest.
func downloadToFile(ctx context.Context, cfg *config.Config, dest *os.File) error {
	display := redactURL(cfg.DistributionURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.DistributionURL, nil)
	if err != nil {
		return fmt.Errorf("%w: "+messages.DispatchBuildRequestFmt, ErrDownload, display, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := newHTTPClient(cfg.NetworkTimeout).Do(req)
	if err != nil {
		if isTimeoutError(err) {
			return fmt.Errorf("%w: "+messages.DispatchDownloadTimeoutFmt, ErrDownload, display, cfg.NetworkTimeout)
		}
		return fmt.Errorf("%w: "+messages.DispatchDownloadFailedFmt, ErrDownload, display, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: "+messages.DispatchDownloadNotFoundFmt, ErrDownload, display, cfg.Source)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: "+messages.DispatchDownloadUnexpectedFmt, ErrDownload, display, resp.Status)
	}

	if _, err := copyBuffered(dest, resp.Body); err != nil {
		if isTimeoutError(err) {
			return fmt.Errorf("%w: "+messages.DispatchDownloadTimeoutFmt, ErrDownload, display, cfg.NetworkTimeout)
		}
		return fmt.Errorf("%w: "+messages.DispatchDownloadFailedFmt, ErrDownload, display, err)
	}
	return nil
}

// defaultHTTPClient follows up to maxRedirects redirects and also serves file: URLs.
// A zero timeout means the request may run indefinitely.
func defaultHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

// copyBuffered streams src into dst through a fixed-size buffer.
func copyBuffered(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, copyBufferSize)
	// Hide ReaderFrom/WriterTo so io.CopyBuffer always uses buf.
	return io.CopyBuffer(struct{ io.Writer }{dst}, struct{ io.Reader }{src}, buf)
}

// redactURL hides any password embedded in raw.
func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return parsed.Redacted()
}

// isTimeoutError reports whether err is a network timeout.
func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

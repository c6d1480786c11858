package dispatch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/klauspost/compress/zip"

	"github.com/conn-castle/gradle-wrapper/internal/config"
	"github.com/conn-castle/gradle-wrapper/internal/messages"
)

// ErrExtract wraps failures to unpack the distribution archive.
var ErrExtract = errors.New("distribution extraction failed")

var osMkdirTemp = os.MkdirTemp

// ensureExtracted unpacks the cached archive unless the distribution home already exists.
// It reports whether an extraction happened. The archive is unpacked into a temporary
// sibling directory and renamed into place, so ExtractDir is either complete or absent.
func ensureExtracted(paths config.Paths, progressOut io.Writer) (bool, error) {
	present, err := dirPresent(paths.DistributionHome)
	if err != nil || present {
		return false, err
	}
	if err := os.MkdirAll(paths.DistributionDir, 0o755); err != nil {
		return false, fmt.Errorf("%w: "+messages.DispatchCreateDistributionDirFmt, ErrExtract, paths.DistributionDir, err)
	}

	extracted := false
	err = withCacheLock(paths.ExtractDir, func() error {
		present, err := dirPresent(paths.DistributionHome)
		if err != nil || present {
			return err
		}
		// Anything left here predates atomic extraction or was written by hand.
		if err := os.RemoveAll(paths.ExtractDir); err != nil {
			return fmt.Errorf("%w: "+messages.DispatchRemoveStaleExtractFmt, ErrExtract, paths.ExtractDir, err)
		}

		_, _ = fmt.Fprintf(progressOut, messages.DispatchExtractingFmt, paths.ExtractDir)
		tmpDir, err := osMkdirTemp(paths.DistributionDir, filepath.Base(paths.ExtractDir)+".tmp-*")
		if err != nil {
			return fmt.Errorf("%w: "+messages.DispatchCreateExtractTempFmt, ErrExtract, err)
		}
		committed := false
		defer func() {
			if !committed {
				_ = os.RemoveAll(tmpDir)
			}
		}()
		if err := os.Chmod(tmpDir, 0o755); err != nil {
			return fmt.Errorf("%w: "+messages.DispatchCreateExtractTempFmt, ErrExtract, err)
		}

		if err := unzip(paths.ArchivePath, tmpDir); err != nil {
			return err
		}
		home := filepath.Join(tmpDir, filepath.Base(paths.DistributionHome))
		if ok, _ := dirPresent(home); !ok {
			return fmt.Errorf("%w: "+messages.DispatchMissingDistributionHomeFmt, ErrExtract, paths.ArchivePath, filepath.Base(paths.DistributionHome))
		}
		if err := osRename(tmpDir, paths.ExtractDir); err != nil {
			return fmt.Errorf("%w: "+messages.DispatchMoveExtractionFmt, ErrExtract, err)
		}
		committed = true
		extracted = true
		return nil
	})
	return extracted, err
}

// dirPresent reports whether a directory exists at path.
func dirPresent(path string) (bool, error) {
	info, err := osStat(path)
	if err == nil {
		return info.IsDir(), nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("%w: "+messages.DispatchCheckDistributionFmt, ErrExtract, path, err)
}

// unzip writes every entry of the ZIP archive at archivePath under destDir.
func unzip(archivePath string, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%w: "+messages.DispatchOpenArchiveFmt, ErrExtract, archivePath, err)
	}
	defer func() { _ = reader.Close() }()

	for _, entry := range reader.File {
		if err := extractEntry(entry, destDir, archivePath); err != nil {
			return err
		}
	}
	return nil
}

// extractEntry writes a single archive entry. Entries must stay inside destDir.
func extractEntry(entry *zip.File, destDir string, archivePath string) error {
	target, err := entryTarget(destDir, entry.Name)
	if err != nil {
		return fmt.Errorf("%w: "+messages.DispatchIllegalEntryFmt, ErrExtract, entry.Name, archivePath)
	}

	mode := entry.Mode()
	if mode&os.ModeSymlink != 0 {
		return fmt.Errorf("%w: "+messages.DispatchUnsupportedEntryFmt, ErrExtract, entry.Name, archivePath)
	}
	if mode.IsDir() || strings.HasSuffix(entry.Name, "/") {
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("%w: "+messages.DispatchCreateEntryDirFmt, ErrExtract, target, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("%w: "+messages.DispatchCreateEntryDirFmt, ErrExtract, filepath.Dir(target), err)
	}
	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("%w: "+messages.DispatchReadEntryFmt, ErrExtract, entry.Name, err)
	}
	defer func() { _ = src.Close() }()

	perm := mode.Perm()
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("%w: "+messages.DispatchCreateEntryFileFmt, ErrExtract, target, err)
	}
	if _, err := copyBuffered(out, src); err != nil {
		_ = out.Close()
		return fmt.Errorf("%w: "+messages.DispatchWriteEntryFmt, ErrExtract, target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: "+messages.DispatchWriteEntryFmt, ErrExtract, target, err)
	}
	return nil
}

// entryTarget rejects absolute or escaping entry names and joins the rest onto destDir.
func entryTarget(destDir string, name string) (string, error) {
	local := filepath.FromSlash(name)
	if name == "" || strings.Contains(name, `\`) || !filepath.IsLocal(local) {
		return "", fmt.Errorf("non-local path %q", name)
	}
	return securejoin.SecureJoin(destDir, local)
}

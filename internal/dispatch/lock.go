package dispatch

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/gradle-wrapper/internal/messages"
)

// lockSuffix is appended to a cache path to name its lock file.
const lockSuffix = ".lck"

var (
	flockFn   = unix.Flock
	lockSleep = time.Sleep
	lockNow   = time.Now
)

var (
	lockWaitTimeout = 10 * time.Minute
	lockPollEvery   = 100 * time.Millisecond
)

// cacheLock is an exclusive advisory lock on a single cache entry.
type cacheLock struct {
	file *os.File
}

// withCacheLock holds the lock for target while fn runs.
// The lock file is target+".lck"; its parent directory must already exist.
func withCacheLock(target string, fn func() error) error {
	lock, err := acquireCacheLock(target + lockSuffix)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.release()
	}()
	return fn()
}

// acquireCacheLock opens or creates path and polls until the exclusive lock is held.
func acquireCacheLock(path string) (*cacheLock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: "+messages.DispatchOpenLockFmt, ErrLock, path, err)
	}
	deadline := lockNow().Add(lockWaitTimeout)
	for {
		err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &cacheLock{file: file}, nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN) && !errors.Is(err, unix.EINTR) {
			_ = file.Close()
			return nil, fmt.Errorf("%w: "+messages.DispatchLockFmt, ErrLock, path, err)
		}
		if lockNow().After(deadline) {
			_ = file.Close()
			return nil, fmt.Errorf("%w: "+messages.DispatchLockTimeoutFmt, ErrLock, lockWaitTimeout, path)
		}
		lockSleep(lockPollEvery)
	}
}

// release unlocks and closes the lock file. The file itself is left in place
// so that a waiting process never locks an unlinked inode.
func (l *cacheLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := flockFn(int(l.file.Fd()), unix.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil
	if err != nil {
		return err
	}
	return closeErr
}

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofrs/flock"
)

// InstanceLock prevents two bot processes for the same application from
// running at once, since both would answer every interaction
type InstanceLock struct {
	lockFile *flock.Flock
	lockPath string
}

var unsafeLockNameChars = regexp.MustCompile(`[^\w\-.]`)

// sanitizeLockName converts a key to a safe filename
func sanitizeLockName(key string) string {
	sanitized := unsafeLockNameChars.ReplaceAllString(key, "-")
	sanitized = strings.Trim(sanitized, ".-")
	if sanitized == "" {
		sanitized = "default"
	}
	return sanitized
}

// NewInstanceLock creates a lock for key under baseDir/firstmessage.
// An empty baseDir uses the system temp directory.
func NewInstanceLock(baseDir, key string) (*InstanceLock, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}

	lockDir := filepath.Join(baseDir, "firstmessage")
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	lockPath := filepath.Join(lockDir, sanitizeLockName(key)+".lock")
	return &InstanceLock{
		lockFile: flock.New(lockPath),
		lockPath: lockPath,
	}, nil
}

// TryLock attempts to acquire the lock without blocking
func (l *InstanceLock) TryLock() error {
	locked, err := l.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another firstmessage instance is already running (lock: %s)", l.lockPath)
	}
	return nil
}

// Unlock releases the lock and removes the lock file
func (l *InstanceLock) Unlock() error {
	if l.lockFile == nil {
		return nil
	}

	if err := l.lockFile.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}
	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

func (l *InstanceLock) Path() string {
	return l.lockPath
}

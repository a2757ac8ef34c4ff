package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// PIDFile enforces a single running daemon instance through a pid file on
// disk. Stale files left behind by a dead process are reclaimed.
type PIDFile struct {
	path string
}

// New creates a pid file manager for the given path
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Acquire writes the current pid, failing if another live instance holds the
// file. A file pointing at a dead or unparseable pid is removed and reclaimed.
func (p *PIDFile) Acquire() error {
	if data, err := os.ReadFile(p.path); err == nil {
		pid, parseErr := strconv.Atoi(strings.TrimSpace(string(data)))
		if parseErr == nil && processAlive(pid) {
			return fmt.Errorf("daemon is already running (PID %d)", pid)
		}
		_ = os.Remove(p.path)
	}

	contents := fmt.Sprintf("%d\n", os.Getpid())
	if err := os.WriteFile(p.path, []byte(contents), 0644); err != nil {
		return fmt.Errorf("failed to write PID file %s: %w", p.path, err)
	}
	return nil
}

// Release removes the pid file. A missing file is not an error.
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file %s: %w", p.path, err)
	}
	return nil
}

// processAlive probes a pid with signal 0. EPERM means the process exists but
// belongs to another user, which still counts as running.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}

//go:build unix

package osproc

import (
	"github.com/hightemp/process-manager/monitor/domain"
	"golang.org/x/sys/unix"
)

// Terminate sends SIGTERM for KillModeTerminate and SIGKILL for KillModeKill.
func (t *Terminator) Terminate(pid uint32, mode domain.KillMode) error {
	if err := validPID(pid); err != nil {
		return err
	}
	sig := unix.SIGTERM
	if mode == domain.KillModeKill {
		sig = unix.SIGKILL
	}
	return classify(pid, unix.Kill(int(pid), sig))
}

func classify(pid uint32, err error) error {
	switch err {
	case nil:
		return nil
	case unix.EPERM:
		return domain.ErrPermissionDenied(pid, "insufficient permissions to signal this process")
	case unix.ESRCH:
		return domain.ErrNotFoundPID(pid)
	}
	return domain.ErrOs(err.Error())
}

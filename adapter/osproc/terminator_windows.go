//go:build windows

package osproc

import (
	"github.com/hightemp/process-manager/monitor/domain"
	"golang.org/x/sys/windows"
)

// Terminate ends the process with TerminateProcess. Windows has no graceful
// equivalent of SIGTERM for arbitrary processes, so both modes behave alike.
func (t *Terminator) Terminate(pid uint32, _ domain.KillMode) error {
	if err := validPID(pid); err != nil {
		return err
	}
	h, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, pid)
	if err != nil {
		return classify(pid, err, true)
	}
	defer windows.CloseHandle(h)

	return classify(pid, windows.TerminateProcess(h, 1), false)
}

func classify(pid uint32, err error, opening bool) error {
	switch {
	case err == nil:
		return nil
	case err == windows.ERROR_ACCESS_DENIED:
		return domain.ErrPermissionDenied(pid, err.Error())
	case opening && err == windows.ERROR_INVALID_PARAMETER:
		return domain.ErrNotFoundPID(pid)
	}
	return domain.ErrOs(err.Error())
}

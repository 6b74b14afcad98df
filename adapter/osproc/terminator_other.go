//go:build !unix && !windows

package osproc

import "github.com/hightemp/process-manager/monitor/domain"

func (t *Terminator) Terminate(pid uint32, _ domain.KillMode) error {
	if err := validPID(pid); err != nil {
		return err
	}
	return domain.ErrUnsupported("terminate")
}

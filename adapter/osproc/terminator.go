// Package osproc delivers termination requests to the operating system.
package osproc

import (
	"math"

	"github.com/hightemp/process-manager/monitor/domain"
)

// Terminator implements domain.Terminator for the running platform.
type Terminator struct{}

func NewTerminator() domain.Terminator {
	return &Terminator{}
}

// validPID rejects pids that do not fit in a signed 32-bit pid_t. Such values
// would address process groups instead of a single process.
func validPID(pid uint32) error {
	if pid == 0 || pid > math.MaxInt32 {
		return domain.ErrInvalidPid(pid)
	}
	return nil
}

package collector

import (
	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/shirou/gopsutil/v3/process"
)

// mapStatus folds the OS scheduler state into the five states procmon reports.
// It accepts both the state names gopsutil returns and raw ps(1) letters.
func mapStatus(states []string) domain.Status {
	if len(states) == 0 {
		return domain.StatusUnknown
	}
	switch states[0] {
	case process.Running, "R":
		return domain.StatusRunning
	case process.Sleep, process.Idle, process.Blocked, "S", "I", "D":
		return domain.StatusSleeping
	case process.Stop, "T", "t":
		return domain.StatusStopped
	case process.Zombie, "Z":
		return domain.StatusZombie
	}
	return domain.StatusUnknown
}

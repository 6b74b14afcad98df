// Package diff computes the change set between two consecutive snapshots.
package diff

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/hightemp/process-manager/monitor/domain"
)

// CPUEpsilon is the smallest CPU percentage movement reported as an update.
const CPUEpsilon = 0.1

// IsSignificant reports whether next differs from prev enough to be sent to
// consumers. Fields other than cpu, memory and status never trigger an update.
func IsSignificant(prev, next domain.ProcessRecord) bool {
	return math.Abs(next.CPUPercent-prev.CPUPercent) > CPUEpsilon ||
		next.MemoryBytes != prev.MemoryBytes ||
		next.Status != prev.Status
}

// Diff classifies every pid of prev and next. Added and updated entries carry
// the full record from next. All three lists are sorted by pid.
func Diff(prev, next domain.Snapshot, now time.Time) domain.ChangeSet {
	cs := domain.ChangeSet{
		Added:       []domain.ProcessRecord{},
		Updated:     []domain.ProcessRecord{},
		Removed:     []uint32{},
		TimestampMs: uint64(now.UnixMilli()),
	}
	for pid, rec := range next {
		old, ok := prev[pid]
		switch {
		case !ok:
			cs.Added = append(cs.Added, rec.Clone())
		case IsSignificant(old, rec):
			cs.Updated = append(cs.Updated, rec.Clone())
		}
	}
	for pid := range prev {
		if _, ok := next[pid]; !ok {
			cs.Removed = append(cs.Removed, pid)
		}
	}

	byPID := func(a, b domain.ProcessRecord) int {
		return cmp.Compare(a.PID, b.PID)
	}
	slices.SortFunc(cs.Added, byPID)
	slices.SortFunc(cs.Updated, byPID)
	slices.Sort(cs.Removed)
	return cs
}

package domain

import (
	"strconv"
	"strings"
)

// SystemPIDCeiling marks pids below it as system processes.
const SystemPIDCeiling = 500

var systemUsers = map[string]struct{}{
	"root":                {},
	"SYSTEM":              {},
	`NT AUTHORITY\SYSTEM`: {},
}

// Filter is a conjunction of optional predicates. A nil field does not
// constrain the result.
type Filter struct {
	Search        *string  `json:"search,omitempty" yaml:"search,omitempty"`
	User          *string  `json:"user,omitempty" yaml:"user,omitempty"`
	MineOnly      *bool    `json:"mine_only,omitempty" yaml:"mine_only,omitempty"`
	SystemOnly    *bool    `json:"system_only,omitempty" yaml:"system_only,omitempty"`
	NonSystemOnly *bool    `json:"non_system_only,omitempty" yaml:"non_system_only,omitempty"`
	Status        *Status  `json:"status,omitempty" yaml:"status,omitempty"`
	CPUGt         *float64 `json:"cpu_gt,omitempty" yaml:"cpu_gt,omitempty"`
	MemoryGtBytes *uint64  `json:"memory_gt_bytes,omitempty" yaml:"memory_gt_bytes,omitempty"`
}

func IsSystem(rec ProcessRecord) bool {
	if rec.PID < SystemPIDCeiling {
		return true
	}
	if rec.User == nil {
		return false
	}
	_, ok := systemUsers[*rec.User]
	return ok
}

func isSet(b *bool) bool {
	return b != nil && *b
}

// Matches reports whether rec satisfies every present criterion.
// currentUser is the identity mine_only compares against.
func (f *Filter) Matches(rec ProcessRecord, currentUser string) bool {
	if f == nil {
		return true
	}
	if f.Search != nil {
		q := strings.ToLower(*f.Search)
		hit := strings.Contains(strings.ToLower(rec.Name), q) ||
			strings.Contains(strconv.FormatUint(uint64(rec.PID), 10), q) ||
			(rec.Path != nil && strings.Contains(strings.ToLower(*rec.Path), q))
		if !hit {
			return false
		}
	}
	if f.User != nil && (rec.User == nil || *rec.User != *f.User) {
		return false
	}
	if isSet(f.MineOnly) && (rec.User == nil || *rec.User != currentUser) {
		return false
	}
	if isSet(f.SystemOnly) && !IsSystem(rec) {
		return false
	}
	if isSet(f.NonSystemOnly) && IsSystem(rec) {
		return false
	}
	if f.Status != nil && rec.Status != *f.Status {
		return false
	}
	if f.CPUGt != nil && rec.CPUPercent < *f.CPUGt {
		return false
	}
	if f.MemoryGtBytes != nil && rec.MemoryBytes < *f.MemoryGtBytes {
		return false
	}
	return true
}

package domain

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// EventProcessesUpdate is the name of the notification carrying a ChangeSet.
const EventProcessesUpdate = "processes:update"

type Status string

const (
	StatusRunning  Status = "running"
	StatusSleeping Status = "sleeping"
	StatusStopped  Status = "stopped"
	StatusZombie   Status = "zombie"
	StatusUnknown  Status = "unknown"
)

// ParseStatus accepts a canonical status name in any case. Anything else maps
// to StatusUnknown with ok=false.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusRunning:
		return StatusRunning, true
	case StatusSleeping:
		return StatusSleeping, true
	case StatusStopped:
		return StatusStopped, true
	case StatusZombie:
		return StatusZombie, true
	case StatusUnknown:
		return StatusUnknown, true
	}
	return StatusUnknown, false
}

// UnmarshalJSON accepts only the canonical status names, in any case.
func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.Wrap(ErrInvalidArgument, "status must be a string")
	}
	st, ok := ParseStatus(raw)
	if !ok {
		return errors.Wrapf(ErrInvalidArgument, "unknown status %q", raw)
	}
	*s = st
	return nil
}

// ProcessRecord is the per-process view exposed to consumers.
type ProcessRecord struct {
	PID            uint32   `json:"pid" yaml:"pid"`
	Name           string   `json:"name" yaml:"name"`
	Status         Status   `json:"status" yaml:"status"`
	CPUPercent     float64  `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryBytes    uint64   `json:"memory_bytes" yaml:"memory_bytes"`
	User           *string  `json:"user" yaml:"user"`
	Path           *string  `json:"path" yaml:"path"`
	ParentPID      *uint32  `json:"parent_pid" yaml:"parent_pid"`
	StartTime      *uint64  `json:"start_time" yaml:"start_time"`
	NeedsElevation bool     `json:"needs_elevation" yaml:"needs_elevation"`
	Cmd            []string `json:"cmd" yaml:"cmd"`
}

// MarshalJSON keeps cmd a list even when the collector could not read it.
func (r ProcessRecord) MarshalJSON() ([]byte, error) {
	type plain ProcessRecord
	if r.Cmd == nil {
		r.Cmd = []string{}
	}
	return json.Marshal(plain(r))
}

// Clone returns a copy that shares no memory with r.
func (r ProcessRecord) Clone() ProcessRecord {
	c := r
	c.User = clonePtr(r.User)
	c.Path = clonePtr(r.Path)
	c.ParentPID = clonePtr(r.ParentPID)
	c.StartTime = clonePtr(r.StartTime)
	if r.Cmd != nil {
		c.Cmd = append([]string(nil), r.Cmd...)
	}
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// UserOrEmpty returns the owning user, or "" when it was not resolved.
func (r ProcessRecord) UserOrEmpty() string {
	if r.User == nil {
		return ""
	}
	return *r.User
}

// Snapshot is one full observation of the process table keyed by pid.
type Snapshot map[uint32]ProcessRecord

func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for pid, rec := range s {
		out[pid] = rec.Clone()
	}
	return out
}

type KillMode string

const (
	KillModeTerminate KillMode = "terminate"
	KillModeKill      KillMode = "kill"
)

func ParseKillMode(s string) (KillMode, bool) {
	switch KillMode(strings.ToLower(s)) {
	case "", KillModeTerminate:
		return KillModeTerminate, true
	case KillModeKill:
		return KillModeKill, true
	}
	return "", false
}

// ExtendedInfo carries the optional per-process fields read on demand.
// A nil field means the OS did not supply it.
type ExtendedInfo struct {
	Threads            *uint32  `json:"threads" yaml:"threads"`
	VirtualMemoryBytes *uint64  `json:"virtual_memory_bytes" yaml:"virtual_memory_bytes"`
	DiskReadBytes      *uint64  `json:"disk_read_bytes" yaml:"disk_read_bytes"`
	DiskWrittenBytes   *uint64  `json:"disk_written_bytes" yaml:"disk_written_bytes"`
	OpenFilesCount     *uint32  `json:"open_files_count" yaml:"open_files_count"`
	Environment        []string `json:"environment" yaml:"environment"`
}

type ProcessDetails struct {
	ProcessRecord ProcessRecord `json:"dto" yaml:"dto"`
	ExtendedInfo  `yaml:",inline"`
}

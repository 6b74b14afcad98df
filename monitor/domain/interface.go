package domain

import "context"

// Collector produces snapshots of the OS process table.
type Collector interface {
	// Collect enumerates every visible process. Per-process failures are
	// absorbed; an error means the enumeration itself failed.
	Collect(ctx context.Context) (Snapshot, error)
	// Details reads the optional per-process fields for pid.
	Details(ctx context.Context, pid uint32) (ExtendedInfo, error)
	// CurrentUser is the identity resolved during the last Collect.
	CurrentUser() string
}

// Terminator delivers termination requests to the OS.
type Terminator interface {
	Terminate(pid uint32, mode KillMode) error
}

// Publisher fans a named event out to consumers.
type Publisher interface {
	Publish(ctx context.Context, event string, payload ChangeSet) error
}

type Opener interface {
	Open(path string) error
}

type Clipboard interface {
	WriteText(text string) error
}

type Service interface {
	ListProcesses(ctx context.Context, filter *Filter, sort *SortSpec) ([]ProcessRecord, error)
	ProcessDetails(ctx context.Context, pid uint32) (*ProcessDetails, error)
	SetRefreshInterval(ctx context.Context, ms uint64) (uint64, error)
	SetPaused(ctx context.Context, paused bool) error
	RefreshConfig(ctx context.Context) RefreshConfig
	Terminate(ctx context.Context, pid uint32, mode KillMode) error
	OpenContainingFolder(ctx context.Context, pid uint32) error
	CopyText(ctx context.Context, text string) error
}

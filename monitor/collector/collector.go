// Package collector reads the OS process table through gopsutil.
package collector

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/hightemp/process-manager/pkg/logger"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/process"
)

// GopsutilCollector implements domain.Collector. Collect must only be called
// from one goroutine at a time; Details and CurrentUser are safe to call
// concurrently with it.
type GopsutilCollector struct {
	// handles keeps gopsutil process objects between passes so CPU usage
	// is the delta since the previous Collect.
	handles map[int32]*handle
	users   *userDirectory
	getenv  func(string) string
	goos    string
	current atomic.Value
}

type handle struct {
	proc       *process.Process
	createTime int64
}

type Option func(*GopsutilCollector)

// WithEnv replaces the environment lookup used to resolve the current user.
func WithEnv(getenv func(string) string, goos string) Option {
	return func(c *GopsutilCollector) {
		c.getenv = getenv
		c.goos = goos
	}
}

// WithUserLookup replaces the uid to user name resolver.
func WithUserLookup(lookup func(uid string) (string, error)) Option {
	return func(c *GopsutilCollector) {
		c.users = newUserDirectory(lookup)
	}
}

func NewGopsutilCollector(opts ...Option) *GopsutilCollector {
	c := &GopsutilCollector{
		handles: map[int32]*handle{},
		users:   newUserDirectory(nil),
		getenv:  os.Getenv,
		goos:    defaultGOOS(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.current.Store(ResolveCurrentUser(c.getenv, c.goos))
	return c
}

// CurrentUser returns the identity resolved by the most recent Collect.
func (c *GopsutilCollector) CurrentUser() string {
	name, _ := c.current.Load().(string)
	return name
}

func (c *GopsutilCollector) Collect(ctx context.Context) (domain.Snapshot, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "enumerate processes")
	}

	me := ResolveCurrentUser(c.getenv, c.goos)
	c.current.Store(me)
	c.users.Reset()

	snap := make(domain.Snapshot, len(procs))
	alive := make(map[int32]struct{}, len(procs))
	for _, p := range procs {
		h := c.handleFor(ctx, p)
		rec, ok := c.record(ctx, h.proc, me)
		if !ok {
			continue
		}
		alive[p.Pid] = struct{}{}
		snap[rec.PID] = rec
	}
	for pid := range c.handles {
		if _, ok := alive[pid]; !ok {
			delete(c.handles, pid)
		}
	}
	logger.Logger(ctx).Debug().Int("processes", len(snap)).Msg("collected process table")
	return snap, nil
}

// handleFor reuses the previous pass's handle unless the pid was recycled.
func (c *GopsutilCollector) handleFor(ctx context.Context, p *process.Process) *handle {
	created, _ := p.CreateTimeWithContext(ctx)
	if h, ok := c.handles[p.Pid]; ok && h.createTime == created {
		return h
	}
	h := &handle{proc: p, createTime: created}
	c.handles[p.Pid] = h
	return h
}

// record builds the record for p. It reports false when the process vanished
// while it was being read.
func (c *GopsutilCollector) record(ctx context.Context, p *process.Process, me string) (domain.ProcessRecord, bool) {
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return domain.ProcessRecord{}, false
	}
	rec := domain.ProcessRecord{
		PID:  uint32(p.Pid),
		Name: name,
		Cmd:  []string{},
	}

	states, _ := p.StatusWithContext(ctx)
	rec.Status = mapStatus(states)

	if pct, err := p.PercentWithContext(ctx, 0); err == nil {
		rec.CPUPercent = pct
	}
	if mem, err := p.MemoryInfoWithContext(ctx); err == nil && mem != nil {
		rec.MemoryBytes = mem.RSS
	}
	if u, ok := c.owner(ctx, p); ok {
		rec.User = &u
	}
	if exe, err := p.ExeWithContext(ctx); err == nil && exe != "" {
		rec.Path = &exe
	}
	if ppid, err := p.PpidWithContext(ctx); err == nil && ppid >= 0 {
		parent := uint32(ppid)
		rec.ParentPID = &parent
	}
	if created, err := p.CreateTimeWithContext(ctx); err == nil && created > 0 {
		start := uint64(created / int64(time.Second/time.Millisecond))
		rec.StartTime = &start
	}
	if cmd, err := p.CmdlineSliceWithContext(ctx); err == nil && cmd != nil {
		rec.Cmd = cmd
	}
	rec.NeedsElevation = needsElevation(rec.User, me)
	return rec, true
}

func (c *GopsutilCollector) owner(ctx context.Context, p *process.Process) (string, bool) {
	uids, err := p.UidsWithContext(ctx)
	if err == nil && len(uids) > 0 && uids[0] >= 0 {
		return c.users.Name(uint32(uids[0]))
	}
	// Platforms without numeric uids report the account name directly.
	name, err := p.UsernameWithContext(ctx)
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}

func needsElevation(user *string, me string) bool {
	return user != nil && *user != "" && *user != me
}

// Details reads the on-demand fields for pid. Each field is best-effort; the
// error is only returned when the process cannot be opened at all.
func (c *GopsutilCollector) Details(ctx context.Context, pid uint32) (domain.ExtendedInfo, error) {
	var info domain.ExtendedInfo
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return info, domain.ErrNotFoundPID(pid)
		}
		return info, errors.Wrapf(err, "open process %d", pid)
	}

	if n, err := p.NumThreadsWithContext(ctx); err == nil && n >= 0 {
		threads := uint32(n)
		info.Threads = &threads
	}
	if mem, err := p.MemoryInfoWithContext(ctx); err == nil && mem != nil {
		vms := mem.VMS
		info.VirtualMemoryBytes = &vms
	}
	if io, err := p.IOCountersWithContext(ctx); err == nil && io != nil {
		read, written := io.ReadBytes, io.WriteBytes
		info.DiskReadBytes = &read
		info.DiskWrittenBytes = &written
	}
	if files, err := p.OpenFilesWithContext(ctx); err == nil {
		count := uint32(len(files))
		info.OpenFilesCount = &count
	}
	if env, err := p.EnvironWithContext(ctx); err == nil {
		info.Environment = env
	}
	return info, nil
}

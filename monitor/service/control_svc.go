package service

import (
	"context"
	"path/filepath"

	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/hightemp/process-manager/pkg/logger"
	"github.com/pkg/errors"
)

// Terminate asks the OS to end pid. Only processes present in the latest
// snapshot may be targeted; the snapshot itself is left for the next tick to
// correct.
func (svc *Service) Terminate(ctx context.Context, pid uint32, mode domain.KillMode) error {
	if pid == 0 {
		return domain.ErrInvalidPid(pid)
	}
	normalized, ok := domain.ParseKillMode(string(mode))
	if !ok {
		return errors.Wrapf(domain.ErrInvalidArgument, "unknown kill mode %q", mode)
	}
	mode = normalized
	if !svc.Store.Contains(pid) {
		return domain.ErrNotFoundPID(pid)
	}
	if svc.Terminator == nil {
		return domain.ErrUnsupported("terminate")
	}

	logger.Logger(ctx).Info().Uint32("pid", pid).Str("mode", string(mode)).Msg("terminating process")
	if err := svc.Terminator.Terminate(pid, mode); err != nil {
		appErr := domain.AsAppError(err)
		logger.Logger(ctx).Warn().Err(appErr).Uint32("pid", pid).Msg("terminate failed")
		return appErr
	}
	return nil
}

// OpenContainingFolder opens the directory holding the executable of pid in
// the desktop file manager.
func (svc *Service) OpenContainingFolder(ctx context.Context, pid uint32) error {
	rec, ok := svc.Store.Lookup(pid)
	if !ok || rec.Path == nil || *rec.Path == "" {
		return domain.ErrNotFoundPID(pid)
	}
	if svc.Opener == nil {
		return domain.ErrUnsupported("open_path")
	}
	dir := containingDir(*rec.Path)
	if err := svc.Opener.Open(dir); err != nil {
		return domain.AsAppError(err)
	}
	logger.Logger(ctx).Debug().Str("dir", dir).Msg("opened containing folder")
	return nil
}

func containingDir(path string) string {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return path
	}
	return dir
}

func (svc *Service) CopyText(ctx context.Context, text string) error {
	if svc.Clipboard == nil {
		return domain.ErrUnsupported("clipboard")
	}
	if err := svc.Clipboard.WriteText(text); err != nil {
		return domain.AsAppError(err)
	}
	return nil
}

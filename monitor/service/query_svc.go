package service

import (
	"context"

	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/hightemp/process-manager/pkg/logger"
)

// ListProcesses returns the snapshot records matching filter, ordered by sort
// or by descending CPU when sort is nil.
func (svc *Service) ListProcesses(ctx context.Context, filter *domain.Filter, sort *domain.SortSpec) ([]domain.ProcessRecord, error) {
	spec := domain.DefaultSort
	if sort != nil {
		if err := sort.Validate(); err != nil {
			return nil, err
		}
		spec = *sort
	}

	snap, currentUser := svc.Store.Read()
	result := make([]domain.ProcessRecord, 0, len(snap))
	for _, rec := range snap {
		if filter.Matches(rec, currentUser) {
			result = append(result, rec)
		}
	}
	domain.ApplySort(result, spec)

	logger.Logger(ctx).Debug().Msgf("list processes: returning %d of %d entries", len(result), len(snap))
	return result, nil
}

// ProcessDetails returns the snapshot record for pid together with whatever
// extended fields the collector can read right now.
func (svc *Service) ProcessDetails(ctx context.Context, pid uint32) (*domain.ProcessDetails, error) {
	rec, ok := svc.Store.Lookup(pid)
	if !ok {
		return nil, domain.ErrNotFoundPID(pid)
	}
	details := &domain.ProcessDetails{ProcessRecord: rec}
	if svc.Collector == nil {
		return details, nil
	}
	info, err := svc.Collector.Details(ctx, pid)
	if err != nil {
		logger.Logger(ctx).Debug().Err(err).Uint32("pid", pid).Msg("extended process details unavailable")
		return details, nil
	}
	details.ExtendedInfo = info
	return details, nil
}

func (svc *Service) SetRefreshInterval(ctx context.Context, ms uint64) (uint64, error) {
	stored := svc.Store.SetInterval(ms)
	logger.Logger(ctx).Debug().Msgf("refresh interval set to %dms (requested %dms)", stored, ms)
	return stored, nil
}

func (svc *Service) SetPaused(ctx context.Context, paused bool) error {
	svc.Store.SetPaused(paused)
	logger.Logger(ctx).Debug().Bool("paused", paused).Msg("auto-refresh state changed")
	return nil
}

func (svc *Service) RefreshConfig(ctx context.Context) domain.RefreshConfig {
	return svc.Store.Config()
}

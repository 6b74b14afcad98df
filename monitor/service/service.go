package service

import (
	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/hightemp/process-manager/monitor/store"
	"go.uber.org/fx"
)

type Params struct {
	fx.In
	Store      *store.Store
	Collector  domain.Collector
	Terminator domain.Terminator
	Opener     domain.Opener
	Clipboard  domain.Clipboard
}

func NewService(params Params) domain.Service {
	return &Service{
		Store:      params.Store,
		Collector:  params.Collector,
		Terminator: params.Terminator,
		Opener:     params.Opener,
		Clipboard:  params.Clipboard,
	}
}

// Service answers queries against the latest snapshot and carries out
// lifecycle actions on the processes it lists.
type Service struct {
	Store      *store.Store
	Collector  domain.Collector
	Terminator domain.Terminator
	Opener     domain.Opener
	Clipboard  domain.Clipboard
}

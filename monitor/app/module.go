package app

import (
	"github.com/hightemp/process-manager/adapter/desktop"
	"github.com/hightemp/process-manager/adapter/osproc"
	"github.com/hightemp/process-manager/config"
	"github.com/hightemp/process-manager/monitor/collector"
	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/hightemp/process-manager/monitor/notify"
	"github.com/hightemp/process-manager/monitor/rest"
	"github.com/hightemp/process-manager/monitor/service"
	"github.com/hightemp/process-manager/monitor/store"
	"github.com/hightemp/process-manager/monitor/updater"
	"github.com/hightemp/process-manager/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

func ConfigModule(configName string, configPath string) (fx.Option, error) {
	cfg, err := config.InitProcmonConfig(configName, configPath)
	if err != nil {
		return nil, err
	}
	logging := cfg.Logging
	logger.NewLogger(logger.Output(logging.File, logging.MaxSizeMB, logging.MaxBackups), logging.Level, logging.Console && logging.File == "")

	return fx.Options(
		fx.Provide(func() config.ProcmonConfig {
			return cfg
		}),
		fx.Provide(func(procmonCfg config.ProcmonConfig) config.ServerConfig {
			return procmonCfg.Server
		}),
		fx.Provide(func(procmonCfg config.ProcmonConfig) config.RefreshConfig {
			return procmonCfg.Refresh
		}),
		fx.Provide(func(procmonCfg config.ProcmonConfig) config.AuthConfig {
			return procmonCfg.Auth
		}),
		fx.Provide(func(procmonCfg config.ProcmonConfig) config.NotifyConfig {
			return procmonCfg.Notify
		}),
	), nil
}

// MonitorModule creates an Fx module that provides the snapshot store, the collector,
// the notification hub and the refresh loop
func MonitorModule(configName string, configPath string) (fx.Option, error) {
	configModule, err := ConfigModule(configName, configPath)
	if err != nil {
		return nil, err
	}

	return fx.Options(
		configModule,
		fx.Provide(func(cfg config.RefreshConfig) *store.Store {
			return store.New(domain.RefreshConfig{IntervalMs: cfg.IntervalMs, Paused: cfg.Paused})
		}),
		fx.Provide(func() domain.Collector {
			return collector.NewGopsutilCollector()
		}),
		fx.Provide(func(cfg config.NotifyConfig) *notify.Hub {
			return notify.NewHub(cfg.Buffer)
		}),
		fx.Provide(newRegistry),
		fx.Provide(func(reg *prometheus.Registry) prometheus.Gatherer {
			return reg
		}),
		fx.Provide(func(reg *prometheus.Registry) (*updater.Metrics, error) {
			return updater.NewMetrics(reg)
		}),
		fx.Provide(func(c domain.Collector, st *store.Store, hub *notify.Hub, m *updater.Metrics) *updater.Updater {
			return updater.New(c, st, hub, m)
		}),
	), nil
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// AdapterModule creates an Fx module that provides the OS and desktop adapters
func AdapterModule() fx.Option {
	return fx.Options(
		fx.Provide(osproc.NewTerminator),
		fx.Provide(desktop.NewOpener),
		fx.Provide(desktop.NewClipboard),
	)
}

// ServiceModule creates an Fx module that provides the service layer, return domain.Service
func ServiceModule(configName string, configPath string) (fx.Option, error) {
	monitorModule, err := MonitorModule(configName, configPath)
	if err != nil {
		return nil, err
	}

	return fx.Options(
		monitorModule,
		AdapterModule(),
		fx.Provide(service.NewService),
	), nil
}

// HandlerModule creates an Fx module that provides the REST handler, return *rest.Handler
func HandlerModule(configName string, configPath string) (fx.Option, error) {
	serviceModule, err := ServiceModule(configName, configPath)
	if err != nil {
		return nil, err
	}

	return fx.Options(
		serviceModule,
		fx.Provide(rest.NewHandler),
	), nil
}

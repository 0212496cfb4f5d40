package app

import (
	"errors"

	"github.com/palengke/storefront/internal/config"
	"github.com/palengke/storefront/internal/logger"
	"github.com/palengke/storefront/internal/provider"
	"github.com/palengke/storefront/internal/router"
	"github.com/palengke/storefront/internal/worker"
)

// BuildRunner assembles the services selected by mode.
func BuildRunner(cfg *config.Config, mode Mode) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService("http", addr, engine))
	}

	if mode == ModeAll || mode == ModeWorker {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer, cfg.Order.SweepIntervalMinutes)
		if err != nil {
			if mode == ModeWorker {
				return nil, err
			}
			// In all-in-one mode a disabled queue drops the email
			// consumer but the order sweep still has to run.
			logger.Warnw("worker_skipped", "error", err)
			services = append(services, worker.NewSweepService(consumer, cfg.Order.SweepIntervalMinutes))
		} else {
			services = append(services, workerService)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run is the process entry point shared by the binaries.
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	if opts.Logger != nil {
		opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	}
	return RunWithOptions(runner, opts)
}

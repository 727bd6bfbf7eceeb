package main

import (
	"context"
	"time"

	"chokwadi/sources/artificial"
	"chokwadi/sources/configuration"
	"chokwadi/sources/external"
	"chokwadi/sources/features"
	"chokwadi/sources/linkscan"
	"chokwadi/sources/localization"
	"chokwadi/sources/metrics"
	"chokwadi/sources/network"
	"chokwadi/sources/persistence"
	"chokwadi/sources/platform"
	"chokwadi/sources/repository"
	"chokwadi/sources/routing"
	"chokwadi/sources/throttler"
	"chokwadi/sources/tracing"
	"chokwadi/sources/whatsapp"

	"go.uber.org/fx"
)

var (
	version   = "0.0.0"
	buildTime = "1970-01-01"
)

func main() {
	platform.SetAppManifest(version, buildTime, time.Now())

	fx.New(
		tracing.Module,
		configuration.Module,
		network.Module,
		persistence.Module,
		repository.Module,
		metrics.Module,
		features.Module,
		localization.Module,
		throttler.Module,
		routing.Module,
		linkscan.Module,
		artificial.Module,
		external.Module,
		whatsapp.Module,

		fx.Invoke(func(lc fx.Lifecycle, log *tracing.Logger, router *routing.Router) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.I("Chokwadi AI started successfully",
						"version", version,
						"build_time", buildTime,
						tracing.ProviderMode, string(router.Mode()))
					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.I("Chokwadi AI stopped")
					return nil
				},
			})
		}),
	).Run()
}

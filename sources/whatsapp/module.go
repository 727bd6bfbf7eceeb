package whatsapp

import (
	"context"

	"chokwadi/sources/tracing"

	"go.uber.org/fx"
)

var Module = fx.Module("whatsapp",
	fx.Provide(
		NewMediaFetcher,
		NewDiplomat,
		NewHandler,
		NewServer,
	),

	fx.Invoke(func(server *Server, lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go server.serve()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				server.log.I("Stopping webhook server")
				if err := server.srv.Shutdown(ctx); err != nil {
					server.log.E("Failed to shutdown webhook server", tracing.InnerError, err)
				}
				return nil
			},
		})
	}),
)

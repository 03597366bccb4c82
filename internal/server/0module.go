package server

import (
	"go.uber.org/fx"

	"exusiai.dev/activity-backend/internal/server/httpserver"
	"exusiai.dev/activity-backend/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Create),
		fx.Provide(svr.CreateEndpointGroups))
}

package main

import (
	"context"
	"net/http"

	"github.com/farxc/oplog/internal/logger"
	"github.com/farxc/oplog/internal/sequence"
)

const version = "0.1.0"

// healthRoutes serves GET /v1/health: service status, version, uptime and
// the configured log level.
func healthRoutes(app *application) []route {
	return []route{{
		method:  http.MethodGet,
		pattern: "/v1/health",
		level:   logger.LevelDebug,
		op: sequence.Operation{
			Owner:  "HealthController",
			Method: "check",
			Params: sequence.NoParams,
			Invoke: func(context.Context, []any) (any, error) {
				data := app.info()
				data["status"] = "available"
				data["version"] = version
				return data, nil
			},
		},
	}}
}

package main

import (
	"context"
	"net/http"

	"github.com/farxc/oplog/internal/logger"
	"github.com/farxc/oplog/internal/response"
	"github.com/farxc/oplog/internal/sequence"
	"github.com/farxc/oplog/internal/store"
)

type GetInvocationsResponse = response.APIResponse[[]store.Invocation]
type GetInvocationSummaryResponse = response.APIResponse[[]store.OperationSummary]

const maxInvocationsLimit = 500

// invocationRoutes serves the persisted log:
//
//	GET /v1/invocations?limit=10   latest invocations, newest first
//	GET /v1/invocations/summary    call count and timings per operation
func invocationRoutes(s *store.Storage) []route {
	return []route{
		{
			method:  http.MethodGet,
			pattern: "/v1/invocations",
			level:   logger.LevelDebug,
			op: sequence.Operation{
				Owner:  "InvocationController",
				Method: "list",
				Params: sequence.QueryInt("limit", 10),
				Invoke: func(ctx context.Context, args []any) (any, error) {
					limit := args[0].(int)
					if limit <= 0 || limit > maxInvocationsLimit {
						return nil, &sequence.HTTPError{Status: http.StatusBadRequest, Message: "limit must be between 1 and 500"}
					}
					data, err := s.Invocations.GetLatest(ctx, limit)
					if err != nil {
						return nil, err
					}
					return &GetInvocationsResponse{
						Success: true,
						Data:    data,
						Message: "Successfully retrieved latest invocations",
					}, nil
				},
			},
		},
		{
			method:  http.MethodGet,
			pattern: "/v1/invocations/summary",
			level:   logger.LevelDebug,
			op: sequence.Operation{
				Owner:  "InvocationController",
				Method: "summary",
				Params: sequence.NoParams,
				Invoke: func(ctx context.Context, _ []any) (any, error) {
					data, err := s.Invocations.Summarize(ctx)
					if err != nil {
						return nil, err
					}
					return &GetInvocationSummaryResponse{
						Success: true,
						Data:    data,
						Message: "Successfully summarized invocations",
					}, nil
				},
			},
		},
	}
}

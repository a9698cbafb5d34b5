package main

import (
	"context"
	"net/http"

	"github.com/farxc/oplog/internal/logger"
	"github.com/farxc/oplog/internal/sequence"
)

type MyController struct{}

type greeting struct {
	Name string `json:"name"`
	Msg  string `json:"msg"`
}

func (MyController) hello() string {
	return "Hi anonymous"
}

func (MyController) helloName(name string) greeting {
	return greeting{Name: name, Msg: "Hi " + name}
}

func myControllerRoutes() []route {
	var c MyController
	return []route{
		{
			method:  http.MethodGet,
			pattern: "/",
			level:   logger.LevelInfo,
			op: sequence.Operation{
				Owner:  "MyController",
				Method: "hello",
				Params: sequence.NoParams,
				Invoke: func(context.Context, []any) (any, error) {
					return c.hello(), nil
				},
			},
		},
		{
			method:  http.MethodGet,
			pattern: "/test",
			level:   logger.LevelWarn,
			op: sequence.Operation{
				Owner:  "MyController",
				Method: "helloName",
				Params: sequence.Query("name"),
				Invoke: func(_ context.Context, args []any) (any, error) {
					return c.helloName(args[0].(string)), nil
				},
			},
		},
	}
}

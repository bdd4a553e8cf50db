package main

import (
	"context"
	"github.com/udprelay/udprelay/app"
)

func runAsConfigServer(runCtx context.Context, args []string) error {
	return app.RunServer(runCtx, args, false)
}

func runAsForwardServer(runCtx context.Context, args []string) error {
	return app.RunForward(runCtx, args)
}

package main

import (
	"context"
	"time"

	"github.com/maribelsv/showcase/config"
	"github.com/maribelsv/showcase/internal/app"
	"github.com/maribelsv/showcase/pkg/sigctx"
)

const closeTimeout = 10 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	showcase := app.New(sigCtx, cfg)

	showcase.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	showcase.Close(ctx)
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"mesabot/app/client/llm"
	"mesabot/app/config"
	"mesabot/app/service/catalog"
	"mesabot/app/service/conversation"
	"mesabot/app/service/engine"
	"mesabot/app/service/queue"
	"mesabot/app/service/store"
	"mesabot/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, catalog.New)
	do.Provide(di, store.New)
	do.Provide(di, llm.NewClient)
	do.Provide(di, conversation.New)
	do.Provide(di, queue.New)
	do.Provide(di, engine.New)

	if _, err = do.Invoke[*catalog.Catalog](di); err != nil {
		log.Fatalf("catalog load failed: %v", err)
	}

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	go func() {
		do.MustInvoke[*engine.Service](di).Run(appCtx)
		cancel()
	}()

	<-appCtx.Done()
}

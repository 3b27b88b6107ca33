package main

import (
	"context"
	"log"
	"maskcapture/internal/app"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	application, err := app.NewApp()
	if err != nil {
		stop()
		log.Fatalf("Failed to initialize: %v", err)
	}

	err = application.Run(ctx)
	stop()
	if err != nil {
		log.Fatalf("Mask capture stopped: %v", err)
	}
}

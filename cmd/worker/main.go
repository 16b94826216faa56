package main

import (
	"billstation/internal/app/consumers"
	"billstation/internal/app/deps"
	"billstation/internal/app/services"
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	log := deps.Logger
	defer shutdownDeps()

	services := services.InitServices(deps)
	shutdownConsumers := consumers.InitConsumers(deps, services)
	defer shutdownConsumers()

	stopCh, closeCh := createChannel()
	defer closeCh()

	log.Info(context.Background(), "Email worker has started.")
	<-stopCh
	log.Info(context.Background(), "Email worker is stopping gracefully.")
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

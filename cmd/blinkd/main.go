// Command blinkd runs the Stellar XLM Blink server.
//
// Configuration comes from the environment (optionally a .env file):
// STELLAR_NETWORK, PORT, CORS_ORIGIN. See the config package.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/stellar-blinks/blink-server-go/config"
	"github.com/stellar-blinks/blink-server-go/core/horizon"
	"github.com/stellar-blinks/blink-server-go/payment"
	"github.com/stellar-blinks/blink-server-go/server"
)

const shutdownGrace = 10 * time.Second

func main() {
	// A .env file is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := logrus.New()
	if os.Getenv("LOG_FORMAT") == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	gateway := horizon.NewGateway(cfg.Network.HorizonURL)
	builder := payment.NewBuilder(gateway)
	submitter := payment.NewSubmitter(gateway)
	srv := server.New(cfg, builder, submitter, log)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: srv.Handler(),
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":        cfg.Port,
			"network":     cfg.Network.Name,
			"horizon":     cfg.Network.HorizonURL,
			"cors_origin": cfg.CORSOrigin,
		}).Info("Stellar XLM Blinks server started")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
}

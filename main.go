package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/remitchain/remitd/api"
	"github.com/remitchain/remitd/app"
	"github.com/remitchain/remitd/chain"
	"github.com/remitchain/remitd/intent"
	"github.com/remitchain/remitd/models"
	"github.com/remitchain/remitd/quote"
	"github.com/remitchain/remitd/rates"
	"github.com/remitchain/remitd/settle"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	var yamlPath string
	var envPath string
	flag.StringVar(&yamlPath, "yaml", "", "path to yaml config file")
	flag.StringVar(&envPath, "env", "", "path to env file")
	flag.Parse()

	app.InitConfig(yamlPath, envPath)
	app.InitLogger()
	app.InitDB()

	if !app.Config.Ethereum.Sandbox {
		chain.Client.ValidateNetwork()
	}
	verifier := chain.NewVerifier(chain.Client)

	rateService := rates.NewService()

	var wg sync.WaitGroup
	services := []models.Service{}

	if app.Config.RateRefresher.Enabled {
		services = append(services, app.NewRunnerService(
			rates.RateRefresherName,
			rateService,
			&wg,
			time.Duration(app.Config.RateRefresher.IntervalMillis)*time.Millisecond,
		))
	}
	if app.Config.IntentSweeper.Enabled {
		services = append(services, app.NewRunnerService(
			intent.IntentSweeperName,
			intent.NewSweeper(),
			&wg,
			time.Duration(app.Config.IntentSweeper.IntervalMillis)*time.Millisecond,
		))
	}

	healthcheck := app.NewHealthCheck(&wg, services)
	services = append(services, healthcheck)

	wg.Add(len(services))
	for _, service := range services {
		go service.Start()
	}

	handler := api.NewHandler(
		rateService,
		rateService,
		quote.NewEngine(rateService),
		intent.NewLedger(),
		settle.NewProcessor(verifier, rateService),
		settle.NewStore(),
		app.Config.Ethereum.Sandbox,
	)

	server := &http.Server{
		Addr:    ":" + strconv.FormatUint(app.Config.API.Port, 10),
		Handler: api.NewRouter(handler),
	}

	go func() {
		log.Info("[MAIN] API listening on ", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("[MAIN] API server error: ", err)
		}
	}()

	gracefulStop := make(chan os.Signal, 1)
	signal.Notify(gracefulStop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-gracefulStop
	log.Debug("[MAIN] Got signal: ", sig)

	log.Debug("[MAIN] Gracefully shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("[MAIN] Error shutting down API server: ", err)
	}

	for _, service := range services {
		service.Stop()
	}
	wg.Wait()

	app.DB.Disconnect()
	log.Info("[MAIN] Server gracefully stopped")
}

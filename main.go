package main

import (
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"github.com/tkanos/gonfig"
	. "github.com/tmbull/key-masking-proxy/proxy"
	"github.com/tmbull/key-masking-proxy/upstream"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	config := Config{}
	if err := gonfig.GetConf("config.json", &config); err != nil {
		log.Fatal(err)
	}
	config.applyDefaults()
	if err := config.applyEnvOverrides(); err != nil {
		log.Fatal(err)
	}
	if err := config.validate(); err != nil {
		log.Fatal(err)
	}

	level, err := log.ParseLevel(config.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		log.Warn("API_KEY is not set; calling the upstream without a credential.")
	}

	client := upstream.New(config.TargetUrl, config.CharacterId, apiKey, config.TimeoutInMillis)
	router := httprouter.New()
	proxy := Proxy{
		Router:   router,
		Upstream: client,
	}

	log.Info("Registering routes.")
	proxy.RegisterRoute(Route{
		Methods: []string{http.MethodGet},
		Pattern: "/character",
	}, RequestLogger(proxy.CharacterHandler()))
	proxy.RegisterRoute(Route{
		Methods: []string{http.MethodGet},
		Pattern: "/healthz",
	}, proxy.HealthHandler())

	server := &http.Server{
		Addr:              config.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Listening on %s, proxying %s/%s.", config.ListenAddr, config.TargetUrl, config.CharacterId)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down.")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}

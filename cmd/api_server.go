package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/aurowora/compress"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rm-hull/godx"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"

	"github.com/rm-hull/medevents-gateway/internal"
	"github.com/rm-hull/medevents-gateway/internal/routes"
)

func ApiServer(dbPath string, port int, debug bool) error {

	godx.GitVersion()
	godx.EnvironmentVars()
	godx.UserInfo()

	a, err := bootstrap(dbPath)
	if err != nil {
		return err
	}
	defer a.Close()

	syncer := internal.NewSyncer(a.client, a.repo)
	c, err := internal.StartCron(syncer, a.config.SyncSchedule)
	if err != nil {
		return fmt.Errorf("failed to start CRON jobs: %w", err)
	}
	defer c.Stop()

	go func() {
		if err := syncer.SyncAll(context.Background()); err != nil {
			log.Printf("initial sync failed: %v", err)
		}
	}()

	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
		compress.Compress(),
		cors.Default(),
	)

	if debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	err = healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{
		a.repo.Check(),
		a.client.Check(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize healthcheck: %v", err)
	}

	v1 := r.Group("/v1")
	v1.GET("/snapshots/:resource", routes.Snapshots(a.repo))

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting HTTP API Server on port %d...", port)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP API Server failed to start on port %d: %v", port, err)
	}

	return nil
}

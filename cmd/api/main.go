package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"

	"github.com/EsmalteStudio/nail-scheduler/internal/config"
	dbpkg "github.com/EsmalteStudio/nail-scheduler/internal/db"
	infraRepo "github.com/EsmalteStudio/nail-scheduler/internal/infra/repository"
	"github.com/EsmalteStudio/nail-scheduler/internal/middleware"
	"github.com/EsmalteStudio/nail-scheduler/internal/notify"
	"github.com/EsmalteStudio/nail-scheduler/internal/routes"
	"github.com/EsmalteStudio/nail-scheduler/internal/scanner"
)

func main() {

	logger := slog.New(tint.NewHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	vapid, err := notify.EnsureVAPID(cfg)
	if err != nil {
		log.Fatalf("failed to set up vapid keys: %v", err)
	}

	subs := notify.NewSubscriptionStore(cfg.SubsFile)
	sender := notify.NewSender(vapid, subs, logger)
	onesignal := notify.NewOneSignalClient(cfg.OneSignalAppID, cfg.OneSignalAPIKey, logger)
	dispatcher := notify.NewDispatcher(sender, onesignal, logger)

	agendamentoRepo := infraRepo.NewAgendamentoGormRepository(db)
	inactivity := scanner.New(agendamentoRepo, dispatcher, logger)
	if err := inactivity.Start(); err != nil {
		log.Fatalf("failed to start inactivity scanner: %v", err)
	}
	defer inactivity.Stop()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, vapid, subs, dispatcher)

	logger.Info("server running", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

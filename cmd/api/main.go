package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/arindamg/taskledger/internal/auth"
	authStore "github.com/arindamg/taskledger/internal/auth/store"
	"github.com/arindamg/taskledger/internal/client"
	clientStore "github.com/arindamg/taskledger/internal/client/store"
	"github.com/arindamg/taskledger/internal/config"
	"github.com/arindamg/taskledger/internal/database"
	ledgerHttp "github.com/arindamg/taskledger/internal/http"
	authHandler "github.com/arindamg/taskledger/internal/http/auth"
	clientHandler "github.com/arindamg/taskledger/internal/http/client"
	importHandler "github.com/arindamg/taskledger/internal/http/importcsv"
	invoiceHandler "github.com/arindamg/taskledger/internal/http/invoice"
	taskHandler "github.com/arindamg/taskledger/internal/http/task"
	taskMasterHandler "github.com/arindamg/taskledger/internal/http/taskmaster"
	"github.com/arindamg/taskledger/internal/importer"
	"github.com/arindamg/taskledger/internal/invoice"
	invoiceStore "github.com/arindamg/taskledger/internal/invoice/store"
	"github.com/arindamg/taskledger/internal/task"
	taskStore "github.com/arindamg/taskledger/internal/task/store"
	"github.com/arindamg/taskledger/internal/taskmaster"
	taskMasterStore "github.com/arindamg/taskledger/internal/taskmaster/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		authService       = auth.NewService(authStore.New(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		clientService     = client.NewService(clientStore.New(db))
		taskService       = task.NewService(taskStore.New(db))
		taskMasterService = taskmaster.NewService(taskMasterStore.New(db))
		invoiceService    = invoice.NewService(invoiceStore.New(db))
		importService     = importer.NewService(taskMasterService)
	)

	var (
		authH       = authHandler.NewHandler(authService)
		clientH     = clientHandler.NewHandler(clientService, cfg.Uploads.Dir)
		taskH       = taskHandler.NewHandler(taskService)
		taskMasterH = taskMasterHandler.NewHandler(taskMasterService)
		invoiceH    = invoiceHandler.NewHandler(invoiceService)
		importH     = importHandler.NewHandler(importService)
	)

	router := ledgerHttp.New(authService, cfg.Uploads.Dir, authH, clientH, taskH, taskMasterH, invoiceH, importH)

	scheduler := cron.New()

	if _, err := scheduler.AddFunc(cfg.Batch.Schedule, func() {
		summaries, err := taskService.RunDailyBatch(context.Background())
		if err != nil {
			slog.Error("daily recurrence batch failed", "error", err)
			return
		}

		var created, skipped int
		for _, s := range summaries {
			created += s.Created
			skipped += s.SkippedExisting
		}

		slog.Info("daily recurrence batch finished",
			"templates", len(summaries), "created", created, "skipped", skipped)
	}); err != nil {
		slog.Error("failed to schedule daily batch", "schedule", cfg.Batch.Schedule, "error", err)
		os.Exit(1)
	}

	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

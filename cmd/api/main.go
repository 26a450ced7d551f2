package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/fintra/fintra/internal/account"
	accountStore "github.com/fintra/fintra/internal/account/store"
	"github.com/fintra/fintra/internal/category"
	categoryStore "github.com/fintra/fintra/internal/category/store"
	"github.com/fintra/fintra/internal/classifier"
	"github.com/fintra/fintra/internal/config"
	"github.com/fintra/fintra/internal/database"
	fintraHttp "github.com/fintra/fintra/internal/http"
	accountHandler "github.com/fintra/fintra/internal/http/account"
	categoryHandler "github.com/fintra/fintra/internal/http/category"
	importHandler "github.com/fintra/fintra/internal/http/importstmt"
	txHandler "github.com/fintra/fintra/internal/http/transaction"
	"github.com/fintra/fintra/internal/importer"
	"github.com/fintra/fintra/internal/ledger"
	ledgerStore "github.com/fintra/fintra/internal/ledger/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.PoolConfig{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	gemini, err := classifier.NewGemini(context.Background(), cfg.Classifier.APIKey, cfg.Classifier.Model)
	if err != nil {
		slog.Error("failed to create classifier", "error", err)
		os.Exit(1)
	}

	var (
		ledgerRepo = ledgerStore.New(db)

		accountService  = account.NewService(accountStore.New(db), ledgerRepo)
		categoryService = category.NewService(categoryStore.New(db), ledgerRepo)
		ledgerService   = ledger.NewService(ledgerRepo, categoryService)
		importService   = importer.NewService(gemini, categoryService, ledgerRepo, ledgerService)
	)

	var (
		accountH  = accountHandler.NewHandler(accountService)
		categoryH = categoryHandler.NewHandler(categoryService)
		txH       = txHandler.NewHandler(ledgerService)
		importH   = importHandler.NewHandler(importService)
	)

	router := fintraHttp.New(accountH, categoryH, txH, importH)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

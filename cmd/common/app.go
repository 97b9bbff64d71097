// Package common contains shared functionality for command handlers
package common

import (
	"context"

	"github.com/sirupsen/logrus"

	"spendlens/internal/categorizer"
	"spendlens/internal/logging"
	"spendlens/internal/models"
	"spendlens/internal/pipeline"
	"spendlens/internal/ruleset"
	"spendlens/internal/storage"
)

// App bundles the wired components every command needs.
type App struct {
	Store       *storage.SQLiteStorage
	Categorizer *categorizer.Categorizer
	Pipeline    *pipeline.Pipeline
	Logger      logging.Logger
}

// NewApp opens the database and wires the categorizer and pipeline
// around it. Commands exit through log.Fatalf when wiring fails, same
// as they would for unusable flag values.
func NewApp(dbPath string, log *logrus.Logger) *App {
	logger := logging.NewLogrusAdapterFromLogger(log)

	store, err := storage.NewSQLiteStorage(dbPath, logger)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	cat := categorizer.New(ruleset.DefaultTable(), ruleset.DescriptionTable(), store, logger)
	pipe := pipeline.New(store, cat, nil, logger)

	return &App{Store: store, Categorizer: cat, Pipeline: pipe, Logger: logger}
}

// Close releases the database.
func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		a.Logger.WithError(err).Warn("failed to close database")
	}
}

// ReportReceipt logs the outcome of one ingested document.
func (a *App) ReportReceipt(log *logrus.Logger, receipt *models.Receipt) {
	if receipt.ProcessingStatus != models.StatusCompleted {
		log.Warnf("Document stored but not recognized as a receipt (id %s)", receipt.ID)
		return
	}

	entry := log.WithField("id", receipt.ID)
	if receipt.MerchantName != "" {
		entry = entry.WithField("merchant", receipt.MerchantName)
	}
	if receipt.Amount != nil {
		entry = entry.WithField("amount", receipt.Amount.StringFixed(2))
	}
	if receipt.CategoryName != "" {
		entry = entry.WithField("category", receipt.CategoryName)
	}
	entry.Info("Receipt ingested")
}

// ActiveRules loads the stored rules or exits.
func (a *App) ActiveRules(ctx context.Context, log *logrus.Logger) []models.CategoryRule {
	rules, err := a.Store.ActiveRules(ctx)
	if err != nil {
		log.Fatalf("Error loading rules: %v", err)
	}
	return rules
}

package main

import (
	"github.com/example/sakura/internal/catalog"
	"github.com/example/sakura/internal/config"
	"github.com/example/sakura/internal/database"
	"github.com/example/sakura/internal/excel"
	"github.com/example/sakura/internal/storage"
	"github.com/example/sakura/internal/study"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// app wires the configured store, catalog and study service together.
type app struct {
	cfg     *config.Config
	db      *sqlx.DB
	service *study.Service
	logger  *logrus.Entry
}

func openApp(logger *logrus.Entry) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(cfg.LogLevel)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(cfg, logger)
	if err != nil {
		db.Close()
		return nil, err
	}

	store := storage.New(database.NewKVRepository(db), cfg.StoragePrefix, logger.WithField("component", "storage"))
	service, err := study.New(store, study.Options{
		Catalog:  cat,
		Logger:   logger,
		SeedDemo: cfg.SeedDemoUser,
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &app{cfg: cfg, db: db, service: service, logger: logger}, nil
}

func (a *app) Close() {
	a.service.Wait()
	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Warn("Failed to close database")
	}
}

// loadCatalog loads the embedded catalog and merges CATALOG_FILE into it.
func loadCatalog(cfg *config.Config, logger *logrus.Entry) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.PlaceholderItems)
	if err != nil {
		return nil, err
	}
	if cfg.CatalogFile == "" {
		return cat, nil
	}

	importCfg := excel.DefaultImportConfig()
	importCfg.FilePath = cfg.CatalogFile
	result, err := excel.ImportItems(importCfg)
	if err != nil {
		return nil, errors.Wrapf(err, "import %s", cfg.CatalogFile)
	}
	for _, msg := range result.Errors {
		logger.WithField("file", cfg.CatalogFile).Warn(msg)
	}

	merged, skipped, err := cat.WithItems(result.Items)
	if err != nil {
		return nil, errors.Wrapf(err, "merge %s", cfg.CatalogFile)
	}
	logger.WithFields(logrus.Fields{
		"file":     cfg.CatalogFile,
		"imported": len(result.Items) - skipped,
		"skipped":  skipped,
	}).Info("Catalog file merged")
	return merged, nil
}

package main

import (
	"github.com/WiktorStarczewski/miden-arena/internal/config"
	"github.com/WiktorStarczewski/miden-arena/internal/logging"
	"github.com/WiktorStarczewski/miden-arena/internal/storage"
)

func loadConfigOrExit(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		logging.Fatal("Missing or invalid arena configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Database open failed", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db)
}

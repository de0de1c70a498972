package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/nikhilbhatia/smsledger/internal/bank"
	"github.com/nikhilbhatia/smsledger/internal/classify"
	"github.com/nikhilbhatia/smsledger/internal/common"
	"github.com/nikhilbhatia/smsledger/internal/config"
	"github.com/nikhilbhatia/smsledger/internal/dedup"
	"github.com/nikhilbhatia/smsledger/internal/engine"
	"github.com/nikhilbhatia/smsledger/internal/storage"
)

// openStorage opens (and migrates) the configured database.
func openStorage() (*storage.SQLiteStorage, error) {
	dbPath := config.ExpandPath(viper.GetString("db.path"))
	if dbPath == "" {
		return nil, fmt.Errorf("%w: database path (set --db or db.path)", common.ErrMissingConfig)
	}
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("could not open the transaction database at %s", dbPath), err)
	}
	return store, nil
}

// buildEngine wires the default bank registry through to a ready engine.
func buildEngine(store *storage.SQLiteStorage) *engine.Engine {
	registry := bank.DefaultRegistry()
	classifier := classify.New(registry)
	detector := dedup.NewDetector(store)
	return engine.New(store, classifier, detector)
}

func currentUser() string {
	return viper.GetString("user")
}

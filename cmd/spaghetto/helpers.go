package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/spaghetto/manager/internal/business"
	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/persist"
	"github.com/spaghetto/manager/internal/restaurant"
	"github.com/spaghetto/manager/internal/storage"
)

var decimal100 = decimal.NewFromInt(100)

// savePath resolves the save database location.
func savePath() (string, error) {
	if p := viper.GetString("save.path"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "spaghetto", "saves.db"), nil
}

// openStore opens the save database and brings its schema current.
func openStore(ctx context.Context) (*storage.SQLiteStorage, error) {
	path, err := savePath()
	if err != nil {
		return nil, err
	}

	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// loadRestaurant hydrates the restaurant in the configured slot,
// returning a fresh one when the slot has never been saved.
func loadRestaurant(ctx context.Context, store *storage.SQLiteStorage) (*restaurant.Restaurant, error) {
	slot := viper.GetString("save.slot")

	document, err := store.GetSave(ctx, slot)
	if errors.Is(err, common.ErrNotFound) {
		return restaurant.New(business.DefaultConfig()), nil
	}
	if err != nil {
		return nil, err
	}

	state, err := persist.Unmarshal(document)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("save slot %q cannot be loaded", slot), err)
	}
	return restaurant.Restore(business.DefaultConfig(), state), nil
}

// saveRestaurant writes the restaurant back to the configured slot.
func saveRestaurant(ctx context.Context, store *storage.SQLiteStorage, r *restaurant.Restaurant) error {
	document, err := persist.Marshal(r.Snapshot())
	if err != nil {
		return err
	}
	return store.PutSave(ctx, viper.GetString("save.slot"), document)
}

// withRestaurant loads the restaurant, runs fn, and persists the result
// when fn succeeds. Mutating commands run through this so engine state
// always lands back in the slot.
func withRestaurant(ctx context.Context, fn func(*restaurant.Restaurant) error) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	r, err := loadRestaurant(ctx, store)
	if err != nil {
		return err
	}

	if err := fn(r); err != nil {
		return err
	}
	return saveRestaurant(ctx, store, r)
}

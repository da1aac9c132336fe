package keeper

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"hoi4save/internal/backup"
	"hoi4save/internal/config"
	"hoi4save/internal/watcher"
)

// Keeper backs up a save whenever the game rewrites it and restores
// earlier backups on request.
type Keeper struct {
	cfg     config.Config
	store   *backup.Store
	watcher *watcher.Watcher
	logger  *slog.Logger

	// mu serialises backups and restores.
	mu sync.Mutex
	// restored is the mtime the last restore left on the save.
	restored time.Time
}

func New(cfg config.Config, logger *slog.Logger) (*Keeper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	k := &Keeper{
		cfg:    cfg,
		logger: logger,
		store: backup.NewStore(cfg.SavePath, backup.Options{
			Ext:    cfg.BackupExt,
			Codec:  backup.Codec(cfg.Compression),
			Logger: logger,
		}),
	}
	k.watcher = watcher.New(cfg.SavePath, cfg.SettleDelay, k.onChange, logger)
	return k, nil
}

// Store exposes the backup store for listing.
func (k *Keeper) Store() *backup.Store { return k.store }

// Run takes an initial backup and then one per change until ctx is done.
func (k *Keeper) Run(ctx context.Context) error {
	info, err := os.Stat(k.cfg.SavePath)
	if err != nil {
		return fmt.Errorf("stat save: %w", err)
	}
	k.watcher.SetBaseline(info.ModTime())

	if _, err := k.Backup(); err != nil {
		return err
	}
	err = k.watcher.Run(ctx)
	k.logger.Info("watching stopped", "path", k.cfg.SavePath)
	return err
}

// Backup copies the save now.
func (k *Keeper) Backup() (backup.Entry, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	e, err := k.store.Create()
	if err != nil {
		return backup.Entry{}, fmt.Errorf("create backup: %w", err)
	}
	return e, nil
}

// Restore puts the backup matching query back in place of the save
// without triggering a new backup.
func (k *Keeper) Restore(query string) (backup.Entry, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, err := k.store.Find(query)
	if err != nil {
		return backup.Entry{}, err
	}
	k.watcher.Suppress()
	mtime, err := k.store.Restore(e.Name)
	if err != nil {
		k.watcher.Unsuppress()
		return backup.Entry{}, fmt.Errorf("restore %s: %w", e.Name, err)
	}
	k.restored = mtime
	k.watcher.SetBaseline(mtime)
	return e, nil
}

func (k *Keeper) onChange(mtime time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()

	// A change seen while a restore was still in flight can carry the
	// restored mtime; that file is already backed up.
	if !k.restored.IsZero() && mtime.Equal(k.restored) {
		k.logger.Debug("change is the restored save", "mtime", mtime)
		return
	}
	if info, err := os.Stat(k.cfg.SavePath); err == nil && info.ModTime().Equal(k.restored) {
		k.logger.Debug("save unchanged since restore", "mtime", info.ModTime())
		return
	}

	k.logger.Debug("save changed", "mtime", mtime)
	if _, err := k.store.Create(); err != nil {
		k.logger.Error("backup failed", "error", err)
	}
}

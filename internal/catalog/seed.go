package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/shopsync/shopsync/internal/models"
)

const seedDebounce = 400 * time.Millisecond

// seedFile mirrors the on-disk seed format: a products array in the same
// shape as a search response.
type seedFile struct {
	Products []models.UnifiedProduct `json:"products"`
}

// LoadSeed reads the seed file and replaces the stored seed snapshot with
// its contents. A missing file is not an error; the catalog just has no
// seed data yet.
func (s *Store) LoadSeed(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("no seed file present", zap.String("path", path))
			return nil
		}
		return err
	}
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return err
	}
	if err := s.ReplaceSeed(ctx, seed.Products); err != nil {
		return err
	}
	s.logger.Info("seed data loaded",
		zap.String("path", path), zap.Int("products", len(seed.Products)))
	return nil
}

// WatchSeed reloads the seed snapshot whenever the seed file changes,
// debounced so editors that write in bursts trigger one reload. Blocks
// until ctx is cancelled.
func (s *Store) WatchSeed(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors replace files by rename, which drops a
	// watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	var mu sync.Mutex
	var pending *time.Timer
	target := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			mu.Lock()
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(seedDebounce, func() {
				if err := s.LoadSeed(ctx, path); err != nil {
					s.logger.Warn("seed reload failed",
						zap.String("path", path), zap.Error(err))
				}
			})
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("seed watcher error", zap.Error(err))
		}
	}
}

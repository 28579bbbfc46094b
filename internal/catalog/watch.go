package catalog

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// settleDelay collapses the burst of events an editor save produces.
const settleDelay = 200 * time.Millisecond

// Watch reloads s whenever its file changes and calls onReload with the
// outcome. It watches the parent directory so that editors replacing the
// file by rename are seen. Blocks until ctx is done.
func Watch(ctx context.Context, s *FileSource, log zerolog.Logger, onReload func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create catalog watcher")
	}
	defer watcher.Close()

	dir := filepath.Dir(s.Path())
	if err := watcher.Add(dir); err != nil {
		return errors.Wrapf(err, "watch %s", dir)
	}
	name := filepath.Clean(s.Path())

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				settle = time.After(settleDelay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("catalog watcher")
		case <-settle:
			settle = nil
			err := s.Reload()
			if err != nil {
				log.Warn().Err(err).Str("path", s.Path()).Msg("catalog reload failed")
			} else {
				log.Info().Str("path", s.Path()).Msg("catalog reloaded")
			}
			if onReload != nil {
				onReload(err)
			}
		}
	}
}

package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/hyperview/pkg/hypergraph"
	hio "github.com/matzehuels/hyperview/pkg/io"
)

// watchGraph re-reads path whenever it is written or replaced and passes
// the result to onChange. The parent directory is watched so editors that
// save through a rename are seen too. The returned stop function ends the
// watch and waits for the goroutine to exit.
func watchGraph(ctx context.Context, path string, onChange func(*hypergraph.Model, error)) (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				m, err := hio.ImportJSON(target)
				onChange(m, err)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				onChange(nil, err)
			}
		}
	}()

	return func() {
		cancel()
		w.Close()
		<-done
	}, nil
}

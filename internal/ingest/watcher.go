package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/pagehound/pagehound/internal/models"
)

const captureDebounce = 400 * time.Millisecond

// Watcher watches a drop directory for capture files (JSON chunk batches)
// and feeds them to the ingester. Writes are debounced so a file is only
// picked up once the capturing process has finished writing it.
type Watcher struct {
	dir         string
	ingester    *Ingester
	removeAfter bool
	debounce    time.Duration
	logger      *zap.Logger

	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	debounceMap map[string]*time.Timer
	started     bool
	done        chan struct{}
	stopOnce    sync.Once
}

// NewWatcher creates a watcher over dir. When removeAfter is true, capture
// files are deleted after a successful ingest.
func NewWatcher(dir string, ingester *Ingester, removeAfter bool, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		dir:         dir,
		ingester:    ingester,
		removeAfter: removeAfter,
		debounce:    captureDebounce,
		logger:      logger,
		debounceMap: make(map[string]*time.Timer),
		done:        make(chan struct{}),
	}
}

// Start begins watching. Capture files already present in the directory are
// ingested first. Runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		w.mu.Unlock()
		return fmt.Errorf("creating watch directory: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if err := watcher.Add(w.dir); err != nil {
		_ = watcher.Close()
		w.mu.Unlock()
		return err
	}
	w.watcher = watcher
	w.started = true
	w.mu.Unlock()

	w.logger.Info("watching capture directory", zap.String("dir", w.dir))
	w.ingestExisting(ctx)
	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Debug("watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, ev fsnotify.Event) {
	if !isCaptureFile(ev.Name) {
		return
	}
	switch ev.Op {
	case fsnotify.Create, fsnotify.Write:
		w.debounceIngest(ctx, ev.Name)
	case fsnotify.Remove:
		w.cancelDebounce(ev.Name)
	}
}

func (w *Watcher) debounceIngest(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.debounceMap[path]; ok {
		t.Stop()
	}
	w.debounceMap[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.debounceMap, path)
		w.mu.Unlock()
		w.ingestFile(ctx, path)
	})
}

func (w *Watcher) cancelDebounce(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.debounceMap[path]; ok {
		t.Stop()
		delete(w.debounceMap, path)
	}
}

func (w *Watcher) ingestExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Warn("reading capture directory", zap.Error(err))
		return
	}
	for _, e := range entries {
		if e.IsDir() || !isCaptureFile(e.Name()) {
			continue
		}
		w.ingestFile(ctx, filepath.Join(w.dir, e.Name()))
	}
}

func (w *Watcher) ingestFile(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("reading capture file", zap.String("path", path), zap.Error(err))
		return
	}
	var batch models.ChunkBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		w.logger.Warn("capture file is not a valid chunk batch", zap.String("path", path), zap.Error(err))
		return
	}
	n, err := w.ingester.IngestChunks(ctx, batch.Chunks)
	if err != nil {
		w.logger.Error("ingesting capture file", zap.String("path", path), zap.Error(err))
		return
	}
	w.logger.Info("capture file ingested", zap.String("path", path), zap.Int("chunks", n))
	if w.removeAfter {
		if err := os.Remove(path); err != nil {
			w.logger.Warn("removing capture file", zap.String("path", path), zap.Error(err))
		}
	}
}

func isCaptureFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started || w.watcher == nil {
		w.mu.Unlock()
		return
	}
	for path, t := range w.debounceMap {
		t.Stop()
		delete(w.debounceMap, path)
	}
	_ = w.watcher.Close()
	w.watcher = nil
	w.started = false
	w.mu.Unlock()
	w.stopOnce.Do(func() { close(w.done) })
}

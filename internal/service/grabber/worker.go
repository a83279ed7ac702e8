package grabber

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/oshokin/yamusic-grabber/internal/config"
	"github.com/oshokin/yamusic-grabber/internal/logger"
	"github.com/oshokin/yamusic-grabber/internal/store"
)

// Worker drains the download queue one item at a time.
type Worker interface {
	// Start resets stale items and launches the consumer loop.
	Start(ctx context.Context) error
	// Pause suspends consumption after the current item; the flag is persisted.
	Pause(ctx context.Context) error
	// Resume lifts a pause.
	Resume(ctx context.Context) error
	// Stop cancels the current item and waits for the loop to exit.
	Stop(ctx context.Context) error
	// Restart is Stop followed by Start.
	Restart(ctx context.Context) error
	// IsRunning reports whether the consumer loop is active.
	IsRunning() bool
	// IsPaused reports whether consumption is suspended.
	IsPaused() bool
	// CurrentTrackID returns the track being processed, empty when idle.
	CurrentTrackID() string
	// Wait blocks until the consumer loop exits.
	Wait()
}

// WorkerImpl implements the Worker interface.
type WorkerImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// store is the download catalog.
	store store.Store
	// engine downloads one track end to end.
	engine Engine

	mu sync.Mutex
	// running reports whether the consumer loop is active.
	running bool
	// paused suspends consumption between items.
	paused bool
	// currentTrackID is the track being processed.
	currentTrackID string
	// cancel stops the consumer loop.
	cancel context.CancelFunc
	// done is closed when the consumer loop exits.
	done chan struct{}
}

// Worker loop timing.
const (
	// pausePollInterval is how often a paused worker rechecks the flag.
	pausePollInterval = time.Second
	// interItemDelay spaces consecutive downloads apart.
	interItemDelay = 500 * time.Millisecond
	// storeErrorBackoff is the delay after a failed queue read.
	storeErrorBackoff = time.Second
)

// NewWorker creates a new Worker instance.
func NewWorker(cfg *config.Config, s store.Store, engine Engine) Worker {
	return &WorkerImpl{
		cfg:    cfg,
		store:  s,
		engine: engine,
	}
}

// Start resets stale items and launches the consumer loop. Starting a running
// worker is a no-op. Items left in the downloading status by a previous run
// return to queued with zero progress, and parked items return to the queue.
func (w *WorkerImpl) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	reset, err := w.store.ResetStaleDownloading(ctx)
	if err != nil {
		return err
	}

	if reset > 0 {
		logger.Infof(ctx, "Returned %d stale items to the queue", reset)
	}

	if _, err = w.store.RequeuePending(ctx); err != nil {
		return err
	}

	// The paused flag survives restarts.
	pausedValue, found, err := w.store.GetSetting(ctx, store.SettingDownloadsPaused)
	if err != nil {
		return err
	}

	w.paused = found && pausedValue == "true"

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})
	w.running = true

	go w.run(runCtx)

	return nil
}

// run is the consumer loop. It exits when the queue drains or the context is
// canceled.
func (w *WorkerImpl) run(ctx context.Context) {
	defer func() {
		w.mu.Lock()
		w.running = false
		w.currentTrackID = ""
		close(w.done)
		w.mu.Unlock()
	}()

	for {
		if ctx.Err() != nil {
			return
		}

		if w.IsPaused() {
			if !sleepContext(ctx, pausePollInterval) {
				return
			}

			continue
		}

		item, err := w.store.NextQueued(ctx)
		if err != nil {
			logger.Errorf(ctx, "Failed to read the queue: %v", err)

			if !sleepContext(ctx, storeErrorBackoff) {
				return
			}

			continue
		}

		// The queue is drained, the worker stops itself.
		if item == nil {
			logger.Info(ctx, "Queue is drained, stopping")

			return
		}

		w.processItem(ctx, item)

		if !sleepContext(ctx, interItemDelay) {
			return
		}
	}
}

// processItem downloads one queue item and records the outcome.
func (w *WorkerImpl) processItem(ctx context.Context, item *store.QueueItem) {
	w.mu.Lock()
	w.currentTrackID = item.TrackID
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.currentTrackID = ""
		w.mu.Unlock()
	}()

	// Status writes must survive the loop context being canceled mid-item.
	writeCtx := context.WithoutCancel(ctx)

	if err := w.store.SetItemStatus(writeCtx, item.ID, store.StatusDownloading, 0, ""); err != nil {
		logger.Errorf(ctx, "Failed to mark item %d as downloading: %v", item.ID, err)

		return
	}

	var lastProgress int64

	finished, err := w.engine.DownloadTrack(ctx, item, func(percent int64) {
		lastProgress = percent

		if progressErr := w.store.SetItemProgress(writeCtx, item.ID, percent); progressErr != nil {
			logger.Warnf(ctx, "Failed to record progress for item %d: %v", item.ID, progressErr)
		}
	})
	if err != nil {
		message := err.Error()
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			message = ErrDownloadStopped.Error()
		}

		logger.Errorf(ctx, "Failed to download track %s: %v", item.TrackID, err)

		if statusErr := w.store.SetItemStatus(writeCtx, item.ID, store.StatusError,
			lastProgress, message); statusErr != nil {
			logger.Errorf(ctx, "Failed to mark item %d as failed: %v", item.ID, statusErr)
		}

		return
	}

	if err = w.store.SaveFinishedTrack(writeCtx, finished); err != nil {
		logger.Errorf(ctx, "Failed to record finished track %s: %v", item.TrackID, err)
	}

	if err = w.store.SetItemStatus(writeCtx, item.ID, store.StatusCompleted, progressComplete, ""); err != nil {
		logger.Errorf(ctx, "Failed to mark item %d as completed: %v", item.ID, err)
	}

	if !w.cfg.KeepCompletedItems {
		if _, err = w.store.RemoveQueueItems(writeCtx, []int64{item.ID}); err != nil {
			logger.Warnf(ctx, "Failed to drop completed item %d: %v", item.ID, err)
		}
	}
}

// Pause suspends consumption after the current item.
func (w *WorkerImpl) Pause(ctx context.Context) error {
	return w.setPaused(ctx, true)
}

// Resume lifts a pause.
func (w *WorkerImpl) Resume(ctx context.Context) error {
	return w.setPaused(ctx, false)
}

func (w *WorkerImpl) setPaused(ctx context.Context, paused bool) error {
	w.mu.Lock()
	w.paused = paused
	w.mu.Unlock()

	return w.store.SetSetting(ctx, store.SettingDownloadsPaused, strconv.FormatBool(paused))
}

// Stop cancels the current item and waits for the loop to exit.
func (w *WorkerImpl) Stop(ctx context.Context) error {
	w.mu.Lock()

	if !w.running {
		w.mu.Unlock()

		return ErrWorkerNotRunning
	}

	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	cancel()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	logger.Info(ctx, "Worker stopped")

	return nil
}

// Restart is Stop followed by Start. A worker that is not running is simply
// started.
func (w *WorkerImpl) Restart(ctx context.Context) error {
	if err := w.Stop(ctx); err != nil && !errors.Is(err, ErrWorkerNotRunning) {
		return err
	}

	return w.Start(ctx)
}

// IsRunning reports whether the consumer loop is active.
func (w *WorkerImpl) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.running
}

// IsPaused reports whether consumption is suspended.
func (w *WorkerImpl) IsPaused() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.paused
}

// CurrentTrackID returns the track being processed, empty when idle.
func (w *WorkerImpl) CurrentTrackID() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.currentTrackID
}

// Wait blocks until the consumer loop exits.
func (w *WorkerImpl) Wait() {
	w.mu.Lock()
	done := w.done
	w.mu.Unlock()

	if done != nil {
		<-done
	}
}

// sleepContext sleeps for the given duration and reports false when the
// context was canceled first.
func sleepContext(ctx context.Context, duration time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(duration):
		return true
	}
}
